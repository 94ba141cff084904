package model

// Days of the week, in planner order.
const (
	Monday    = "Monday"
	Tuesday   = "Tuesday"
	Wednesday = "Wednesday"
	Thursday  = "Thursday"
	Friday    = "Friday"
	Saturday  = "Saturday"
	Sunday    = "Sunday"
)

// Days lists the seven planner keys in order.
var Days = []string{Monday, Tuesday, Wednesday, Thursday, Friday, Saturday, Sunday}

// Planner maps a day of the week to the ordered closet item ids planned for
// it. Referential integrity to the closet is not enforced here; readers
// filter dangling ids at resolution time.
type Planner map[string][]string

// EmptyPlanner returns a planner with all seven days present and empty.
func EmptyPlanner() Planner {
	p := make(Planner, len(Days))
	for _, day := range Days {
		p[day] = []string{}
	}
	return p
}

// ValidDay reports whether day is one of the seven planner keys.
func ValidDay(day string) bool {
	for _, d := range Days {
		if d == day {
			return true
		}
	}
	return false
}
