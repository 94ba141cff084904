package model

// Sizes holds the user's garment sizes by slot.
type Sizes struct {
	Top    string `json:"top"`
	Bottom string `json:"bottom"`
	Shoe   string `json:"shoe"`
}

// UserProfile is the singleton profile record.
type UserProfile struct {
	Name      string `json:"name"`
	StyleGoal string `json:"styleGoal"`
	Sizes     Sizes  `json:"sizes"`
}

// DefaultProfile returns the profile used until the user edits it.
func DefaultProfile() UserProfile {
	return UserProfile{
		Name:      "Cherie",
		StyleGoal: "Coquette Minimalist",
		Sizes:     Sizes{Top: "S", Bottom: "26", Shoe: "7"},
	}
}
