// Package model defines the wardrobe domain types. JSON field names match
// the persisted layout, so data written by older builds loads unchanged.
package model

// ClosetItem represents a user-owned garment with valuation and wear tracking.
type ClosetItem struct {
	ID        string  `json:"id"`
	Image     string  `json:"image"` // base64 data URL
	Name      string  `json:"name"`
	Category  string  `json:"category"`
	Season    string  `json:"season"`
	Price     float64 `json:"price"`
	DateAdded int64   `json:"dateAdded"` // unix milliseconds
	TimesWorn int     `json:"timesWorn"`
	Color     string  `json:"color,omitempty"`
}

// Categories.
const (
	CategoryTop       = "Top"
	CategoryBottom    = "Bottom"
	CategoryDress     = "Dress"
	CategoryOuterwear = "Outerwear"
	CategoryShoes     = "Shoes"
	CategoryBag       = "Bag"
	CategoryAccessory = "Accessory"
)

// Categories lists all valid item categories.
var Categories = []string{
	CategoryTop, CategoryBottom, CategoryDress, CategoryOuterwear,
	CategoryShoes, CategoryBag, CategoryAccessory,
}

// Seasons.
const (
	SeasonSpring    = "Spring"
	SeasonSummer    = "Summer"
	SeasonAutumn    = "Autumn"
	SeasonWinter    = "Winter"
	SeasonYearRound = "Year-Round"
)

// Seasons lists all valid seasons.
var Seasons = []string{
	SeasonSpring, SeasonSummer, SeasonAutumn, SeasonWinter, SeasonYearRound,
}

// ValidCategory reports whether category is a known category.
func ValidCategory(category string) bool {
	for _, c := range Categories {
		if c == category {
			return true
		}
	}
	return false
}

// ValidSeason reports whether season is a known season.
func ValidSeason(season string) bool {
	for _, s := range Seasons {
		if s == season {
			return true
		}
	}
	return false
}
