package model

import (
	"fmt"
	"math"
)

// ThriftItem represents a closet item offered for peer-to-peer resale.
type ThriftItem struct {
	ID          string  `json:"id"`
	Image       string  `json:"image"`
	Name        string  `json:"name"`
	Price       float64 `json:"price"`
	Size        string  `json:"size"`
	Condition   string  `json:"condition"`
	University  string  `json:"university"`
	DateListed  int64   `json:"dateListed"`
	Description string  `json:"description"`
	Collection  string  `json:"collection"`
}

// Listing conditions.
const (
	ConditionNewWithTags = "New with Tags"
	ConditionLikeNew     = "Like New"
	ConditionGood        = "Good"
	ConditionFair        = "Fair"
)

// Conditions lists all valid listing conditions.
var Conditions = []string{
	ConditionNewWithTags, ConditionLikeNew, ConditionGood, ConditionFair,
}

// Curated marketplace collections.
const (
	CollectionOldMoney         = "Old Money"
	CollectionPrincessCore     = "Princess Core"
	CollectionDowntownDoll     = "Downtown Doll"
	CollectionVintageHeirlooms = "Vintage Heirlooms"
)

// Collections lists all valid marketplace collections.
var Collections = []string{
	CollectionOldMoney, CollectionPrincessCore,
	CollectionDowntownDoll, CollectionVintageHeirlooms,
}

// SuggestedResalePrice returns the default listing price for a closet item:
// 70% of the original price, rounded down.
func SuggestedResalePrice(price float64) float64 {
	suggested := math.Floor(price * 0.7)
	if suggested < 0 {
		return 0
	}
	return suggested
}

// ListingDescription returns the default description for a listing created
// from a closet item.
func ListingDescription(item ClosetItem) string {
	return fmt.Sprintf("Pre-loved %s from my personal collection. Perfect for %s season.",
		item.Name, item.Season)
}

// SizeForCategory picks the seller's default size for a listing by the
// garment category.
func SizeForCategory(category string, sizes Sizes) string {
	switch category {
	case CategoryShoes:
		return sizes.Shoe
	case CategoryBottom, CategoryDress:
		return sizes.Bottom
	default:
		return sizes.Top
	}
}
