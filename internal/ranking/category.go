package ranking

import (
	"strings"

	"golang.org/x/text/cases"

	"github.com/jengzang/studyspots-backend-go/internal/models"
)

// All is the category sentinel meaning "no category filter". It is never stored.
const All = "all"

// UI labels offered by the category selector
const (
	LabelLibraries   = "libraries"
	LabelCafes       = "cafes"
	LabelRestaurants = "restaurants"
	LabelParks       = "parks"
	LabelCoworking   = "coworking"
)

// categoryTable maps every accepted spelling to the canonical stored token
var categoryTable = map[string]string{
	LabelLibraries:   models.CategoryLibrary,
	LabelCafes:       models.CategoryCafe,
	LabelRestaurants: models.CategoryRestaurant,
	LabelParks:       models.CategoryPark,
	LabelCoworking:   models.CategoryCoworking,

	models.CategoryLibrary:    models.CategoryLibrary,
	models.CategoryCafe:       models.CategoryCafe,
	models.CategoryRestaurant: models.CategoryRestaurant,
	models.CategoryPark:       models.CategoryPark,
	"co-working":              models.CategoryCoworking,
}

var labelTable = map[string]string{
	models.CategoryLibrary:    LabelLibraries,
	models.CategoryCafe:       LabelCafes,
	models.CategoryRestaurant: LabelRestaurants,
	models.CategoryPark:       LabelParks,
	models.CategoryCoworking:  LabelCoworking,
}

// Normalize maps a UI label (or an already canonical token) to the canonical
// stored category. Empty, "all" and unknown labels return All.
func Normalize(label string) string {
	if canonical, ok := categoryTable[fold(strings.TrimSpace(label))]; ok {
		return canonical
	}
	return All
}

// Label returns the UI label for a category in any accepted spelling, or All
func Label(category string) string {
	if label, ok := labelTable[Normalize(category)]; ok {
		return label
	}
	return All
}

// IsCanonical reports whether category is one of the stored tokens
func IsCanonical(category string) bool {
	_, ok := labelTable[category]
	return ok
}

func matchesCategory(spot models.StudySpot, canonical string) bool {
	if canonical == All {
		return true
	}
	return Normalize(spot.Category) == canonical
}

// fold returns the case-folded form of s. A Caser keeps state, so one is
// created per call.
func fold(s string) string {
	return cases.Fold().String(s)
}
