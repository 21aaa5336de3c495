// Package visibility decides which invoice rows are shown given the
// per-category filter toggles.
package visibility

import "github.com/opsdash/inventory-import/pkg/models"

// Toggles is the filter state of the product table: one switch per
// category plus one that hides already imported rows. The zero value
// hides everything; use Default for a fresh extraction.
type Toggles struct {
	Hardware     bool `json:"hardware"`
	Software     bool `json:"software"`
	Furniture    bool `json:"furniture"`
	Accessories  bool `json:"accessories"`
	Other        bool `json:"other"`
	HideImported bool `json:"hide_imported"`
}

// Default shows every category and keeps imported rows visible.
func Default() Toggles {
	return Toggles{
		Hardware:    true,
		Software:    true,
		Furniture:   true,
		Accessories: true,
		Other:       true,
	}
}

// Visible reports whether the item passes the filters. Any category
// outside the four named buckets is governed by the Other toggle, so the
// function is total over arbitrary category values.
func (t Toggles) Visible(item *models.LineItem) bool {
	if item.Imported && t.HideImported {
		return false
	}
	switch item.Category {
	case models.CategoryHardware:
		return t.Hardware
	case models.CategorySoftware:
		return t.Software
	case models.CategoryFurniture:
		return t.Furniture
	case models.CategoryAccessories:
		return t.Accessories
	default:
		return t.Other
	}
}
