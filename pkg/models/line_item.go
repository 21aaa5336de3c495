package models

import "strconv"

// LineItem is one product row extracted from (or manually added to) an
// invoice, pending categorization and import.
type LineItem struct {
	// Index is stable within the current batch and never reused, even
	// after the row is deleted.
	Index              int      `json:"index"`
	Name               string   `json:"name"`
	Quantity           int      `json:"quantity"`
	UnitPrice          float64  `json:"unit_price"`
	TotalPrice         float64  `json:"total_price"`
	Category           Category `json:"category"`
	AssignedDepartment string   `json:"assigned_department"`
	SerialNumber       string   `json:"serial_number,omitempty"`
	Model              string   `json:"model,omitempty"`
	Imported           bool     `json:"imported"`
	// Manual marks rows added by hand rather than extracted. Editing
	// the unit price of a manual row recomputes the total, extracted
	// totals are left alone.
	Manual bool `json:"manual,omitempty"`
}

// ID returns the stringified index used as the selection key.
func (l *LineItem) ID() string {
	return strconv.Itoa(l.Index)
}
