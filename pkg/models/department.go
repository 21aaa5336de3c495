package models

// Department is one entry of the externally supplied department list,
// consumed read-only to populate per-row department selectors.
type Department struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

// Equipment is one record of a department's equipment listing, as
// returned by the equipment backend.
type Equipment struct {
	ID           int     `json:"id"`
	Name         string  `json:"name"`
	Type         string  `json:"type"`
	SerialNumber string  `json:"serial_number"`
	Quantity     int     `json:"quantity"`
	Status       string  `json:"status"`
	Value        float64 `json:"value"`
	AssignedDate string  `json:"assigned_date"`
}
