package models

// NotDetected is the sentinel the extraction backend uses for invoice
// metadata it could not recover from the PDF.
const NotDetected = "Not detected"

// Invoice holds the batch-level metadata of an extraction run. It is
// attached to every created equipment record as provenance.
type Invoice struct {
	Number string `json:"invoice_number"`
	Date   string `json:"invoice_date"`
	Vendor string `json:"vendor"`
}

// HasVendor reports whether the vendor field carries a real value.
func (i Invoice) HasVendor() bool {
	return i.Vendor != "" && i.Vendor != NotDetected
}

// HasDate reports whether the invoice date field carries a real value.
func (i Invoice) HasDate() bool {
	return i.Date != "" && i.Date != NotDetected
}
