package extraction

import (
	"strings"

	"github.com/opsdash/inventory-import/pkg/classifier"
	"github.com/opsdash/inventory-import/pkg/models"
)

// Product is one candidate line of the extraction result, before any
// boundary validation.
type Product struct {
	Name         string  `json:"name"`
	Quantity     float64 `json:"quantity"`
	UnitPrice    float64 `json:"unit_price"`
	TotalPrice   float64 `json:"total_price"`
	SerialNumber string  `json:"serial_number,omitempty"`
	Model        string  `json:"model,omitempty"`
}

// Result is the reply of the invoice-extraction backend.
type Result struct {
	InvoiceNumber string    `json:"invoice_number"`
	InvoiceDate   string    `json:"invoice_date"`
	Vendor        string    `json:"vendor"`
	Products      []Product `json:"products"`
	Error         string    `json:"error,omitempty"`
}

// Invoice returns the batch metadata, substituting the NotDetected
// sentinel for anything the backend left blank.
func (r *Result) Invoice() models.Invoice {
	return models.Invoice{
		Number: orNotDetected(r.InvoiceNumber),
		Date:   orNotDetected(r.InvoiceDate),
		Vendor: orNotDetected(r.Vendor),
	}
}

func orNotDetected(s string) string {
	if strings.TrimSpace(s) == "" {
		return models.NotDetected
	}
	return s
}

// LineItems converts the extracted products into line items. Products
// with blank names are dropped here, at population time, so they can
// never be offered for import. Indices are the positions in the
// extraction result and stay stable even when earlier entries are
// dropped.
func (r *Result) LineItems() []*models.LineItem {
	items := make([]*models.LineItem, 0, len(r.Products))
	for i, p := range r.Products {
		if strings.TrimSpace(p.Name) == "" {
			continue
		}
		items = append(items, &models.LineItem{
			Index:        i,
			Name:         p.Name,
			Quantity:     normalizeQuantity(p.Quantity),
			UnitPrice:    clampPrice(p.UnitPrice),
			TotalPrice:   clampPrice(p.TotalPrice),
			Category:     classifier.Classify(p.Name),
			SerialNumber: p.SerialNumber,
			Model:        p.Model,
		})
	}
	return items
}

func normalizeQuantity(q float64) int {
	n := int(q)
	if n < 1 {
		return 1
	}
	return n
}

func clampPrice(p float64) float64 {
	if p < 0 {
		return 0
	}
	return p
}
