package importer

import (
	"fmt"
	"sync"
	"time"

	"github.com/denysvitali/go-datesfinder"

	"github.com/opsdash/inventory-import/pkg/equipment"
	"github.com/opsdash/inventory-import/pkg/models"
)

const (
	statusAvailable = "available"
	dateLayout      = "2006-01-02"
)

// BatchResult summarizes an all-settled batch: every candidate is
// attempted and counted, a failed row never stops the others.
type BatchResult struct {
	BatchId   string
	Total     int
	Succeeded int
	Failed    int
	Errors    map[string]error
}

func (r *BatchResult) Message() string {
	return fmt.Sprintf("Imported %d of %d items", r.Succeeded, r.Total)
}

// ImportOne imports a single row. On success the row is marked as
// imported and leaves the selection.
func (s *Session) ImportOne(id string) error {
	s.mutex.Lock()
	item := s.item(id)
	if item == nil {
		s.mutex.Unlock()
		return fmt.Errorf("no row with id %s", id)
	}
	if item.Imported {
		s.mutex.Unlock()
		return fmt.Errorf("row %s is already imported", id)
	}
	s.mutex.Unlock()

	return s.importItem(item)
}

// ImportSelected imports every selected row that is visible under the
// current filters and not yet imported. The selection is cleared
// afterwards, whatever the outcome. When at least one row succeeded the
// user is asked whether to reset the form.
func (s *Session) ImportSelected() *BatchResult {
	s.mutex.Lock()
	var candidates []*models.LineItem
	for _, item := range s.items {
		if !s.selection.Has(item.ID()) {
			continue
		}
		if item.Imported || !s.toggles.Visible(item) {
			continue
		}
		candidates = append(candidates, item)
	}
	s.mutex.Unlock()

	result := s.importBatch(candidates)

	s.mutex.Lock()
	s.selection.Clear()
	s.mutex.Unlock()

	if s.notifier != nil {
		s.notifier.Notify(result.Message())
		if result.Succeeded > 0 && s.notifier.Confirm("Reset the import form?") {
			s.Reset()
		}
	}
	return result
}

// ImportAll imports every visible row that is not yet imported. When at
// least one row succeeded the form is reset.
func (s *Session) ImportAll() *BatchResult {
	s.mutex.Lock()
	var candidates []*models.LineItem
	for _, item := range s.items {
		if item.Imported || !s.toggles.Visible(item) {
			continue
		}
		candidates = append(candidates, item)
	}
	s.mutex.Unlock()

	result := s.importBatch(candidates)

	if s.notifier != nil {
		s.notifier.Notify(result.Message())
	}
	if result.Succeeded > 0 {
		s.Reset()
	}
	return result
}

func (s *Session) importBatch(items []*models.LineItem) *BatchResult {
	s.mutex.Lock()
	batchId := s.batchId
	s.mutex.Unlock()

	result := &BatchResult{
		BatchId: batchId,
		Total:   len(items),
		Errors:  map[string]error{},
	}
	if len(items) == 0 {
		return result
	}
	log.Infof("importing %d items (batch %s)", len(items), batchId)

	workers := s.workers
	if workers > len(items) {
		workers = len(items)
	}

	itemChan := make(chan *models.LineItem)
	outcomes := make(chan outcome)
	wg := sync.WaitGroup{}
	for i := 0; i < workers; i++ {
		w := newWorker(i+1, itemChan, outcomes, s)
		wg.Add(1)
		go w.Start(&wg)
	}
	go func() {
		wg.Wait()
		close(outcomes)
	}()
	go func() {
		for _, item := range items {
			itemChan <- item
		}
		close(itemChan)
	}()

	for o := range outcomes {
		if o.err != nil {
			result.Failed++
			result.Errors[o.id] = o.err
			continue
		}
		result.Succeeded++
	}
	log.Infof("batch %s done: %d ok, %d failed", batchId, result.Succeeded, result.Failed)
	return result
}

func (s *Session) importItem(item *models.LineItem) error {
	s.mutex.Lock()
	req := createRequest(item, s.invoice, time.Now())
	s.mutex.Unlock()

	if _, err := s.equipment.Create(req); err != nil {
		return fmt.Errorf("unable to import %q: %v", item.Name, err)
	}

	s.mutex.Lock()
	item.Imported = true
	s.selection.Deselect(item.ID())
	department := item.AssignedDepartment
	s.mutex.Unlock()

	if s.departments != nil && department != "" && department == s.departments.Current() {
		s.departments.Refresh(department)
	}
	return nil
}

func createRequest(item *models.LineItem, invoice models.Invoice, now time.Time) *equipment.CreateRequest {
	category := item.Category
	if !category.Valid() {
		category = models.CategoryHardware
	}
	quantity := item.Quantity
	if quantity < 1 {
		quantity = 1
	}
	// The extraction boundary fills blank metadata with the sentinel,
	// which is kept in the notes verbatim. A truly empty date (manual
	// session) falls back to today.
	notesDate := invoice.Date
	if notesDate == "" {
		notesDate = now.Format(dateLayout)
	}
	req := &equipment.CreateRequest{
		Name:            item.Name,
		Category:        category,
		Status:          statusAvailable,
		Quantity:        quantity,
		Value:           item.UnitPrice,
		AssignTo:        item.AssignedDepartment,
		Notes:           fmt.Sprintf("Imported from invoice %s dated %s", invoice.Number, notesDate),
		AcquisitionDate: acquisitionDate(invoice, now),
		SerialNumber:    item.SerialNumber,
		Model:           item.Model,
	}
	if invoice.HasVendor() {
		req.Manufacturer = invoice.Vendor
	}
	return req
}

// acquisitionDate normalizes the invoice date to YYYY-MM-DD. Dates the
// finder cannot parse are passed through as-is, and a missing date
// falls back to today.
func acquisitionDate(invoice models.Invoice, now time.Time) string {
	if !invoice.HasDate() {
		return now.Format(dateLayout)
	}
	dates, _ := datesfinder.FindDates(invoice.Date)
	if len(dates) > 0 {
		return dates[0].Format(dateLayout)
	}
	return invoice.Date
}
