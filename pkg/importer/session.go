// Package importer drives the invoice-to-inventory workflow: it holds
// the line items of the currently loaded invoice, the row selection and
// the category filters, and pushes items to the dashboard backend.
package importer

import (
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/opsdash/inventory-import/pkg/classifier"
	"github.com/opsdash/inventory-import/pkg/equipment"
	"github.com/opsdash/inventory-import/pkg/extraction"
	"github.com/opsdash/inventory-import/pkg/models"
	"github.com/opsdash/inventory-import/pkg/selection"
	"github.com/opsdash/inventory-import/pkg/visibility"
)

var log = logrus.StandardLogger().WithField("package", "importer")

const defaultWorkers = 4

// DepartmentView is the part of the UI that shows the equipment of one
// department. After a successful import into the currently shown
// department the view is refreshed.
type DepartmentView interface {
	Current() string
	Refresh(department string)
}

// Notifier receives user-facing messages about batch outcomes.
// Confirm asks a yes/no question and reports the answer.
type Notifier interface {
	Notify(message string)
	Confirm(prompt string) bool
}

type Config struct {
	Equipment   *equipment.Client
	Extraction  *extraction.Client
	Departments DepartmentView
	Notifier    Notifier
	Workers     int
}

type Session struct {
	mutex       sync.Mutex
	items       []*models.LineItem
	invoice     models.Invoice
	selection   *selection.Store
	toggles     visibility.Toggles
	equipment   *equipment.Client
	extraction  *extraction.Client
	departments DepartmentView
	notifier    Notifier
	workers     int
	batchId     string
}

func New(config Config) (*Session, error) {
	if config.Equipment == nil {
		return nil, fmt.Errorf("equipment client is required")
	}
	workers := config.Workers
	if workers <= 0 {
		workers = defaultWorkers
	}
	return &Session{
		selection:   selection.New(),
		toggles:     visibility.Default(),
		equipment:   config.Equipment,
		extraction:  config.Extraction,
		departments: config.Departments,
		notifier:    config.Notifier,
		workers:     workers,
	}, nil
}

// Load replaces the session contents with a freshly extracted invoice.
// Any previous selection is dropped and the filters go back to their
// defaults.
func (s *Session) Load(invoice models.Invoice, items []*models.LineItem) {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	s.invoice = invoice
	s.items = items
	s.selection.Clear()
	s.toggles = visibility.Default()
	s.batchId = uuid.NewString()
	log.Debugf("loaded invoice %q with %d items (batch %s)",
		invoice.Number, len(items), s.batchId)
}

// LoadResult is a convenience wrapper around Load for a raw extraction
// result.
func (s *Session) LoadResult(result *extraction.Result) {
	s.Load(result.Invoice(), result.LineItems())
}

func (s *Session) Invoice() models.Invoice {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	return s.invoice
}

// Items returns all line items, imported or not.
func (s *Session) Items() []*models.LineItem {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	items := make([]*models.LineItem, len(s.items))
	copy(items, s.items)
	return items
}

// VisibleItems returns the line items that pass the current filters.
func (s *Session) VisibleItems() []*models.LineItem {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	var visible []*models.LineItem
	for _, item := range s.items {
		if s.toggles.Visible(item) {
			visible = append(visible, item)
		}
	}
	return visible
}

func (s *Session) item(id string) *models.LineItem {
	for _, item := range s.items {
		if item.ID() == id {
			return item
		}
	}
	return nil
}

// Item returns the line item with the given row id, or nil.
func (s *Session) Item(id string) *models.LineItem {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	return s.item(id)
}

// Select marks a row as selected. Selecting an unknown row is an error,
// selecting a row twice is not.
func (s *Session) Select(id string) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	if s.item(id) == nil {
		return fmt.Errorf("no row with id %s", id)
	}
	s.selection.Select(id)
	return nil
}

func (s *Session) Deselect(id string) {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	s.selection.Deselect(id)
}

// ToggleSelect flips the selection state of a row and returns the new
// state.
func (s *Session) ToggleSelect(id string) (bool, error) {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	if s.item(id) == nil {
		return false, fmt.Errorf("no row with id %s", id)
	}
	if s.selection.Has(id) {
		s.selection.Deselect(id)
		return false, nil
	}
	s.selection.Select(id)
	return true, nil
}

// SelectAllVisible selects every row that passes the current filters
// and has not been imported yet.
func (s *Session) SelectAllVisible() {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	for _, item := range s.items {
		if item.Imported {
			continue
		}
		if s.toggles.Visible(item) {
			s.selection.Select(item.ID())
		}
	}
}

func (s *Session) DeselectAll() {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	s.selection.Clear()
}

func (s *Session) Selected(id string) bool {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	return s.selection.Has(id)
}

func (s *Session) SelectedIDs() []string {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	return s.selection.IDs()
}

func (s *Session) Toggles() visibility.Toggles {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	return s.toggles
}

func (s *Session) SetToggles(toggles visibility.Toggles) {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	s.toggles = toggles
}

// AddItem appends an empty manual row after the extracted ones and
// returns it.
func (s *Session) AddItem() *models.LineItem {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	next := 0
	for _, item := range s.items {
		if item.Index >= next {
			next = item.Index + 1
		}
	}
	item := &models.LineItem{
		Index:    next,
		Name:     "New item",
		Quantity: 1,
		Category: models.CategoryOther,
		Manual:   true,
	}
	s.items = append(s.items, item)
	return item
}

// RemoveRow deletes a row. The row also leaves the selection so a later
// batch cannot reference it.
func (s *Session) RemoveRow(id string) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	for i, item := range s.items {
		if item.ID() == id {
			s.items = append(s.items[:i], s.items[i+1:]...)
			s.selection.Deselect(id)
			return nil
		}
	}
	return fmt.Errorf("no row with id %s", id)
}

// SetItemName renames a row and re-runs the category classifier on the
// new name.
func (s *Session) SetItemName(id string, name string) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	item := s.item(id)
	if item == nil {
		return fmt.Errorf("no row with id %s", id)
	}
	item.Name = name
	item.Category = classifier.Classify(name)
	return nil
}

func (s *Session) SetItemQuantity(id string, quantity int) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	item := s.item(id)
	if item == nil {
		return fmt.Errorf("no row with id %s", id)
	}
	if quantity < 1 {
		quantity = 1
	}
	item.Quantity = quantity
	return nil
}

func (s *Session) SetItemUnitPrice(id string, price float64) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	item := s.item(id)
	if item == nil {
		return fmt.Errorf("no row with id %s", id)
	}
	if price < 0 {
		price = 0
	}
	item.UnitPrice = price
	if item.Manual {
		item.TotalPrice = price * float64(item.Quantity)
	}
	return nil
}

// SetItemTotalPrice overrides the row total independently of the unit
// price.
func (s *Session) SetItemTotalPrice(id string, price float64) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	item := s.item(id)
	if item == nil {
		return fmt.Errorf("no row with id %s", id)
	}
	if price < 0 {
		price = 0
	}
	item.TotalPrice = price
	return nil
}

// SetItemCategory overrides the classifier's guess for one row.
func (s *Session) SetItemCategory(id string, category models.Category) error {
	if !category.Valid() {
		return fmt.Errorf("invalid category %q", category)
	}
	s.mutex.Lock()
	defer s.mutex.Unlock()
	item := s.item(id)
	if item == nil {
		return fmt.Errorf("no row with id %s", id)
	}
	item.Category = category
	return nil
}

func (s *Session) AssignDepartment(id string, department string) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	item := s.item(id)
	if item == nil {
		return fmt.Errorf("no row with id %s", id)
	}
	item.AssignedDepartment = department
	return nil
}

// Reset empties the session: no invoice, no items, no selection, and
// default filters.
func (s *Session) Reset() {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	s.invoice = models.Invoice{}
	s.items = nil
	s.selection.Clear()
	s.toggles = visibility.Default()
	s.batchId = ""
}

// Ping makes sure the backends the session depends on are reachable.
func (s *Session) Ping() error {
	log.Debugf("Pinging dashboard backend")
	h, err := s.equipment.Healthz()
	if err != nil {
		return fmt.Errorf("unable to ping dashboard backend: %v", err)
	}
	if !h {
		return fmt.Errorf("dashboard backend is not healthy")
	}

	if s.extraction != nil {
		log.Debugf("Pinging extraction API")
		h, err = s.extraction.Healthz()
		if err != nil {
			return fmt.Errorf("unable to ping extraction API: %v", err)
		}
		if !h {
			return fmt.Errorf("extraction API is not healthy")
		}
	}
	return nil
}
