package importer

import (
	"sync"

	"github.com/opsdash/inventory-import/pkg/models"
)

type outcome struct {
	id  string
	err error
}

type worker struct {
	id       int
	ch       chan *models.LineItem
	outcomes chan<- outcome
	session  *Session
}

func newWorker(id int, ch chan *models.LineItem, outcomes chan<- outcome, session *Session) worker {
	return worker{id: id, ch: ch, outcomes: outcomes, session: session}
}

func (w *worker) do(item *models.LineItem) {
	log.Debugf("[W%d]: importing %s", w.id, item.ID())

	err := w.session.importItem(item)
	if err != nil {
		log.Errorf("[W%d]: %s cannot be imported: %v", w.id, item.ID(), err)
	}
	w.outcomes <- outcome{id: item.ID(), err: err}

	log.Debugf("[W%d]: done importing %s", w.id, item.ID())
}

func (w *worker) Start(wg *sync.WaitGroup) {
	for item := range w.ch {
		w.do(item)
	}
	wg.Done()
}
