package audit

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

type Event struct {
	ActorID  string
	Action   string
	Entity   string
	EntityID string
	Metadata any
}

// Sink persists a single event.
type Sink interface {
	Record(ctx context.Context, ev Event) error
}

type Dispatcher struct {
	sink   Sink
	logger zerolog.Logger
	queue  chan Event
	wg     sync.WaitGroup
}

func NewDispatcher(sink Sink, logger zerolog.Logger) *Dispatcher {
	d := &Dispatcher{
		sink:   sink,
		logger: logger,
		queue:  make(chan Event, 100),
	}

	d.wg.Add(1)
	go d.worker()
	return d
}

func (d *Dispatcher) worker() {
	defer d.wg.Done()
	for ev := range d.queue {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		if err := d.sink.Record(ctx, ev); err != nil {
			d.logger.Error().Err(err).
				Str("action", ev.Action).
				Str("entity_id", ev.EntityID).
				Msg("audit write failed")
		}
		cancel()
	}
}

// Dispatch never blocks the request: when the queue is full the event is dropped.
// A nil Dispatcher discards everything.
func (d *Dispatcher) Dispatch(ev Event) {
	if d == nil {
		return
	}
	select {
	case d.queue <- ev:
	default:
		d.logger.Warn().Str("action", ev.Action).Msg("audit queue full, dropping event")
	}
}

// Close drains pending events and stops the worker.
func (d *Dispatcher) Close() {
	if d == nil {
		return
	}
	close(d.queue)
	d.wg.Wait()
}
