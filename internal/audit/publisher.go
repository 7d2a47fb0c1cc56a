package audit

import (
	"context"
	"time"
)

// Publisher enqueues audit events for the background worker. Emit stamps the
// timestamp and blocks only while the inbox is full, bounded by ctx.
type Publisher struct {
	inbox chan<- Event
}

func NewPublisher(inbox chan<- Event) *Publisher {
	return &Publisher{inbox: inbox}
}

func (p *Publisher) Emit(ctx context.Context, event Event) error {
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}
	select {
	case p.inbox <- event:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// NewPipeline wires a publisher to a worker draining into store. The caller
// starts the worker and owns its lifecycle.
func NewPipeline(store Store, buffer int) (*Publisher, *Worker) {
	inbox := make(chan Event, buffer)
	return NewPublisher(inbox), NewWorker(store, inbox)
}
