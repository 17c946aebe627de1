package audit

import (
	"context"
	"log/slog"
	"sync"

	"github.com/google/uuid"

	"quod/pkg/requestcontext"
)

// Publisher captures structured audit events. It is append-only and uses the
// storage layer for persistence so tests can swap sinks easily. An optional
// async buffer decouples emission from the hot path; an optional sink fans
// events out (e.g. kafka) after local persistence.
type Publisher struct {
	store  Store
	sink   Sink
	logger *slog.Logger

	inbox chan Event
	wg    sync.WaitGroup
	once  sync.Once
}

// PublisherOption configures a Publisher.
type PublisherOption func(*Publisher)

// WithAsyncBuffer makes Emit enqueue events onto a buffered channel drained
// by a background worker. When the buffer is full the event is dropped with a
// warning; audit must never block a verification.
func WithAsyncBuffer(size int) PublisherOption {
	return func(p *Publisher) {
		if size > 0 {
			p.inbox = make(chan Event, size)
		}
	}
}

// WithSink attaches a fan-out sink invoked after local persistence.
func WithSink(sink Sink) PublisherOption {
	return func(p *Publisher) {
		p.sink = sink
	}
}

// WithLogger sets the publisher logger.
func WithLogger(logger *slog.Logger) PublisherOption {
	return func(p *Publisher) {
		if logger != nil {
			p.logger = logger
		}
	}
}

// NewPublisher constructs a publisher over the given store.
func NewPublisher(store Store, opts ...PublisherOption) *Publisher {
	p := &Publisher{store: store, logger: slog.Default()}
	for _, opt := range opts {
		opt(p)
	}
	if p.inbox != nil {
		p.wg.Add(1)
		go p.drain()
	}
	return p
}

// Emit records the event, stamping id and timestamp when absent.
func (p *Publisher) Emit(ctx context.Context, event Event) error {
	if event.ID == "" {
		event.ID = uuid.New().String()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = requestcontext.Now(ctx)
	}

	if p.inbox != nil {
		select {
		case p.inbox <- event:
		default:
			p.logger.Warn("audit buffer full, dropping event",
				"action", event.Action, "user_id", event.UserID)
		}
		return nil
	}
	return p.record(ctx, event)
}

// List returns the audit trail for one user.
func (p *Publisher) List(ctx context.Context, userID string) ([]Event, error) {
	return p.store.ListByUser(ctx, userID)
}

// Close stops the async worker after the buffer is drained. Safe to call on
// synchronous publishers and more than once.
func (p *Publisher) Close() {
	p.once.Do(func() {
		if p.inbox != nil {
			close(p.inbox)
		}
	})
	p.wg.Wait()
}

func (p *Publisher) drain() {
	defer p.wg.Done()
	for event := range p.inbox {
		if err := p.record(context.Background(), event); err != nil {
			p.logger.Warn("audit event persist failed",
				"action", event.Action, "error", err)
		}
	}
}

func (p *Publisher) record(ctx context.Context, event Event) error {
	if err := p.store.Append(ctx, event); err != nil {
		return err
	}
	if p.sink != nil {
		if err := p.sink.Publish(ctx, event); err != nil {
			p.logger.Warn("audit sink publish failed",
				"action", event.Action, "error", err)
		}
	}
	return nil
}
