package events

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"sync"
	"time"

	"beryllium.app/bot/common/logger"
	"go.opentelemetry.io/otel/attribute"
	"golang.org/x/sync/errgroup"
)

// Handler reacts to published events. Returned errors are logged by the bus
// and never reach the publisher.
type Handler interface {
	HandleEvent(ctx context.Context, ev Event) error
}

type HandlerFunc func(ctx context.Context, ev Event) error

func (f HandlerFunc) HandleEvent(ctx context.Context, ev Event) error {
	return f(ctx, ev)
}

// Publisher broadcasts events. Publishing has no failure mode visible to the caller.
type Publisher interface {
	Publish(ctx context.Context, ev Event)
}

type subscription struct {
	name    string
	handler Handler
	kinds   []Kind
}

func (s subscription) wants(kind Kind) bool {
	return len(s.kinds) == 0 || slices.Contains(s.kinds, kind)
}

// Bus is an in-process publish/subscribe fan-out. Publish delivers an event to
// every matching subscriber concurrently and returns once all have finished.
type Bus struct {
	mu          sync.RWMutex
	subs        []subscription
	concurrency int
}

func NewBus(concurrency int) *Bus {
	if concurrency <= 0 {
		concurrency = 4
	}
	return &Bus{concurrency: concurrency}
}

// Subscribe registers handler for the given kinds, or for every kind when none are given.
func (b *Bus) Subscribe(name string, handler Handler, kinds ...Kind) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.subs = append(b.subs, subscription{name: name, handler: handler, kinds: kinds})
}

func (b *Bus) Publish(ctx context.Context, ev Event) {
	b.mu.RLock()
	subs := make([]subscription, 0, len(b.subs))
	for _, s := range b.subs {
		if s.wants(ev.Kind) {
			subs = append(subs, s)
		}
	}
	b.mu.RUnlock()

	eventsPublished.WithLabelValues(string(ev.Kind)).Inc()

	ctx = logger.WithLogFields(ctx, logger.LogFields{
		EventID:   logger.Ptr(ev.ID),
		CaseID:    logger.Ptr(ev.Infraction.CaseID),
		Component: "beryllium.events.bus",
	})

	sc := logger.StartSpan(ctx, "events.publish")
	defer sc.End()
	sc.SetAttributes(
		attribute.String("event.kind", string(ev.Kind)),
		attribute.Int("event.subscribers", len(subs)),
	)
	ctx = sc.Context()

	if len(subs) == 0 {
		slog.DebugContext(ctx, "no subscribers for event", "kind", ev.Kind)
		return
	}

	var g errgroup.Group
	g.SetLimit(b.concurrency)
	for _, s := range subs {
		g.Go(func() error {
			b.deliver(ctx, s, ev)
			return nil
		})
	}
	_ = g.Wait()
}

func (b *Bus) deliver(ctx context.Context, s subscription, ev Event) {
	start := time.Now()
	defer func() {
		handlerDuration.WithLabelValues(s.name).Observe(time.Since(start).Seconds())
	}()

	if err := safeHandle(ctx, s.handler, ev); err != nil {
		handlerFailures.WithLabelValues(s.name).Inc()
		slog.ErrorContext(ctx, "event subscriber failed",
			"subscriber", s.name,
			"kind", ev.Kind,
			"error", err)
	}
}

func safeHandle(ctx context.Context, h Handler, ev Event) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic in subscriber: %v", r)
		}
	}()
	return h.HandleEvent(ctx, ev)
}
