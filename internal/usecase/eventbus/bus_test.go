package eventbus

import (
	"context"
	"log/slog"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"flipctl/internal/domain"
)

func newTestBus() *Bus {
	return New(slog.Default())
}

func newEvent(t domain.EventType) domain.Event {
	return domain.Event{Type: t, Timestamp: time.Now()}
}

func TestPublishSubscribe(t *testing.T) {
	bus := newTestBus()

	var got atomic.Int32
	bus.Subscribe(domain.EventFlowStarted, func(_ context.Context, e domain.Event) {
		if e.Type == domain.EventFlowStarted {
			got.Add(1)
		}
	})

	bus.Publish(context.Background(), newEvent(domain.EventFlowStarted))
	bus.Close() // drain
	if got.Load() != 1 {
		t.Fatalf("expected 1, got %d", got.Load())
	}
}

func TestSubscribeAll(t *testing.T) {
	bus := newTestBus()

	var got atomic.Int32
	bus.SubscribeAll(func(_ context.Context, _ domain.Event) {
		got.Add(1)
	})

	bus.Publish(context.Background(), newEvent(domain.EventFlowStarted))
	bus.Publish(context.Background(), newEvent(domain.EventRunnerFinished))
	bus.Close()

	if got.Load() != 2 {
		t.Fatalf("expected 2, got %d", got.Load())
	}
}

func TestUnsubscribe(t *testing.T) {
	bus := newTestBus()

	var got atomic.Int32
	unsub := bus.Subscribe(domain.EventFlowStarted, func(_ context.Context, _ domain.Event) {
		got.Add(1)
	})

	unsub()
	bus.Publish(context.Background(), newEvent(domain.EventFlowStarted))
	bus.Close()

	if got.Load() != 0 {
		t.Fatalf("expected 0 after unsubscribe, got %d", got.Load())
	}
}

func TestConcurrentPublish(t *testing.T) {
	bus := newTestBus()

	var got atomic.Int32
	bus.Subscribe(domain.EventRunnerStarted, func(_ context.Context, _ domain.Event) {
		got.Add(1)
	})

	var wg sync.WaitGroup
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			bus.Publish(context.Background(), newEvent(domain.EventRunnerStarted))
		}()
	}
	wg.Wait()
	bus.Close()

	if got.Load() != 100 {
		t.Fatalf("expected 100, got %d", got.Load())
	}
}

func TestPanicRecovery(t *testing.T) {
	bus := newTestBus()

	var got atomic.Int32
	bus.Subscribe(domain.EventFlowFailed, func(_ context.Context, _ domain.Event) {
		panic("boom")
	})
	bus.Subscribe(domain.EventFlowFailed, func(_ context.Context, _ domain.Event) {
		got.Add(1)
	})

	bus.Publish(context.Background(), newEvent(domain.EventFlowFailed))
	bus.Close()

	if got.Load() != 1 {
		t.Fatalf("panicking handler should not stop others, got %d", got.Load())
	}
}

func TestCloseConcurrentWithPublish(t *testing.T) {
	bus := newTestBus()

	var started, finished atomic.Int32
	bus.SubscribeAll(func(_ context.Context, _ domain.Event) {
		started.Add(1)
		time.Sleep(time.Millisecond)
		finished.Add(1)
	})

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			bus.Publish(context.Background(), newEvent(domain.EventFlowStarted))
		}()
	}
	bus.Close()
	wg.Wait()

	// Every handler counted by a publish racing Close must have completed by
	// the time Close returned; a second Close observes the same drained state.
	bus.Close()
	if started.Load() != finished.Load() {
		t.Fatalf("started %d handlers but only %d finished after Close", started.Load(), finished.Load())
	}
}

func TestPublishAfterClose(t *testing.T) {
	bus := newTestBus()

	var got atomic.Int32
	bus.SubscribeAll(func(_ context.Context, _ domain.Event) {
		got.Add(1)
	})

	bus.Close()
	bus.Publish(context.Background(), newEvent(domain.EventFlowCompleted))
	bus.Close() // idempotent

	if got.Load() != 0 {
		t.Fatalf("publish after close should be dropped, got %d", got.Load())
	}
}
