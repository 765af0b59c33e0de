package async

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/crimson-sun/strictwatch/internal/notify"
)

type mockNotifier struct {
	mu          sync.Mutex
	received    []notify.Notification
	closed      bool
	hadDeadline bool
	err         error         // if set, Notify returns this
	delay       time.Duration // if >0, Notify sleeps first
}

func (m *mockNotifier) Notify(ctx context.Context, n notify.Notification) error {
	if m.delay > 0 {
		time.Sleep(m.delay)
	}
	_, ok := ctx.Deadline()
	m.mu.Lock()
	m.received = append(m.received, n)
	m.hadDeadline = ok
	m.mu.Unlock()
	return m.err
}

func (m *mockNotifier) Close() error {
	m.mu.Lock()
	m.closed = true
	m.mu.Unlock()
	return nil
}

func (m *mockNotifier) count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.received)
}

func note(id string) notify.Notification {
	return notify.Notification{Title: "Disk write", Target: notify.Target{IncidentID: id}}
}

func TestNotificationsFlowThroughInOrder(t *testing.T) {
	inner := &mockNotifier{}
	a := New(inner, WithBufferSize(16))

	ids := []string{"a", "b", "c", "d"}
	for _, id := range ids {
		if err := a.Notify(context.Background(), note(id)); err != nil {
			t.Fatalf("Notify error: %v", err)
		}
	}
	if err := a.Close(); err != nil {
		t.Fatalf("Close error: %v", err)
	}

	if inner.count() != len(ids) {
		t.Fatalf("got %d notifications, want %d", inner.count(), len(ids))
	}
	for i, id := range ids {
		if inner.received[i].Target.IncidentID != id {
			t.Errorf("notification %d = %q, want %q", i, inner.received[i].Target.IncidentID, id)
		}
	}
	if !inner.closed {
		t.Error("inner notifier not closed")
	}
}

func TestNotifyDoesNotWaitForSlowSink(t *testing.T) {
	inner := &mockNotifier{delay: 200 * time.Millisecond}
	a := New(inner, WithBufferSize(4))
	defer a.Close()

	start := time.Now()
	a.Notify(context.Background(), note("slow"))
	if elapsed := time.Since(start); elapsed > 100*time.Millisecond {
		t.Fatalf("Notify blocked for %v", elapsed)
	}
}

func TestDropOnFull(t *testing.T) {
	inner := &mockNotifier{delay: 100 * time.Millisecond}
	a := New(inner, WithBufferSize(1), WithDropOnFull())

	for i := 0; i < 20; i++ {
		a.Notify(context.Background(), note("burst"))
	}
	a.Close()

	if inner.count() == 20 {
		t.Error("expected some notifications to be dropped in drop-on-full mode")
	}
	if inner.count() == 0 {
		t.Error("expected at least some notifications to be delivered")
	}
	if got := a.Dropped() + int64(inner.count()); got != 20 {
		t.Errorf("dropped + delivered = %d, want 20", got)
	}
}

func TestErrorCallbackInvoked(t *testing.T) {
	inner := &mockNotifier{err: errors.New("daemon unavailable")}
	var errorCount atomic.Int64
	var mu sync.Mutex
	var failed []string
	a := New(inner, WithBufferSize(16), WithOnError(func(n notify.Notification, _ error) {
		errorCount.Add(1)
		mu.Lock()
		failed = append(failed, n.Target.IncidentID)
		mu.Unlock()
	}))

	for _, id := range []string{"f1", "f2", "f3", "f4", "f5"} {
		a.Notify(context.Background(), note(id))
	}
	a.Close()

	if errorCount.Load() != 5 {
		t.Errorf("error callback called %d times, want 5", errorCount.Load())
	}
	mu.Lock()
	defer mu.Unlock()
	if len(failed) != 5 || failed[0] != "f1" || failed[4] != "f5" {
		t.Errorf("failed incidents = %v", failed)
	}
}

func TestDeliveryHasDeadline(t *testing.T) {
	inner := &mockNotifier{}
	a := New(inner, WithDeliveryTimeout(time.Second))
	a.Notify(context.Background(), note("deadline"))
	a.Close()

	inner.mu.Lock()
	defer inner.mu.Unlock()
	if !inner.hadDeadline {
		t.Error("inner Notify ran without a deadline")
	}
}

func TestNotifyAfterClose(t *testing.T) {
	a := New(&mockNotifier{})
	a.Close()

	if err := a.Notify(context.Background(), note("late")); !errors.Is(err, ErrClosed) {
		t.Errorf("Notify after Close = %v, want ErrClosed", err)
	}
}

func TestBlockedNotifyHonoursContext(t *testing.T) {
	inner := &mockNotifier{delay: 300 * time.Millisecond}
	a := New(inner, WithBufferSize(1))
	defer a.Close()

	// One in delivery, one buffered; the third has to wait.
	a.Notify(context.Background(), note("1"))
	time.Sleep(20 * time.Millisecond)
	a.Notify(context.Background(), note("2"))

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	if err := a.Notify(ctx, note("3")); !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("Notify on full buffer = %v, want DeadlineExceeded", err)
	}
}

func TestCloseIdempotent(t *testing.T) {
	a := New(&mockNotifier{}, WithBufferSize(16))
	a.Notify(context.Background(), note("once"))

	if err := a.Close(); err != nil {
		t.Fatalf("first Close error: %v", err)
	}
	if err := a.Close(); err != nil {
		t.Fatalf("second Close error: %v", err)
	}
	select {
	case <-a.done:
	case <-time.After(time.Second):
		t.Fatal("drain goroutine did not exit after Close")
	}
}
