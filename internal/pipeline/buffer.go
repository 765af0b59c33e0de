package pipeline

import (
	"sync"
	"time"

	"github.com/crimson-sun/strictwatch/internal/model"
)

// stopper is the part of *time.Timer the buffer needs.
type stopper interface {
	Stop() bool
}

func afterFunc(d time.Duration, f func()) stopper {
	return time.AfterFunc(d, f)
}

// incidentBuffer groups records into incidents. A group ends when a header
// line follows a continuation line, or when the stream has been quiet for
// settle since the group's last record. Groups are inspected delay after the
// first record arrives; an unsettled trailing group is carried over and
// inspected again after another delay.
type incidentBuffer struct {
	delay  time.Duration
	settle time.Duration
	emit   func([]model.LogRecord)

	now      func() time.Time
	schedule func(time.Duration, func()) stopper

	mu      sync.Mutex
	pending []model.LogRecord
	timer   stopper
	closed  bool
}

func newIncidentBuffer(delay, settle time.Duration, emit func([]model.LogRecord)) *incidentBuffer {
	return &incidentBuffer{
		delay:    delay,
		settle:   settle,
		emit:     emit,
		now:      time.Now,
		schedule: afterFunc,
	}
}

// add appends a record and arms the timer if none is pending.
func (b *incidentBuffer) add(r model.LogRecord) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return
	}
	b.pending = append(b.pending, r)
	if b.timer == nil {
		b.timer = b.schedule(b.delay, b.fire)
	}
}

// fire runs on the timer. emit is called with the lock held.
func (b *incidentBuffer) fire() {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return
	}

	var group []model.LogRecord
	prevContinuation := false
	for _, r := range b.pending {
		continuation := r.IsContinuation()
		if !continuation && prevContinuation && len(group) > 0 {
			b.emit(group)
			group = nil
		}
		prevContinuation = continuation
		group = append(group, r)
	}

	if len(group) > 0 && b.now().Sub(group[len(group)-1].ObservedAt) >= b.settle {
		b.emit(group)
		group = nil
	}
	b.timer = nil

	if len(group) > 0 {
		b.pending = group
		b.timer = b.schedule(b.delay, b.fire)
	} else {
		b.pending = nil
	}
}

// stop cancels the pending timer and drops unflushed records. A timer that
// has already started waits for the lock and then does nothing.
func (b *incidentBuffer) stop() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.closed = true
	if b.timer != nil {
		b.timer.Stop()
		b.timer = nil
	}
	b.pending = nil
}
