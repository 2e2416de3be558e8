package playback

import (
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/awmpietro/algoviz/internal/step"
)

// StepEvent describes one applied step and how long the sink took.
type StepEvent struct {
	Algorithm string
	Index     int
	Step      step.Step
	Duration  time.Duration
}

// SessionEvent is emitted on every status transition.
type SessionEvent struct {
	Algorithm string
	Status    Status
	Cursor    int
	Steps     int
}

// Observer is notified from the run loop; implementations must be fast or
// hand off to AsyncObserver.
type Observer interface {
	ObserveStep(ev StepEvent)
	ObserveSession(ev SessionEvent)
}

type LogObserver struct {
	logger *slog.Logger
}

func NewLogObserver(logger *slog.Logger) *LogObserver {
	return &LogObserver{logger: logger}
}

func (l *LogObserver) ObserveStep(ev StepEvent) {
	if l == nil || l.logger == nil {
		return
	}
	l.logger.Debug("playback_step",
		"algorithm", ev.Algorithm,
		"index", ev.Index,
		"kind", ev.Step.Kind.String(),
		"duration_ms", float64(ev.Duration.Microseconds())/1000.0,
	)
}

func (l *LogObserver) ObserveSession(ev SessionEvent) {
	if l == nil || l.logger == nil {
		return
	}
	l.logger.Info("playback_session",
		"algorithm", ev.Algorithm,
		"status", ev.Status.String(),
		"cursor", ev.Cursor,
		"steps", ev.Steps,
	)
}

// MultiObserver fans every event out to each observer in order.
type MultiObserver []Observer

func (m MultiObserver) ObserveStep(ev StepEvent) {
	for _, o := range m {
		if o != nil {
			o.ObserveStep(ev)
		}
	}
}

func (m MultiObserver) ObserveSession(ev SessionEvent) {
	for _, o := range m {
		if o != nil {
			o.ObserveSession(ev)
		}
	}
}

// AsyncObserver forwards events to next on its own goroutine. When the
// buffer is full events are dropped and counted rather than stalling the
// run loop.
type AsyncObserver struct {
	next    Observer
	events  chan event
	once    sync.Once
	mu      sync.RWMutex
	closed  bool
	wg      sync.WaitGroup
	dropped atomic.Uint64
}

type event struct {
	step    *StepEvent
	session *SessionEvent
}

func NewAsyncObserver(next Observer, buffer int) *AsyncObserver {
	if buffer <= 0 {
		buffer = 1
	}

	o := &AsyncObserver{
		next:   next,
		events: make(chan event, buffer),
	}

	o.wg.Add(1)
	go func() {
		defer o.wg.Done()
		for ev := range o.events {
			if o.next == nil {
				continue
			}
			if ev.step != nil {
				o.next.ObserveStep(*ev.step)
			} else {
				o.next.ObserveSession(*ev.session)
			}
		}
	}()

	return o
}

func (o *AsyncObserver) ObserveStep(ev StepEvent) { o.enqueue(event{step: &ev}) }

func (o *AsyncObserver) ObserveSession(ev SessionEvent) { o.enqueue(event{session: &ev}) }

func (o *AsyncObserver) enqueue(ev event) {
	if o == nil {
		return
	}
	o.mu.RLock()
	defer o.mu.RUnlock()
	if o.closed {
		o.dropped.Add(1)
		return
	}
	select {
	case o.events <- ev:
	default:
		o.dropped.Add(1)
	}
}

func (o *AsyncObserver) Dropped() uint64 {
	if o == nil {
		return 0
	}
	return o.dropped.Load()
}

// Close drains buffered events into next and stops the worker. Later events
// are dropped.
func (o *AsyncObserver) Close() {
	if o == nil {
		return
	}
	o.once.Do(func() {
		o.mu.Lock()
		o.closed = true
		close(o.events)
		o.mu.Unlock()
		o.wg.Wait()
	})
}
