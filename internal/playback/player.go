// Package playback drives a step sequence into a sink one step at a time,
// waiting a mutable delay between steps.
package playback

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/awmpietro/algoviz/internal/logging"
	"github.com/awmpietro/algoviz/internal/step"
)

// Sink receives applied steps in sequence order. Apply is never called
// concurrently for one player.
type Sink interface {
	Apply(s step.Step)
}

type SinkFunc func(s step.Step)

func (f SinkFunc) Apply(s step.Step) { f(s) }

// Player owns the single active session for one sink.
type Player struct {
	sink     Sink
	observer Observer
	logger   *slog.Logger

	mu      sync.Mutex
	current *Session
}

type Option func(*Player)

func WithObserver(o Observer) Option {
	return func(p *Player) {
		p.observer = o
	}
}

func WithLogger(l *slog.Logger) Option {
	return func(p *Player) {
		p.logger = l
	}
}

func NewPlayer(sink Sink, opts ...Option) *Player {
	p := &Player{sink: sink}
	for _, opt := range opts {
		opt(p)
	}
	if p.logger == nil {
		p.logger = logging.NewNop()
	}
	p.logger = logging.Component(p.logger, "playback")
	return p
}

// Start begins a new session at cursor 0. When a session is already Running
// it is returned unchanged with false and nothing else happens. A Paused
// session is cancelled first so it can never be resumed alongside the new
// one, and the new session starts only after the previous run loop has
// left Sink.Apply. Start must not be called from Sink.Apply. Cancelling ctx
// cancels the session.
func (p *Player) Start(ctx context.Context, seq step.Sequence, delay time.Duration) (*Session, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()

	for cur := p.current; cur != nil; cur = p.current {
		switch cur.Status() {
		case Running:
			p.logger.Debug("start ignored, session running", "algorithm", cur.seq.Algorithm, "cursor", cur.Cursor())
			return cur, false
		case Paused:
			cur.Cancel()
		}

		exited := cur.loopExited()
		if closed(exited) {
			break
		}
		p.mu.Unlock()
		<-exited
		p.mu.Lock()
		if p.current == cur {
			break
		}
	}

	s := &Session{
		player:   p,
		ctx:      ctx,
		seq:      seq,
		delay:    max(delay, 0),
		terminal: make(chan struct{}),
	}
	p.current = s
	s.launch()
	return s, true
}

func closed(ch <-chan struct{}) bool {
	select {
	case <-ch:
		return true
	default:
		return false
	}
}

// Current returns the most recently started session, or nil.
func (p *Player) Current() *Session {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.current
}

// Status is the status of the current session, Idle when none was started.
func (p *Player) Status() Status {
	if s := p.Current(); s != nil {
		return s.Status()
	}
	return Idle
}

func (p *Player) observeStep(ev StepEvent) {
	if p.observer != nil {
		p.observer.ObserveStep(ev)
	}
}

func (p *Player) observeSession(ev SessionEvent) {
	p.logger.Debug("session status", "algorithm", ev.Algorithm, "status", ev.Status.String(), "cursor", ev.Cursor, "steps", ev.Steps)
	if p.observer != nil {
		p.observer.ObserveSession(ev)
	}
}
