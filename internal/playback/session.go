package playback

import (
	"context"
	"sync"
	"time"

	"github.com/awmpietro/algoviz/internal/step"
)

// Session is one run of a sequence. Its cursor only moves forward; pausing
// or cancelling never undoes applied steps.
type Session struct {
	player *Player
	ctx    context.Context
	seq    step.Sequence

	mu     sync.Mutex
	status Status
	cursor int
	delay  time.Duration
	stop   chan struct{} // closed to interrupt the current run loop
	exited chan struct{} // closed when the current run loop returns
	// applying is set while the loop is inside Sink.Apply.
	applying bool

	terminal     chan struct{}
	terminalOnce sync.Once
}

// launch starts a run loop from the current cursor. Callers must not hold mu.
func (s *Session) launch() {
	s.mu.Lock()
	s.status = Running
	stop, exited := make(chan struct{}), make(chan struct{})
	s.stop, s.exited = stop, exited
	ev := s.eventLocked()
	s.mu.Unlock()

	s.player.observeSession(ev)
	go s.loop(stop, exited)
}

func (s *Session) loop(stop <-chan struct{}, exited chan<- struct{}) {
	defer close(exited)

	for {
		s.mu.Lock()
		if s.status != Running {
			s.mu.Unlock()
			return
		}
		if s.ctx.Err() != nil {
			s.finishLocked(Cancelled)
			return
		}
		if s.cursor >= len(s.seq.Steps) {
			s.finishLocked(Completed)
			return
		}
		i := s.cursor
		s.applying = true
		s.mu.Unlock()

		st := s.seq.At(i)
		begin := time.Now()
		s.player.sink.Apply(st)
		took := time.Since(begin)

		s.mu.Lock()
		s.applying = false
		s.cursor++
		delay := s.delay
		last := s.cursor >= len(s.seq.Steps)
		// a Cancel that arrived during Apply is reported once the step counts
		cancelled := s.status == Cancelled
		ev := s.eventLocked()
		s.mu.Unlock()

		s.player.observeStep(StepEvent{Algorithm: s.seq.Algorithm, Index: i, Step: st, Duration: took})

		if cancelled {
			s.notifyTerminal(ev)
			return
		}
		if last || delay <= 0 {
			continue
		}
		timer := time.NewTimer(delay)
		select {
		case <-timer.C:
		case <-stop:
			timer.Stop()
		case <-s.ctx.Done():
			timer.Stop()
		}
	}
}

// finishLocked moves to a terminal status, releases mu, and notifies.
func (s *Session) finishLocked(status Status) {
	s.status = status
	ev := s.eventLocked()
	s.mu.Unlock()

	s.notifyTerminal(ev)
}

func (s *Session) notifyTerminal(ev SessionEvent) {
	s.terminalOnce.Do(func() { close(s.terminal) })
	s.player.observeSession(ev)
}

// loopExited returns the channel closed when the latest run loop returns.
func (s *Session) loopExited() <-chan struct{} {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.exited
}

func (s *Session) eventLocked() SessionEvent {
	return SessionEvent{Algorithm: s.seq.Algorithm, Status: s.status, Cursor: s.cursor, Steps: len(s.seq.Steps)}
}

func (s *Session) Algorithm() string { return s.seq.Algorithm }

func (s *Session) Len() int { return len(s.seq.Steps) }

func (s *Session) Status() Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.status
}

// Cursor is the index of the next step to apply, which equals the number of
// steps applied so far.
func (s *Session) Cursor() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cursor
}

func (s *Session) Delay() time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.delay
}

// SetDelay changes the wait that follows the step being applied now. A wait
// already in progress keeps its original length.
func (s *Session) SetDelay(d time.Duration) {
	s.mu.Lock()
	s.delay = max(d, 0)
	s.mu.Unlock()
}

// Cancel stops the session for good. It does not block, so it is safe to
// call from Sink.Apply; use Wait to observe the loop exit. A step being
// applied when Cancel is called still counts, and the Cancelled event is
// emitted after it with the final cursor.
func (s *Session) Cancel() {
	s.mu.Lock()
	switch s.status {
	case Running:
		close(s.stop)
	case Paused:
	default:
		s.mu.Unlock()
		return
	}
	if s.applying {
		s.status = Cancelled
		s.mu.Unlock()
		return
	}
	s.finishLocked(Cancelled)
}

// Pause stops applying steps but keeps the cursor so Resume can continue.
// It reports false when the session was not Running.
func (s *Session) Pause() bool {
	s.mu.Lock()
	if s.status != Running {
		s.mu.Unlock()
		return false
	}
	s.status = Paused
	close(s.stop)
	ev := s.eventLocked()
	s.mu.Unlock()

	s.player.observeSession(ev)
	return true
}

// Resume continues a Paused session from its cursor. It reports false when
// the session was not Paused. It must not be called from Sink.Apply.
func (s *Session) Resume() bool {
	s.mu.Lock()
	if s.status != Paused {
		s.mu.Unlock()
		return false
	}
	exited := s.exited
	s.mu.Unlock()

	// the paused loop may still be finishing its last Apply
	<-exited

	s.mu.Lock()
	if s.status != Paused {
		s.mu.Unlock()
		return false
	}
	s.mu.Unlock()
	s.launch()
	return true
}

// Done is closed once the session is Completed or Cancelled.
func (s *Session) Done() <-chan struct{} { return s.terminal }

// Wait blocks until the session is Completed or Cancelled and its run loop
// has returned, or until ctx ends.
func (s *Session) Wait(ctx context.Context) (Status, error) {
	select {
	case <-s.terminal:
	case <-ctx.Done():
		return s.Status(), ctx.Err()
	}

	s.mu.Lock()
	exited := s.exited
	s.mu.Unlock()

	select {
	case <-exited:
		return s.Status(), nil
	case <-ctx.Done():
		return s.Status(), ctx.Err()
	}
}
