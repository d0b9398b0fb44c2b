// Package anim drives frame animations from the UI goroutine.
//
// Timers never touch UI state: when one fires it only posts a Tick. The UI
// goroutine hands ticks back to Accept, which drops anything that was
// cancelled or replaced in the meantime.
package anim

import "time"

type Tick struct {
	Key string
	Gen uint64
}

type Timer interface {
	Stop() bool
}

type pending struct {
	gen   uint64
	timer Timer
}

// Scheduler keeps at most one pending timer per key. It is not safe for
// concurrent use; only timer callbacks run on other goroutines.
type Scheduler struct {
	afterFunc func(time.Duration, func()) Timer
	ticks     chan Tick
	done      chan struct{}
	pending   map[string]pending
	gen       uint64
}

func NewScheduler() *Scheduler {
	return &Scheduler{
		afterFunc: func(d time.Duration, f func()) Timer { return time.AfterFunc(d, f) },
		ticks:     make(chan Tick, 8),
		done:      make(chan struct{}),
		pending:   map[string]pending{},
	}
}

// C delivers fired ticks to the UI loop.
func (s *Scheduler) C() <-chan Tick {
	return s.ticks
}

// Schedule replaces any pending timer for key with one firing after d.
func (s *Scheduler) Schedule(key string, d time.Duration) uint64 {
	s.Cancel(key)
	s.gen++
	tick := Tick{Key: key, Gen: s.gen}
	timer := s.afterFunc(d, func() {
		select {
		case s.ticks <- tick:
		case <-s.done:
		}
	})
	s.pending[key] = pending{gen: tick.Gen, timer: timer}
	return tick.Gen
}

func (s *Scheduler) Cancel(key string) {
	p, ok := s.pending[key]
	if !ok {
		return
	}
	p.timer.Stop()
	delete(s.pending, key)
}

// Accept reports whether t is the live tick for its key and, if so, consumes
// it.
func (s *Scheduler) Accept(t Tick) bool {
	p, ok := s.pending[t.Key]
	if !ok || p.gen != t.Gen {
		return false
	}
	delete(s.pending, t.Key)
	return true
}

func (s *Scheduler) Pending(key string) bool {
	_, ok := s.pending[key]
	return ok
}

// Active counts pending timers across all keys.
func (s *Scheduler) Active() int {
	return len(s.pending)
}

// Close cancels everything and releases blocked timer callbacks.
func (s *Scheduler) Close() {
	for key := range s.pending {
		s.Cancel(key)
	}
	select {
	case <-s.done:
	default:
		close(s.done)
	}
}
