// Package loop implements the single-threaded cooperative scheduler that
// hosts game sessions. The owning event loop (the TUI, or a test) pumps it
// with Advance and the discrete input events; the loop fires interval timers
// and key/pointer subscriptions in registration order. Nothing here is safe
// for concurrent use and nothing needs to be: all handlers for one loop run
// serialized on the caller's goroutine.
package loop

import "time"

type timer struct {
	id       int
	interval time.Duration
	next     time.Time
	fn       func(now time.Time)
}

type keySub struct {
	id int
	fn func(code string)
}

type pointerSub struct {
	id int
	fn func(target int)
}

type Loop struct {
	nextID   int
	now      time.Time
	timers   []*timer
	keyDown  []*keySub
	keyUp    []*keySub
	pointers []*pointerSub
}

func New(start time.Time) *Loop {
	return &Loop{now: start}
}

// Advance moves the loop clock forward and fires every due timer, oldest
// registration first. A timer that falls behind fires once per elapsed
// interval so countdowns stay accurate across slow hosts.
func (l *Loop) Advance(now time.Time) {
	if now.Before(l.now) {
		return
	}
	l.now = now
	for {
		fired := false
		for _, t := range l.timers {
			if !t.next.After(now) {
				t.next = t.next.Add(t.interval)
				t.fn(now)
				fired = true
				break
			}
		}
		if !fired {
			return
		}
	}
}

func (l *Loop) Now() time.Time { return l.now }

func (l *Loop) KeyDown(code string) {
	for _, s := range append([]*keySub(nil), l.keyDown...) {
		s.fn(code)
	}
}

func (l *Loop) KeyUp(code string) {
	for _, s := range append([]*keySub(nil), l.keyUp...) {
		s.fn(code)
	}
}

func (l *Loop) PointerDown(target int) {
	for _, s := range append([]*pointerSub(nil), l.pointers...) {
		s.fn(target)
	}
}

// Scope is the per-session handle bag. Everything a session registers during
// Initialize lands in one scope, and Release deregisters all of it in one
// place, so an abandoned session cannot leak a timer or listener.
type Scope struct {
	loop     *Loop
	released bool
	timers   []int
	keyDown  []int
	keyUp    []int
	pointers []int
}

func (l *Loop) Scope() *Scope {
	return &Scope{loop: l}
}

func (s *Scope) Every(interval time.Duration, fn func(now time.Time)) {
	if s.released || interval <= 0 {
		return
	}
	l := s.loop
	l.nextID++
	l.timers = append(l.timers, &timer{id: l.nextID, interval: interval, next: l.now.Add(interval), fn: fn})
	s.timers = append(s.timers, l.nextID)
}

func (s *Scope) OnKeyDown(fn func(code string)) {
	if s.released {
		return
	}
	l := s.loop
	l.nextID++
	l.keyDown = append(l.keyDown, &keySub{id: l.nextID, fn: fn})
	s.keyDown = append(s.keyDown, l.nextID)
}

func (s *Scope) OnKeyUp(fn func(code string)) {
	if s.released {
		return
	}
	l := s.loop
	l.nextID++
	l.keyUp = append(l.keyUp, &keySub{id: l.nextID, fn: fn})
	s.keyUp = append(s.keyUp, l.nextID)
}

func (s *Scope) OnPointerDown(fn func(target int)) {
	if s.released {
		return
	}
	l := s.loop
	l.nextID++
	l.pointers = append(l.pointers, &pointerSub{id: l.nextID, fn: fn})
	s.pointers = append(s.pointers, l.nextID)
}

// Release deregisters every handle owned by the scope. Safe to call more
// than once; further registrations on a released scope are dropped.
func (s *Scope) Release() {
	if s.released {
		return
	}
	s.released = true
	l := s.loop
	l.timers = dropTimers(l.timers, s.timers)
	l.keyDown = dropKeys(l.keyDown, s.keyDown)
	l.keyUp = dropKeys(l.keyUp, s.keyUp)
	l.pointers = dropPointers(l.pointers, s.pointers)
	s.timers, s.keyDown, s.keyUp, s.pointers = nil, nil, nil, nil
}

func (s *Scope) Released() bool { return s.released }

func dropTimers(all []*timer, ids []int) []*timer {
	kept := all[:0]
	for _, t := range all {
		if !containsID(ids, t.id) {
			kept = append(kept, t)
		}
	}
	return kept
}

func dropKeys(all []*keySub, ids []int) []*keySub {
	kept := all[:0]
	for _, k := range all {
		if !containsID(ids, k.id) {
			kept = append(kept, k)
		}
	}
	return kept
}

func dropPointers(all []*pointerSub, ids []int) []*pointerSub {
	kept := all[:0]
	for _, p := range all {
		if !containsID(ids, p.id) {
			kept = append(kept, p)
		}
	}
	return kept
}

func containsID(ids []int, id int) bool {
	for _, candidate := range ids {
		if candidate == id {
			return true
		}
	}
	return false
}
