package loop_test

import (
	"testing"
	"time"

	"wellquest/internal/platform/loop"
)

func TestTimersFireOncePerElapsedInterval(t *testing.T) {
	t.Parallel()
	start := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	l := loop.New(start)
	scope := l.Scope()

	var ticks int
	scope.Every(time.Second, func(time.Time) { ticks++ })

	l.Advance(start.Add(500 * time.Millisecond))
	if ticks != 0 {
		t.Fatalf("timer fired before its interval elapsed: %d", ticks)
	}
	l.Advance(start.Add(3 * time.Second))
	if ticks != 3 {
		t.Fatalf("expected 3 catch-up ticks, got %d", ticks)
	}
}

func TestReleaseDeregistersEveryHandle(t *testing.T) {
	t.Parallel()
	start := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	l := loop.New(start)
	scope := l.Scope()

	var fired int
	scope.Every(time.Second, func(time.Time) { fired++ })
	scope.OnKeyDown(func(string) { fired++ })
	scope.OnKeyUp(func(string) { fired++ })
	scope.OnPointerDown(func(int) { fired++ })

	scope.Release()
	scope.Release() // idempotent

	l.Advance(start.Add(5 * time.Second))
	l.KeyDown("space")
	l.KeyUp("space")
	l.PointerDown(3)
	if fired != 0 {
		t.Fatalf("released scope still received %d events", fired)
	}
	if !scope.Released() {
		t.Fatalf("scope must report released")
	}
}

func TestReleaseOnlyDropsOwnHandles(t *testing.T) {
	t.Parallel()
	start := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	l := loop.New(start)
	first := l.Scope()
	second := l.Scope()

	var a, b int
	first.OnKeyDown(func(string) { a++ })
	second.OnKeyDown(func(string) { b++ })

	first.Release()
	l.KeyDown("space")
	if a != 0 || b != 1 {
		t.Fatalf("expected only the surviving scope to fire, got a=%d b=%d", a, b)
	}
}

func TestRegistrationOnReleasedScopeIsDropped(t *testing.T) {
	t.Parallel()
	l := loop.New(time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC))
	scope := l.Scope()
	scope.Release()

	var fired int
	scope.Every(time.Second, func(time.Time) { fired++ })
	scope.OnKeyDown(func(string) { fired++ })

	l.Advance(l.Now().Add(2 * time.Second))
	l.KeyDown("space")
	if fired != 0 {
		t.Fatalf("released scope accepted registrations: %d", fired)
	}
}
