package domain

import (
	"fmt"
	"time"

	catalog "wellquest/internal/modules/catalog/domain"
	"wellquest/internal/platform/clock"
	"wellquest/internal/platform/loop"
)

const (
	runStepMeters   = 10
	runStepDebounce = 200 * time.Millisecond
)

// runSession is the virtual runner: each space press is a stride, evenly
// paced strides earn a consistency bonus, and the distance target must fall
// before the countdown does.
type runSession struct {
	core

	distance  int
	lastStep  time.Time
	intervals []time.Duration
}

func newRunSession(def catalog.GameDefinition, tier int, scope *loop.Scope, clk clock.Clock) *runSession {
	return &runSession{core: newCore(def, tier, scope, clk)}
}

func (s *runSession) Initialize() {
	if s.state != StateReady {
		return
	}
	bindInput(s, s.scope)
	s.begin(nil)
}

func (s *runSession) KeyDown(code string) {
	if !s.active() {
		return
	}
	if code == CodePause {
		s.togglePause()
		return
	}
	if code != CodeSpace || s.paused {
		return
	}
	now := s.clk.Now()
	if !s.lastStep.IsZero() {
		gap := now.Sub(s.lastStep)
		if gap < runStepDebounce {
			return
		}
		s.intervals = append(s.intervals, gap)
	}
	s.lastStep = now
	s.distance += runStepMeters
	if s.distance >= s.spec.Target {
		s.finish(now)
	}
}

func (s *runSession) KeyUp(string) {}

func (s *runSession) PointerDown(int) {}

func (s *runSession) togglePause() {
	now := s.clk.Now()
	if s.paused {
		s.resume(now)
		// The stride gap spanning the pause would wreck consistency.
		s.lastStep = time.Time{}
		return
	}
	s.pause(now)
}

func (s *runSession) finish(now time.Time) {
	s.complete(
		ScoreLine{Label: "Distance", Points: s.spec.Points},
		ScoreLine{Label: "Time Bonus", Points: int(s.timeLeft(now).Seconds()) / 2},
		ScoreLine{Label: "Consistency", Points: Consistency(s.intervals)},
	)
}

func (s *runSession) Snapshot() Snapshot {
	snap := s.snapshot()
	snap.Counters = []Counter{
		{Label: "Distance", Value: fmt.Sprintf("%dm / %dm", s.distance, s.spec.Target)},
	}
	snap.Quality = Consistency(s.intervals)
	if s.paused {
		snap.Message = "Paused"
	} else {
		snap.Message = "Tap space to run"
	}
	return snap
}
