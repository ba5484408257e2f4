package domain

import (
	"fmt"
	"time"

	catalog "wellquest/internal/modules/catalog/domain"
	"wellquest/internal/platform/clock"
	"wellquest/internal/platform/loop"
)

const (
	swimStrokesPerLap = 10
	swimStrokeBounce  = 300 * time.Millisecond
	swimIdealStroke   = 1000 * time.Millisecond
	swimRhythmScale   = 10
	swimLapBudget     = 30 // seconds per lap used for the speed bonus
)

// swimSession counts space strokes into laps and rewards a steady one-second
// stroke rhythm.
type swimSession struct {
	core

	strokes    int
	lastStroke time.Time
	rhythms    []int
}

func newSwimSession(def catalog.GameDefinition, tier int, scope *loop.Scope, clk clock.Clock) *swimSession {
	return &swimSession{core: newCore(def, tier, scope, clk)}
}

func (s *swimSession) Initialize() {
	if s.state != StateReady {
		return
	}
	bindInput(s, s.scope)
	s.begin(nil)
}

func (s *swimSession) KeyDown(code string) {
	if !s.active() || code != CodeSpace {
		return
	}
	now := s.clk.Now()
	if !s.lastStroke.IsZero() {
		gap := now.Sub(s.lastStroke)
		if gap < swimStrokeBounce {
			return
		}
		s.rhythms = append(s.rhythms, RhythmQuality(gap, swimIdealStroke, swimRhythmScale))
	}
	s.lastStroke = now
	s.strokes++
	if s.strokes >= swimStrokesPerLap*s.spec.Laps {
		s.finish(now)
	}
}

func (s *swimSession) KeyUp(string) {}

func (s *swimSession) PointerDown(int) {}

func (s *swimSession) finish(now time.Time) {
	speedBonus := (swimLapBudget*s.spec.Laps - s.elapsedSeconds(now)) / 3
	if speedBonus < 0 {
		speedBonus = 0
	}
	s.complete(
		ScoreLine{Label: "Swim", Points: s.spec.Points},
		ScoreLine{Label: "Rhythm", Points: average(s.rhythms)},
		ScoreLine{Label: "Speed Bonus", Points: speedBonus},
	)
}

func (s *swimSession) Snapshot() Snapshot {
	snap := s.snapshot()
	snap.Counters = []Counter{
		{Label: "Laps", Value: fmt.Sprintf("%d / %d", s.strokes/swimStrokesPerLap, s.spec.Laps)},
		{Label: "Strokes", Value: fmt.Sprintf("%d", s.strokes)},
	}
	if len(s.rhythms) > 0 {
		snap.Quality = average(s.rhythms)
	}
	snap.Message = "Tap space to stroke"
	return snap
}
