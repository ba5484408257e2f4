package domain

import (
	"fmt"
	"time"

	catalog "wellquest/internal/modules/catalog/domain"
	"wellquest/internal/platform/clock"
	"wellquest/internal/platform/loop"
)

const (
	cyclePedalBounce  = 250 * time.Millisecond
	cycleIdealStroke  = 800 * time.Millisecond
	cycleRhythmScale  = 10
	cycleHalfRotation = 2 // pedal strokes per full rotation
)

// cycleSession alternates left/right pedal keys into rotations. Pressing the
// same pedal twice does nothing, so cadence only builds by alternating.
type cycleSession struct {
	core

	lastSide  string
	lastPress time.Time
	strokes   int
	cadences  []int
}

func newCycleSession(def catalog.GameDefinition, tier int, scope *loop.Scope, clk clock.Clock) *cycleSession {
	return &cycleSession{core: newCore(def, tier, scope, clk)}
}

func (s *cycleSession) Initialize() {
	if s.state != StateReady {
		return
	}
	bindInput(s, s.scope)
	s.begin(nil)
}

func (s *cycleSession) KeyDown(code string) {
	if !s.active() || (code != CodeLeft && code != CodeRight) || code == s.lastSide {
		return
	}
	now := s.clk.Now()
	if !s.lastPress.IsZero() {
		gap := now.Sub(s.lastPress)
		if gap < cyclePedalBounce {
			return
		}
		s.cadences = append(s.cadences, RhythmQuality(gap, cycleIdealStroke, cycleRhythmScale))
	}
	s.lastSide = code
	s.lastPress = now
	s.strokes++
	if s.rotations() >= s.spec.Target {
		s.finish(now)
	}
}

func (s *cycleSession) KeyUp(string) {}

func (s *cycleSession) PointerDown(int) {}

func (s *cycleSession) rotations() int {
	return s.strokes / cycleHalfRotation
}

func (s *cycleSession) finish(now time.Time) {
	speedBonus := int(s.timeLeft(now).Seconds()) / 3
	s.complete(
		ScoreLine{Label: "Ride", Points: s.spec.Points},
		ScoreLine{Label: "Cadence", Points: average(s.cadences)},
		ScoreLine{Label: "Speed Bonus", Points: speedBonus},
	)
}

func (s *cycleSession) Snapshot() Snapshot {
	snap := s.snapshot()
	snap.Counters = []Counter{
		{Label: "Rotations", Value: fmt.Sprintf("%d / %d", s.rotations(), s.spec.Target)},
	}
	if len(s.cadences) > 0 {
		snap.Quality = average(s.cadences)
	}
	snap.Message = "Alternate left and right to pedal"
	return snap
}
