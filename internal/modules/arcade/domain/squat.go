package domain

import (
	"fmt"
	"time"

	catalog "wellquest/internal/modules/catalog/domain"
	"wellquest/internal/platform/clock"
	"wellquest/internal/platform/loop"
)

const (
	squatIdealHold = 2500 * time.Millisecond
	squatHoldScale = 50
	squatMinForm   = 70
	squatSetRest   = 3 * time.Second
	squatRepBudget = 3 // seconds per rep used for the speed bonus
)

// squatSession scores held space presses: a hold close to the ideal duration
// is good form, and only good-form reps count toward the set.
type squatSession struct {
	core

	pressStart time.Time
	restUntil  time.Time
	repsInSet  int
	setsDone   int
	forms      []int
	lastForm   int
}

func newSquatSession(def catalog.GameDefinition, tier int, scope *loop.Scope, clk clock.Clock) *squatSession {
	s := &squatSession{core: newCore(def, tier, scope, clk)}
	s.lastForm = -1
	return s
}

func (s *squatSession) Initialize() {
	if s.state != StateReady {
		return
	}
	bindInput(s, s.scope)
	s.begin(nil)
}

func (s *squatSession) KeyDown(code string) {
	if !s.active() || code != CodeSpace || s.resting() {
		return
	}
	if s.pressStart.IsZero() {
		s.pressStart = s.clk.Now()
	}
}

func (s *squatSession) KeyUp(code string) {
	if !s.active() || code != CodeSpace || s.pressStart.IsZero() {
		return
	}
	now := s.clk.Now()
	held := now.Sub(s.pressStart)
	s.pressStart = time.Time{}

	form := RhythmQuality(held, squatIdealHold, squatHoldScale)
	s.lastForm = form
	if form < squatMinForm {
		return
	}
	s.forms = append(s.forms, form)
	s.repsInSet++
	if s.repsInSet < s.spec.Reps {
		return
	}
	s.repsInSet = 0
	s.setsDone++
	if s.setsDone >= s.spec.Sets {
		s.finish(now)
		return
	}
	s.restUntil = now.Add(squatSetRest)
}

func (s *squatSession) PointerDown(int) {}

func (s *squatSession) resting() bool {
	return !s.restUntil.IsZero() && s.clk.Now().Before(s.restUntil)
}

func (s *squatSession) finish(now time.Time) {
	budget := squatRepBudget * s.spec.Reps * s.spec.Sets
	speedBonus := (budget - s.elapsedSeconds(now)) / 2
	if speedBonus < 0 {
		speedBonus = 0
	}
	s.complete(
		ScoreLine{Label: "Workout", Points: s.spec.Points},
		ScoreLine{Label: "Form", Points: average(s.forms)},
		ScoreLine{Label: "Speed Bonus", Points: speedBonus},
	)
}

func (s *squatSession) Snapshot() Snapshot {
	snap := s.snapshot()
	snap.Counters = []Counter{
		{Label: "Reps", Value: fmt.Sprintf("%d / %d", s.repsInSet, s.spec.Reps)},
		{Label: "Sets", Value: fmt.Sprintf("%d / %d", s.setsDone, s.spec.Sets)},
	}
	if s.lastForm >= 0 {
		snap.Quality = s.lastForm
	}
	switch {
	case s.resting():
		snap.Message = "Rest between sets"
	case !s.pressStart.IsZero():
		snap.Message = "Hold..."
	default:
		snap.Message = "Hold space for a squat"
	}
	return snap
}
