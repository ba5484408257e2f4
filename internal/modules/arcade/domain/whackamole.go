package domain

import (
	"fmt"
	"time"

	catalog "wellquest/internal/modules/catalog/domain"
	"wellquest/internal/platform/clock"
	"wellquest/internal/platform/loop"
	"wellquest/internal/platform/random"
)

const (
	moleGridSize       = 3
	moleBaseVisible    = 1000 * time.Millisecond
	moleVisiblePerTier = 150 * time.Millisecond
	molePerfectCutoff  = 0.8
)

// whackAMoleSession keeps one mole live at a time; a hit scores by reaction
// speed and the mole relocates when whacked or when its window expires.
type whackAMoleSession struct {
	core
	rng random.Source

	mole    int
	shownAt time.Time
	hits    int
	perfect int
	score   int
}

func newWhackAMoleSession(def catalog.GameDefinition, tier int, scope *loop.Scope, clk clock.Clock, rng random.Source) *whackAMoleSession {
	s := &whackAMoleSession{core: newCore(def, tier, scope, clk), rng: rng, mole: -1}
	return s
}

func (s *whackAMoleSession) visibleFor() time.Duration {
	d := moleBaseVisible - time.Duration(s.tier)*moleVisiblePerTier
	if d < 100*time.Millisecond {
		d = 100 * time.Millisecond
	}
	return d
}

func (s *whackAMoleSession) Initialize() {
	if s.state != StateReady {
		return
	}
	bindInput(s, s.scope)
	s.scope.Every(50*time.Millisecond, func(now time.Time) {
		if !s.active() {
			return
		}
		if s.mole >= 0 && now.Sub(s.shownAt) < s.visibleFor() {
			return
		}
		s.relocate(now)
	})
	s.begin(nil)
	s.relocate(s.clk.Now())
}

func (s *whackAMoleSession) relocate(now time.Time) {
	next := s.rng.Intn(moleGridSize * moleGridSize)
	if next == s.mole {
		next = (next + 1) % (moleGridSize * moleGridSize)
	}
	s.mole = next
	s.shownAt = now
}

func (s *whackAMoleSession) KeyDown(string) {}

func (s *whackAMoleSession) KeyUp(string) {}

func (s *whackAMoleSession) PointerDown(target int) {
	if !s.active() || target != s.mole {
		return
	}
	now := s.clk.Now()
	reaction := now.Sub(s.shownAt)
	accuracy := 1 - reaction.Seconds()
	if accuracy < 0 {
		accuracy = 0
	}
	s.hits++
	if accuracy > molePerfectCutoff {
		s.perfect++
	}
	s.score += int(accuracy * 100)
	if s.hits >= s.spec.Target {
		s.finish(now)
		return
	}
	s.relocate(now)
}

func (s *whackAMoleSession) finish(now time.Time) {
	s.complete(
		ScoreLine{Label: "Whacks", Points: s.score},
		ScoreLine{Label: "Time Bonus", Points: int(s.timeLeft(now).Seconds()) * 10},
		ScoreLine{Label: "Precision", Points: s.perfect * 200 / s.hits},
	)
}

func (s *whackAMoleSession) Snapshot() Snapshot {
	snap := s.snapshot()
	grid := &Grid{Width: moleGridSize, Height: moleGridSize, Cells: make([]Cell, moleGridSize*moleGridSize)}
	for i := range grid.Cells {
		grid.Cells[i] = Cell{Text: "."}
	}
	if s.mole >= 0 {
		grid.Cells[s.mole] = Cell{Text: "M", Accent: AccentDanger}
	}
	snap.Grid = grid
	snap.Counters = []Counter{
		{Label: "Hits", Value: fmt.Sprintf("%d / %d", s.hits, s.spec.Target)},
		{Label: "Score", Value: fmt.Sprintf("%d", s.score)},
		{Label: "Perfect", Value: fmt.Sprintf("%d", s.perfect)},
	}
	snap.Message = "Whack the mole"
	return snap
}
