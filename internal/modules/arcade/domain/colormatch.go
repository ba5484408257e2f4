package domain

import (
	"fmt"
	"time"

	catalog "wellquest/internal/modules/catalog/domain"
	"wellquest/internal/platform/clock"
	"wellquest/internal/platform/loop"
	"wellquest/internal/platform/random"
)

var colorGlyphs = []string{"R", "B", "G", "Y", "P", "O"}

const (
	colorMatchBasePoints  = 10
	colorMatchMaxStreak   = 5
	colorMatchPatternPad  = 2 // pattern length = tier + this
	colorMatchClearPoints = 100
)

// colorMatchSession shows a color pattern and the player reproduces it by
// picking palette entries in order. A wrong reproduction keeps the pattern
// and resets the streak.
type colorMatchSession struct {
	core
	rng random.Source

	pattern  []int
	selected []int
	matches  int
	streak   int
	score    int
}

func newColorMatchSession(def catalog.GameDefinition, tier int, scope *loop.Scope, clk clock.Clock, rng random.Source) *colorMatchSession {
	return &colorMatchSession{core: newCore(def, tier, scope, clk), rng: rng}
}

func (s *colorMatchSession) Initialize() {
	if s.state != StateReady {
		return
	}
	bindInput(s, s.scope)
	s.nextPattern()
	s.begin(nil)
}

func (s *colorMatchSession) nextPattern() {
	length := s.tier + colorMatchPatternPad
	s.pattern = make([]int, length)
	for i := range s.pattern {
		s.pattern[i] = s.rng.Intn(len(colorGlyphs))
	}
	s.selected = s.selected[:0]
}

func (s *colorMatchSession) KeyDown(string) {}

func (s *colorMatchSession) KeyUp(string) {}

func (s *colorMatchSession) PointerDown(target int) {
	if !s.active() || target < 0 || target >= len(colorGlyphs) {
		return
	}
	s.selected = append(s.selected, target)
	if len(s.selected) < len(s.pattern) {
		return
	}
	if s.isMatch() {
		s.streak++
		s.matches++
		bonus := s.streak / 3
		if bonus > colorMatchMaxStreak {
			bonus = colorMatchMaxStreak
		}
		s.score += colorMatchBasePoints * (1 + bonus)
		if s.matches >= s.spec.Pairs {
			s.finish(s.clk.Now())
			return
		}
		s.nextPattern()
		return
	}
	s.streak = 0
	s.selected = s.selected[:0]
}

func (s *colorMatchSession) isMatch() bool {
	for i, c := range s.pattern {
		if s.selected[i] != c {
			return false
		}
	}
	return true
}

func (s *colorMatchSession) finish(now time.Time) {
	s.complete(
		ScoreLine{Label: "Matches", Points: s.score},
		ScoreLine{Label: "Time Bonus", Points: int(s.timeLeft(now).Seconds()) * 2},
		ScoreLine{Label: "Completion", Points: s.matches * colorMatchClearPoints / s.spec.Pairs},
	)
}

func (s *colorMatchSession) Snapshot() Snapshot {
	snap := s.snapshot()
	width := len(colorGlyphs)
	if len(s.pattern) > width {
		width = len(s.pattern)
	}
	grid := &Grid{Width: width, Height: 3, Cells: make([]Cell, width*3)}
	for i, c := range s.pattern {
		grid.Cells[i] = Cell{Text: colorGlyphs[c], Accent: AccentPrimary}
	}
	for i, c := range s.selected {
		grid.Cells[width+i] = Cell{Text: colorGlyphs[c], Accent: AccentSuccess}
	}
	for i, g := range colorGlyphs {
		grid.Cells[2*width+i] = Cell{Text: g}
	}
	snap.Grid = grid
	snap.Counters = []Counter{
		{Label: "Matches", Value: fmt.Sprintf("%d / %d", s.matches, s.spec.Pairs)},
		{Label: "Score", Value: fmt.Sprintf("%d", s.score)},
		{Label: "Streak", Value: fmt.Sprintf("x%d", s.streak)},
	}
	snap.Message = "Repeat the pattern"
	return snap
}
