package domain

import (
	"fmt"
	"time"

	catalog "wellquest/internal/modules/catalog/domain"
	"wellquest/internal/platform/clock"
	"wellquest/internal/platform/loop"
	"wellquest/internal/platform/random"
)

var tileGlyphs = []string{"A", "B", "C", "D", "E", "F", "G", "H", "I", "J"}

// memoryTilesSession is pair matching on a face-down board: flip two tiles,
// a mismatch turns them back, and extra moves beyond the tile count erode
// the efficiency bonus.
type memoryTilesSession struct {
	core

	board    []int
	revealed []bool
	matched  []bool
	first    int
	moves    int
	pairs    int
}

func newMemoryTilesSession(def catalog.GameDefinition, tier int, scope *loop.Scope, clk clock.Clock, rng random.Source) *memoryTilesSession {
	s := &memoryTilesSession{core: newCore(def, tier, scope, clk), first: -1}
	tiles := s.spec.Tiles
	s.board = make([]int, tiles)
	for i := range s.board {
		s.board[i] = i / 2
	}
	for i := len(s.board) - 1; i > 0; i-- {
		j := rng.Intn(i + 1)
		s.board[i], s.board[j] = s.board[j], s.board[i]
	}
	s.revealed = make([]bool, tiles)
	s.matched = make([]bool, tiles)
	return s
}

func (s *memoryTilesSession) Initialize() {
	if s.state != StateReady {
		return
	}
	bindInput(s, s.scope)
	s.begin(s.partial)
}

func (s *memoryTilesSession) partial() int {
	return s.pairs * s.spec.Points / (s.spec.Tiles / 2)
}

func (s *memoryTilesSession) KeyDown(string) {}

func (s *memoryTilesSession) KeyUp(string) {}

func (s *memoryTilesSession) PointerDown(target int) {
	if !s.active() || target < 0 || target >= len(s.board) {
		return
	}
	if s.matched[target] || s.revealed[target] {
		return
	}
	s.revealed[target] = true
	if s.first < 0 {
		s.first = target
		return
	}
	s.moves++
	first := s.first
	s.first = -1
	if s.board[first] == s.board[target] {
		s.matched[first] = true
		s.matched[target] = true
		s.pairs++
		if s.pairs == s.spec.Tiles/2 {
			s.finish(s.clk.Now())
		}
		return
	}
	s.revealed[first] = false
	s.revealed[target] = false
}

func (s *memoryTilesSession) finish(now time.Time) {
	efficiency := 100 - (s.moves-s.spec.Tiles)*2
	if efficiency < 0 {
		efficiency = 0
	}
	s.complete(
		ScoreLine{Label: "Memory", Points: s.spec.Points},
		ScoreLine{Label: "Time Bonus", Points: int(s.timeLeft(now).Seconds()) * 5},
		ScoreLine{Label: "Efficiency", Points: efficiency},
	)
}

func (s *memoryTilesSession) width() int {
	if s.spec.Tiles == 20 {
		return 5
	}
	return 4
}

func (s *memoryTilesSession) Snapshot() Snapshot {
	snap := s.snapshot()
	width := s.width()
	grid := &Grid{Width: width, Height: (len(s.board) + width - 1) / width}
	grid.Cells = make([]Cell, len(s.board))
	for i, sym := range s.board {
		switch {
		case s.matched[i]:
			grid.Cells[i] = Cell{Text: tileGlyphs[sym], Accent: AccentSuccess}
		case s.revealed[i]:
			grid.Cells[i] = Cell{Text: tileGlyphs[sym], Accent: AccentPrimary}
		default:
			grid.Cells[i] = Cell{Text: "?"}
		}
	}
	snap.Grid = grid
	snap.Counters = []Counter{
		{Label: "Pairs", Value: fmt.Sprintf("%d / %d", s.pairs, s.spec.Tiles/2)},
		{Label: "Moves", Value: fmt.Sprintf("%d", s.moves)},
	}
	snap.Message = "Flip two tiles to find a pair"
	return snap
}
