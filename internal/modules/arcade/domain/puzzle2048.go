package domain

import (
	"fmt"
	"strconv"

	catalog "wellquest/internal/modules/catalog/domain"
	"wellquest/internal/platform/clock"
	"wellquest/internal/platform/loop"
	"wellquest/internal/platform/random"
)

const (
	boardSize      = 4
	spawnFourOdds  = 0.1
	moveBonusRate  = 10
	mergeScoreRate = 100
)

// MergeLine slides a line toward index 0 and merges equal neighbors. The scan
// runs from the leading edge and a merged tile never merges again within the
// same move, so [2,2,2,2] becomes [4,4,0,0] and [4,4,8,0] becomes [8,8,0,0].
// Returns the new line, the points gained, and whether anything moved.
func MergeLine(line []int) ([]int, int, bool) {
	compact := make([]int, 0, len(line))
	for _, v := range line {
		if v != 0 {
			compact = append(compact, v)
		}
	}
	out := make([]int, 0, len(line))
	gained := 0
	for i := 0; i < len(compact); i++ {
		if i+1 < len(compact) && compact[i] == compact[i+1] {
			merged := compact[i] * 2
			out = append(out, merged)
			gained += merged
			i++
			continue
		}
		out = append(out, compact[i])
	}
	for len(out) < len(line) {
		out = append(out, 0)
	}
	changed := false
	for i := range line {
		if line[i] != out[i] {
			changed = true
			break
		}
	}
	return out, gained, changed
}

// puzzle2048Session is sliding-tile 2048 under a move budget: reach the tier's
// target tile before the budget runs out or the board locks up.
type puzzle2048Session struct {
	core
	rng random.Source

	board      [boardSize * boardSize]int
	movesUsed  int
	mergeScore int
}

func newPuzzle2048Session(def catalog.GameDefinition, tier int, scope *loop.Scope, clk clock.Clock, rng random.Source) *puzzle2048Session {
	s := &puzzle2048Session{core: newCore(def, tier, scope, clk), rng: rng}
	s.spawn()
	s.spawn()
	return s
}

func (s *puzzle2048Session) Initialize() {
	if s.state != StateReady {
		return
	}
	bindInput(s, s.scope)
	s.begin(nil)
}

func (s *puzzle2048Session) spawn() {
	empty := make([]int, 0, len(s.board))
	for i, v := range s.board {
		if v == 0 {
			empty = append(empty, i)
		}
	}
	if len(empty) == 0 {
		return
	}
	value := 2
	if s.rng.Float64() < spawnFourOdds {
		value = 4
	}
	s.board[empty[s.rng.Intn(len(empty))]] = value
}

func (s *puzzle2048Session) KeyDown(code string) {
	if !s.active() {
		return
	}
	var changed bool
	switch code {
	case CodeLeft:
		changed = s.shift(rowIndices, false)
	case CodeRight:
		changed = s.shift(rowIndices, true)
	case CodeUp:
		changed = s.shift(colIndices, false)
	case CodeDown:
		changed = s.shift(colIndices, true)
	default:
		return
	}
	if !changed {
		return
	}
	s.movesUsed++
	s.spawn()
	// Exhausting the budget ends the round even when the same move reached
	// the target tile.
	switch {
	case s.movesUsed >= s.spec.Moves:
		s.fail(FailMovesExhausted, 0)
	case s.highest() >= s.spec.Target:
		s.finish()
	case !s.canMove():
		s.fail(FailBlocked, 0)
	}
}

func (s *puzzle2048Session) KeyUp(string) {}

func (s *puzzle2048Session) PointerDown(int) {}

// shift applies MergeLine to each row or column, optionally from the far edge.
func (s *puzzle2048Session) shift(indices func(line int) [boardSize]int, reversed bool) bool {
	changed := false
	for line := 0; line < boardSize; line++ {
		idx := indices(line)
		if reversed {
			idx[0], idx[1], idx[2], idx[3] = idx[3], idx[2], idx[1], idx[0]
		}
		in := []int{s.board[idx[0]], s.board[idx[1]], s.board[idx[2]], s.board[idx[3]]}
		out, gained, moved := MergeLine(in)
		if !moved {
			continue
		}
		changed = true
		s.mergeScore += gained
		for i, cell := range idx {
			s.board[cell] = out[i]
		}
	}
	return changed
}

func rowIndices(row int) [boardSize]int {
	base := row * boardSize
	return [boardSize]int{base, base + 1, base + 2, base + 3}
}

func colIndices(col int) [boardSize]int {
	return [boardSize]int{col, col + boardSize, col + 2*boardSize, col + 3*boardSize}
}

func (s *puzzle2048Session) highest() int {
	best := 0
	for _, v := range s.board {
		if v > best {
			best = v
		}
	}
	return best
}

func (s *puzzle2048Session) canMove() bool {
	for i, v := range s.board {
		if v == 0 {
			return true
		}
		row, col := i/boardSize, i%boardSize
		if col+1 < boardSize && s.board[i+1] == v {
			return true
		}
		if row+1 < boardSize && s.board[i+boardSize] == v {
			return true
		}
	}
	return false
}

func (s *puzzle2048Session) finish() {
	moveBonus := (s.spec.Moves - s.movesUsed) * moveBonusRate
	if moveBonus < 0 {
		moveBonus = 0
	}
	s.complete(
		ScoreLine{Label: "Puzzle", Points: s.spec.Points},
		ScoreLine{Label: "Moves Left", Points: moveBonus},
		ScoreLine{Label: "Merges", Points: s.mergeScore / mergeScoreRate},
	)
}

func (s *puzzle2048Session) Snapshot() Snapshot {
	snap := s.snapshot()
	grid := &Grid{Width: boardSize, Height: boardSize, Cells: make([]Cell, len(s.board))}
	for i, v := range s.board {
		if v == 0 {
			grid.Cells[i] = Cell{Text: "."}
			continue
		}
		accent := AccentNone
		if v >= s.spec.Target {
			accent = AccentSuccess
		} else if v >= s.spec.Target/4 {
			accent = AccentPrimary
		}
		grid.Cells[i] = Cell{Text: strconv.Itoa(v), Accent: accent}
	}
	snap.Grid = grid
	snap.Counters = []Counter{
		{Label: "Moves", Value: fmt.Sprintf("%d / %d", s.movesUsed, s.spec.Moves)},
		{Label: "Best Tile", Value: strconv.Itoa(s.highest())},
		{Label: "Target", Value: strconv.Itoa(s.spec.Target)},
	}
	snap.Message = "Arrows to slide"
	return snap
}
