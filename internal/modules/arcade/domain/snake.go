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
	snakeGridSize   = 20
	snakeFoodPoints = 10
	snakeBaseTick   = 200 * time.Millisecond
	// Speed is stored x10, so each speed unit shaves 5ms off the tick:
	// 1.0x -> 150ms, 1.5x -> 125ms, 2.0x -> 100ms.
	snakeTickPerUnit = 5 * time.Millisecond
)

type point struct {
	x, y int
}

// snakeSession is classic snake driven by a scope timer: the snake advances
// every tick, food grows it, and the round is won at the tier's target length.
type snakeSession struct {
	core
	rng random.Source

	body    []point
	dir     point
	pending point
	food    point
	score   int
}

func newSnakeSession(def catalog.GameDefinition, tier int, scope *loop.Scope, clk clock.Clock, rng random.Source) *snakeSession {
	s := &snakeSession{core: newCore(def, tier, scope, clk), rng: rng}
	mid := snakeGridSize / 2
	s.body = []point{{mid, mid}, {mid - 1, mid}, {mid - 2, mid}}
	s.dir = point{1, 0}
	s.pending = s.dir
	s.placeFood()
	return s
}

func (s *snakeSession) tickInterval() time.Duration {
	interval := snakeBaseTick - time.Duration(s.spec.Speed)*snakeTickPerUnit
	if interval < 50*time.Millisecond {
		interval = 50 * time.Millisecond
	}
	return interval
}

func (s *snakeSession) Initialize() {
	if s.state != StateReady {
		return
	}
	bindInput(s, s.scope)
	s.scope.Every(s.tickInterval(), func(time.Time) { s.step() })
	s.begin(nil)
}

func (s *snakeSession) KeyDown(code string) {
	if !s.active() {
		return
	}
	if code == CodePause {
		if s.paused {
			s.resume(s.clk.Now())
		} else {
			s.pause(s.clk.Now())
		}
		return
	}
	var next point
	switch code {
	case CodeUp:
		next = point{0, -1}
	case CodeDown:
		next = point{0, 1}
	case CodeLeft:
		next = point{-1, 0}
	case CodeRight:
		next = point{1, 0}
	default:
		return
	}
	// Reversal guard: the snake cannot turn back into itself.
	if next.x == -s.dir.x && next.y == -s.dir.y {
		return
	}
	s.pending = next
}

func (s *snakeSession) KeyUp(string) {}

func (s *snakeSession) PointerDown(int) {}

func (s *snakeSession) step() {
	if !s.active() || s.paused {
		return
	}
	s.dir = s.pending
	head := point{s.body[0].x + s.dir.x, s.body[0].y + s.dir.y}
	if head.x < 0 || head.x >= snakeGridSize || head.y < 0 || head.y >= snakeGridSize {
		s.fail(FailWallCollision, 0)
		return
	}
	for _, b := range s.body {
		if b == head {
			s.fail(FailSelfCollision, 0)
			return
		}
	}
	s.body = append([]point{head}, s.body...)
	if head == s.food {
		s.score += snakeFoodPoints
		if len(s.body) >= s.spec.Target {
			s.finish()
			return
		}
		s.placeFood()
		return
	}
	s.body = s.body[:len(s.body)-1]
}

func (s *snakeSession) placeFood() {
	for {
		candidate := point{s.rng.Intn(snakeGridSize), s.rng.Intn(snakeGridSize)}
		occupied := false
		for _, b := range s.body {
			if b == candidate {
				occupied = true
				break
			}
		}
		if !occupied {
			s.food = candidate
			return
		}
	}
}

func (s *snakeSession) finish() {
	s.complete(
		ScoreLine{Label: "Snake", Points: s.spec.Points},
		ScoreLine{Label: "Speed Bonus", Points: s.spec.Speed * 2},
		ScoreLine{Label: "Extra Length", Points: (len(s.body) - s.spec.Target) * 5},
	)
}

func (s *snakeSession) Snapshot() Snapshot {
	snap := s.snapshot()
	grid := &Grid{Width: snakeGridSize, Height: snakeGridSize, Cells: make([]Cell, snakeGridSize*snakeGridSize)}
	for i := range grid.Cells {
		grid.Cells[i] = Cell{Text: "."}
	}
	grid.Cells[s.food.y*snakeGridSize+s.food.x] = Cell{Text: "*", Accent: AccentDanger}
	for i, b := range s.body {
		cell := Cell{Text: "o", Accent: AccentPrimary}
		if i == 0 {
			cell = Cell{Text: "@", Accent: AccentSuccess}
		}
		grid.Cells[b.y*snakeGridSize+b.x] = cell
	}
	snap.Grid = grid
	snap.Counters = []Counter{
		{Label: "Length", Value: fmt.Sprintf("%d / %d", len(s.body), s.spec.Target)},
		{Label: "Score", Value: fmt.Sprintf("%d", s.score)},
	}
	if s.paused {
		snap.Message = "Paused"
	} else {
		snap.Message = "Arrows to steer"
	}
	return snap
}
