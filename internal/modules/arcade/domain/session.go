// Package domain implements the mini-game state machines. Every game is a
// Session: it registers its timers and input listeners on a loop.Scope during
// Initialize, runs Ready → Active → {Completed, Failed} exactly once, and
// releases the scope the moment it reaches a terminal state. Games never touch
// the player profile; they only report a final integer upward.
package domain

import (
	"time"

	catalog "wellquest/internal/modules/catalog/domain"
	"wellquest/internal/platform/clock"
	"wellquest/internal/platform/loop"
)

type State string

const (
	StateReady     State = "ready"
	StateActive    State = "active"
	StateCompleted State = "completed"
	StateFailed    State = "failed"
)

type FailReason string

const (
	FailTimeout        FailReason = "timeout"
	FailMovesExhausted FailReason = "movesExhausted"
	FailBlocked        FailReason = "blocked"
	FailWallCollision  FailReason = "wallCollision"
	FailSelfCollision  FailReason = "selfCollision"
)

// Input codes delivered by the host loop. The UI maps its own key events to
// these before dispatching.
const (
	CodeSpace = "space"
	CodeLeft  = "left"
	CodeRight = "right"
	CodeUp    = "up"
	CodeDown  = "down"
	CodePause = "pause"
)

// ScoreLine is one labelled component of a final score.
type ScoreLine struct {
	Label  string
	Points int
}

type Result struct {
	Points int
	Lines  []ScoreLine
}

// Failure carries the reason a round ended early and any partial points the
// game grants for progress made before the failure.
type Failure struct {
	Reason FailReason
	Points int
}

type CellAccent int

const (
	AccentNone CellAccent = iota
	AccentPrimary
	AccentSuccess
	AccentDanger
)

type Cell struct {
	Text   string
	Accent CellAccent
}

type Grid struct {
	Width  int
	Height int
	Cells  []Cell
}

type Counter struct {
	Label string
	Value string
}

// Snapshot is the composite view model every game renders into. The UI has
// one generic game view; games differ only in which parts they fill.
type Snapshot struct {
	GameID   catalog.GameID
	Name     string
	State    State
	TimeLeft time.Duration // zero when untimed
	Counters []Counter
	Quality  int // rolling form/rhythm 0-100; -1 when not applicable
	Grid     *Grid
	Message  string
	Result   *Result
	Failure  *Failure
}

// Session is the lifecycle contract every mini-game implements.
type Session interface {
	GameID() catalog.GameID
	Tier() int
	State() State

	// Initialize registers the session's timers and listeners on its scope
	// and moves Ready → Active. Calling it twice is a no-op.
	Initialize()

	// Direct input entry points. The loop delivers the same events through
	// the scope subscriptions Initialize registers; terminal sessions ignore
	// input either way.
	KeyDown(code string)
	KeyUp(code string)
	PointerDown(target int)

	Snapshot() Snapshot
	Result() (Result, bool)
	Failure() (Failure, bool)

	// Cleanup releases every handle the session owns. Idempotent; sessions
	// that already finished have released their scope and this is a no-op.
	Cleanup()
}

// core carries the lifecycle state shared by every game.
type core struct {
	id    catalog.GameID
	name  string
	tier  int
	spec  catalog.LevelSpec
	scope *loop.Scope
	clk   clock.Clock

	state     State
	startedAt time.Time
	deadline  time.Time
	paused    bool
	pausedAt  time.Time
	result    *Result
	failure   *Failure
}

func newCore(def catalog.GameDefinition, tier int, scope *loop.Scope, clk clock.Clock) core {
	return core{
		id:    def.ID,
		name:  def.Name,
		tier:  tier,
		spec:  def.Level(tier),
		scope: scope,
		clk:   clk,
		state: StateReady,
	}
}

func (c *core) GameID() catalog.GameID { return c.id }
func (c *core) Tier() int              { return c.tier }
func (c *core) State() State           { return c.state }

func (c *core) Result() (Result, bool) {
	if c.result == nil {
		return Result{}, false
	}
	return *c.result, true
}

func (c *core) Failure() (Failure, bool) {
	if c.failure == nil {
		return Failure{}, false
	}
	return *c.failure, true
}

func (c *core) Cleanup() {
	c.scope.Release()
}

func (c *core) active() bool { return c.state == StateActive }

// begin arms the countdown and moves the session to Active. partial, when
// non-nil, supplies the points granted if the countdown expires.
func (c *core) begin(partial func() int) {
	c.state = StateActive
	c.startedAt = c.clk.Now()
	if c.spec.TimeLimit <= 0 {
		return
	}
	c.deadline = c.startedAt.Add(time.Duration(c.spec.TimeLimit) * time.Second)
	c.scope.Every(100*time.Millisecond, func(now time.Time) {
		if !c.active() || c.paused || now.Before(c.deadline) {
			return
		}
		points := 0
		if partial != nil {
			points = partial()
		}
		c.fail(FailTimeout, points)
	})
}

func (c *core) timeLeft(now time.Time) time.Duration {
	if c.deadline.IsZero() || !c.active() {
		return 0
	}
	if c.paused {
		now = c.pausedAt
	}
	left := c.deadline.Sub(now)
	if left < 0 {
		return 0
	}
	return left
}

func (c *core) elapsedSeconds(now time.Time) int {
	return int(now.Sub(c.startedAt) / time.Second)
}

// pause freezes the countdown: the timeout watcher skips its check and
// timeLeft reports the value at the moment of pausing.
func (c *core) pause(now time.Time) {
	if c.paused || !c.active() {
		return
	}
	c.paused = true
	c.pausedAt = now
}

// resume shifts the deadline by the span spent paused.
func (c *core) resume(now time.Time) {
	if !c.paused {
		return
	}
	c.paused = false
	if !c.deadline.IsZero() {
		c.deadline = c.deadline.Add(now.Sub(c.pausedAt))
	}
}

func (c *core) complete(lines ...ScoreLine) {
	if !c.active() {
		return
	}
	total := 0
	for _, l := range lines {
		total += l.Points
	}
	c.state = StateCompleted
	c.result = &Result{Points: total, Lines: lines}
	c.scope.Release()
}

func (c *core) fail(reason FailReason, partial int) {
	if !c.active() {
		return
	}
	if partial < 0 {
		partial = 0
	}
	c.state = StateFailed
	c.failure = &Failure{Reason: reason, Points: partial}
	c.scope.Release()
}

func (c *core) snapshot() Snapshot {
	return Snapshot{
		GameID:   c.id,
		Name:     c.name,
		State:    c.state,
		TimeLeft: c.timeLeft(c.clk.Now()),
		Quality:  -1,
		Result:   c.result,
		Failure:  c.failure,
	}
}

// bindInput routes the loop's input events into the session's own entry
// points. Releasing the scope severs the routing, so a finished or abandoned
// session can never observe another session's input.
func bindInput(s Session, scope *loop.Scope) {
	scope.OnKeyDown(s.KeyDown)
	scope.OnKeyUp(s.KeyUp)
	scope.OnPointerDown(s.PointerDown)
}
