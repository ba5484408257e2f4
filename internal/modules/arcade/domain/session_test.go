package domain_test

import (
	"strings"
	"testing"
	"time"

	"wellquest/internal/modules/arcade/domain"
	catalog "wellquest/internal/modules/catalog/domain"
	"wellquest/internal/platform/loop"
	"wellquest/internal/platform/random"
)

type fakeClock struct {
	now time.Time
}

func (f *fakeClock) Now() time.Time { return f.now }

// harness pairs the fake clock with the loop so game time and timer time
// advance in lockstep, the way the TUI host drives them.
type harness struct {
	clk  *fakeClock
	host *loop.Loop
}

func newHarness() *harness {
	start := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	return &harness{clk: &fakeClock{now: start}, host: loop.New(start)}
}

func (h *harness) advance(d time.Duration) {
	h.clk.now = h.clk.now.Add(d)
	h.host.Advance(h.clk.now)
}

func (h *harness) start(t *testing.T, def catalog.GameDefinition, seed int64) domain.Session {
	t.Helper()
	session, err := domain.New(def, 1, h.host.Scope(), h.clk, random.NewSeeded(seed))
	if err != nil {
		t.Fatalf("new session: %v", err)
	}
	session.Initialize()
	return session
}

func runDefinition() catalog.GameDefinition {
	return catalog.GameDefinition{
		ID:     catalog.GameRun,
		Track:  catalog.TrackPhysical,
		Name:   "Run",
		Levels: []catalog.LevelSpec{{Points: 100, TimeLimit: 10, Target: 30}},
	}
}

func TestRunSessionCompletesAtTarget(t *testing.T) {
	t.Parallel()
	h := newHarness()
	session := h.start(t, runDefinition(), 1)

	for i := 0; i < 3; i++ {
		h.advance(250 * time.Millisecond)
		h.host.KeyDown(domain.CodeSpace)
	}
	if session.State() != domain.StateCompleted {
		t.Fatalf("state = %s, want completed", session.State())
	}
	result, ok := session.Result()
	if !ok {
		t.Fatalf("completed session must expose a result")
	}
	// 100 base + 9.25s left / 2 + perfectly even strides.
	if result.Points != 204 {
		t.Fatalf("points = %d, want 204", result.Points)
	}
}

func TestRunSessionDebouncesMashedSteps(t *testing.T) {
	t.Parallel()
	h := newHarness()
	session := h.start(t, runDefinition(), 1)

	h.advance(250 * time.Millisecond)
	h.host.KeyDown(domain.CodeSpace)
	// Inside the 200ms window: ignored.
	h.advance(50 * time.Millisecond)
	h.host.KeyDown(domain.CodeSpace)

	snap := session.Snapshot()
	if got := snap.Counters[0].Value; !strings.HasPrefix(got, "10m") {
		t.Fatalf("distance counter = %q, want a single stride", got)
	}
}

func TestRunSessionTimesOut(t *testing.T) {
	t.Parallel()
	h := newHarness()
	session := h.start(t, runDefinition(), 1)

	h.advance(11 * time.Second)
	failure, ok := session.Failure()
	if !ok || failure.Reason != domain.FailTimeout {
		t.Fatalf("failure = %+v, ok = %v; want timeout", failure, ok)
	}
}

func TestRunSessionPauseFreezesCountdown(t *testing.T) {
	t.Parallel()
	h := newHarness()
	session := h.start(t, runDefinition(), 1)

	h.advance(5 * time.Second)
	h.host.KeyDown(domain.CodePause)
	// Well past the original deadline; a paused round must not time out.
	h.advance(6 * time.Second)

	if session.State() != domain.StateActive {
		t.Fatalf("state = %s, want active while paused", session.State())
	}
	if got := session.Snapshot().TimeLeft; got != 5*time.Second {
		t.Fatalf("time left = %s, want frozen at 5s", got)
	}
}

func TestRunSessionResumeRestoresTheRemainingBudget(t *testing.T) {
	t.Parallel()
	h := newHarness()
	session := h.start(t, runDefinition(), 1)

	h.advance(5 * time.Second)
	h.host.KeyDown(domain.CodePause)
	h.advance(30 * time.Second)
	h.host.KeyDown(domain.CodePause)

	// 5s of budget were left at the pause; they run down only now.
	h.advance(4 * time.Second)
	if session.State() != domain.StateActive {
		t.Fatalf("state = %s, want active with budget left", session.State())
	}
	h.advance(2 * time.Second)
	failure, ok := session.Failure()
	if !ok || failure.Reason != domain.FailTimeout {
		t.Fatalf("failure = %+v, ok = %v; want timeout once the budget is spent", failure, ok)
	}
}

func TestCleanupSeversLoopHandles(t *testing.T) {
	t.Parallel()
	h := newHarness()
	session := h.start(t, runDefinition(), 1)

	h.advance(250 * time.Millisecond)
	h.host.KeyDown(domain.CodeSpace)
	session.Cleanup()

	h.advance(250 * time.Millisecond)
	h.host.KeyDown(domain.CodeSpace)
	snap := session.Snapshot()
	if got := snap.Counters[0].Value; !strings.HasPrefix(got, "10m") {
		t.Fatalf("input reached a cleaned-up session: %q", got)
	}

	// The countdown watcher is gone too: the deadline passes without a
	// failure being recorded.
	h.advance(time.Minute)
	if _, failed := session.Failure(); failed {
		t.Fatalf("timer fired after cleanup")
	}
}

func squatDefinition() catalog.GameDefinition {
	return catalog.GameDefinition{
		ID:     catalog.GameSquat,
		Track:  catalog.TrackPhysical,
		Name:   "Squats",
		Levels: []catalog.LevelSpec{{Points: 150, TimeLimit: 30, Reps: 2, Sets: 1}},
	}
}

func TestSquatSessionScoresHeldReps(t *testing.T) {
	t.Parallel()
	h := newHarness()
	session := h.start(t, squatDefinition(), 1)

	// A rushed half-squat scores under the form cutoff and does not count.
	h.host.KeyDown(domain.CodeSpace)
	h.advance(900 * time.Millisecond)
	h.host.KeyUp(domain.CodeSpace)
	if session.State() != domain.StateActive {
		t.Fatalf("sloppy rep ended the session")
	}

	for i := 0; i < 2; i++ {
		h.advance(500 * time.Millisecond)
		h.host.KeyDown(domain.CodeSpace)
		h.advance(2500 * time.Millisecond)
		h.host.KeyUp(domain.CodeSpace)
	}
	result, ok := session.Result()
	if !ok {
		t.Fatalf("state = %s, want completed", session.State())
	}
	// 150 base + perfect form; the 6s rep budget is already spent.
	if result.Points != 250 {
		t.Fatalf("points = %d, want 250", result.Points)
	}
}

func snakeDefinition() catalog.GameDefinition {
	return catalog.GameDefinition{
		ID:     catalog.GameSnake,
		Track:  catalog.TrackMental,
		Name:   "Snake",
		Levels: []catalog.LevelSpec{{Points: 150, Target: 10, Speed: 10}},
	}
}

func TestSnakeReversalIsIgnored(t *testing.T) {
	t.Parallel()
	h := newHarness()
	session := h.start(t, snakeDefinition(), 3)

	// Heading right; an immediate left would reverse into the body.
	h.host.KeyDown(domain.CodeLeft)
	h.advance(150 * time.Millisecond)

	snap := session.Snapshot()
	head := snap.Grid.Cells[10*snap.Grid.Width+11]
	if head.Text != "@" {
		t.Fatalf("snake did not keep heading right after a reversal press")
	}
}

func TestSnakeDiesOnTheWall(t *testing.T) {
	t.Parallel()
	h := newHarness()
	session := h.start(t, snakeDefinition(), 3)

	h.host.KeyDown(domain.CodeUp)
	for i := 0; i < 11; i++ {
		h.advance(150 * time.Millisecond)
	}
	failure, ok := session.Failure()
	if !ok || failure.Reason != domain.FailWallCollision {
		t.Fatalf("failure = %+v, ok = %v; want wallCollision", failure, ok)
	}
}

func cycleDefinition() catalog.GameDefinition {
	return catalog.GameDefinition{
		ID:     catalog.GameCycle,
		Track:  catalog.TrackPhysical,
		Name:   "Cadence Rider",
		Levels: []catalog.LevelSpec{{Points: 120, TimeLimit: 60, Target: 2}},
	}
}

func TestCycleSamePedalIsIgnored(t *testing.T) {
	t.Parallel()
	h := newHarness()
	session := h.start(t, cycleDefinition(), 1)

	h.host.KeyDown(domain.CodeLeft)
	h.advance(400 * time.Millisecond)
	h.host.KeyDown(domain.CodeLeft)

	snap := session.Snapshot()
	if got := snap.Counters[0].Value; got != "0 / 2" {
		t.Fatalf("rotations = %q, want no progress from repeating a pedal", got)
	}

	h.host.KeyDown(domain.CodeRight)
	snap = session.Snapshot()
	if got := snap.Counters[0].Value; got != "1 / 2" {
		t.Fatalf("rotations = %q, want one rotation after alternating", got)
	}
}

func TestCycleDebouncesRapidStrokes(t *testing.T) {
	t.Parallel()
	h := newHarness()
	session := h.start(t, cycleDefinition(), 1)

	h.host.KeyDown(domain.CodeLeft)
	// Inside the 250ms window: the stroke is dropped outright.
	h.advance(100 * time.Millisecond)
	h.host.KeyDown(domain.CodeRight)

	snap := session.Snapshot()
	if got := snap.Counters[0].Value; got != "0 / 2" {
		t.Fatalf("rotations = %q, want the bounced stroke dropped", got)
	}
	if snap.Quality != -1 {
		t.Fatalf("quality = %d, want no cadence recorded for a bounced stroke", snap.Quality)
	}

	h.advance(300 * time.Millisecond)
	h.host.KeyDown(domain.CodeRight)
	snap = session.Snapshot()
	if got := snap.Counters[0].Value; got != "1 / 2" {
		t.Fatalf("rotations = %q, want the spaced stroke counted", got)
	}
}

func TestWhackAMoleScoresByReaction(t *testing.T) {
	t.Parallel()
	def := catalog.GameDefinition{
		ID:     catalog.GameWhackAMole,
		Track:  catalog.TrackMental,
		Name:   "Whack-a-Mole",
		Levels: []catalog.LevelSpec{{Points: 150, TimeLimit: 10, Target: 1}},
	}
	h := newHarness()
	session := h.start(t, def, 11)

	h.advance(125 * time.Millisecond)
	snap := session.Snapshot()
	mole := -1
	for i, cell := range snap.Grid.Cells {
		if cell.Text == "M" {
			mole = i
		}
	}
	if mole < 0 {
		t.Fatalf("no live mole on the board")
	}

	h.host.PointerDown(mole)
	result, ok := session.Result()
	if !ok {
		t.Fatalf("state = %s, want completed", session.State())
	}
	// 87 reaction points + 9 whole seconds left * 10 + a perfect hit.
	if result.Points != 377 {
		t.Fatalf("points = %d, want 377", result.Points)
	}
}

func TestMemoryTilesTimeoutGrantsPartialPoints(t *testing.T) {
	t.Parallel()
	def := catalog.GameDefinition{
		ID:     catalog.GameMemoryTiles,
		Track:  catalog.TrackMental,
		Name:   "Memory Tiles",
		Levels: []catalog.LevelSpec{{Points: 100, TimeLimit: 10, Tiles: 4}},
	}
	h := newHarness()
	const seed = 21
	session := h.start(t, def, seed)

	// Replay the board shuffle to find one pair without peeking.
	board := []int{0, 0, 1, 1}
	rng := random.NewSeeded(seed)
	for i := len(board) - 1; i > 0; i-- {
		j := rng.Intn(i + 1)
		board[i], board[j] = board[j], board[i]
	}
	var pair []int
	for i, sym := range board {
		if sym == 0 {
			pair = append(pair, i)
		}
	}

	h.host.PointerDown(pair[0])
	h.host.PointerDown(pair[1])
	h.advance(11 * time.Second)

	failure, ok := session.Failure()
	if !ok || failure.Reason != domain.FailTimeout {
		t.Fatalf("failure = %+v, ok = %v; want timeout", failure, ok)
	}
	if failure.Points != 50 {
		t.Fatalf("partial points = %d, want half the base", failure.Points)
	}
}

func TestColorMatchMismatchResetsStreakAndKeepsPattern(t *testing.T) {
	t.Parallel()
	def := catalog.GameDefinition{
		ID:     catalog.GameColorMatch,
		Track:  catalog.TrackMental,
		Name:   "Colour Match",
		Levels: []catalog.LevelSpec{{Points: 100, TimeLimit: 60, Pairs: 3}},
	}
	h := newHarness()
	const seed = 7
	session := h.start(t, def, seed)

	// Replay the pattern draws without peeking at the board.
	rng := random.NewSeeded(seed)
	draw := func() []int {
		p := make([]int, 3)
		for i := range p {
			p[i] = rng.Intn(6)
		}
		return p
	}

	first := draw()
	for _, c := range first {
		h.host.PointerDown(c)
	}
	second := draw()
	h.host.PointerDown(second[0])
	h.host.PointerDown(second[1])
	h.host.PointerDown((second[2] + 1) % 6)

	snap := session.Snapshot()
	if got := snap.Counters[2].Value; got != "x0" {
		t.Fatalf("streak = %q, want reset after a mismatch", got)
	}
	if got := snap.Counters[1].Value; got != "10" {
		t.Fatalf("score = %q, want no points for a mismatch", got)
	}
	for i, c := range second {
		if snap.Grid.Cells[i].Text != snap.Grid.Cells[2*snap.Grid.Width+c].Text {
			t.Fatalf("pattern cell %d changed after a mismatch", i)
		}
	}
	if snap.Grid.Cells[snap.Grid.Width].Text != "" {
		t.Fatalf("selection row not cleared after a mismatch")
	}

	// The kept pattern is still winnable.
	for _, c := range second {
		h.host.PointerDown(c)
	}
	snap = session.Snapshot()
	if got := snap.Counters[0].Value; got != "2 / 3" {
		t.Fatalf("matches = %q, want the retried pattern to count", got)
	}
	if got := snap.Counters[2].Value; got != "x1" {
		t.Fatalf("streak = %q, want the streak rebuilt from zero", got)
	}
}
