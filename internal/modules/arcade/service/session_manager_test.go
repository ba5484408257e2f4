package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"wellquest/internal/modules/arcade/domain"
	arcadeout "wellquest/internal/modules/arcade/port/out"
	"wellquest/internal/modules/arcade/service"
	catalog "wellquest/internal/modules/catalog/domain"
	progressdto "wellquest/internal/modules/progress/dto"
	apperrors "wellquest/internal/platform/errors"
	"wellquest/internal/platform/loop"
	"wellquest/internal/platform/random"
)

type fakeClock struct {
	now time.Time
}

func (f *fakeClock) Now() time.Time { return f.now }

type fakeProgress struct {
	level    int
	unlocked map[string]bool
	plays    []string
	awards   []progressdto.AwardInput
	failures []progressdto.AwardInput
}

func (f *fakeProgress) Profile(context.Context) (progressdto.ProfileOutput, error) {
	return progressdto.ProfileOutput{Level: f.level, CurrentTrack: "physical"}, nil
}

func (f *fakeProgress) SelectTrack(_ context.Context, track string) (progressdto.ProfileOutput, error) {
	return progressdto.ProfileOutput{Level: f.level, CurrentTrack: track}, nil
}

func (f *fakeProgress) IsUnlocked(_ context.Context, _, gameID string) (bool, error) {
	return f.unlocked[gameID], nil
}

func (f *fakeProgress) RecordPlay(_ context.Context, gameID string) error {
	f.plays = append(f.plays, gameID)
	return nil
}

func (f *fakeProgress) AwardPoints(_ context.Context, input progressdto.AwardInput) (progressdto.AwardOutput, error) {
	f.awards = append(f.awards, input)
	return progressdto.AwardOutput{Score: input.Points}, nil
}

func (f *fakeProgress) RecordFailure(_ context.Context, input progressdto.AwardInput) (progressdto.AwardOutput, error) {
	f.failures = append(f.failures, input)
	return progressdto.AwardOutput{Score: input.Points}, nil
}

func (f *fakeProgress) CheckDailyReward(context.Context) (progressdto.DailyRewardOutput, error) {
	return progressdto.DailyRewardOutput{}, nil
}

func (f *fakeProgress) Stats(context.Context) ([]progressdto.GameStatsOutput, error) {
	return nil, nil
}

func (f *fakeProgress) Reset(context.Context) error { return nil }

type fakeAudio struct {
	cues []arcadeout.Cue
}

func (f *fakeAudio) Play(cue arcadeout.Cue) { f.cues = append(f.cues, cue) }

func (f *fakeAudio) last() arcadeout.Cue {
	if len(f.cues) == 0 {
		return ""
	}
	return f.cues[len(f.cues)-1]
}

type fixture struct {
	clk      *fakeClock
	host     *loop.Loop
	progress *fakeProgress
	audio    *fakeAudio
	manager  *service.SessionManager
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	start := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	clk := &fakeClock{now: start}
	host := loop.New(start)
	progress := &fakeProgress{level: 1, unlocked: map[string]bool{"run": true}}
	audio := &fakeAudio{}
	manager := service.NewSessionManager(
		catalog.NewCatalog(catalog.Builtin()), progress, host, clk, random.NewSeeded(1), audio,
	)
	if err := manager.SelectTrack(context.Background(), catalog.TrackPhysical); err != nil {
		t.Fatalf("select track: %v", err)
	}
	return &fixture{clk: clk, host: host, progress: progress, audio: audio, manager: manager}
}

func (fx *fixture) advance(t *testing.T, d time.Duration) {
	t.Helper()
	fx.clk.now = fx.clk.now.Add(d)
	if err := fx.manager.Advance(context.Background(), fx.clk.now); err != nil {
		t.Fatalf("advance: %v", err)
	}
}

func (fx *fixture) press(t *testing.T, code string) {
	t.Helper()
	if err := fx.manager.KeyDown(context.Background(), code); err != nil {
		t.Fatalf("key down: %v", err)
	}
}

func TestStartGameRejectsLockedGame(t *testing.T) {
	t.Parallel()
	fx := newFixture(t)

	err := fx.manager.StartGame(context.Background(), catalog.GameSquat)
	if !errors.Is(err, apperrors.ErrGameLocked) {
		t.Fatalf("err = %v, want ErrGameLocked", err)
	}
	if fx.audio.last() != arcadeout.CueFail {
		t.Fatalf("locked game must play the fail cue, got %q", fx.audio.last())
	}
	if fx.manager.Session() != nil {
		t.Fatalf("locked game must not create a session")
	}
	if len(fx.progress.plays) != 0 {
		t.Fatalf("locked game must not record a play: %v", fx.progress.plays)
	}
	if fx.manager.Phase() != service.PhaseSelecting {
		t.Fatalf("phase = %s, want selecting", fx.manager.Phase())
	}
}

func TestStartGameRejectsUnknownAndWrongTrack(t *testing.T) {
	t.Parallel()
	fx := newFixture(t)

	if err := fx.manager.StartGame(context.Background(), "ghost"); !errors.Is(err, apperrors.ErrUnknownGame) {
		t.Fatalf("unknown id err = %v", err)
	}
	// A real game from the other track is just as unknown here.
	if err := fx.manager.StartGame(context.Background(), catalog.GameSnake); !errors.Is(err, apperrors.ErrUnknownGame) {
		t.Fatalf("wrong track err = %v", err)
	}
	if fx.manager.Session() != nil {
		t.Fatalf("rejected start must not create a session")
	}
}

func TestStartingAgainSilencesThePreviousSession(t *testing.T) {
	t.Parallel()
	fx := newFixture(t)

	if err := fx.manager.StartGame(context.Background(), catalog.GameRun); err != nil {
		t.Fatalf("start: %v", err)
	}
	first := fx.manager.Session()

	if err := fx.manager.StartGame(context.Background(), catalog.GameRun); err != nil {
		t.Fatalf("restart: %v", err)
	}
	second := fx.manager.Session()
	if first == second {
		t.Fatalf("restart must build a fresh session")
	}

	// Past the first session's deadline: only the live session times out.
	fx.advance(t, 11*time.Minute)
	if first.State() != domain.StateActive {
		t.Fatalf("abandoned session advanced to %s; its timers should be dead", first.State())
	}
	if second.State() != domain.StateFailed {
		t.Fatalf("live session state = %s, want failed", second.State())
	}
	if len(fx.progress.failures) != 1 {
		t.Fatalf("timeout routed %d times, want 1", len(fx.progress.failures))
	}
}

func TestCompletionRoutesPointsExactlyOnce(t *testing.T) {
	t.Parallel()
	fx := newFixture(t)

	if err := fx.manager.StartGame(context.Background(), catalog.GameRun); err != nil {
		t.Fatalf("start: %v", err)
	}
	// Tier 1 run: 500m at 10m per stride.
	for i := 0; i < 50; i++ {
		fx.advance(t, 250*time.Millisecond)
		fx.press(t, domain.CodeSpace)
	}

	if got := len(fx.progress.awards); got != 1 {
		t.Fatalf("completion routed %d times, want 1", got)
	}
	if fx.manager.Phase() != service.PhaseSelecting {
		t.Fatalf("phase after completion = %s, want selecting", fx.manager.Phase())
	}
	if fx.manager.Award() == nil {
		t.Fatalf("award outcome not surfaced")
	}

	// Extra pumping after the terminal state must not double-route.
	fx.advance(t, time.Second)
	fx.press(t, domain.CodeSpace)
	if got := len(fx.progress.awards); got != 1 {
		t.Fatalf("post-completion events re-routed the award: %d", got)
	}
	if fx.progress.awards[0].GameID != "run" || fx.progress.awards[0].Points == 0 {
		t.Fatalf("award input = %+v", fx.progress.awards[0])
	}
}

func TestAbandonDropsTheRoundWithoutScoring(t *testing.T) {
	t.Parallel()
	fx := newFixture(t)

	if err := fx.manager.StartGame(context.Background(), catalog.GameRun); err != nil {
		t.Fatalf("start: %v", err)
	}
	session := fx.manager.Session()
	if err := fx.manager.Abandon(context.Background()); err != nil {
		t.Fatalf("abandon: %v", err)
	}
	if fx.manager.Session() != nil {
		t.Fatalf("abandon must drop the session")
	}

	fx.advance(t, 11*time.Minute)
	if session.State() != domain.StateActive {
		t.Fatalf("abandoned session reached %s after its deadline", session.State())
	}
	if len(fx.progress.awards)+len(fx.progress.failures) != 0 {
		t.Fatalf("abandoned round was scored")
	}
}
