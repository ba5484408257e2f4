package usecase_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	catalog "wellquest/internal/modules/catalog/domain"
	progressout "wellquest/internal/modules/progress/adapter/out"
	"wellquest/internal/modules/progress/domain"
	"wellquest/internal/modules/progress/dto"
	progressin "wellquest/internal/modules/progress/port/in"
	"wellquest/internal/modules/progress/service"
	"wellquest/internal/modules/progress/usecase"
)

type fakeClock struct {
	now time.Time
}

func (f *fakeClock) Now() time.Time { return f.now }

type fakeID struct{}

func (fakeID) New() string { return "round-1" }

type memoryHistory struct {
	rounds []domain.Round
}

func (m *memoryHistory) Record(_ context.Context, round domain.Round) error {
	m.rounds = append(m.rounds, round)
	return nil
}

func (m *memoryHistory) Summary(context.Context) ([]domain.GameSummary, error) {
	byGame := map[catalog.GameID]*domain.GameSummary{}
	var order []catalog.GameID
	for _, r := range m.rounds {
		s, ok := byGame[r.GameID]
		if !ok {
			s = &domain.GameSummary{GameID: r.GameID}
			byGame[r.GameID] = s
			order = append(order, r.GameID)
		}
		s.Rounds++
		s.TotalPoints += r.Points
		if r.Points > s.BestPoints {
			s.BestPoints = r.Points
		}
		if r.Outcome == "completed" {
			s.Completions++
		}
	}
	out := make([]domain.GameSummary, 0, len(order))
	for _, id := range order {
		out = append(out, *byGame[id])
	}
	return out, nil
}

func (m *memoryHistory) Reset(context.Context) error {
	m.rounds = nil
	return nil
}

func newInteractor(t *testing.T, dataPath string, clk *fakeClock, history *memoryHistory) progressin.Usecase {
	t.Helper()
	engine := domain.NewEngine(catalog.NewCatalog(catalog.Builtin()), 100)
	svc := service.NewProgressService(engine, clk, fakeID{}, progressout.NewFileProfileStore(dataPath), history)
	return usecase.NewInteractor(svc, 100)
}

func TestCorruptProfileFallsBackToDefaults(t *testing.T) {
	t.Parallel()
	dataPath := t.TempDir()
	dir := filepath.Join(dataPath, ".wellquest")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "profile.json"), []byte("{not json"), 0o644); err != nil {
		t.Fatalf("write corrupt profile: %v", err)
	}

	clk := &fakeClock{now: time.Date(2026, 3, 2, 8, 0, 0, 0, time.UTC)}
	uc := newInteractor(t, dataPath, clk, &memoryHistory{})

	profile, err := uc.Profile(context.Background())
	if err != nil {
		t.Fatalf("profile load must not fail on corrupt storage: %v", err)
	}
	if profile.Level != 1 || profile.Score != 0 {
		t.Fatalf("expected default profile, got level=%d score=%d", profile.Level, profile.Score)
	}
	if len(profile.UnlockedGames["physical"]) != 1 || profile.UnlockedGames["physical"][0] != "run" {
		t.Fatalf("default profile missing physical starter: %v", profile.UnlockedGames)
	}
}

func TestAwardPointsPersistsAndSurfacesUnlocks(t *testing.T) {
	t.Parallel()
	dataPath := t.TempDir()
	clk := &fakeClock{now: time.Date(2026, 3, 2, 8, 0, 0, 0, time.UTC)}
	history := &memoryHistory{}
	uc := newInteractor(t, dataPath, clk, history)

	out, err := uc.AwardPoints(context.Background(), dto.AwardInput{GameID: "run", Tier: 1, Points: 250})
	if err != nil {
		t.Fatalf("award points: %v", err)
	}
	if !out.LeveledUp || out.NewLevel != 3 {
		t.Fatalf("expected level up to 3, got %+v", out)
	}
	if out.BestScore != 250 {
		t.Fatalf("best score not recorded: %d", out.BestScore)
	}
	if len(out.Unlocks) != 4 {
		t.Fatalf("expected 4 unlock events at level 3, got %d: %v", len(out.Unlocks), out.Unlocks)
	}
	if len(history.rounds) != 1 || history.rounds[0].Outcome != "completed" {
		t.Fatalf("round not projected into history: %v", history.rounds)
	}

	// Fresh service over the same directory must see the persisted state.
	reloaded := newInteractor(t, dataPath, clk, history)
	profile, err := reloaded.Profile(context.Background())
	if err != nil {
		t.Fatalf("reload profile: %v", err)
	}
	if profile.Level != 3 || profile.Score != 250 {
		t.Fatalf("persisted profile level=%d score=%d", profile.Level, profile.Score)
	}
}

func TestRecordFailureKeepsBestScoreUntouched(t *testing.T) {
	t.Parallel()
	clk := &fakeClock{now: time.Date(2026, 3, 2, 8, 0, 0, 0, time.UTC)}
	history := &memoryHistory{}
	uc := newInteractor(t, t.TempDir(), clk, history)

	out, err := uc.RecordFailure(context.Background(), dto.AwardInput{GameID: "memoryTiles", Tier: 1, Points: 40, Reason: "timeout"})
	if err != nil {
		t.Fatalf("record failure: %v", err)
	}
	if out.BestScore != 0 {
		t.Fatalf("failure must not update best score, got %d", out.BestScore)
	}
	if out.Score != 40 {
		t.Fatalf("partial points must still score, got %d", out.Score)
	}
	if len(history.rounds) != 1 || history.rounds[0].Reason != "timeout" {
		t.Fatalf("failure round missing reason: %v", history.rounds)
	}
}

func TestDailyRewardGrantsOncePerDay(t *testing.T) {
	t.Parallel()
	clk := &fakeClock{now: time.Date(2026, 3, 2, 8, 0, 0, 0, time.UTC)}
	uc := newInteractor(t, t.TempDir(), clk, &memoryHistory{})

	first, err := uc.CheckDailyReward(context.Background())
	if err != nil {
		t.Fatalf("daily reward: %v", err)
	}
	if !first.Granted || first.Points != 100 {
		t.Fatalf("first visit should grant the reward, got %+v", first)
	}

	second, err := uc.CheckDailyReward(context.Background())
	if err != nil {
		t.Fatalf("daily reward: %v", err)
	}
	if second.Granted {
		t.Fatalf("same-day second check must not grant again")
	}

	clk.now = clk.now.Add(24 * time.Hour)
	third, err := uc.CheckDailyReward(context.Background())
	if err != nil {
		t.Fatalf("daily reward: %v", err)
	}
	if !third.Granted {
		t.Fatalf("next-day check should grant again")
	}
}
