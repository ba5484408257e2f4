package service

import (
	"context"
	"fmt"
	"time"

	catalog "wellquest/internal/modules/catalog/domain"
	"wellquest/internal/modules/progress/domain"
	progressout "wellquest/internal/modules/progress/port/out"
	"wellquest/internal/platform/clock"
	"wellquest/internal/platform/id"
)

// ProgressService owns the in-memory profile and routes every mutation
// through the progression engine, persisting after each one.
type ProgressService struct {
	engine  domain.Engine
	clock   clock.Clock
	idGen   id.Generator
	store   progressout.ProfileStore
	history progressout.HistoryProjector

	profile *domain.PlayerProfile
}

func NewProgressService(engine domain.Engine, clk clock.Clock, idGen id.Generator, store progressout.ProfileStore, history progressout.HistoryProjector) *ProgressService {
	return &ProgressService{engine: engine, clock: clk, idGen: idGen, store: store, history: history}
}

func (s *ProgressService) Engine() domain.Engine { return s.engine }

// Profile loads the saved profile on first use. A missing or corrupt save
// resets to the default profile; load never fails the caller.
func (s *ProgressService) Profile(ctx context.Context) *domain.PlayerProfile {
	if s.profile != nil {
		return s.profile
	}
	loaded, err := s.store.Load(ctx)
	if err != nil {
		// First run and corrupt saves both reset to defaults; unreadable
		// storage is treated the same way. Load never fails the caller.
		loaded = s.engine.Default()
	}
	s.engine.Normalize(&loaded)
	s.profile = &loaded
	return s.profile
}

func (s *ProgressService) Persist(ctx context.Context) error {
	if s.profile == nil {
		return nil
	}
	if err := s.store.Save(ctx, *s.profile); err != nil {
		return fmt.Errorf("save profile: %w", err)
	}
	return nil
}

func (s *ProgressService) SelectTrack(ctx context.Context, track catalog.Track) error {
	p := s.Profile(ctx)
	p.CurrentTrack = track
	return s.Persist(ctx)
}

func (s *ProgressService) RecordPlay(ctx context.Context, gameID catalog.GameID) error {
	p := s.Profile(ctx)
	p.RecordPlay(gameID)
	p.LastPlayed = s.clock.Now()
	return s.Persist(ctx)
}

// Award feeds a finished round's points into progression and projects the
// round into history. Returns the level-up result when one occurred.
func (s *ProgressService) Award(ctx context.Context, round domain.Round) (domain.LevelUpResult, bool, error) {
	p := s.Profile(ctx)
	result, leveled := s.engine.AddScore(p, round.Points)
	if round.Outcome == "completed" {
		p.RecordBest(round.GameID, round.Points)
	}
	p.LastPlayed = s.clock.Now()
	if err := s.Persist(ctx); err != nil {
		return domain.LevelUpResult{}, false, err
	}
	s.record(ctx, round)
	return result, leveled, nil
}

func (s *ProgressService) record(ctx context.Context, round domain.Round) {
	if s.history == nil {
		return
	}
	round.ID = s.idGen.New()
	round.PlayedAt = s.clock.Now()
	// History is a projection; losing a row must not fail the award path.
	_ = s.history.Record(ctx, round)
}

// DailyReward grants the fixed daily bonus when the profile was last played
// on an earlier calendar day.
func (s *ProgressService) DailyReward(ctx context.Context, points int) (domain.LevelUpResult, bool, bool, error) {
	p := s.Profile(ctx)
	now := s.clock.Now()
	if points <= 0 || sameDay(p.LastPlayed, now) {
		return domain.LevelUpResult{}, false, false, nil
	}
	result, leveled := s.engine.AddScore(p, points)
	p.LastPlayed = now
	if err := s.Persist(ctx); err != nil {
		return domain.LevelUpResult{}, false, false, err
	}
	return result, leveled, true, nil
}

func sameDay(a, b time.Time) bool {
	if a.IsZero() {
		return false
	}
	return a.Year() == b.Year() && a.YearDay() == b.YearDay()
}

func (s *ProgressService) Reset(ctx context.Context) error {
	fresh := s.engine.Default()
	s.profile = &fresh
	if s.history != nil {
		_ = s.history.Reset(ctx)
	}
	return s.Persist(ctx)
}

func (s *ProgressService) Summary(ctx context.Context) ([]domain.GameSummary, error) {
	if s.history == nil {
		return nil, nil
	}
	return s.history.Summary(ctx)
}
