package usecase

import (
	"context"
	"fmt"
	"sync"

	catalog "wellquest/internal/modules/catalog/domain"
	"wellquest/internal/modules/progress/domain"
	"wellquest/internal/modules/progress/dto"
	progressin "wellquest/internal/modules/progress/port/in"
	"wellquest/internal/modules/progress/service"
	apperrors "wellquest/internal/platform/errors"
)

// Interactor guards the service with a mutex: the TUI reads the profile from
// concurrent goroutines while rounds feed scores in.
type Interactor struct {
	mu          sync.Mutex
	svc         *service.ProgressService
	dailyReward int
}

func NewInteractor(svc *service.ProgressService, dailyReward int) progressin.Usecase {
	return &Interactor{svc: svc, dailyReward: dailyReward}
}

func (i *Interactor) Profile(ctx context.Context) (dto.ProfileOutput, error) {
	i.mu.Lock()
	defer i.mu.Unlock()
	return i.toProfileOutput(i.svc.Profile(ctx)), nil
}

func (i *Interactor) SelectTrack(ctx context.Context, track string) (dto.ProfileOutput, error) {
	i.mu.Lock()
	defer i.mu.Unlock()
	parsed, err := catalog.ParseTrack(track)
	if err != nil {
		return dto.ProfileOutput{}, fmt.Errorf("%w: %s", apperrors.ErrInvalidInput, track)
	}
	if err := i.svc.SelectTrack(ctx, parsed); err != nil {
		return dto.ProfileOutput{}, err
	}
	return i.toProfileOutput(i.svc.Profile(ctx)), nil
}

func (i *Interactor) IsUnlocked(ctx context.Context, track, gameID string) (bool, error) {
	i.mu.Lock()
	defer i.mu.Unlock()
	parsed, err := catalog.ParseTrack(track)
	if err != nil {
		return false, fmt.Errorf("%w: %s", apperrors.ErrInvalidInput, track)
	}
	p := i.svc.Profile(ctx)
	return i.svc.Engine().IsUnlocked(p, parsed, catalog.GameID(gameID)), nil
}

func (i *Interactor) RecordPlay(ctx context.Context, gameID string) error {
	i.mu.Lock()
	defer i.mu.Unlock()
	return i.svc.RecordPlay(ctx, catalog.GameID(gameID))
}

func (i *Interactor) AwardPoints(ctx context.Context, input dto.AwardInput) (dto.AwardOutput, error) {
	i.mu.Lock()
	defer i.mu.Unlock()
	if input.Points < 0 {
		return dto.AwardOutput{}, fmt.Errorf("%w: points must be non-negative", apperrors.ErrInvalidInput)
	}
	return i.award(ctx, input, "completed")
}

// RecordFailure persists a failed round. Partial points flow through the
// same scoring path; best score is not updated for failures.
func (i *Interactor) RecordFailure(ctx context.Context, input dto.AwardInput) (dto.AwardOutput, error) {
	i.mu.Lock()
	defer i.mu.Unlock()
	if input.Points < 0 {
		input.Points = 0
	}
	return i.award(ctx, input, "failed")
}

func (i *Interactor) award(ctx context.Context, input dto.AwardInput, outcome string) (dto.AwardOutput, error) {
	round := domain.Round{
		GameID:  catalog.GameID(input.GameID),
		Tier:    input.Tier,
		Points:  input.Points,
		Outcome: outcome,
		Reason:  input.Reason,
	}
	result, leveled, err := i.svc.Award(ctx, round)
	if err != nil {
		return dto.AwardOutput{}, err
	}
	p := i.svc.Profile(ctx)
	out := dto.AwardOutput{
		Score:     p.Score,
		Level:     p.Level,
		LeveledUp: leveled,
		BestScore: p.GameStats[round.GameID].BestScore,
	}
	if leveled {
		out.NewLevel = result.NewLevel
		out.Unlocks = toUnlockInfos(result.Unlocks)
	}
	return out, nil
}

func (i *Interactor) CheckDailyReward(ctx context.Context) (dto.DailyRewardOutput, error) {
	i.mu.Lock()
	defer i.mu.Unlock()
	result, leveled, granted, err := i.svc.DailyReward(ctx, i.dailyReward)
	if err != nil {
		return dto.DailyRewardOutput{}, err
	}
	p := i.svc.Profile(ctx)
	out := dto.DailyRewardOutput{
		Granted:   granted,
		Score:     p.Score,
		Level:     p.Level,
		LeveledUp: leveled,
	}
	if granted {
		out.Points = i.dailyReward
	}
	if leveled {
		out.Unlocks = toUnlockInfos(result.Unlocks)
	}
	return out, nil
}

func (i *Interactor) Stats(ctx context.Context) ([]dto.GameStatsOutput, error) {
	i.mu.Lock()
	defer i.mu.Unlock()
	summaries, err := i.svc.Summary(ctx)
	if err != nil {
		return nil, fmt.Errorf("load history: %w", err)
	}
	p := i.svc.Profile(ctx)
	out := make([]dto.GameStatsOutput, 0, len(summaries))
	for _, s := range summaries {
		stats := p.GameStats[s.GameID]
		out = append(out, dto.GameStatsOutput{
			GameID:      string(s.GameID),
			TimesPlayed: stats.TimesPlayed,
			BestScore:   stats.BestScore,
			Rounds:      s.Rounds,
			Completions: s.Completions,
			TotalPoints: s.TotalPoints,
		})
	}
	return out, nil
}

func (i *Interactor) Reset(ctx context.Context) error {
	i.mu.Lock()
	defer i.mu.Unlock()
	return i.svc.Reset(ctx)
}

func (i *Interactor) toProfileOutput(p *domain.PlayerProfile) dto.ProfileOutput {
	unlocked := make(map[string][]string, len(p.UnlockedGames))
	for track, ids := range p.UnlockedGames {
		names := make([]string, 0, len(ids))
		for _, id := range ids {
			names = append(names, string(id))
		}
		unlocked[string(track)] = names
	}
	perLevel := i.svc.Engine().PointsPerLevel()
	return dto.ProfileOutput{
		Level:         p.Level,
		Score:         p.Score,
		PointsToNext:  perLevel - p.Score%perLevel,
		CurrentTrack:  string(p.CurrentTrack),
		UnlockedGames: unlocked,
		LastPlayed:    p.LastPlayed,
	}
}

func toUnlockInfos(events []domain.UnlockEvent) []dto.UnlockInfo {
	out := make([]dto.UnlockInfo, 0, len(events))
	for _, ev := range events {
		out = append(out, dto.UnlockInfo{
			GameID:      string(ev.GameID),
			Track:       string(ev.Track),
			Name:        ev.Name,
			WellnessTip: ev.WellnessTip,
		})
	}
	return out
}
