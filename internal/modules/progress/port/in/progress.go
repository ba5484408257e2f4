package in

import (
	"context"

	"wellquest/internal/modules/progress/dto"
)

type Usecase interface {
	Profile(ctx context.Context) (dto.ProfileOutput, error)
	SelectTrack(ctx context.Context, track string) (dto.ProfileOutput, error)
	IsUnlocked(ctx context.Context, track, gameID string) (bool, error)
	RecordPlay(ctx context.Context, gameID string) error
	AwardPoints(ctx context.Context, input dto.AwardInput) (dto.AwardOutput, error)
	RecordFailure(ctx context.Context, input dto.AwardInput) (dto.AwardOutput, error)
	CheckDailyReward(ctx context.Context) (dto.DailyRewardOutput, error)
	Stats(ctx context.Context) ([]dto.GameStatsOutput, error)
	Reset(ctx context.Context) error
}
