package in

import (
	"context"

	"wellquest/internal/modules/progress/dto"
	progressin "wellquest/internal/modules/progress/port/in"
)

type CLIHandler struct {
	uc progressin.Usecase
}

func NewCLIHandler(uc progressin.Usecase) CLIHandler {
	return CLIHandler{uc: uc}
}

func (h CLIHandler) Profile(ctx context.Context) (dto.ProfileOutput, error) {
	return h.uc.Profile(ctx)
}

func (h CLIHandler) SelectTrack(ctx context.Context, track string) (dto.ProfileOutput, error) {
	return h.uc.SelectTrack(ctx, track)
}

func (h CLIHandler) Stats(ctx context.Context) ([]dto.GameStatsOutput, error) {
	return h.uc.Stats(ctx)
}

func (h CLIHandler) Reset(ctx context.Context) error {
	return h.uc.Reset(ctx)
}
