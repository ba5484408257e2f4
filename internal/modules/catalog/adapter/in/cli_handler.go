package in

import (
	"context"

	"wellquest/internal/modules/catalog/dto"
	catalogin "wellquest/internal/modules/catalog/port/in"
)

type CLIHandler struct {
	uc catalogin.Usecase
}

func NewCLIHandler(uc catalogin.Usecase) CLIHandler {
	return CLIHandler{uc: uc}
}

func (h CLIHandler) ListGames(ctx context.Context, track string) ([]dto.GameInfo, error) {
	return h.uc.ListGames(ctx, track)
}

func (h CLIHandler) GetGame(ctx context.Context, id string) (dto.GameInfo, error) {
	return h.uc.GetGame(ctx, id)
}
