package in

import (
	"context"

	"wellquest/internal/modules/catalog/dto"
)

type Usecase interface {
	ListGames(ctx context.Context, track string) ([]dto.GameInfo, error)
	GetGame(ctx context.Context, id string) (dto.GameInfo, error)
}
