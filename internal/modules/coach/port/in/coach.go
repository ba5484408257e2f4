package in

import (
	"context"

	"wellquest/internal/modules/coach/dto"
)

type Usecase interface {
	List(ctx context.Context) ([]dto.CoachInfo, error)
	Doctor(ctx context.Context) ([]dto.DoctorResult, error)
	Tip(ctx context.Context, track string, level int) (dto.TipOutput, error)
}
