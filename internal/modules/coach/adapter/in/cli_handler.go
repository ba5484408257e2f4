package in

import (
	"context"

	"wellquest/internal/modules/coach/dto"
	coachin "wellquest/internal/modules/coach/port/in"
)

type CLIHandler struct {
	usecase coachin.Usecase
}

func NewCLIHandler(usecase coachin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) List(ctx context.Context) ([]dto.CoachInfo, error) {
	return h.usecase.List(ctx)
}

func (h CLIHandler) Doctor(ctx context.Context) ([]dto.DoctorResult, error) {
	return h.usecase.Doctor(ctx)
}

func (h CLIHandler) Tip(ctx context.Context, track string, level int) (dto.TipOutput, error) {
	return h.usecase.Tip(ctx, track, level)
}
