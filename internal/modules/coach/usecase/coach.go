package usecase

import (
	"context"

	"wellquest/internal/modules/coach/dto"
	coachin "wellquest/internal/modules/coach/port/in"
	"wellquest/internal/modules/coach/service"
)

type Interactor struct {
	svc *service.CoachService
}

func NewInteractor(svc *service.CoachService) coachin.Usecase {
	return &Interactor{svc: svc}
}

func (i *Interactor) List(ctx context.Context) ([]dto.CoachInfo, error) {
	return i.svc.List(ctx)
}

func (i *Interactor) Doctor(ctx context.Context) ([]dto.DoctorResult, error) {
	return i.svc.Doctor(ctx)
}

func (i *Interactor) Tip(ctx context.Context, track string, level int) (dto.TipOutput, error) {
	return i.svc.Tip(ctx, track, level)
}
