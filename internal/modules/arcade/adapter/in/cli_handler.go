package in

import (
	"context"

	"wellquest/internal/modules/arcade/dto"
	arcadein "wellquest/internal/modules/arcade/port/in"
)

// CLIHandler exposes the selection flow to the command layer. Live play goes
// through the TUI; the CLI only lists and inspects.
type CLIHandler struct {
	uc arcadein.Usecase
}

func NewCLIHandler(uc arcadein.Usecase) CLIHandler {
	return CLIHandler{uc: uc}
}

func (h CLIHandler) SelectTrack(ctx context.Context, track string) error {
	return h.uc.SelectTrack(ctx, track)
}

func (h CLIHandler) Roster(ctx context.Context) ([]dto.GameCard, error) {
	return h.uc.Roster(ctx)
}
