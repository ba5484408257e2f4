package usecase

import (
	"context"
	"fmt"

	"wellquest/internal/modules/catalog/domain"
	"wellquest/internal/modules/catalog/dto"
	catalogin "wellquest/internal/modules/catalog/port/in"
	apperrors "wellquest/internal/platform/errors"
)

type Interactor struct {
	catalog domain.Catalog
}

func NewInteractor(catalog domain.Catalog) catalogin.Usecase {
	return &Interactor{catalog: catalog}
}

func (i *Interactor) ListGames(_ context.Context, track string) ([]dto.GameInfo, error) {
	parsed, err := domain.ParseTrack(track)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrInvalidInput, track)
	}
	games := i.catalog.Games(parsed)
	out := make([]dto.GameInfo, 0, len(games))
	for _, def := range games {
		out = append(out, toInfo(def))
	}
	return out, nil
}

func (i *Interactor) GetGame(_ context.Context, id string) (dto.GameInfo, error) {
	def, ok := i.catalog.Game(domain.GameID(id))
	if !ok {
		return dto.GameInfo{}, fmt.Errorf("%w: %s", apperrors.ErrUnknownGame, id)
	}
	return toInfo(def), nil
}

func toInfo(def domain.GameDefinition) dto.GameInfo {
	levels := make([]dto.LevelInfo, 0, len(def.Levels))
	for tier, spec := range def.Levels {
		levels = append(levels, dto.LevelInfo{Tier: tier + 1, Name: spec.Name, Points: spec.Points})
	}
	return dto.GameInfo{
		ID:          string(def.ID),
		Track:       string(def.Track),
		Name:        def.Name,
		Icon:        def.Icon,
		Description: def.Description,
		UnlockLevel: def.UnlockLevel,
		WellnessTip: def.WellnessTip,
		Levels:      levels,
	}
}
