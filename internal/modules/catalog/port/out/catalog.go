package out

import (
	"context"

	"wellquest/internal/modules/catalog/domain"
)

// Override adjusts the tunables of one shipped game. Zero-valued spec
// fields leave the builtin value in place.
type Override struct {
	ID          domain.GameID
	WellnessTip string
	Levels      []domain.LevelSpec
}

// PackStore loads tuning overrides from the player's data directory.
type PackStore interface {
	Load(ctx context.Context) ([]Override, error)
}
