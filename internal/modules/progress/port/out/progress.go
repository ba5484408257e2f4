package out

import (
	"context"

	"wellquest/internal/modules/progress/domain"
)

// ProfileStore persists the single player profile. Load reports
// apperrors.ErrNoProfile on first run and apperrors.ErrCorruptProfile when
// the saved payload does not parse; callers fall back to defaults.
type ProfileStore interface {
	Load(ctx context.Context) (domain.PlayerProfile, error)
	Save(ctx context.Context, profile domain.PlayerProfile) error
}

// HistoryProjector records finished rounds for the stats view.
type HistoryProjector interface {
	Record(ctx context.Context, round domain.Round) error
	Summary(ctx context.Context) ([]domain.GameSummary, error)
	Reset(ctx context.Context) error
}
