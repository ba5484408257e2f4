package out

import (
	"context"

	"wellquest/internal/modules/coach/domain"
)

type ManifestStore interface {
	Load(ctx context.Context) ([]domain.Manifest, error)
}

type Host interface {
	CheckLifecycle(ctx context.Context, manifest domain.Manifest) error
	GetMetadata(ctx context.Context, manifest domain.Manifest) (domain.Metadata, error)
	GetTip(ctx context.Context, manifest domain.Manifest, track string, level int) (domain.Tip, error)
}
