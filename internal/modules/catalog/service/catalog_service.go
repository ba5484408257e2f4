package service

import (
	"context"

	"wellquest/internal/modules/catalog/domain"
	catalogout "wellquest/internal/modules/catalog/port/out"
)

type CatalogService struct {
	packs catalogout.PackStore
}

func NewCatalogService(packs catalogout.PackStore) *CatalogService {
	return &CatalogService{packs: packs}
}

// Build assembles the immutable catalog: the builtin roster with any pack
// overrides applied. Pack load failures fall back to the builtin roster;
// the catalog is never allowed to be empty or fail startup.
func (s *CatalogService) Build(ctx context.Context) domain.Catalog {
	defs := domain.Builtin()
	if s.packs == nil {
		return domain.NewCatalog(defs)
	}
	overrides, err := s.packs.Load(ctx)
	if err != nil {
		return domain.NewCatalog(defs)
	}
	for i, def := range defs {
		for _, o := range overrides {
			if o.ID != def.ID {
				continue
			}
			defs[i] = applyOverride(def, o)
		}
	}
	return domain.NewCatalog(defs)
}

func applyOverride(def domain.GameDefinition, o catalogout.Override) domain.GameDefinition {
	if o.WellnessTip != "" {
		def.WellnessTip = o.WellnessTip
	}
	for tier, spec := range o.Levels {
		if tier >= len(def.Levels) {
			break
		}
		def.Levels[tier] = mergeSpec(def.Levels[tier], spec)
	}
	return def
}

func mergeSpec(base, override domain.LevelSpec) domain.LevelSpec {
	if override.Name != "" {
		base.Name = override.Name
	}
	if override.Points > 0 {
		base.Points = override.Points
	}
	if override.TimeLimit > 0 {
		base.TimeLimit = override.TimeLimit
	}
	if override.Target > 0 {
		base.Target = override.Target
	}
	if override.Reps > 0 {
		base.Reps = override.Reps
	}
	if override.Sets > 0 {
		base.Sets = override.Sets
	}
	if override.Laps > 0 {
		base.Laps = override.Laps
	}
	if override.Moves > 0 {
		base.Moves = override.Moves
	}
	if override.Speed > 0 {
		base.Speed = override.Speed
	}
	if override.Pairs > 0 {
		base.Pairs = override.Pairs
	}
	if override.Tiles > 0 {
		base.Tiles = override.Tiles
	}
	return base
}
