package domain

import (
	"fmt"

	catalog "wellquest/internal/modules/catalog/domain"
	"wellquest/internal/platform/clock"
	apperrors "wellquest/internal/platform/errors"
	"wellquest/internal/platform/loop"
	"wellquest/internal/platform/random"
)

// New builds the session for a game at a difficulty tier. The scope must be
// fresh; the session owns it from here and releases it when it finishes.
func New(def catalog.GameDefinition, tier int, scope *loop.Scope, clk clock.Clock, rng random.Source) (Session, error) {
	switch def.ID {
	case catalog.GameRun:
		return newRunSession(def, tier, scope, clk), nil
	case catalog.GameSquat:
		return newSquatSession(def, tier, scope, clk), nil
	case catalog.GameSwim:
		return newSwimSession(def, tier, scope, clk), nil
	case catalog.GameCycle:
		return newCycleSession(def, tier, scope, clk), nil
	case catalog.GameColorMatch:
		return newColorMatchSession(def, tier, scope, clk, rng), nil
	case catalog.GameMemoryTiles:
		return newMemoryTilesSession(def, tier, scope, clk, rng), nil
	case catalog.GamePuzzle2048:
		return newPuzzle2048Session(def, tier, scope, clk, rng), nil
	case catalog.GameSnake:
		return newSnakeSession(def, tier, scope, clk, rng), nil
	case catalog.GameWhackAMole:
		return newWhackAMoleSession(def, tier, scope, clk, rng), nil
	default:
		return nil, fmt.Errorf("%w: %s", apperrors.ErrUnknownGame, def.ID)
	}
}
