package in

import (
	"context"
	"time"

	"wellquest/internal/modules/arcade/dto"
)

// Usecase drives the play flow: pick a track, start a round, pump it with
// host events, and route the outcome into progression.
type Usecase interface {
	SelectTrack(ctx context.Context, track string) error
	Roster(ctx context.Context) ([]dto.GameCard, error)

	StartGame(ctx context.Context, gameID string) (dto.SessionView, error)
	Retry(ctx context.Context) (dto.SessionView, error)
	Abandon(ctx context.Context) error

	// Advance pumps the session's timers up to now and returns the fresh
	// view. The host calls it from its tick.
	Advance(ctx context.Context, now time.Time) (dto.SessionView, error)
	KeyDown(ctx context.Context, code string) (dto.SessionView, error)
	KeyUp(ctx context.Context, code string) (dto.SessionView, error)
	PointerDown(ctx context.Context, target int) (dto.SessionView, error)

	View(ctx context.Context) (dto.SessionView, error)
}
