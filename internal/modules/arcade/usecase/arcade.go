package usecase

import (
	"context"
	"fmt"
	"sync"
	"time"

	"wellquest/internal/modules/arcade/domain"
	"wellquest/internal/modules/arcade/dto"
	arcadein "wellquest/internal/modules/arcade/port/in"
	"wellquest/internal/modules/arcade/service"
	catalog "wellquest/internal/modules/catalog/domain"
	apperrors "wellquest/internal/platform/errors"
)

// Interactor serializes access to the manager: the TUI issues commands from
// concurrent goroutines, while the loop underneath is single-threaded.
type Interactor struct {
	mu      sync.Mutex
	manager *service.SessionManager
}

func NewInteractor(manager *service.SessionManager) arcadein.Usecase {
	return &Interactor{manager: manager}
}

func (i *Interactor) SelectTrack(ctx context.Context, track string) error {
	i.mu.Lock()
	defer i.mu.Unlock()
	parsed, err := catalog.ParseTrack(track)
	if err != nil {
		return fmt.Errorf("%w: %s", apperrors.ErrInvalidInput, track)
	}
	return i.manager.SelectTrack(ctx, parsed)
}

func (i *Interactor) Roster(ctx context.Context) ([]dto.GameCard, error) {
	i.mu.Lock()
	defer i.mu.Unlock()
	games, locked, err := i.manager.Roster(ctx)
	if err != nil {
		return nil, err
	}
	cards := make([]dto.GameCard, 0, len(games))
	for _, def := range games {
		cards = append(cards, dto.GameCard{
			ID:          string(def.ID),
			Name:        def.Name,
			Icon:        def.Icon,
			Description: def.Description,
			UnlockLevel: def.UnlockLevel,
			Locked:      locked[def.ID],
		})
	}
	return cards, nil
}

func (i *Interactor) StartGame(ctx context.Context, gameID string) (dto.SessionView, error) {
	i.mu.Lock()
	defer i.mu.Unlock()
	if err := i.manager.StartGame(ctx, catalog.GameID(gameID)); err != nil {
		return i.view(), err
	}
	return i.view(), nil
}

func (i *Interactor) Retry(ctx context.Context) (dto.SessionView, error) {
	i.mu.Lock()
	defer i.mu.Unlock()
	if err := i.manager.Retry(ctx); err != nil {
		return i.view(), err
	}
	return i.view(), nil
}

func (i *Interactor) Abandon(ctx context.Context) error {
	i.mu.Lock()
	defer i.mu.Unlock()
	return i.manager.Abandon(ctx)
}

func (i *Interactor) Advance(ctx context.Context, now time.Time) (dto.SessionView, error) {
	i.mu.Lock()
	defer i.mu.Unlock()
	if err := i.manager.Advance(ctx, now); err != nil {
		return dto.SessionView{}, err
	}
	return i.view(), nil
}

func (i *Interactor) KeyDown(ctx context.Context, code string) (dto.SessionView, error) {
	i.mu.Lock()
	defer i.mu.Unlock()
	if err := i.manager.KeyDown(ctx, code); err != nil {
		return dto.SessionView{}, err
	}
	return i.view(), nil
}

func (i *Interactor) KeyUp(ctx context.Context, code string) (dto.SessionView, error) {
	i.mu.Lock()
	defer i.mu.Unlock()
	if err := i.manager.KeyUp(ctx, code); err != nil {
		return dto.SessionView{}, err
	}
	return i.view(), nil
}

func (i *Interactor) PointerDown(ctx context.Context, target int) (dto.SessionView, error) {
	i.mu.Lock()
	defer i.mu.Unlock()
	if err := i.manager.PointerDown(ctx, target); err != nil {
		return dto.SessionView{}, err
	}
	return i.view(), nil
}

func (i *Interactor) View(context.Context) (dto.SessionView, error) {
	i.mu.Lock()
	defer i.mu.Unlock()
	return i.view(), nil
}

func (i *Interactor) view() dto.SessionView {
	out := dto.SessionView{
		Phase:   string(i.manager.Phase()),
		Quality: -1,
		Award:   i.manager.Award(),
	}
	session := i.manager.Session()
	if session == nil {
		return out
	}
	snap := session.Snapshot()
	out.GameID = string(snap.GameID)
	out.Name = snap.Name
	out.State = string(snap.State)
	out.TimeLeftSec = int(snap.TimeLeft.Seconds())
	out.Quality = snap.Quality
	out.Message = snap.Message
	for _, c := range snap.Counters {
		out.Counters = append(out.Counters, dto.Counter{Label: c.Label, Value: c.Value})
	}
	if snap.Grid != nil {
		grid := &dto.GridView{Width: snap.Grid.Width, Height: snap.Grid.Height}
		grid.Cells = make([]dto.GridCell, len(snap.Grid.Cells))
		for idx, cell := range snap.Grid.Cells {
			grid.Cells[idx] = dto.GridCell{Text: cell.Text, Accent: accentName(cell.Accent)}
		}
		out.Grid = grid
	}
	if snap.Result != nil {
		view := &dto.ResultView{Points: snap.Result.Points}
		for _, line := range snap.Result.Lines {
			view.Lines = append(view.Lines, dto.ScoreLineView{Label: line.Label, Points: line.Points})
		}
		out.Result = view
	}
	if snap.Failure != nil {
		out.Failure = &dto.FailureView{Reason: string(snap.Failure.Reason), Points: snap.Failure.Points}
	}
	return out
}

func accentName(a domain.CellAccent) string {
	switch a {
	case domain.AccentPrimary:
		return "primary"
	case domain.AccentSuccess:
		return "success"
	case domain.AccentDanger:
		return "danger"
	default:
		return ""
	}
}
