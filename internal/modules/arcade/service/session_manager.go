package service

import (
	"context"
	"fmt"
	"time"

	"wellquest/internal/modules/arcade/domain"
	arcadeout "wellquest/internal/modules/arcade/port/out"
	catalog "wellquest/internal/modules/catalog/domain"
	progressdto "wellquest/internal/modules/progress/dto"
	progressin "wellquest/internal/modules/progress/port/in"
	"wellquest/internal/platform/clock"
	apperrors "wellquest/internal/platform/errors"
	"wellquest/internal/platform/loop"
	"wellquest/internal/platform/random"
)

type Phase string

const (
	PhaseIdle      Phase = "idle"
	PhaseSelecting Phase = "selecting"
	PhasePlaying   Phase = "playing"
)

// SessionManager owns the one active session. Starting a new round always
// releases the previous session's scope first, so at most one session ever
// holds live timers or listeners on the host loop.
type SessionManager struct {
	catalog  catalog.Catalog
	progress progressin.Usecase
	host     *loop.Loop
	clk      clock.Clock
	rng      random.Source
	audio    arcadeout.AudioPort

	phase   Phase
	track   catalog.Track
	session domain.Session
	lastDef catalog.GameDefinition
	routed  bool
	award   *progressdto.AwardOutput
}

func NewSessionManager(c catalog.Catalog, progress progressin.Usecase, host *loop.Loop, clk clock.Clock, rng random.Source, audio arcadeout.AudioPort) *SessionManager {
	return &SessionManager{
		catalog:  c,
		progress: progress,
		host:     host,
		clk:      clk,
		rng:      rng,
		audio:    audio,
		phase:    PhaseIdle,
	}
}

func (m *SessionManager) Phase() Phase { return m.phase }

func (m *SessionManager) Track() catalog.Track { return m.track }

func (m *SessionManager) Session() domain.Session { return m.session }

// Award returns the progression outcome of the last finished round, once it
// has been routed.
func (m *SessionManager) Award() *progressdto.AwardOutput { return m.award }

func (m *SessionManager) SelectTrack(ctx context.Context, track catalog.Track) error {
	if _, err := m.progress.SelectTrack(ctx, string(track)); err != nil {
		return err
	}
	m.cleanup()
	m.track = track
	m.phase = PhaseSelecting
	return nil
}

// Roster lists the current track's games, newest-unlock last, with lock flags
// against the live profile.
func (m *SessionManager) Roster(ctx context.Context) ([]catalog.GameDefinition, map[catalog.GameID]bool, error) {
	if m.track == "" {
		return nil, nil, apperrors.ErrNoTrackSelected
	}
	games := m.catalog.Games(m.track)
	locked := make(map[catalog.GameID]bool, len(games))
	for _, def := range games {
		unlocked, err := m.progress.IsUnlocked(ctx, string(m.track), string(def.ID))
		if err != nil {
			return nil, nil, err
		}
		locked[def.ID] = !unlocked
	}
	return games, locked, nil
}

// StartGame builds and starts a session for an unlocked game. A locked game
// plays the fail cue and changes nothing; an unknown id changes nothing.
func (m *SessionManager) StartGame(ctx context.Context, id catalog.GameID) error {
	if m.track == "" {
		return apperrors.ErrNoTrackSelected
	}
	def, ok := m.catalog.Game(id)
	if !ok || def.Track != m.track {
		return fmt.Errorf("%w: %s", apperrors.ErrUnknownGame, id)
	}
	unlocked, err := m.progress.IsUnlocked(ctx, string(m.track), string(id))
	if err != nil {
		return err
	}
	if !unlocked {
		m.audio.Play(arcadeout.CueFail)
		return fmt.Errorf("%w: %s needs level %d", apperrors.ErrGameLocked, def.Name, def.UnlockLevel)
	}
	return m.start(ctx, def)
}

// Retry restarts the last played game at the same tier.
func (m *SessionManager) Retry(ctx context.Context) error {
	if m.lastDef.ID == "" {
		return apperrors.ErrNoActiveSession
	}
	return m.start(ctx, m.lastDef)
}

func (m *SessionManager) start(ctx context.Context, def catalog.GameDefinition) error {
	m.cleanup()
	session, err := domain.New(def, m.tier(ctx, def), m.host.Scope(), m.clk, m.rng)
	if err != nil {
		return err
	}
	if err := m.progress.RecordPlay(ctx, string(def.ID)); err != nil {
		return err
	}
	m.session = session
	m.lastDef = def
	m.routed = false
	m.award = nil
	m.phase = PhasePlaying
	session.Initialize()
	m.audio.Play(arcadeout.CueNewLevel)
	return nil
}

// tier maps the player level onto the game's defined difficulty tiers.
func (m *SessionManager) tier(ctx context.Context, def catalog.GameDefinition) int {
	tier := 1
	if profile, err := m.progress.Profile(ctx); err == nil {
		tier = profile.Level
	}
	if tier < 1 {
		tier = 1
	}
	if tier > len(def.Levels) {
		tier = len(def.Levels)
	}
	return tier
}

// Advance pumps the host loop, then routes any terminal outcome.
func (m *SessionManager) Advance(ctx context.Context, now time.Time) error {
	m.host.Advance(now)
	return m.route(ctx)
}

func (m *SessionManager) KeyDown(ctx context.Context, code string) error {
	m.host.KeyDown(code)
	return m.route(ctx)
}

func (m *SessionManager) KeyUp(ctx context.Context, code string) error {
	m.host.KeyUp(code)
	return m.route(ctx)
}

func (m *SessionManager) PointerDown(ctx context.Context, target int) error {
	m.host.PointerDown(target)
	return m.route(ctx)
}

// route feeds a finished session's points into progression exactly once.
func (m *SessionManager) route(ctx context.Context) error {
	if m.session == nil || m.routed {
		return nil
	}
	switch m.session.State() {
	case domain.StateCompleted:
		result, _ := m.session.Result()
		out, err := m.progress.AwardPoints(ctx, progressdto.AwardInput{
			GameID: string(m.session.GameID()),
			Tier:   m.session.Tier(),
			Points: result.Points,
		})
		if err != nil {
			return err
		}
		m.routed = true
		m.award = &out
		m.phase = PhaseSelecting
		if out.LeveledUp {
			m.audio.Play(arcadeout.CueLevelUp)
		} else {
			m.audio.Play(arcadeout.CueGoodResult)
		}
	case domain.StateFailed:
		failure, _ := m.session.Failure()
		out, err := m.progress.RecordFailure(ctx, progressdto.AwardInput{
			GameID: string(m.session.GameID()),
			Tier:   m.session.Tier(),
			Points: failure.Points,
			Reason: string(failure.Reason),
		})
		if err != nil {
			return err
		}
		m.routed = true
		m.award = &out
		m.phase = PhaseSelecting
		m.audio.Play(arcadeout.CueFail)
	}
	return nil
}

// Abandon drops the active session without scoring it.
func (m *SessionManager) Abandon(ctx context.Context) error {
	m.cleanup()
	if m.phase == PhasePlaying {
		m.phase = PhaseSelecting
	}
	return nil
}

func (m *SessionManager) cleanup() {
	if m.session == nil {
		return
	}
	m.session.Cleanup()
	m.session = nil
	m.routed = false
	m.award = nil
}
