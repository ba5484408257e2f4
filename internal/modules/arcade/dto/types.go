package dto

import (
	progressdto "wellquest/internal/modules/progress/dto"
)

// GameCard is one entry in the selection roster.
type GameCard struct {
	ID          string
	Name        string
	Icon        string
	Description string
	UnlockLevel int
	Locked      bool
	BestScore   int
	TimesPlayed int
}

type Counter struct {
	Label string
	Value string
}

type GridCell struct {
	Text   string
	Accent string // "", "primary", "success", "danger"
}

type GridView struct {
	Width  int
	Height int
	Cells  []GridCell
}

type ScoreLineView struct {
	Label  string
	Points int
}

type ResultView struct {
	Points int
	Lines  []ScoreLineView
}

type FailureView struct {
	Reason string
	Points int
}

// SessionView is the composite render model for the active round. All nine
// games project into it, so the UI needs a single game screen.
type SessionView struct {
	Phase       string // idle | selecting | playing
	GameID      string
	Name        string
	State       string
	TimeLeftSec int
	Counters    []Counter
	Quality     int // -1 when the game has no quality meter
	Grid        *GridView
	Message     string
	Result      *ResultView
	Failure     *FailureView

	// Award is set once, when the finished round has been fed into
	// progression.
	Award *progressdto.AwardOutput
}
