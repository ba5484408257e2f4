package domain

import (
	"time"

	catalog "wellquest/internal/modules/catalog/domain"
)

type GameStats struct {
	TimesPlayed int `json:"times_played"`
	BestScore   int `json:"best_score"`
}

// PlayerProfile is the single durable record of a player's standing. It is
// mutated only through Engine operations and persisted after every mutation.
type PlayerProfile struct {
	Level         int                                  `json:"level"`
	Score         int                                  `json:"score"`
	UnlockedGames map[catalog.Track][]catalog.GameID   `json:"unlocked_games"`
	GameStats     map[catalog.GameID]GameStats         `json:"game_stats"`
	CurrentTrack  catalog.Track                        `json:"current_track,omitempty"`
	LastPlayed    time.Time                            `json:"last_played"`
}

func (p *PlayerProfile) ensureMaps() {
	if p.UnlockedGames == nil {
		p.UnlockedGames = make(map[catalog.Track][]catalog.GameID)
	}
	if p.GameStats == nil {
		p.GameStats = make(map[catalog.GameID]GameStats)
	}
}

func (p *PlayerProfile) hasUnlock(track catalog.Track, id catalog.GameID) bool {
	for _, unlocked := range p.UnlockedGames[track] {
		if unlocked == id {
			return true
		}
	}
	return false
}

func (p *PlayerProfile) addUnlock(track catalog.Track, id catalog.GameID) bool {
	if p.hasUnlock(track, id) {
		return false
	}
	p.UnlockedGames[track] = append(p.UnlockedGames[track], id)
	return true
}

// RecordPlay bumps the play counter for a game.
func (p *PlayerProfile) RecordPlay(id catalog.GameID) {
	p.ensureMaps()
	stats := p.GameStats[id]
	stats.TimesPlayed++
	p.GameStats[id] = stats
}

// RecordBest keeps the best reported score for a game.
func (p *PlayerProfile) RecordBest(id catalog.GameID, points int) {
	p.ensureMaps()
	stats := p.GameStats[id]
	if points > stats.BestScore {
		stats.BestScore = points
	}
	p.GameStats[id] = stats
}

// Round is one finished game, projected into durable history.
type Round struct {
	ID       string
	GameID   catalog.GameID
	Tier     int
	Points   int
	Outcome  string // completed | failed
	Reason   string // fail reason, empty on completion
	PlayedAt time.Time
}

// GameSummary aggregates history rows for the stats view.
type GameSummary struct {
	GameID      catalog.GameID
	Rounds      int
	Completions int
	BestPoints  int
	TotalPoints int
}
