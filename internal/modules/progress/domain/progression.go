package domain

import (
	catalog "wellquest/internal/modules/catalog/domain"
)

// UnlockEvent announces a game crossing from locked to playable. Transient:
// consumed by presentation, never persisted.
type UnlockEvent struct {
	GameID      catalog.GameID
	Track       catalog.Track
	Name        string
	WellnessTip string
}

type LevelUpResult struct {
	NewLevel int
	Unlocks  []UnlockEvent
}

// Engine holds the pure progression rules. It is the sole writer of level,
// score, and unlock state, which keeps the invariant
// level == score/pointsPerLevel + 1 enforceable in one place.
type Engine struct {
	catalog        catalog.Catalog
	pointsPerLevel int
}

func NewEngine(c catalog.Catalog, pointsPerLevel int) Engine {
	if pointsPerLevel <= 0 {
		pointsPerLevel = 100
	}
	return Engine{catalog: c, pointsPerLevel: pointsPerLevel}
}

func (e Engine) PointsPerLevel() int { return e.pointsPerLevel }

func (e Engine) levelFor(score int) int {
	return score/e.pointsPerLevel + 1
}

// Default builds the first-run profile: level 1, zero score, each track's
// starter game unlocked.
func (e Engine) Default() PlayerProfile {
	p := PlayerProfile{Level: 1}
	p.ensureMaps()
	for _, track := range catalog.Tracks() {
		e.CheckUnlocks(&p, track)
	}
	return p
}

// Normalize repairs a rehydrated profile: maps allocated, score clamped,
// level recomputed from score, starters present. Applied after every load
// so a hand-edited or stale save cannot break the invariants.
func (e Engine) Normalize(p *PlayerProfile) {
	p.ensureMaps()
	if p.Score < 0 {
		p.Score = 0
	}
	p.Level = e.levelFor(p.Score)
	for _, track := range catalog.Tracks() {
		seen := make(map[catalog.GameID]bool, len(p.UnlockedGames[track]))
		unique := p.UnlockedGames[track][:0]
		for _, id := range p.UnlockedGames[track] {
			if _, ok := e.catalog.Game(id); !ok || seen[id] {
				continue
			}
			seen[id] = true
			unique = append(unique, id)
		}
		p.UnlockedGames[track] = unique
		e.CheckUnlocks(p, track)
	}
}

// AddScore adds points and recomputes the level. On a level-up it returns
// the newly unlocked games across both tracks, in catalog order.
func (e Engine) AddScore(p *PlayerProfile, points int) (LevelUpResult, bool) {
	if points < 0 {
		points = 0
	}
	p.Score += points
	newLevel := e.levelFor(p.Score)
	if newLevel <= p.Level {
		return LevelUpResult{}, false
	}
	p.Level = newLevel
	result := LevelUpResult{NewLevel: newLevel}
	for _, track := range catalog.Tracks() {
		result.Unlocks = append(result.Unlocks, e.CheckUnlocks(p, track)...)
	}
	return result, true
}

// CheckUnlocks adds every game of the track whose unlock level the player
// has reached and is not yet unlocked. Idempotent: a second call with no
// level change yields no events. The <= predicate means skip-leveling can
// never lose a game.
func (e Engine) CheckUnlocks(p *PlayerProfile, track catalog.Track) []UnlockEvent {
	p.ensureMaps()
	var events []UnlockEvent
	for _, def := range e.catalog.Games(track) {
		if def.UnlockLevel > p.Level {
			continue
		}
		if p.addUnlock(track, def.ID) {
			events = append(events, UnlockEvent{
				GameID:      def.ID,
				Track:       track,
				Name:        def.Name,
				WellnessTip: def.WellnessTip,
			})
		}
	}
	return events
}

func (e Engine) IsUnlocked(p *PlayerProfile, track catalog.Track, id catalog.GameID) bool {
	return p.hasUnlock(track, id)
}
