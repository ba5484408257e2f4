package domain

import (
	"fmt"
	"sort"
	"strings"
)

// Track is one of the two parallel game categories.
type Track string

const (
	TrackPhysical Track = "physical"
	TrackMental   Track = "mental"
)

func ParseTrack(raw string) (Track, error) {
	switch Track(strings.ToLower(strings.TrimSpace(raw))) {
	case TrackPhysical:
		return TrackPhysical, nil
	case TrackMental:
		return TrackMental, nil
	default:
		return "", fmt.Errorf("unknown track: %q", raw)
	}
}

func Tracks() []Track {
	return []Track{TrackPhysical, TrackMental}
}

type GameID string

const (
	GameRun         GameID = "run"
	GameSquat       GameID = "squat"
	GameSwim        GameID = "swim"
	GameCycle       GameID = "cycle"
	GameColorMatch  GameID = "colorMatch"
	GameMemoryTiles GameID = "memoryTiles"
	GamePuzzle2048  GameID = "puzzle2048"
	GameSnake       GameID = "snake"
	GameWhackAMole  GameID = "whackaMole"
)

// LevelSpec is a closed record of per-tier tunables. Each game reads only
// the fields that apply to it; everything else stays zero.
type LevelSpec struct {
	Name      string `yaml:"name"`
	Points    int    `yaml:"points"`
	TimeLimit int    `yaml:"time_limit"` // seconds; 0 means untimed
	Target    int    `yaml:"target"`     // distance m, tile value, length, hits, rotations
	Reps      int    `yaml:"reps"`
	Sets      int    `yaml:"sets"`
	Laps      int    `yaml:"laps"`
	Moves     int    `yaml:"moves"` // move budget
	Speed     int    `yaml:"speed"` // snake pace multiplier x10 (10 = 1.0)
	Pairs     int    `yaml:"pairs"`
	Tiles     int    `yaml:"tiles"`
}

type GameDefinition struct {
	ID          GameID
	Track       Track
	Name        string
	Icon        string
	Description string
	UnlockLevel int
	WellnessTip string
	Levels      []LevelSpec
}

// Level returns the spec for a difficulty tier (1-based), clamped to the
// last defined tier so high-level players keep a valid configuration.
func (d GameDefinition) Level(tier int) LevelSpec {
	if len(d.Levels) == 0 {
		return LevelSpec{}
	}
	if tier < 1 {
		tier = 1
	}
	if tier > len(d.Levels) {
		tier = len(d.Levels)
	}
	return d.Levels[tier-1]
}

// Catalog is the immutable game roster, loaded once at startup.
type Catalog struct {
	defs  []GameDefinition
	byID  map[GameID]GameDefinition
	order map[GameID]int
}

func NewCatalog(defs []GameDefinition) Catalog {
	c := Catalog{
		defs:  append([]GameDefinition(nil), defs...),
		byID:  make(map[GameID]GameDefinition, len(defs)),
		order: make(map[GameID]int, len(defs)),
	}
	for i, def := range c.defs {
		c.byID[def.ID] = def
		c.order[def.ID] = i
	}
	return c
}

func (c Catalog) Game(id GameID) (GameDefinition, bool) {
	def, ok := c.byID[id]
	return def, ok
}

// Games returns the track's roster in unlock-announcement order: ascending
// unlock level, declaration order breaking ties. Deterministic so unlock
// events are reproducible.
func (c Catalog) Games(track Track) []GameDefinition {
	games := make([]GameDefinition, 0, len(c.defs))
	for _, def := range c.defs {
		if def.Track == track {
			games = append(games, def)
		}
	}
	sort.SliceStable(games, func(i, j int) bool {
		if games[i].UnlockLevel != games[j].UnlockLevel {
			return games[i].UnlockLevel < games[j].UnlockLevel
		}
		return c.order[games[i].ID] < c.order[games[j].ID]
	})
	return games
}

// Starter returns the track's level-1 game, the one every profile begins with.
func (c Catalog) Starter(track Track) (GameDefinition, bool) {
	for _, def := range c.Games(track) {
		if def.UnlockLevel <= 1 {
			return def, true
		}
	}
	return GameDefinition{}, false
}

// Builtin is the shipped roster. Tunables may be overridden by a pack file;
// mechanics are compiled in.
func Builtin() []GameDefinition {
	return []GameDefinition{
		{
			ID: GameRun, Track: TrackPhysical, Name: "Runner's Challenge", Icon: "🏃",
			Description: "Keep a steady stride to cover the distance",
			UnlockLevel: 1, WellnessTip: "Steady Pace",
			Levels: []LevelSpec{
				{Name: "Beginner Sprint", Points: 100, TimeLimit: 180, Target: 500},
				{Name: "Intermediate Run", Points: 200, TimeLimit: 360, Target: 1000},
				{Name: "Advanced Marathon", Points: 300, TimeLimit: 720, Target: 2000},
			},
		},
		{
			ID: GameSquat, Track: TrackPhysical, Name: "Squat Jumper", Icon: "💪",
			Description: "Hold each squat in the target depth band",
			UnlockLevel: 2, WellnessTip: "Form First",
			Levels: []LevelSpec{
				{Name: "Basic Squat Training", Points: 150, TimeLimit: 120, Reps: 10, Sets: 2},
				{Name: "Power Squats", Points: 250, TimeLimit: 180, Reps: 15, Sets: 3},
				{Name: "Ultimate Squat Challenge", Points: 350, TimeLimit: 240, Reps: 20, Sets: 3},
			},
		},
		{
			ID: GameSwim, Track: TrackPhysical, Name: "Lane Swimmer", Icon: "🏊",
			Description: "Stroke in rhythm to finish every lap",
			UnlockLevel: 3, WellnessTip: "Breathe Easy",
			Levels: []LevelSpec{
				{Name: "Freestyle Basics", Points: 200, TimeLimit: 180, Laps: 4},
				{Name: "Mixed Stroke Challenge", Points: 300, TimeLimit: 270, Laps: 6},
				{Name: "Pro Swimmer", Points: 400, TimeLimit: 360, Laps: 8},
			},
		},
		{
			ID: GameCycle, Track: TrackPhysical, Name: "Cadence Rider", Icon: "🚴",
			Description: "Alternate pedals at an even cadence",
			UnlockLevel: 4, WellnessTip: "Smooth Cadence",
			Levels: []LevelSpec{
				{Name: "Easy Spin", Points: 250, TimeLimit: 90, Target: 30},
				{Name: "Rolling Hills", Points: 350, TimeLimit: 120, Target: 50},
				{Name: "Summit Push", Points: 450, TimeLimit: 180, Target: 80},
			},
		},
		{
			ID: GameColorMatch, Track: TrackMental, Name: "Colour Match", Icon: "🎨",
			Description: "Reproduce colour patterns with focused precision",
			UnlockLevel: 1, WellnessTip: "Calm Focus",
			Levels: []LevelSpec{
				{Name: "Basic Patterns", Points: 100, TimeLimit: 60, Pairs: 4},
				{Name: "Complex Patterns", Points: 200, TimeLimit: 60, Pairs: 6},
				{Name: "Expert Patterns", Points: 300, TimeLimit: 60, Pairs: 8},
			},
		},
		{
			ID: GameMemoryTiles, Track: TrackMental, Name: "Memory Tiles", Icon: "🧩",
			Description: "Flip tiles and remember where the pairs hide",
			UnlockLevel: 2, WellnessTip: "Sharpen Memory",
			Levels: []LevelSpec{
				{Name: "Simple Memory", Points: 150, TimeLimit: 90, Tiles: 12},
				{Name: "Complex Memory", Points: 250, TimeLimit: 120, Tiles: 16},
				{Name: "Expert Memory", Points: 350, TimeLimit: 150, Tiles: 20},
			},
		},
		{
			ID: GamePuzzle2048, Track: TrackMental, Name: "2048", Icon: "🔢",
			Description: "Combine numbers strategically",
			UnlockLevel: 3, WellnessTip: "Patience Wins",
			Levels: []LevelSpec{
				{Name: "Basic Strategy", Points: 200, Target: 256, Moves: 50},
				{Name: "Advanced Strategy", Points: 300, Target: 512, Moves: 100},
				{Name: "Expert Strategy", Points: 400, Target: 1024, Moves: 150},
			},
		},
		{
			ID: GameSnake, Track: TrackMental, Name: "Snake", Icon: "🐍",
			Description: "Guide the snake with mindful moves",
			UnlockLevel: 4, WellnessTip: "Mindful Moves",
			Levels: []LevelSpec{
				{Name: "Slow & Steady", Points: 250, Target: 10, Speed: 10},
				{Name: "Pick up Pace", Points: 350, Target: 15, Speed: 15},
				{Name: "Swift & Mindful", Points: 450, Target: 20, Speed: 20},
			},
		},
		{
			ID: GameWhackAMole, Track: TrackMental, Name: "Whack-a-Mole", Icon: "🔨",
			Description: "Release stress with quick reactions",
			UnlockLevel: 5, WellnessTip: "Stress Release",
			Levels: []LevelSpec{
				{Name: "Stress Relief", Points: 300, TimeLimit: 30, Target: 20},
				{Name: "Quick Relief", Points: 400, TimeLimit: 30, Target: 30},
				{Name: "Zen Master", Points: 500, TimeLimit: 30, Target: 40},
			},
		},
	}
}
