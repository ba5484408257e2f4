package dto

import "time"

type ProfileOutput struct {
	Level         int
	Score         int
	PointsToNext  int
	CurrentTrack  string
	UnlockedGames map[string][]string
	LastPlayed    time.Time
}

type UnlockInfo struct {
	GameID      string
	Track       string
	Name        string
	WellnessTip string
}

type AwardInput struct {
	GameID  string
	Tier    int
	Points  int
	Outcome string
	Reason  string
}

type AwardOutput struct {
	Score     int
	Level     int
	LeveledUp bool
	NewLevel  int
	BestScore int
	Unlocks   []UnlockInfo
}

type DailyRewardOutput struct {
	Granted   bool
	Points    int
	Score     int
	Level     int
	LeveledUp bool
	Unlocks   []UnlockInfo
}

type GameStatsOutput struct {
	GameID      string
	TimesPlayed int
	BestScore   int
	Rounds      int
	Completions int
	TotalPoints int
}
