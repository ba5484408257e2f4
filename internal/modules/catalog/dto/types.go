package dto

type LevelInfo struct {
	Tier   int
	Name   string
	Points int
}

type GameInfo struct {
	ID          string
	Track       string
	Name        string
	Icon        string
	Description string
	UnlockLevel int
	WellnessTip string
	Levels      []LevelInfo
}
