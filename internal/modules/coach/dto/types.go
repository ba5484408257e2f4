package dto

type CoachInfo struct {
	Name    string
	Version string
	Enabled bool
	Binary  string
}

type DoctorResult struct {
	Name            string
	ChecksumValid   bool
	BinaryReachable bool
	LifecycleOK     bool
	Error           string
}

type TipOutput struct {
	Text   string
	Author string
	// Source is the coach plugin that produced the tip, or "builtin".
	Source string
}
