package domain

import (
	"errors"
	"fmt"
	"regexp"
)

var (
	ErrCoachDisabled    = errors.New("coach is disabled")
	ErrChecksumMismatch = errors.New("coach checksum mismatch")
	ErrCoachTimeout     = errors.New("coach timeout")
)

var sha256Pattern = regexp.MustCompile(`^[a-f0-9]{64}$`)

// Manifest describes one installed coach plugin.
type Manifest struct {
	Name    string `json:"name"`
	Version string `json:"version"`
	Binary  string `json:"binary"`
	SHA256  string `json:"sha256"`
	Enabled bool   `json:"enabled"`
}

func (m Manifest) Validate() error {
	if m.Name == "" {
		return fmt.Errorf("coach name is required")
	}
	if m.Version == "" {
		return fmt.Errorf("coach version is required")
	}
	if m.Binary == "" {
		return fmt.Errorf("coach binary path is required")
	}
	if !sha256Pattern.MatchString(m.SHA256) {
		return fmt.Errorf("coach sha256 must be lowercase 64-char hex")
	}
	return nil
}

type Metadata struct {
	Name    string
	Version string
}

// Tip is one piece of wellness advice, attributed to whichever coach
// produced it.
type Tip struct {
	Text   string
	Author string
}

func (t Tip) Validate() error {
	if t.Text == "" {
		return fmt.Errorf("tip text is required")
	}
	return nil
}

// BuiltinTips is the fallback advice per track, used when no coach plugin
// is installed or every installed one fails.
func BuiltinTips(track string) []Tip {
	switch track {
	case "physical":
		return []Tip{
			{Text: "Stand up and stretch between rounds.", Author: "wellquest"},
			{Text: "A short walk beats a long sit.", Author: "wellquest"},
			{Text: "Drink water before you feel thirsty.", Author: "wellquest"},
			{Text: "Roll your shoulders back; screens pull them forward.", Author: "wellquest"},
		}
	case "mental":
		return []Tip{
			{Text: "Slow breathing for one minute resets focus.", Author: "wellquest"},
			{Text: "Name one thing you are grateful for today.", Author: "wellquest"},
			{Text: "Step away from the screen for five minutes every hour.", Author: "wellquest"},
			{Text: "A tidy desk quiets a busy mind.", Author: "wellquest"},
		}
	default:
		return []Tip{
			{Text: "Small habits, repeated daily, move the needle.", Author: "wellquest"},
		}
	}
}
