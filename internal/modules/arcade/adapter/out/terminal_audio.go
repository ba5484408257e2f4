package out

import (
	"io"

	arcadeout "wellquest/internal/modules/arcade/port/out"
)

// TerminalAudio renders cues as the terminal bell. Positive and negative cues
// sound the same; the visual layer carries the distinction.
type TerminalAudio struct {
	w io.Writer
}

func NewTerminalAudio(w io.Writer) *TerminalAudio {
	return &TerminalAudio{w: w}
}

func (a *TerminalAudio) Play(arcadeout.Cue) {
	if a.w == nil {
		return
	}
	_, _ = a.w.Write([]byte("\a"))
}

// NullAudio swallows every cue. Used in tests and when the bell is disabled.
type NullAudio struct{}

func (NullAudio) Play(arcadeout.Cue) {}
