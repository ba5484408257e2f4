package out

// Cue names one of the fixed feedback sounds.
type Cue string

const (
	CueLevelUp    Cue = "LevelUp"
	CueSuccess    Cue = "Success"
	CueFail       Cue = "Fail"
	CueGoodResult Cue = "GoodResult"
	CueNewLevel   Cue = "NewLevel"
)

// AudioPort plays a feedback cue. Implementations are fire-and-forget; a cue
// that cannot be played is dropped silently.
type AudioPort interface {
	Play(cue Cue)
}
