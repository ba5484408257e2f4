package welcome

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	coachdto "wellquest/internal/modules/coach/dto"
	progressdto "wellquest/internal/modules/progress/dto"
	"wellquest/internal/ui/theme"
)

// ─── ports ───────────────────────────────────────────────────────────────────

// ProgressPort is the minimal interface this view needs from progression.
type ProgressPort interface {
	Profile(ctx context.Context) (progressdto.ProfileOutput, error)
	CheckDailyReward(ctx context.Context) (progressdto.DailyRewardOutput, error)
}

// CoachPort serves the tip of the day.
type CoachPort interface {
	Tip(ctx context.Context, track string, level int) (coachdto.TipOutput, error)
}

// ─── messages ────────────────────────────────────────────────────────────────

// ProfileLoadedMsg is sent when the player profile finishes loading.
type ProfileLoadedMsg struct {
	Profile progressdto.ProfileOutput
	Err     error
}

// RewardClaimedMsg is sent after a daily-reward attempt.
type RewardClaimedMsg struct {
	Reward progressdto.DailyRewardOutput
	Err    error
}

// TipLoadedMsg is sent when the coach tip arrives.
type TipLoadedMsg struct {
	Tip coachdto.TipOutput
	Err error
}

// TrackChosenMsg bubbles up to the app, which owns track selection.
type TrackChosenMsg struct{ Track string }

// ─── model ───────────────────────────────────────────────────────────────────

type Model struct {
	progress ProgressPort
	coach    CoachPort
	spinner  spinner.Model

	profile    progressdto.ProfileOutput
	hasProfile bool
	tip        coachdto.TipOutput
	hasTip     bool
	reward     string
	cursor     int // 0 physical, 1 mental
	loading    bool
	width      int
	height     int
}

var tracks = [2]string{"physical", "mental"}

func New(progress ProgressPort, coach CoachPort) Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(theme.Lavender)
	return Model{progress: progress, coach: coach, spinner: sp, loading: true}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.loadProfileCmd(), m.spinner.Tick)
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case ProfileLoadedMsg:
		m.loading = false
		if msg.Err != nil {
			m.reward = "profile: " + msg.Err.Error()
			return m, nil
		}
		m.profile = msg.Profile
		m.hasProfile = true
		if msg.Profile.CurrentTrack == "mental" {
			m.cursor = 1
		}
		return m, m.loadTipCmd(msg.Profile)

	case RewardClaimedMsg:
		switch {
		case msg.Err != nil:
			m.reward = "daily reward: " + msg.Err.Error()
		case msg.Reward.Granted:
			m.reward = fmt.Sprintf("daily reward claimed: +%d points", msg.Reward.Points)
			return m, m.loadProfileCmd()
		default:
			m.reward = "daily reward already claimed today"
		}

	case TipLoadedMsg:
		if msg.Err == nil {
			m.tip = msg.Tip
			m.hasTip = true
		}

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		switch msg.String() {
		case "left", "h", "1":
			m.cursor = 0
		case "right", "l", "2":
			m.cursor = 1
		case "enter":
			track := tracks[m.cursor]
			return m, func() tea.Msg { return TrackChosenMsg{Track: track} }
		case "d":
			return m, m.claimRewardCmd()
		}
	}
	return m, nil
}

// Refresh reloads the profile, typically after a round changed it.
func (m Model) Refresh() tea.Cmd {
	return m.loadProfileCmd()
}

// ─── view ────────────────────────────────────────────────────────────────────

func (m Model) View() string {
	var sb strings.Builder
	sb.WriteString(theme.Title.Render("WellQuest") + "\n")
	sb.WriteString(theme.Muted.Render("tiny workouts for body and mind") + "\n\n")

	if m.loading {
		sb.WriteString(m.spinner.View() + " loading profile…\n")
		return m.frame(sb.String())
	}

	if m.hasProfile {
		sb.WriteString(fmt.Sprintf("Level %s   Score %s   %s to next\n\n",
			theme.Hot.Render(fmt.Sprintf("%d", m.profile.Level)),
			theme.Hot.Render(fmt.Sprintf("%d", m.profile.Score)),
			theme.Muted.Render(fmt.Sprintf("%d pts", m.profile.PointsToNext)),
		))
	}

	sb.WriteString("Pick a track:\n\n")
	for i, track := range tracks {
		label := "  " + trackLabel(track) + "  "
		if i == m.cursor {
			sb.WriteString(theme.PaneActive.Render(label))
		} else {
			sb.WriteString(theme.Pane.Render(label))
		}
		sb.WriteString("  ")
	}
	sb.WriteString("\n\n")

	if m.reward != "" {
		sb.WriteString(m.reward + "\n")
	}
	if m.hasTip {
		sb.WriteString(theme.Muted.Render(fmt.Sprintf("coach %s: %q", m.tip.Author, m.tip.Text)) + "\n")
	}
	sb.WriteString("\n" + theme.Muted.Render("←/→ pick  enter confirm  d daily reward"))
	return m.frame(sb.String())
}

func trackLabel(track string) string {
	if track == "physical" {
		return "💪 Physical"
	}
	return "🧠 Mental"
}

func (m Model) frame(content string) string {
	if m.width == 0 {
		return content
	}
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, content)
}

// ─── async commands ───────────────────────────────────────────────────────────

func (m Model) loadProfileCmd() tea.Cmd {
	return func() tea.Msg {
		profile, err := m.progress.Profile(context.Background())
		return ProfileLoadedMsg{Profile: profile, Err: err}
	}
}

func (m Model) claimRewardCmd() tea.Cmd {
	return func() tea.Msg {
		reward, err := m.progress.CheckDailyReward(context.Background())
		return RewardClaimedMsg{Reward: reward, Err: err}
	}
}

func (m Model) loadTipCmd(profile progressdto.ProfileOutput) tea.Cmd {
	return func() tea.Msg {
		if m.coach == nil {
			return TipLoadedMsg{Err: fmt.Errorf("coach not configured")}
		}
		track := profile.CurrentTrack
		if track == "" {
			track = "physical"
		}
		tip, err := m.coach.Tip(context.Background(), track, profile.Level)
		return TipLoadedMsg{Tip: tip, Err: err}
	}
}
