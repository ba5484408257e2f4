package app

import (
	"context"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	arcadedto "wellquest/internal/modules/arcade/dto"
	arcadein "wellquest/internal/modules/arcade/port/in"
	coachin "wellquest/internal/modules/coach/port/in"
	progressin "wellquest/internal/modules/progress/port/in"
	"wellquest/internal/ui/components"
	"wellquest/internal/ui/theme"
	gameview "wellquest/internal/ui/views/game"
	selectionview "wellquest/internal/ui/views/selection"
	welcomeview "wellquest/internal/ui/views/welcome"
)

// ─── screens ─────────────────────────────────────────────────────────────────

type screenID int

const (
	screenWelcome screenID = iota
	screenSelection
	screenPlaying
)

var screenLabels = map[screenID]string{
	screenWelcome:   "Welcome",
	screenSelection: "Games",
	screenPlaying:   "Playing",
}

// tickInterval drives the game loop; every tick pumps session timers.
const tickInterval = 100 * time.Millisecond

// ─── async messages ───────────────────────────────────────────────────────────

type tickMsg time.Time

type trackSelectedMsg struct {
	track string
	err   error
}

type abandonedMsg struct{ err error }

type tipMsg struct {
	text   string
	author string
	err    error
}

// ─── key bindings ─────────────────────────────────────────────────────────────

type keyMap struct {
	Help    key.Binding
	Palette key.Binding
	Quit    key.Binding
	Enter   key.Binding
	Back    key.Binding
	Reward  key.Binding
	Retry   key.Binding
}

func defaultKeys() keyMap {
	return keyMap{
		Help:    key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Palette: key.NewBinding(key.WithKeys(":"), key.WithHelp(":", "palette")),
		Quit:    key.NewBinding(key.WithKeys("ctrl+c", "q"), key.WithHelp("q", "quit")),
		Enter:   key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "confirm")),
		Back:    key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back")),
		Reward:  key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "daily reward")),
		Retry:   key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "retry round")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Enter, k.Back, k.Help, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Enter, k.Back, k.Reward, k.Retry},
		{k.Help, k.Palette, k.Quit},
	}
}

// ─── model ───────────────────────────────────────────────────────────────────

// Model is the root Bubble Tea model. It owns screen routing, the tick that
// pumps session timers, the help overlay, and the command palette. All rules
// live behind the use-case ports; all rendering is delegated to sub-views.
type Model struct {
	arcade   arcadein.Usecase
	progress progressin.Usecase
	coach    coachin.Usecase

	welcomeView   welcomeview.Model
	selectionView selectionview.Model
	gameView      gameview.Model

	screen   screenID
	track    string
	keys     keyMap
	help     help.Model
	showHelp bool
	palette  components.Palette
	status   string
	width    int
	height   int
}

func NewModel(arcade arcadein.Usecase, progress progressin.Usecase, coach coachin.Usecase) Model {
	return Model{
		arcade:        arcade,
		progress:      progress,
		coach:         coach,
		welcomeView:   welcomeview.New(progress, coach),
		selectionView: selectionview.New(selectionBridge{arcade: arcade, progress: progress}),
		gameView:      gameview.New(arcade),
		screen:        screenWelcome,
		keys:          defaultKeys(),
		help:          help.New(),
		palette:       components.NewPalette(),
		status:        "ready",
	}
}

func (m Model) Init() tea.Cmd {
	return m.welcomeView.Init()
}

// ─── update ───────────────────────────────────────────────────────────────────

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	// The palette intercepts all input while open.
	if m.palette.Visible() {
		var cmd tea.Cmd
		m.palette, cmd = m.palette.Update(msg)
		return m, cmd
	}

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.palette.SetWidth(minInt(m.width-4, 80))
		m.help.Width = m.width
		m.propagateSize()
		return m, nil

	case tickMsg:
		if m.screen != screenPlaying {
			return m, nil
		}
		return m, tea.Batch(m.advanceCmd(time.Time(msg)), m.tickCmd())

	case trackSelectedMsg:
		if msg.err != nil {
			m.status = "track: " + msg.err.Error()
			return m, nil
		}
		m.track = msg.track
		m.screen = screenSelection
		m.status = msg.track + " track"
		return m, m.selectionView.Refresh()

	case selectionview.StartedMsg:
		if msg.Err != nil {
			var cmd tea.Cmd
			m.selectionView, cmd = m.selectionView.Update(msg)
			return m, cmd
		}
		m.screen = screenPlaying
		m.gameView.SetView(msg.View)
		m.status = "playing " + msg.View.Name
		return m, m.tickCmd()

	case gameview.SessionMsg:
		if msg.Err != nil {
			m.status = msg.Err.Error()
			return m, nil
		}
		m.gameView.SetView(msg.View)
		return m, nil

	case gameview.LeaveMsg:
		m.screen = screenSelection
		m.status = "pick a game"
		cmds := []tea.Cmd{m.selectionView.Refresh()}
		if msg.Abandon {
			cmds = append(cmds, m.abandonCmd())
		}
		return m, tea.Batch(cmds...)

	case abandonedMsg:
		if msg.err != nil {
			m.status = "abandon: " + msg.err.Error()
		} else {
			m.status = "round abandoned"
		}
		return m, nil

	case welcomeview.TrackChosenMsg:
		return m, m.selectTrackCmd(msg.Track)

	case tipMsg:
		if msg.err != nil {
			m.status = "coach: " + msg.err.Error()
		} else {
			m.status = msg.author + ": " + msg.text
		}
		return m, nil

	case components.PaletteSubmitMsg:
		return m.executePalette(msg.Input)

	case components.PaletteCancelMsg:
		m.status = "ready"
		return m, nil

	case tea.KeyMsg:
		if m.showHelp {
			if msg.String() == "?" || msg.String() == "esc" {
				m.showHelp = false
			}
			return m, nil
		}
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		// Global bindings yield while the roster filter is typing.
		if !(m.screen == screenSelection && m.selectionView.Filtering()) {
			switch msg.String() {
			case "q":
				if m.screen != screenPlaying {
					return m, tea.Quit
				}
			case "?":
				if m.screen != screenPlaying {
					m.showHelp = true
					return m, nil
				}
			case ":":
				if m.screen != screenPlaying {
					return m, m.palette.Open()
				}
			case "esc":
				if m.screen == screenSelection {
					m.screen = screenWelcome
					m.status = "ready"
					return m, m.welcomeView.Refresh()
				}
			}
		}
	}

	return m.updateScreen(msg)
}

func (m Model) updateScreen(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch m.screen {
	case screenWelcome:
		m.welcomeView, cmd = m.welcomeView.Update(msg)
	case screenSelection:
		m.selectionView, cmd = m.selectionView.Update(msg)
	case screenPlaying:
		m.gameView, cmd = m.gameView.Update(msg)
	}
	return m, cmd
}

// ─── view ────────────────────────────────────────────────────────────────────

func (m Model) View() string {
	titleBar := m.renderTitleBar()
	statusBar := m.renderStatusBar()
	contentH := m.height - lipgloss.Height(titleBar) - lipgloss.Height(statusBar)
	if contentH < 1 {
		contentH = 1
	}

	var content string
	switch {
	case m.showHelp:
		content = lipgloss.NewStyle().Width(m.width).Height(contentH).
			Render(m.help.View(m.keys))
	case m.palette.Visible():
		content = lipgloss.Place(m.width, contentH,
			lipgloss.Center, lipgloss.Center, m.palette.View())
	default:
		content = m.activeView()
	}

	return lipgloss.JoinVertical(lipgloss.Left, titleBar, content, statusBar)
}

func (m Model) activeView() string {
	switch m.screen {
	case screenWelcome:
		return m.welcomeView.View()
	case screenSelection:
		return m.selectionView.View()
	case screenPlaying:
		return m.gameView.View()
	}
	return ""
}

func (m Model) renderTitleBar() string {
	bar := theme.Hot.Render(" wellquest ") + theme.Muted.Render(" │ ") + screenLabels[m.screen]
	if m.track != "" {
		bar += theme.Muted.Render(" │ ") + m.track
	}
	return lipgloss.NewStyle().Background(theme.Mantle).Width(m.width).Render(bar) + "\n"
}

func (m Model) renderStatusBar() string {
	left := m.status
	right := theme.Muted.Render("?:help  :::palette  q:quit")
	gap := m.width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		gap = 1
	}
	bar := left + strings.Repeat(" ", gap) + right
	return "\n" + lipgloss.NewStyle().Background(theme.Mantle).Width(m.width).Render(bar)
}

// ─── palette execution ────────────────────────────────────────────────────────

func (m Model) executePalette(input string) (tea.Model, tea.Cmd) {
	if strings.TrimSpace(input) == "" {
		return m, nil
	}
	parts := strings.Fields(input)

	switch parts[0] {
	case "track:physical":
		return m, m.selectTrackCmd("physical")

	case "track:mental":
		return m, m.selectTrackCmd("mental")

	case "game:start":
		if len(parts) < 2 {
			m.status = "usage: game:start <id>"
			return m, nil
		}
		return m, m.startCmd(parts[1])

	case "game:retry":
		m.screen = screenPlaying
		return m, tea.Batch(m.retryCmd(), m.tickCmd())

	case "game:abandon":
		m.screen = screenSelection
		return m, tea.Batch(m.abandonCmd(), m.selectionView.Refresh())

	case "coach:tip":
		return m, m.tipCmd()

	case "reward:claim":
		m.screen = screenWelcome
		return m, func() tea.Msg {
			reward, err := m.progress.CheckDailyReward(context.Background())
			return welcomeview.RewardClaimedMsg{Reward: reward, Err: err}
		}

	default:
		m.status = "unknown command: " + parts[0]
	}
	return m, nil
}

// ─── helpers ─────────────────────────────────────────────────────────────────

func (m *Model) propagateSize() {
	sz := tea.WindowSizeMsg{Width: m.width, Height: m.height - 3}
	m.welcomeView, _ = m.welcomeView.Update(sz)
	m.selectionView, _ = m.selectionView.Update(sz)
	m.gameView, _ = m.gameView.Update(sz)
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

// ─── async commands ───────────────────────────────────────────────────────────

func (m Model) tickCmd() tea.Cmd {
	return tea.Tick(tickInterval, func(t time.Time) tea.Msg { return tickMsg(t) })
}

func (m Model) advanceCmd(now time.Time) tea.Cmd {
	return func() tea.Msg {
		view, err := m.arcade.Advance(context.Background(), now)
		return gameview.SessionMsg{View: view, Err: err}
	}
}

func (m Model) selectTrackCmd(track string) tea.Cmd {
	return func() tea.Msg {
		err := m.arcade.SelectTrack(context.Background(), track)
		return trackSelectedMsg{track: track, err: err}
	}
}

func (m Model) startCmd(gameID string) tea.Cmd {
	return func() tea.Msg {
		view, err := m.arcade.StartGame(context.Background(), gameID)
		return selectionview.StartedMsg{View: view, Err: err}
	}
}

func (m Model) retryCmd() tea.Cmd {
	return func() tea.Msg {
		view, err := m.arcade.Retry(context.Background())
		return gameview.SessionMsg{View: view, Err: err}
	}
}

func (m Model) abandonCmd() tea.Cmd {
	return func() tea.Msg {
		return abandonedMsg{err: m.arcade.Abandon(context.Background())}
	}
}

func (m Model) tipCmd() tea.Cmd {
	return func() tea.Msg {
		profile, err := m.progress.Profile(context.Background())
		if err != nil {
			return tipMsg{err: err}
		}
		track := profile.CurrentTrack
		if track == "" {
			track = "physical"
		}
		tip, err := m.coach.Tip(context.Background(), track, profile.Level)
		return tipMsg{text: tip.Text, author: tip.Author, err: err}
	}
}

// ─── port bridges ─────────────────────────────────────────────────────────────

// selectionBridge narrows the arcade use-case for the roster view and folds
// per-game stats into the cards.
type selectionBridge struct {
	arcade   arcadein.Usecase
	progress progressin.Usecase
}

func (b selectionBridge) Roster(ctx context.Context) ([]arcadedto.GameCard, error) {
	cards, err := b.arcade.Roster(ctx)
	if err != nil {
		return nil, err
	}
	stats, err := b.progress.Stats(ctx)
	if err != nil {
		return cards, nil
	}
	for i := range cards {
		for _, s := range stats {
			if s.GameID == cards[i].ID {
				cards[i].BestScore = s.BestScore
				cards[i].TimesPlayed = s.TimesPlayed
			}
		}
	}
	return cards, nil
}

func (b selectionBridge) StartGame(ctx context.Context, gameID string) (arcadedto.SessionView, error) {
	return b.arcade.StartGame(ctx, gameID)
}
