package selection

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	arcadedto "wellquest/internal/modules/arcade/dto"
	"wellquest/internal/ui/theme"
)

// ─── port ────────────────────────────────────────────────────────────────────

// Port is the minimal interface this view needs from the arcade use-case.
type Port interface {
	Roster(ctx context.Context) ([]arcadedto.GameCard, error)
	StartGame(ctx context.Context, gameID string) (arcadedto.SessionView, error)
}

// ─── messages ────────────────────────────────────────────────────────────────

// RosterLoadedMsg is sent when the track roster finishes loading.
type RosterLoadedMsg struct {
	Cards []arcadedto.GameCard
	Err   error
}

// StartedMsg bubbles up when a start attempt finished; the app switches to
// the game screen on success.
type StartedMsg struct {
	View arcadedto.SessionView
	Err  error
}

// ─── list item ───────────────────────────────────────────────────────────────

type gameItem struct {
	card arcadedto.GameCard
}

func (i gameItem) Title() string {
	if i.card.Locked {
		return fmt.Sprintf("🔒 %s", i.card.Name)
	}
	return fmt.Sprintf("%s %s", i.card.Icon, i.card.Name)
}

func (i gameItem) Description() string {
	if i.card.Locked {
		return fmt.Sprintf("unlocks at level %d", i.card.UnlockLevel)
	}
	desc := i.card.Description
	if i.card.TimesPlayed > 0 {
		desc += fmt.Sprintf("  ·  best %d  ·  played %d", i.card.BestScore, i.card.TimesPlayed)
	}
	return desc
}

func (i gameItem) FilterValue() string { return i.card.Name }

// ─── model ───────────────────────────────────────────────────────────────────

type Model struct {
	port    Port
	list    list.Model
	spinner spinner.Model
	loading bool
	notice  string
	width   int
	height  int
}

func New(port Port) Model {
	delegate := list.NewDefaultDelegate()
	delegate.Styles.SelectedTitle = delegate.Styles.SelectedTitle.Foreground(theme.Lavender).BorderForeground(theme.Lavender)
	delegate.Styles.SelectedDesc = delegate.Styles.SelectedDesc.Foreground(theme.Sapphire).BorderForeground(theme.Lavender)

	l := list.New(nil, delegate, 0, 0)
	l.Title = "Pick a game"
	l.Styles.Title = theme.Title
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(true)
	l.SetShowHelp(false)

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(theme.Lavender)

	return Model{port: port, list: l, spinner: sp, loading: true}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.loadRosterCmd(), m.spinner.Tick)
}

// Refresh reloads the roster, typically after a round changed the profile.
func (m Model) Refresh() tea.Cmd {
	return m.loadRosterCmd()
}

// Filtering reports whether the list filter input is open, so global key
// bindings can yield.
func (m Model) Filtering() bool {
	return m.list.FilterState() == list.Filtering
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.list.SetSize(m.width-4, m.height-4)

	case RosterLoadedMsg:
		m.loading = false
		if msg.Err != nil {
			m.notice = msg.Err.Error()
			return m, nil
		}
		items := make([]list.Item, len(msg.Cards))
		for i, card := range msg.Cards {
			items[i] = gameItem{card: card}
		}
		return m, m.list.SetItems(items)

	case StartedMsg:
		if msg.Err != nil {
			m.notice = msg.Err.Error()
		}
		return m, nil

	case spinner.TickMsg:
		if m.loading {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			return m, cmd
		}
		return m, nil

	case tea.KeyMsg:
		if m.Filtering() {
			break
		}
		if msg.String() == "enter" {
			if item, ok := m.list.SelectedItem().(gameItem); ok {
				m.notice = ""
				return m, m.startCmd(item.card.ID)
			}
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	cmds = append(cmds, cmd)
	return m, tea.Batch(cmds...)
}

func (m Model) View() string {
	if m.loading {
		return m.spinner.View() + " loading roster…"
	}
	var sb strings.Builder
	sb.WriteString(m.list.View())
	if m.notice != "" {
		sb.WriteString("\n" + theme.Bad.Render(m.notice))
	} else {
		sb.WriteString("\n" + theme.Muted.Render("enter play  / filter  esc back"))
	}
	return sb.String()
}

// SelectedGameID returns the id of the highlighted card, if any.
func (m Model) SelectedGameID() (string, bool) {
	item, ok := m.list.SelectedItem().(gameItem)
	if !ok {
		return "", false
	}
	return item.card.ID, true
}

// ─── async commands ───────────────────────────────────────────────────────────

func (m Model) loadRosterCmd() tea.Cmd {
	return func() tea.Msg {
		cards, err := m.port.Roster(context.Background())
		return RosterLoadedMsg{Cards: cards, Err: err}
	}
}

func (m Model) startCmd(gameID string) tea.Cmd {
	return func() tea.Msg {
		view, err := m.port.StartGame(context.Background(), gameID)
		return StartedMsg{View: view, Err: err}
	}
}
