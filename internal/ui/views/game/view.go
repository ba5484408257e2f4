package game

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	arcadedto "wellquest/internal/modules/arcade/dto"
	"wellquest/internal/ui/theme"
)

// ─── port ────────────────────────────────────────────────────────────────────

// Port is the minimal interface this view needs to feed input into the
// running round.
type Port interface {
	KeyDown(ctx context.Context, code string) (arcadedto.SessionView, error)
	KeyUp(ctx context.Context, code string) (arcadedto.SessionView, error)
	PointerDown(ctx context.Context, target int) (arcadedto.SessionView, error)
	Retry(ctx context.Context) (arcadedto.SessionView, error)
}

// ─── messages ────────────────────────────────────────────────────────────────

// SessionMsg carries the fresh session view after any event or tick.
type SessionMsg struct {
	View arcadedto.SessionView
	Err  error
}

// LeaveMsg bubbles up when the player leaves the game screen. Abandon is set
// when a live round should be dropped.
type LeaveMsg struct{ Abandon bool }

// pointerGames take grid taps instead of key presses; the view owns a cursor
// for them.
var pointerGames = map[string]bool{
	"colorMatch":  true,
	"memoryTiles": true,
	"whackaMole":  true,
}

var accentStyles = map[string]lipgloss.Style{
	"":        lipgloss.NewStyle().Background(theme.Surface0).Foreground(theme.Text),
	"primary": lipgloss.NewStyle().Background(theme.Surface1).Foreground(theme.Lavender).Bold(true),
	"success": lipgloss.NewStyle().Background(theme.Surface0).Foreground(theme.Green).Bold(true),
	"danger":  lipgloss.NewStyle().Background(theme.Surface0).Foreground(theme.Red).Bold(true),
}

// ─── model ───────────────────────────────────────────────────────────────────

type Model struct {
	port Port

	view    arcadedto.SessionView
	cursor  int
	holding bool
	width   int
	height  int
}

func New(port Port) Model {
	return Model{port: port}
}

// SetView replaces the rendered session state; the app calls it from its
// tick and after starting a round.
func (m *Model) SetView(view arcadedto.SessionView) {
	if view.GameID != m.view.GameID || view.State == "ready" {
		m.cursor = 0
		m.holding = false
	}
	m.view = view
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case SessionMsg:
		if msg.Err == nil {
			m.SetView(msg.View)
		}

	case tea.KeyMsg:
		if m.terminal() {
			return m.updateSummary(msg)
		}
		return m.updatePlaying(msg)
	}
	return m, nil
}

func (m Model) terminal() bool {
	return m.view.Result != nil || m.view.Failure != nil
}

func (m Model) updateSummary(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "r":
		m.holding = false
		return m, m.retryCmd()
	case "enter", "esc", "q":
		return m, func() tea.Msg { return LeaveMsg{} }
	}
	return m, nil
}

func (m Model) updatePlaying(msg tea.KeyMsg) (Model, tea.Cmd) {
	if pointerGames[m.view.GameID] {
		return m.updatePointer(msg)
	}
	switch msg.String() {
	case " ":
		// Squat reps are held: one press starts the hold, the next ends it.
		if m.view.GameID == "squat" {
			if m.holding {
				m.holding = false
				return m, m.keyUpCmd("space")
			}
			m.holding = true
			return m, m.keyDownCmd("space")
		}
		return m, m.keyDownCmd("space")
	case "left", "right", "up", "down":
		return m, m.keyDownCmd(msg.String())
	case "p":
		return m, m.keyDownCmd("pause")
	case "esc":
		return m, func() tea.Msg { return LeaveMsg{Abandon: true} }
	}
	return m, nil
}

func (m Model) updatePointer(msg tea.KeyMsg) (Model, tea.Cmd) {
	grid := m.view.Grid
	if grid == nil || grid.Width == 0 {
		return m, nil
	}
	total := len(grid.Cells)
	switch key := msg.String(); key {
	case "left":
		if m.cursor%grid.Width > 0 {
			m.cursor--
		}
	case "right":
		if m.cursor%grid.Width < grid.Width-1 && m.cursor+1 < total {
			m.cursor++
		}
	case "up":
		if m.cursor >= grid.Width {
			m.cursor -= grid.Width
		}
	case "down":
		if m.cursor+grid.Width < total {
			m.cursor += grid.Width
		}
	case "enter", " ":
		return m, m.pointerCmd(m.cursor)
	case "esc":
		return m, func() tea.Msg { return LeaveMsg{Abandon: true} }
	default:
		// Digits tap the first nine cells directly.
		if len(key) == 1 && key[0] >= '1' && key[0] <= '9' {
			target := int(key[0] - '1')
			if target < total {
				return m, m.pointerCmd(target)
			}
		}
	}
	return m, nil
}

// ─── view ────────────────────────────────────────────────────────────────────

func (m Model) View() string {
	if m.view.GameID == "" {
		return theme.Muted.Render("no round in progress")
	}

	var sb strings.Builder
	sb.WriteString(m.renderHeader() + "\n\n")

	if m.terminal() {
		sb.WriteString(m.renderSummary())
		return m.frame(sb.String())
	}

	if m.view.Quality >= 0 {
		sb.WriteString(m.renderQuality() + "\n")
	}
	if m.view.Grid != nil {
		sb.WriteString(m.renderGrid(*m.view.Grid) + "\n")
	}
	if m.view.Message != "" {
		sb.WriteString(m.view.Message + "\n")
	}
	sb.WriteString("\n" + theme.Muted.Render(m.hint()))
	return m.frame(sb.String())
}

func (m Model) renderHeader() string {
	parts := []string{
		theme.Title.Render(m.view.Name),
		theme.Hot.Render(fmt.Sprintf("⏱ %ds", m.view.TimeLeftSec)),
	}
	for _, c := range m.view.Counters {
		parts = append(parts, fmt.Sprintf("%s %s", theme.Muted.Render(c.Label), c.Value))
	}
	return strings.Join(parts, "   ")
}

func (m Model) renderQuality() string {
	const width = 20
	filled := m.view.Quality * width / 100
	if filled > width {
		filled = width
	}
	bar := strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
	style := theme.Bad
	switch {
	case m.view.Quality >= 70:
		style = theme.Good
	case m.view.Quality >= 40:
		style = theme.Hot
	}
	return fmt.Sprintf("form %s %d", style.Render(bar), m.view.Quality)
}

func (m Model) renderGrid(grid arcadedto.GridView) string {
	cellW := 1
	for _, cell := range grid.Cells {
		if w := lipgloss.Width(cell.Text); w > cellW {
			cellW = w
		}
	}
	gap := " "
	if cellW == 1 && grid.Width >= 10 {
		gap = "" // dense boards read better without spacing
	}

	showCursor := pointerGames[m.view.GameID]
	rows := make([]string, 0, grid.Height)
	for y := 0; y < grid.Height; y++ {
		cells := make([]string, 0, grid.Width)
		for x := 0; x < grid.Width; x++ {
			idx := y*grid.Width + x
			if idx >= len(grid.Cells) {
				break
			}
			cell := grid.Cells[idx]
			style, ok := accentStyles[cell.Accent]
			if !ok {
				style = accentStyles[""]
			}
			text := pad(cell.Text, cellW)
			if showCursor && idx == m.cursor {
				style = style.Underline(true).Foreground(theme.Peach)
			}
			cells = append(cells, style.Render(text))
		}
		rows = append(rows, strings.Join(cells, gap))
	}
	return strings.Join(rows, "\n")
}

func pad(s string, width int) string {
	gap := width - lipgloss.Width(s)
	if gap <= 0 {
		return s
	}
	left := gap / 2
	return strings.Repeat(" ", left) + s + strings.Repeat(" ", gap-left)
}

func (m Model) renderSummary() string {
	var sb strings.Builder
	if m.view.Result != nil {
		sb.WriteString(theme.Good.Render("Round complete!") + "\n\n")
		for _, line := range m.view.Result.Lines {
			sb.WriteString(fmt.Sprintf("  %-14s %5d\n", line.Label, line.Points))
		}
		sb.WriteString(fmt.Sprintf("  %-14s %s\n", "Total", theme.Hot.Render(fmt.Sprintf("%5d", m.view.Result.Points))))
	}
	if m.view.Failure != nil {
		sb.WriteString(theme.Bad.Render("Round over: "+m.view.Failure.Reason) + "\n")
		if m.view.Failure.Points > 0 {
			sb.WriteString(fmt.Sprintf("  partial points %d\n", m.view.Failure.Points))
		}
	}
	if award := m.view.Award; award != nil {
		sb.WriteString("\n")
		if award.LeveledUp {
			sb.WriteString(theme.Hot.Render(fmt.Sprintf("⭐ LEVEL UP! You reached level %d", award.NewLevel)) + "\n")
		}
		for _, unlock := range award.Unlocks {
			sb.WriteString(theme.Good.Render("unlocked: "+unlock.Name) + "\n")
			if unlock.WellnessTip != "" {
				sb.WriteString(theme.Muted.Render("  "+unlock.WellnessTip) + "\n")
			}
		}
	}
	sb.WriteString("\n" + theme.Muted.Render("r retry  enter back"))
	return sb.String()
}

func (m Model) hint() string {
	if pointerGames[m.view.GameID] {
		return "arrows move  enter tap  1-9 tap cell  esc quit round"
	}
	switch m.view.GameID {
	case "run":
		return "space stride  p pause  esc quit round"
	case "squat":
		return "space hold/release  esc quit round"
	case "swim":
		return "space stroke  esc quit round"
	case "cycle":
		return "←/→ pedal  esc quit round"
	case "puzzle2048":
		return "arrows slide  esc quit round"
	case "snake":
		return "arrows steer  p pause  esc quit round"
	}
	return "esc quit round"
}

func (m Model) frame(content string) string {
	if m.width == 0 {
		return content
	}
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, content)
}

// ─── async commands ───────────────────────────────────────────────────────────

func (m Model) keyDownCmd(code string) tea.Cmd {
	return func() tea.Msg {
		view, err := m.port.KeyDown(context.Background(), code)
		return SessionMsg{View: view, Err: err}
	}
}

func (m Model) keyUpCmd(code string) tea.Cmd {
	return func() tea.Msg {
		view, err := m.port.KeyUp(context.Background(), code)
		return SessionMsg{View: view, Err: err}
	}
}

func (m Model) pointerCmd(target int) tea.Cmd {
	return func() tea.Msg {
		view, err := m.port.PointerDown(context.Background(), target)
		return SessionMsg{View: view, Err: err}
	}
}

func (m Model) retryCmd() tea.Cmd {
	return func() tea.Msg {
		view, err := m.port.Retry(context.Background())
		return SessionMsg{View: view, Err: err}
	}
}
