package tui

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/jetflap/internal/games/flappy"
	"github.com/vovakirdan/jetflap/internal/registry"
	"github.com/vovakirdan/jetflap/internal/storage"
)

const maxScores = 100

var (
	boardTitleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("220"))
	boardSummaryStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	boardFrameStyle   = lipgloss.NewStyle().Border(lipgloss.ThickBorder()).BorderForeground(lipgloss.Color("70")).Padding(0, 1)
	boardHelpStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("243"))
	boardEmptyStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("243")).Italic(true).Padding(1, 3)
)

type boardKeys struct {
	Up, Down, Refresh, Back, Quit key.Binding
}

func (k boardKeys) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Refresh, k.Back, k.Quit}
}

func (k boardKeys) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}

func newBoardKeys() boardKeys {
	return boardKeys{
		Up:      key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:    key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Refresh: key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reload")),
		Back:    key.NewBinding(key.WithKeys("tab", "esc", "b"), key.WithHelp("tab", "back to game")),
		Quit:    key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// ScoreboardModel is the Bubble Tea model for the scoreboard screen.
type ScoreboardModel struct {
	gameID     string
	player     string
	store      *storage.Store
	scores     []storage.ScoreEntry
	stats      *storage.GameStats
	playerBest float64
	loadErr    error
	table      table.Model
	help       help.Model
	keys       boardKeys
	width      int
	height     int
	standalone bool // back quits the program instead of returning to the game
	quitting   bool
	goingBack  bool
}

// NewScoreboardModel creates a scoreboard for the flappy game. player is
// highlighted and gets a personal best line; it may be empty.
func NewScoreboardModel(store *storage.Store, player string, width, height int) ScoreboardModel {
	h := help.New()
	h.ShowAll = false
	h.Width = width

	m := ScoreboardModel{
		gameID: flappy.ID,
		player: player,
		store:  store,
		keys:   newBoardKeys(),
		help:   h,
		width:  width,
		height: height,
	}

	m.table = m.newTable()
	m.loadScores()

	return m
}

// newTable sizes the run table to the window; spare width goes to Player.
func (m *ScoreboardModel) newTable() table.Model {
	cols := []table.Column{
		{Title: "Rank", Width: 5},
		{Title: "Player", Width: 12},
		{Title: "Score", Width: 7},
		{Title: "Walls", Width: 6},
		{Title: "Time", Width: 7},
		{Title: "Date", Width: 13},
	}

	used := 6 // frame and padding
	for _, c := range cols {
		used += c.Width + 2
	}
	if spare := m.width - used; spare > 0 {
		cols[1].Width += min(spare, 12)
	}

	styles := table.DefaultStyles()
	styles.Header = styles.Header.Bold(true).Foreground(lipgloss.Color("220")).
		BorderStyle(lipgloss.NormalBorder()).BorderBottom(true).BorderForeground(lipgloss.Color("70"))
	styles.Selected = styles.Selected.Bold(false).
		Foreground(lipgloss.Color("16")).Background(lipgloss.Color("118"))

	return table.New(
		table.WithColumns(cols),
		table.WithFocused(true),
		table.WithHeight(max(m.height-10, 3)),
		table.WithStyles(styles),
	)
}

// loadScores reloads the table and summary from the store.
func (m *ScoreboardModel) loadScores() {
	m.scores, m.stats, m.playerBest, m.loadErr = nil, nil, 0, nil
	if m.store == nil {
		m.fillRows()
		return
	}

	scores, err := m.store.TopScores(m.gameID, maxScores)
	if err != nil {
		m.loadErr = err
	}
	m.scores = scores

	if stats, err := m.store.GetGameStats(m.gameID); err == nil {
		m.stats = stats
	} else if m.loadErr == nil {
		m.loadErr = err
	}

	if m.player != "" {
		if best, err := m.store.PlayerBest(m.gameID, m.player); err == nil {
			m.playerBest = best
		}
	}

	m.fillRows()
}

func (m *ScoreboardModel) fillRows() {
	rows := make([]table.Row, 0, len(m.scores))
	for i, e := range m.scores {
		who := e.Player
		if who == m.player {
			who = "* " + who
		}
		rows = append(rows, table.Row{
			"#" + strconv.Itoa(i+1),
			who,
			flappy.FormatScore(e.Score),
			strconv.Itoa(e.Walls),
			formatDuration(e.Duration),
			e.CreatedAt.Format("Jan 02 15:04"),
		})
	}
	m.table.SetRows(rows)
	m.table.GotoTop()
}

func formatDuration(d time.Duration) string {
	return fmt.Sprintf("%.1fs", d.Seconds())
}

// Init implements tea.Model.
func (m ScoreboardModel) Init() tea.Cmd {
	return nil
}

// Update handles navigation; back either returns to the game or, when run on
// its own, quits.
func (m ScoreboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.Back):
			m.goingBack = true
			if m.standalone {
				return m, tea.Quit
			}
			return m, nil

		case key.Matches(msg, m.keys.Refresh):
			m.loadScores()
			return m, nil

		case key.Matches(msg, m.keys.Up), key.Matches(msg, m.keys.Down):
			m.table, cmd = m.table.Update(msg)
			return m, cmd
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.table = m.newTable()
		m.fillRows()
		m.help.Width = msg.Width
		return m, nil
	}

	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the scoreboard.
func (m ScoreboardModel) View() string {
	if m.quitting || (m.goingBack && m.standalone) {
		return ""
	}

	title := strings.ToUpper(registry.Title(m.gameID)) + " - BEST RUNS"
	body := m.table.View()
	if len(m.scores) == 0 {
		body = boardEmptyStyle.Render("Nobody has passed a wall yet.\nFire the jet and set the first score!")
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		boardTitleStyle.Render(centerText(title, m.width)),
		"",
		boardSummaryStyle.Render(centerText(m.summary(), m.width)),
		"",
		boardFrameStyle.Render(body),
		boardHelpStyle.Render(m.help.View(m.keys)),
	)
}

// summary is the one-line stats header.
func (m ScoreboardModel) summary() string {
	if m.loadErr != nil {
		return "Could not load scores: " + m.loadErr.Error()
	}
	if m.stats == nil || m.stats.GamesCount == 0 {
		return "No runs yet"
	}

	parts := []string{
		"Best " + flappy.FormatScore(m.stats.HighScore),
		fmt.Sprintf("Runs %d", m.stats.GamesCount),
		fmt.Sprintf("Players %d", m.stats.Players),
		fmt.Sprintf("Walls %d", m.stats.TotalWalls),
	}
	if m.player != "" {
		parts = append(parts, "Your best "+flappy.FormatScore(m.playerBest))
	}
	return strings.Join(parts, "  |  ")
}

// IsGoingBack reports whether the player asked to return to the game.
func (m ScoreboardModel) IsGoingBack() bool {
	return m.goingBack
}

// IsQuitting reports whether the player asked to quit.
func (m ScoreboardModel) IsQuitting() bool {
	return m.quitting
}

// RunScoreboard runs the scoreboard as its own program.
func RunScoreboard(store *storage.Store, player string, width, height int) error {
	model := NewScoreboardModel(store, player, width, height)
	model.standalone = true

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	_, err := p.Run()
	return err
}
