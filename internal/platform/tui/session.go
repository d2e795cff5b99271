package tui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/jetflap/internal/core"
	"github.com/vovakirdan/jetflap/internal/registry"
	"github.com/vovakirdan/jetflap/internal/storage"
)

// SessionModel is the top-level model for one player, local or over SSH.
// It switches between the game and the scoreboard with tab.
type SessionModel struct {
	store     *storage.Store
	username  string
	play      Model
	board     ScoreboardModel
	showBoard bool
	quitting  bool
	width     int
	height    int
}

// NewSessionModel creates a session running game for username.
func NewSessionModel(game registry.Game, store *storage.Store, cfg core.RuntimeConfig, username string, logger *log.Logger) SessionModel {
	return SessionModel{
		store:    store,
		username: username,
		play:     NewModel(game, store, cfg, username, logger),
		width:    cfg.ScreenW,
		height:   cfg.ScreenH,
	}
}

// Init starts the game.
func (m SessionModel) Init() tea.Cmd {
	return m.play.Init()
}

// Update handles messages for the session.
func (m SessionModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if wsm, ok := msg.(tea.WindowSizeMsg); ok {
		m.width, m.height = wsm.Width, wsm.Height
		m.play = m.updatePlay(wsm)
		if m.showBoard {
			m.board = m.updateBoard(wsm)
		}
		return m, nil
	}

	if m.showBoard {
		return m.handleBoard(msg)
	}
	return m.handleGame(msg)
}

// handleGame forwards messages to the game model.
func (m SessionModel) handleGame(msg tea.Msg) (tea.Model, tea.Cmd) {
	newModel, cmd := m.play.Update(msg)
	if play, ok := newModel.(Model); ok {
		m.play = play
	}

	if m.play.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}

	if m.play.WantsScores() {
		m.play.wantScores = false
		m.board = NewScoreboardModel(m.store, m.username, m.width, m.height)
		m.showBoard = true
	}

	return m, cmd
}

// handleBoard forwards messages to the scoreboard. The game does not advance
// while the scoreboard is shown, but the tick loop keeps running.
func (m SessionModel) handleBoard(msg tea.Msg) (tea.Model, tea.Cmd) {
	if _, ok := msg.(TickMsg); ok {
		return m, tickCmd(m.play.config.TickRate)
	}

	newModel, cmd := m.board.Update(msg)
	if board, ok := newModel.(ScoreboardModel); ok {
		m.board = board
	}

	if m.board.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}
	if m.board.IsGoingBack() {
		m.showBoard = false
	}

	return m, cmd
}

func (m SessionModel) updatePlay(msg tea.Msg) Model {
	newModel, _ := m.play.Update(msg)
	if play, ok := newModel.(Model); ok {
		return play
	}
	return m.play
}

func (m SessionModel) updateBoard(msg tea.Msg) ScoreboardModel {
	newModel, _ := m.board.Update(msg)
	if board, ok := newModel.(ScoreboardModel); ok {
		return board
	}
	return m.board
}

// View renders the current view.
func (m SessionModel) View() string {
	if m.quitting {
		return ""
	}
	if m.showBoard {
		return m.board.View()
	}
	return m.play.View()
}

// ShowingScores reports whether the scoreboard is on screen.
func (m SessionModel) ShowingScores() bool {
	return m.showBoard
}
