package storage

import (
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/jetflap/internal/core"
)

// Recorder saves each finished run once. Hosts feed it the game state after
// every tick.
type Recorder struct {
	store  *Store
	gameID string
	player string
	logger *log.Logger
	saved  bool
}

// NewRecorder creates a recorder for one player. A nil store only logs runs.
func NewRecorder(store *Store, gameID, player string, logger *log.Logger) *Recorder {
	if player == "" {
		player = DefaultPlayer
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Recorder{
		store:  store,
		gameID: gameID,
		player: player,
		logger: logger,
	}
}

// Observe records st on the first tick of a game over. Runs that scored
// nothing are logged but not stored. It returns the saved entry, or nil when
// nothing was written.
func (r *Recorder) Observe(st core.GameState) (*ScoreEntry, error) {
	if !st.GameOver {
		r.saved = false
		return nil, nil
	}
	if r.saved {
		return nil, nil
	}
	r.saved = true

	r.logger.Info("run finished",
		"player", r.player,
		"score", st.Score,
		"walls", st.Walls,
		"duration", st.Elapsed.Round(time.Millisecond),
	)
	if r.store == nil || st.Score <= 0 {
		return nil, nil
	}

	entry := &ScoreEntry{
		GameID:   r.gameID,
		Player:   r.player,
		Score:    st.Score,
		Walls:    st.Walls,
		Duration: st.Elapsed,
	}
	if _, err := r.store.SaveScore(entry); err != nil {
		return nil, err
	}
	r.logger.Debug("score saved", "run", entry.RunID)
	return entry, nil
}

// Player returns the name runs are recorded under.
func (r *Recorder) Player() string {
	return r.player
}
