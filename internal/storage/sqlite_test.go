package storage

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func save(t *testing.T, store *Store, gameID, player string, score float64) ScoreEntry {
	t.Helper()
	e := ScoreEntry{GameID: gameID, Player: player, Score: score, Walls: int(score * 2)}
	if _, err := store.SaveScore(&e); err != nil {
		t.Fatalf("SaveScore() failed: %v", err)
	}
	return e
}

func TestStoreOpenClose(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created")
	}
}

func TestStoreSaveAssignsRunID(t *testing.T) {
	store := openTestStore(t)

	e := ScoreEntry{GameID: "flappy", Score: 3.5, Walls: 7, Duration: 12345 * time.Millisecond}
	id, err := store.SaveScore(&e)
	if err != nil {
		t.Fatalf("SaveScore() failed: %v", err)
	}
	if id == 0 || e.ID != id {
		t.Errorf("Expected ID to be set, got id=%d entry=%d", id, e.ID)
	}
	if _, err := uuid.Parse(e.RunID); err != nil {
		t.Errorf("RunID is not a uuid: %q", e.RunID)
	}
	if e.Player != DefaultPlayer {
		t.Errorf("Expected default player, got %q", e.Player)
	}

	got, err := store.ScoreByRun(e.RunID)
	if err != nil {
		t.Fatalf("ScoreByRun() failed: %v", err)
	}
	if got == nil {
		t.Fatal("Saved run not found")
	}
	if got.Score != 3.5 || got.Walls != 7 || got.Duration != 12345*time.Millisecond {
		t.Errorf("Round trip mismatch: %+v", got)
	}

	missing, err := store.ScoreByRun(uuid.NewString())
	if err != nil || missing != nil {
		t.Errorf("Expected nil for unknown run, got %+v, %v", missing, err)
	}
}

func TestStoreSaveKeepsRunID(t *testing.T) {
	store := openTestStore(t)

	runID := uuid.NewString()
	e := ScoreEntry{RunID: runID, GameID: "flappy", Player: "alice", Score: 1}
	if _, err := store.SaveScore(&e); err != nil {
		t.Fatalf("SaveScore() failed: %v", err)
	}
	if e.RunID != runID {
		t.Errorf("RunID overwritten: %q", e.RunID)
	}

	dup := ScoreEntry{RunID: runID, GameID: "flappy", Score: 2}
	if _, err := store.SaveScore(&dup); err == nil {
		t.Error("Expected duplicate run id to fail")
	}

	if _, err := store.SaveScore(&ScoreEntry{Score: 1}); err == nil {
		t.Error("Expected missing game id to fail")
	}
}

func TestStoreSaveAndRetrieve(t *testing.T) {
	store := openTestStore(t)

	save(t, store, "flappy", "", 10)
	save(t, store, "flappy", "", 5.5)
	save(t, store, "flappy", "", 20)
	save(t, store, "other", "", 50)

	scores, err := store.TopScores("flappy", 10)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}

	if len(scores) != 3 {
		t.Fatalf("Expected 3 scores, got %d", len(scores))
	}
	if scores[0].Score != 20 || scores[1].Score != 10 || scores[2].Score != 5.5 {
		t.Errorf("Scores not in expected order: %v", scores)
	}
	if scores[2].Walls != 11 {
		t.Errorf("Expected 11 walls, got %d", scores[2].Walls)
	}
}

func TestStoreTopScoresLimitAndTies(t *testing.T) {
	store := openTestStore(t)

	first := save(t, store, "test", "a", 2)
	save(t, store, "test", "b", 2)
	for i := 0; i < 5; i++ {
		save(t, store, "test", "c", float64(i)*0.5)
	}

	scores, err := store.TopScores("test", 3)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}
	if len(scores) != 3 {
		t.Fatalf("Expected 3 scores with limit, got %d", len(scores))
	}
	if scores[0].RunID != first.RunID {
		t.Errorf("Earlier run should win the tie, got %+v", scores[0])
	}
	if scores[2].Score != 2 {
		t.Errorf("Expected third score 2, got %v", scores[2].Score)
	}
}

func TestStoreHighScoreAndPlayerBest(t *testing.T) {
	store := openTestStore(t)

	high, err := store.HighScore("flappy")
	if err != nil {
		t.Fatalf("HighScore() failed: %v", err)
	}
	if high != 0 {
		t.Errorf("Expected high score of 0 for empty game, got %v", high)
	}

	save(t, store, "flappy", "alice", 4)
	save(t, store, "flappy", "bob", 7.5)
	save(t, store, "flappy", "alice", 6)

	high, err = store.HighScore("flappy")
	if err != nil {
		t.Fatalf("HighScore() failed: %v", err)
	}
	if high != 7.5 {
		t.Errorf("Expected high score of 7.5, got %v", high)
	}

	tests := []struct {
		player string
		want   float64
	}{
		{"alice", 6},
		{"bob", 7.5},
		{"carol", 0},
	}
	for _, tt := range tests {
		got, err := store.PlayerBest("flappy", tt.player)
		if err != nil {
			t.Fatalf("PlayerBest(%q) failed: %v", tt.player, err)
		}
		if got != tt.want {
			t.Errorf("PlayerBest(%q) = %v, want %v", tt.player, got, tt.want)
		}
	}
}

func TestStoreClearScores(t *testing.T) {
	store := openTestStore(t)

	save(t, store, "flappy", "", 1)
	save(t, store, "flappy", "", 2)
	save(t, store, "other", "", 3)

	if err := store.ClearScores("flappy"); err != nil {
		t.Fatalf("ClearScores() failed: %v", err)
	}

	flappyScores, _ := store.TopScores("flappy", 10)
	if len(flappyScores) != 0 {
		t.Errorf("Expected 0 flappy scores after clear, got %d", len(flappyScores))
	}

	otherScores, _ := store.TopScores("other", 10)
	if len(otherScores) != 1 {
		t.Errorf("Other scores should not be affected by clearing flappy")
	}
}

func TestStoreAllScores(t *testing.T) {
	store := openTestStore(t)

	for i := 0; i < 20; i++ {
		save(t, store, "test", "", float64(i)*0.5)
	}

	scores, err := store.AllScores("test")
	if err != nil {
		t.Fatalf("AllScores() failed: %v", err)
	}

	if len(scores) != 20 {
		t.Errorf("Expected 20 scores, got %d", len(scores))
	}
}

func TestStoreGameStats(t *testing.T) {
	store := openTestStore(t)

	empty, err := store.GetGameStats("flappy")
	if err != nil {
		t.Fatalf("GetGameStats() failed: %v", err)
	}
	if empty.GamesCount != 0 || !empty.LastPlayed.IsZero() {
		t.Errorf("Expected empty stats, got %+v", empty)
	}

	for _, e := range []ScoreEntry{
		{GameID: "flappy", Player: "alice", Score: 2, Walls: 4, Duration: 3 * time.Second},
		{GameID: "flappy", Player: "bob", Score: 4, Walls: 8, Duration: 5 * time.Second},
		{GameID: "flappy", Player: "alice", Score: 0, Walls: 0, Duration: time.Second},
	} {
		if _, err := store.SaveScore(&e); err != nil {
			t.Fatalf("SaveScore() failed: %v", err)
		}
	}

	stats, err := store.GetGameStats("flappy")
	if err != nil {
		t.Fatalf("GetGameStats() failed: %v", err)
	}
	if stats.GamesCount != 3 || stats.Players != 2 {
		t.Errorf("Expected 3 games by 2 players, got %+v", stats)
	}
	if stats.HighScore != 4 || stats.AvgScore != 2 {
		t.Errorf("Unexpected score stats: %+v", stats)
	}
	if stats.TotalWalls != 12 || stats.TotalTime != 9*time.Second {
		t.Errorf("Unexpected totals: %+v", stats)
	}
	if stats.LastPlayed.IsZero() {
		t.Error("Expected last played time")
	}
}

func TestStoreNestedPath(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "subdir", "deep", "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() with nested path failed: %v", err)
	}
	defer store.Close()

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created in nested directory")
	}
}
