package storage

import (
	"testing"
	"time"

	"github.com/vovakirdan/jetflap/internal/core"
)

func TestRecorderSavesOncePerGameOver(t *testing.T) {
	store := openTestStore(t)
	rec := NewRecorder(store, "flappy", "alice", nil)

	playing := core.GameState{Score: 1.5, Walls: 3}
	over := core.GameState{Score: 2.5, Walls: 5, GameOver: true, Elapsed: 7 * time.Second}

	if e, err := rec.Observe(playing); e != nil || err != nil {
		t.Fatalf("Observe(playing) = %v, %v", e, err)
	}

	e, err := rec.Observe(over)
	if err != nil {
		t.Fatalf("Observe(over) failed: %v", err)
	}
	if e == nil || e.RunID == "" {
		t.Fatalf("Expected a saved entry, got %+v", e)
	}
	for i := 0; i < 3; i++ {
		if again, _ := rec.Observe(over); again != nil {
			t.Fatal("Game over saved twice")
		}
	}

	got, err := store.ScoreByRun(e.RunID)
	if err != nil || got == nil {
		t.Fatalf("ScoreByRun(%q) = %v, %v", e.RunID, got, err)
	}
	if got.Player != "alice" || got.Score != 2.5 || got.Walls != 5 || got.Duration != 7*time.Second {
		t.Errorf("Unexpected stored run %+v", got)
	}

	rec.Observe(core.GameState{})
	if e, _ := rec.Observe(core.GameState{Score: 1, Walls: 2, GameOver: true}); e == nil {
		t.Error("A new game over after a restart should be saved")
	}

	all, _ := store.AllScores("flappy")
	if len(all) != 2 {
		t.Errorf("Expected 2 runs, got %d", len(all))
	}
}

func TestRecorderSkipsEmptyRuns(t *testing.T) {
	store := openTestStore(t)
	rec := NewRecorder(store, "flappy", "", nil)

	if e, err := rec.Observe(core.GameState{GameOver: true}); e != nil || err != nil {
		t.Errorf("Observe(empty run) = %v, %v", e, err)
	}
	if all, _ := store.AllScores("flappy"); len(all) != 0 {
		t.Errorf("Zero-score run should not be saved, got %d", len(all))
	}
	if rec.Player() != DefaultPlayer {
		t.Errorf("Player() = %q, expected %q", rec.Player(), DefaultPlayer)
	}
}

func TestRecorderWithoutStore(t *testing.T) {
	rec := NewRecorder(nil, "flappy", "bob", nil)
	if e, err := rec.Observe(core.GameState{Score: 3, GameOver: true}); e != nil || err != nil {
		t.Errorf("Observe without store = %v, %v", e, err)
	}
}
