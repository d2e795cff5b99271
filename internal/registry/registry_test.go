package registry

import (
	"testing"

	"github.com/vovakirdan/jetflap/internal/core"
)

type stubGame struct{ id string }

func (g stubGame) ID() string                          { return g.id }
func (g stubGame) Title() string                       { return "Stub " + g.id }
func (g stubGame) Reset(core.RuntimeConfig)            {}
func (g stubGame) Step(core.InputFrame) core.StepResult { return core.StepResult{} }
func (g stubGame) Render(*core.Screen)                 {}
func (g stubGame) State() core.GameState               { return core.GameState{} }

func TestRegisterAndCreate(t *testing.T) {
	Register("stub-b", func() Game { return stubGame{id: "stub-b"} })
	Register("stub-a", func() Game { return stubGame{id: "stub-a"} })

	if !Exists("stub-a") {
		t.Fatal("stub-a should exist")
	}
	if Title("stub-b") != "Stub stub-b" {
		t.Errorf("Unexpected title %q", Title("stub-b"))
	}
	if Title("nope") != "nope" {
		t.Errorf("Unknown ID should fall back to itself, got %q", Title("nope"))
	}

	g, err := Create("stub-a")
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if g.ID() != "stub-a" {
		t.Errorf("Created wrong game %q", g.ID())
	}

	if _, err := Create("nope"); err == nil {
		t.Error("Expected error for unknown game")
	}

	list := List()
	if len(list) < 2 || list[0].ID != "stub-a" || list[1].ID != "stub-b" {
		t.Errorf("Expected sorted list, got %+v", list)
	}
}

func TestRegisterDuplicatePanics(t *testing.T) {
	Register("stub-dup", func() Game { return stubGame{id: "stub-dup"} })

	defer func() {
		if recover() == nil {
			t.Error("Expected panic on duplicate registration")
		}
	}()
	Register("stub-dup", func() Game { return stubGame{id: "stub-dup"} })
}
