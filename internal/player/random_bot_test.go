package player

import (
	"testing"

	"spiceroute/internal/engine"
)

func TestRandomBotIsSeedDeterministic(t *testing.T) {
	legal := []engine.Action{
		engine.Rest{},
		engine.GainBasic{Count: 2},
		engine.UpgradeCard{Card: "s1", Levels: 1},
	}
	a := NewRandomBot("a", 42)
	b := NewRandomBot("b", 42)
	for i := 0; i < 20; i++ {
		x, err := a.ChooseAction(nil, legal)
		if err != nil {
			t.Fatal(err)
		}
		y, _ := b.ChooseAction(nil, legal)
		if x != y {
			t.Fatalf("same seed diverged on pick %d", i)
		}
	}
}

func TestRandomBotNoLegalActions(t *testing.T) {
	if _, err := NewRandomBot("a", 1).ChooseAction(nil, nil); err == nil {
		t.Fatal("expected error with no legal actions")
	}
}
