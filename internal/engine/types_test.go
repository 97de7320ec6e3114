package engine

import (
	"errors"
	"testing"
)

func TestSpiceUpgrade(t *testing.T) {
	for steps, want := range map[int]Spice{1: Saffron, 2: Cardamom, 3: Cinnamon} {
		got, err := Turmeric.Upgrade(steps)
		if err != nil {
			t.Fatalf("upgrade by %d: %v", steps, err)
		}
		if got != want {
			t.Fatalf("upgrade by %d: got %d, want %d", steps, got, want)
		}
	}
}

func TestSpiceUpgradePastTop(t *testing.T) {
	if _, err := Turmeric.Upgrade(4); !errors.Is(err, ErrUpgradePastTop) {
		t.Fatalf("expected ErrUpgradePastTop, got %v", err)
	}
	if _, err := Cinnamon.Upgrade(1); !errors.Is(err, ErrUpgradePastTop) {
		t.Fatalf("expected ErrUpgradePastTop, got %v", err)
	}
}

func TestSpiceUpgradeZeroSteps(t *testing.T) {
	if _, err := Saffron.Upgrade(0); !errors.Is(err, ErrUpgradeNoSteps) {
		t.Fatalf("expected ErrUpgradeNoSteps, got %v", err)
	}
}

func TestSpiceSetArithmetic(t *testing.T) {
	a := Spices(3, 1, 2, 4)
	if a.Total() != 10 {
		t.Fatalf("total: got %d", a.Total())
	}
	b := a.Plus(Spices(1, 0, 0, 1))
	if b != Spices(4, 1, 2, 5) {
		t.Fatalf("plus: got %v", b)
	}
	c, ok := a.Minus(Spices(3, 1, 0, 0))
	if !ok || c != Spices(0, 0, 2, 4) {
		t.Fatalf("minus: got %v ok=%v", c, ok)
	}
	if _, ok := a.Minus(Spices(4, 0, 0, 0)); ok {
		t.Fatal("minus below zero should not be ok")
	}
	if !a.Contains(Spices(0, 1, 2, 0)) {
		t.Fatal("contains failed")
	}
	if a.Contains(Spices(0, 2, 0, 0)) {
		t.Fatal("contains should fail")
	}
	if a.Scale(2) != Spices(6, 2, 4, 8) {
		t.Fatalf("scale: got %v", a.Scale(2))
	}
	if got := a.WithSpice(Cinnamon, 1); got.Count(Cinnamon) != 5 {
		t.Fatalf("with spice: got %v", got)
	}
}

func TestActionRoundTrip(t *testing.T) {
	actions := []Action{
		GainBasic{Count: 2, Discard: Spices(1, 0, 0, 0)},
		PlayCard{Card: "m10", Times: 2},
		PlayCard{Card: "s2", Upgrades: []CubeUpgrade{{From: Turmeric, Steps: 2}}},
		AcquireCard{Slot: 3, Payment: Spices(3, 0, 0, 0)},
		UpgradeCard{Card: "s1", Levels: 1},
		ClaimContract{Contract: "p07"},
		Rest{},
	}
	for _, a := range actions {
		raw, err := MarshalAction(a)
		if err != nil {
			t.Fatalf("marshal %T: %v", a, err)
		}
		back, err := UnmarshalAction(raw)
		if err != nil {
			t.Fatalf("unmarshal %T: %v", a, err)
		}
		if back.Kind() != a.Kind() {
			t.Fatalf("kind changed: %v -> %v", a.Kind(), back.Kind())
		}
	}
	if _, err := UnmarshalAction([]byte(`{"kind":"flip_table"}`)); err == nil {
		t.Fatal("expected error for unknown kind")
	}
}
