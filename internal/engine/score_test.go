package engine

import (
	"testing"

	"spiceroute/internal/ruleset"
)

func finishedGame(rules ruleset.Rules, players ...PlayerState) *GameState {
	return &GameState{
		Rules:   rules,
		Catalog: DefaultCatalog(),
		Phase:   PhaseGameOver,
		Players: players,
	}
}

func TestScoreComponents(t *testing.T) {
	g := finishedGame(ruleset.Default(), PlayerState{
		ID:          "a",
		Claimed:     []CardID{"p01"}, // 6 points
		GoldCoins:   1,
		SilverCoins: 1,
		Caravan:     Spices(2, 1, 1, 0),
	})
	// 6 contract + 3 gold + 1 silver + 2 scored cubes; turmeric is worth 0.
	if got := g.Score("a"); got != 12 {
		t.Fatalf("score: got %d, want 12", got)
	}
	if got := g.Score("missing"); got != 0 {
		t.Fatalf("unknown player score: got %d", got)
	}
}

func TestScoreUnclaimedPenalty(t *testing.T) {
	rules := ruleset.Default()
	rules.UnclaimedPenalty = 2
	g := finishedGame(rules, PlayerState{ID: "a", Claimed: []CardID{"p01"}})
	// 6 points minus 2 per contract short of the 6-contract threshold.
	if got := g.Score("a"); got != 6-2*5 {
		t.Fatalf("score: got %d, want %d", got, 6-2*5)
	}
}

func TestStandingsRequireGameOver(t *testing.T) {
	g := newTestGame(t, ruleset.Default(), 2, 1)
	if _, err := g.FinalStandings(); err == nil {
		t.Fatal("expected error before game end")
	}
}

func TestStandingsTieBreakContracts(t *testing.T) {
	// Both players score 6, but only b holds a contract.
	g := finishedGame(ruleset.Default(),
		PlayerState{ID: "a", GoldCoins: 2},
		PlayerState{ID: "b", Claimed: []CardID{"p01"}},
	)
	standings, err := g.FinalStandings()
	if err != nil {
		t.Fatal(err)
	}
	if standings[0].Player != "b" || standings[0].Rank != 1 || standings[1].Rank != 2 {
		t.Fatalf("standings: %+v", standings)
	}
}

func TestStandingsTieBreakHighTierCubes(t *testing.T) {
	rules := ruleset.Default()
	rules.CubeValues = []int{0, 0, 0, 0}
	g := finishedGame(rules,
		PlayerState{ID: "a", Caravan: Spices(5, 0, 0, 0)},
		PlayerState{ID: "b", Caravan: Spices(0, 3, 0, 0)},
	)
	standings, err := g.FinalStandings()
	if err != nil {
		t.Fatal(err)
	}
	if standings[0].Player != "b" {
		t.Fatalf("high-tier cubes should win the tie: %+v", standings)
	}
}

func TestStandingsSeatTieBreak(t *testing.T) {
	g := finishedGame(ruleset.Default(),
		PlayerState{ID: "a"},
		PlayerState{ID: "b"},
	)
	standings, err := g.FinalStandings()
	if err != nil {
		t.Fatal(err)
	}
	if standings[0].Player != "a" || standings[1].Rank != 2 || standings[0].Shared || standings[1].Shared {
		t.Fatalf("seat tie-break: %+v", standings)
	}
}

func TestStandingsSharedRank(t *testing.T) {
	rules := ruleset.Default()
	rules.TurnOrderTiebreak = false
	g := finishedGame(rules,
		PlayerState{ID: "a"},
		PlayerState{ID: "b"},
	)
	standings, err := g.FinalStandings()
	if err != nil {
		t.Fatal(err)
	}
	if standings[0].Rank != 1 || standings[1].Rank != 1 || !standings[0].Shared || !standings[1].Shared {
		t.Fatalf("shared rank: %+v", standings)
	}
}
