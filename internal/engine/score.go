package engine

import (
	"fmt"
	"sort"
)

// Standing is one player's final result.
type Standing struct {
	Player        PlayerID `json:"player"`
	Seat          int      `json:"seat"`
	Score         int      `json:"score"`
	Contracts     int      `json:"contracts"`
	HighTierCubes int      `json:"high_tier_cubes"`
	Rank          int      `json:"rank"`
	Shared        bool     `json:"shared,omitempty"`
}

// Score computes a player's score under the current rule tables: claimed
// contract points, coin values, leftover cube values per tier, minus the
// configured penalty per contract short of the end-game threshold.
func (g *GameState) Score(player PlayerID) int {
	p := g.Player(player)
	if p == nil {
		return 0
	}
	score := p.claimedPoints(g.Catalog)
	score += p.GoldCoins*g.Rules.GoldValue + p.SilverCoins*g.Rules.SilverValue
	for s := Turmeric; s <= Cinnamon; s++ {
		if tier := s.Tier() - 1; tier < len(g.Rules.CubeValues) {
			score += p.Caravan.Count(s) * g.Rules.CubeValues[tier]
		}
	}
	if short := g.Rules.EndContracts.For(len(g.Players)) - len(p.Claimed); short > 0 {
		score -= short * g.Rules.UnclaimedPenalty
	}
	return score
}

// highTierCubes counts leftover cubes above the bottom tier, the second
// tie-break criterion.
func (g *GameState) highTierCubes(p *PlayerState) int {
	n := 0
	for s := Saffron; s <= Cinnamon; s++ {
		n += p.Caravan.Count(s)
	}
	return n
}

// FinalStandings ranks the players once the game is over. Ties fall to most
// contracts claimed, then most high-tier cubes left, then the earlier seat;
// with the seat tie-break disabled, fully tied players share a rank.
func (g *GameState) FinalStandings() ([]Standing, error) {
	if g.Phase != PhaseGameOver {
		return nil, fmt.Errorf("standings are available only after game end")
	}
	standings := make([]Standing, len(g.Players))
	for i := range g.Players {
		p := &g.Players[i]
		standings[i] = Standing{
			Player:        p.ID,
			Seat:          i,
			Score:         g.Score(p.ID),
			Contracts:     len(p.Claimed),
			HighTierCubes: g.highTierCubes(p),
		}
	}
	sort.SliceStable(standings, func(i, j int) bool {
		a, b := standings[i], standings[j]
		if a.Score != b.Score {
			return a.Score > b.Score
		}
		if a.Contracts != b.Contracts {
			return a.Contracts > b.Contracts
		}
		if a.HighTierCubes != b.HighTierCubes {
			return a.HighTierCubes > b.HighTierCubes
		}
		if g.Rules.TurnOrderTiebreak {
			return a.Seat < b.Seat
		}
		return false
	})
	for i := range standings {
		if i == 0 {
			standings[i].Rank = 1
			continue
		}
		prev := &standings[i-1]
		cur := &standings[i]
		tied := cur.Score == prev.Score &&
			cur.Contracts == prev.Contracts &&
			cur.HighTierCubes == prev.HighTierCubes &&
			!g.Rules.TurnOrderTiebreak
		if tied {
			cur.Rank = prev.Rank
			cur.Shared = true
			prev.Shared = true
		} else {
			cur.Rank = i + 1
		}
	}
	return standings, nil
}
