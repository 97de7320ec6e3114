// Package ruleset holds the tunable rule tables of the game. The engine
// never hard-codes a balance number; everything a rulebook revision could
// change lives here and can be overridden from a YAML file.
package ruleset

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// EndContracts is the number of claimed contracts that triggers the final
// round, split by table size as in the published rules.
type EndContracts struct {
	TwoToThree int `yaml:"two_to_three"`
	FourToFive int `yaml:"four_to_five"`
}

// For returns the trigger threshold for a table of n players.
func (e EndContracts) For(n int) int {
	if n <= 3 {
		return e.TwoToThree
	}
	return e.FourToFive
}

type Rules struct {
	MinPlayers int `yaml:"min_players"`
	MaxPlayers int `yaml:"max_players"`

	CaravanCapacity int `yaml:"caravan_capacity"`
	MarketRowSize   int `yaml:"market_row_size"`
	ContractRowSize int `yaml:"contract_row_size"`

	// BasicGain is how many bottom-tier cubes the free gain action may take.
	BasicGain int `yaml:"basic_gain"`

	// SupplyPerKind is the total number of cubes of each kind in play.
	// The conservation invariant is checked against this figure.
	SupplyPerKind int `yaml:"supply_per_kind"`

	GoldCoinsPerPlayer   int `yaml:"gold_coins_per_player"`
	SilverCoinsPerPlayer int `yaml:"silver_coins_per_player"`
	GoldValue            int `yaml:"gold_value"`
	SilverValue          int `yaml:"silver_value"`

	// CubeValues scores leftover cubes at game end, indexed by tier
	// (bottom tier first).
	CubeValues []int `yaml:"cube_values"`

	// UnclaimedPenalty is deducted per contract short of the end-game
	// threshold. The published rules use 0; variants may not.
	UnclaimedPenalty int `yaml:"unclaimed_penalty"`

	UpgradeCubesPerPlayer int `yaml:"upgrade_cubes_per_player"`

	EndContracts EndContracts `yaml:"end_contracts"`

	// TurnOrderTiebreak resolves remaining ties in favour of the earlier
	// seat. When disabled, tied players share a rank.
	TurnOrderTiebreak bool `yaml:"turn_order_tiebreak"`

	// MarketRotation discards the leftmost market card at the end of each
	// round so the merchant deck cycles through its discard pile.
	MarketRotation bool `yaml:"market_rotation"`

	// StartingCaravans lists the opening caravan per seat, each entry as
	// cube counts from bottom tier to top.
	StartingCaravans [][]int `yaml:"starting_caravans"`
}

// Default returns the rule tables of the published base game.
func Default() Rules {
	return Rules{
		MinPlayers:            2,
		MaxPlayers:            5,
		CaravanCapacity:       10,
		MarketRowSize:         6,
		ContractRowSize:       5,
		BasicGain:             2,
		SupplyPerKind:         40,
		GoldCoinsPerPlayer:    2,
		SilverCoinsPerPlayer:  2,
		GoldValue:             3,
		SilverValue:           1,
		CubeValues:            []int{0, 1, 1, 1},
		UnclaimedPenalty:      0,
		UpgradeCubesPerPlayer: 3,
		EndContracts:          EndContracts{TwoToThree: 6, FourToFive: 5},
		TurnOrderTiebreak:     true,
		MarketRotation:        false,
		StartingCaravans: [][]int{
			{3, 0, 0, 0},
			{4, 0, 0, 0},
			{4, 0, 0, 0},
			{3, 1, 0, 0},
			{3, 1, 0, 0},
		},
	}
}

// Load reads rules from a YAML file, starting from the defaults so a file
// only needs to override what it changes.
func Load(path string) (Rules, error) {
	r := Default()
	raw, err := os.ReadFile(path)
	if err != nil {
		return r, err
	}
	if err := yaml.Unmarshal(raw, &r); err != nil {
		return r, fmt.Errorf("ruleset %s: %w", path, err)
	}
	if err := r.Validate(); err != nil {
		return r, fmt.Errorf("ruleset %s: %w", path, err)
	}
	return r, nil
}

// Validate rejects tables that would make the game unplayable.
func (r Rules) Validate() error {
	switch {
	case r.MinPlayers < 1 || r.MaxPlayers < r.MinPlayers:
		return fmt.Errorf("bad player range %d..%d", r.MinPlayers, r.MaxPlayers)
	case r.CaravanCapacity < 1:
		return fmt.Errorf("caravan capacity must be positive")
	case r.MarketRowSize < 1 || r.ContractRowSize < 1:
		return fmt.Errorf("row sizes must be positive")
	case r.BasicGain < 1:
		return fmt.Errorf("basic gain must be positive")
	case r.SupplyPerKind < r.CaravanCapacity:
		return fmt.Errorf("supply per kind %d below caravan capacity", r.SupplyPerKind)
	case len(r.CubeValues) == 0:
		return fmt.Errorf("cube values missing")
	case r.EndContracts.TwoToThree < 1 || r.EndContracts.FourToFive < 1:
		return fmt.Errorf("end-contract thresholds must be positive")
	case len(r.StartingCaravans) < r.MaxPlayers:
		return fmt.Errorf("starting caravans cover %d seats, need %d", len(r.StartingCaravans), r.MaxPlayers)
	}
	for i, sc := range r.StartingCaravans {
		total := 0
		for _, n := range sc {
			if n < 0 {
				return fmt.Errorf("seat %d: negative starting cube count", i)
			}
			total += n
		}
		if total > r.CaravanCapacity {
			return fmt.Errorf("seat %d: starting caravan exceeds capacity", i)
		}
	}
	return nil
}
