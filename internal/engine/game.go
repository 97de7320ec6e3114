package engine

import (
	"fmt"

	"spiceroute/internal/ruleset"
)

// GameState is the canonical state of one session. It is exclusively owned
// by its orchestrating context and mutated only through ProposeAction.
type GameState struct {
	Rules   ruleset.Rules
	Catalog *Catalog

	Players []PlayerState
	Current int
	Round   int
	Phase   Phase

	// MarketRow and ContractRow are the face-up card windows, cheapest
	// acquisition slot first.
	MarketRow   []CardID
	ContractRow []CardID

	// Supply is the undrawn cube bank; MarketPool accumulates acquisition
	// payments. Both count toward the conservation invariant.
	Supply     SpiceSet
	MarketPool SpiceSet

	UpgradeCubes int
	GoldPool     int
	SilverPool   int

	// EndTriggered is monotonic: once the final round starts it never
	// resets.
	EndTriggered bool

	merchantDeck *Deck
	pointDeck    *Deck
	shuffler     Shuffler
	finalTurns   int
	corrupted    bool
}

// NewGame shuffles the decks, deals the rows, and seats the players with
// their starting caravans and cards.
func NewGame(rules ruleset.Rules, cat *Catalog, players []PlayerID, sh Shuffler) (*GameState, error) {
	if err := rules.Validate(); err != nil {
		return nil, err
	}
	n := len(players)
	if n < rules.MinPlayers || n > rules.MaxPlayers {
		return nil, fmt.Errorf("need %d..%d players, got %d", rules.MinPlayers, rules.MaxPlayers, n)
	}
	seen := map[PlayerID]bool{}
	for _, id := range players {
		if id == "" || seen[id] {
			return nil, fmt.Errorf("player ids must be unique and non-empty")
		}
		seen[id] = true
	}

	g := &GameState{
		Rules:        rules,
		Catalog:      cat,
		Phase:        PhasePlay,
		Supply:       Spices(rules.SupplyPerKind, rules.SupplyPerKind, rules.SupplyPerKind, rules.SupplyPerKind),
		UpgradeCubes: rules.UpgradeCubesPerPlayer * n,
		GoldPool:     rules.GoldCoinsPerPlayer * n,
		SilverPool:   rules.SilverCoinsPerPlayer * n,
		merchantDeck: NewDeck(cat.MerchantDeck, sh),
		pointDeck:    NewDeck(cat.PointDeck, sh),
		shuffler:     sh,
	}

	for seat, id := range players {
		var caravan SpiceSet
		for i, c := range rules.StartingCaravans[seat] {
			if i >= NumSpices {
				break
			}
			caravan[i] = c
		}
		var ok bool
		if g.Supply, ok = g.Supply.Minus(caravan); !ok {
			return nil, fmt.Errorf("supply too small for starting caravans")
		}
		hand := make([]OwnedCard, 0, len(cat.StartingHand))
		for _, cid := range cat.StartingHand {
			hand = append(hand, OwnedCard{ID: cid})
		}
		g.Players = append(g.Players, PlayerState{ID: id, Caravan: caravan, Hand: hand})
	}

	for i := 0; i < rules.MarketRowSize; i++ {
		if id, ok := g.merchantDeck.DrawRefill(sh); ok {
			g.MarketRow = append(g.MarketRow, id)
		}
	}
	for i := 0; i < rules.ContractRowSize; i++ {
		if id, ok := g.pointDeck.DrawRefill(sh); ok {
			g.ContractRow = append(g.ContractRow, id)
		}
	}
	return g, nil
}

// CurrentPlayer returns whose turn it is.
func (g *GameState) CurrentPlayer() PlayerID { return g.Players[g.Current].ID }

// Over reports whether the session reached its terminal state.
func (g *GameState) Over() bool { return g.Phase == PhaseGameOver }

// Player returns the state of one player, nil if unknown.
func (g *GameState) Player(id PlayerID) *PlayerState {
	if i := g.playerIndex(id); i >= 0 {
		return &g.Players[i]
	}
	return nil
}

func (g *GameState) playerIndex(id PlayerID) int {
	for i := range g.Players {
		if g.Players[i].ID == id {
			return i
		}
	}
	return -1
}

// ProposeAction validates act for player and, if legal, applies it
// atomically, advancing the turn machine. A rejected action leaves the state
// untouched. An InvariantError poisons the session.
func (g *GameState) ProposeAction(player PlayerID, act Action) (*StateDelta, error) {
	pl, err := g.plan(player, act)
	if err != nil {
		return nil, err
	}
	delta := g.apply(pl)
	if err := g.checkInvariants(); err != nil {
		g.corrupted = true
		return nil, err
	}
	g.advanceTurn(delta)
	return delta, nil
}

// Validate checks act without mutating anything. Calling it any number of
// times yields the same result for the same state.
func (g *GameState) Validate(player PlayerID, act Action) error {
	_, err := g.plan(player, act)
	return err
}

// takeMarketSlot removes a market card and refills the row from the deck,
// reshuffling the discard pile in first when the deck ran dry.
func (g *GameState) takeMarketSlot(slot int) CardID {
	id := g.MarketRow[slot]
	g.MarketRow = append(g.MarketRow[:slot], g.MarketRow[slot+1:]...)
	if nid, ok := g.merchantDeck.DrawRefill(g.shuffler); ok {
		g.MarketRow = append(g.MarketRow, nid)
	}
	return id
}

func (g *GameState) takeContractSlot(slot int) CardID {
	id := g.ContractRow[slot]
	g.ContractRow = append(g.ContractRow[:slot], g.ContractRow[slot+1:]...)
	if nid, ok := g.pointDeck.DrawRefill(g.shuffler); ok {
		g.ContractRow = append(g.ContractRow, nid)
	}
	return id
}

// rotateMarket cycles the leftmost market card into the merchant discard at
// the end of a round, when the rotation rule is on.
func (g *GameState) rotateMarket() {
	if len(g.MarketRow) == 0 {
		return
	}
	g.merchantDeck.Discard(g.MarketRow[0])
	g.MarketRow = append(g.MarketRow[:0], g.MarketRow[1:]...)
	if id, ok := g.merchantDeck.DrawRefill(g.shuffler); ok {
		g.MarketRow = append(g.MarketRow, id)
	}
}

// advanceTurn runs the post-action part of the turn machine: end-game
// detection, the final-round countdown, and the hand-over to the next seat.
func (g *GameState) advanceTurn(d *StateDelta) {
	n := len(g.Players)
	if !g.EndTriggered {
		if len(g.Players[g.Current].Claimed) >= g.Rules.EndContracts.For(n) {
			g.EndTriggered = true
			g.Phase = PhaseFinalRound
			// Everyone after the triggering player in this round gets one
			// more turn, so all seats end with equal turn counts.
			g.finalTurns = n - 1 - g.Current
			d.EndGameTriggered = true
		}
	} else {
		g.finalTurns--
	}
	if g.EndTriggered && g.finalTurns <= 0 {
		g.Phase = PhaseGameOver
		d.Phase = g.Phase
		return
	}
	g.Current = (g.Current + 1) % n
	if g.Current == 0 {
		g.Round++
		if g.Rules.MarketRotation {
			g.rotateMarket()
		}
	}
	d.Phase = g.Phase
	d.NextPlayer = g.Players[g.Current].ID
}

// checkInvariants verifies the whole-state consistency rules after an
// apply. Any failure is an engine bug, not a bad move.
func (g *GameState) checkInvariants() error {
	n := len(g.Players)

	total := g.Supply.Plus(g.MarketPool)
	for i := range g.Players {
		total = total.Plus(g.Players[i].Caravan)
	}
	for i, sum := range total {
		if sum != g.Rules.SupplyPerKind {
			return &InvariantError{Detail: fmt.Sprintf("cube conservation broken for %s: %d != %d",
				spiceName(Spice(i+1)), sum, g.Rules.SupplyPerKind)}
		}
	}
	for _, c := range g.Supply {
		if c < 0 {
			return &InvariantError{Detail: "negative supply count"}
		}
	}
	for i := range g.Players {
		p := &g.Players[i]
		for _, c := range p.Caravan {
			if c < 0 {
				return &InvariantError{Detail: fmt.Sprintf("negative caravan count for %s", p.ID)}
			}
		}
		if p.Caravan.Total() > g.Rules.CaravanCapacity {
			return &InvariantError{Detail: fmt.Sprintf("caravan of %s over capacity", p.ID)}
		}
	}
	if len(g.MarketRow) < g.Rules.MarketRowSize && g.merchantDeck.Len()+g.merchantDeck.DiscardLen() > 0 {
		return &InvariantError{Detail: "market row short while deck has cards"}
	}
	if len(g.ContractRow) < g.Rules.ContractRowSize && g.pointDeck.Len()+g.pointDeck.DiscardLen() > 0 {
		return &InvariantError{Detail: "contract row short while deck has cards"}
	}
	if g.UpgradeCubes < 0 {
		return &InvariantError{Detail: "negative upgrade cube track"}
	}
	gold, silver := g.GoldPool, g.SilverPool
	for i := range g.Players {
		gold += g.Players[i].GoldCoins
		silver += g.Players[i].SilverCoins
	}
	if gold != g.Rules.GoldCoinsPerPlayer*n || silver != g.Rules.SilverCoinsPerPlayer*n {
		return &InvariantError{Detail: "coin conservation broken"}
	}
	return nil
}

// spiceName avoids depending on generated stringer output in error paths.
func spiceName(s Spice) string {
	switch s {
	case Turmeric:
		return "turmeric"
	case Saffron:
		return "saffron"
	case Cardamom:
		return "cardamom"
	case Cinnamon:
		return "cinnamon"
	default:
		return fmt.Sprintf("spice(%d)", int(s))
	}
}
