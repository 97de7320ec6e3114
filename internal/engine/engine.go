package engine

import (
	"errors"
	"fmt"
)

// plan is the fully validated outcome of an action, computed without
// mutating the game. Validate drops it; apply replays it onto the state.
// Sharing the computation guarantees the validator and executor can never
// disagree about the same snapshot.
type plan struct {
	playerIdx int
	act       Action

	caravan      SpiceSet // acting player's caravan after the action
	fromSupply   SpiceSet
	toSupply     SpiceSet
	toMarketPool SpiceSet

	gained    SpiceSet
	spent     SpiceSet
	discarded SpiceSet

	playedIdx       int
	acquireSlot     int
	upgradeIdx      int
	upgradeInPlayed bool
	upgradeLevels   int
	claimSlot       int
	claimID         CardID
	grantGold       bool
	grantSilver     bool
}

func (g *GameState) plan(player PlayerID, act Action) (*plan, error) {
	if g.corrupted {
		return nil, ErrSessionCorrupted
	}
	switch g.Phase {
	case PhasePlay, PhaseFinalRound:
	case PhaseGameOver:
		return nil, illegal(ReasonGameAlreadyOver, "no actions accepted after game end")
	default:
		return nil, illegal(ReasonWrongPhase, "phase does not accept actions")
	}
	idx := g.playerIndex(player)
	if idx < 0 {
		return nil, illegal(ReasonNotPlayersTurn, "unknown player %q", player)
	}
	if idx != g.Current {
		return nil, illegal(ReasonNotPlayersTurn, "it is %s's turn", g.CurrentPlayer())
	}

	p := &g.Players[idx]
	pl := &plan{
		playerIdx:   idx,
		act:         act,
		caravan:     p.Caravan,
		playedIdx:   -1,
		acquireSlot: -1,
		upgradeIdx:  -1,
		claimSlot:   -1,
	}

	var discard SpiceSet
	var err error
	switch a := act.(type) {
	case GainBasic:
		discard, err = pl.planGainBasic(g, a)
	case PlayCard:
		discard, err = pl.planPlayCard(g, p, a)
	case AcquireCard:
		discard, err = pl.planAcquireCard(g, p, a)
	case UpgradeCard:
		err = pl.planUpgradeCard(g, p, a)
	case ClaimContract:
		discard, err = pl.planClaimContract(g, p, a)
	case Rest:
		// Always legal; never touches the caravan.
	default:
		err = fmt.Errorf("unsupported action type %T", act)
	}
	if err != nil {
		return nil, err
	}
	if err := pl.finish(g, discard); err != nil {
		return nil, err
	}
	return pl, nil
}

func (pl *plan) planGainBasic(g *GameState, a GainBasic) (SpiceSet, error) {
	if a.Count < 1 || a.Count > g.Rules.BasicGain {
		return SpiceSet{}, fmt.Errorf("gain count must be 1..%d", g.Rules.BasicGain)
	}
	gain := Spices(a.Count, 0, 0, 0)
	if !g.Supply.Contains(gain) {
		return SpiceSet{}, illegal(ReasonInsufficientTokens, "supply out of turmeric")
	}
	pl.caravan = pl.caravan.Plus(gain)
	pl.fromSupply = pl.fromSupply.Plus(gain)
	pl.gained = pl.gained.Plus(gain)
	return a.Discard, nil
}

func (pl *plan) planPlayCard(g *GameState, p *PlayerState, a PlayCard) (SpiceSet, error) {
	idx := p.handIndex(a.Card)
	if idx < 0 {
		if p.playedIndex(a.Card) >= 0 {
			return SpiceSet{}, illegal(ReasonCardNotAvailable, "card %s is face-down until a rest", a.Card)
		}
		return SpiceSet{}, illegal(ReasonCardNotAvailable, "card %s is not in hand", a.Card)
	}
	owned := p.Hand[idx]
	def, ok := g.Catalog.Merchant[owned.ID]
	if !ok {
		return SpiceSet{}, illegal(ReasonCardNotAvailable, "card %s is not in the catalog", a.Card)
	}
	pl.playedIdx = idx

	eff := def.Effect(owned.Level)
	switch eff.Kind {
	case EffectGain:
		if !g.Supply.Contains(eff.Gain) {
			return SpiceSet{}, illegal(ReasonInsufficientTokens, "supply exhausted for card %s", a.Card)
		}
		pl.caravan = pl.caravan.Plus(eff.Gain)
		pl.fromSupply = pl.fromSupply.Plus(eff.Gain)
		pl.gained = pl.gained.Plus(eff.Gain)

	case EffectExchange:
		times := a.Times
		if times == 0 {
			times = 1
		}
		if times < 0 {
			return SpiceSet{}, fmt.Errorf("exchange repeat count must be positive")
		}
		need := eff.From.Scale(times)
		out := eff.To.Scale(times)
		var ok bool
		if pl.caravan, ok = pl.caravan.Minus(need); !ok {
			return SpiceSet{}, illegal(ReasonInsufficientTokens, "cannot pay %d exchange(s) on card %s", times, a.Card)
		}
		if !g.Supply.Plus(need).Contains(out) {
			return SpiceSet{}, illegal(ReasonInsufficientTokens, "supply exhausted for card %s", a.Card)
		}
		pl.caravan = pl.caravan.Plus(out)
		pl.toSupply = pl.toSupply.Plus(need)
		pl.fromSupply = pl.fromSupply.Plus(out)
		pl.spent = pl.spent.Plus(need)
		pl.gained = pl.gained.Plus(out)

	case EffectUpgrade:
		steps := 0
		for _, cu := range a.Upgrades {
			steps += cu.Steps
		}
		if steps > eff.Steps {
			return SpiceSet{}, fmt.Errorf("card %s grants %d upgrade steps, asked for %d", a.Card, eff.Steps, steps)
		}
		for _, cu := range a.Upgrades {
			if !cu.From.Valid() {
				return SpiceSet{}, fmt.Errorf("invalid cube kind %d", int(cu.From))
			}
			target, err := cu.From.Upgrade(cu.Steps)
			if err != nil {
				switch {
				case errors.Is(err, ErrUpgradePastTop):
					return SpiceSet{}, illegal(ReasonAlreadyAtMaxLevel, "cannot upgrade %s by %d steps", spiceName(cu.From), cu.Steps)
				default:
					return SpiceSet{}, err
				}
			}
			from := SpiceSet{}.WithSpice(cu.From, 1)
			to := SpiceSet{}.WithSpice(target, 1)
			var ok bool
			if pl.caravan, ok = pl.caravan.Minus(from); !ok {
				return SpiceSet{}, illegal(ReasonInsufficientTokens, "no %s cube to upgrade", spiceName(cu.From))
			}
			pl.caravan = pl.caravan.Plus(to)
			pl.toSupply = pl.toSupply.Plus(from)
			pl.fromSupply = pl.fromSupply.Plus(to)
			pl.spent = pl.spent.Plus(from)
			pl.gained = pl.gained.Plus(to)
		}
		if !g.Supply.Plus(pl.toSupply).Contains(pl.fromSupply) {
			return SpiceSet{}, illegal(ReasonInsufficientTokens, "supply exhausted for card %s", a.Card)
		}
	}
	return a.Discard, nil
}

func (pl *plan) planAcquireCard(g *GameState, p *PlayerState, a AcquireCard) (SpiceSet, error) {
	if a.Slot < 0 || a.Slot >= len(g.MarketRow) {
		return SpiceSet{}, illegal(ReasonCardNotAvailable, "no market card at slot %d", a.Slot)
	}
	if err := checkSet(a.Payment); err != nil {
		return SpiceSet{}, err
	}
	if a.Payment.Total() != a.Slot {
		return SpiceSet{}, illegal(ReasonInsufficientTokens,
			"slot %d costs exactly %d cube(s), payment holds %d", a.Slot, a.Slot, a.Payment.Total())
	}
	var ok bool
	if pl.caravan, ok = pl.caravan.Minus(a.Payment); !ok {
		return SpiceSet{}, illegal(ReasonInsufficientTokens, "cannot pay for slot %d", a.Slot)
	}
	pl.toMarketPool = a.Payment
	pl.spent = pl.spent.Plus(a.Payment)
	pl.acquireSlot = a.Slot
	return a.Discard, nil
}

func (pl *plan) planUpgradeCard(g *GameState, p *PlayerState, a UpgradeCard) error {
	idx := p.handIndex(a.Card)
	inPlayed := false
	if idx < 0 {
		idx = p.playedIndex(a.Card)
		inPlayed = true
	}
	if idx < 0 {
		return illegal(ReasonCardNotAvailable, "card %s is not owned", a.Card)
	}
	if a.Levels < 1 {
		return fmt.Errorf("upgrade levels must be positive")
	}
	var owned OwnedCard
	if inPlayed {
		owned = p.Played[idx]
	} else {
		owned = p.Hand[idx]
	}
	if owned.Level+a.Levels > MaxCardLevel {
		return illegal(ReasonAlreadyAtMaxLevel, "card %s is at level %d of %d", a.Card, owned.Level, MaxCardLevel)
	}
	if g.UpgradeCubes < a.Levels {
		return illegal(ReasonNoUpgradeCubes, "%d upgrade cube(s) left on the track", g.UpgradeCubes)
	}
	pl.upgradeIdx = idx
	pl.upgradeInPlayed = inPlayed
	pl.upgradeLevels = a.Levels
	return nil
}

func (pl *plan) planClaimContract(g *GameState, p *PlayerState, a ClaimContract) (SpiceSet, error) {
	slot := -1
	for i, id := range g.ContractRow {
		if id == a.Contract {
			slot = i
			break
		}
	}
	if slot < 0 {
		for i := range g.Players {
			for _, id := range g.Players[i].Claimed {
				if id == a.Contract {
					return SpiceSet{}, illegal(ReasonContractAlreadyClaimed, "contract %s already claimed by %s", a.Contract, g.Players[i].ID)
				}
			}
		}
		return SpiceSet{}, illegal(ReasonCardNotAvailable, "contract %s is not on display", a.Contract)
	}
	pc := g.Catalog.Point[a.Contract]
	var ok bool
	if pl.caravan, ok = pl.caravan.Minus(pc.Cost); !ok {
		return SpiceSet{}, illegal(ReasonInsufficientTokens, "cannot pay the cost of contract %s", a.Contract)
	}
	// Cost cubes go back to the general supply, not to a player-accessible
	// pool.
	pl.toSupply = pl.toSupply.Plus(pc.Cost)
	pl.spent = pl.spent.Plus(pc.Cost)
	pl.claimSlot = slot
	pl.claimID = a.Contract

	// Claim-order bonus: gold on the first slot while it lasts, silver on
	// the second; once gold is gone silver promotes to the first slot.
	switch {
	case slot == 0 && g.GoldPool > 0:
		pl.grantGold = true
	case slot == 0 && g.SilverPool > 0:
		pl.grantSilver = true
	case slot == 1 && g.GoldPool > 0 && g.SilverPool > 0:
		pl.grantSilver = true
	}
	return a.Discard, nil
}

// finish applies the optional discard and enforces the capacity and supply
// bounds common to all actions.
func (pl *plan) finish(g *GameState, discard SpiceSet) error {
	if err := checkSet(discard); err != nil {
		return err
	}
	if !discard.IsZero() {
		var ok bool
		if pl.caravan, ok = pl.caravan.Minus(discard); !ok {
			return illegal(ReasonInsufficientTokens, "cannot discard cubes the caravan does not hold")
		}
		pl.toSupply = pl.toSupply.Plus(discard)
		pl.discarded = discard
	}
	if pl.caravan.Total() > g.Rules.CaravanCapacity {
		return illegal(ReasonCapacityExceeded, "caravan would hold %d of %d cubes",
			pl.caravan.Total(), g.Rules.CaravanCapacity)
	}
	return nil
}

// checkSet rejects malformed multisets coming in from outside.
func checkSet(s SpiceSet) error {
	for _, c := range s {
		if c < 0 {
			return fmt.Errorf("cube counts must be non-negative")
		}
	}
	return nil
}
