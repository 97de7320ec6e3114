package engine

// LegalActions enumerates moves the acting player could make right now.
// For actions with free sub-choices (payments, discards, upgrade targets) a
// single canonical choice is produced per card or slot, so the list is a
// representative set for hinting and automated play, not the full cross
// product. Every returned action passes Validate.
func (g *GameState) LegalActions(player PlayerID) []Action {
	if g.corrupted || g.Phase == PhaseGameOver {
		return nil
	}
	idx := g.playerIndex(player)
	if idx < 0 || idx != g.Current {
		return nil
	}
	p := &g.Players[idx]
	capacity := g.Rules.CaravanCapacity

	var out []Action
	add := func(a Action) {
		if g.Validate(player, a) == nil {
			out = append(out, a)
		}
	}

	add(Rest{})

	if n := min(g.Rules.BasicGain, g.Supply.Count(Turmeric)); n > 0 {
		after := p.Caravan.Plus(Spices(n, 0, 0, 0))
		add(GainBasic{Count: n, Discard: canonicalDiscard(after, capacity)})
	}

	for _, owned := range p.Hand {
		def, ok := g.Catalog.Merchant[owned.ID]
		if !ok {
			continue
		}
		eff := def.Effect(owned.Level)
		switch eff.Kind {
		case EffectGain:
			after := p.Caravan.Plus(eff.Gain)
			add(PlayCard{Card: owned.ID, Discard: canonicalDiscard(after, capacity)})
		case EffectExchange:
			for times := 1; p.Caravan.Contains(eff.From.Scale(times)); times++ {
				after, _ := p.Caravan.Minus(eff.From.Scale(times))
				after = after.Plus(eff.To.Scale(times))
				add(PlayCard{Card: owned.ID, Times: times, Discard: canonicalDiscard(after, capacity)})
			}
		case EffectUpgrade:
			ups := canonicalUpgrades(p.Caravan, eff.Steps)
			if len(ups) > 0 {
				add(PlayCard{Card: owned.ID, Upgrades: ups})
			}
		}
	}

	for slot := range g.MarketRow {
		payment, ok := canonicalPayment(p.Caravan, slot)
		if !ok {
			break
		}
		add(AcquireCard{Slot: slot, Payment: payment})
	}

	if g.UpgradeCubes > 0 {
		for _, owned := range p.Hand {
			if owned.Level < MaxCardLevel {
				add(UpgradeCard{Card: owned.ID, Levels: 1})
			}
		}
		for _, owned := range p.Played {
			if owned.Level < MaxCardLevel {
				add(UpgradeCard{Card: owned.ID, Levels: 1})
			}
		}
	}

	for _, id := range g.ContractRow {
		if p.Caravan.Contains(g.Catalog.Point[id].Cost) {
			add(ClaimContract{Contract: id})
		}
	}

	return out
}

// canonicalDiscard drops the lowest-tier cubes first until the set fits the
// capacity.
func canonicalDiscard(after SpiceSet, capacity int) SpiceSet {
	var discard SpiceSet
	excess := after.Total() - capacity
	for s := Turmeric; s <= Cinnamon && excess > 0; s++ {
		n := min(after.Count(s), excess)
		discard = discard.WithSpice(s, n)
		excess -= n
	}
	return discard
}

// canonicalPayment pays an acquisition with the cheapest cubes available.
func canonicalPayment(caravan SpiceSet, cost int) (SpiceSet, bool) {
	var payment SpiceSet
	for s := Turmeric; s <= Cinnamon && cost > 0; s++ {
		n := min(caravan.Count(s), cost)
		payment = payment.WithSpice(s, n)
		cost -= n
	}
	return payment, cost == 0
}

// canonicalUpgrades spends upgrade steps one at a time on the most valuable
// cube that can still rise.
func canonicalUpgrades(caravan SpiceSet, steps int) []CubeUpgrade {
	var ups []CubeUpgrade
	for ; steps > 0; steps-- {
		var pick Spice
		for s := Cardamom; s >= Turmeric; s-- {
			if caravan.Count(s) > 0 {
				pick = s
				break
			}
		}
		if pick == 0 {
			break
		}
		ups = append(ups, CubeUpgrade{From: pick, Steps: 1})
		caravan = caravan.WithSpice(pick, -1).WithSpice(pick+1, 1)
	}
	return ups
}
