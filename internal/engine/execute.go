package engine

// apply replays a validated plan onto the state. All mutations happen here;
// every step is backed by a check the planner already made, so a failure
// surfaces afterwards as an invariant violation instead of a partial write.
func (g *GameState) apply(pl *plan) *StateDelta {
	p := &g.Players[pl.playerIdx]

	delta := &StateDelta{
		Player:    p.ID,
		Action:    pl.act.Kind(),
		Gained:    pl.gained,
		Spent:     pl.spent,
		Discarded: pl.discarded,
	}

	p.Caravan = pl.caravan
	g.Supply, _ = g.Supply.Minus(pl.fromSupply)
	g.Supply = g.Supply.Plus(pl.toSupply)
	g.MarketPool = g.MarketPool.Plus(pl.toMarketPool)

	switch a := pl.act.(type) {
	case PlayCard:
		card := p.Hand[pl.playedIdx]
		p.Hand = append(p.Hand[:pl.playedIdx], p.Hand[pl.playedIdx+1:]...)
		p.Played = append(p.Played, card)
		delta.CardPlayed = card.ID

	case AcquireCard:
		id := g.takeMarketSlot(pl.acquireSlot)
		p.Hand = append(p.Hand, OwnedCard{ID: id})
		delta.CardAcquired = id

	case UpgradeCard:
		if pl.upgradeInPlayed {
			p.Played[pl.upgradeIdx].Level += pl.upgradeLevels
		} else {
			p.Hand[pl.upgradeIdx].Level += pl.upgradeLevels
		}
		g.UpgradeCubes -= pl.upgradeLevels
		delta.CardUpgraded = a.Card

	case ClaimContract:
		id := g.takeContractSlot(pl.claimSlot)
		p.Claimed = append(p.Claimed, id)
		delta.ContractClaimed = id
		delta.Points = g.Catalog.Point[id].Points
		if pl.grantGold {
			g.GoldPool--
			p.GoldCoins++
			delta.GoldGranted = true
		}
		if pl.grantSilver {
			g.SilverPool--
			p.SilverCoins++
			delta.SilverGranted = true
		}

	case Rest:
		p.Hand = append(p.Hand, p.Played...)
		p.Played = nil
	}

	return delta
}
