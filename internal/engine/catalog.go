package engine

import "fmt"

// EffectKind discriminates merchant card effects.
type EffectKind int

const (
	EffectGain     EffectKind = iota + 1 // gain cubes from the supply
	EffectExchange                       // trade one cube set for another
	EffectUpgrade                        // upgrade single cubes by steps
)

// Effect is one level of a merchant card.
type Effect struct {
	Kind EffectKind

	Gain     SpiceSet // EffectGain
	From, To SpiceSet // EffectExchange
	Steps    int      // EffectUpgrade
}

// MerchantCard converts cubes. Levels[0] is the base effect, Levels[1] the
// upgraded one.
type MerchantCard struct {
	ID     CardID
	Levels [MaxCardLevel + 1]Effect
}

// Effect returns the card's effect at the given level.
func (c MerchantCard) Effect(level int) Effect {
	if level < 0 {
		level = 0
	}
	if level > MaxCardLevel {
		level = MaxCardLevel
	}
	return c.Levels[level]
}

// PointCard is surrendered-cubes-for-points. Tier groups cards by point
// bracket for scoring and hinting.
type PointCard struct {
	ID     CardID
	Points int
	Cost   SpiceSet
	Tier   int
}

// Catalog is the immutable lookup table of all card definitions. Decks and
// player state reference cards by ID only.
type Catalog struct {
	Merchant map[CardID]MerchantCard
	Point    map[CardID]PointCard

	// StartingHand is dealt to every player and never enters the deck.
	StartingHand []CardID

	// MerchantDeck and PointDeck list the deck contents in catalog order,
	// before shuffling.
	MerchantDeck []CardID
	PointDeck    []CardID
}

func gain(t, s, c, n int) Effect {
	return Effect{Kind: EffectGain, Gain: Spices(t, s, c, n)}
}

func exchange(from, to SpiceSet) Effect {
	return Effect{Kind: EffectExchange, From: from, To: to}
}

func upgrade(steps int) Effect {
	return Effect{Kind: EffectUpgrade, Steps: steps}
}

func card(id CardID, base, upgraded Effect) MerchantCard {
	return MerchantCard{ID: id, Levels: [MaxCardLevel + 1]Effect{base, upgraded}}
}

// pointTier buckets a point value into a tier.
func pointTier(points int) int {
	switch {
	case points < 10:
		return 1
	case points < 15:
		return 2
	default:
		return 3
	}
}

// DefaultCatalog builds the base-game card set.
func DefaultCatalog() *Catalog {
	merchant := []MerchantCard{
		// Starting cards, one copy per player, outside the deck.
		card("s1", gain(2, 0, 0, 0), gain(3, 0, 0, 0)),
		card("s2", upgrade(2), upgrade(3)),

		// Gain cards.
		card("m01", gain(3, 0, 0, 0), gain(4, 0, 0, 0)),
		card("m02", gain(4, 0, 0, 0), gain(5, 0, 0, 0)),
		card("m03", gain(1, 1, 0, 0), gain(2, 1, 0, 0)),
		card("m04", gain(2, 1, 0, 0), gain(2, 2, 0, 0)),
		card("m05", gain(0, 2, 0, 0), gain(0, 3, 0, 0)),
		card("m06", gain(0, 0, 1, 0), gain(1, 0, 1, 0)),
		card("m07", gain(1, 0, 1, 0), gain(0, 1, 1, 0)),
		card("m08", gain(0, 0, 0, 1), gain(1, 0, 0, 1)),

		// The single upgrade card in the deck.
		card("m09", upgrade(3), upgrade(4)),

		// Exchange cards.
		card("m10", exchange(Spices(2, 0, 0, 0), Spices(0, 0, 1, 0)), exchange(Spices(2, 0, 0, 0), Spices(0, 1, 1, 0))),
		card("m11", exchange(Spices(3, 0, 0, 0), Spices(0, 0, 0, 1)), exchange(Spices(3, 0, 0, 0), Spices(0, 1, 0, 1))),
		card("m12", exchange(Spices(0, 0, 1, 0), Spices(0, 2, 0, 0)), exchange(Spices(0, 0, 1, 0), Spices(1, 2, 0, 0))),
		card("m13", exchange(Spices(0, 0, 0, 1), Spices(0, 0, 2, 0)), exchange(Spices(0, 0, 0, 1), Spices(1, 0, 2, 0))),
		card("m14", exchange(Spices(0, 2, 0, 0), Spices(0, 0, 0, 1)), exchange(Spices(0, 2, 0, 0), Spices(1, 0, 0, 1))),
		card("m15", exchange(Spices(1, 1, 0, 0), Spices(0, 0, 1, 0)), exchange(Spices(1, 1, 0, 0), Spices(1, 0, 1, 0))),
		card("m16", exchange(Spices(0, 0, 3, 0), Spices(0, 0, 0, 2)), exchange(Spices(0, 0, 3, 0), Spices(0, 1, 0, 2))),
		card("m17", exchange(Spices(0, 1, 1, 0), Spices(0, 0, 0, 1)), exchange(Spices(0, 1, 1, 0), Spices(1, 0, 0, 1))),
		card("m18", exchange(Spices(4, 0, 0, 0), Spices(0, 1, 0, 1)), exchange(Spices(4, 0, 0, 0), Spices(0, 0, 1, 1))),
		card("m19", exchange(Spices(3, 0, 0, 0), Spices(0, 2, 0, 0)), exchange(Spices(3, 0, 0, 0), Spices(1, 2, 0, 0))),
	}

	costs := []struct {
		points int
		cost   [NumSpices]int
	}{
		{6, [NumSpices]int{2, 2, 0, 0}},
		{7, [NumSpices]int{3, 2, 0, 0}},
		{8, [NumSpices]int{2, 3, 0, 0}},
		{8, [NumSpices]int{0, 4, 0, 0}},
		{8, [NumSpices]int{2, 0, 2, 0}},
		{9, [NumSpices]int{3, 0, 2, 0}},
		{9, [NumSpices]int{2, 1, 0, 1}},
		{10, [NumSpices]int{0, 5, 0, 0}},
		{10, [NumSpices]int{0, 2, 2, 0}},
		{10, [NumSpices]int{2, 0, 0, 2}},
		{11, [NumSpices]int{2, 0, 3, 0}},
		{11, [NumSpices]int{3, 0, 0, 2}},
		{12, [NumSpices]int{0, 2, 0, 2}},
		{12, [NumSpices]int{1, 1, 1, 1}},
		{12, [NumSpices]int{0, 2, 1, 1}},
		{12, [NumSpices]int{0, 0, 4, 0}},
		{12, [NumSpices]int{1, 0, 2, 1}},
		{12, [NumSpices]int{0, 3, 2, 0}},
		{13, [NumSpices]int{2, 2, 2, 0}},
		{13, [NumSpices]int{0, 2, 3, 0}},
		{14, [NumSpices]int{2, 0, 0, 3}},
		{14, [NumSpices]int{0, 3, 0, 2}},
		{14, [NumSpices]int{0, 0, 2, 2}},
		{14, [NumSpices]int{3, 1, 1, 1}},
		{15, [NumSpices]int{0, 0, 5, 0}},
		{15, [NumSpices]int{2, 2, 0, 2}},
		{16, [NumSpices]int{0, 0, 0, 4}},
		{16, [NumSpices]int{0, 2, 0, 3}},
		{16, [NumSpices]int{1, 3, 1, 1}},
		{17, [NumSpices]int{0, 0, 3, 2}},
		{17, [NumSpices]int{2, 0, 2, 2}},
		{18, [NumSpices]int{0, 0, 2, 3}},
		{18, [NumSpices]int{1, 1, 3, 1}},
		{19, [NumSpices]int{0, 2, 2, 2}},
		{20, [NumSpices]int{0, 0, 0, 5}},
		{20, [NumSpices]int{1, 1, 1, 3}},
	}

	cat := &Catalog{
		Merchant:     make(map[CardID]MerchantCard, len(merchant)),
		Point:        make(map[CardID]PointCard, len(costs)),
		StartingHand: []CardID{"s1", "s2"},
	}
	for _, m := range merchant {
		cat.Merchant[m.ID] = m
		if m.ID != "s1" && m.ID != "s2" {
			cat.MerchantDeck = append(cat.MerchantDeck, m.ID)
		}
	}
	for i, pc := range costs {
		id := CardID(fmt.Sprintf("p%02d", i+1))
		cat.Point[id] = PointCard{
			ID:     id,
			Points: pc.points,
			Cost:   SpiceSet(pc.cost),
			Tier:   pointTier(pc.points),
		}
		cat.PointDeck = append(cat.PointDeck, id)
	}
	return cat
}
