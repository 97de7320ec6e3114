//go:generate stringer -type=Spice,Phase -linecomment

package engine

// Spice represents one cube kind, ordered by value tier.
type Spice int

const (
	Turmeric Spice = iota + 1 // turmeric
	Saffron                   // saffron
	Cardamom                  // cardamom
	Cinnamon                  // cinnamon
)

// NumSpices is the number of cube kinds.
const NumSpices = 4

// Valid reports whether s names a real cube kind.
func (s Spice) Valid() bool {
	return s >= Turmeric && s <= Cinnamon
}

// Tier returns the value tier of the cube, 1 being the lowest.
func (s Spice) Tier() int { return int(s) }

// Upgrade raises a single cube by the given number of steps along
// Turmeric -> Saffron -> Cardamom -> Cinnamon.
func (s Spice) Upgrade(steps int) (Spice, error) {
	if steps <= 0 {
		return s, ErrUpgradeNoSteps
	}
	target := Spice(int(s) + steps)
	if target > Cinnamon {
		return s, ErrUpgradePastTop
	}
	return target, nil
}

// SpiceSet is a cube multiset, indexed by kind. It is a small value type;
// all arithmetic returns new sets.
type SpiceSet [NumSpices]int

// Spices builds a set from counts in tier order.
func Spices(turmeric, saffron, cardamom, cinnamon int) SpiceSet {
	return SpiceSet{turmeric, saffron, cardamom, cinnamon}
}

// Count returns how many cubes of kind s the set holds.
func (a SpiceSet) Count(s Spice) int { return a[s-1] }

// Total returns the number of cubes in the set.
func (a SpiceSet) Total() int {
	t := 0
	for _, n := range a {
		t += n
	}
	return t
}

// IsZero reports whether the set is empty.
func (a SpiceSet) IsZero() bool { return a == SpiceSet{} }

// Plus returns the element-wise sum.
func (a SpiceSet) Plus(b SpiceSet) SpiceSet {
	for i, n := range b {
		a[i] += n
	}
	return a
}

// Minus returns a-b and whether the subtraction stayed non-negative.
func (a SpiceSet) Minus(b SpiceSet) (SpiceSet, bool) {
	ok := true
	for i, n := range b {
		a[i] -= n
		if a[i] < 0 {
			ok = false
		}
	}
	return a, ok
}

// Contains reports whether a holds at least every cube in b.
func (a SpiceSet) Contains(b SpiceSet) bool {
	_, ok := a.Minus(b)
	return ok
}

// Scale returns the set repeated k times.
func (a SpiceSet) Scale(k int) SpiceSet {
	for i := range a {
		a[i] *= k
	}
	return a
}

// WithSpice returns the set with n extra cubes of kind s.
func (a SpiceSet) WithSpice(s Spice, n int) SpiceSet {
	a[s-1] += n
	return a
}

// PlayerID identifies a player.
type PlayerID string

// CardID identifies a catalog card. Per-game structures carry IDs only;
// the card data itself lives in the immutable Catalog.
type CardID string

// OwnedCard is a merchant card in a player's possession together with its
// current effect level (0 = base, 1 = upgraded).
type OwnedCard struct {
	ID    CardID `json:"id"`
	Level int    `json:"level"`
}

// MaxCardLevel is the highest effect level a merchant card can reach.
const MaxCardLevel = 1

// PlayerState is everything one player owns.
type PlayerState struct {
	ID      PlayerID
	Caravan SpiceSet

	// Hand holds face-up merchant cards, Played the face-down ones spent
	// since the last rest.
	Hand   []OwnedCard
	Played []OwnedCard

	// Claimed lists contracts in claim order.
	Claimed []CardID

	GoldCoins   int
	SilverCoins int
}

// claimedPoints sums the victory points of the claimed contracts.
func (p *PlayerState) claimedPoints(cat *Catalog) int {
	pts := 0
	for _, id := range p.Claimed {
		pts += cat.Point[id].Points
	}
	return pts
}

// handIndex finds a card in the hand, -1 if absent.
func (p *PlayerState) handIndex(id CardID) int {
	for i, c := range p.Hand {
		if c.ID == id {
			return i
		}
	}
	return -1
}

// playedIndex finds a card in the face-down pile, -1 if absent.
func (p *PlayerState) playedIndex(id CardID) int {
	for i, c := range p.Played {
		if c.ID == id {
			return i
		}
	}
	return -1
}

// Phase represents the turn-machine phase.
type Phase int

const (
	PhasePlay       Phase = iota // play
	PhaseFinalRound              // final round
	PhaseGameOver                // game over
)

// StateDelta summarizes what a single executed action changed, for
// presentation layers.
type StateDelta struct {
	Player PlayerID   `json:"player"`
	Action ActionKind `json:"action"`

	Gained    SpiceSet `json:"gained"`
	Spent     SpiceSet `json:"spent"`
	Discarded SpiceSet `json:"discarded"`

	CardPlayed      CardID `json:"card_played,omitempty"`
	CardAcquired    CardID `json:"card_acquired,omitempty"`
	CardUpgraded    CardID `json:"card_upgraded,omitempty"`
	ContractClaimed CardID `json:"contract_claimed,omitempty"`
	Points          int    `json:"points,omitempty"`

	GoldGranted   bool `json:"gold_granted,omitempty"`
	SilverGranted bool `json:"silver_granted,omitempty"`

	EndGameTriggered bool     `json:"end_game_triggered,omitempty"`
	Phase            Phase    `json:"phase"`
	NextPlayer       PlayerID `json:"next_player,omitempty"`
}
