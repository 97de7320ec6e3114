package engine

import "math/rand"

// Shuffler supplies the only randomness the engine uses. Injecting it keeps
// every game replayable from a seed.
type Shuffler interface {
	Shuffle(n int, swap func(i, j int))
}

// SeededShuffler shuffles with a private math/rand source.
type SeededShuffler struct {
	rng *rand.Rand
}

// NewSeededShuffler returns a shuffler whose permutations are fully
// determined by seed.
func NewSeededShuffler(seed int64) *SeededShuffler {
	return &SeededShuffler{rng: rand.New(rand.NewSource(seed))}
}

func (s *SeededShuffler) Shuffle(n int, swap func(i, j int)) {
	s.rng.Shuffle(n, swap)
}

// Deck is a shuffled draw pile with a discard pile it can be rebuilt from.
type Deck struct {
	cards   []CardID
	discard []CardID
}

// NewDeck copies ids into a deck and shuffles it.
func NewDeck(ids []CardID, sh Shuffler) *Deck {
	d := &Deck{cards: append([]CardID(nil), ids...)}
	sh.Shuffle(len(d.cards), func(i, j int) {
		d.cards[i], d.cards[j] = d.cards[j], d.cards[i]
	})
	return d
}

// Draw removes and returns the top card.
func (d *Deck) Draw() (CardID, error) {
	if len(d.cards) == 0 {
		return "", ErrEmptyDeck
	}
	top := d.cards[len(d.cards)-1]
	d.cards = d.cards[:len(d.cards)-1]
	return top, nil
}

// Discard adds a card to the discard pile.
func (d *Deck) Discard(id CardID) {
	d.discard = append(d.discard, id)
}

// Reshuffle moves the discard pile back into the draw pile and re-randomizes
// it.
func (d *Deck) Reshuffle(sh Shuffler) {
	d.cards = append(d.cards, d.discard...)
	d.discard = nil
	sh.Shuffle(len(d.cards), func(i, j int) {
		d.cards[i], d.cards[j] = d.cards[j], d.cards[i]
	})
}

// DrawRefill draws for a row refill: an exhausted draw pile is first rebuilt
// from the discard pile. The second return is false only when both piles are
// empty, the permitted terminal condition in which a row shrinks.
func (d *Deck) DrawRefill(sh Shuffler) (CardID, bool) {
	if len(d.cards) == 0 && len(d.discard) > 0 {
		d.Reshuffle(sh)
	}
	id, err := d.Draw()
	if err != nil {
		return "", false
	}
	return id, true
}

// Len is the number of undrawn cards.
func (d *Deck) Len() int { return len(d.cards) }

// DiscardLen is the size of the discard pile.
func (d *Deck) DiscardLen() int { return len(d.discard) }
