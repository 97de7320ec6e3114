package player

import (
	"errors"
	"math/rand"
	"strconv"

	"spiceroute/internal/engine"
)

// RandomBot picks uniformly among the legal actions. With a fixed seed its
// whole game is reproducible.
type RandomBot struct {
	BotName string
	rng     *rand.Rand
}

func NewRandomBot(name string, seed int64) *RandomBot {
	return &RandomBot{BotName: name, rng: rand.New(rand.NewSource(seed))}
}

func (b *RandomBot) Name() string {
	if b.BotName == "" {
		b.BotName = "RandomBot_" + strconv.Itoa(rand.Intn(100))
	}
	return b.BotName
}

func (b *RandomBot) ChooseAction(_ *engine.Snapshot, legal []engine.Action) (engine.Action, error) {
	if len(legal) == 0 {
		return nil, errors.New("no legal actions")
	}
	return legal[b.rng.Intn(len(legal))], nil
}
