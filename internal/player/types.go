package player

import "spiceroute/internal/engine"

// Player picks one action per turn. Implementations receive a read-only
// snapshot and the legal-action set and must return one of the legal
// actions; the engine re-validates whatever comes back.
type Player interface {
	Name() string
	ChooseAction(snap *engine.Snapshot, legal []engine.Action) (engine.Action, error)
}

type PlayerFactory func() Player
