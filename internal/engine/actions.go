package engine

import (
	"encoding/json"
	"fmt"
)

// ActionKind discriminates the closed set of action variants. Validator and
// Executor switch over it exhaustively, so a new action kind is a localized,
// compile-visible change.
type ActionKind int

const (
	KindGainBasic ActionKind = iota + 1
	KindPlayCard
	KindAcquireCard
	KindUpgradeCard
	KindClaimContract
	KindRest
)

var actionKindNames = map[ActionKind]string{
	KindGainBasic:     "gain_basic",
	KindPlayCard:      "play_card",
	KindAcquireCard:   "acquire_card",
	KindUpgradeCard:   "upgrade_card",
	KindClaimContract: "claim_contract",
	KindRest:          "rest",
}

func (k ActionKind) MarshalJSON() ([]byte, error) {
	name, ok := actionKindNames[k]
	if !ok {
		return nil, fmt.Errorf("unknown action kind %d", int(k))
	}
	return json.Marshal(name)
}

func (k *ActionKind) UnmarshalJSON(data []byte) error {
	var name string
	if err := json.Unmarshal(data, &name); err != nil {
		return err
	}
	for kind, n := range actionKindNames {
		if n == name {
			*k = kind
			return nil
		}
	}
	return fmt.Errorf("unknown action kind %q", name)
}

// Action is a proposed move. Implementations form a closed set.
type Action interface {
	Kind() ActionKind
}

// GainBasic takes up to the configured number of bottom-tier cubes from the
// supply. Taking fewer than the maximum is legal, e.g. to respect capacity.
type GainBasic struct {
	Count   int      `json:"count"`
	Discard SpiceSet `json:"discard,omitempty"`
}

func (GainBasic) Kind() ActionKind { return KindGainBasic }

// CubeUpgrade names one cube to upgrade and by how many steps.
type CubeUpgrade struct {
	From  Spice `json:"from"`
	Steps int   `json:"steps"`
}

// PlayCard uses a face-up merchant card from the acting player's hand at the
// card's current level. Times repeats an exchange effect; Upgrades
// distributes an upgrade effect's steps over chosen cubes.
type PlayCard struct {
	Card     CardID        `json:"card"`
	Times    int           `json:"times,omitempty"`
	Upgrades []CubeUpgrade `json:"upgrades,omitempty"`
	Discard  SpiceSet      `json:"discard,omitempty"`
}

func (PlayCard) Kind() ActionKind { return KindPlayCard }

// AcquireCard takes the market-row card at Slot, paying one cube per card
// strictly left of it. Payment cubes go to the shared market pool, not to
// the acquiring player.
type AcquireCard struct {
	Slot    int      `json:"slot"`
	Payment SpiceSet `json:"payment,omitempty"`
	Discard SpiceSet `json:"discard,omitempty"`
}

func (AcquireCard) Kind() ActionKind { return KindAcquireCard }

// UpgradeCard raises an owned merchant card's effect level, consuming one
// upgrade cube per level from the board track.
type UpgradeCard struct {
	Card   CardID `json:"card"`
	Levels int    `json:"levels"`
}

func (UpgradeCard) Kind() ActionKind { return KindUpgradeCard }

// ClaimContract surrenders the contract's cost to the general supply in
// exchange for the card and, while the slot's coin pool lasts, a claim-order
// bonus coin.
type ClaimContract struct {
	Contract CardID   `json:"contract"`
	Discard  SpiceSet `json:"discard,omitempty"`
}

func (ClaimContract) Kind() ActionKind { return KindClaimContract }

// Rest turns all face-down merchant cards face-up again. Always legal, never
// touches the caravan.
type Rest struct{}

func (Rest) Kind() ActionKind { return KindRest }

type actionEnvelope struct {
	Kind    ActionKind      `json:"kind"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// MarshalAction encodes an action as a tagged envelope, suitable for
// transport and replay logs.
func MarshalAction(a Action) ([]byte, error) {
	payload, err := json.Marshal(a)
	if err != nil {
		return nil, err
	}
	return json.Marshal(actionEnvelope{Kind: a.Kind(), Payload: payload})
}

// UnmarshalAction decodes a tagged envelope back into a concrete action.
func UnmarshalAction(data []byte) (Action, error) {
	var env actionEnvelope
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, err
	}
	var (
		act Action
		err error
	)
	switch env.Kind {
	case KindGainBasic:
		var a GainBasic
		err = unmarshalPayload(env.Payload, &a)
		act = a
	case KindPlayCard:
		var a PlayCard
		err = unmarshalPayload(env.Payload, &a)
		act = a
	case KindAcquireCard:
		var a AcquireCard
		err = unmarshalPayload(env.Payload, &a)
		act = a
	case KindUpgradeCard:
		var a UpgradeCard
		err = unmarshalPayload(env.Payload, &a)
		act = a
	case KindClaimContract:
		var a ClaimContract
		err = unmarshalPayload(env.Payload, &a)
		act = a
	case KindRest:
		act = Rest{}
	default:
		return nil, fmt.Errorf("unknown action kind %d", int(env.Kind))
	}
	if err != nil {
		return nil, err
	}
	return act, nil
}

func unmarshalPayload(raw json.RawMessage, dst any) error {
	if len(raw) == 0 {
		return nil
	}
	return json.Unmarshal(raw, dst)
}
