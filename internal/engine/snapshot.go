package engine

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"

	"spiceroute/internal/ruleset"
)

// SnapshotVersion guards the snapshot layout.
const SnapshotVersion = 1

// PlayerSnapshot is the serialized form of one player's state.
type PlayerSnapshot struct {
	ID      PlayerID    `json:"id"`
	Caravan SpiceSet    `json:"caravan"`
	Hand    []OwnedCard `json:"hand"`
	Played  []OwnedCard `json:"played"`
	Claimed []CardID    `json:"claimed"`
	Gold    int         `json:"gold"`
	Silver  int         `json:"silver"`
}

// Snapshot is a complete, deterministic serialization of a GameState,
// including deck order, sufficient to reconstruct an identical session for
// exact replay. Card definitions are not embedded; they come from the
// catalog on restore.
type Snapshot struct {
	Version int           `json:"version"`
	Rules   ruleset.Rules `json:"rules"`

	Players []PlayerSnapshot `json:"players"`
	Current int              `json:"current"`
	Round   int              `json:"round"`
	Phase   Phase            `json:"phase"`

	MarketRow   []CardID `json:"market_row"`
	ContractRow []CardID `json:"contract_row"`

	MerchantDeck    []CardID `json:"merchant_deck"`
	MerchantDiscard []CardID `json:"merchant_discard"`
	PointDeck       []CardID `json:"point_deck"`
	PointDiscard    []CardID `json:"point_discard"`

	Supply     SpiceSet `json:"supply"`
	MarketPool SpiceSet `json:"market_pool"`

	UpgradeCubes int `json:"upgrade_cubes"`
	GoldPool     int `json:"gold_pool"`
	SilverPool   int `json:"silver_pool"`

	EndTriggered bool `json:"end_triggered"`
	FinalTurns   int  `json:"final_turns"`
	Corrupted    bool `json:"corrupted,omitempty"`
}

func copyIDs(ids []CardID) []CardID { return append([]CardID(nil), ids...) }

func copyOwned(cards []OwnedCard) []OwnedCard { return append([]OwnedCard(nil), cards...) }

// Snapshot captures the current state.
func (g *GameState) Snapshot() *Snapshot {
	snap := &Snapshot{
		Version:         SnapshotVersion,
		Rules:           g.Rules,
		Current:         g.Current,
		Round:           g.Round,
		Phase:           g.Phase,
		MarketRow:       copyIDs(g.MarketRow),
		ContractRow:     copyIDs(g.ContractRow),
		MerchantDeck:    copyIDs(g.merchantDeck.cards),
		MerchantDiscard: copyIDs(g.merchantDeck.discard),
		PointDeck:       copyIDs(g.pointDeck.cards),
		PointDiscard:    copyIDs(g.pointDeck.discard),
		Supply:          g.Supply,
		MarketPool:      g.MarketPool,
		UpgradeCubes:    g.UpgradeCubes,
		GoldPool:        g.GoldPool,
		SilverPool:      g.SilverPool,
		EndTriggered:    g.EndTriggered,
		FinalTurns:      g.finalTurns,
		Corrupted:       g.corrupted,
	}
	for i := range g.Players {
		p := &g.Players[i]
		snap.Players = append(snap.Players, PlayerSnapshot{
			ID:      p.ID,
			Caravan: p.Caravan,
			Hand:    copyOwned(p.Hand),
			Played:  copyOwned(p.Played),
			Claimed: copyIDs(p.Claimed),
			Gold:    p.GoldCoins,
			Silver:  p.SilverCoins,
		})
	}
	return snap
}

// Encode renders the snapshot as canonical JSON.
func (s *Snapshot) Encode() ([]byte, error) { return json.Marshal(s) }

// DecodeSnapshot parses a snapshot produced by Encode.
func DecodeSnapshot(data []byte) (*Snapshot, error) {
	var s Snapshot
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, err
	}
	if s.Version != SnapshotVersion {
		return nil, fmt.Errorf("unsupported snapshot version %d", s.Version)
	}
	return &s, nil
}

// Digest is a stable fingerprint of the full state, used to compare replays.
func (g *GameState) Digest() string {
	raw, err := g.Snapshot().Encode()
	if err != nil {
		// Snapshot marshals plain structs and never fails in practice.
		return "digest-error:" + err.Error()
	}
	sum := sha256.Sum256(raw)
	return hex.EncodeToString(sum[:])
}

// Restore rebuilds a GameState from a snapshot. The shuffler only matters
// for reshuffles that happen after the restore point.
func Restore(snap *Snapshot, cat *Catalog, sh Shuffler) (*GameState, error) {
	if err := snap.Rules.Validate(); err != nil {
		return nil, err
	}
	for _, id := range snap.MarketRow {
		if _, ok := cat.Merchant[id]; !ok {
			return nil, fmt.Errorf("unknown merchant card %q in snapshot", id)
		}
	}
	for _, id := range snap.ContractRow {
		if _, ok := cat.Point[id]; !ok {
			return nil, fmt.Errorf("unknown point card %q in snapshot", id)
		}
	}
	g := &GameState{
		Rules:        snap.Rules,
		Catalog:      cat,
		Current:      snap.Current,
		Round:        snap.Round,
		Phase:        snap.Phase,
		MarketRow:    copyIDs(snap.MarketRow),
		ContractRow:  copyIDs(snap.ContractRow),
		Supply:       snap.Supply,
		MarketPool:   snap.MarketPool,
		UpgradeCubes: snap.UpgradeCubes,
		GoldPool:     snap.GoldPool,
		SilverPool:   snap.SilverPool,
		EndTriggered: snap.EndTriggered,
		merchantDeck: &Deck{cards: copyIDs(snap.MerchantDeck), discard: copyIDs(snap.MerchantDiscard)},
		pointDeck:    &Deck{cards: copyIDs(snap.PointDeck), discard: copyIDs(snap.PointDiscard)},
		shuffler:     sh,
		finalTurns:   snap.FinalTurns,
		corrupted:    snap.Corrupted,
	}
	for _, ps := range snap.Players {
		g.Players = append(g.Players, PlayerState{
			ID:          ps.ID,
			Caravan:     ps.Caravan,
			Hand:        copyOwned(ps.Hand),
			Played:      copyOwned(ps.Played),
			Claimed:     copyIDs(ps.Claimed),
			GoldCoins:   ps.Gold,
			SilverCoins: ps.Silver,
		})
	}
	if len(g.Players) == 0 {
		return nil, fmt.Errorf("snapshot has no players")
	}
	if g.Current < 0 || g.Current >= len(g.Players) {
		return nil, fmt.Errorf("snapshot current player index out of range")
	}
	return g, nil
}
