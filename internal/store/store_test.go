package store

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"
	"time"

	"spiceroute/internal/engine"
	"spiceroute/internal/ruleset"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "games.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func testGame(t *testing.T) *engine.GameState {
	t.Helper()
	g, err := engine.NewGame(ruleset.Default(), engine.DefaultCatalog(),
		[]engine.PlayerID{"a", "b"}, engine.NewSeededShuffler(11))
	if err != nil {
		t.Fatalf("new game: %v", err)
	}
	return g
}

func TestSaveAndLoadSnapshot(t *testing.T) {
	s := openTestStore(t)
	g := testGame(t)
	ctx := context.Background()

	r := Result{
		ID:         "game-1",
		FinishedAt: time.Now(),
		Seed:       11,
		Players:    []engine.PlayerID{"a", "b"},
		Digest:     g.Digest(),
	}
	if err := s.SaveResult(ctx, r, g.Snapshot()); err != nil {
		t.Fatalf("save: %v", err)
	}

	loaded, err := s.LoadSnapshot(ctx, "game-1")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	want, _ := g.Snapshot().Encode()
	got, err := loaded.Encode()
	if err != nil {
		t.Fatalf("encode loaded snapshot: %v", err)
	}
	if !bytes.Equal(got, want) {
		t.Fatal("snapshot changed across the round trip")
	}
}

func TestLoadSnapshotUnknownID(t *testing.T) {
	s := openTestStore(t)
	if _, err := s.LoadSnapshot(context.Background(), "missing"); err == nil {
		t.Fatal("expected error for an unknown game")
	}
}

func TestListResults(t *testing.T) {
	s := openTestStore(t)
	g := testGame(t)
	ctx := context.Background()

	for i, id := range []string{"older", "newer"} {
		r := Result{
			ID:         id,
			FinishedAt: time.Now().Add(time.Duration(i) * time.Minute),
			Seed:       int64(i),
			Players:    []engine.PlayerID{"a", "b"},
			Standings:  []engine.Standing{{Player: "a", Rank: 1}, {Player: "b", Rank: 2}},
			Digest:     g.Digest(),
		}
		if err := s.SaveResult(ctx, r, g.Snapshot()); err != nil {
			t.Fatalf("save %s: %v", id, err)
		}
	}

	results, err := s.ListResults(ctx, 10)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(results) != 2 || results[0].ID != "newer" {
		t.Fatalf("results: %+v", results)
	}
	if len(results[0].Standings) != 2 || results[0].Standings[0].Player != "a" {
		t.Fatalf("standings round trip: %+v", results[0].Standings)
	}
}

func TestSaveResultIsIdempotentPerID(t *testing.T) {
	s := openTestStore(t)
	g := testGame(t)
	ctx := context.Background()

	r := Result{ID: "dup", FinishedAt: time.Now(), Players: []engine.PlayerID{"a", "b"}}
	if err := s.SaveResult(ctx, r, g.Snapshot()); err != nil {
		t.Fatal(err)
	}
	if err := s.SaveResult(ctx, r, g.Snapshot()); err != nil {
		t.Fatal(err)
	}
	results, err := s.ListResults(ctx, 10)
	if err != nil {
		t.Fatal(err)
	}
	if len(results) != 1 {
		t.Fatalf("expected one row, got %d", len(results))
	}
}
