package ruleset

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultValidates(t *testing.T) {
	if err := Default().Validate(); err != nil {
		t.Fatalf("default tables invalid: %v", err)
	}
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rules.yaml")
	raw := "caravan_capacity: 12\nend_contracts:\n  two_to_three: 4\n"
	if err := os.WriteFile(path, []byte(raw), 0o644); err != nil {
		t.Fatal(err)
	}

	r, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if r.CaravanCapacity != 12 {
		t.Fatalf("caravan capacity: got %d", r.CaravanCapacity)
	}
	if r.EndContracts.For(2) != 4 || r.EndContracts.For(4) != 5 {
		t.Fatalf("end contracts: %+v", r.EndContracts)
	}
	if r.MarketRowSize != 6 || r.BasicGain != 2 {
		t.Fatal("untouched defaults were lost")
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Fatal("expected error for a missing file")
	}
}

func TestLoadRejectsInvalidTables(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rules.yaml")
	if err := os.WriteFile(path, []byte("supply_per_kind: 3\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Fatal("expected validation error")
	}
}

func TestValidate(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Rules)
	}{
		{"bad player range", func(r *Rules) { r.MaxPlayers = 1 }},
		{"zero capacity", func(r *Rules) { r.CaravanCapacity = 0 }},
		{"zero basic gain", func(r *Rules) { r.BasicGain = 0 }},
		{"no cube values", func(r *Rules) { r.CubeValues = nil }},
		{"zero end threshold", func(r *Rules) { r.EndContracts.TwoToThree = 0 }},
		{"missing seats", func(r *Rules) { r.StartingCaravans = r.StartingCaravans[:2] }},
		{"oversized opening caravan", func(r *Rules) { r.StartingCaravans[0] = []int{99} }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r := Default()
			tc.mutate(&r)
			if err := r.Validate(); err == nil {
				t.Fatal("expected validation error")
			}
		})
	}
}

func TestEndContractsFor(t *testing.T) {
	e := EndContracts{TwoToThree: 6, FourToFive: 5}
	for n, want := range map[int]int{2: 6, 3: 6, 4: 5, 5: 5} {
		if got := e.For(n); got != want {
			t.Fatalf("threshold for %d players: got %d, want %d", n, got, want)
		}
	}
}
