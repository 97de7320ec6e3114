package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/rs/zerolog/log"

	"spiceroute/internal/engine"
	"spiceroute/internal/player"
	"spiceroute/internal/ruleset"
)

// StartSimulation plays seeded bot-vs-bot games through the standard
// validate-then-execute path and logs the standings. Useful for soaking the
// rules engine and for reproducing a game from its seed.
func StartSimulation() {
	games := envInt("SIM_GAMES", 10)
	seats := envInt("SIM_PLAYERS", 2)
	baseSeed := int64(envInt("SIM_SEED", 1))
	maxTurns := envInt("SIM_MAX_TURNS", 2000)

	rules, err := loadRules()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load ruleset")
	}

	for i := 0; i < games; i++ {
		seed := baseSeed + int64(i)
		if err := runGame(rules, seats, seed, maxTurns); err != nil {
			log.Error().Err(err).Int64("seed", seed).Msg("simulation game failed")
		}
	}
}

func runGame(rules ruleset.Rules, seats int, seed int64, maxTurns int) error {
	ids := make([]engine.PlayerID, 0, seats)
	bots := map[engine.PlayerID]player.Player{}
	for s := 0; s < seats; s++ {
		id := engine.PlayerID(fmt.Sprintf("bot-%d", s+1))
		ids = append(ids, id)
		bots[id] = player.NewRandomBot(string(id), seed+int64(s)+1)
	}

	g, err := engine.NewGame(rules, engine.DefaultCatalog(), ids, engine.NewSeededShuffler(seed))
	if err != nil {
		return err
	}

	turns := 0
	for ; !g.Over() && turns < maxTurns; turns++ {
		cur := g.CurrentPlayer()
		legal := g.LegalActions(cur)
		act, err := bots[cur].ChooseAction(g.Snapshot(), legal)
		if err != nil {
			return fmt.Errorf("%s on turn %d: %w", cur, turns, err)
		}
		if _, err := g.ProposeAction(cur, act); err != nil {
			return fmt.Errorf("%s on turn %d: %w", cur, turns, err)
		}
	}
	if !g.Over() {
		log.Warn().Int64("seed", seed).Int("turns", turns).Msg("game hit the turn cap")
		return nil
	}

	standings, err := g.FinalStandings()
	if err != nil {
		return err
	}
	ev := log.Info().Int64("seed", seed).Int("turns", turns).Str("digest", g.Digest())
	for _, st := range standings {
		ev = ev.Int(string(st.Player), st.Score)
	}
	ev.Msg("game finished")
	return nil
}

func envInt(k string, def int) int {
	if v := os.Getenv(k); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}
