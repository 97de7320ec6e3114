package main

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"spiceroute/internal/handler"
	"spiceroute/internal/ruleset"
	"spiceroute/internal/store"
)

func main() {
	_ = godotenv.Load()
	if lvl, err := zerolog.ParseLevel(getEnv("LOG_LEVEL", "info")); err == nil {
		zerolog.SetGlobalLevel(lvl)
	}

	if len(os.Args) > 1 && os.Args[1] == "simulation" {
		StartSimulation()
		return
	}

	rules, err := loadRules()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load ruleset")
	}

	st, err := store.Open(getEnv("DB_PATH", "./data/spiceroute.db"))
	if err != nil {
		log.Fatal().Err(err).Msg("failed to open results store")
	}
	defer st.Close()

	h := handler.New(rules, st)

	e := echo.New()

	e.Use(middleware.Logger())
	e.Use(middleware.Recover())

	e.GET("/ping", func(c echo.Context) error {
		return c.String(200, "pong")
	})

	h.Register(e)

	httpPort := getEnv("HTTP_PORT", "1337")
	log.Info().Str("port", httpPort).Msg("starting spiceroute")
	e.Logger.Fatal(e.Start(":" + httpPort))
}

// loadRules reads RULESET_PATH when set, else uses the published tables.
func loadRules() (ruleset.Rules, error) {
	if path := os.Getenv("RULESET_PATH"); path != "" {
		return ruleset.Load(path)
	}
	return ruleset.Default(), nil
}

func getEnv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
