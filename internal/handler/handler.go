// Package handler exposes the engine over HTTP for session drivers: a small
// lobby, game creation, legal-move enumeration, and the propose-action
// endpoint. The engine itself stays single-threaded; each session is guarded
// by its own lock.
package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"

	"spiceroute/internal/engine"
	"spiceroute/internal/ruleset"
	"spiceroute/internal/store"
)

type Handler struct {
	rules ruleset.Rules
	st    *store.Store // nil disables persistence

	mu       sync.Mutex
	players  map[string]LobbyPlayer
	sessions map[string]*session
}

// LobbyPlayer is a registered identity.
type LobbyPlayer struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type session struct {
	mu    sync.Mutex
	id    string
	seed  int64
	game  *engine.GameState
	saved bool
}

func New(rules ruleset.Rules, st *store.Store) *Handler {
	return &Handler{
		rules:    rules,
		st:       st,
		players:  map[string]LobbyPlayer{},
		sessions: map[string]*session{},
	}
}

// Register mounts all routes on e.
func (h *Handler) Register(e *echo.Echo) {
	e.POST("/player", h.AddPlayer)
	e.GET("/player", h.ListPlayers)
	e.POST("/game", h.CreateGame)
	e.GET("/game/:id", h.GetGame)
	e.GET("/game/:id/actions", h.LegalActions)
	e.POST("/game/:id/action", h.ProposeAction)
	e.GET("/results", h.ListResults)
}

func (h *Handler) AddPlayer(c echo.Context) error {
	var req struct {
		Name string `json:"name"`
	}
	if err := c.Bind(&req); err != nil || req.Name == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "name is required"})
	}
	p := LobbyPlayer{ID: uuid.NewString(), Name: req.Name}
	h.mu.Lock()
	h.players[p.ID] = p
	h.mu.Unlock()
	return c.JSON(http.StatusCreated, p)
}

func (h *Handler) ListPlayers(c echo.Context) error {
	h.mu.Lock()
	out := make([]LobbyPlayer, 0, len(h.players))
	for _, p := range h.players {
		out = append(out, p)
	}
	h.mu.Unlock()
	return c.JSON(http.StatusOK, out)
}

func (h *Handler) CreateGame(c echo.Context) error {
	var req struct {
		Players []engine.PlayerID `json:"players"`
		Seed    int64             `json:"seed"`
	}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "bad request body"})
	}
	seed := req.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	game, err := engine.NewGame(h.rules, engine.DefaultCatalog(), req.Players, engine.NewSeededShuffler(seed))
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	s := &session{id: uuid.NewString(), seed: seed, game: game}
	h.mu.Lock()
	h.sessions[s.id] = s
	h.mu.Unlock()
	log.Info().Str("session", s.id).Int64("seed", seed).Int("players", len(req.Players)).Msg("game created")
	return c.JSON(http.StatusCreated, echo.Map{"id": s.id, "seed": seed, "state": game.Snapshot()})
}

func (h *Handler) session(id string) *session {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.sessions[id]
}

func (h *Handler) GetGame(c echo.Context) error {
	s := h.session(c.Param("id"))
	if s == nil {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "no such game"})
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return c.JSON(http.StatusOK, echo.Map{"id": s.id, "state": s.game.Snapshot()})
}

func (h *Handler) LegalActions(c echo.Context) error {
	s := h.session(c.Param("id"))
	if s == nil {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "no such game"})
	}
	player := engine.PlayerID(c.QueryParam("player"))
	s.mu.Lock()
	defer s.mu.Unlock()
	legal := s.game.LegalActions(player)
	out := make([]json.RawMessage, 0, len(legal))
	for _, a := range legal {
		raw, err := engine.MarshalAction(a)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
		}
		out = append(out, raw)
	}
	return c.JSON(http.StatusOK, echo.Map{"player": player, "actions": out})
}

func (h *Handler) ProposeAction(c echo.Context) error {
	s := h.session(c.Param("id"))
	if s == nil {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "no such game"})
	}
	var req struct {
		Player engine.PlayerID `json:"player"`
		Action json.RawMessage `json:"action"`
	}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "bad request body"})
	}
	act, err := engine.UnmarshalAction(req.Action)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	delta, err := s.game.ProposeAction(req.Player, act)
	if err != nil {
		if im, ok := engine.AsIllegalMove(err); ok {
			return c.JSON(http.StatusConflict, echo.Map{"reason": im.Reason, "detail": im.Detail})
		}
		var inv *engine.InvariantError
		if errors.As(err, &inv) || errors.Is(err, engine.ErrSessionCorrupted) {
			log.Error().Err(err).Str("session", s.id).Msg("session aborted")
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
		}
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}

	resp := echo.Map{"delta": delta}
	if s.game.Over() {
		standings, err := s.game.FinalStandings()
		if err == nil {
			resp["standings"] = standings
			h.saveResult(s, standings)
		}
	}
	return c.JSON(http.StatusOK, resp)
}

// saveResult archives a finished session once. Persistence failures are
// logged, not surfaced: the game result already happened.
func (h *Handler) saveResult(s *session, standings []engine.Standing) {
	if h.st == nil || s.saved {
		return
	}
	s.saved = true
	players := make([]engine.PlayerID, 0, len(s.game.Players))
	for i := range s.game.Players {
		players = append(players, s.game.Players[i].ID)
	}
	r := store.Result{
		ID:         s.id,
		FinishedAt: time.Now(),
		Seed:       s.seed,
		Players:    players,
		Standings:  standings,
		Digest:     s.game.Digest(),
	}
	if err := h.st.SaveResult(context.Background(), r, s.game.Snapshot()); err != nil {
		log.Error().Err(err).Str("session", s.id).Msg("failed to store result")
	}
}

func (h *Handler) ListResults(c echo.Context) error {
	if h.st == nil {
		return c.JSON(http.StatusOK, []store.Result{})
	}
	results, err := h.st.ListResults(c.Request().Context(), 50)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
	}
	if results == nil {
		results = []store.Result{}
	}
	return c.JSON(http.StatusOK, results)
}
