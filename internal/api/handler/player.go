package handler

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/mcoot/upmpoly/internal/api/request"
	"github.com/mcoot/upmpoly/internal/api/response"
	"github.com/mcoot/upmpoly/internal/model"
	"github.com/mcoot/upmpoly/internal/services/economy"
	"github.com/mcoot/upmpoly/internal/services/query"
)

// PlayerHandler handles player-related endpoints
type PlayerHandler struct {
	economy *economy.Controller
	query   *query.Service
}

// NewPlayerHandler creates a new player handler
func NewPlayerHandler(economyController *economy.Controller, queryService *query.Service) *PlayerHandler {
	return &PlayerHandler{
		economy: economyController,
		query:   queryService,
	}
}

func playerID(r *http.Request) model.PlayerID {
	return model.PlayerID(mux.Vars(r)["id"])
}

// Create handles POST /api/v1/players
func (h *PlayerHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req request.CreatePlayerRequest
	if err := request.Decode(r, &req); err != nil {
		WriteError(w, NewInvalidRequestError(err.Error()))
		return
	}

	player, err := h.economy.CreatePlayer(r.Context(), model.PlayerID(req.ID), req.Name, *req.Credit)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusCreated, response.PlayerFromModel(player))
}

// List handles GET /api/v1/players
func (h *PlayerHandler) List(w http.ResponseWriter, r *http.Request) {
	players, err := h.query.ListPlayers(r.Context())
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.PlayersFromModel(players))
}

// ListActive handles GET /api/v1/players/active
func (h *PlayerHandler) ListActive(w http.ResponseWriter, r *http.Request) {
	names, err := h.query.ListActivePlayerNames(r.Context())
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.Names{Names: names})
}

// Get handles GET /api/v1/players/{id}
func (h *PlayerHandler) Get(w http.ResponseWriter, r *http.Request) {
	player, err := h.query.GetPlayer(r.Context(), playerID(r))
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.PlayerFromModel(player))
}

// Credit handles GET /api/v1/players/{id}/credit
func (h *PlayerHandler) Credit(w http.ResponseWriter, r *http.Request) {
	id := playerID(r)
	credit, err := h.query.PlayerCredit(r.Context(), id)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.Credit{PlayerID: string(id), Credit: credit})
}

// Eliminated handles GET /api/v1/players/{id}/eliminated
func (h *PlayerHandler) Eliminated(w http.ResponseWriter, r *http.Request) {
	id := playerID(r)
	eliminated, err := h.query.PlayerEliminated(r.Context(), id)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.Eliminated{PlayerID: string(id), Eliminated: eliminated})
}
