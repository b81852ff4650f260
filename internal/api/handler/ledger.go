package handler

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/mcoot/upmpoly/internal/api/response"
	"github.com/mcoot/upmpoly/internal/services/economy"
	"github.com/mcoot/upmpoly/internal/services/query"
)

// LedgerHandler handles asset-level and administrative endpoints
type LedgerHandler struct {
	economy *economy.Controller
	query   *query.Service
}

// NewLedgerHandler creates a new ledger handler
func NewLedgerHandler(economyController *economy.Controller, queryService *query.Service) *LedgerHandler {
	return &LedgerHandler{
		economy: economyController,
		query:   queryService,
	}
}

// Seed handles POST /api/v1/ledger/seed
func (h *LedgerHandler) Seed(w http.ResponseWriter, r *http.Request) {
	players, err := h.economy.SeedLedger(r.Context(), economy.DefaultSeed)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusCreated, response.PlayersFromModel(players))
}

// Exists handles GET /api/v1/assets/{id}/exists
func (h *LedgerHandler) Exists(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	exists, err := h.query.AssetExists(r.Context(), id)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.Exists{ID: id, Exists: exists})
}

// Delete handles DELETE /api/v1/assets/{id}
func (h *LedgerHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.economy.Delete(r.Context(), mux.Vars(r)["id"]); err != nil {
		WriteError(w, err)
		return
	}

	response.NoContent(w)
}
