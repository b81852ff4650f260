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

// FacultyHandler handles faculty reads and the economic transitions
type FacultyHandler struct {
	economy *economy.Controller
	query   *query.Service
}

// NewFacultyHandler creates a new faculty handler
func NewFacultyHandler(economyController *economy.Controller, queryService *query.Service) *FacultyHandler {
	return &FacultyHandler{
		economy: economyController,
		query:   queryService,
	}
}

func facultyID(r *http.Request) model.FacultyID {
	return model.FacultyID(mux.Vars(r)["id"])
}

// Create handles POST /api/v1/faculties
func (h *FacultyHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req request.CreateFacultyRequest
	if err := request.Decode(r, &req); err != nil {
		WriteError(w, NewInvalidRequestError(err.Error()))
		return
	}

	faculty, err := h.economy.CreateFaculty(r.Context(), model.FacultyID(req.ID), req.Name, *req.SalePrice, *req.RentalFee)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusCreated, response.FacultyFromModel(faculty))
}

// List handles GET /api/v1/faculties
func (h *FacultyHandler) List(w http.ResponseWriter, r *http.Request) {
	faculties, err := h.query.ListFaculties(r.Context())
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.FacultiesFromModel(faculties))
}

// Get handles GET /api/v1/faculties/{id}
func (h *FacultyHandler) Get(w http.ResponseWriter, r *http.Request) {
	faculty, err := h.query.GetFaculty(r.Context(), facultyID(r))
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.FacultyFromModel(faculty))
}

// Owner handles GET /api/v1/faculties/{id}/owner
func (h *FacultyHandler) Owner(w http.ResponseWriter, r *http.Request) {
	id := facultyID(r)
	owner, ok, err := h.query.FacultyOwner(r.Context(), id)
	if err != nil {
		WriteError(w, err)
		return
	}

	resp := response.Owner{FacultyID: string(id)}
	if ok {
		o := string(owner)
		resp.Owner = &o
	}
	response.JSON(w, http.StatusOK, resp)
}

// Purchase handles POST /api/v1/faculties/{id}/purchase
func (h *FacultyHandler) Purchase(w http.ResponseWriter, r *http.Request) {
	var req request.PurchaseRequest
	if err := request.Decode(r, &req); err != nil {
		WriteError(w, NewInvalidRequestError(err.Error()))
		return
	}

	faculty, err := h.economy.Purchase(r.Context(), model.PlayerID(req.BuyerID), facultyID(r))
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.FacultyFromModel(faculty))
}

// Rent handles POST /api/v1/faculties/{id}/rent
func (h *FacultyHandler) Rent(w http.ResponseWriter, r *http.Request) {
	var req request.RentRequest
	if err := request.Decode(r, &req); err != nil {
		WriteError(w, NewInvalidRequestError(err.Error()))
		return
	}

	result, err := h.economy.PayRental(r.Context(), facultyID(r), model.PlayerID(req.VisitorID))
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.RentResultFromModel(result))
}

// Trade handles POST /api/v1/faculties/{id}/trade
func (h *FacultyHandler) Trade(w http.ResponseWriter, r *http.Request) {
	var req request.TradeRequest
	if err := request.Decode(r, &req); err != nil {
		WriteError(w, NewInvalidRequestError(err.Error()))
		return
	}

	faculty, err := h.economy.Trade(r.Context(), facultyID(r), model.PlayerID(req.BuyerID), *req.Price)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.FacultyFromModel(faculty))
}
