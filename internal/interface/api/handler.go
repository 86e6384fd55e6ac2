package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"ferryflight-service/internal/domain/entity"
	"ferryflight-service/internal/usecase"
	"ferryflight-service/pkg/logger"
)

// Handler exposes the workflow core over JSON. Authentication is handled
// upstream; the acting identity arrives in headers.
type Handler struct {
	flights       *usecase.FlightService
	engine        *usecase.WorkflowEngine
	guards        *usecase.GuardEvaluator
	signoffs      *usecase.SignoffRecorder
	permits       *usecase.PermitService
	documents     *usecase.DocumentService
	discrepancies *usecase.DiscrepancyService
	timeline      *usecase.Timeline
	logger        logger.Logger
}

// NewHandler creates a new API handler
func NewHandler(
	flights *usecase.FlightService,
	engine *usecase.WorkflowEngine,
	guards *usecase.GuardEvaluator,
	signoffs *usecase.SignoffRecorder,
	permits *usecase.PermitService,
	documents *usecase.DocumentService,
	discrepancies *usecase.DiscrepancyService,
	timeline *usecase.Timeline,
	logger logger.Logger,
) *Handler {
	return &Handler{
		flights:       flights,
		engine:        engine,
		guards:        guards,
		signoffs:      signoffs,
		permits:       permits,
		documents:     documents,
		discrepancies: discrepancies,
		timeline:      timeline,
		logger:        logger,
	}
}

// Register mounts all routes on the mux
func (h *Handler) Register(mux *http.ServeMux) {
	mux.HandleFunc("POST /api/v1/flights", h.createFlight)
	mux.HandleFunc("GET /api/v1/flights/{id}", h.getFlight)
	mux.HandleFunc("PATCH /api/v1/flights/{id}", h.updateFlight)
	mux.HandleFunc("POST /api/v1/flights/{id}/transition", h.transition)
	mux.HandleFunc("GET /api/v1/flights/{id}/next-statuses", h.nextStatuses)
	mux.HandleFunc("GET /api/v1/flights/{id}/missing-documents", h.missingDocuments)
	mux.HandleFunc("GET /api/v1/flights/{id}/timeline", h.flightTimeline)
	mux.HandleFunc("POST /api/v1/flights/{id}/signoffs", h.recordSignoff)
	mux.HandleFunc("POST /api/v1/flights/{id}/permits", h.createPermit)
	mux.HandleFunc("GET /api/v1/flights/{id}/permits/latest", h.latestPermit)
	mux.HandleFunc("POST /api/v1/permits/{id}/submit", h.submitPermit)
	mux.HandleFunc("POST /api/v1/permits/{id}/decision", h.recordDecision)
	mux.HandleFunc("POST /api/v1/flights/{id}/documents", h.addDocument)
	mux.HandleFunc("GET /api/v1/flights/{id}/documents", h.listDocuments)
	mux.HandleFunc("POST /api/v1/flights/{id}/discrepancies", h.createDiscrepancy)
	mux.HandleFunc("GET /api/v1/flights/{id}/discrepancies", h.listDiscrepancies)
}

func actorFrom(r *http.Request) entity.Actor {
	return entity.Actor{
		UserID: r.Header.Get("X-User-Id"),
		Role:   entity.Role(r.Header.Get("X-User-Role")),
	}
}

func (h *Handler) createFlight(w http.ResponseWriter, r *http.Request) {
	var flight entity.FerryFlight
	if err := json.NewDecoder(r.Body).Decode(&flight); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	if err := h.flights.CreateFlight(r.Context(), actorFrom(r), &flight); err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, flight)
}

func (h *Handler) getFlight(w http.ResponseWriter, r *http.Request) {
	flight, err := h.flights.GetFlight(r.Context(), r.PathValue("id"))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, flight)
}

type transitionRequest struct {
	Target          entity.FlightStatus  `json:"target"`
	ExpectedCurrent *entity.FlightStatus `json:"expectedCurrent,omitempty"`
}

func (h *Handler) transition(w http.ResponseWriter, r *http.Request) {
	var req transitionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	if err := h.engine.Transition(r.Context(), actorFrom(r), r.PathValue("id"), req.Target, req.ExpectedCurrent); err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

type updateFlightRequest struct {
	OriginAirport    *string              `json:"originAirport,omitempty"`
	DestAirport      *string              `json:"destAirport,omitempty"`
	Purpose          *string              `json:"purpose,omitempty"`
	Status           *entity.FlightStatus `json:"status,omitempty"`
	PilotID          *string              `json:"pilotId,omitempty"`
	MechanicID       *string              `json:"mechanicId,omitempty"`
	PlannedDeparture *time.Time           `json:"plannedDeparture,omitempty"`
	ActualDeparture  *time.Time           `json:"actualDeparture,omitempty"`
	ActualArrival    *time.Time           `json:"actualArrival,omitempty"`
}

func (h *Handler) updateFlight(w http.ResponseWriter, r *http.Request) {
	var req updateFlightRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	update := entity.FlightUpdate{
		OriginAirport:    req.OriginAirport,
		DestAirport:      req.DestAirport,
		Purpose:          req.Purpose,
		Status:           req.Status,
		PilotID:          req.PilotID,
		MechanicID:       req.MechanicID,
		PlannedDeparture: req.PlannedDeparture,
		ActualDeparture:  req.ActualDeparture,
		ActualArrival:    req.ActualArrival,
	}
	if err := h.engine.UpdateFlight(r.Context(), actorFrom(r), r.PathValue("id"), update); err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

func (h *Handler) nextStatuses(w http.ResponseWriter, r *http.Request) {
	flight, err := h.flights.GetFlight(r.Context(), r.PathValue("id"))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, h.engine.ValidNextStatuses(flight.Status))
}

func (h *Handler) missingDocuments(w http.ResponseWriter, r *http.Request) {
	missing, err := h.guards.MissingDocuments(r.Context(), r.PathValue("id"))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	if len(missing) == 0 {
		writeJSON(w, http.StatusOK, map[string]interface{}{"complete": true})
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"complete": false, "missing": missing})
}

func (h *Handler) flightTimeline(w http.ResponseWriter, r *http.Request) {
	entries, err := h.timeline.ForFlight(r.Context(), r.PathValue("id"))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, entries)
}

func (h *Handler) recordSignoff(w http.ResponseWriter, r *http.Request) {
	var signoff entity.MechanicSignoff
	if err := json.NewDecoder(r.Body).Decode(&signoff); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	if err := h.signoffs.RecordSignoff(r.Context(), actorFrom(r), r.PathValue("id"), &signoff); err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, signoff)
}

func (h *Handler) createPermit(w http.ResponseWriter, r *http.Request) {
	permit, err := h.permits.CreatePermit(r.Context(), actorFrom(r), r.PathValue("id"))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, permit)
}

func (h *Handler) latestPermit(w http.ResponseWriter, r *http.Request) {
	permit, err := h.permits.LatestPermit(r.Context(), r.PathValue("id"))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, permit)
}

type submitPermitRequest struct {
	Channel string `json:"channel"`
	Office  string `json:"office"`
}

func (h *Handler) submitPermit(w http.ResponseWriter, r *http.Request) {
	var req submitPermitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	if err := h.permits.SubmitPermit(r.Context(), actorFrom(r), r.PathValue("id"), req.Channel, req.Office); err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

type decisionRequest struct {
	Approved     bool       `json:"approved"`
	PermitNumber string     `json:"permitNumber,omitempty"`
	ExpiresAt    *time.Time `json:"expiresAt,omitempty"`
	Limitations  string     `json:"limitations,omitempty"`
}

func (h *Handler) recordDecision(w http.ResponseWriter, r *http.Request) {
	var req decisionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	if err := h.permits.RecordDecision(r.Context(), actorFrom(r), r.PathValue("id"), req.Approved, req.PermitNumber, req.ExpiresAt, req.Limitations); err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

func (h *Handler) addDocument(w http.ResponseWriter, r *http.Request) {
	var doc entity.Document
	if err := json.NewDecoder(r.Body).Decode(&doc); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	if err := h.documents.AddDocument(r.Context(), actorFrom(r), r.PathValue("id"), &doc); err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, doc)
}

func (h *Handler) listDocuments(w http.ResponseWriter, r *http.Request) {
	docs, err := h.documents.ListDocuments(r.Context(), r.PathValue("id"))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, docs)
}

func (h *Handler) createDiscrepancy(w http.ResponseWriter, r *http.Request) {
	var d entity.Discrepancy
	if err := json.NewDecoder(r.Body).Decode(&d); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	if err := h.discrepancies.CreateDiscrepancy(r.Context(), actorFrom(r), r.PathValue("id"), &d); err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, d)
}

func (h *Handler) listDiscrepancies(w http.ResponseWriter, r *http.Request) {
	list, err := h.discrepancies.ListDiscrepancies(r.Context(), r.PathValue("id"))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, list)
}

// writeDomainError maps the core error taxonomy onto HTTP statuses so the
// UI can distinguish "not allowed right now" from "you can't do this".
func writeDomainError(w http.ResponseWriter, err error) {
	var notFound *entity.NotFoundError
	var invalid *entity.InvalidTransitionError
	var conflict *entity.StatusConflictError
	var forbidden *entity.AuthorizationError

	switch {
	case errors.As(err, &notFound):
		writeError(w, http.StatusNotFound, err)
	case errors.As(err, &invalid):
		writeError(w, http.StatusUnprocessableEntity, err)
	case errors.As(err, &conflict):
		writeError(w, http.StatusConflict, err)
	case errors.As(err, &forbidden):
		writeError(w, http.StatusForbidden, err)
	default:
		writeError(w, http.StatusInternalServerError, err)
	}
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, map[string]interface{}{
		"success": false,
		"error":   err.Error(),
	})
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
