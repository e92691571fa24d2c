package http

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/syndilend/syndilend-backend/internal/domain"
	"github.com/syndilend/syndilend-backend/internal/usecase/syndicate"
)

// SyndicateHandler handles syndicate HTTP requests
type SyndicateHandler struct {
	service *syndicate.Service
	log     zerolog.Logger
}

// NewSyndicateHandler creates a new syndicate handler
func NewSyndicateHandler(service *syndicate.Service, log zerolog.Logger) *SyndicateHandler {
	return &SyndicateHandler{
		service: service,
		log:     log.With().Str("handler", "syndicate").Logger(),
	}
}

type syndicateRequest struct {
	Name              string      `json:"name"`
	LeadBankID        uuid.UUID   `json:"leadBankId"`
	BorrowerID        uuid.UUID   `json:"borrowerId"`
	MemberInvestorIDs []uuid.UUID `json:"memberInvestorIds"`
}

type syndicateResponse struct {
	ID                uuid.UUID   `json:"id"`
	Name              string      `json:"name"`
	LeadBankID        uuid.UUID   `json:"leadBankId"`
	BorrowerID        uuid.UUID   `json:"borrowerId"`
	MemberInvestorIDs []uuid.UUID `json:"memberInvestorIds"`
	CreatedAt         time.Time   `json:"createdAt"`
	UpdatedAt         time.Time   `json:"updatedAt"`
	Version           int64       `json:"version"`
}

// HandleCreate forms a new syndicate
func (h *SyndicateHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var req syndicateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	syn, err := h.service.Create(r.Context(), syndicate.CreateSyndicateInput(req))
	if err != nil {
		h.log.Warn().Err(err).Msg("syndicate create rejected")
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, toSyndicateResponse(syn))
}

// HandleGet returns one syndicate
func (h *SyndicateHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid syndicate id")
		return
	}

	syn, err := h.service.Get(r.Context(), id)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toSyndicateResponse(syn))
}

// HandleList returns all syndicates
func (h *SyndicateHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	syndicates, err := h.service.List(r.Context())
	if err != nil {
		writeDomainError(w, err)
		return
	}

	result := make([]syndicateResponse, 0, len(syndicates))
	for _, syn := range syndicates {
		result = append(result, toSyndicateResponse(syn))
	}
	writeJSON(w, http.StatusOK, result)
}

// HandleUpdate replaces a syndicate's fields
func (h *SyndicateHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid syndicate id")
		return
	}

	var req syndicateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	syn, err := h.service.Update(r.Context(), id, syndicate.CreateSyndicateInput(req))
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toSyndicateResponse(syn))
}

// HandleDelete removes a syndicate
func (h *SyndicateHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid syndicate id")
		return
	}

	if err := h.service.Delete(r.Context(), id); err != nil {
		writeDomainError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func toSyndicateResponse(s *domain.Syndicate) syndicateResponse {
	return syndicateResponse{
		ID:                s.ID,
		Name:              s.Name,
		LeadBankID:        s.LeadBankID,
		BorrowerID:        s.BorrowerID,
		MemberInvestorIDs: s.MemberInvestorIDs,
		CreatedAt:         s.CreatedAt,
		UpdatedAt:         s.UpdatedAt,
		Version:           s.Version,
	}
}
