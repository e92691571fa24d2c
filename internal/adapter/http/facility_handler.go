package http

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/syndilend/syndilend-backend/internal/domain"
	"github.com/syndilend/syndilend-backend/internal/usecase/facility"
)

// FacilityHandler handles facility HTTP requests
type FacilityHandler struct {
	service *facility.Service
	log     zerolog.Logger
}

// NewFacilityHandler creates a new facility handler
func NewFacilityHandler(service *facility.Service, log zerolog.Logger) *FacilityHandler {
	return &FacilityHandler{
		service: service,
		log:     log.With().Str("handler", "facility").Logger(),
	}
}

type sharePieRequest struct {
	InvestorID uuid.UUID         `json:"investorId"`
	Share      domain.Percentage `json:"share"`
}

type facilityRequest struct {
	SyndicateID   uuid.UUID         `json:"syndicateId"`
	Commitment    domain.Money      `json:"commitment"`
	Currency      string            `json:"currency"`
	StartDate     string            `json:"startDate"`
	EndDate       string            `json:"endDate"`
	InterestTerms string            `json:"interestTerms"`
	SharePies     []sharePieRequest `json:"sharePies"`
	Version       *int64            `json:"version,omitempty"`
}

type sharePieResponse struct {
	ID         uuid.UUID         `json:"id"`
	InvestorID uuid.UUID         `json:"investorId"`
	Share      domain.Percentage `json:"share"`
}

type facilityResponse struct {
	ID            uuid.UUID          `json:"id"`
	SyndicateID   uuid.UUID          `json:"syndicateId"`
	Commitment    domain.Money       `json:"commitment"`
	Currency      string             `json:"currency"`
	StartDate     string             `json:"startDate"`
	EndDate       string             `json:"endDate"`
	InterestTerms string             `json:"interestTerms"`
	SharePies     []sharePieResponse `json:"sharePies"`
	CreatedAt     time.Time          `json:"createdAt"`
	UpdatedAt     time.Time          `json:"updatedAt"`
	Version       int64              `json:"version"`
}

type investmentResponse struct {
	ID              uuid.UUID    `json:"id"`
	FacilityID      uuid.UUID    `json:"facilityId"`
	InvestorID      uuid.UUID    `json:"investorId"`
	BorrowerID      uuid.UUID    `json:"borrowerId"`
	Amount          domain.Money `json:"amount"`
	TransactionType string       `json:"transactionType"`
	TransactionDate time.Time    `json:"transactionDate"`
}

// HandleCreate creates a facility from a validated allocation request
func (h *FacilityHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var req facilityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	in, err := req.toCreateInput()
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	f, err := h.service.Create(r.Context(), in)
	if err != nil {
		h.log.Warn().Err(err).Msg("facility create rejected")
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, toFacilityResponse(f))
}

// HandleGet returns one facility
func (h *FacilityHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid facility id")
		return
	}

	f, err := h.service.Get(r.Context(), id)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toFacilityResponse(f))
}

// HandleList returns all facilities
func (h *FacilityHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	facilities, err := h.service.List(r.Context())
	if err != nil {
		writeDomainError(w, err)
		return
	}

	result := make([]facilityResponse, 0, len(facilities))
	for _, f := range facilities {
		result = append(result, toFacilityResponse(f))
	}
	writeJSON(w, http.StatusOK, result)
}

// HandleUpdate fully replaces a facility definition under a version check
func (h *FacilityHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid facility id")
		return
	}

	var req facilityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	createIn, err := req.toCreateInput()
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	in := facility.UpdateFacilityInput{
		CreateFacilityInput: createIn,
		Version:             req.Version,
	}

	f, err := h.service.Update(r.Context(), id, in)
	if err != nil {
		h.log.Warn().Err(err).Str("facility_id", id.String()).Msg("facility update rejected")
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toFacilityResponse(f))
}

// HandleDelete removes a facility and its share pies
func (h *FacilityHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid facility id")
		return
	}

	if err := h.service.Delete(r.Context(), id); err != nil {
		writeDomainError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// HandleListInvestments returns the derived investment ledger of a facility
func (h *FacilityHandler) HandleListInvestments(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid facility id")
		return
	}

	investments, err := h.service.Investments(r.Context(), id)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	result := make([]investmentResponse, 0, len(investments))
	for _, inv := range investments {
		result = append(result, investmentResponse{
			ID:              inv.ID,
			FacilityID:      inv.FacilityID,
			InvestorID:      inv.InvestorID,
			BorrowerID:      inv.BorrowerID,
			Amount:          inv.Amount,
			TransactionType: inv.TransactionType,
			TransactionDate: inv.TransactionDate,
		})
	}
	writeJSON(w, http.StatusOK, result)
}

func (req facilityRequest) toCreateInput() (facility.CreateFacilityInput, error) {
	startDate, err := parseDate(req.StartDate)
	if err != nil {
		return facility.CreateFacilityInput{}, err
	}
	endDate, err := parseDate(req.EndDate)
	if err != nil {
		return facility.CreateFacilityInput{}, err
	}

	pies := make([]facility.SharePieInput, 0, len(req.SharePies))
	for _, p := range req.SharePies {
		pies = append(pies, facility.SharePieInput{
			InvestorID: p.InvestorID,
			Share:      p.Share,
		})
	}

	return facility.CreateFacilityInput{
		SyndicateID:   req.SyndicateID,
		Commitment:    req.Commitment,
		Currency:      req.Currency,
		StartDate:     startDate,
		EndDate:       endDate,
		InterestTerms: req.InterestTerms,
		SharePies:     pies,
	}, nil
}

func toFacilityResponse(f *domain.Facility) facilityResponse {
	pies := make([]sharePieResponse, 0, len(f.SharePies))
	for _, p := range f.SharePies {
		pies = append(pies, sharePieResponse{
			ID:         p.ID,
			InvestorID: p.InvestorID,
			Share:      p.Share,
		})
	}

	return facilityResponse{
		ID:            f.ID,
		SyndicateID:   f.SyndicateID,
		Commitment:    f.Commitment,
		Currency:      f.Currency,
		StartDate:     f.StartDate.Format(dateLayout),
		EndDate:       f.EndDate.Format(dateLayout),
		InterestTerms: f.InterestTerms,
		SharePies:     pies,
		CreatedAt:     f.CreatedAt,
		UpdatedAt:     f.UpdatedAt,
		Version:       f.Version,
	}
}
