package http

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/syndilend/syndilend-backend/internal/domain"
	"github.com/syndilend/syndilend-backend/internal/usecase/party"
)

// PartyHandler handles company, borrower and investor HTTP requests
type PartyHandler struct {
	service *party.Service
	log     zerolog.Logger
}

// NewPartyHandler creates a new party handler
func NewPartyHandler(service *party.Service, log zerolog.Logger) *PartyHandler {
	return &PartyHandler{
		service: service,
		log:     log.With().Str("handler", "party").Logger(),
	}
}

type companyRequest struct {
	CompanyName        string `json:"companyName"`
	RegistrationNumber string `json:"registrationNumber"`
	Industry           string `json:"industry"`
	Address            string `json:"address"`
	Country            string `json:"country"`
}

type companyResponse struct {
	ID                 uuid.UUID `json:"id"`
	CompanyName        string    `json:"companyName"`
	RegistrationNumber string    `json:"registrationNumber"`
	Industry           string    `json:"industry"`
	Address            string    `json:"address"`
	Country            string    `json:"country"`
	CreatedAt          time.Time `json:"createdAt"`
	UpdatedAt          time.Time `json:"updatedAt"`
}

type borrowerRequest struct {
	Name         string       `json:"name"`
	Email        string       `json:"email"`
	PhoneNumber  string       `json:"phoneNumber"`
	CompanyID    *uuid.UUID   `json:"companyId,omitempty"`
	CreditLimit  domain.Money `json:"creditLimit"`
	CreditRating string       `json:"creditRating"`
}

type borrowerResponse struct {
	ID           uuid.UUID    `json:"id"`
	Name         string       `json:"name"`
	Email        string       `json:"email"`
	PhoneNumber  string       `json:"phoneNumber"`
	CompanyID    *uuid.UUID   `json:"companyId,omitempty"`
	CreditLimit  domain.Money `json:"creditLimit"`
	CreditRating string       `json:"creditRating"`
	CreatedAt    time.Time    `json:"createdAt"`
	UpdatedAt    time.Time    `json:"updatedAt"`
	Version      int64        `json:"version"`
}

type investorRequest struct {
	Name               string       `json:"name"`
	Email              string       `json:"email"`
	PhoneNumber        string       `json:"phoneNumber"`
	CompanyID          *uuid.UUID   `json:"companyId,omitempty"`
	InvestmentCapacity domain.Money `json:"investmentCapacity"`
	InvestorType       string       `json:"investorType"`
}

type investorResponse struct {
	ID                 uuid.UUID    `json:"id"`
	Name               string       `json:"name"`
	Email              string       `json:"email"`
	PhoneNumber        string       `json:"phoneNumber"`
	CompanyID          *uuid.UUID   `json:"companyId,omitempty"`
	InvestmentCapacity domain.Money `json:"investmentCapacity"`
	InvestorType       string       `json:"investorType"`
	IsActive           bool         `json:"isActive"`
	CreatedAt          time.Time    `json:"createdAt"`
	UpdatedAt          time.Time    `json:"updatedAt"`
	Version            int64        `json:"version"`
}

// HandleCreateCompany registers a company
func (h *PartyHandler) HandleCreateCompany(w http.ResponseWriter, r *http.Request) {
	var req companyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	c, err := h.service.CreateCompany(r.Context(), party.CreateCompanyInput(req))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, toCompanyResponse(c))
}

// HandleGetCompany returns one company
func (h *PartyHandler) HandleGetCompany(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid company id")
		return
	}
	c, err := h.service.GetCompany(r.Context(), id)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toCompanyResponse(c))
}

// HandleListCompanies returns all companies
func (h *PartyHandler) HandleListCompanies(w http.ResponseWriter, r *http.Request) {
	companies, err := h.service.ListCompanies(r.Context())
	if err != nil {
		writeDomainError(w, err)
		return
	}
	result := make([]companyResponse, 0, len(companies))
	for _, c := range companies {
		result = append(result, toCompanyResponse(c))
	}
	writeJSON(w, http.StatusOK, result)
}

// HandleDeleteCompany removes a company
func (h *PartyHandler) HandleDeleteCompany(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid company id")
		return
	}
	if err := h.service.DeleteCompany(r.Context(), id); err != nil {
		writeDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// HandleCreateBorrower registers a borrower
func (h *PartyHandler) HandleCreateBorrower(w http.ResponseWriter, r *http.Request) {
	var req borrowerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	b, err := h.service.CreateBorrower(r.Context(), borrowerInputFromRequest(req))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, toBorrowerResponse(b))
}

// HandleGetBorrower returns one borrower
func (h *PartyHandler) HandleGetBorrower(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid borrower id")
		return
	}
	b, err := h.service.GetBorrower(r.Context(), id)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toBorrowerResponse(b))
}

// HandleListBorrowers returns all borrowers
func (h *PartyHandler) HandleListBorrowers(w http.ResponseWriter, r *http.Request) {
	borrowers, err := h.service.ListBorrowers(r.Context())
	if err != nil {
		writeDomainError(w, err)
		return
	}
	result := make([]borrowerResponse, 0, len(borrowers))
	for _, b := range borrowers {
		result = append(result, toBorrowerResponse(b))
	}
	writeJSON(w, http.StatusOK, result)
}

// HandleUpdateBorrower replaces a borrower's fields
func (h *PartyHandler) HandleUpdateBorrower(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid borrower id")
		return
	}
	var req borrowerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	b, err := h.service.UpdateBorrower(r.Context(), id, borrowerInputFromRequest(req))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toBorrowerResponse(b))
}

// HandleDeleteBorrower removes a borrower
func (h *PartyHandler) HandleDeleteBorrower(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid borrower id")
		return
	}
	if err := h.service.DeleteBorrower(r.Context(), id); err != nil {
		writeDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// HandleCreateInvestor registers an investor
func (h *PartyHandler) HandleCreateInvestor(w http.ResponseWriter, r *http.Request) {
	var req investorRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	inv, err := h.service.CreateInvestor(r.Context(), party.CreateInvestorInput{
		Name:               req.Name,
		Email:              req.Email,
		PhoneNumber:        req.PhoneNumber,
		CompanyID:          req.CompanyID,
		InvestmentCapacity: req.InvestmentCapacity,
		InvestorType:       domain.InvestorType(req.InvestorType),
	})
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, toInvestorResponse(inv))
}

// HandleGetInvestor returns one investor
func (h *PartyHandler) HandleGetInvestor(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid investor id")
		return
	}
	inv, err := h.service.GetInvestor(r.Context(), id)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toInvestorResponse(inv))
}

// HandleListInvestors returns all investors
func (h *PartyHandler) HandleListInvestors(w http.ResponseWriter, r *http.Request) {
	investors, err := h.service.ListInvestors(r.Context())
	if err != nil {
		writeDomainError(w, err)
		return
	}
	result := make([]investorResponse, 0, len(investors))
	for _, inv := range investors {
		result = append(result, toInvestorResponse(inv))
	}
	writeJSON(w, http.StatusOK, result)
}

// HandleSetInvestorActive flips an investor's active flag
func (h *PartyHandler) HandleSetInvestorActive(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid investor id")
		return
	}
	var req struct {
		IsActive bool `json:"isActive"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	inv, err := h.service.SetInvestorActive(r.Context(), id, req.IsActive)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toInvestorResponse(inv))
}

// HandleDeleteInvestor removes an investor
func (h *PartyHandler) HandleDeleteInvestor(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid investor id")
		return
	}
	if err := h.service.DeleteInvestor(r.Context(), id); err != nil {
		writeDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func borrowerInputFromRequest(req borrowerRequest) party.CreateBorrowerInput {
	return party.CreateBorrowerInput{
		Name:         req.Name,
		Email:        req.Email,
		PhoneNumber:  req.PhoneNumber,
		CompanyID:    req.CompanyID,
		CreditLimit:  req.CreditLimit,
		CreditRating: domain.CreditRating(req.CreditRating),
	}
}

func toCompanyResponse(c *domain.Company) companyResponse {
	return companyResponse{
		ID:                 c.ID,
		CompanyName:        c.CompanyName,
		RegistrationNumber: c.RegistrationNumber,
		Industry:           c.Industry,
		Address:            c.Address,
		Country:            c.Country,
		CreatedAt:          c.CreatedAt,
		UpdatedAt:          c.UpdatedAt,
	}
}

func toBorrowerResponse(b *domain.Borrower) borrowerResponse {
	return borrowerResponse{
		ID:           b.ID,
		Name:         b.Name,
		Email:        b.Email,
		PhoneNumber:  b.PhoneNumber,
		CompanyID:    b.CompanyID,
		CreditLimit:  b.CreditLimit,
		CreditRating: string(b.CreditRating),
		CreatedAt:    b.CreatedAt,
		UpdatedAt:    b.UpdatedAt,
		Version:      b.Version,
	}
}

func toInvestorResponse(inv *domain.Investor) investorResponse {
	return investorResponse{
		ID:                 inv.ID,
		Name:               inv.Name,
		Email:              inv.Email,
		PhoneNumber:        inv.PhoneNumber,
		CompanyID:          inv.CompanyID,
		InvestmentCapacity: inv.InvestmentCapacity,
		InvestorType:       string(inv.InvestorType),
		IsActive:           inv.IsActive,
		CreatedAt:          inv.CreatedAt,
		UpdatedAt:          inv.UpdatedAt,
		Version:            inv.Version,
	}
}
