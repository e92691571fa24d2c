package domain

import (
	"time"

	"github.com/google/uuid"
)

// InvestorType classifies an investor within a syndicate.
type InvestorType string

const (
	InvestorTypeLeadBank   InvestorType = "LEAD_BANK"
	InvestorTypeBank       InvestorType = "BANK"
	InvestorTypeInsurance  InvestorType = "INSURANCE"
	InvestorTypeFund       InvestorType = "FUND"
	InvestorTypeCorporate  InvestorType = "CORPORATE"
	InvestorTypeIndividual InvestorType = "INDIVIDUAL"
)

// CreditRating is an opaque rating grade carried on a borrower.
type CreditRating string

const (
	CreditRatingAAA CreditRating = "AAA"
	CreditRatingAA  CreditRating = "AA"
	CreditRatingA   CreditRating = "A"
	CreditRatingBBB CreditRating = "BBB"
	CreditRatingBB  CreditRating = "BB"
	CreditRatingB   CreditRating = "B"
	CreditRatingCCC CreditRating = "CCC"
	CreditRatingCC  CreditRating = "CC"
	CreditRatingC   CreditRating = "C"
)

// Investor is a party that can receive share allocations. Inactive investors
// cannot receive new allocations.
type Investor struct {
	ID                 uuid.UUID
	Name               string
	Email              string
	PhoneNumber        string
	CompanyID          *uuid.UUID
	InvestmentCapacity Money
	InvestorType       InvestorType
	IsActive           bool
	CreatedAt          time.Time
	UpdatedAt          time.Time
	Version            int64
}

// Borrower is the party a syndicate lends to. Its credit limit bounds the
// total committed exposure across all of its facilities.
type Borrower struct {
	ID           uuid.UUID
	Name         string
	Email        string
	PhoneNumber  string
	CompanyID    *uuid.UUID
	CreditLimit  Money
	CreditRating CreditRating
	CreatedAt    time.Time
	UpdatedAt    time.Time
	Version      int64
}

// Company is a simple party record that investors and borrowers may reference.
type Company struct {
	ID                 uuid.UUID
	CompanyName        string
	RegistrationNumber string
	Industry           string
	Address            string
	Country            string
	CreatedAt          time.Time
	UpdatedAt          time.Time
}
