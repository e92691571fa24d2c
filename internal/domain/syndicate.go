package domain

import (
	"time"

	"github.com/google/uuid"
)

// Syndicate is the named group of investors (with one lead bank) backing a
// single borrower for a set of facilities.
type Syndicate struct {
	ID                uuid.UUID
	Name              string
	LeadBankID        uuid.UUID
	BorrowerID        uuid.UUID
	MemberInvestorIDs []uuid.UUID
	CreatedAt         time.Time
	UpdatedAt         time.Time
	Version           int64
}

// HasMember reports whether the investor belongs to the syndicate.
func (s *Syndicate) HasMember(investorID uuid.UUID) bool {
	for _, id := range s.MemberInvestorIDs {
		if id == investorID {
			return true
		}
	}
	return false
}
