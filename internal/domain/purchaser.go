package domain

import (
	"strings"
	"time"
)

// Purchaser is the profile entity a purchaser account authenticates on
// behalf of.
type Purchaser struct {
	ID              string
	Firstname       string
	Middlename      string
	Lastname        string
	PersonalEmail   string
	PersonalPhone   string
	Company         string
	CorporateEmail  string
	CorporatePhone  string
	FieldOfActivity string
	Position        string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// FullName joins the purchaser name parts for the external key holder field.
// Absent parts are skipped rather than leaving gaps.
func (p *Purchaser) FullName() string {
	parts := make([]string, 0, 3)
	for _, part := range []string{p.Firstname, p.Middlename, p.Lastname} {
		if part != "" {
			parts = append(parts, part)
		}
	}
	return strings.Join(parts, " ")
}

// PurchaserAccount is the credential record owning a one-to-one reference to
// a Purchaser. Created at sign-up together with the profile, deleted by the
// purchaser-removal cascade.
type PurchaserAccount struct {
	ID           string
	PurchaserID  string
	PasswordHash string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
