package domain

import (
	"strings"
	"time"
)

// AdminIDPrefix structurally tags administrator account ids. The prefix is
// the sole discriminator between the two account namespaces: a token subject
// carrying it resolves against adm_accounts, everything else against
// auth_accounts.
const AdminIDPrefix = "A_"

// AdminAccount is the administrator credential record. Exactly one row is
// provisioned at first boot if the table is empty.
type AdminAccount struct {
	ID            string
	Firstname     string
	Middlename    string
	Lastname      string
	PersonalEmail string
	Position      string
	PasswordHash  string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// IsAdminID reports whether an account id belongs to the administrator
// namespace. Pure structural check, no store access.
func IsAdminID(id string) bool {
	return strings.HasPrefix(id, AdminIDPrefix)
}
