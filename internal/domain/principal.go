package domain

// PrincipalKind discriminates the two account namespaces behind a token.
type PrincipalKind string

const (
	PrincipalKindAdmin     PrincipalKind = "ADMIN"
	PrincipalKindPurchaser PrincipalKind = "PURCHASER"
)

// ClassifyAccountID maps an account id to its principal kind using the
// structural prefix tag.
func ClassifyAccountID(id string) PrincipalKind {
	if IsAdminID(id) {
		return PrincipalKindAdmin
	}
	return PrincipalKindPurchaser
}

// Principal is the resolved identity behind a validated token: either an
// administrator account or the purchaser reachable through a purchaser
// account. The kind is computed once at token-decode time.
type Principal struct {
	Kind      PrincipalKind
	AccountID string
	Admin     *AdminAccount
	Purchaser *Purchaser
}

// IsAdmin reports whether the principal is an administrator.
func (p *Principal) IsAdmin() bool {
	return p != nil && p.Kind == PrincipalKindAdmin
}

// OwnsPurchaser reports whether the principal is the purchaser with the
// given id or an administrator.
func (p *Principal) OwnsPurchaser(purchaserID string) bool {
	if p == nil {
		return false
	}
	if p.IsAdmin() {
		return true
	}
	return p.Purchaser != nil && p.Purchaser.ID == purchaserID
}
