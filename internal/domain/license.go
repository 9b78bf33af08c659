package domain

import "time"

// LicenseKey is the locally-stored license record. LicenseKeyID references
// the key minted by the external issuing service; a row exists only after
// that call succeeded.
type LicenseKey struct {
	ID           string    `json:"id"`
	ProductID    string    `json:"productId"`
	PurchaserID  string    `json:"purchaserId"`
	LicenseKeyID string    `json:"licenseKeyId"`
	LicenseType  string    `json:"licenseType"`
	ExpiryDate   time.Time `json:"expiryDate"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}
