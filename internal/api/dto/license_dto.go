package dto

import "time"

// CreateLicenseRequest payload for license provisioning.
type CreateLicenseRequest struct {
	ProductID   string    `json:"productId"`
	PurchaserID string    `json:"purchaserId"`
	LicenseType string    `json:"licenseType"`
	ExpiryDate  time.Time `json:"expiryDate"`
}

// UpdateLicenseRequest patches local license metadata; omitted fields stay
// untouched.
type UpdateLicenseRequest struct {
	ProductID   string    `json:"productId"`
	PurchaserID string    `json:"purchaserId"`
	LicenseType string    `json:"licenseType"`
	ExpiryDate  time.Time `json:"expiryDate"`
}
