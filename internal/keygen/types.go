package keygen

// CreateKeyRequest is the payload sent to the external issuing service.
// Scalars only: the expiry travels as a string, not a date object.
type CreateKeyRequest struct {
	ProductID   string `json:"productId"`
	HolderName  string `json:"holderName"`
	Email       string `json:"email"`
	LicenseType string `json:"licenseType"`
	ExpiryDate  string `json:"expiryDate"`
}

// Key is a key record as issued by the external service.
type Key struct {
	ID       string `json:"id"`
	KeyToken string `json:"key_token"`
}

// serviceError is the structured error body the external service returns.
type serviceError struct {
	StatusCode int      `json:"statusCode"`
	Error      string   `json:"error"`
	Message    []string `json:"message"`
}
