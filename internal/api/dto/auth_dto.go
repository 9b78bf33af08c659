package dto

// SignUpRequest carries the purchaser profile plus the account password.
type SignUpRequest struct {
	Firstname       string `json:"firstname"`
	Middlename      string `json:"middlename"`
	Lastname        string `json:"lastname"`
	PersonalEmail   string `json:"personalEmail"`
	PersonalPhone   string `json:"personalPhone"`
	Company         string `json:"company"`
	CorporateEmail  string `json:"corporateEmail"`
	CorporatePhone  string `json:"corporatePhone"`
	FieldOfActivity string `json:"fieldOfActivity"`
	Position        string `json:"position"`
	Password        string `json:"password"`
}

// SignInRequest payload for sign-in.
type SignInRequest struct {
	PersonalEmail string `json:"personalEmail"`
	Password      string `json:"password"`
}

// UpdatePasswordRequest payload for the password change endpoint.
type UpdatePasswordRequest struct {
	OldPassword string `json:"oldPassword"`
	NewPassword string `json:"newPassword"`
}

// UpdateAdminRequest is the administrator self-service profile patch.
type UpdateAdminRequest struct {
	Firstname     string `json:"firstname"`
	Middlename    string `json:"middlename"`
	Lastname      string `json:"lastname"`
	PersonalEmail string `json:"personalEmail"`
	Position      string `json:"position"`
}

// AccessTokenResponse carries an issued bearer token.
type AccessTokenResponse struct {
	AccessToken string `json:"accessToken"`
}
