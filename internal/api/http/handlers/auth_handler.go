package handlers

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/license-service/internal/api/dto"
	"github.com/spec-kit/license-service/internal/domain"
	"github.com/spec-kit/license-service/internal/service"
	apperrors "github.com/spec-kit/license-service/pkg/util"
)

const minPasswordLength = 6

// AuthHandler exposes sign-up, sign-in and account maintenance endpoints.
type AuthHandler struct {
	auth *service.AuthService
}

// NewAuthHandler constructs handler.
func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{auth: authService}
}

// SignUp handles POST /auth/sign-up.
func (h *AuthHandler) SignUp(c *fiber.Ctx) error {
	var req dto.SignUpRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewBadRequest("invalid payload", "body")
	}
	if violations := validateSignUp(req); len(violations) > 0 {
		return apperrors.NewValidationFailed(violations)
	}

	token, err := h.auth.SignUp(c.Context(), service.SignUpInput{
		Firstname:       req.Firstname,
		Middlename:      req.Middlename,
		Lastname:        req.Lastname,
		PersonalEmail:   req.PersonalEmail,
		PersonalPhone:   req.PersonalPhone,
		Company:         req.Company,
		CorporateEmail:  req.CorporateEmail,
		CorporatePhone:  req.CorporatePhone,
		FieldOfActivity: req.FieldOfActivity,
		Position:        req.Position,
		Password:        req.Password,
	})
	if err != nil {
		return err
	}

	return c.JSON(apperrors.OK(dto.AccessTokenResponse{AccessToken: token}))
}

// SignIn handles POST /auth/sign-in.
func (h *AuthHandler) SignIn(c *fiber.Ctx) error {
	var req dto.SignInRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewBadRequest("invalid payload", "body")
	}
	if violations := validateSignIn(req); len(violations) > 0 {
		return apperrors.NewValidationFailed(violations)
	}

	principal, token, err := h.auth.SignIn(c.Context(), req.PersonalEmail, req.Password)
	if err != nil {
		return err
	}

	response := fiber.Map{"accessToken": token}
	switch principal.Kind {
	case domain.PrincipalKindAdmin:
		response["account"] = adminView(principal.Admin)
	case domain.PrincipalKindPurchaser:
		response["account"] = purchaserView(principal.Purchaser)
	}
	return c.JSON(apperrors.OK(response))
}

// UpdatePassword handles PATCH /auth/:id.
func (h *AuthHandler) UpdatePassword(c *fiber.Ctx) error {
	var req dto.UpdatePasswordRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewBadRequest("invalid payload", "body")
	}
	var violations []apperrors.FieldViolation
	if len(req.OldPassword) < minPasswordLength {
		violations = append(violations, passwordViolation("oldPassword"))
	}
	if len(req.NewPassword) < minPasswordLength {
		violations = append(violations, passwordViolation("newPassword"))
	}
	if len(violations) > 0 {
		return apperrors.NewValidationFailed(violations)
	}

	err := h.auth.UpdatePassword(c.Context(),
		c.Get(fiber.HeaderAuthorization), c.Params("id"), req.OldPassword, req.NewPassword)
	if err != nil {
		return err
	}
	return c.JSON(apperrors.OK("Password has been successfully updated"))
}

// UpdateAdminAccount handles PUT /auth/adm/:id.
func (h *AuthHandler) UpdateAdminAccount(c *fiber.Ctx) error {
	var req dto.UpdateAdminRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewBadRequest("invalid payload", "body")
	}

	admin, err := h.auth.UpdateAdminAccount(c.Context(), c.Get(fiber.HeaderAuthorization), service.UpdateAdminInput{
		Firstname:     req.Firstname,
		Middlename:    req.Middlename,
		Lastname:      req.Lastname,
		PersonalEmail: req.PersonalEmail,
		Position:      req.Position,
	})
	if err != nil {
		return err
	}
	return c.JSON(apperrors.OK(adminView(admin)))
}

// GetAdminAccounts handles GET /auth/adm.
func (h *AuthHandler) GetAdminAccounts(c *fiber.Ctx) error {
	admins, err := h.auth.GetAdminAccounts(c.Context(), c.Get(fiber.HeaderAuthorization))
	if err != nil {
		return err
	}
	return c.JSON(apperrors.OK(adminViews(admins)))
}

func validateSignUp(req dto.SignUpRequest) []apperrors.FieldViolation {
	var violations []apperrors.FieldViolation
	if req.Firstname == "" {
		violations = append(violations, requiredViolation("firstname"))
	}
	if req.Middlename == "" {
		violations = append(violations, requiredViolation("middlename"))
	}
	if !isEmail(req.PersonalEmail) {
		violations = append(violations, apperrors.FieldViolation{
			Property: "personalEmail", Constraints: []string{"Incorrect e-mail"},
		})
	}
	if len(req.Password) < minPasswordLength {
		violations = append(violations, passwordViolation("password"))
	}
	return violations
}

func validateSignIn(req dto.SignInRequest) []apperrors.FieldViolation {
	var violations []apperrors.FieldViolation
	if !isEmail(req.PersonalEmail) {
		violations = append(violations, apperrors.FieldViolation{
			Property: "personalEmail", Constraints: []string{"Incorrect e-mail"},
		})
	}
	if isEmail(req.Password) {
		violations = append(violations, apperrors.FieldViolation{
			Property: "password", Constraints: []string{"Do not use e-mails as password"},
		})
	} else if len(req.Password) < minPasswordLength {
		violations = append(violations, passwordViolation("password"))
	}
	return violations
}

func requiredViolation(property string) apperrors.FieldViolation {
	return apperrors.FieldViolation{Property: property, Constraints: []string{"Must not be empty"}}
}

func passwordViolation(property string) apperrors.FieldViolation {
	return apperrors.FieldViolation{
		Property:    property,
		Constraints: []string{"Password must be at least 6 characters long"},
	}
}

func isEmail(s string) bool {
	at := strings.Index(s, "@")
	return at > 0 && at < len(s)-1 && !strings.ContainsAny(s, " \t")
}
