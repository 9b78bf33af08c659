package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/license-service/internal/api/dto"
	"github.com/spec-kit/license-service/internal/service"
	apperrors "github.com/spec-kit/license-service/pkg/util"
)

// LicensesHandler exposes license provisioning endpoints.
type LicensesHandler struct {
	licenses *service.LicenseService
}

// NewLicensesHandler constructs handler.
func NewLicensesHandler(licenseService *service.LicenseService) *LicensesHandler {
	return &LicensesHandler{licenses: licenseService}
}

// List handles GET /licenses.
func (h *LicensesHandler) List(c *fiber.Ctx) error {
	merged, err := h.licenses.List(c.Context(), c.Get(fiber.HeaderAuthorization))
	if err != nil {
		return err
	}
	return c.JSON(apperrors.OK(merged))
}

// Get handles GET /licenses/:id.
func (h *LicensesHandler) Get(c *fiber.Ctx) error {
	merged, err := h.licenses.Get(c.Context(), c.Get(fiber.HeaderAuthorization), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(apperrors.OK(merged))
}

// Create handles POST /licenses.
func (h *LicensesHandler) Create(c *fiber.Ctx) error {
	var req dto.CreateLicenseRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewBadRequest("invalid payload", "body")
	}

	var violations []apperrors.FieldViolation
	if req.ProductID == "" {
		violations = append(violations, apperrors.FieldViolation{
			Property: "productId", Constraints: []string{"Must be a string"},
		})
	}
	if req.PurchaserID == "" {
		violations = append(violations, apperrors.FieldViolation{
			Property: "purchaserId", Constraints: []string{"Must be a UUIDV4 type"},
		})
	}
	if req.LicenseType == "" {
		violations = append(violations, apperrors.FieldViolation{
			Property: "licenseType", Constraints: []string{"Must be a string"},
		})
	}
	if req.ExpiryDate.IsZero() {
		violations = append(violations, apperrors.FieldViolation{
			Property: "expiryDate", Constraints: []string{"Must be a correct date type"},
		})
	}
	if len(violations) > 0 {
		return apperrors.NewValidationFailed(violations)
	}

	license, err := h.licenses.Create(c.Context(), c.Get(fiber.HeaderAuthorization), service.CreateLicenseInput{
		ProductID:   req.ProductID,
		PurchaserID: req.PurchaserID,
		LicenseType: req.LicenseType,
		ExpiryDate:  req.ExpiryDate,
	})
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(apperrors.Created(license))
}

// Update handles PATCH /licenses/:id.
func (h *LicensesHandler) Update(c *fiber.Ctx) error {
	var req dto.UpdateLicenseRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewBadRequest("invalid payload", "body")
	}

	license, err := h.licenses.Update(c.Context(), c.Get(fiber.HeaderAuthorization), c.Params("id"), service.UpdateLicenseInput{
		ProductID:   req.ProductID,
		PurchaserID: req.PurchaserID,
		LicenseType: req.LicenseType,
		ExpiryDate:  req.ExpiryDate,
	})
	if err != nil {
		return err
	}
	return c.JSON(apperrors.OK(license))
}
