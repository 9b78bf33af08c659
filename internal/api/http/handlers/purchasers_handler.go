package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/license-service/internal/api/dto"
	"github.com/spec-kit/license-service/internal/service"
	apperrors "github.com/spec-kit/license-service/pkg/util"
)

// PurchasersHandler exposes purchaser profile endpoints.
type PurchasersHandler struct {
	purchasers *service.PurchaserService
}

// NewPurchasersHandler constructs handler.
func NewPurchasersHandler(purchaserService *service.PurchaserService) *PurchasersHandler {
	return &PurchasersHandler{purchasers: purchaserService}
}

// List handles GET /purchasers.
func (h *PurchasersHandler) List(c *fiber.Ctx) error {
	purchasers, err := h.purchasers.List(c.Context())
	if err != nil {
		return err
	}
	return c.JSON(apperrors.OK(purchaserViews(purchasers)))
}

// Get handles GET /purchasers/:id.
func (h *PurchasersHandler) Get(c *fiber.Ctx) error {
	purchaser, err := h.purchasers.Get(c.Context(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(apperrors.OK(purchaserView(purchaser)))
}

// Update handles PUT /purchasers/:id.
func (h *PurchasersHandler) Update(c *fiber.Ctx) error {
	var req dto.UpdatePurchaserRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewBadRequest("invalid payload", "body")
	}

	purchaser, err := h.purchasers.Update(c.Context(), c.Params("id"), service.UpdatePurchaserInput{
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
	})
	if err != nil {
		return err
	}
	return c.JSON(apperrors.OK(purchaserView(purchaser)))
}

// Delete handles DELETE /purchasers/:id.
func (h *PurchasersHandler) Delete(c *fiber.Ctx) error {
	deleted, err := h.purchasers.Remove(c.Context(), c.Get(fiber.HeaderAuthorization), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(apperrors.OK(purchaserView(deleted)))
}
