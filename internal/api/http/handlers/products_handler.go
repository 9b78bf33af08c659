package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/license-service/internal/api/dto"
	"github.com/spec-kit/license-service/internal/service"
	apperrors "github.com/spec-kit/license-service/pkg/util"
)

// ProductsHandler exposes software product endpoints.
type ProductsHandler struct {
	products *service.ProductService
}

// NewProductsHandler constructs handler.
func NewProductsHandler(productService *service.ProductService) *ProductsHandler {
	return &ProductsHandler{products: productService}
}

// List handles GET /products.
func (h *ProductsHandler) List(c *fiber.Ctx) error {
	products, err := h.products.List(c.Context())
	if err != nil {
		return err
	}
	return c.JSON(apperrors.OK(products))
}

// Get handles GET /products/:id.
func (h *ProductsHandler) Get(c *fiber.Ctx) error {
	product, err := h.products.Get(c.Context(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(apperrors.OK(product))
}

// Create handles POST /products.
func (h *ProductsHandler) Create(c *fiber.Ctx) error {
	req, err := parseProduct(c)
	if err != nil {
		return err
	}

	product, err := h.products.Create(c.Context(), c.Get(fiber.HeaderAuthorization), req)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(apperrors.Created(product))
}

// Update handles PUT /products/:id.
func (h *ProductsHandler) Update(c *fiber.Ctx) error {
	req, err := parseProduct(c)
	if err != nil {
		return err
	}

	product, err := h.products.Update(c.Context(), c.Get(fiber.HeaderAuthorization), c.Params("id"), req)
	if err != nil {
		return err
	}
	return c.JSON(apperrors.OK(product))
}

// Delete handles DELETE /products/:id.
func (h *ProductsHandler) Delete(c *fiber.Ctx) error {
	deleted, err := h.products.Remove(c.Context(), c.Get(fiber.HeaderAuthorization), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(apperrors.OK(deleted))
}

func parseProduct(c *fiber.Ctx) (service.ProductInput, error) {
	var req dto.ProductRequest
	if err := c.BodyParser(&req); err != nil {
		return service.ProductInput{}, apperrors.NewBadRequest("invalid payload", "body")
	}

	var violations []apperrors.FieldViolation
	if req.Vendor == "" {
		violations = append(violations, apperrors.FieldViolation{
			Property: "vendor", Constraints: []string{"Must not be empty"},
		})
	}
	if req.ProductName == "" {
		violations = append(violations, apperrors.FieldViolation{
			Property: "productName", Constraints: []string{"Must not be empty"},
		})
	}
	if len(violations) > 0 {
		return service.ProductInput{}, apperrors.NewValidationFailed(violations)
	}

	return service.ProductInput{
		ID:          req.ID,
		Vendor:      req.Vendor,
		ProductArea: req.ProductArea,
		ProductType: req.ProductType,
		ProductName: req.ProductName,
		Description: req.Description,
	}, nil
}
