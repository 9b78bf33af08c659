package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/license-service/internal/domain"
	"github.com/spec-kit/license-service/internal/repository"
	apperrors "github.com/spec-kit/license-service/pkg/util"
)

// ProductInput carries the software product fields for create and update.
// The id may be any vendor identifier; empty on create means a fresh UUID.
type ProductInput struct {
	ID          string
	Vendor      string
	ProductArea string
	ProductType string
	ProductName string
	Description string
}

// ProductService exposes software product CRUD. Writes are admin-only.
type ProductService struct {
	products repository.ProductRepository
	auth     *AuthService
}

// NewProductService builds the service.
func NewProductService(products repository.ProductRepository, authService *AuthService) *ProductService {
	return &ProductService{products: products, auth: authService}
}

// List returns every product.
func (s *ProductService) List(ctx context.Context) ([]*domain.SoftwareProduct, error) {
	return s.products.List(ctx)
}

// Get returns one product by id.
func (s *ProductService) Get(ctx context.Context, id string) (*domain.SoftwareProduct, error) {
	product, err := s.products.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("product", "id")
		}
		return nil, err
	}
	return product, nil
}

// Create registers a new product. Admin-only.
func (s *ProductService) Create(ctx context.Context, authHeader string, in ProductInput) (*domain.SoftwareProduct, error) {
	if _, err := s.auth.RequireAdmin(ctx, authHeader); err != nil {
		return nil, err
	}

	id := in.ID
	if id == "" {
		id = uuid.NewString()
	}
	product := &domain.SoftwareProduct{
		ID:          id,
		Vendor:      in.Vendor,
		ProductArea: in.ProductArea,
		ProductType: in.ProductType,
		ProductName: in.ProductName,
		Description: in.Description,
	}
	if err := s.products.Create(ctx, product); err != nil {
		return nil, err
	}
	return product, nil
}

// Update applies the product patch. Admin-only.
func (s *ProductService) Update(ctx context.Context, authHeader, id string, in ProductInput) (*domain.SoftwareProduct, error) {
	if _, err := s.auth.RequireAdmin(ctx, authHeader); err != nil {
		return nil, err
	}

	product, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	product.Vendor = in.Vendor
	product.ProductArea = in.ProductArea
	product.ProductType = in.ProductType
	product.ProductName = in.ProductName
	product.Description = in.Description

	if err := s.products.Update(ctx, product); err != nil {
		return nil, err
	}
	return product, nil
}

// Remove deletes a product. Admin-only.
func (s *ProductService) Remove(ctx context.Context, authHeader, id string) (*domain.SoftwareProduct, error) {
	if _, err := s.auth.RequireAdmin(ctx, authHeader); err != nil {
		return nil, err
	}

	deleted, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.products.Delete(ctx, id); err != nil {
		return nil, apperrors.NewBadRequest("unable to delete product", "")
	}
	return deleted, nil
}
