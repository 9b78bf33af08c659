package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/spec-kit/license-service/internal/domain"
	"github.com/spec-kit/license-service/internal/keygen"
	"github.com/spec-kit/license-service/internal/repository"
	apperrors "github.com/spec-kit/license-service/pkg/util"
)

// KeyIssuer is the external license-key issuing service as the orchestrator
// consumes it.
type KeyIssuer interface {
	CreateKey(ctx context.Context, authHeader string, body keygen.CreateKeyRequest) (*keygen.Key, error)
	GetKeys(ctx context.Context, authHeader string) ([]keygen.Key, error)
	GetKey(ctx context.Context, authHeader, keyID string) (*keygen.Key, error)
}

// CreateLicenseInput is the request to provision a new license.
type CreateLicenseInput struct {
	ProductID   string
	PurchaserID string
	LicenseType string
	ExpiryDate  time.Time
}

// UpdateLicenseInput patches local license metadata. Zero values leave the
// field untouched; the external key material is never updated.
type UpdateLicenseInput struct {
	ProductID   string
	PurchaserID string
	LicenseType string
	ExpiryDate  time.Time
}

// LicenseWithKey is a local record merged with the externally-held key data.
type LicenseWithKey struct {
	*domain.LicenseKey
	Key *keygen.Key `json:"license_key_token"`
}

// LicenseService orchestrates local license records against the external
// key-issuing service.
type LicenseService struct {
	licenses   repository.LicenseRepository
	purchasers repository.PurchaserRepository
	products   repository.ProductRepository
	accounts   repository.AccountRepository
	keys       KeyIssuer
	auth       *AuthService
	logger     *zap.Logger
}

// LicenseDependencies encapsulates requirements for the license service.
type LicenseDependencies struct {
	LicenseRepo   repository.LicenseRepository
	PurchaserRepo repository.PurchaserRepository
	ProductRepo   repository.ProductRepository
	AccountRepo   repository.AccountRepository
	Keys          KeyIssuer
	Auth          *AuthService
}

// NewLicenseService builds the service.
func NewLicenseService(deps LicenseDependencies, logger *zap.Logger) *LicenseService {
	return &LicenseService{
		licenses:   deps.LicenseRepo,
		purchasers: deps.PurchaserRepo,
		products:   deps.ProductRepo,
		accounts:   deps.AccountRepo,
		keys:       deps.Keys,
		auth:       deps.Auth,
		logger:     logger,
	}
}

// Create validates purchaser and product, mints the key externally and then
// persists the local record referencing it. The local write happens only
// after the external call succeeded.
func (s *LicenseService) Create(ctx context.Context, authHeader string, in CreateLicenseInput) (*domain.LicenseKey, error) {
	purchaser, err := s.purchasers.GetByID(ctx, in.PurchaserID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewBadRequest("purchaser not found", "purchaserId")
		}
		return nil, err
	}

	if _, err := s.products.GetByID(ctx, in.ProductID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewBadRequest("product not found", "productId")
		}
		return nil, err
	}

	key, err := s.keys.CreateKey(ctx, authHeader, keygen.CreateKeyRequest{
		ProductID:   in.ProductID,
		HolderName:  purchaser.FullName(),
		Email:       purchaser.PersonalEmail,
		LicenseType: in.LicenseType,
		ExpiryDate:  in.ExpiryDate.UTC().Format(time.RFC3339),
	})
	if err != nil {
		return nil, err
	}

	license := &domain.LicenseKey{
		ID:           uuid.NewString(),
		ProductID:    in.ProductID,
		PurchaserID:  in.PurchaserID,
		LicenseKeyID: key.ID,
		LicenseType:  in.LicenseType,
		ExpiryDate:   in.ExpiryDate,
	}
	if err := s.licenses.Create(ctx, license); err != nil {
		// The external key now has no local record referencing it. There is
		// no revocation endpoint, so the orphan can only be reported.
		s.logger.Error("external key issued but local license record was not persisted",
			zap.String("license_key_id", key.ID),
			zap.String("purchaser_id", in.PurchaserID),
			zap.Error(err))
		return nil, err
	}
	return license, nil
}

// List returns every local record merged with its external key data.
// Administrator-only. Any external fetch failure aborts the whole response
// rather than returning partial data.
func (s *LicenseService) List(ctx context.Context, authHeader string) ([]*LicenseWithKey, error) {
	if _, err := s.auth.RequireAdmin(ctx, authHeader); err != nil {
		return nil, err
	}

	licenses, err := s.licenses.List(ctx)
	if err != nil {
		return nil, err
	}

	merged := make([]*LicenseWithKey, 0, len(licenses))
	for _, license := range licenses {
		key, err := s.keys.GetKey(ctx, authHeader, license.LicenseKeyID)
		if err != nil {
			return nil, err
		}
		merged = append(merged, &LicenseWithKey{LicenseKey: license, Key: key})
	}
	return merged, nil
}

// Get returns one record merged with its external key data. Administrator-only.
func (s *LicenseService) Get(ctx context.Context, authHeader, id string) (*LicenseWithKey, error) {
	if _, err := s.auth.RequireAdmin(ctx, authHeader); err != nil {
		return nil, err
	}

	license, err := s.licenses.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("license", "id")
		}
		return nil, err
	}

	key, err := s.keys.GetKey(ctx, authHeader, license.LicenseKeyID)
	if err != nil {
		return nil, err
	}
	return &LicenseWithKey{LicenseKey: license, Key: key}, nil
}

// Update patches local metadata only. The external key reference and
// material stay as issued.
func (s *LicenseService) Update(ctx context.Context, authHeader, id string, in UpdateLicenseInput) (*domain.LicenseKey, error) {
	if _, err := s.auth.RequireAdmin(ctx, authHeader); err != nil {
		return nil, err
	}

	license, err := s.licenses.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("license", "id")
		}
		return nil, err
	}

	if in.ProductID != "" {
		license.ProductID = in.ProductID
	}
	if in.PurchaserID != "" {
		license.PurchaserID = in.PurchaserID
	}
	if in.LicenseType != "" {
		license.LicenseType = in.LicenseType
	}
	if !in.ExpiryDate.IsZero() {
		license.ExpiryDate = in.ExpiryDate
	}

	if err := s.licenses.Update(ctx, license); err != nil {
		return nil, err
	}
	return license, nil
}

// ValidateOwnership passes when the bearer header resolves to an
// administrator or to the purchaser account whose license collection
// contains the given record.
func (s *LicenseService) ValidateOwnership(ctx context.Context, authHeader, licenseID string) error {
	if _, err := s.auth.RequireAdmin(ctx, authHeader); err == nil {
		return nil
	}

	claims, err := s.auth.decodeHeader(authHeader)
	if err != nil {
		return err
	}

	account, err := s.accounts.GetByID(ctx, claims.AccountID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewBadRequest("invalid auth token", "")
		}
		return err
	}

	licenses, err := s.licenses.ListByPurchaserID(ctx, account.PurchaserID)
	if err != nil {
		return err
	}
	for _, license := range licenses {
		if license.ID == licenseID {
			return nil
		}
	}
	return apperrors.NewBadRequest("invalid auth token", "")
}
