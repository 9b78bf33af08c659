package service

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/spec-kit/license-service/internal/domain"
	"github.com/spec-kit/license-service/internal/repository"
	apperrors "github.com/spec-kit/license-service/pkg/util"
)

// UpdatePurchaserInput is the purchaser profile patch.
type UpdatePurchaserInput struct {
	Firstname       string
	Middlename      string
	Lastname        string
	PersonalEmail   string
	PersonalPhone   string
	Company         string
	CorporateEmail  string
	CorporatePhone  string
	FieldOfActivity string
	Position        string
}

// PurchaserService exposes purchaser profile reads and the deletion cascade.
type PurchaserService struct {
	purchasers repository.PurchaserRepository
	auth       *AuthService
	logger     *zap.Logger
}

// NewPurchaserService builds the service.
func NewPurchaserService(purchasers repository.PurchaserRepository, authService *AuthService, logger *zap.Logger) *PurchaserService {
	return &PurchaserService{purchasers: purchasers, auth: authService, logger: logger}
}

// List returns every purchaser profile.
func (s *PurchaserService) List(ctx context.Context) ([]*domain.Purchaser, error) {
	return s.purchasers.List(ctx)
}

// Get returns one purchaser profile by id.
func (s *PurchaserService) Get(ctx context.Context, id string) (*domain.Purchaser, error) {
	purchaser, err := s.purchasers.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("purchaser", "id")
		}
		return nil, err
	}
	return purchaser, nil
}

// GetByEmail looks a purchaser up by personal or corporate email.
func (s *PurchaserService) GetByEmail(ctx context.Context, email string, corporate bool) (*domain.Purchaser, error) {
	if corporate {
		return s.purchasers.GetByCorporateEmail(ctx, email)
	}
	return s.purchasers.GetByPersonalEmail(ctx, email)
}

// Exists reports whether a purchaser with the given personal email is
// registered.
func (s *PurchaserService) Exists(ctx context.Context, personalEmail string) (bool, error) {
	_, err := s.purchasers.GetByPersonalEmail(ctx, personalEmail)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// Update applies the profile patch.
func (s *PurchaserService) Update(ctx context.Context, id string, in UpdatePurchaserInput) (*domain.Purchaser, error) {
	purchaser, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	purchaser.Firstname = in.Firstname
	purchaser.Middlename = in.Middlename
	purchaser.Lastname = in.Lastname
	purchaser.PersonalEmail = in.PersonalEmail
	purchaser.PersonalPhone = in.PersonalPhone
	purchaser.Company = in.Company
	purchaser.CorporateEmail = in.CorporateEmail
	purchaser.CorporatePhone = in.CorporatePhone
	purchaser.FieldOfActivity = in.FieldOfActivity
	purchaser.Position = in.Position

	if err := s.purchasers.Update(ctx, purchaser); err != nil {
		return nil, err
	}
	return purchaser, nil
}

// Remove deletes a purchaser after the ownership check, cascading the
// credential record first. The cascade is owned here, not by the store.
func (s *PurchaserService) Remove(ctx context.Context, authHeader, id string) (*domain.Purchaser, error) {
	if err := s.auth.RequireOwner(ctx, authHeader, id); err != nil {
		return nil, err
	}

	deleted, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.auth.DeleteAccountByPurchaserID(ctx, id); err != nil {
		return nil, err
	}
	if err := s.purchasers.Delete(ctx, id); err != nil {
		s.logger.Error("failed to delete purchaser after account cascade",
			zap.String("purchaser_id", id), zap.Error(err))
		return nil, apperrors.NewBadRequest("unable to delete purchaser", "")
	}
	return deleted, nil
}
