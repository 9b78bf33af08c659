package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/spec-kit/license-service/internal/auth"
	"github.com/spec-kit/license-service/internal/config"
	"github.com/spec-kit/license-service/internal/domain"
	"github.com/spec-kit/license-service/internal/repository"
	apperrors "github.com/spec-kit/license-service/pkg/util"
)

// Bootstrap credential for the very first administrator. Not a security
// control: rotate immediately in any real deployment.
const (
	defaultAdminEmail    = "admin@email.com"
	defaultAdminPassword = "default_admin_passwd"
)

// SignUpInput carries the purchaser profile plus the account password.
type SignUpInput struct {
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
	Password        string
}

// UpdateAdminInput is the administrator self-service profile patch.
type UpdateAdminInput struct {
	Firstname     string
	Middlename    string
	Lastname      string
	PersonalEmail string
	Position      string
}

// AuthService resolves credentials and tokens against the two account
// namespaces: administrator accounts and purchaser-linked accounts.
type AuthService struct {
	admins     repository.AdminRepository
	accounts   repository.AccountRepository
	purchasers repository.PurchaserRepository
	tokenMgr   *auth.TokenManager
	bcryptCost int
	logger     *zap.Logger
}

// AuthDependencies encapsulates repo requirements for the auth service.
type AuthDependencies struct {
	AdminRepo     repository.AdminRepository
	AccountRepo   repository.AccountRepository
	PurchaserRepo repository.PurchaserRepository
}

// NewAuthService builds the service.
func NewAuthService(cfg config.Config, deps AuthDependencies, logger *zap.Logger) *AuthService {
	return &AuthService{
		admins:     deps.AdminRepo,
		accounts:   deps.AccountRepo,
		purchasers: deps.PurchaserRepo,
		tokenMgr:   auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.AccessTokenTTLMinutes),
		bcryptCost: cfg.Auth.BcryptCost,
		logger:     logger,
	}
}

// EnsureDefaultAdmin provisions the bootstrap administrator if the table is
// empty. Invoked once from main before request serving begins; idempotent.
func (s *AuthService) EnsureDefaultAdmin(ctx context.Context) error {
	count, err := s.admins.Count(ctx)
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	hash, err := auth.HashPassword(defaultAdminPassword, s.bcryptCost)
	if err != nil {
		return err
	}

	admin := &domain.AdminAccount{
		ID:            domain.AdminIDPrefix + uuid.NewString(),
		Firstname:     "Admin firstname",
		Middlename:    "Admin firstname",
		PersonalEmail: defaultAdminEmail,
		PasswordHash:  hash,
	}
	if err := s.admins.Create(ctx, admin); err != nil {
		return err
	}

	s.logger.Warn("provisioned default administrator account; rotate its password",
		zap.String("email", defaultAdminEmail))
	return nil
}

// SignIn resolves credentials to a principal and issues a token. The
// administrator branch is tried first: an admin email colliding with a
// purchaser email always resolves as the admin. Both fields failing yields
// the same generic Unauthorized so the response does not reveal which one
// was wrong.
func (s *AuthService) SignIn(ctx context.Context, email, password string) (*domain.Principal, string, error) {
	admin, err := s.admins.GetByEmail(ctx, email)
	switch {
	case err == nil:
		// The admin branch consumes the email match: a purchaser sharing
		// the email can no longer sign in with its own password.
		if err := auth.ComparePassword(admin.PasswordHash, password); err != nil {
			return nil, "", apperrors.NewUnauthorized("incorrect e-mail or password", "sign-in")
		}
		token, _, err := s.tokenMgr.Generate(admin.ID)
		if err != nil {
			return nil, "", err
		}
		principal := &domain.Principal{Kind: domain.PrincipalKindAdmin, AccountID: admin.ID, Admin: admin}
		return principal, token, nil
	case !errors.Is(err, pgx.ErrNoRows):
		return nil, "", err
	}

	account, purchaser, err := s.validateAccount(ctx, email, password)
	if err != nil {
		return nil, "", err
	}

	token, _, err := s.tokenMgr.Generate(account.ID)
	if err != nil {
		return nil, "", err
	}
	principal := &domain.Principal{Kind: domain.PrincipalKindPurchaser, AccountID: account.ID, Purchaser: purchaser}
	return principal, token, nil
}

// SignUp registers a new purchaser with its credential record and issues a
// token for the fresh account.
func (s *AuthService) SignUp(ctx context.Context, in SignUpInput) (string, error) {
	_, err := s.purchasers.GetByPersonalEmail(ctx, in.PersonalEmail)
	if err == nil {
		return "", apperrors.NewBadRequest("the specified personal email address is already registered", "sign-up")
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return "", err
	}

	hash, err := auth.HashPassword(in.Password, s.bcryptCost)
	if err != nil {
		return "", err
	}

	purchaser := &domain.Purchaser{
		ID:              uuid.NewString(),
		Firstname:       in.Firstname,
		Middlename:      in.Middlename,
		Lastname:        in.Lastname,
		PersonalEmail:   in.PersonalEmail,
		PersonalPhone:   in.PersonalPhone,
		Company:         in.Company,
		CorporateEmail:  in.CorporateEmail,
		CorporatePhone:  in.CorporatePhone,
		FieldOfActivity: in.FieldOfActivity,
		Position:        in.Position,
	}
	if err := s.purchasers.Create(ctx, purchaser); err != nil {
		return "", err
	}

	account := &domain.PurchaserAccount{
		ID:           uuid.NewString(),
		PurchaserID:  purchaser.ID,
		PasswordHash: hash,
	}
	if err := s.accounts.Create(ctx, account); err != nil {
		// Compensate: the profile without its credential record is an orphan.
		if delErr := s.purchasers.Delete(ctx, purchaser.ID); delErr != nil {
			s.logger.Error("failed to roll back purchaser after account creation failure",
				zap.String("purchaser_id", purchaser.ID), zap.Error(delErr))
		}
		return "", err
	}

	token, _, err := s.tokenMgr.Generate(account.ID)
	if err != nil {
		return "", err
	}
	return token, nil
}

// ValidateToken confirms the token's subject still exists and resolves it to
// a principal. The subject's structural prefix decides which table is
// consulted.
func (s *AuthService) ValidateToken(ctx context.Context, claims *auth.Claims) (*domain.Principal, error) {
	if claims == nil || claims.AccountID == "" {
		return nil, apperrors.NewUnauthorized("incorrect auth token", "")
	}

	accountID := claims.AccountID
	if domain.ClassifyAccountID(accountID) == domain.PrincipalKindAdmin {
		admin, err := s.admins.GetByID(ctx, accountID)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return nil, apperrors.NewUnauthorized("incorrect auth token", "")
			}
			return nil, err
		}
		return &domain.Principal{Kind: domain.PrincipalKindAdmin, AccountID: accountID, Admin: admin}, nil
	}

	account, err := s.accounts.GetByID(ctx, accountID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewUnauthorized("incorrect auth token", "")
		}
		return nil, err
	}
	purchaser, err := s.purchasers.GetByID(ctx, account.PurchaserID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewUnauthorized("incorrect auth token", "")
		}
		return nil, err
	}
	return &domain.Principal{Kind: domain.PrincipalKindPurchaser, AccountID: accountID, Purchaser: purchaser}, nil
}

// RequireAdmin decodes the bearer header and requires an administrator
// subject. Failures are BadRequest, not Unauthorized: this check guards
// operations inline rather than at the gate, and the asymmetry is part of
// the client-visible contract.
func (s *AuthService) RequireAdmin(ctx context.Context, authHeader string) (*domain.AdminAccount, error) {
	claims, err := s.decodeHeader(authHeader)
	if err != nil {
		return nil, err
	}

	if !domain.IsAdminID(claims.AccountID) {
		return nil, apperrors.NewBadRequest("you are not an admin", "")
	}

	admin, err := s.admins.GetByID(ctx, claims.AccountID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewBadRequest("incorrect auth token", "")
		}
		return nil, err
	}
	return admin, nil
}

// RequireOwner passes when the bearer header resolves to an administrator or
// to the purchaser account owning the given purchaser id.
func (s *AuthService) RequireOwner(ctx context.Context, authHeader, purchaserID string) error {
	claims, err := s.decodeHeader(authHeader)
	if err != nil {
		return err
	}

	if domain.IsAdminID(claims.AccountID) {
		if _, err := s.admins.GetByID(ctx, claims.AccountID); err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return apperrors.NewBadRequest("invalid auth token", "")
			}
			return err
		}
		return nil
	}

	account, err := s.accounts.GetByID(ctx, claims.AccountID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewBadRequest("invalid auth token", "")
		}
		return err
	}
	if account.PurchaserID != purchaserID {
		return apperrors.NewBadRequest("invalid auth token", "")
	}
	return nil
}

// UpdatePassword re-verifies the old password for the already-identified
// principal before replacing the stored hash. The purchaser branch only
// allows changing the account named by the token subject.
func (s *AuthService) UpdatePassword(ctx context.Context, authHeader, targetID, oldPassword, newPassword string) error {
	claims, err := s.decodeHeader(authHeader)
	if err != nil {
		return err
	}
	accountID := claims.AccountID

	admin, err := s.adminByID(ctx, accountID)
	if err != nil {
		return err
	}
	if admin != nil {
		validated, err := s.validateAdmin(ctx, admin.PersonalEmail, oldPassword)
		if err != nil {
			return err
		}
		if validated == nil {
			return apperrors.NewBadRequest("incorrect old password", "updatePassword")
		}

		hash, err := auth.HashPassword(newPassword, s.bcryptCost)
		if err != nil {
			return err
		}
		return s.admins.UpdatePassword(ctx, accountID, hash)
	}

	if accountID != targetID {
		return apperrors.NewBadRequest("incorrect auth token", "updatePassword")
	}

	account, err := s.accounts.GetByID(ctx, accountID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewBadRequest("incorrect auth token", "updatePassword")
		}
		return err
	}
	purchaser, err := s.purchasers.GetByID(ctx, account.PurchaserID)
	if err != nil {
		return err
	}

	if _, _, err := s.validateAccount(ctx, purchaser.PersonalEmail, oldPassword); err != nil {
		return apperrors.NewBadRequest("incorrect old password", "updatePassword")
	}

	hash, err := auth.HashPassword(newPassword, s.bcryptCost)
	if err != nil {
		return err
	}
	return s.accounts.UpdatePassword(ctx, targetID, hash)
}

// UpdateAdminAccount applies the self-service profile patch. Only the
// administrator named by the token subject can be edited; there is no
// admin-of-admin path.
func (s *AuthService) UpdateAdminAccount(ctx context.Context, authHeader string, in UpdateAdminInput) (*domain.AdminAccount, error) {
	claims, err := s.decodeHeader(authHeader)
	if err != nil {
		return nil, err
	}

	admin, err := s.adminByID(ctx, claims.AccountID)
	if err != nil {
		return nil, err
	}
	if admin == nil {
		return nil, apperrors.NewBadRequest("incorrect auth token", "")
	}

	admin.Firstname = in.Firstname
	admin.Middlename = in.Middlename
	admin.Lastname = in.Lastname
	admin.PersonalEmail = in.PersonalEmail
	admin.Position = in.Position

	if err := s.admins.Update(ctx, admin); err != nil {
		return nil, err
	}
	return admin, nil
}

// GetAdminAccounts lists administrator accounts for an admin caller.
func (s *AuthService) GetAdminAccounts(ctx context.Context, authHeader string) ([]*domain.AdminAccount, error) {
	if _, err := s.RequireAdmin(ctx, authHeader); err != nil {
		return nil, err
	}
	return s.admins.List(ctx)
}

// FindAccountByPurchaserID maps a purchaser back to its credential record.
func (s *AuthService) FindAccountByPurchaserID(ctx context.Context, purchaserID string) (*domain.PurchaserAccount, error) {
	return s.accounts.GetByPurchaserID(ctx, purchaserID)
}

// DeleteAccountByPurchaserID removes the credential record as part of the
// purchaser deletion cascade.
func (s *AuthService) DeleteAccountByPurchaserID(ctx context.Context, purchaserID string) error {
	return s.accounts.DeleteByPurchaserID(ctx, purchaserID)
}

// TokenManager exposes the underlying token manager for middleware usage.
func (s *AuthService) TokenManager() *auth.TokenManager {
	return s.tokenMgr
}

// decodeHeader extracts and decodes the bearer token, mapping every failure
// to BadRequest for the inline admin/owner checks.
func (s *AuthService) decodeHeader(authHeader string) (*auth.Claims, error) {
	token, ok := auth.BearerFromHeader(authHeader)
	if !ok {
		return nil, apperrors.NewBadRequest("unable to decode auth token", "")
	}
	claims, err := s.tokenMgr.Decode(token)
	if err != nil {
		return nil, apperrors.NewBadRequest("unable to decode auth token", "")
	}
	if claims.AccountID == "" {
		return nil, apperrors.NewBadRequest("incorrect auth token", "")
	}
	return claims, nil
}

// validateAdmin returns the admin account when email and password match,
// nil when either does not, and an error only on store failures.
func (s *AuthService) validateAdmin(ctx context.Context, email, password string) (*domain.AdminAccount, error) {
	admin, err := s.admins.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	if err := auth.ComparePassword(admin.PasswordHash, password); err != nil {
		return nil, nil
	}
	return admin, nil
}

// validateAccount resolves a purchaser account via the owning profile's
// personal email and verifies the password.
func (s *AuthService) validateAccount(ctx context.Context, email, password string) (*domain.PurchaserAccount, *domain.Purchaser, error) {
	purchaser, err := s.purchasers.GetByPersonalEmail(ctx, email)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil, apperrors.NewUnauthorized("incorrect e-mail or password", "sign-in")
		}
		return nil, nil, err
	}

	account, err := s.accounts.GetByPurchaserID(ctx, purchaser.ID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil, apperrors.NewUnauthorized("incorrect e-mail or password", "sign-in")
		}
		return nil, nil, err
	}

	if err := auth.ComparePassword(account.PasswordHash, password); err != nil {
		return nil, nil, apperrors.NewUnauthorized("incorrect e-mail or password", "sign-in")
	}
	return account, purchaser, nil
}

func (s *AuthService) adminByID(ctx context.Context, id string) (*domain.AdminAccount, error) {
	if !domain.IsAdminID(id) {
		return nil, nil
	}
	admin, err := s.admins.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return admin, nil
}
