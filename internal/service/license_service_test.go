package service

import (
	"context"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/spec-kit/license-service/internal/domain"
	"github.com/spec-kit/license-service/internal/keygen"
	apperrors "github.com/spec-kit/license-service/pkg/util"
)

type licenseFixture struct {
	svc        *LicenseService
	licenses   *LicenseRepoMock
	purchasers *PurchaserRepoMock
	products   *ProductRepoMock
	accounts   *AccountRepoMock
	keys       *KeyIssuerMock
	admins     *AdminRepoMock
	auth       *AuthService
}

func newLicenseFixture() *licenseFixture {
	f := &licenseFixture{
		licenses:   new(LicenseRepoMock),
		purchasers: new(PurchaserRepoMock),
		products:   new(ProductRepoMock),
		accounts:   new(AccountRepoMock),
		keys:       new(KeyIssuerMock),
		admins:     new(AdminRepoMock),
	}
	f.auth = newTestAuthService(f.admins, f.accounts, f.purchasers)
	f.svc = NewLicenseService(LicenseDependencies{
		LicenseRepo:   f.licenses,
		PurchaserRepo: f.purchasers,
		ProductRepo:   f.products,
		AccountRepo:   f.accounts,
		Keys:          f.keys,
		Auth:          f.auth,
	}, zap.NewNop())
	return f
}

func (f *licenseFixture) adminHeader(t *testing.T) string {
	t.Helper()
	token, _, err := f.auth.TokenManager().Generate("A_admin-1")
	require.NoError(t, err)
	f.admins.On("GetByID", mock.Anything, "A_admin-1").Return(&domain.AdminAccount{ID: "A_admin-1"}, nil)
	return "Bearer " + token
}

func (f *licenseFixture) purchaserHeader(t *testing.T, accountID string) string {
	t.Helper()
	token, _, err := f.auth.TokenManager().Generate(accountID)
	require.NoError(t, err)
	return "Bearer " + token
}

func TestLicenseCreate(t *testing.T) {
	f := newLicenseFixture()
	expiry := time.Date(2027, time.March, 1, 0, 0, 0, 0, time.UTC)

	f.purchasers.On("GetByID", mock.Anything, "p-1").Return(&domain.Purchaser{
		ID:            "p-1",
		Firstname:     "John",
		Lastname:      "Doe",
		PersonalEmail: "john@mail.com",
	}, nil)
	f.products.On("GetByID", mock.Anything, "prod-1").Return(&domain.SoftwareProduct{ID: "prod-1"}, nil)
	f.keys.On("CreateKey", mock.Anything, "Bearer t", keygen.CreateKeyRequest{
		ProductID:   "prod-1",
		HolderName:  "John Doe",
		Email:       "john@mail.com",
		LicenseType: "trial",
		ExpiryDate:  "2027-03-01T00:00:00Z",
	}).Return(&keygen.Key{ID: "key-9", KeyToken: "tok"}, nil)

	var stored *domain.LicenseKey
	f.licenses.On("Create", mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
		stored = args.Get(1).(*domain.LicenseKey)
	}).Return(nil).Once()

	license, err := f.svc.Create(context.Background(), "Bearer t", CreateLicenseInput{
		ProductID:   "prod-1",
		PurchaserID: "p-1",
		LicenseType: "trial",
		ExpiryDate:  expiry,
	})
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.Equal(t, "key-9", license.LicenseKeyID)
	assert.Equal(t, stored, license)
	assert.Equal(t, expiry, license.ExpiryDate)
}

func TestLicenseCreate_UnknownReferences(t *testing.T) {
	f := newLicenseFixture()

	f.purchasers.On("GetByID", mock.Anything, "missing").Return(nil, pgx.ErrNoRows)
	_, err := f.svc.Create(context.Background(), "Bearer t", CreateLicenseInput{PurchaserID: "missing", ProductID: "prod-1"})
	domainErr := assertDomainStatus(t, err, 400)
	assert.Equal(t, "purchaser not found", domainErr.Message)

	f.purchasers.On("GetByID", mock.Anything, "p-1").Return(&domain.Purchaser{ID: "p-1"}, nil)
	f.products.On("GetByID", mock.Anything, "missing").Return(nil, pgx.ErrNoRows)
	_, err = f.svc.Create(context.Background(), "Bearer t", CreateLicenseInput{PurchaserID: "p-1", ProductID: "missing"})
	domainErr = assertDomainStatus(t, err, 400)
	assert.Equal(t, "product not found", domainErr.Message)

	f.keys.AssertNotCalled(t, "CreateKey", mock.Anything, mock.Anything, mock.Anything)
	f.licenses.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestLicenseCreate_ExternalFailurePersistsNothing(t *testing.T) {
	f := newLicenseFixture()

	f.purchasers.On("GetByID", mock.Anything, "p-1").Return(&domain.Purchaser{ID: "p-1"}, nil)
	f.products.On("GetByID", mock.Anything, "prod-1").Return(&domain.SoftwareProduct{ID: "prod-1"}, nil)
	f.keys.On("CreateKey", mock.Anything, mock.Anything, mock.Anything).
		Return(nil, keygenUnavailable()).Once()

	_, err := f.svc.Create(context.Background(), "Bearer t", CreateLicenseInput{
		PurchaserID: "p-1",
		ProductID:   "prod-1",
		LicenseType: "full",
		ExpiryDate:  time.Now().Add(24 * time.Hour),
	})
	assertDomainStatus(t, err, 503)
	f.licenses.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestLicenseList_MergesExternalKeys(t *testing.T) {
	f := newLicenseFixture()
	header := f.adminHeader(t)

	f.licenses.On("List", mock.Anything).Return([]*domain.LicenseKey{
		{ID: "l-1", LicenseKeyID: "key-1"},
		{ID: "l-2", LicenseKeyID: "key-2"},
	}, nil)
	f.keys.On("GetKey", mock.Anything, header, "key-1").Return(&keygen.Key{ID: "key-1", KeyToken: "t1"}, nil)
	f.keys.On("GetKey", mock.Anything, header, "key-2").Return(&keygen.Key{ID: "key-2", KeyToken: "t2"}, nil)

	merged, err := f.svc.List(context.Background(), header)
	require.NoError(t, err)
	require.Len(t, merged, 2)
	assert.Equal(t, "t1", merged[0].Key.KeyToken)
	assert.Equal(t, "t2", merged[1].Key.KeyToken)
}

func TestLicenseList_ExternalFailureAborts(t *testing.T) {
	f := newLicenseFixture()
	header := f.adminHeader(t)

	f.licenses.On("List", mock.Anything).Return([]*domain.LicenseKey{
		{ID: "l-1", LicenseKeyID: "key-1"},
		{ID: "l-2", LicenseKeyID: "key-2"},
	}, nil)
	f.keys.On("GetKey", mock.Anything, header, "key-1").Return(&keygen.Key{ID: "key-1"}, nil)
	f.keys.On("GetKey", mock.Anything, header, "key-2").Return(nil, keygenUnavailable())

	merged, err := f.svc.List(context.Background(), header)
	assertDomainStatus(t, err, 503)
	assert.Nil(t, merged)
}

func TestLicenseList_RequiresAdmin(t *testing.T) {
	f := newLicenseFixture()
	header := f.purchaserHeader(t, "acc-1")

	_, err := f.svc.List(context.Background(), header)
	assertDomainStatus(t, err, 400)
	f.licenses.AssertNotCalled(t, "List", mock.Anything)
}

func TestLicenseGet_NotFound(t *testing.T) {
	f := newLicenseFixture()
	header := f.adminHeader(t)

	f.licenses.On("GetByID", mock.Anything, "missing").Return(nil, pgx.ErrNoRows)
	_, err := f.svc.Get(context.Background(), header, "missing")
	assertDomainStatus(t, err, 404)
}

func TestLicenseUpdate_PatchesLocalMetadataOnly(t *testing.T) {
	f := newLicenseFixture()
	header := f.adminHeader(t)

	existing := &domain.LicenseKey{
		ID:           "l-1",
		ProductID:    "prod-1",
		PurchaserID:  "p-1",
		LicenseKeyID: "key-1",
		LicenseType:  "trial",
		ExpiryDate:   time.Date(2026, time.October, 1, 0, 0, 0, 0, time.UTC),
	}
	f.licenses.On("GetByID", mock.Anything, "l-1").Return(existing, nil)
	f.licenses.On("Update", mock.Anything, existing).Return(nil).Once()

	updated, err := f.svc.Update(context.Background(), header, "l-1", UpdateLicenseInput{LicenseType: "full"})
	require.NoError(t, err)
	assert.Equal(t, "full", updated.LicenseType)
	// Untouched fields keep their stored values, including the external ref.
	assert.Equal(t, "key-1", updated.LicenseKeyID)
	assert.Equal(t, "prod-1", updated.ProductID)
	f.keys.AssertNotCalled(t, "CreateKey", mock.Anything, mock.Anything, mock.Anything)
}

func TestValidateOwnership(t *testing.T) {
	f := newLicenseFixture()
	header := f.purchaserHeader(t, "acc-1")

	f.accounts.On("GetByID", mock.Anything, "acc-1").
		Return(&domain.PurchaserAccount{ID: "acc-1", PurchaserID: "p-1"}, nil)
	f.licenses.On("ListByPurchaserID", mock.Anything, "p-1").Return([]*domain.LicenseKey{
		{ID: "l-1", PurchaserID: "p-1"},
	}, nil)

	assert.NoError(t, f.svc.ValidateOwnership(context.Background(), header, "l-1"))

	err := f.svc.ValidateOwnership(context.Background(), header, "l-other")
	domainErr := assertDomainStatus(t, err, 400)
	assert.Equal(t, "invalid auth token", domainErr.Message)
}

func TestValidateOwnership_AdminBypassesCollectionCheck(t *testing.T) {
	f := newLicenseFixture()
	header := f.adminHeader(t)

	assert.NoError(t, f.svc.ValidateOwnership(context.Background(), header, "l-anything"))
	f.licenses.AssertNotCalled(t, "ListByPurchaserID", mock.Anything, mock.Anything)
}

func keygenUnavailable() error {
	return apperrors.NewExternalError(503, []string{"upstream unavailable"}, "POST", "http://127.0.0.1:9090/api/v1/keys/")
}
