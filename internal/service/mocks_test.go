package service

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/spec-kit/license-service/internal/domain"
	"github.com/spec-kit/license-service/internal/keygen"
)

type AdminRepoMock struct {
	mock.Mock
}

func (m *AdminRepoMock) Create(ctx context.Context, admin *domain.AdminAccount) error {
	return m.Called(ctx, admin).Error(0)
}

func (m *AdminRepoMock) Update(ctx context.Context, admin *domain.AdminAccount) error {
	return m.Called(ctx, admin).Error(0)
}

func (m *AdminRepoMock) UpdatePassword(ctx context.Context, id, passwordHash string) error {
	return m.Called(ctx, id, passwordHash).Error(0)
}

func (m *AdminRepoMock) GetByID(ctx context.Context, id string) (*domain.AdminAccount, error) {
	args := m.Called(ctx, id)
	admin, _ := args.Get(0).(*domain.AdminAccount)
	return admin, args.Error(1)
}

func (m *AdminRepoMock) GetByEmail(ctx context.Context, email string) (*domain.AdminAccount, error) {
	args := m.Called(ctx, email)
	admin, _ := args.Get(0).(*domain.AdminAccount)
	return admin, args.Error(1)
}

func (m *AdminRepoMock) List(ctx context.Context) ([]*domain.AdminAccount, error) {
	args := m.Called(ctx)
	admins, _ := args.Get(0).([]*domain.AdminAccount)
	return admins, args.Error(1)
}

func (m *AdminRepoMock) Count(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

type AccountRepoMock struct {
	mock.Mock
}

func (m *AccountRepoMock) Create(ctx context.Context, account *domain.PurchaserAccount) error {
	return m.Called(ctx, account).Error(0)
}

func (m *AccountRepoMock) UpdatePassword(ctx context.Context, id, passwordHash string) error {
	return m.Called(ctx, id, passwordHash).Error(0)
}

func (m *AccountRepoMock) GetByID(ctx context.Context, id string) (*domain.PurchaserAccount, error) {
	args := m.Called(ctx, id)
	account, _ := args.Get(0).(*domain.PurchaserAccount)
	return account, args.Error(1)
}

func (m *AccountRepoMock) GetByPurchaserID(ctx context.Context, purchaserID string) (*domain.PurchaserAccount, error) {
	args := m.Called(ctx, purchaserID)
	account, _ := args.Get(0).(*domain.PurchaserAccount)
	return account, args.Error(1)
}

func (m *AccountRepoMock) DeleteByPurchaserID(ctx context.Context, purchaserID string) error {
	return m.Called(ctx, purchaserID).Error(0)
}

type PurchaserRepoMock struct {
	mock.Mock
}

func (m *PurchaserRepoMock) Create(ctx context.Context, purchaser *domain.Purchaser) error {
	return m.Called(ctx, purchaser).Error(0)
}

func (m *PurchaserRepoMock) Update(ctx context.Context, purchaser *domain.Purchaser) error {
	return m.Called(ctx, purchaser).Error(0)
}

func (m *PurchaserRepoMock) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

func (m *PurchaserRepoMock) GetByID(ctx context.Context, id string) (*domain.Purchaser, error) {
	args := m.Called(ctx, id)
	purchaser, _ := args.Get(0).(*domain.Purchaser)
	return purchaser, args.Error(1)
}

func (m *PurchaserRepoMock) GetByPersonalEmail(ctx context.Context, email string) (*domain.Purchaser, error) {
	args := m.Called(ctx, email)
	purchaser, _ := args.Get(0).(*domain.Purchaser)
	return purchaser, args.Error(1)
}

func (m *PurchaserRepoMock) GetByCorporateEmail(ctx context.Context, email string) (*domain.Purchaser, error) {
	args := m.Called(ctx, email)
	purchaser, _ := args.Get(0).(*domain.Purchaser)
	return purchaser, args.Error(1)
}

func (m *PurchaserRepoMock) List(ctx context.Context) ([]*domain.Purchaser, error) {
	args := m.Called(ctx)
	purchasers, _ := args.Get(0).([]*domain.Purchaser)
	return purchasers, args.Error(1)
}

type ProductRepoMock struct {
	mock.Mock
}

func (m *ProductRepoMock) Create(ctx context.Context, product *domain.SoftwareProduct) error {
	return m.Called(ctx, product).Error(0)
}

func (m *ProductRepoMock) Update(ctx context.Context, product *domain.SoftwareProduct) error {
	return m.Called(ctx, product).Error(0)
}

func (m *ProductRepoMock) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

func (m *ProductRepoMock) GetByID(ctx context.Context, id string) (*domain.SoftwareProduct, error) {
	args := m.Called(ctx, id)
	product, _ := args.Get(0).(*domain.SoftwareProduct)
	return product, args.Error(1)
}

func (m *ProductRepoMock) List(ctx context.Context) ([]*domain.SoftwareProduct, error) {
	args := m.Called(ctx)
	products, _ := args.Get(0).([]*domain.SoftwareProduct)
	return products, args.Error(1)
}

type LicenseRepoMock struct {
	mock.Mock
}

func (m *LicenseRepoMock) Create(ctx context.Context, license *domain.LicenseKey) error {
	return m.Called(ctx, license).Error(0)
}

func (m *LicenseRepoMock) Update(ctx context.Context, license *domain.LicenseKey) error {
	return m.Called(ctx, license).Error(0)
}

func (m *LicenseRepoMock) GetByID(ctx context.Context, id string) (*domain.LicenseKey, error) {
	args := m.Called(ctx, id)
	license, _ := args.Get(0).(*domain.LicenseKey)
	return license, args.Error(1)
}

func (m *LicenseRepoMock) List(ctx context.Context) ([]*domain.LicenseKey, error) {
	args := m.Called(ctx)
	licenses, _ := args.Get(0).([]*domain.LicenseKey)
	return licenses, args.Error(1)
}

func (m *LicenseRepoMock) ListByPurchaserID(ctx context.Context, purchaserID string) ([]*domain.LicenseKey, error) {
	args := m.Called(ctx, purchaserID)
	licenses, _ := args.Get(0).([]*domain.LicenseKey)
	return licenses, args.Error(1)
}

func (m *LicenseRepoMock) DeleteExpired(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

type KeyIssuerMock struct {
	mock.Mock
}

func (m *KeyIssuerMock) CreateKey(ctx context.Context, authHeader string, body keygen.CreateKeyRequest) (*keygen.Key, error) {
	args := m.Called(ctx, authHeader, body)
	key, _ := args.Get(0).(*keygen.Key)
	return key, args.Error(1)
}

func (m *KeyIssuerMock) GetKeys(ctx context.Context, authHeader string) ([]keygen.Key, error) {
	args := m.Called(ctx, authHeader)
	keys, _ := args.Get(0).([]keygen.Key)
	return keys, args.Error(1)
}

func (m *KeyIssuerMock) GetKey(ctx context.Context, authHeader, keyID string) (*keygen.Key, error) {
	args := m.Called(ctx, authHeader, keyID)
	key, _ := args.Get(0).(*keygen.Key)
	return key, args.Error(1)
}
