package service

import (
	"context"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/spec-kit/license-service/internal/domain"
)

type purchaserFixture struct {
	svc        *PurchaserService
	purchasers *PurchaserRepoMock
	accounts   *AccountRepoMock
	admins     *AdminRepoMock
	auth       *AuthService
}

func newPurchaserFixture() *purchaserFixture {
	f := &purchaserFixture{
		purchasers: new(PurchaserRepoMock),
		accounts:   new(AccountRepoMock),
		admins:     new(AdminRepoMock),
	}
	f.auth = newTestAuthService(f.admins, f.accounts, f.purchasers)
	f.svc = NewPurchaserService(f.purchasers, f.auth, zap.NewNop())
	return f
}

func TestPurchaserGet_NotFound(t *testing.T) {
	f := newPurchaserFixture()

	f.purchasers.On("GetByID", mock.Anything, "missing").Return(nil, pgx.ErrNoRows)
	_, err := f.svc.Get(context.Background(), "missing")
	assertDomainStatus(t, err, 404)
}

func TestPurchaserExists(t *testing.T) {
	f := newPurchaserFixture()

	f.purchasers.On("GetByPersonalEmail", mock.Anything, "known@mail.com").
		Return(&domain.Purchaser{ID: "p-1"}, nil)
	f.purchasers.On("GetByPersonalEmail", mock.Anything, "unknown@mail.com").
		Return(nil, pgx.ErrNoRows)

	exists, err := f.svc.Exists(context.Background(), "known@mail.com")
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = f.svc.Exists(context.Background(), "unknown@mail.com")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestPurchaserRemove_CascadesAccountFirst(t *testing.T) {
	f := newPurchaserFixture()

	token, _, err := f.auth.TokenManager().Generate("acc-1")
	require.NoError(t, err)
	header := "Bearer " + token

	purchaser := &domain.Purchaser{ID: "p-1", PersonalEmail: "john@mail.com"}
	f.accounts.On("GetByID", mock.Anything, "acc-1").
		Return(&domain.PurchaserAccount{ID: "acc-1", PurchaserID: "p-1"}, nil)
	f.purchasers.On("GetByID", mock.Anything, "p-1").Return(purchaser, nil)

	var order []string
	f.accounts.On("DeleteByPurchaserID", mock.Anything, "p-1").Run(func(mock.Arguments) {
		order = append(order, "account")
	}).Return(nil).Once()
	f.purchasers.On("Delete", mock.Anything, "p-1").Run(func(mock.Arguments) {
		order = append(order, "purchaser")
	}).Return(nil).Once()

	deleted, err := f.svc.Remove(context.Background(), header, "p-1")
	require.NoError(t, err)
	assert.Equal(t, purchaser, deleted)
	assert.Equal(t, []string{"account", "purchaser"}, order)
}

func TestPurchaserRemove_RejectsNonOwner(t *testing.T) {
	f := newPurchaserFixture()

	token, _, err := f.auth.TokenManager().Generate("acc-1")
	require.NoError(t, err)

	f.accounts.On("GetByID", mock.Anything, "acc-1").
		Return(&domain.PurchaserAccount{ID: "acc-1", PurchaserID: "p-1"}, nil)

	_, err = f.svc.Remove(context.Background(), "Bearer "+token, "p-other")
	assertDomainStatus(t, err, 400)
	f.accounts.AssertNotCalled(t, "DeleteByPurchaserID", mock.Anything, mock.Anything)
	f.purchasers.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}

func TestPurchaserRemove_DeleteFailure(t *testing.T) {
	f := newPurchaserFixture()

	token, _, err := f.auth.TokenManager().Generate("A_admin-1")
	require.NoError(t, err)
	f.admins.On("GetByID", mock.Anything, "A_admin-1").Return(&domain.AdminAccount{ID: "A_admin-1"}, nil)

	f.purchasers.On("GetByID", mock.Anything, "p-1").Return(&domain.Purchaser{ID: "p-1"}, nil)
	f.accounts.On("DeleteByPurchaserID", mock.Anything, "p-1").Return(nil)
	f.purchasers.On("Delete", mock.Anything, "p-1").Return(assert.AnError)

	_, err = f.svc.Remove(context.Background(), "Bearer "+token, "p-1")
	domainErr := assertDomainStatus(t, err, 400)
	assert.Equal(t, "unable to delete purchaser", domainErr.Message)
}
