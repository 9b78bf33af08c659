package worker

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"

	"github.com/spec-kit/license-service/internal/domain"
)

type licenseRepoMock struct {
	mock.Mock
}

func (m *licenseRepoMock) Create(ctx context.Context, license *domain.LicenseKey) error {
	return m.Called(ctx, license).Error(0)
}

func (m *licenseRepoMock) Update(ctx context.Context, license *domain.LicenseKey) error {
	return m.Called(ctx, license).Error(0)
}

func (m *licenseRepoMock) GetByID(ctx context.Context, id string) (*domain.LicenseKey, error) {
	args := m.Called(ctx, id)
	license, _ := args.Get(0).(*domain.LicenseKey)
	return license, args.Error(1)
}

func (m *licenseRepoMock) List(ctx context.Context) ([]*domain.LicenseKey, error) {
	args := m.Called(ctx)
	licenses, _ := args.Get(0).([]*domain.LicenseKey)
	return licenses, args.Error(1)
}

func (m *licenseRepoMock) ListByPurchaserID(ctx context.Context, purchaserID string) ([]*domain.LicenseKey, error) {
	args := m.Called(ctx, purchaserID)
	licenses, _ := args.Get(0).([]*domain.LicenseKey)
	return licenses, args.Error(1)
}

func (m *licenseRepoMock) DeleteExpired(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func TestSweep(t *testing.T) {
	repo := new(licenseRepoMock)
	repo.On("DeleteExpired", mock.Anything).Return(int64(3), nil).Once()

	reaper := NewExpiryReaper(repo, zap.NewNop())
	reaper.Sweep(context.Background())
	repo.AssertExpectations(t)
}

func TestSweep_StoreFailureDoesNotPanic(t *testing.T) {
	repo := new(licenseRepoMock)
	repo.On("DeleteExpired", mock.Anything).Return(int64(0), assert.AnError).Once()

	reaper := NewExpiryReaper(repo, zap.NewNop())
	reaper.Sweep(context.Background())
	repo.AssertExpectations(t)
}

func TestNextMonthStart(t *testing.T) {
	cases := []struct {
		name string
		in   time.Time
		want time.Time
	}{
		{
			name: "mid-month",
			in:   time.Date(2026, time.August, 30, 15, 4, 5, 0, time.UTC),
			want: time.Date(2026, time.September, 1, 0, 0, 0, 0, time.UTC),
		},
		{
			name: "december rolls the year",
			in:   time.Date(2026, time.December, 31, 23, 59, 59, 0, time.UTC),
			want: time.Date(2027, time.January, 1, 0, 0, 0, 0, time.UTC),
		},
		{
			name: "first instant of a month schedules the next one",
			in:   time.Date(2026, time.September, 1, 0, 0, 0, 0, time.UTC),
			want: time.Date(2026, time.October, 1, 0, 0, 0, 0, time.UTC),
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, nextMonthStart(tc.in))
		})
	}
}

func TestRun_StopsOnContextCancel(t *testing.T) {
	repo := new(licenseRepoMock)
	reaper := NewExpiryReaper(repo, zap.NewNop())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		reaper.Run(ctx)
		close(done)
	}()

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("reaper did not stop after cancellation")
	}
	repo.AssertNotCalled(t, "DeleteExpired", mock.Anything)
}
