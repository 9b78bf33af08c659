package worker

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/spec-kit/license-service/internal/repository"
)

// ExpiryReaper periodically deletes local license records whose expiry has
// passed. Local bookkeeping only: the corresponding external keys are not
// revoked.
type ExpiryReaper struct {
	licenses repository.LicenseRepository
	logger   *zap.Logger
	now      func() time.Time
}

// NewExpiryReaper builds the reaper.
func NewExpiryReaper(licenses repository.LicenseRepository, logger *zap.Logger) *ExpiryReaper {
	return &ExpiryReaper{licenses: licenses, logger: logger, now: time.Now}
}

// Run sweeps at the first instant of each calendar month until the context
// is cancelled. Failures are only logged; the next sweep runs regardless.
func (r *ExpiryReaper) Run(ctx context.Context) {
	for {
		wait := time.Until(nextMonthStart(r.now()))

		timer := time.NewTimer(wait)
		select {
		case <-ctx.Done():
			timer.Stop()
			return
		case <-timer.C:
		}

		r.Sweep(ctx)
	}
}

// Sweep deletes every record past its expiry, evaluated at the store clock.
func (r *ExpiryReaper) Sweep(ctx context.Context) {
	r.logger.Info("removing expired license keys")

	removed, err := r.licenses.DeleteExpired(ctx)
	if err != nil {
		r.logger.Error("expired license sweep failed", zap.Error(err))
		return
	}
	r.logger.Info("expired license sweep finished", zap.Int64("removed", removed))
}

// nextMonthStart returns midnight on the first day of the month after t.
func nextMonthStart(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month()+1, 1, 0, 0, 0, 0, t.Location())
}
