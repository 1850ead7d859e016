package service

import (
	"context"
	"time"

	"github.com/chalkboard-id/chalkboard-api/internal/domain/repository"
	"github.com/chalkboard-id/chalkboard-api/pkg/logger"
	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

// IdempotencyService maintains stored idempotency keys
type IdempotencyService struct {
	repo repository.IdempotencyRepository
}

// NewIdempotencyService creates a new idempotency service
func NewIdempotencyService(repo repository.IdempotencyRepository) *IdempotencyService {
	return &IdempotencyService{repo: repo}
}

// PurgeExpired deletes keys whose replay window has passed. Run by the
// scheduler.
func (s *IdempotencyService) PurgeExpired(ctx context.Context) (int64, error) {
	deleted, err := s.repo.DeleteExpired(ctx, timeNow())
	if err != nil {
		logger.WithError(err).Error("Failed to purge expired idempotency keys")
		return 0, err
	}
	if deleted > 0 {
		logger.WithFields(logrus.Fields{"deleted": deleted}).Info("Purged expired idempotency keys")
	}
	return deleted, nil
}

// StartPurgeScheduler runs PurgeExpired on the given cron spec. The caller
// stops the returned scheduler on shutdown.
func (s *IdempotencyService) StartPurgeScheduler(spec string) (*cron.Cron, error) {
	c := cron.New()
	_, err := c.AddFunc(spec, func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
		defer cancel()
		_, _ = s.PurgeExpired(ctx)
	})
	if err != nil {
		return nil, err
	}

	c.Start()
	logger.WithFields(logrus.Fields{"schedule": spec}).Info("Idempotency key purge scheduler started")
	return c, nil
}
