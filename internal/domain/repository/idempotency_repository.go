package repository

import (
	"context"
	"time"

	"github.com/chalkboard-id/chalkboard-api/internal/domain/entity"
	"github.com/google/uuid"
)

// IdempotencyRepository defines the interface for idempotency key operations
type IdempotencyRepository interface {
	// GetByKey retrieves the key a user sent to one endpoint
	GetByKey(ctx context.Context, key string, userID uuid.UUID, endpoint string) (*entity.IdempotencyKey, error)
	// Save stores the key, replacing an earlier row with the same scope
	Save(ctx context.Context, ikey *entity.IdempotencyKey) error
	// DeleteExpired removes keys that expired before now and returns how many
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
}
