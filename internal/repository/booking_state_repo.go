package repository

import (
	"context"
	"time"

	"github.com/shalean-cleaning/shalean-cleaning-services/internal/domain/entity"
)

// BookingStateRepository stores in-progress booking state per session.
// Get returns ErrNotFound when the session has no saved state.
type BookingStateRepository interface {
	Get(ctx context.Context, sessionID string) (*entity.BookingState, error)
	Save(ctx context.Context, sessionID string, state *entity.BookingState, ttl time.Duration) error
	Delete(ctx context.Context, sessionID string) error
}
