package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/shalean-cleaning/shalean-cleaning-services/internal/domain/entity"
	"github.com/shalean-cleaning/shalean-cleaning-services/internal/repository"
)

const (
	bookingStateKeyPrefix = "booking_state:"
)

type bookingStateRepository struct {
	client redis.Cmdable
}

func NewBookingStateRepository(client redis.Cmdable) repository.BookingStateRepository {
	return &bookingStateRepository{
		client: client,
	}
}

func (r *bookingStateRepository) key(sessionID string) string {
	return bookingStateKeyPrefix + sessionID
}

func (r *bookingStateRepository) Get(ctx context.Context, sessionID string) (*entity.BookingState, error) {
	val, err := r.client.Get(ctx, r.key(sessionID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get booking state for session %s from redis: %w", sessionID, err)
	}

	var state entity.BookingState
	if err := json.Unmarshal(val, &state); err != nil {
		if errors.Is(err, entity.ErrMalformedBookingState) {
			return nil, fmt.Errorf("session %s: %w", sessionID, err)
		}
		return nil, fmt.Errorf("%w: session %s: %v", entity.ErrMalformedBookingState, sessionID, err)
	}
	return &state, nil
}

func (r *bookingStateRepository) Save(ctx context.Context, sessionID string, state *entity.BookingState, ttl time.Duration) error {
	if state == nil || sessionID == "" {
		return errors.New("cannot save nil booking state or booking state with empty session id")
	}

	data, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("failed to marshal booking state for session %s: %w", sessionID, err)
	}

	if err := r.client.Set(ctx, r.key(sessionID), data, ttl).Err(); err != nil {
		return fmt.Errorf("failed to save booking state for session %s to redis: %w", sessionID, err)
	}
	return nil
}

func (r *bookingStateRepository) Delete(ctx context.Context, sessionID string) error {
	if err := r.client.Del(ctx, r.key(sessionID)).Err(); err != nil {
		return fmt.Errorf("failed to delete booking state for session %s from redis: %w", sessionID, err)
	}
	return nil
}
