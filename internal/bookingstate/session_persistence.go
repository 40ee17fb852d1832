package bookingstate

import (
	"context"
	"errors"
	"time"

	"github.com/shalean-cleaning/shalean-cleaning-services/internal/domain/entity"
	"github.com/shalean-cleaning/shalean-cleaning-services/internal/repository"
)

// SessionPersistence binds a BookingStateRepository to one session id.
type SessionPersistence struct {
	repo      repository.BookingStateRepository
	sessionID string
	ttl       time.Duration
}

func NewSessionPersistence(repo repository.BookingStateRepository, sessionID string, ttl time.Duration) *SessionPersistence {
	return &SessionPersistence{repo: repo, sessionID: sessionID, ttl: ttl}
}

func (p *SessionPersistence) Load(ctx context.Context) (*entity.BookingState, error) {
	state, err := p.repo.Get(ctx, p.sessionID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return state, nil
}

func (p *SessionPersistence) Save(ctx context.Context, state *entity.BookingState) error {
	return p.repo.Save(ctx, p.sessionID, state, p.ttl)
}

func (p *SessionPersistence) Clear(ctx context.Context) error {
	err := p.repo.Delete(ctx, p.sessionID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil
	}
	return err
}
