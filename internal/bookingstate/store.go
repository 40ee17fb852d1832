// Package bookingstate manages one session's in-progress booking. Every
// mutation keeps the price breakdown in step with the priceable fields and
// writes the result through to persistence.
package bookingstate

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/shalean-cleaning/shalean-cleaning-services/internal/domain/entity"
	"github.com/shalean-cleaning/shalean-cleaning-services/internal/platform/logger"
	"github.com/shalean-cleaning/shalean-cleaning-services/internal/pricing"
)

var (
	ErrNotInitialized = errors.New("booking state has not been initialized")
	// ErrStateUnavailable means the persisted state could not be read. It is
	// distinct from "nothing saved" and "saved but unreadable".
	ErrStateUnavailable = errors.New("booking state storage is unavailable")
)

// Store is owned by a single caller at a time and is not safe for concurrent
// use.
type Store struct {
	state       *entity.BookingState
	persistence Persistence
	log         logger.Logger
}

func NewStore(p Persistence, log logger.Logger) *Store {
	if p == nil {
		p = NewMemoryPersistence()
	}
	if log == nil {
		log = logger.NewNopLogger()
	}
	return &Store{persistence: p, log: log}
}

// Initialize loads the persisted state. Missing or malformed data leaves the
// store with an empty state and returns nil. When storage cannot be read the
// store still starts empty in memory, but the returned ErrStateUnavailable
// tells the caller that saving would overwrite a state it never saw.
func (s *Store) Initialize(ctx context.Context) error {
	loaded, err := s.persistence.Load(ctx)
	switch {
	case errors.Is(err, entity.ErrMalformedBookingState):
		s.log.Warnf("Persisted booking state is malformed, starting empty: %v", err)
		s.state = entity.NewBookingState()
	case err != nil:
		s.log.Warnf("Could not load persisted booking state: %v", err)
		s.state = entity.NewBookingState()
		return fmt.Errorf("%w: %v", ErrStateUnavailable, err)
	case loaded == nil:
		s.log.Debugf("No persisted booking state, starting empty")
		s.state = entity.NewBookingState()
	default:
		s.state = loaded
		if s.state.Extras == nil {
			s.state.Extras = make([]entity.ExtraSelection, 0)
		}
		s.recompute()
	}
	return nil
}

// State returns a copy of the current state.
func (s *Store) State() *entity.BookingState {
	if s.state == nil {
		return entity.NewBookingState()
	}
	return s.state.Clone()
}

func (s *Store) Update(ctx context.Context, patch Patch) error {
	if s.state == nil {
		return ErrNotInitialized
	}
	if err := patch.validate(); err != nil {
		return err
	}
	next := s.state.Clone()
	if err := patch.apply(next); err != nil {
		return err
	}
	s.commit(ctx, next)
	return nil
}

func (s *Store) AddExtra(ctx context.Context, id, name string, unitPrice decimal.Decimal) error {
	if s.state == nil {
		return ErrNotInitialized
	}
	next := s.state.Clone()
	if err := next.AddExtra(normalizeExtraID(id), name, unitPrice); err != nil {
		return err
	}
	s.commit(ctx, next)
	return nil
}

func (s *Store) RemoveExtra(ctx context.Context, id string) error {
	if s.state == nil {
		return ErrNotInitialized
	}
	next := s.state.Clone()
	next.RemoveExtra(normalizeExtraID(id))
	s.commit(ctx, next)
	return nil
}

// SetExtraQuantity deletes the extra when quantity <= 0. An id that is not
// selected is ignored.
func (s *Store) SetExtraQuantity(ctx context.Context, id string, quantity int) error {
	if s.state == nil {
		return ErrNotInitialized
	}
	next := s.state.Clone()
	next.SetExtraQuantity(normalizeExtraID(id), quantity)
	s.commit(ctx, next)
	return nil
}

// Reset empties the state and removes the persisted copy.
func (s *Store) Reset(ctx context.Context) {
	s.state = entity.NewBookingState()
	if err := s.persistence.Clear(ctx); err != nil {
		s.log.Warnf("Could not clear persisted booking state: %v", err)
	}
}

func normalizeExtraID(id string) string {
	return strings.TrimSpace(id)
}

func (s *Store) commit(ctx context.Context, next *entity.BookingState) {
	s.state = next
	s.recompute()
	if err := s.persistence.Save(ctx, s.state); err != nil {
		s.log.Warnf("Could not persist booking state, keeping in-memory copy: %v", err)
	}
}

// recompute refreshes the breakdown whenever a service is selected. Without
// a service the breakdown is left as it was.
func (s *Store) recompute() {
	if s.state.Service == nil {
		return
	}
	s.state.Pricing = pricing.ComputeBreakdown(*s.state.Service, s.state.Bedrooms, s.state.Bathrooms, s.state.Extras)
}
