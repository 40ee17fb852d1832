package bookingstate

import (
	"context"
	"sync"

	"github.com/shalean-cleaning/shalean-cleaning-services/internal/domain/entity"
)

// Persistence stores one session's booking state. Load returns (nil, nil)
// when nothing has been saved yet.
type Persistence interface {
	Load(ctx context.Context) (*entity.BookingState, error)
	Save(ctx context.Context, state *entity.BookingState) error
	Clear(ctx context.Context) error
}

// MemoryPersistence keeps a single state in process memory.
type MemoryPersistence struct {
	mu    sync.Mutex
	state *entity.BookingState
}

func NewMemoryPersistence() *MemoryPersistence {
	return &MemoryPersistence{}
}

func (m *MemoryPersistence) Load(_ context.Context) (*entity.BookingState, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state.Clone(), nil
}

func (m *MemoryPersistence) Save(_ context.Context, state *entity.BookingState) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.state = state.Clone()
	return nil
}

func (m *MemoryPersistence) Clear(_ context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.state = nil
	return nil
}
