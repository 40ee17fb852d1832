package bookingstate

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/shalean-cleaning/shalean-cleaning-services/internal/domain/entity"
	"github.com/shalean-cleaning/shalean-cleaning-services/internal/repository"
)

type MockBookingStateRepository struct {
	mock.Mock
}

func (m *MockBookingStateRepository) Get(ctx context.Context, sessionID string) (*entity.BookingState, error) {
	args := m.Called(ctx, sessionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.BookingState), args.Error(1)
}

func (m *MockBookingStateRepository) Save(ctx context.Context, sessionID string, state *entity.BookingState, ttl time.Duration) error {
	args := m.Called(ctx, sessionID, state, ttl)
	return args.Error(0)
}

func (m *MockBookingStateRepository) Delete(ctx context.Context, sessionID string) error {
	args := m.Called(ctx, sessionID)
	return args.Error(0)
}

func TestSessionPersistence_LoadMissingIsEmpty(t *testing.T) {
	repo := new(MockBookingStateRepository)
	repo.On("Get", mock.Anything, "sess-1").Return(nil, repository.ErrNotFound).Once()

	state, err := NewSessionPersistence(repo, "sess-1", time.Hour).Load(context.Background())

	assert.NoError(t, err)
	assert.Nil(t, state)
	repo.AssertExpectations(t)
}

func TestSessionPersistence_LoadError(t *testing.T) {
	repo := new(MockBookingStateRepository)
	repo.On("Get", mock.Anything, "sess-1").Return(nil, errors.New("redis down")).Once()

	_, err := NewSessionPersistence(repo, "sess-1", time.Hour).Load(context.Background())

	assert.EqualError(t, err, "redis down")
	repo.AssertExpectations(t)
}

func TestSessionPersistence_SaveUsesTTL(t *testing.T) {
	repo := new(MockBookingStateRepository)
	state := entity.NewBookingState()
	repo.On("Save", mock.Anything, "sess-1", state, 72*time.Hour).Return(nil).Once()

	err := NewSessionPersistence(repo, "sess-1", 72*time.Hour).Save(context.Background(), state)

	assert.NoError(t, err)
	repo.AssertExpectations(t)
}

func TestSessionPersistence_ClearIgnoresMissing(t *testing.T) {
	repo := new(MockBookingStateRepository)
	repo.On("Delete", mock.Anything, "sess-1").Return(repository.ErrNotFound).Once()

	assert.NoError(t, NewSessionPersistence(repo, "sess-1", time.Hour).Clear(context.Background()))
	repo.AssertExpectations(t)
}

func TestStore_WithSessionPersistence(t *testing.T) {
	ctx := context.Background()
	repo := new(MockBookingStateRepository)
	repo.On("Get", mock.Anything, "sess-1").Return(nil, repository.ErrNotFound).Once()
	repo.On("Save", mock.Anything, "sess-1", mock.MatchedBy(func(s *entity.BookingState) bool {
		return len(s.Extras) == 1 && s.Extras[0].ID == "e1"
	}), time.Hour).Return(nil).Once()

	store := NewStore(NewSessionPersistence(repo, "sess-1", time.Hour), nil)
	require.NoError(t, store.Initialize(ctx))
	require.NoError(t, store.AddExtra(ctx, "e1", "Inside Fridge", decimal.NewFromInt(150)))

	repo.AssertExpectations(t)
}
