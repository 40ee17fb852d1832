package service

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/shalean-cleaning/shalean-cleaning-services/internal/adapter/payment"
	"github.com/shalean-cleaning/shalean-cleaning-services/internal/catalog"
	"github.com/shalean-cleaning/shalean-cleaning-services/internal/domain/entity"
	"github.com/shalean-cleaning/shalean-cleaning-services/internal/repository"
)

type MockCatalogRepository struct {
	mock.Mock
}

func (m *MockCatalogRepository) ListServices(ctx context.Context) ([]entity.Service, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.Service), args.Error(1)
}

func (m *MockCatalogRepository) ListExtras(ctx context.Context) ([]entity.Extra, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.Extra), args.Error(1)
}

func (m *MockCatalogRepository) ListRegions(ctx context.Context) ([]entity.Region, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.Region), args.Error(1)
}

func (m *MockCatalogRepository) ListSuburbs(ctx context.Context, regionID string) ([]entity.Suburb, error) {
	args := m.Called(ctx, regionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.Suburb), args.Error(1)
}

func (m *MockCatalogRepository) ListCleaners(ctx context.Context, regionID string) ([]entity.Cleaner, error) {
	args := m.Called(ctx, regionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.Cleaner), args.Error(1)
}

type MockCatalogCache struct {
	mock.Mock
}

func (m *MockCatalogCache) Get(ctx context.Context, key string, dest any) error {
	args := m.Called(ctx, key, dest)
	return args.Error(0)
}

func (m *MockCatalogCache) Set(ctx context.Context, key string, value any, ttl time.Duration) error {
	args := m.Called(ctx, key, value, ttl)
	return args.Error(0)
}

func (m *MockCatalogCache) Delete(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}

type MockCatalogService struct {
	mock.Mock
}

func (m *MockCatalogService) ListServices(ctx context.Context) catalog.Result[entity.Service] {
	return m.Called(ctx).Get(0).(catalog.Result[entity.Service])
}

func (m *MockCatalogService) GetServiceBySlug(ctx context.Context, slug string) (entity.Service, catalog.Source, error) {
	args := m.Called(ctx, slug)
	return args.Get(0).(entity.Service), args.Get(1).(catalog.Source), args.Error(2)
}

func (m *MockCatalogService) GetService(ctx context.Context, serviceID string) (entity.Service, error) {
	args := m.Called(ctx, serviceID)
	return args.Get(0).(entity.Service), args.Error(1)
}

func (m *MockCatalogService) ListExtras(ctx context.Context) catalog.Result[entity.Extra] {
	return m.Called(ctx).Get(0).(catalog.Result[entity.Extra])
}

func (m *MockCatalogService) GetExtra(ctx context.Context, extraID string) (entity.Extra, error) {
	args := m.Called(ctx, extraID)
	return args.Get(0).(entity.Extra), args.Error(1)
}

func (m *MockCatalogService) ListRegions(ctx context.Context) catalog.Result[entity.Region] {
	return m.Called(ctx).Get(0).(catalog.Result[entity.Region])
}

func (m *MockCatalogService) ListSuburbs(ctx context.Context, regionID string) catalog.Result[entity.Suburb] {
	return m.Called(ctx, regionID).Get(0).(catalog.Result[entity.Suburb])
}

func (m *MockCatalogService) GetSuburb(ctx context.Context, suburbID string) (entity.Suburb, error) {
	args := m.Called(ctx, suburbID)
	return args.Get(0).(entity.Suburb), args.Error(1)
}

func (m *MockCatalogService) ListCleaners(ctx context.Context, regionID string) catalog.Result[entity.Cleaner] {
	return m.Called(ctx, regionID).Get(0).(catalog.Result[entity.Cleaner])
}

func (m *MockCatalogService) GetCleaner(ctx context.Context, cleanerID string) (entity.Cleaner, error) {
	args := m.Called(ctx, cleanerID)
	return args.Get(0).(entity.Cleaner), args.Error(1)
}

// memoryStateRepository is a BookingStateRepository over a map, so session
// tests exercise real state round trips.
type memoryStateRepository struct {
	states map[string]*entity.BookingState
	ttls   map[string]time.Duration
	// getErrs are returned by the next Get calls, in order.
	getErrs []error
}

func newMemoryStateRepository() *memoryStateRepository {
	return &memoryStateRepository{
		states: make(map[string]*entity.BookingState),
		ttls:   make(map[string]time.Duration),
	}
}

func (r *memoryStateRepository) Get(_ context.Context, sessionID string) (*entity.BookingState, error) {
	if len(r.getErrs) > 0 {
		err := r.getErrs[0]
		r.getErrs = r.getErrs[1:]
		return nil, err
	}
	state, ok := r.states[sessionID]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return state.Clone(), nil
}

func (r *memoryStateRepository) Save(_ context.Context, sessionID string, state *entity.BookingState, ttl time.Duration) error {
	r.states[sessionID] = state.Clone()
	r.ttls[sessionID] = ttl
	return nil
}

func (r *memoryStateRepository) Delete(_ context.Context, sessionID string) error {
	if _, ok := r.states[sessionID]; !ok {
		return repository.ErrNotFound
	}
	delete(r.states, sessionID)
	delete(r.ttls, sessionID)
	return nil
}

type MockBookingRepository struct {
	mock.Mock
}

func (m *MockBookingRepository) Create(ctx context.Context, booking *entity.Booking) (string, error) {
	args := m.Called(ctx, booking)
	return args.String(0), args.Error(1)
}

func (m *MockBookingRepository) GetByID(ctx context.Context, bookingID string) (*entity.Booking, error) {
	args := m.Called(ctx, bookingID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Booking), args.Error(1)
}

func (m *MockBookingRepository) GetByPaymentReference(ctx context.Context, reference string) (*entity.Booking, error) {
	args := m.Called(ctx, reference)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Booking), args.Error(1)
}

func (m *MockBookingRepository) UpdateStatus(ctx context.Context, params repository.UpdateBookingStatusParams) error {
	args := m.Called(ctx, params)
	return args.Error(0)
}

func (m *MockBookingRepository) UpdatePayment(ctx context.Context, params repository.UpdateBookingPaymentParams) error {
	args := m.Called(ctx, params)
	return args.Error(0)
}

func (m *MockBookingRepository) List(ctx context.Context, params repository.ListBookingsParams) (*repository.ListBookingsResult, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*repository.ListBookingsResult), args.Error(1)
}

type MockPublisher struct {
	mock.Mock
}

func (m *MockPublisher) Publish(ctx context.Context, subject string, message interface{}) error {
	args := m.Called(ctx, subject, message)
	return args.Error(0)
}

func (m *MockPublisher) PublishRaw(ctx context.Context, subject string, data []byte) error {
	args := m.Called(ctx, subject, data)
	return args.Error(0)
}

type MockGateway struct {
	mock.Mock
}

func (m *MockGateway) Initialize(ctx context.Context, req payment.InitializeRequest) (*payment.InitializeResult, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*payment.InitializeResult), args.Error(1)
}

func (m *MockGateway) Verify(ctx context.Context, transactionID string) (*payment.VerifyResult, error) {
	args := m.Called(ctx, transactionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*payment.VerifyResult), args.Error(1)
}

type MockEmailSender struct {
	mock.Mock
}

func (m *MockEmailSender) Send(ctx context.Context, to []string, subject, bodyHTML, bodyText string) error {
	args := m.Called(ctx, to, subject, bodyHTML, bodyText)
	return args.Error(0)
}

type MockReceiptService struct {
	mock.Mock
}

func (m *MockReceiptService) BuildConfirmation(booking *entity.Booking) (*Receipt, error) {
	args := m.Called(booking)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Receipt), args.Error(1)
}

func (m *MockReceiptService) SendConfirmation(ctx context.Context, booking *entity.Booking) error {
	args := m.Called(ctx, booking)
	return args.Error(0)
}
