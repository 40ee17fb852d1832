package http

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/shalean-cleaning/shalean-cleaning-services/internal/bookingstate"
	"github.com/shalean-cleaning/shalean-cleaning-services/internal/catalog"
	"github.com/shalean-cleaning/shalean-cleaning-services/internal/domain/entity"
	"github.com/shalean-cleaning/shalean-cleaning-services/internal/repository"
	"github.com/shalean-cleaning/shalean-cleaning-services/internal/service"
)

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

type MockSessionService struct {
	mock.Mock
}

func (m *MockSessionService) view(args mock.Arguments) (*service.SessionView, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.SessionView), args.Error(1)
}

func (m *MockSessionService) CreateSession(ctx context.Context) (*service.SessionView, error) {
	return m.view(m.Called(ctx))
}

func (m *MockSessionService) GetSession(ctx context.Context, sessionID string) (*service.SessionView, error) {
	return m.view(m.Called(ctx, sessionID))
}

func (m *MockSessionService) UpdateSession(ctx context.Context, sessionID string, req service.UpdateSessionRequest) (*service.SessionView, error) {
	return m.view(m.Called(ctx, sessionID, req))
}

func (m *MockSessionService) AddExtra(ctx context.Context, sessionID, extraID string) (*service.SessionView, error) {
	return m.view(m.Called(ctx, sessionID, extraID))
}

func (m *MockSessionService) RemoveExtra(ctx context.Context, sessionID, extraID string) (*service.SessionView, error) {
	return m.view(m.Called(ctx, sessionID, extraID))
}

func (m *MockSessionService) SetExtraQuantity(ctx context.Context, sessionID, extraID string, quantity int) (*service.SessionView, error) {
	return m.view(m.Called(ctx, sessionID, extraID, quantity))
}

func (m *MockSessionService) ResetSession(ctx context.Context, sessionID string) error {
	return m.Called(ctx, sessionID).Error(0)
}

func (m *MockSessionService) OpenStore(ctx context.Context, sessionID string) (*bookingstate.Store, error) {
	args := m.Called(ctx, sessionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*bookingstate.Store), args.Error(1)
}

type MockBookingService struct {
	mock.Mock
}

func (m *MockBookingService) booking(args mock.Arguments) (*entity.Booking, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Booking), args.Error(1)
}

func (m *MockBookingService) Checkout(ctx context.Context, sessionID string, req service.CheckoutRequest) (*entity.Booking, error) {
	return m.booking(m.Called(ctx, sessionID, req))
}

func (m *MockBookingService) GetBooking(ctx context.Context, bookingID string) (*entity.Booking, error) {
	return m.booking(m.Called(ctx, bookingID))
}

func (m *MockBookingService) ListCustomerBookings(ctx context.Context, customerID string, params repository.ListBookingsParams) (*repository.ListBookingsResult, error) {
	args := m.Called(ctx, customerID, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*repository.ListBookingsResult), args.Error(1)
}

func (m *MockBookingService) CancelBooking(ctx context.Context, bookingID, customerID string) (*entity.Booking, error) {
	return m.booking(m.Called(ctx, bookingID, customerID))
}

func (m *MockBookingService) UpdateBookingStatus(ctx context.Context, bookingID string, status entity.BookingStatus) (*entity.Booking, error) {
	return m.booking(m.Called(ctx, bookingID, status))
}

type MockPaymentService struct {
	mock.Mock
}

func (m *MockPaymentService) Initialize(ctx context.Context, req service.InitializePaymentRequest) (*service.InitializePaymentResult, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.InitializePaymentResult), args.Error(1)
}

func (m *MockPaymentService) Verify(ctx context.Context, req service.VerifyPaymentRequest) (*service.PaymentResult, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.PaymentResult), args.Error(1)
}
