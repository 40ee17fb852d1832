package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/shalean-cleaning/shalean-cleaning-services/internal/app/config"
	"github.com/shalean-cleaning/shalean-cleaning-services/internal/domain/entity"
	"github.com/shalean-cleaning/shalean-cleaning-services/internal/platform/logger"
	"github.com/shalean-cleaning/shalean-cleaning-services/internal/platform/metrics"
	"github.com/shalean-cleaning/shalean-cleaning-services/internal/repository"
)

var testEvents = config.EventsConfig{
	BookingCreated:       "booking.created",
	BookingStatusUpdated: "booking.status.updated",
	PaymentVerified:      "payment.verified",
}

type bookingFixture struct {
	svc       BookingService
	sessions  *sessionFixture
	repo      *MockBookingRepository
	publisher *MockPublisher
	metrics   *metrics.MetricsManager
}

func newBookingFixture() *bookingFixture {
	sessions := newSessionFixture()
	repo := new(MockBookingRepository)
	pub := new(MockPublisher)
	svc := NewBookingService(repo, sessions.svc, pub, testEvents, sessions.metrics, logger.NewNopLogger())
	return &bookingFixture{svc: svc, sessions: sessions, repo: repo, publisher: pub, metrics: sessions.metrics}
}

// readySession fills a session with everything checkout needs.
func (f *bookingFixture) readySession(t *testing.T) string {
	t.Helper()
	sessionID := uuid.NewString()
	f.sessions.catalog.On("GetService", mock.Anything, "svc-standard").Return(standardCleaning(), nil).Once()
	f.sessions.catalog.On("GetExtra", mock.Anything, "oven").
		Return(entity.Extra{ID: "oven", Name: "Oven Cleaning", Price: decimal.NewFromInt(200)}, nil).Once()

	_, err := f.sessions.svc.UpdateSession(context.Background(), sessionID, UpdateSessionRequest{
		ServiceID:     strPtr("svc-standard"),
		Bedrooms:      intPtr(3),
		Bathrooms:     intPtr(2),
		Address:       strPtr("12 Beach Road"),
		ScheduledDate: strPtr("2025-03-14"),
		ScheduledTime: strPtr("09:00"),
		Extras:        &[]ExtraQuantity{{ExtraID: "oven", Quantity: 1}},
	})
	require.NoError(t, err)
	return sessionID
}

func TestBookingService_Checkout_Success(t *testing.T) {
	f := newBookingFixture()
	ctx := context.Background()
	sessionID := f.readySession(t)

	f.repo.On("Create", mock.Anything, mock.MatchedBy(func(b *entity.Booking) bool {
		return b.Status == entity.StatusReadyForPayment &&
			b.ServiceID == "svc-standard" &&
			len(b.Items) == 1 &&
			b.Contact.CustomerID == "user-7" &&
			b.Pricing.Total.Equal(decimal.NewFromInt(1111))
	})).Return("665f1c2e9b1d4a3f8c7e6d5a", nil).Once()
	f.publisher.On("Publish", mock.Anything, "booking.created", mock.MatchedBy(func(ev BookingEvent) bool {
		return ev.BookingID == "665f1c2e9b1d4a3f8c7e6d5a" && ev.Currency == "ZAR" && ev.ScheduledDate == "2025-03-14"
	})).Return(nil).Once()

	booking, err := f.svc.Checkout(ctx, sessionID, CheckoutRequest{
		Contact:             entity.Contact{CustomerID: "user-7", Email: "thandi@example.co.za"},
		SpecialInstructions: "Gate code 1234",
	})

	require.NoError(t, err)
	assert.Equal(t, "665f1c2e9b1d4a3f8c7e6d5a", booking.ID)
	assert.Equal(t, "Gate code 1234", booking.SpecialInstructions)
	assert.NotContains(t, f.sessions.repo.states, sessionID, "session is emptied after checkout")
	assert.Equal(t, 1.0, testutil.ToFloat64(f.metrics.BookingsCreatedTotal))
	f.repo.AssertExpectations(t)
	f.publisher.AssertExpectations(t)
}

func TestBookingService_Checkout_Incomplete(t *testing.T) {
	f := newBookingFixture()
	sessionID := uuid.NewString()
	_, err := f.sessions.svc.UpdateSession(context.Background(), sessionID, UpdateSessionRequest{Address: strPtr("1 Long Street")})
	require.NoError(t, err)

	_, err = f.svc.Checkout(context.Background(), sessionID, CheckoutRequest{})

	assert.ErrorIs(t, err, entity.ErrIncompleteBooking)
	assert.Contains(t, f.sessions.repo.states, sessionID, "session survives a failed checkout")
	f.repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestBookingService_Checkout_RepositoryFailureKeepsSession(t *testing.T) {
	f := newBookingFixture()
	sessionID := f.readySession(t)
	f.repo.On("Create", mock.Anything, mock.Anything).Return("", errors.New("mongo down")).Once()

	_, err := f.svc.Checkout(context.Background(), sessionID, CheckoutRequest{})

	assert.Error(t, err)
	assert.Contains(t, f.sessions.repo.states, sessionID)
	f.publisher.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything, mock.Anything)
}

func TestBookingService_Checkout_PublishFailureIsNotFatal(t *testing.T) {
	f := newBookingFixture()
	sessionID := f.readySession(t)
	f.repo.On("Create", mock.Anything, mock.Anything).Return("665f1c2e9b1d4a3f8c7e6d5a", nil).Once()
	f.publisher.On("Publish", mock.Anything, "booking.created", mock.Anything).Return(errors.New("nats down")).Once()

	booking, err := f.svc.Checkout(context.Background(), sessionID, CheckoutRequest{})

	require.NoError(t, err)
	assert.Equal(t, "665f1c2e9b1d4a3f8c7e6d5a", booking.ID)
}

func TestBookingService_GetBooking_NotFound(t *testing.T) {
	f := newBookingFixture()
	f.repo.On("GetByID", mock.Anything, "missing").Return(nil, repository.ErrNotFound).Once()

	_, err := f.svc.GetBooking(context.Background(), "missing")

	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestBookingService_ListCustomerBookings(t *testing.T) {
	f := newBookingFixture()
	expected := &repository.ListBookingsResult{Bookings: []entity.Booking{{ID: "b1"}}, TotalCount: 1, CurrentPage: 1, PageSize: 10, TotalPages: 1}
	f.repo.On("List", mock.Anything, repository.ListBookingsParams{CustomerID: "user-7", Page: 1, PageSize: 10}).Return(expected, nil).Once()

	result, err := f.svc.ListCustomerBookings(context.Background(), "user-7", repository.ListBookingsParams{CustomerID: "someone-else", Page: 1, PageSize: 10})

	require.NoError(t, err)
	assert.Equal(t, expected, result)
	f.repo.AssertExpectations(t)
}

func TestBookingService_CancelBooking(t *testing.T) {
	f := newBookingFixture()
	booking := &entity.Booking{
		ID:            "b1",
		Contact:       entity.Contact{CustomerID: "user-7"},
		Status:        entity.StatusReadyForPayment,
		ScheduledDate: time.Date(2025, 3, 14, 0, 0, 0, 0, time.UTC),
		Version:       3,
	}
	f.repo.On("GetByID", mock.Anything, "b1").Return(booking, nil).Once()
	f.repo.On("UpdateStatus", mock.Anything, repository.UpdateBookingStatusParams{
		BookingID: "b1", Status: entity.StatusCancelled, Version: 3,
	}).Return(nil).Once()
	f.publisher.On("Publish", mock.Anything, "booking.status.updated", mock.MatchedBy(func(ev BookingEvent) bool {
		return ev.Status == entity.StatusCancelled && ev.Version == 4
	})).Return(nil).Once()

	cancelled, err := f.svc.CancelBooking(context.Background(), "b1", "user-7")

	require.NoError(t, err)
	assert.Equal(t, entity.StatusCancelled, cancelled.Status)
	assert.Equal(t, 4, cancelled.Version)
	f.repo.AssertExpectations(t)
	f.publisher.AssertExpectations(t)
}

func TestBookingService_CancelBooking_Rejected(t *testing.T) {
	f := newBookingFixture()
	f.repo.On("GetByID", mock.Anything, "theirs").
		Return(&entity.Booking{ID: "theirs", Contact: entity.Contact{CustomerID: "user-8"}, Status: entity.StatusConfirmed}, nil).Once()
	f.repo.On("GetByID", mock.Anything, "done").
		Return(&entity.Booking{ID: "done", Status: entity.StatusCompleted}, nil).Once()

	_, err := f.svc.CancelBooking(context.Background(), "theirs", "user-7")
	assert.ErrorIs(t, err, ErrBookingAccessDenied)

	_, err = f.svc.CancelBooking(context.Background(), "done", "")
	assert.ErrorIs(t, err, ErrBookingNotCancellable)

	f.repo.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything)
}

func TestBookingService_UpdateBookingStatus_OptimisticLock(t *testing.T) {
	f := newBookingFixture()
	f.repo.On("GetByID", mock.Anything, "b1").Return(&entity.Booking{ID: "b1", Status: entity.StatusConfirmed, Version: 2}, nil).Once()
	f.repo.On("UpdateStatus", mock.Anything, mock.Anything).Return(repository.ErrOptimisticLock).Once()

	_, err := f.svc.UpdateBookingStatus(context.Background(), "b1", entity.StatusInProgress)

	assert.ErrorIs(t, err, repository.ErrOptimisticLock)
	f.publisher.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything, mock.Anything)
}

func TestBookingService_UpdateBookingStatus_InvalidTransition(t *testing.T) {
	f := newBookingFixture()
	f.repo.On("GetByID", mock.Anything, "b1").Return(&entity.Booking{ID: "b1", Status: entity.StatusReadyForPayment, Version: 1}, nil).Once()

	_, err := f.svc.UpdateBookingStatus(context.Background(), "b1", entity.StatusCompleted)

	assert.ErrorIs(t, err, entity.ErrInvalidTransition)
	f.repo.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything)
}

func TestBookingService_UpdateBookingStatus_OnlyFulfilmentStatuses(t *testing.T) {
	f := newBookingFixture()

	for _, status := range []entity.BookingStatus{entity.StatusConfirmed, entity.StatusCancelled, entity.StatusReadyForPayment, "BOGUS"} {
		_, err := f.svc.UpdateBookingStatus(context.Background(), "b1", status)
		assert.ErrorIs(t, err, ErrStatusNotSettable, status)
	}
	f.repo.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
}
