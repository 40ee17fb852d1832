package service

import (
	"context"
	"errors"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	natsadapter "github.com/shalean-cleaning/shalean-cleaning-services/internal/adapter/nats"
	"github.com/shalean-cleaning/shalean-cleaning-services/internal/app/config"
	"github.com/shalean-cleaning/shalean-cleaning-services/internal/domain/entity"
	"github.com/shalean-cleaning/shalean-cleaning-services/internal/platform/logger"
	"github.com/shalean-cleaning/shalean-cleaning-services/internal/platform/metrics"
	"github.com/shalean-cleaning/shalean-cleaning-services/internal/pricing"
	"github.com/shalean-cleaning/shalean-cleaning-services/internal/repository"
)

var (
	ErrBookingNotCancellable = errors.New("booking cannot be cancelled in its current status")
	ErrBookingAccessDenied   = errors.New("booking belongs to another customer")
	// ErrStatusNotSettable covers statuses owned by checkout, payment or
	// cancellation.
	ErrStatusNotSettable = errors.New("booking status cannot be set directly")
)

// fulfilmentStatuses are the statuses staff move a paid booking through.
var fulfilmentStatuses = map[entity.BookingStatus]bool{
	entity.StatusInProgress: true,
	entity.StatusCompleted:  true,
}

var bookingTracer = otel.Tracer("booking-service/booking")

type CheckoutRequest struct {
	Contact             entity.Contact
	SpecialInstructions string
}

type BookingService interface {
	Checkout(ctx context.Context, sessionID string, req CheckoutRequest) (*entity.Booking, error)
	GetBooking(ctx context.Context, bookingID string) (*entity.Booking, error)
	ListCustomerBookings(ctx context.Context, customerID string, params repository.ListBookingsParams) (*repository.ListBookingsResult, error)
	CancelBooking(ctx context.Context, bookingID, customerID string) (*entity.Booking, error)
	UpdateBookingStatus(ctx context.Context, bookingID string, status entity.BookingStatus) (*entity.Booking, error)
}

type bookingService struct {
	bookingRepo repository.BookingRepository
	sessions    BookingSessionService
	publisher   natsadapter.MessagePublisher
	events      config.EventsConfig
	metrics     *metrics.MetricsManager
	log         logger.Logger
}

func NewBookingService(
	bookingRepo repository.BookingRepository,
	sessions BookingSessionService,
	publisher natsadapter.MessagePublisher,
	events config.EventsConfig,
	metricsManager *metrics.MetricsManager,
	log logger.Logger,
) BookingService {
	return &bookingService{
		bookingRepo: bookingRepo,
		sessions:    sessions,
		publisher:   publisher,
		events:      events,
		metrics:     metricsManager,
		log:         log.Named("booking"),
	}
}

// Checkout turns the session's state into a booking awaiting payment and
// empties the session.
func (s *bookingService) Checkout(ctx context.Context, sessionID string, req CheckoutRequest) (*entity.Booking, error) {
	ctx, span := bookingTracer.Start(ctx, "booking.Checkout")
	defer span.End()
	span.SetAttributes(attribute.String("session.id", sessionID))

	s.log.Infof("Checking out session %s", sessionID)
	store, err := s.sessions.OpenStore(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	state := store.State()
	booking, err := entity.NewBookingFromState(state, state.Pricing, req.Contact, req.SpecialInstructions)
	if err != nil {
		s.log.Warnf("Session %s is not ready for checkout: %v", sessionID, err)
		return nil, err
	}

	bookingID, err := s.bookingRepo.Create(ctx, booking)
	if err != nil {
		s.log.Errorf("Failed to save booking for session %s: %v", sessionID, err)
		span.RecordError(err)
		return nil, fmt.Errorf("failed to save booking: %w", err)
	}
	booking.ID = bookingID
	span.SetAttributes(attribute.String("booking.id", bookingID))

	store.Reset(ctx)

	if err := s.publisher.Publish(ctx, s.events.BookingCreated, newBookingEvent(booking, pricing.Currency)); err != nil {
		s.log.Warnf("Failed to publish booking created event for booking %s: %v", bookingID, err)
	}

	s.metrics.BookingsCreatedTotal.Inc()
	s.log.Infof("Booking %s created from session %s, total %s", bookingID, sessionID, booking.Pricing.Total.StringFixed(2))
	return booking, nil
}

func (s *bookingService) GetBooking(ctx context.Context, bookingID string) (*entity.Booking, error) {
	ctx, span := bookingTracer.Start(ctx, "booking.Get")
	defer span.End()

	booking, err := s.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			s.log.Infof("Booking %s not found", bookingID)
			return nil, err
		}
		s.log.Errorf("Failed to get booking %s: %v", bookingID, err)
		return nil, fmt.Errorf("failed to retrieve booking: %w", err)
	}
	return booking, nil
}

func (s *bookingService) ListCustomerBookings(ctx context.Context, customerID string, params repository.ListBookingsParams) (*repository.ListBookingsResult, error) {
	ctx, span := bookingTracer.Start(ctx, "booking.ListCustomer")
	defer span.End()

	params.CustomerID = customerID
	result, err := s.bookingRepo.List(ctx, params)
	if err != nil {
		s.log.Errorf("Failed to list bookings for customer %s: %v", customerID, err)
		return nil, fmt.Errorf("failed to retrieve customer bookings: %w", err)
	}
	s.log.Infof("Listed %d bookings for customer %s", len(result.Bookings), customerID)
	return result, nil
}

// CancelBooking cancels on behalf of a customer. Bookings created without an
// identity can be cancelled by anyone holding the id.
func (s *bookingService) CancelBooking(ctx context.Context, bookingID, customerID string) (*entity.Booking, error) {
	booking, err := s.GetBooking(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if booking.Contact.CustomerID != "" && booking.Contact.CustomerID != customerID {
		s.log.Warnf("Customer %q attempted to cancel booking %s belonging to %s", customerID, bookingID, booking.Contact.CustomerID)
		return nil, ErrBookingAccessDenied
	}
	if !booking.CanBeCancelled() {
		s.log.Warnf("Booking %s cannot be cancelled in status %s", bookingID, booking.Status)
		return nil, fmt.Errorf("%w: %s", ErrBookingNotCancellable, booking.Status)
	}
	return s.transition(ctx, booking, entity.StatusCancelled)
}

// UpdateBookingStatus moves a booking through fulfilment (IN_PROGRESS,
// COMPLETED) along the transition table.
func (s *bookingService) UpdateBookingStatus(ctx context.Context, bookingID string, status entity.BookingStatus) (*entity.Booking, error) {
	if !fulfilmentStatuses[status] {
		return nil, fmt.Errorf("%w: %q", ErrStatusNotSettable, status)
	}
	booking, err := s.GetBooking(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	return s.transition(ctx, booking, status)
}

func (s *bookingService) transition(ctx context.Context, booking *entity.Booking, status entity.BookingStatus) (*entity.Booking, error) {
	ctx, span := bookingTracer.Start(ctx, "booking.UpdateStatus")
	defer span.End()
	span.SetAttributes(attribute.String("booking.id", booking.ID), attribute.String("booking.status", string(status)))

	if booking.Status == status {
		return booking, nil
	}

	currentVersion := booking.Version
	if err := booking.UpdateStatus(status); err != nil {
		s.log.Warnf("Rejected status change of booking %s from %s to %s: %v", booking.ID, booking.Status, status, err)
		return nil, err
	}

	err := s.bookingRepo.UpdateStatus(ctx, repository.UpdateBookingStatusParams{
		BookingID: booking.ID,
		Status:    booking.Status,
		Version:   currentVersion,
	})
	if err != nil {
		s.log.Errorf("Failed to save status %s for booking %s: %v", status, booking.ID, err)
		return nil, fmt.Errorf("failed to update booking status: %w", err)
	}

	if errPub := s.publisher.Publish(ctx, s.events.BookingStatusUpdated, newBookingEvent(booking, pricing.Currency)); errPub != nil {
		s.log.Warnf("Failed to publish booking status event for booking %s: %v", booking.ID, errPub)
	}

	s.metrics.BookingStatusTotal.WithLabelValues(string(status)).Inc()
	s.log.Infof("Booking %s moved to %s", booking.ID, status)
	return booking, nil
}
