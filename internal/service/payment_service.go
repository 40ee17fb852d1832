package service

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	natsadapter "github.com/shalean-cleaning/shalean-cleaning-services/internal/adapter/nats"
	"github.com/shalean-cleaning/shalean-cleaning-services/internal/adapter/payment"
	"github.com/shalean-cleaning/shalean-cleaning-services/internal/app/config"
	"github.com/shalean-cleaning/shalean-cleaning-services/internal/domain/entity"
	"github.com/shalean-cleaning/shalean-cleaning-services/internal/platform/logger"
	"github.com/shalean-cleaning/shalean-cleaning-services/internal/platform/metrics"
	"github.com/shalean-cleaning/shalean-cleaning-services/internal/pricing"
	"github.com/shalean-cleaning/shalean-cleaning-services/internal/repository"
)

const referencePrefix = "shalean_"

var (
	ErrInvalidPaymentRequest = errors.New("invalid payment request")
	ErrBookingNotPayable     = errors.New("booking is not awaiting payment")
)

var (
	emailPattern     = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	maxPaymentAmount = decimal.NewFromInt(100_000_000)
	paymentTracer    = otel.Tracer("booking-service/payment")
)

type InitializePaymentRequest struct {
	BookingID     string           `json:"booking_id"`
	Amount        *decimal.Decimal `json:"amount,omitempty"`
	CustomerEmail string           `json:"customer_email"`
	CustomerName  string           `json:"customer_name"`
	CustomerPhone string           `json:"customer_phone,omitempty"`
}

type InitializePaymentResult struct {
	BookingID      string            `json:"booking_id"`
	Reference      string            `json:"reference"`
	Amount         decimal.Decimal   `json:"amount"`
	Currency       string            `json:"currency"`
	CustomerEmail  string            `json:"customer_email"`
	CustomerName   string            `json:"customer_name"`
	TransactionID  string            `json:"transaction_id"`
	ClientSecret   string            `json:"client_secret"`
	PublishableKey string            `json:"publishable_key,omitempty"`
	Metadata       map[string]string `json:"metadata"`
}

type VerifyPaymentRequest struct {
	Reference     string `json:"reference"`
	TransactionID string `json:"transaction_id,omitempty"`
}

// PaymentResult reports a verification outcome. A declined payment is a
// result with Success false, not an error.
type PaymentResult struct {
	Success       bool            `json:"success"`
	Reference     string          `json:"reference"`
	TransactionID string          `json:"transaction_id"`
	Amount        decimal.Decimal `json:"amount"`
	Currency      string          `json:"currency"`
	Message       string          `json:"message"`
	BookingID     string          `json:"booking_id"`

	// RefundRequired is set when money was captured for a booking that can no
	// longer be confirmed.
	RefundRequired bool `json:"refund_required,omitempty"`
}

type PaymentService interface {
	Initialize(ctx context.Context, req InitializePaymentRequest) (*InitializePaymentResult, error)
	Verify(ctx context.Context, req VerifyPaymentRequest) (*PaymentResult, error)
}

type paymentService struct {
	bookingRepo    repository.BookingRepository
	gateway        payment.Gateway
	receipts       ReceiptService
	publisher      natsadapter.MessagePublisher
	events         config.EventsConfig
	publishableKey string
	metrics        *metrics.MetricsManager
	log            logger.Logger
}

// NewPaymentService accepts a nil gateway; every call then fails with
// payment.ErrGatewayUnavailable.
func NewPaymentService(
	bookingRepo repository.BookingRepository,
	gateway payment.Gateway,
	receipts ReceiptService,
	publisher natsadapter.MessagePublisher,
	events config.EventsConfig,
	stripeCfg config.StripeConfig,
	metricsManager *metrics.MetricsManager,
	log logger.Logger,
) PaymentService {
	return &paymentService{
		bookingRepo:    bookingRepo,
		gateway:        gateway,
		receipts:       receipts,
		publisher:      publisher,
		events:         events,
		publishableKey: stripeCfg.PublishableKey,
		metrics:        metricsManager,
		log:            log.Named("payment"),
	}
}

// NewPaymentReference returns shalean_<unix-ms>_<13 random characters>.
func NewPaymentReference(now time.Time) string {
	random := strings.ReplaceAll(uuid.NewString(), "-", "")[:13]
	return fmt.Sprintf("%s%d_%s", referencePrefix, now.UnixMilli(), random)
}

func validateInitialize(req InitializePaymentRequest) error {
	if strings.TrimSpace(req.BookingID) == "" || strings.TrimSpace(req.CustomerEmail) == "" || strings.TrimSpace(req.CustomerName) == "" {
		return fmt.Errorf("%w: missing required fields: booking_id, customer_email, customer_name", ErrInvalidPaymentRequest)
	}
	if !emailPattern.MatchString(strings.TrimSpace(req.CustomerEmail)) {
		return fmt.Errorf("%w: invalid email format", ErrInvalidPaymentRequest)
	}
	return nil
}

func validateAmount(amount decimal.Decimal) error {
	if !amount.IsPositive() || amount.GreaterThan(maxPaymentAmount) {
		return fmt.Errorf("%w: amount must be between 1 and 100,000,000", ErrInvalidPaymentRequest)
	}
	return nil
}

// paymentMetadata carries the display strings shown next to the charge.
func paymentMetadata(b *entity.Booking, phone string) map[string]string {
	md := map[string]string{
		"booking_id":     b.ID,
		"service_name":   b.ServiceName,
		"scheduled_date": b.ScheduledDate.Format(entity.DateLayout),
		"scheduled_time": b.ScheduledTime,
		"address":        b.Address,
		"base_price":     pricing.FormatPrice(b.Pricing.BasePrice),
		"extras_price":   pricing.FormatPrice(b.Pricing.ExtrasPrice),
		"service_fee":    pricing.FormatPrice(b.Pricing.ServiceFee),
		"total":          pricing.FormatPrice(b.Pricing.Total),
	}
	if b.SuburbName != "" {
		md["location"] = strings.TrimSuffix(b.SuburbName+", "+b.RegionName, ", ")
	}
	if b.CleanerID != "" {
		md["cleaner_id"] = b.CleanerID
	}
	if phone != "" {
		md["customer_phone"] = phone
	}
	return md
}

func (s *paymentService) Initialize(ctx context.Context, req InitializePaymentRequest) (result *InitializePaymentResult, err error) {
	ctx, span := paymentTracer.Start(ctx, "payment.Initialize")
	defer span.End()
	defer func() { s.metrics.PaymentsTotal.WithLabelValues("initialize", metrics.Outcome(err)).Inc() }()

	if err := validateInitialize(req); err != nil {
		return nil, err
	}
	if s.gateway == nil {
		return nil, payment.ErrGatewayUnavailable
	}
	span.SetAttributes(attribute.String("booking.id", req.BookingID))

	booking, err := s.bookingRepo.GetByID(ctx, req.BookingID)
	if err != nil {
		s.log.Warnf("Payment initialization for booking %s failed to load booking: %v", req.BookingID, err)
		if errors.Is(err, repository.ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to retrieve booking: %w", err)
	}
	if booking.Status != entity.StatusReadyForPayment {
		return nil, fmt.Errorf("%w: status is %s", ErrBookingNotPayable, booking.Status)
	}

	amount := booking.Pricing.Total
	if req.Amount != nil && !req.Amount.Equal(amount) {
		return nil, fmt.Errorf("%w: amount %s does not match booking total %s", ErrInvalidPaymentRequest, req.Amount.String(), amount.StringFixed(2))
	}
	if err := validateAmount(amount); err != nil {
		return nil, err
	}

	reference := NewPaymentReference(time.Now())
	metadata := paymentMetadata(booking, req.CustomerPhone)
	email := strings.TrimSpace(req.CustomerEmail)
	name := strings.TrimSpace(req.CustomerName)

	intent, err := s.gateway.Initialize(ctx, payment.InitializeRequest{
		Reference:   reference,
		Email:       email,
		Name:        name,
		AmountMinor: pricing.MinorUnits(amount),
		Currency:    pricing.Currency,
		Description: fmt.Sprintf("%s on %s", booking.ServiceName, metadata["scheduled_date"]),
		Metadata:    metadata,
	})
	if err != nil {
		s.log.Errorf("Gateway rejected payment initialization for booking %s: %v", booking.ID, err)
		span.RecordError(err)
		return nil, fmt.Errorf("failed to initialize payment: %w", err)
	}

	now := time.Now().UTC()
	contact := booking.Contact
	contact.Email = email
	contact.Name = name
	if req.CustomerPhone != "" {
		contact.Phone = req.CustomerPhone
	}
	pay := entity.Payment{
		Reference:     reference,
		TransactionID: intent.TransactionID,
		Amount:        amount,
		Currency:      pricing.Currency,
		Status:        entity.PaymentPending,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	err = s.bookingRepo.UpdatePayment(ctx, repository.UpdateBookingPaymentParams{
		BookingID: booking.ID,
		Payment:   pay,
		Contact:   &contact,
		Version:   booking.Version,
	})
	if err != nil {
		s.log.Errorf("Failed to store payment reference %s on booking %s: %v", reference, booking.ID, err)
		return nil, fmt.Errorf("failed to update booking with payment reference: %w", err)
	}

	s.log.Infof("Payment %s initialized for booking %s, amount %s %s", reference, booking.ID, amount.StringFixed(2), pricing.Currency)
	return &InitializePaymentResult{
		BookingID:      booking.ID,
		Reference:      reference,
		Amount:         amount,
		Currency:       pricing.Currency,
		CustomerEmail:  email,
		CustomerName:   name,
		TransactionID:  intent.TransactionID,
		ClientSecret:   intent.ClientSecret,
		PublishableKey: s.publishableKey,
		Metadata:       metadata,
	}, nil
}

func (s *paymentService) Verify(ctx context.Context, req VerifyPaymentRequest) (result *PaymentResult, err error) {
	ctx, span := paymentTracer.Start(ctx, "payment.Verify")
	defer span.End()
	defer func() {
		outcome := metrics.Outcome(err)
		switch {
		case err == nil && result.RefundRequired:
			outcome = "refund_required"
		case err == nil && !result.Success:
			outcome = "declined"
		}
		s.metrics.PaymentsTotal.WithLabelValues("verify", outcome).Inc()
	}()

	reference := strings.TrimSpace(req.Reference)
	if reference == "" {
		return nil, fmt.Errorf("%w: payment reference is required", ErrInvalidPaymentRequest)
	}
	span.SetAttributes(attribute.String("payment.reference", reference))

	booking, err := s.bookingRepo.GetByPaymentReference(ctx, reference)
	if err != nil {
		s.log.Warnf("Payment verification for reference %s failed to load booking: %v", reference, err)
		if errors.Is(err, repository.ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to retrieve booking: %w", err)
	}
	if booking.Payment == nil {
		return nil, fmt.Errorf("booking %s has no payment: %w", booking.ID, repository.ErrNotFound)
	}
	pay := *booking.Payment

	if pay.Status == entity.PaymentCompleted {
		if booking.Status == entity.StatusCancelled {
			return s.refundResult(booking.ID, pay), nil
		}
		s.log.Infof("Payment %s already verified for booking %s", reference, booking.ID)
		return s.result(booking.ID, pay, true, "Payment successful"), nil
	}
	if s.gateway == nil {
		return nil, payment.ErrGatewayUnavailable
	}

	transactionID := pay.TransactionID
	if transactionID == "" {
		transactionID = strings.TrimSpace(req.TransactionID)
	}
	if transactionID == "" {
		return nil, fmt.Errorf("%w: no transaction recorded for reference %s", ErrInvalidPaymentRequest, reference)
	}

	verified, err := s.gateway.Verify(ctx, transactionID)
	if err != nil {
		s.log.Errorf("Gateway verification of %s failed: %v", reference, err)
		span.RecordError(err)
		return nil, fmt.Errorf("failed to verify payment: %w", err)
	}

	pay.TransactionID = verified.TransactionID
	pay.UpdatedAt = time.Now().UTC()
	succeeded := verified.Succeeded &&
		(verified.Reference == "" || verified.Reference == reference) &&
		verified.AmountMinor == pricing.MinorUnits(pay.Amount)

	if !succeeded {
		pay.Status = entity.PaymentFailed
		errUpd := s.bookingRepo.UpdatePayment(ctx, repository.UpdateBookingPaymentParams{
			BookingID: booking.ID,
			Payment:   pay,
			Version:   booking.Version,
		})
		if errUpd != nil {
			s.log.Errorf("Failed to record failed payment %s on booking %s: %v", reference, booking.ID, errUpd)
			return nil, fmt.Errorf("failed to update booking payment: %w", errUpd)
		}
		s.log.Warnf("Payment %s for booking %s not successful (gateway status %s)", reference, booking.ID, verified.Status)
		return s.result(booking.ID, pay, false, "Payment verification failed"), nil
	}

	pay.Status = entity.PaymentCompleted
	currentVersion := booking.Version
	if errStatus := booking.UpdateStatus(entity.StatusConfirmed); errStatus != nil {
		return s.recordUnconfirmable(ctx, booking, pay, errStatus)
	}
	booking.Payment = &pay

	err = s.bookingRepo.UpdatePayment(ctx, repository.UpdateBookingPaymentParams{
		BookingID: booking.ID,
		Payment:   pay,
		Status:    entity.StatusConfirmed,
		Version:   currentVersion,
	})
	if err != nil {
		s.log.Errorf("Failed to confirm booking %s after payment %s: %v", booking.ID, reference, err)
		return nil, fmt.Errorf("failed to update booking payment: %w", err)
	}

	if errPub := s.publisher.Publish(ctx, s.events.PaymentVerified, PaymentVerifiedEvent{
		BookingID:     booking.ID,
		Reference:     reference,
		TransactionID: pay.TransactionID,
		Amount:        pay.Amount,
		Currency:      pay.Currency,
		PaymentStatus: pay.Status,
		BookingStatus: booking.Status,
		OccurredAt:    pay.UpdatedAt,
	}); errPub != nil {
		s.log.Warnf("Failed to publish payment verified event for %s: %v", reference, errPub)
	}
	if errPub := s.publisher.Publish(ctx, s.events.BookingStatusUpdated, newBookingEvent(booking, pricing.Currency)); errPub != nil {
		s.log.Warnf("Failed to publish booking status event for booking %s: %v", booking.ID, errPub)
	}
	if errMail := s.receipts.SendConfirmation(ctx, booking); errMail != nil {
		s.log.Warnf("Confirmation e-mail for booking %s not sent: %v", booking.ID, errMail)
	}

	s.metrics.BookingStatusTotal.WithLabelValues(string(entity.StatusConfirmed)).Inc()
	s.log.Infof("Payment %s verified, booking %s confirmed", reference, booking.ID)
	return s.result(booking.ID, pay, true, "Payment successful"), nil
}

// recordUnconfirmable stores a captured payment on a booking that cannot move
// to CONFIRMED, typically one cancelled while the payment was pending. The
// booking keeps its status and the payment event asks for a refund.
func (s *paymentService) recordUnconfirmable(ctx context.Context, booking *entity.Booking, pay entity.Payment, cause error) (*PaymentResult, error) {
	s.log.Errorf("Payment %s captured but booking %s cannot be confirmed (%v), refund required", pay.Reference, booking.ID, cause)

	err := s.bookingRepo.UpdatePayment(ctx, repository.UpdateBookingPaymentParams{
		BookingID: booking.ID,
		Payment:   pay,
		Version:   booking.Version,
	})
	if err != nil {
		s.log.Errorf("Failed to record captured payment %s on booking %s: %v", pay.Reference, booking.ID, err)
		return nil, fmt.Errorf("failed to update booking payment: %w", err)
	}

	if errPub := s.publisher.Publish(ctx, s.events.PaymentVerified, PaymentVerifiedEvent{
		BookingID:      booking.ID,
		Reference:      pay.Reference,
		TransactionID:  pay.TransactionID,
		Amount:         pay.Amount,
		Currency:       pay.Currency,
		PaymentStatus:  pay.Status,
		BookingStatus:  booking.Status,
		RefundRequired: true,
		OccurredAt:     pay.UpdatedAt,
	}); errPub != nil {
		s.log.Warnf("Failed to publish refund request for payment %s: %v", pay.Reference, errPub)
	}
	return s.refundResult(booking.ID, pay), nil
}

func (s *paymentService) refundResult(bookingID string, pay entity.Payment) *PaymentResult {
	result := s.result(bookingID, pay, false, "Payment received for a booking that is no longer active, it will be refunded")
	result.RefundRequired = true
	return result
}

func (s *paymentService) result(bookingID string, pay entity.Payment, success bool, message string) *PaymentResult {
	return &PaymentResult{
		Success:       success,
		Reference:     pay.Reference,
		TransactionID: pay.TransactionID,
		Amount:        pay.Amount,
		Currency:      pay.Currency,
		Message:       message,
		BookingID:     bookingID,
	}
}
