package service

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/shalean-cleaning/shalean-cleaning-services/internal/domain/entity"
)

// BookingEvent is published on booking creation and on every status change.
type BookingEvent struct {
	BookingID     string               `json:"booking_id"`
	Status        entity.BookingStatus `json:"status"`
	ServiceName   string               `json:"service_name"`
	CustomerID    string               `json:"customer_id,omitempty"`
	CustomerEmail string               `json:"customer_email,omitempty"`
	ScheduledDate string               `json:"scheduled_date"`
	ScheduledTime string               `json:"scheduled_time"`
	Total         decimal.Decimal      `json:"total"`
	Currency      string               `json:"currency"`
	Version       int                  `json:"version"`
	OccurredAt    time.Time            `json:"occurred_at"`
}

// PaymentVerifiedEvent is published once a payment is captured. RefundRequired
// marks a capture for a booking that could not be confirmed.
type PaymentVerifiedEvent struct {
	BookingID      string               `json:"booking_id"`
	Reference      string               `json:"reference"`
	TransactionID  string               `json:"transaction_id"`
	Amount         decimal.Decimal      `json:"amount"`
	Currency       string               `json:"currency"`
	PaymentStatus  entity.PaymentStatus `json:"payment_status"`
	BookingStatus  entity.BookingStatus `json:"booking_status"`
	RefundRequired bool                 `json:"refund_required,omitempty"`
	OccurredAt     time.Time            `json:"occurred_at"`
}

func newBookingEvent(b *entity.Booking, currency string) BookingEvent {
	return BookingEvent{
		BookingID:     b.ID,
		Status:        b.Status,
		ServiceName:   b.ServiceName,
		CustomerID:    b.Contact.CustomerID,
		CustomerEmail: b.Contact.Email,
		ScheduledDate: b.ScheduledDate.Format(entity.DateLayout),
		ScheduledTime: b.ScheduledTime,
		Total:         b.Pricing.Total,
		Currency:      currency,
		Version:       b.Version,
		OccurredAt:    time.Now().UTC(),
	}
}
