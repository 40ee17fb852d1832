package entity

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

type BookingStatus string

const (
	StatusDraft           BookingStatus = "DRAFT"
	StatusReadyForPayment BookingStatus = "READY_FOR_PAYMENT"
	StatusConfirmed       BookingStatus = "CONFIRMED"
	StatusInProgress      BookingStatus = "IN_PROGRESS"
	StatusCompleted       BookingStatus = "COMPLETED"
	StatusCancelled       BookingStatus = "CANCELLED"
)

type PaymentStatus string

const (
	PaymentPending   PaymentStatus = "PENDING"
	PaymentCompleted PaymentStatus = "COMPLETED"
	PaymentFailed    PaymentStatus = "FAILED"
	PaymentRefunded  PaymentStatus = "REFUNDED"
)

var validTransitions = map[BookingStatus][]BookingStatus{
	StatusDraft:           {StatusReadyForPayment, StatusCancelled},
	StatusReadyForPayment: {StatusConfirmed, StatusCancelled},
	StatusConfirmed:       {StatusInProgress, StatusCancelled},
	StatusInProgress:      {StatusCompleted},
	StatusCompleted:       {},
	StatusCancelled:       {},
}

type BookingItem struct {
	ExtraID    string          `json:"extra_id"`
	Name       string          `json:"name"`
	Quantity   int             `json:"quantity"`
	Price      decimal.Decimal `json:"price"`
	TotalPrice decimal.Decimal `json:"total_price"`
}

type Contact struct {
	CustomerID string `json:"customer_id,omitempty"`
	Name       string `json:"name,omitempty"`
	Email      string `json:"email,omitempty"`
	Phone      string `json:"phone,omitempty"`
}

type Payment struct {
	Reference     string          `json:"reference"`
	TransactionID string          `json:"transaction_id,omitempty"`
	Amount        decimal.Decimal `json:"amount"`
	Currency      string          `json:"currency"`
	Status        PaymentStatus   `json:"status"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

type Booking struct {
	ID                  string           `json:"id"`
	Contact             Contact          `json:"contact"`
	ServiceID           string           `json:"service_id"`
	ServiceName         string           `json:"service_name"`
	SuburbID            string           `json:"suburb_id,omitempty"`
	SuburbName          string           `json:"suburb_name,omitempty"`
	RegionName          string           `json:"region_name,omitempty"`
	CleanerID           string           `json:"cleaner_id,omitempty"`
	CleanerName         string           `json:"cleaner_name,omitempty"`
	Address             string           `json:"address"`
	Bedrooms            int              `json:"bedrooms"`
	Bathrooms           int              `json:"bathrooms"`
	ScheduledDate       time.Time        `json:"scheduled_date"`
	ScheduledTime       string           `json:"scheduled_time"`
	SpecialInstructions string           `json:"special_instructions,omitempty"`
	Items               []BookingItem    `json:"items"`
	Pricing             PricingBreakdown `json:"pricing"`
	Status              BookingStatus    `json:"status"`
	Payment             *Payment         `json:"payment,omitempty"`
	CreatedAt           time.Time        `json:"created_at"`
	UpdatedAt           time.Time        `json:"updated_at"`
	Version             int              `json:"version"`
}

// NewBookingFromState turns a completed booking session into a booking that
// waits for payment. pricing must be the breakdown computed for state.
func NewBookingFromState(state *BookingState, pricing PricingBreakdown, contact Contact, instructions string) (*Booking, error) {
	if state == nil || state.Service == nil || state.Address == nil || strings.TrimSpace(*state.Address) == "" ||
		state.ScheduledDate == nil || state.ScheduledTime == nil {
		return nil, ErrIncompleteBooking
	}

	items := make([]BookingItem, 0, len(state.Extras))
	for _, extra := range state.Extras {
		items = append(items, BookingItem{
			ExtraID:    extra.ID,
			Name:       extra.Name,
			Quantity:   extra.Quantity,
			Price:      extra.Price,
			TotalPrice: extra.LineTotal(),
		})
	}

	now := time.Now().UTC()
	b := &Booking{
		Contact:             contact,
		ServiceID:           state.Service.ID,
		ServiceName:         state.Service.Name,
		Address:             strings.TrimSpace(*state.Address),
		Bedrooms:            state.Bedrooms,
		Bathrooms:           state.Bathrooms,
		ScheduledDate:       CalendarDate(*state.ScheduledDate),
		ScheduledTime:       *state.ScheduledTime,
		SpecialInstructions: strings.TrimSpace(instructions),
		Items:               items,
		Pricing:             pricing,
		Status:              StatusReadyForPayment,
		CreatedAt:           now,
		UpdatedAt:           now,
		Version:             1,
	}
	if state.Suburb != nil {
		b.SuburbID = state.Suburb.ID
		b.SuburbName = state.Suburb.Name
		b.RegionName = state.Suburb.Region.Name
	}
	if state.Cleaner != nil {
		b.CleanerID = state.Cleaner.ID
		b.CleanerName = state.Cleaner.DisplayName()
	}
	return b, nil
}

func (b *Booking) CanBeCancelled() bool {
	switch b.Status {
	case StatusDraft, StatusReadyForPayment, StatusConfirmed:
		return true
	default:
		return false
	}
}

func (b *Booking) UpdateStatus(newStatus BookingStatus) error {
	if b.Status == newStatus {
		return nil
	}
	allowed, ok := validTransitions[b.Status]
	if !ok {
		return fmt.Errorf("cannot transition from unknown status %s: %w", b.Status, ErrInvalidTransition)
	}
	for _, s := range allowed {
		if s == newStatus {
			b.Status = newStatus
			b.UpdatedAt = time.Now().UTC()
			b.Version++
			return nil
		}
	}
	return fmt.Errorf("%w: from %s to %s", ErrInvalidTransition, b.Status, newStatus)
}

func (b *Booking) AttachPayment(p Payment) error {
	if p.Reference == "" {
		return errors.New("payment reference cannot be empty")
	}
	b.Payment = &p
	b.UpdatedAt = time.Now().UTC()
	return nil
}
