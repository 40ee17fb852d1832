package entity

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func completeState() *BookingState {
	date := time.Date(2025, 3, 14, 15, 30, 0, 0, time.UTC)
	tm := "09:00"
	state := NewBookingState()
	state.Service = &Service{ID: "svc-1", Name: "Deep Cleaning", BasePrice: decimal.NewFromInt(650)}
	state.Bedrooms = 2
	state.Bathrooms = 1
	state.Address = strPtr("  5 Kloof Street ")
	state.Suburb = &SuburbRef{ID: "sub-1", Name: "Gardens", Region: RegionRef{ID: "reg-1", Name: "City Bowl"}}
	state.ScheduledDate = &date
	state.ScheduledTime = &tm
	state.Cleaner = &CleanerRef{ID: "cl-1", FirstName: strPtr("Sipho"), LastName: strPtr("Ndlovu")}
	_ = state.AddExtra("e1", "Inside Fridge", decimal.NewFromInt(150))
	_ = state.AddExtra("e1", "Inside Fridge", decimal.NewFromInt(150))
	return state
}

func TestNewBookingFromState(t *testing.T) {
	state := completeState()
	pricing := PricingBreakdown{Total: decimal.NewFromInt(1045)}

	b, err := NewBookingFromState(state, pricing, Contact{Email: "a@b.co"}, " ring the bell ")
	require.NoError(t, err)

	assert.Equal(t, StatusReadyForPayment, b.Status)
	assert.Equal(t, 1, b.Version)
	assert.Equal(t, "5 Kloof Street", b.Address)
	assert.Equal(t, "ring the bell", b.SpecialInstructions)
	assert.Equal(t, "Gardens", b.SuburbName)
	assert.Equal(t, "City Bowl", b.RegionName)
	assert.Equal(t, "Sipho Ndlovu", b.CleanerName)
	assert.Equal(t, time.Date(2025, 3, 14, 0, 0, 0, 0, time.UTC), b.ScheduledDate)
	require.Len(t, b.Items, 1)
	assert.Equal(t, 2, b.Items[0].Quantity)
	assert.True(t, b.Items[0].TotalPrice.Equal(decimal.NewFromInt(300)))
	assert.True(t, b.Pricing.Total.Equal(decimal.NewFromInt(1045)))
}

func TestNewBookingFromState_Incomplete(t *testing.T) {
	cases := map[string]func(s *BookingState){
		"no service": func(s *BookingState) { s.Service = nil },
		"no address": func(s *BookingState) { s.Address = nil },
		"blank addr": func(s *BookingState) { s.Address = strPtr("   ") },
		"no date":    func(s *BookingState) { s.ScheduledDate = nil },
		"no time":    func(s *BookingState) { s.ScheduledTime = nil },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			state := completeState()
			mutate(state)
			_, err := NewBookingFromState(state, PricingBreakdown{}, Contact{}, "")
			assert.ErrorIs(t, err, ErrIncompleteBooking)
		})
	}
}

func TestBooking_UpdateStatus(t *testing.T) {
	b := &Booking{Status: StatusReadyForPayment, Version: 1}

	require.NoError(t, b.UpdateStatus(StatusConfirmed))
	assert.Equal(t, StatusConfirmed, b.Status)
	assert.Equal(t, 2, b.Version)

	require.NoError(t, b.UpdateStatus(StatusConfirmed))
	assert.Equal(t, 2, b.Version)

	err := b.UpdateStatus(StatusCompleted)
	assert.ErrorIs(t, err, ErrInvalidTransition)
	assert.Equal(t, StatusConfirmed, b.Status)

	require.NoError(t, b.UpdateStatus(StatusInProgress))
	assert.False(t, b.CanBeCancelled())
	require.NoError(t, b.UpdateStatus(StatusCompleted))

	assert.ErrorIs(t, b.UpdateStatus(StatusCancelled), ErrInvalidTransition)
}

func TestBooking_AttachPayment(t *testing.T) {
	b := &Booking{Status: StatusReadyForPayment}

	assert.Error(t, b.AttachPayment(Payment{}))
	assert.Nil(t, b.Payment)

	require.NoError(t, b.AttachPayment(Payment{Reference: "shalean_1_abc", Status: PaymentPending}))
	require.NotNil(t, b.Payment)
	assert.Equal(t, PaymentPending, b.Payment.Status)
}
