package service

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
	"github.com/shalean-cleaning/shalean-cleaning-services/internal/platform/logger"
)

func confirmedBooking() *entity.Booking {
	return &entity.Booking{
		ID:            "665f1c2e9b1d4a3f8c7e6d5a",
		Contact:       entity.Contact{Name: "Thandi Nkosi", Email: "thandi@example.co.za"},
		ServiceName:   "Standard House Cleaning",
		SuburbName:    "Sea Point",
		RegionName:    "Western Cape",
		CleanerName:   "Nomsa M.",
		Address:       "12 Beach Road",
		Bedrooms:      3,
		Bathrooms:     2,
		ScheduledDate: time.Date(2025, 3, 14, 0, 0, 0, 0, time.UTC),
		ScheduledTime: "09:00",
		Items: []entity.BookingItem{
			{ExtraID: "oven", Name: "Oven Cleaning", Quantity: 2, Price: decimal.NewFromInt(100), TotalPrice: decimal.NewFromInt(200)},
		},
		Pricing: entity.PricingBreakdown{
			BasePrice:     decimal.NewFromInt(450),
			BedroomPrice:  decimal.NewFromInt(180),
			BathroomPrice: decimal.NewFromInt(180),
			ExtrasPrice:   decimal.NewFromInt(200),
			ServiceFee:    decimal.NewFromInt(101),
			Total:         decimal.NewFromInt(1111),
		},
		Status:  entity.StatusConfirmed,
		Payment: &entity.Payment{Reference: "shalean_1741939200123_abcdef0123456"},
	}
}

func TestReceiptService_BuildConfirmation(t *testing.T) {
	svc := NewReceiptService(nil, logger.NewNopLogger())

	receipt, err := svc.BuildConfirmation(confirmedBooking())

	require.NoError(t, err)
	assert.Equal(t, "Booking confirmed: Standard House Cleaning on 2025-03-14", receipt.Subject)
	assert.Contains(t, receipt.BodyText, "Hi Thandi Nkosi,")
	assert.Contains(t, receipt.BodyText, "Area: Sea Point, Western Cape")
	assert.Contains(t, receipt.BodyText, "- Bedrooms (x3): R\u00a0180,00")
	assert.Contains(t, receipt.BodyText, "- Oven Cleaning (x2): R\u00a0200,00")
	assert.Contains(t, receipt.BodyText, "- Service fee: R\u00a0101,00")
	assert.Contains(t, receipt.BodyText, "Total paid: R\u00a01\u00a0111,00")
	assert.Contains(t, receipt.BodyText, "Payment reference: shalean_1741939200123_abcdef0123456")
	assert.Contains(t, receipt.BodyHTML, "<strong>R\u00a01\u00a0111,00</strong>")
	assert.Contains(t, receipt.BodyHTML, "Nomsa M.")
}

func TestReceiptService_BuildConfirmation_EscapesHTML(t *testing.T) {
	svc := NewReceiptService(nil, logger.NewNopLogger())
	b := confirmedBooking()
	b.Address = `<script>alert("x")</script>`
	b.Contact.Name = ""

	receipt, err := svc.BuildConfirmation(b)

	require.NoError(t, err)
	assert.NotContains(t, receipt.BodyHTML, "<script>")
	assert.Contains(t, receipt.BodyHTML, "&lt;script&gt;")
	assert.Contains(t, receipt.BodyText, "Hi there,")
}

func TestReceiptService_BuildConfirmation_SkipsEmptyRoomLines(t *testing.T) {
	svc := NewReceiptService(nil, logger.NewNopLogger())
	b := confirmedBooking()
	b.Pricing.BedroomPrice = decimal.Zero
	b.Pricing.BathroomPrice = decimal.Zero

	receipt, err := svc.BuildConfirmation(b)

	require.NoError(t, err)
	assert.NotContains(t, receipt.BodyText, "Bedrooms")
	assert.NotContains(t, receipt.BodyText, "Bathrooms")
}

func TestReceiptService_SendConfirmation(t *testing.T) {
	sender := new(MockEmailSender)
	svc := NewReceiptService(sender, logger.NewNopLogger())
	ctx := context.Background()

	sender.On("Send", mock.Anything, []string{"thandi@example.co.za"},
		"Booking confirmed: Standard House Cleaning on 2025-03-14", mock.Anything, mock.Anything).Return(nil).Once()
	require.NoError(t, svc.SendConfirmation(ctx, confirmedBooking()))

	noEmail := confirmedBooking()
	noEmail.Contact.Email = ""
	require.NoError(t, svc.SendConfirmation(ctx, noEmail))

	sender.AssertExpectations(t)
}

func TestReceiptService_SendConfirmation_SenderError(t *testing.T) {
	sender := new(MockEmailSender)
	svc := NewReceiptService(sender, logger.NewNopLogger())
	sender.On("Send", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(errors.New("auth failed")).Once()

	err := svc.SendConfirmation(context.Background(), confirmedBooking())

	assert.ErrorContains(t, err, "auth failed")
}

func TestReceiptService_SendConfirmation_NoSender(t *testing.T) {
	svc := NewReceiptService(nil, logger.NewNopLogger())

	assert.NoError(t, svc.SendConfirmation(context.Background(), confirmedBooking()))
}
