package repository

import (
	"context"

	"github.com/shalean-cleaning/shalean-cleaning-services/internal/domain/entity"
)

type UpdateBookingStatusParams struct {
	BookingID string
	Status    entity.BookingStatus
	Version   int
}

// UpdateBookingPaymentParams replaces the booking's payment record in one
// write. An empty Status and a nil Contact leave those fields unchanged.
type UpdateBookingPaymentParams struct {
	BookingID string
	Payment   entity.Payment
	Status    entity.BookingStatus
	Contact   *entity.Contact
	Version   int
}

// Paging bounds applied by List implementations.
const (
	MaxPage     = 10000
	MaxPageSize = 100
)

type ListBookingsParams struct {
	CustomerID string
	Status     string
	Page       int
	PageSize   int
	SortBy     string
	SortOrder  string
}

// Bounded returns a copy with Page and PageSize clamped to [1, MaxPage] and
// [1, MaxPageSize]. A non-positive PageSize stays 0, meaning unpaged.
func (p ListBookingsParams) Bounded() ListBookingsParams {
	if p.PageSize <= 0 {
		p.PageSize = 0
		return p
	}
	p.PageSize = min(p.PageSize, MaxPageSize)
	p.Page = max(1, min(p.Page, MaxPage))
	return p
}

type ListBookingsResult struct {
	Bookings    []entity.Booking
	TotalCount  int64
	CurrentPage int
	PageSize    int
	TotalPages  int
}

type BookingRepository interface {
	Create(ctx context.Context, booking *entity.Booking) (string, error)
	GetByID(ctx context.Context, bookingID string) (*entity.Booking, error)
	GetByPaymentReference(ctx context.Context, reference string) (*entity.Booking, error)
	UpdateStatus(ctx context.Context, params UpdateBookingStatusParams) error
	UpdatePayment(ctx context.Context, params UpdateBookingPaymentParams) error
	List(ctx context.Context, params ListBookingsParams) (*ListBookingsResult, error)
}
