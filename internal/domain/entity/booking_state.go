package entity

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

const (
	DateLayout = "2006-01-02"
	TimeLayout = "15:04"
)

type ExtraSelection struct {
	ID       string          `json:"id"`
	Name     string          `json:"name"`
	Price    decimal.Decimal `json:"price"`
	Quantity int             `json:"quantity"`
}

func NewExtraSelection(id, name string, price decimal.Decimal, quantity int) (*ExtraSelection, error) {
	e := &ExtraSelection{ID: id, Name: name, Price: price, Quantity: quantity}
	if err := e.validate(); err != nil {
		return nil, err
	}
	return e, nil
}

func (e ExtraSelection) validate() error {
	if strings.TrimSpace(e.ID) == "" || e.Price.IsNegative() || e.Quantity <= 0 {
		return ErrInvalidExtra
	}
	return nil
}

// LineTotal is the unit price times the selected quantity.
func (e ExtraSelection) LineTotal() decimal.Decimal {
	return e.Price.Mul(decimal.NewFromInt(int64(e.Quantity)))
}

type RegionRef struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type SuburbRef struct {
	ID     string    `json:"id"`
	Name   string    `json:"name"`
	Region RegionRef `json:"region"`
}

type CleanerRef struct {
	ID        string  `json:"id"`
	FirstName *string `json:"first_name,omitempty"`
	LastName  *string `json:"last_name,omitempty"`
}

// DisplayName joins the available name parts.
func (c CleanerRef) DisplayName() string {
	var parts []string
	if c.FirstName != nil && *c.FirstName != "" {
		parts = append(parts, *c.FirstName)
	}
	if c.LastName != nil && *c.LastName != "" {
		parts = append(parts, *c.LastName)
	}
	return strings.Join(parts, " ")
}

// PricingBreakdown is derived from a booking's priceable inputs. It is only
// ever produced by the pricing engine.
type PricingBreakdown struct {
	BasePrice     decimal.Decimal `json:"base_price"`
	BedroomPrice  decimal.Decimal `json:"bedroom_price"`
	BathroomPrice decimal.Decimal `json:"bathroom_price"`
	ExtrasPrice   decimal.Decimal `json:"extras_price"`
	Subtotal      decimal.Decimal `json:"subtotal"`
	ServiceFee    decimal.Decimal `json:"service_fee"`
	Total         decimal.Decimal `json:"total"`
}

func (p PricingBreakdown) IsZero() bool {
	return p.BasePrice.IsZero() && p.BedroomPrice.IsZero() && p.BathroomPrice.IsZero() &&
		p.ExtrasPrice.IsZero() && p.Subtotal.IsZero() && p.ServiceFee.IsZero() && p.Total.IsZero()
}

// BookingState is one session's in-progress booking.
type BookingState struct {
	Service       *Service
	Bedrooms      int
	Bathrooms     int
	Address       *string
	Suburb        *SuburbRef
	ScheduledDate *time.Time
	ScheduledTime *string
	Extras        []ExtraSelection
	Cleaner       *CleanerRef
	Pricing       PricingBreakdown
}

func NewBookingState() *BookingState {
	return &BookingState{
		Extras: make([]ExtraSelection, 0),
	}
}

// CalendarDate drops the clock and zone of t, keeping its calendar day as
// UTC midnight.
func CalendarDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func ParseScheduledDate(s string) (time.Time, error) {
	t, err := time.Parse(DateLayout, strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, ErrInvalidScheduledDate
	}
	return t, nil
}

func ValidateScheduledTime(s string) error {
	if _, err := time.Parse(TimeLayout, s); err != nil {
		return ErrInvalidScheduledTime
	}
	return nil
}

func (b *BookingState) GetExtra(id string) (*ExtraSelection, int) {
	for i, extra := range b.Extras {
		if extra.ID == id {
			return &b.Extras[i], i
		}
	}
	return nil, -1
}

// AddExtra increments an existing selection or appends a new one with
// quantity 1.
func (b *BookingState) AddExtra(id, name string, unitPrice decimal.Decimal) error {
	extra, _ := b.GetExtra(id)
	if extra != nil {
		extra.Quantity++
		return nil
	}
	newExtra, err := NewExtraSelection(id, name, unitPrice, 1)
	if err != nil {
		return err
	}
	b.Extras = append(b.Extras, *newExtra)
	return nil
}

// RemoveExtra takes one unit away; the last unit deletes the entry. Unknown
// ids are ignored.
func (b *BookingState) RemoveExtra(id string) {
	extra, index := b.GetExtra(id)
	if extra == nil {
		return
	}
	if extra.Quantity > 1 {
		extra.Quantity--
		return
	}
	b.deleteExtraAt(index)
}

// SetExtraQuantity deletes the entry when quantity <= 0 and otherwise sets it.
// An id with no entry is left alone.
func (b *BookingState) SetExtraQuantity(id string, quantity int) {
	extra, index := b.GetExtra(id)
	if extra == nil {
		return
	}
	if quantity <= 0 {
		b.deleteExtraAt(index)
		return
	}
	extra.Quantity = quantity
}

// ReplaceExtras swaps the whole selection list after validating it.
func (b *BookingState) ReplaceExtras(extras []ExtraSelection) error {
	seen := make(map[string]struct{}, len(extras))
	for _, e := range extras {
		if err := e.validate(); err != nil {
			return err
		}
		if _, ok := seen[e.ID]; ok {
			return ErrDuplicateExtra
		}
		seen[e.ID] = struct{}{}
	}
	b.Extras = append(make([]ExtraSelection, 0, len(extras)), extras...)
	return nil
}

func (b *BookingState) deleteExtraAt(index int) {
	b.Extras = append(b.Extras[:index], b.Extras[index+1:]...)
}

func (b *BookingState) Clone() *BookingState {
	if b == nil {
		return nil
	}
	c := *b
	if b.Service != nil {
		svc := *b.Service
		c.Service = &svc
	}
	if b.Address != nil {
		addr := *b.Address
		c.Address = &addr
	}
	if b.Suburb != nil {
		suburb := *b.Suburb
		c.Suburb = &suburb
	}
	if b.ScheduledDate != nil {
		date := *b.ScheduledDate
		c.ScheduledDate = &date
	}
	if b.ScheduledTime != nil {
		tm := *b.ScheduledTime
		c.ScheduledTime = &tm
	}
	if b.Cleaner != nil {
		cleaner := *b.Cleaner
		c.Cleaner = &cleaner
	}
	c.Extras = append(make([]ExtraSelection, 0, len(b.Extras)), b.Extras...)
	return &c
}
