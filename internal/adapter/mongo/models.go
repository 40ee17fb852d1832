package mongo

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/shalean-cleaning/shalean-cleaning-services/internal/domain/entity"
)

// Money is stored as Decimal128 so amounts survive the round trip exactly.

func toDecimal128(d decimal.Decimal) (primitive.Decimal128, error) {
	v, err := primitive.ParseDecimal128(d.String())
	if err != nil {
		return primitive.Decimal128{}, fmt.Errorf("amount %s does not fit decimal128: %w", d, err)
	}
	return v, nil
}

func fromDecimal128(v primitive.Decimal128) decimal.Decimal {
	d, err := decimal.NewFromString(v.String())
	if err != nil {
		return decimal.Zero
	}
	return d
}

func toDecimal128Ptr(d *decimal.Decimal) (*primitive.Decimal128, error) {
	if d == nil {
		return nil, nil
	}
	v, err := toDecimal128(*d)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

func fromDecimal128Ptr(v *primitive.Decimal128) *decimal.Decimal {
	if v == nil {
		return nil
	}
	d := fromDecimal128(*v)
	return &d
}

type contactDocument struct {
	CustomerID string `bson:"customer_id,omitempty"`
	Name       string `bson:"name,omitempty"`
	Email      string `bson:"email,omitempty"`
	Phone      string `bson:"phone,omitempty"`
}

type bookingItemDocument struct {
	ExtraID    string               `bson:"extra_id"`
	Name       string               `bson:"name"`
	Quantity   int                  `bson:"quantity"`
	Price      primitive.Decimal128 `bson:"price"`
	TotalPrice primitive.Decimal128 `bson:"total_price"`
}

type pricingDocument struct {
	BasePrice     primitive.Decimal128 `bson:"base_price"`
	BedroomPrice  primitive.Decimal128 `bson:"bedroom_price"`
	BathroomPrice primitive.Decimal128 `bson:"bathroom_price"`
	ExtrasPrice   primitive.Decimal128 `bson:"extras_price"`
	Subtotal      primitive.Decimal128 `bson:"subtotal"`
	ServiceFee    primitive.Decimal128 `bson:"service_fee"`
	Total         primitive.Decimal128 `bson:"total"`
}

type paymentDocument struct {
	Reference     string               `bson:"reference"`
	TransactionID string               `bson:"transaction_id,omitempty"`
	Amount        primitive.Decimal128 `bson:"amount"`
	Currency      string               `bson:"currency"`
	Status        entity.PaymentStatus `bson:"status"`
	CreatedAt     time.Time            `bson:"created_at"`
	UpdatedAt     time.Time            `bson:"updated_at"`
}

type bookingDocument struct {
	ID                  primitive.ObjectID    `bson:"_id,omitempty"`
	Contact             contactDocument       `bson:"contact"`
	ServiceID           string                `bson:"service_id"`
	ServiceName         string                `bson:"service_name"`
	SuburbID            string                `bson:"suburb_id,omitempty"`
	SuburbName          string                `bson:"suburb_name,omitempty"`
	RegionName          string                `bson:"region_name,omitempty"`
	CleanerID           string                `bson:"cleaner_id,omitempty"`
	CleanerName         string                `bson:"cleaner_name,omitempty"`
	Address             string                `bson:"address"`
	Bedrooms            int                   `bson:"bedrooms"`
	Bathrooms           int                   `bson:"bathrooms"`
	ScheduledDate       time.Time             `bson:"scheduled_date"`
	ScheduledTime       string                `bson:"scheduled_time"`
	SpecialInstructions string                `bson:"special_instructions,omitempty"`
	Items               []bookingItemDocument `bson:"items"`
	Pricing             pricingDocument       `bson:"pricing"`
	Status              entity.BookingStatus  `bson:"status"`
	Payment             *paymentDocument      `bson:"payment,omitempty"`
	CreatedAt           time.Time             `bson:"created_at"`
	UpdatedAt           time.Time             `bson:"updated_at"`
	Version             int                   `bson:"version"`
}

func toPricingDocument(p entity.PricingBreakdown) (pricingDocument, error) {
	var doc pricingDocument
	fields := []struct {
		src decimal.Decimal
		dst *primitive.Decimal128
	}{
		{p.BasePrice, &doc.BasePrice},
		{p.BedroomPrice, &doc.BedroomPrice},
		{p.BathroomPrice, &doc.BathroomPrice},
		{p.ExtrasPrice, &doc.ExtrasPrice},
		{p.Subtotal, &doc.Subtotal},
		{p.ServiceFee, &doc.ServiceFee},
		{p.Total, &doc.Total},
	}
	for _, f := range fields {
		v, err := toDecimal128(f.src)
		if err != nil {
			return pricingDocument{}, err
		}
		*f.dst = v
	}
	return doc, nil
}

func toDomainPricing(d pricingDocument) entity.PricingBreakdown {
	return entity.PricingBreakdown{
		BasePrice:     fromDecimal128(d.BasePrice),
		BedroomPrice:  fromDecimal128(d.BedroomPrice),
		BathroomPrice: fromDecimal128(d.BathroomPrice),
		ExtrasPrice:   fromDecimal128(d.ExtrasPrice),
		Subtotal:      fromDecimal128(d.Subtotal),
		ServiceFee:    fromDecimal128(d.ServiceFee),
		Total:         fromDecimal128(d.Total),
	}
}

func toPaymentDocument(p entity.Payment) (*paymentDocument, error) {
	amount, err := toDecimal128(p.Amount)
	if err != nil {
		return nil, err
	}
	return &paymentDocument{
		Reference:     p.Reference,
		TransactionID: p.TransactionID,
		Amount:        amount,
		Currency:      p.Currency,
		Status:        p.Status,
		CreatedAt:     p.CreatedAt,
		UpdatedAt:     p.UpdatedAt,
	}, nil
}

func toDomainPayment(d *paymentDocument) *entity.Payment {
	if d == nil {
		return nil
	}
	return &entity.Payment{
		Reference:     d.Reference,
		TransactionID: d.TransactionID,
		Amount:        fromDecimal128(d.Amount),
		Currency:      d.Currency,
		Status:        d.Status,
		CreatedAt:     d.CreatedAt,
		UpdatedAt:     d.UpdatedAt,
	}
}

// toBookingDocument leaves ID unset for bookings that have not been stored yet.
func toBookingDocument(b *entity.Booking) (*bookingDocument, error) {
	var docID primitive.ObjectID
	if b.ID != "" {
		id, err := primitive.ObjectIDFromHex(b.ID)
		if err != nil {
			return nil, fmt.Errorf("invalid booking ID format '%s': %w", b.ID, err)
		}
		docID = id
	}

	items := make([]bookingItemDocument, 0, len(b.Items))
	for _, item := range b.Items {
		price, err := toDecimal128(item.Price)
		if err != nil {
			return nil, err
		}
		total, err := toDecimal128(item.TotalPrice)
		if err != nil {
			return nil, err
		}
		items = append(items, bookingItemDocument{
			ExtraID:    item.ExtraID,
			Name:       item.Name,
			Quantity:   item.Quantity,
			Price:      price,
			TotalPrice: total,
		})
	}

	pricing, err := toPricingDocument(b.Pricing)
	if err != nil {
		return nil, err
	}

	doc := &bookingDocument{
		ID:                  docID,
		Contact:             contactDocument(b.Contact),
		ServiceID:           b.ServiceID,
		ServiceName:         b.ServiceName,
		SuburbID:            b.SuburbID,
		SuburbName:          b.SuburbName,
		RegionName:          b.RegionName,
		CleanerID:           b.CleanerID,
		CleanerName:         b.CleanerName,
		Address:             b.Address,
		Bedrooms:            b.Bedrooms,
		Bathrooms:           b.Bathrooms,
		ScheduledDate:       b.ScheduledDate,
		ScheduledTime:       b.ScheduledTime,
		SpecialInstructions: b.SpecialInstructions,
		Items:               items,
		Pricing:             pricing,
		Status:              b.Status,
		CreatedAt:           b.CreatedAt,
		UpdatedAt:           b.UpdatedAt,
		Version:             b.Version,
	}
	if b.Payment != nil {
		payment, err := toPaymentDocument(*b.Payment)
		if err != nil {
			return nil, err
		}
		doc.Payment = payment
	}
	return doc, nil
}

func toDomainBooking(d *bookingDocument) *entity.Booking {
	items := make([]entity.BookingItem, 0, len(d.Items))
	for _, item := range d.Items {
		items = append(items, entity.BookingItem{
			ExtraID:    item.ExtraID,
			Name:       item.Name,
			Quantity:   item.Quantity,
			Price:      fromDecimal128(item.Price),
			TotalPrice: fromDecimal128(item.TotalPrice),
		})
	}
	return &entity.Booking{
		ID:                  d.ID.Hex(),
		Contact:             entity.Contact(d.Contact),
		ServiceID:           d.ServiceID,
		ServiceName:         d.ServiceName,
		SuburbID:            d.SuburbID,
		SuburbName:          d.SuburbName,
		RegionName:          d.RegionName,
		CleanerID:           d.CleanerID,
		CleanerName:         d.CleanerName,
		Address:             d.Address,
		Bedrooms:            d.Bedrooms,
		Bathrooms:           d.Bathrooms,
		ScheduledDate:       d.ScheduledDate.UTC(),
		ScheduledTime:       d.ScheduledTime,
		SpecialInstructions: d.SpecialInstructions,
		Items:               items,
		Pricing:             toDomainPricing(d.Pricing),
		Status:              d.Status,
		Payment:             toDomainPayment(d.Payment),
		CreatedAt:           d.CreatedAt,
		UpdatedAt:           d.UpdatedAt,
		Version:             d.Version,
	}
}

type serviceDocument struct {
	ID               string                `bson:"_id"`
	Name             string                `bson:"name"`
	Slug             string                `bson:"slug"`
	Description      *string               `bson:"description,omitempty"`
	CategoryID       *string               `bson:"category_id,omitempty"`
	BasePrice        primitive.Decimal128  `bson:"base_price"`
	PerBedroomPrice  *primitive.Decimal128 `bson:"per_bedroom_price,omitempty"`
	PerBathroomPrice *primitive.Decimal128 `bson:"per_bathroom_price,omitempty"`
	DurationMinutes  int                   `bson:"duration_minutes"`
	IsActive         bool                  `bson:"is_active"`
}

type extraDocument struct {
	ID          string               `bson:"_id"`
	Name        string               `bson:"name"`
	Description *string              `bson:"description,omitempty"`
	Price       primitive.Decimal128 `bson:"price"`
	IsActive    bool                 `bson:"is_active"`
}

type regionDocument struct {
	ID          string  `bson:"_id"`
	Name        string  `bson:"name"`
	Description *string `bson:"description,omitempty"`
	IsActive    bool    `bson:"is_active"`
}

type regionRefDocument struct {
	ID   string `bson:"id"`
	Name string `bson:"name"`
}

type suburbDocument struct {
	ID       string            `bson:"_id"`
	Name     string            `bson:"name"`
	RegionID string            `bson:"region_id"`
	IsActive bool              `bson:"is_active"`
	Region   regionRefDocument `bson:"region"`
}

type cleanerDocument struct {
	ID          string               `bson:"_id"`
	FirstName   *string              `bson:"first_name,omitempty"`
	LastName    *string              `bson:"last_name,omitempty"`
	Bio         *string              `bson:"bio,omitempty"`
	HourlyRate  primitive.Decimal128 `bson:"hourly_rate"`
	Rating      *float64             `bson:"rating,omitempty"`
	TotalJobs   *int                 `bson:"total_jobs,omitempty"`
	IsAvailable bool                 `bson:"is_available"`
	RegionIDs   []string             `bson:"region_ids,omitempty"`
}

func toServiceDocument(s entity.Service) (serviceDocument, error) {
	base, err := toDecimal128(s.BasePrice)
	if err != nil {
		return serviceDocument{}, err
	}
	perBedroom, err := toDecimal128Ptr(s.PerBedroomPrice)
	if err != nil {
		return serviceDocument{}, err
	}
	perBathroom, err := toDecimal128Ptr(s.PerBathroomPrice)
	if err != nil {
		return serviceDocument{}, err
	}
	return serviceDocument{
		ID:               s.ID,
		Name:             s.Name,
		Slug:             s.Slug,
		Description:      s.Description,
		CategoryID:       s.CategoryID,
		BasePrice:        base,
		PerBedroomPrice:  perBedroom,
		PerBathroomPrice: perBathroom,
		DurationMinutes:  s.DurationMinutes,
		IsActive:         s.IsActive,
	}, nil
}

func (d serviceDocument) toDomain() entity.Service {
	return entity.Service{
		ID:               d.ID,
		Name:             d.Name,
		Slug:             d.Slug,
		Description:      d.Description,
		CategoryID:       d.CategoryID,
		BasePrice:        fromDecimal128(d.BasePrice),
		PerBedroomPrice:  fromDecimal128Ptr(d.PerBedroomPrice),
		PerBathroomPrice: fromDecimal128Ptr(d.PerBathroomPrice),
		DurationMinutes:  d.DurationMinutes,
		IsActive:         d.IsActive,
	}
}

func toExtraDocument(e entity.Extra) (extraDocument, error) {
	price, err := toDecimal128(e.Price)
	if err != nil {
		return extraDocument{}, err
	}
	return extraDocument{ID: e.ID, Name: e.Name, Description: e.Description, Price: price, IsActive: e.IsActive}, nil
}

func (d extraDocument) toDomain() entity.Extra {
	return entity.Extra{ID: d.ID, Name: d.Name, Description: d.Description, Price: fromDecimal128(d.Price), IsActive: d.IsActive}
}

func toRegionDocument(r entity.Region) regionDocument {
	return regionDocument(r)
}

func (d regionDocument) toDomain() entity.Region {
	return entity.Region(d)
}

func toSuburbDocument(s entity.Suburb) suburbDocument {
	return suburbDocument{
		ID:       s.ID,
		Name:     s.Name,
		RegionID: s.RegionID,
		IsActive: s.IsActive,
		Region:   regionRefDocument(s.Region),
	}
}

func (d suburbDocument) toDomain() entity.Suburb {
	return entity.Suburb{
		ID:       d.ID,
		Name:     d.Name,
		RegionID: d.RegionID,
		IsActive: d.IsActive,
		Region:   entity.RegionRef(d.Region),
	}
}

func toCleanerDocument(c entity.Cleaner) (cleanerDocument, error) {
	rate, err := toDecimal128(c.HourlyRate)
	if err != nil {
		return cleanerDocument{}, err
	}
	return cleanerDocument{
		ID:          c.ID,
		FirstName:   c.FirstName,
		LastName:    c.LastName,
		Bio:         c.Bio,
		HourlyRate:  rate,
		Rating:      c.Rating,
		TotalJobs:   c.TotalJobs,
		IsAvailable: c.IsAvailable,
		RegionIDs:   c.RegionIDs,
	}, nil
}

func (d cleanerDocument) toDomain() entity.Cleaner {
	return entity.Cleaner{
		ID:          d.ID,
		FirstName:   d.FirstName,
		LastName:    d.LastName,
		Bio:         d.Bio,
		HourlyRate:  fromDecimal128(d.HourlyRate),
		Rating:      d.Rating,
		TotalJobs:   d.TotalJobs,
		IsAvailable: d.IsAvailable,
		RegionIDs:   d.RegionIDs,
	}
}
