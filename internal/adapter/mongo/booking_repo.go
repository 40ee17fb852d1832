package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/shalean-cleaning/shalean-cleaning-services/internal/app/config"
	"github.com/shalean-cleaning/shalean-cleaning-services/internal/domain/entity"
	"github.com/shalean-cleaning/shalean-cleaning-services/internal/repository"
)

const (
	bookingCollectionName = "bookings"
)

var bookingSortFields = map[string]string{
	"created_at":     "created_at",
	"scheduled_date": "scheduled_date",
	"status":         "status",
	"total":          "pricing.total",
}

type bookingRepository struct {
	db         *mongo.Database
	collection *mongo.Collection
}

func NewBookingRepository(client *mongo.Client, cfg config.MongoDBConfig) repository.BookingRepository {
	database := client.Database(cfg.Database)
	return &bookingRepository{
		db:         database,
		collection: database.Collection(bookingCollectionName),
	}
}

// EnsureBookingIndexes creates the lookup indexes used by the booking
// repository. It is safe to call on every start.
func EnsureBookingIndexes(ctx context.Context, client *mongo.Client, cfg config.MongoDBConfig) error {
	collection := client.Database(cfg.Database).Collection(bookingCollectionName)
	_, err := collection.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "payment.reference", Value: 1}},
			Options: options.Index().SetUnique(true).SetSparse(true),
		},
		{
			Keys: bson.D{{Key: "contact.customer_id", Value: 1}, {Key: "created_at", Value: -1}},
		},
	})
	if err != nil {
		return fmt.Errorf("failed to create booking indexes: %w", err)
	}
	return nil
}

func (r *bookingRepository) Create(ctx context.Context, booking *entity.Booking) (string, error) {
	if booking == nil {
		return "", errors.New("cannot create nil booking")
	}
	now := time.Now().UTC()
	toStore := *booking
	toStore.ID = ""
	toStore.CreatedAt = now
	toStore.UpdatedAt = now
	toStore.Version = 1

	doc, err := toBookingDocument(&toStore)
	if err != nil {
		return "", fmt.Errorf("failed to map booking: %w", err)
	}

	res, err := r.collection.InsertOne(ctx, doc)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return "", repository.ErrAlreadyExists
		}
		return "", fmt.Errorf("failed to create booking: %w", err)
	}

	objectID, ok := res.InsertedID.(primitive.ObjectID)
	if !ok {
		return "", fmt.Errorf("failed to convert inserted ID to ObjectID")
	}

	return objectID.Hex(), nil
}

func (r *bookingRepository) GetByID(ctx context.Context, bookingID string) (*entity.Booking, error) {
	objID, err := primitive.ObjectIDFromHex(bookingID)
	if err != nil {
		return nil, fmt.Errorf("invalid booking ID format: %w", repository.ErrNotFound)
	}
	return r.findOne(ctx, bson.M{"_id": objID})
}

func (r *bookingRepository) GetByPaymentReference(ctx context.Context, reference string) (*entity.Booking, error) {
	if reference == "" {
		return nil, repository.ErrNotFound
	}
	return r.findOne(ctx, bson.M{"payment.reference": reference})
}

func (r *bookingRepository) findOne(ctx context.Context, filter bson.M) (*entity.Booking, error) {
	var doc bookingDocument
	err := r.collection.FindOne(ctx, filter).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get booking: %w", err)
	}
	return toDomainBooking(&doc), nil
}

func (r *bookingRepository) UpdateStatus(ctx context.Context, params repository.UpdateBookingStatusParams) error {
	objID, err := primitive.ObjectIDFromHex(params.BookingID)
	if err != nil {
		return fmt.Errorf("invalid booking ID format for update status: %w", repository.ErrNotFound)
	}

	update := bson.M{
		"$set": bson.M{
			"status":     params.Status,
			"updated_at": time.Now().UTC(),
		},
		"$inc": bson.M{"version": 1},
	}
	return r.updateVersioned(ctx, objID, params.Version, update)
}

func (r *bookingRepository) UpdatePayment(ctx context.Context, params repository.UpdateBookingPaymentParams) error {
	objID, err := primitive.ObjectIDFromHex(params.BookingID)
	if err != nil {
		return fmt.Errorf("invalid booking ID format for update payment: %w", repository.ErrNotFound)
	}

	payment, err := toPaymentDocument(params.Payment)
	if err != nil {
		return fmt.Errorf("failed to map payment: %w", err)
	}

	updateFields := bson.M{
		"payment":    payment,
		"updated_at": time.Now().UTC(),
	}
	if params.Status != "" {
		updateFields["status"] = params.Status
	}
	if params.Contact != nil {
		updateFields["contact"] = contactDocument(*params.Contact)
	}

	update := bson.M{
		"$set": updateFields,
		"$inc": bson.M{"version": 1},
	}
	return r.updateVersioned(ctx, objID, params.Version, update)
}

// updateVersioned applies update only if the stored version still matches.
func (r *bookingRepository) updateVersioned(ctx context.Context, objID primitive.ObjectID, version int, update bson.M) error {
	filter := bson.M{
		"_id":     objID,
		"version": version,
	}

	result, err := r.collection.UpdateOne(ctx, filter, update)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return repository.ErrAlreadyExists
		}
		return fmt.Errorf("failed to update booking %s: %w", objID.Hex(), err)
	}

	if result.MatchedCount == 0 {
		var existing bookingDocument
		errFind := r.collection.FindOne(ctx, bson.M{"_id": objID}).Decode(&existing)
		if errors.Is(errFind, mongo.ErrNoDocuments) {
			return repository.ErrNotFound
		}
		if errFind == nil && existing.Version != version {
			return repository.ErrOptimisticLock
		}
		return repository.ErrUpdateFailed
	}
	return nil
}

func (r *bookingRepository) List(ctx context.Context, params repository.ListBookingsParams) (*repository.ListBookingsResult, error) {
	filter := bson.M{}
	if params.CustomerID != "" {
		filter["contact.customer_id"] = params.CustomerID
	}
	if params.Status != "" {
		filter["status"] = params.Status
	}

	params = params.Bounded()
	findOptions := options.Find()
	if params.PageSize > 0 {
		findOptions.SetSkip(int64((params.Page - 1) * params.PageSize))
		findOptions.SetLimit(int64(params.PageSize))
	}

	sortField, ok := bookingSortFields[params.SortBy]
	if !ok {
		sortField = "created_at"
	}
	sortOrder := -1
	if params.SortOrder == "asc" {
		sortOrder = 1
	}
	findOptions.SetSort(bson.D{{Key: sortField, Value: sortOrder}})

	cursor, err := r.collection.Find(ctx, filter, findOptions)
	if err != nil {
		return nil, fmt.Errorf("failed to list bookings: %w", err)
	}
	defer cursor.Close(ctx)

	var docs []bookingDocument
	if err = cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("failed to decode listed bookings: %w", err)
	}

	totalCount, err := r.collection.CountDocuments(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to count bookings: %w", err)
	}

	bookings := make([]entity.Booking, 0, len(docs))
	for i := range docs {
		bookings = append(bookings, *toDomainBooking(&docs[i]))
	}

	totalPages := 0
	if params.PageSize > 0 {
		totalPages = (int(totalCount) + params.PageSize - 1) / params.PageSize
	} else if totalCount > 0 {
		totalPages = 1
	}

	return &repository.ListBookingsResult{
		Bookings:    bookings,
		TotalCount:  totalCount,
		CurrentPage: params.Page,
		PageSize:    params.PageSize,
		TotalPages:  totalPages,
	}, nil
}
