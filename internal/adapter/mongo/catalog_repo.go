package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/shalean-cleaning/shalean-cleaning-services/internal/app/config"
	"github.com/shalean-cleaning/shalean-cleaning-services/internal/domain/entity"
	"github.com/shalean-cleaning/shalean-cleaning-services/internal/repository"
)

const (
	serviceCollectionName = "services"
	extraCollectionName   = "service_extras"
	regionCollectionName  = "regions"
	suburbCollectionName  = "suburbs"
	cleanerCollectionName = "cleaners"
)

type catalogRepository struct {
	services *mongo.Collection
	extras   *mongo.Collection
	regions  *mongo.Collection
	suburbs  *mongo.Collection
	cleaners *mongo.Collection
}

func NewCatalogRepository(client *mongo.Client, cfg config.MongoDBConfig) repository.CatalogRepository {
	db := client.Database(cfg.Database)
	return &catalogRepository{
		services: db.Collection(serviceCollectionName),
		extras:   db.Collection(extraCollectionName),
		regions:  db.Collection(regionCollectionName),
		suburbs:  db.Collection(suburbCollectionName),
		cleaners: db.Collection(cleanerCollectionName),
	}
}

func byName() *options.FindOptions {
	return options.Find().SetSort(bson.D{{Key: "name", Value: 1}})
}

// findAll decodes every matching document and maps it to the domain type.
func findAll[D any, T any](ctx context.Context, c *mongo.Collection, filter bson.M, opts *options.FindOptions, toDomain func(D) T) ([]T, error) {
	cursor, err := c.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to query %s: %w", c.Name(), err)
	}
	defer cursor.Close(ctx)

	var docs []D
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", c.Name(), err)
	}

	out := make([]T, 0, len(docs))
	for _, d := range docs {
		out = append(out, toDomain(d))
	}
	return out, nil
}

func (r *catalogRepository) ListServices(ctx context.Context) ([]entity.Service, error) {
	return findAll(ctx, r.services, bson.M{"is_active": true}, byName(), serviceDocument.toDomain)
}

func (r *catalogRepository) ListExtras(ctx context.Context) ([]entity.Extra, error) {
	return findAll(ctx, r.extras, bson.M{"is_active": true}, byName(), extraDocument.toDomain)
}

func (r *catalogRepository) ListRegions(ctx context.Context) ([]entity.Region, error) {
	return findAll(ctx, r.regions, bson.M{"is_active": true}, byName(), regionDocument.toDomain)
}

func (r *catalogRepository) ListSuburbs(ctx context.Context, regionID string) ([]entity.Suburb, error) {
	filter := bson.M{"is_active": true}
	if regionID != "" {
		filter["region_id"] = regionID
	}
	return findAll(ctx, r.suburbs, filter, byName(), suburbDocument.toDomain)
}

// ListCleaners includes cleaners without region assignments for every region.
func (r *catalogRepository) ListCleaners(ctx context.Context, regionID string) ([]entity.Cleaner, error) {
	filter := bson.M{"is_available": true}
	if regionID != "" {
		filter["$or"] = bson.A{
			bson.M{"region_ids": regionID},
			bson.M{"region_ids": bson.M{"$exists": false}},
			bson.M{"region_ids": bson.M{"$size": 0}},
		}
	}
	opts := options.Find().SetSort(bson.D{{Key: "rating", Value: -1}, {Key: "first_name", Value: 1}})
	return findAll(ctx, r.cleaners, filter, opts, cleanerDocument.toDomain)
}

// CatalogSeed is reference data written into empty collections.
type CatalogSeed struct {
	Services []entity.Service
	Extras   []entity.Extra
	Regions  []entity.Region
	Suburbs  []entity.Suburb
	Cleaners []entity.Cleaner
}

// SeedCatalog fills each empty catalog collection from seed and reports how
// many documents were written. Collections that already hold data are left
// alone.
func SeedCatalog(ctx context.Context, client *mongo.Client, cfg config.MongoDBConfig, seed CatalogSeed) (int, error) {
	db := client.Database(cfg.Database)

	services := make([]interface{}, 0, len(seed.Services))
	for _, s := range seed.Services {
		doc, err := toServiceDocument(s)
		if err != nil {
			return 0, err
		}
		services = append(services, doc)
	}
	extras := make([]interface{}, 0, len(seed.Extras))
	for _, e := range seed.Extras {
		doc, err := toExtraDocument(e)
		if err != nil {
			return 0, err
		}
		extras = append(extras, doc)
	}
	regions := make([]interface{}, 0, len(seed.Regions))
	for _, reg := range seed.Regions {
		regions = append(regions, toRegionDocument(reg))
	}
	suburbs := make([]interface{}, 0, len(seed.Suburbs))
	for _, s := range seed.Suburbs {
		suburbs = append(suburbs, toSuburbDocument(s))
	}
	cleaners := make([]interface{}, 0, len(seed.Cleaners))
	for _, c := range seed.Cleaners {
		doc, err := toCleanerDocument(c)
		if err != nil {
			return 0, err
		}
		cleaners = append(cleaners, doc)
	}

	batches := []struct {
		collection string
		docs       []interface{}
	}{
		{serviceCollectionName, services},
		{extraCollectionName, extras},
		{regionCollectionName, regions},
		{suburbCollectionName, suburbs},
		{cleanerCollectionName, cleaners},
	}

	written := 0
	for _, b := range batches {
		if len(b.docs) == 0 {
			continue
		}
		c := db.Collection(b.collection)
		count, err := c.EstimatedDocumentCount(ctx)
		if err != nil {
			return written, fmt.Errorf("failed to count %s: %w", b.collection, err)
		}
		if count > 0 {
			continue
		}
		res, err := c.InsertMany(ctx, b.docs)
		if err != nil {
			return written, fmt.Errorf("failed to seed %s: %w", b.collection, err)
		}
		written += len(res.InsertedIDs)
	}
	return written, nil
}
