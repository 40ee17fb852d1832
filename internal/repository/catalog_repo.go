package repository

import (
	"context"
	"time"

	"github.com/shalean-cleaning/shalean-cleaning-services/internal/domain/entity"
)

// CatalogRepository reads active reference data, ordered by name. An empty
// regionID means every region.
type CatalogRepository interface {
	ListServices(ctx context.Context) ([]entity.Service, error)
	ListExtras(ctx context.Context) ([]entity.Extra, error)
	ListRegions(ctx context.Context) ([]entity.Region, error)
	ListSuburbs(ctx context.Context, regionID string) ([]entity.Suburb, error)
	ListCleaners(ctx context.Context, regionID string) ([]entity.Cleaner, error)
}

// CatalogCache keeps serialized catalog answers. Get returns ErrNotFound on a
// miss.
type CatalogCache interface {
	Get(ctx context.Context, key string, dest any) error
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}
