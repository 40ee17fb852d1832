package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"github.com/shalean-cleaning/shalean-cleaning-services/internal/catalog"
	"github.com/shalean-cleaning/shalean-cleaning-services/internal/domain/entity"
	"github.com/shalean-cleaning/shalean-cleaning-services/internal/platform/logger"
	"github.com/shalean-cleaning/shalean-cleaning-services/internal/platform/metrics"
	"github.com/shalean-cleaning/shalean-cleaning-services/internal/pricing"
	"github.com/shalean-cleaning/shalean-cleaning-services/internal/repository"
)

const defaultCatalogCacheTTL = 5 * time.Minute

var catalogTracer = otel.Tracer("booking-service/catalog")

// CatalogService answers reference-data queries. List operations never fail:
// when the catalog store is unreachable the built-in seed data is returned
// with SourceFallback.
type CatalogService interface {
	ListServices(ctx context.Context) catalog.Result[entity.Service]
	GetServiceBySlug(ctx context.Context, slug string) (entity.Service, catalog.Source, error)
	GetService(ctx context.Context, serviceID string) (entity.Service, error)
	ListExtras(ctx context.Context) catalog.Result[entity.Extra]
	GetExtra(ctx context.Context, extraID string) (entity.Extra, error)
	ListRegions(ctx context.Context) catalog.Result[entity.Region]
	ListSuburbs(ctx context.Context, regionID string) catalog.Result[entity.Suburb]
	GetSuburb(ctx context.Context, suburbID string) (entity.Suburb, error)
	ListCleaners(ctx context.Context, regionID string) catalog.Result[entity.Cleaner]
	GetCleaner(ctx context.Context, cleanerID string) (entity.Cleaner, error)
}

type CatalogServiceConfig struct {
	CacheTTL time.Duration
}

type catalogService struct {
	repo     repository.CatalogRepository
	cache    repository.CatalogCache
	metrics  *metrics.MetricsManager
	log      logger.Logger
	cacheTTL time.Duration
}

func NewCatalogService(
	repo repository.CatalogRepository,
	cache repository.CatalogCache,
	metricsManager *metrics.MetricsManager,
	log logger.Logger,
	cfg CatalogServiceConfig,
) CatalogService {
	cacheTTL := cfg.CacheTTL
	if cacheTTL <= 0 {
		cacheTTL = defaultCatalogCacheTTL
	}
	return &catalogService{
		repo:     repo,
		cache:    cache,
		metrics:  metricsManager,
		log:      log.Named("catalog"),
		cacheTTL: cacheTTL,
	}
}

// lookup reads through the cache to the store and degrades to seed on a
// store error. Fallback answers are never cached.
func lookup[T any](
	ctx context.Context,
	s *catalogService,
	collection, cacheKey string,
	fetch func(context.Context) ([]T, error),
	seed func() []T,
) catalog.Result[T] {
	ctx, span := catalogTracer.Start(ctx, "catalog."+collection)
	defer span.End()

	var result catalog.Result[T]
	var cached []T
	cacheErr := s.cache.Get(ctx, cacheKey, &cached)
	switch {
	case cacheErr == nil:
		s.log.Debugf("Catalog %s served from cache key %s", collection, cacheKey)
		result = catalog.Cached(cached)
	default:
		if !errors.Is(cacheErr, repository.ErrNotFound) {
			s.log.Warnf("Error reading catalog %s from cache: %v. Fetching from store.", collection, cacheErr)
		}
		items, err := fetch(ctx)
		if err != nil {
			s.log.Warnf("Catalog store unavailable for %s, serving seed data: %v", collection, err)
			span.RecordError(err)
			result = catalog.Fallback(seed(), err)
			break
		}
		result = catalog.Live(items)
		if errSet := s.cache.Set(ctx, cacheKey, result.Items, s.cacheTTL); errSet != nil {
			s.log.Warnf("Failed to cache catalog %s under key %s: %v", collection, cacheKey, errSet)
		}
	}

	span.SetAttributes(
		attribute.String("catalog.source", string(result.Source)),
		attribute.Int("catalog.items", len(result.Items)),
	)
	s.metrics.CatalogRequestsTotal.WithLabelValues(collection, string(result.Source)).Inc()
	return result
}

func regionKey(prefix, regionID string) string {
	if regionID == "" {
		return prefix + ":all"
	}
	return prefix + ":" + regionID
}

func (s *catalogService) ListServices(ctx context.Context) catalog.Result[entity.Service] {
	result := lookup(ctx, s, "services", "services", s.repo.ListServices, catalog.SeedServices)
	for i := range result.Items {
		if result.Items[i].Slug == "" {
			result.Items[i].Slug = pricing.ServiceSlug(result.Items[i].Name)
		}
	}
	return result
}

func (s *catalogService) GetServiceBySlug(ctx context.Context, slug string) (entity.Service, catalog.Source, error) {
	slug = strings.ToLower(strings.TrimSpace(slug))
	result := s.ListServices(ctx)
	svc, ok := result.First(func(svc entity.Service) bool { return svc.Slug == slug })
	if !ok {
		s.log.Infof("Service with slug %q not found (source %s)", slug, result.Source)
		return entity.Service{}, result.Source, fmt.Errorf("%w: slug %q", entity.ErrServiceNotFound, slug)
	}
	return svc, result.Source, nil
}

func (s *catalogService) GetService(ctx context.Context, serviceID string) (entity.Service, error) {
	svc, ok := s.ListServices(ctx).First(func(svc entity.Service) bool { return svc.ID == serviceID })
	if !ok {
		return entity.Service{}, entity.ErrServiceNotFound
	}
	return svc, nil
}

func (s *catalogService) ListExtras(ctx context.Context) catalog.Result[entity.Extra] {
	return lookup(ctx, s, "extras", "extras", s.repo.ListExtras, catalog.SeedExtras)
}

func (s *catalogService) GetExtra(ctx context.Context, extraID string) (entity.Extra, error) {
	extra, ok := s.ListExtras(ctx).First(func(e entity.Extra) bool { return e.ID == extraID })
	if !ok {
		return entity.Extra{}, entity.ErrExtraNotFound
	}
	return extra, nil
}

func (s *catalogService) ListRegions(ctx context.Context) catalog.Result[entity.Region] {
	return lookup(ctx, s, "regions", "regions", s.repo.ListRegions, catalog.SeedRegions)
}

func (s *catalogService) ListSuburbs(ctx context.Context, regionID string) catalog.Result[entity.Suburb] {
	fetch := func(ctx context.Context) ([]entity.Suburb, error) {
		return s.repo.ListSuburbs(ctx, regionID)
	}
	seed := func() []entity.Suburb {
		return catalog.Fallback(catalog.SeedSuburbs(), nil).Filter(func(sub entity.Suburb) bool {
			return regionID == "" || sub.RegionID == regionID
		}).Items
	}
	return lookup(ctx, s, "suburbs", regionKey("suburbs", regionID), fetch, seed)
}

func (s *catalogService) GetSuburb(ctx context.Context, suburbID string) (entity.Suburb, error) {
	sub, ok := s.ListSuburbs(ctx, "").First(func(sub entity.Suburb) bool { return sub.ID == suburbID })
	if !ok {
		return entity.Suburb{}, entity.ErrSuburbNotFound
	}
	return sub, nil
}

func (s *catalogService) ListCleaners(ctx context.Context, regionID string) catalog.Result[entity.Cleaner] {
	fetch := func(ctx context.Context) ([]entity.Cleaner, error) {
		return s.repo.ListCleaners(ctx, regionID)
	}
	seed := func() []entity.Cleaner {
		return catalog.Fallback(catalog.SeedCleaners(), nil).Filter(func(c entity.Cleaner) bool {
			return c.ServesRegion(regionID)
		}).Items
	}
	return lookup(ctx, s, "cleaners", regionKey("cleaners", regionID), fetch, seed)
}

func (s *catalogService) GetCleaner(ctx context.Context, cleanerID string) (entity.Cleaner, error) {
	cleaner, ok := s.ListCleaners(ctx, "").First(func(c entity.Cleaner) bool { return c.ID == cleanerID })
	if !ok {
		return entity.Cleaner{}, entity.ErrCleanerNotFound
	}
	return cleaner, nil
}
