package catalog

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/osse101/PixelFarm_Go/internal/domain"
	"github.com/osse101/PixelFarm_Go/internal/logger"
	"github.com/osse101/PixelFarm_Go/internal/metrics"
	"github.com/osse101/PixelFarm_Go/internal/repository"
)

// Service serves shop definitions from the database through a read cache
type Service interface {
	GetSeed(ctx context.Context, code string) (*domain.SeedType, error)
	GetAnimal(ctx context.Context, code string) (*domain.AnimalType, error)
	GetBuilding(ctx context.Context, code string) (*domain.BuildingType, error)

	// Catalog returns every definition, ordered by unlock level then code
	Catalog(ctx context.Context) (*domain.Catalog, error)

	// Invalidate drops all cached definitions
	Invalidate()
}

type service struct {
	repo  repository.Catalog
	cache *entryCache
}

// NewService creates a catalog service. A non-positive ttl uses DefaultCacheTTL.
func NewService(repo repository.Catalog, ttl time.Duration) Service {
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}
	return &service{
		repo:  repo,
		cache: newEntryCache(DefaultCacheSize, ttl),
	}
}

func (s *service) GetSeed(ctx context.Context, code string) (*domain.SeedType, error) {
	return lookup(ctx, s.cache, kindSeed, code, s.repo.GetSeedType, domain.ErrSeedNotFound)
}

func (s *service) GetAnimal(ctx context.Context, code string) (*domain.AnimalType, error) {
	return lookup(ctx, s.cache, kindAnimal, code, s.repo.GetAnimalType, domain.ErrAnimalNotFound)
}

func (s *service) GetBuilding(ctx context.Context, code string) (*domain.BuildingType, error) {
	return lookup(ctx, s.cache, kindBuilding, code, s.repo.GetBuildingType, domain.ErrBuildingTypeNotFound)
}

// lookup reads through the cache. Misses are not cached so a later sync
// becomes visible without waiting for the TTL.
func lookup[T any](
	ctx context.Context,
	cache *entryCache,
	kind, code string,
	load func(context.Context, string) (*T, error),
	notFound error,
) (*T, error) {
	if code == "" {
		return nil, notFound
	}

	if v, ok := cache.Get(kind, code); ok {
		if typed, ok := v.(*T); ok {
			metrics.CatalogCacheLookups.WithLabelValues(kind, metrics.ResultHit).Inc()
			return typed, nil
		}
	}
	metrics.CatalogCacheLookups.WithLabelValues(kind, metrics.ResultMiss).Inc()

	v, err := load(ctx, code)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, notFound
		}
		logger.FromContext(ctx).Error("Failed to load catalog entry", "kind", kind, "code", code, "error", err)
		return nil, fmt.Errorf("failed to load %s %q: %w", kind, code, err)
	}
	if v == nil {
		return nil, notFound
	}

	cache.Set(kind, code, v)
	return v, nil
}

func (s *service) Catalog(ctx context.Context) (*domain.Catalog, error) {
	var out domain.Catalog
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		seeds, err := s.repo.ListSeedTypes(gctx)
		if err != nil {
			return fmt.Errorf("failed to list seeds: %w", err)
		}
		sort.Slice(seeds, func(i, j int) bool {
			return lessByLevel(seeds[i].UnlockLevel, seeds[j].UnlockLevel, seeds[i].Code, seeds[j].Code)
		})
		out.Seeds = seeds
		return nil
	})
	g.Go(func() error {
		animals, err := s.repo.ListAnimalTypes(gctx)
		if err != nil {
			return fmt.Errorf("failed to list animals: %w", err)
		}
		sort.Slice(animals, func(i, j int) bool {
			return lessByLevel(animals[i].UnlockLevel, animals[j].UnlockLevel, animals[i].Code, animals[j].Code)
		})
		out.Animals = animals
		return nil
	})
	g.Go(func() error {
		buildings, err := s.repo.ListBuildingTypes(gctx)
		if err != nil {
			return fmt.Errorf("failed to list buildings: %w", err)
		}
		sort.Slice(buildings, func(i, j int) bool {
			return lessByLevel(buildings[i].UnlockLevel, buildings[j].UnlockLevel, buildings[i].Code, buildings[j].Code)
		})
		out.Buildings = buildings
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &out, nil
}

func lessByLevel(levelA, levelB int, codeA, codeB string) bool {
	if levelA != levelB {
		return levelA < levelB
	}
	return codeA < codeB
}

func (s *service) Invalidate() {
	s.cache.Clear()
}
