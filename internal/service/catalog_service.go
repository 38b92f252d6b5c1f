package service

import (
	"context"
	"errors"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/singleflight"

	"github.com/manikantha-asam/ecommerce/internal/cache"
	"github.com/manikantha-asam/ecommerce/internal/domain"
	"github.com/manikantha-asam/ecommerce/internal/repository"
)

const cacheInvalidateTimeout = time.Second

// CatalogService serves the read-mostly product catalog and the staff-only
// mutations behind it. The unfiltered listing is cached; every admin write
// invalidates the cache.
type CatalogService struct {
	repo   repository.ProductRepository
	cache  cache.CatalogCache
	logger *logrus.Logger
	sfg    singleflight.Group // prevents cache stampede on the product list
}

func NewCatalogService(repo repository.ProductRepository, cache cache.CatalogCache, logger *logrus.Logger) *CatalogService {
	return &CatalogService{
		repo:   repo,
		cache:  cache,
		logger: logger,
	}
}

func (s *CatalogService) ListProducts(ctx context.Context, filter repository.ProductFilter) ([]*domain.Product, error) {
	if filter.Category != "" || filter.Search != "" {
		// filtered listings are cheap enough to serve from the database
		return s.repo.List(ctx, filter)
	}

	v, err, _ := s.sfg.Do("products:all", func() (interface{}, error) {
		products, err := s.cache.GetProducts(ctx)
		if err == nil {
			return products, nil
		}
		if !errors.Is(err, cache.ErrCacheMiss) {
			s.logger.WithError(err).Warn("product cache get failed")
		}

		products, err = s.repo.List(ctx, repository.ProductFilter{})
		if err != nil {
			return nil, err
		}

		go func() {
			if errSet := s.cache.SetProducts(context.Background(), products); errSet != nil {
				s.logger.WithError(errSet).Warn("product cache set failed")
			}
		}()

		return products, nil
	})
	if err != nil {
		return nil, err
	}
	return v.([]*domain.Product), nil
}

func (s *CatalogService) GetProduct(ctx context.Context, id int64) (*domain.Product, error) {
	return s.repo.Get(ctx, id)
}

func (s *CatalogService) CreateProduct(ctx context.Context, caller domain.Identity, p *domain.Product) error {
	if !caller.IsStaff {
		return ErrNotStaff
	}
	if errs := domain.ValidateProduct(p); !errs.Empty() {
		return errs
	}
	if err := s.repo.Create(ctx, p); err != nil {
		return err
	}
	s.invalidate()
	return nil
}

func (s *CatalogService) UpdateProduct(ctx context.Context, caller domain.Identity, p *domain.Product) error {
	if !caller.IsStaff {
		return ErrNotStaff
	}
	if errs := domain.ValidateProduct(p); !errs.Empty() {
		return errs
	}
	if err := s.repo.Update(ctx, p); err != nil {
		return err
	}
	s.invalidate()
	return nil
}

func (s *CatalogService) DeleteProduct(ctx context.Context, caller domain.Identity, id int64) error {
	if !caller.IsStaff {
		return ErrNotStaff
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.invalidate()
	return nil
}

func (s *CatalogService) invalidate() {
	ctx, cancel := context.WithTimeout(context.Background(), cacheInvalidateTimeout)
	defer cancel()
	if err := s.cache.Invalidate(ctx); err != nil {
		s.logger.WithError(err).Warn("product cache invalidate failed")
	}
}
