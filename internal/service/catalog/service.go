package catalog

import (
	"context"
	"fmt"
	"time"

	"github.com/patrickmn/go-cache"

	"github.com/petcareapp/portal-api/internal/model"
	"github.com/petcareapp/portal-api/internal/repository"
)

const (
	cacheKeyCategories = "catalog:categories"
	cacheKeyBrands     = "catalog:brands"
)

type CatalogService interface {
	ListProducts(ctx context.Context, filter repository.ProductFilter) ([]model.Product, error)
	GetProduct(ctx context.Context, id int64) (*model.Product, error)
	ListOffers(ctx context.Context) ([]model.Product, error)
	ListCategories(ctx context.Context) ([]model.Category, error)
	ListBrands(ctx context.Context) ([]model.Brand, error)
	ListServices(ctx context.Context) ([]model.Service, error)
}

// Service serves the storefront catalog. Categories and brands change
// rarely, so they are cached for the configured TTL; product listings are
// always fetched fresh since stock moves.
type Service struct {
	products   repository.ProductRepository
	categories repository.CategoryRepository
	brands     repository.BrandRepository
	services   repository.ServiceRepository
	cache      *cache.Cache
	cacheTTL   time.Duration
}

func NewService(
	products repository.ProductRepository,
	categories repository.CategoryRepository,
	brands repository.BrandRepository,
	services repository.ServiceRepository,
	ttl, cleanupInterval time.Duration,
) *Service {
	return &Service{
		products:   products,
		categories: categories,
		brands:     brands,
		services:   services,
		cache:      cache.New(ttl, cleanupInterval),
		cacheTTL:   ttl,
	}
}

func (s *Service) ListProducts(ctx context.Context, filter repository.ProductFilter) ([]model.Product, error) {
	products, err := s.products.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	return products, nil
}

func (s *Service) GetProduct(ctx context.Context, id int64) (*model.Product, error) {
	product, err := s.products.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get product %d: %w", id, err)
	}
	return product, nil
}

// ListOffers returns in-stock products selling below their list price.
func (s *Service) ListOffers(ctx context.Context) ([]model.Product, error) {
	products, err := s.products.List(ctx, repository.ProductFilter{InStock: true})
	if err != nil {
		return nil, fmt.Errorf("failed to list offers: %w", err)
	}

	offers := make([]model.Product, 0, len(products))
	for _, p := range products {
		if p.HasDiscount() {
			offers = append(offers, p)
		}
	}
	return offers, nil
}

func (s *Service) ListCategories(ctx context.Context) ([]model.Category, error) {
	if cached, found := s.cache.Get(cacheKeyCategories); found {
		return cached.([]model.Category), nil
	}

	categories, err := s.categories.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}

	s.cache.Set(cacheKeyCategories, categories, s.cacheTTL)
	return categories, nil
}

func (s *Service) ListBrands(ctx context.Context) ([]model.Brand, error) {
	if cached, found := s.cache.Get(cacheKeyBrands); found {
		return cached.([]model.Brand), nil
	}

	brands, err := s.brands.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list brands: %w", err)
	}

	s.cache.Set(cacheKeyBrands, brands, s.cacheTTL)
	return brands, nil
}

func (s *Service) ListServices(ctx context.Context) ([]model.Service, error) {
	services, err := s.services.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list services: %w", err)
	}
	return services, nil
}
