package service

import (
	"context"
	"fmt"
	"time"

	"github.com/Amanisai/Emart/internal/domains/product/model"
	"github.com/Amanisai/Emart/internal/domains/product/repository"
	"github.com/Amanisai/Emart/internal/shared/money"
	"github.com/Amanisai/Emart/pkg/cache"
	"github.com/Amanisai/Emart/pkg/logger"
)

const (
	cacheTTL        = 5 * time.Minute
	cacheKeyPattern = "products:*"
	cacheKeyItemFmt = "products:item:%s"
	cacheKeyListFmt = "products:list:%s:%s"
)

type ProductService interface {
	Create(ctx context.Context, req model.CreateProductRequest) (*model.ProductResponse, error)
	GetByKey(ctx context.Context, key string) (*model.ProductResponse, error)
	List(ctx context.Context, query model.ListProductsQuery) ([]model.ProductResponse, error)
	Update(ctx context.Context, key string, req model.UpdateProductRequest) (*model.ProductResponse, error)
	Delete(ctx context.Context, key string) error
}

type productService struct {
	repo  repository.ProductRepository
	cache cache.Cache
}

func NewProductService(repo repository.ProductRepository, cache cache.Cache) ProductService {
	return &productService{repo: repo, cache: cache}
}

func (s *productService) Create(ctx context.Context, req model.CreateProductRequest) (*model.ProductResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	priceCents, err := money.ParseToCents(req.Price)
	if err != nil {
		return nil, model.ErrInvalidPrice
	}

	product := &model.Product{
		Key:         model.MakeKey(req.Type, req.ID),
		Type:        req.Type,
		Title:       req.Title,
		Brand:       req.Brand,
		Model:       req.Model,
		Description: req.Description,
		Image:       req.Image,
		PriceCents:  priceCents,
	}

	if err := s.repo.Create(ctx, product); err != nil {
		return nil, err
	}

	s.invalidateCache(ctx)

	logger.Info("Product created", map[string]interface{}{
		"key":   product.Key,
		"title": product.Title,
	})

	resp := model.ToProductResponse(product)
	return &resp, nil
}

func (s *productService) GetByKey(ctx context.Context, key string) (*model.ProductResponse, error) {
	if _, _, err := model.ParseKey(key); err != nil {
		return nil, model.ErrInvalidKey
	}

	cacheKey := fmt.Sprintf(cacheKeyItemFmt, key)
	if s.cache != nil {
		var cached model.ProductResponse
		if found, err := s.cache.Get(ctx, cacheKey, &cached); err == nil && found {
			return &cached, nil
		}
	}

	product, err := s.repo.GetByKey(ctx, key)
	if err != nil {
		return nil, err
	}

	resp := model.ToProductResponse(product)
	if s.cache != nil {
		if err := s.cache.Set(ctx, cacheKey, resp, cacheTTL); err != nil {
			logger.Warn("Failed to cache product", map[string]interface{}{"key": key})
		}
	}
	return &resp, nil
}

func (s *productService) List(ctx context.Context, query model.ListProductsQuery) ([]model.ProductResponse, error) {
	cacheKey := fmt.Sprintf(cacheKeyListFmt, query.Type, query.Search)
	if s.cache != nil {
		var cached []model.ProductResponse
		if found, err := s.cache.Get(ctx, cacheKey, &cached); err == nil && found {
			return cached, nil
		}
	}

	products, err := s.repo.List(ctx, query)
	if err != nil {
		return nil, err
	}

	responses := model.ToProductResponses(products)
	if s.cache != nil {
		if err := s.cache.Set(ctx, cacheKey, responses, cacheTTL); err != nil {
			logger.Warn("Failed to cache product list", map[string]interface{}{"key": cacheKey})
		}
	}
	return responses, nil
}

func (s *productService) Update(ctx context.Context, key string, req model.UpdateProductRequest) (*model.ProductResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	product, err := s.repo.GetByKey(ctx, key)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		product.Title = *req.Title
	}
	if req.Brand != nil {
		product.Brand = *req.Brand
	}
	if req.Model != nil {
		product.Model = *req.Model
	}
	if req.Description != nil {
		product.Description = *req.Description
	}
	if req.Image != nil {
		product.Image = *req.Image
	}
	if req.Price != nil {
		priceCents, err := money.ParseToCents(*req.Price)
		if err != nil {
			return nil, model.ErrInvalidPrice
		}
		product.PriceCents = priceCents
	}

	if err := s.repo.Update(ctx, product); err != nil {
		return nil, err
	}

	s.invalidateCache(ctx)

	logger.Info("Product updated", map[string]interface{}{"key": key})

	resp := model.ToProductResponse(product)
	return &resp, nil
}

func (s *productService) Delete(ctx context.Context, key string) error {
	if err := s.repo.Delete(ctx, key); err != nil {
		return err
	}

	s.invalidateCache(ctx)

	logger.Info("Product deleted", map[string]interface{}{"key": key})
	return nil
}

func (s *productService) invalidateCache(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.DeletePattern(ctx, cacheKeyPattern); err != nil {
		logger.Warn("Failed to invalidate product cache", nil)
	}
}
