package service

import (
	"context"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/Amanisai/Emart/internal/domains/product/model"
)

// ========================================
// FAKES
// ========================================

type fakeProductRepo struct {
	products map[string]*model.Product
	listed   int
}

func newFakeProductRepo() *fakeProductRepo {
	return &fakeProductRepo{products: make(map[string]*model.Product)}
}

func (f *fakeProductRepo) Create(ctx context.Context, p *model.Product) error {
	if _, ok := f.products[p.Key]; ok {
		return model.ErrProductAlreadyExists
	}
	p.CreatedAt = time.Now()
	p.UpdatedAt = p.CreatedAt
	f.products[p.Key] = p
	return nil
}

func (f *fakeProductRepo) GetByKey(ctx context.Context, key string) (*model.Product, error) {
	p, ok := f.products[key]
	if !ok {
		return nil, model.ErrProductNotFound
	}
	return p, nil
}

func (f *fakeProductRepo) GetByKeys(ctx context.Context, keys []string) (map[string]model.Product, error) {
	result := make(map[string]model.Product)
	for _, key := range keys {
		if p, ok := f.products[key]; ok {
			result[key] = *p
		}
	}
	return result, nil
}

func (f *fakeProductRepo) List(ctx context.Context, query model.ListProductsQuery) ([]model.Product, error) {
	f.listed++
	var products []model.Product
	for _, p := range f.products {
		if query.Type != "" && query.Type != "all" && p.Type != query.Type {
			continue
		}
		if query.Search != "" && !strings.Contains(strings.ToLower(p.Title), strings.ToLower(query.Search)) {
			continue
		}
		products = append(products, *p)
	}
	return products, nil
}

func (f *fakeProductRepo) Update(ctx context.Context, p *model.Product) error {
	if _, ok := f.products[p.Key]; !ok {
		return model.ErrProductNotFound
	}
	f.products[p.Key] = p
	return nil
}

func (f *fakeProductRepo) Delete(ctx context.Context, key string) error {
	if _, ok := f.products[key]; !ok {
		return model.ErrProductNotFound
	}
	delete(f.products, key)
	return nil
}

// fakeCache stores marshaled values like the Redis implementation does
type fakeCache struct {
	entries map[string][]byte
}

func newFakeCache() *fakeCache {
	return &fakeCache{entries: make(map[string][]byte)}
}

func (f *fakeCache) Get(ctx context.Context, key string, dest interface{}) (bool, error) {
	data, ok := f.entries[key]
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(data, dest)
}

func (f *fakeCache) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	f.entries[key] = data
	return nil
}

func (f *fakeCache) Delete(ctx context.Context, keys ...string) error {
	for _, key := range keys {
		delete(f.entries, key)
	}
	return nil
}

func (f *fakeCache) DeletePattern(ctx context.Context, pattern string) error {
	prefix := strings.TrimSuffix(pattern, "*")
	for key := range f.entries {
		if strings.HasPrefix(key, prefix) {
			delete(f.entries, key)
		}
	}
	return nil
}

func (f *fakeCache) Ping(ctx context.Context) error { return nil }

func newTestProductService() (ProductService, *fakeProductRepo, *fakeCache) {
	repo := newFakeProductRepo()
	cache := newFakeCache()
	return NewProductService(repo, cache), repo, cache
}

// ========================================
// TESTS
// ========================================

func TestCreateProductBuildsKeyAndParsesPrice(t *testing.T) {
	t.Parallel()

	svc, _, _ := newTestProductService()

	created, err := svc.Create(context.Background(), model.CreateProductRequest{
		Type:  "books",
		ID:    "clean-code",
		Title: "Clean Code",
		Brand: "Prentice Hall",
		Price: "5.99",
	})
	require.NoError(t, err)
	require.Equal(t, "books:clean-code", created.Key)
	require.Equal(t, "clean-code", created.ID)
	require.Equal(t, "books", created.Type)
	require.Equal(t, "Prentice Hall", created.Brand)
	require.Equal(t, "5.99", created.Price)
}

func TestCreateProductDuplicateKey(t *testing.T) {
	t.Parallel()

	svc, _, _ := newTestProductService()
	ctx := context.Background()

	req := model.CreateProductRequest{Type: "books", ID: "clean-code", Title: "Clean Code", Price: "5.99"}
	_, err := svc.Create(ctx, req)
	require.NoError(t, err)

	_, err = svc.Create(ctx, req)
	require.ErrorIs(t, err, model.ErrProductAlreadyExists)
}

func TestCreateProductRejectsBadPrice(t *testing.T) {
	t.Parallel()

	svc, _, _ := newTestProductService()
	ctx := context.Background()

	_, err := svc.Create(ctx, model.CreateProductRequest{Type: "books", ID: "x", Title: "X", Price: "abc"})
	require.ErrorIs(t, err, model.ErrInvalidPrice)

	_, err = svc.Create(ctx, model.CreateProductRequest{Type: "books", ID: "x", Title: "X", Price: "1.999"})
	require.ErrorIs(t, err, model.ErrInvalidPrice)
}

func TestGetByKeyRejectsMalformedKey(t *testing.T) {
	t.Parallel()

	svc, _, _ := newTestProductService()

	_, err := svc.GetByKey(context.Background(), "no-separator")
	require.ErrorIs(t, err, model.ErrInvalidKey)
}

func TestListServesSecondReadFromCache(t *testing.T) {
	t.Parallel()

	svc, repo, _ := newTestProductService()
	ctx := context.Background()

	_, err := svc.Create(ctx, model.CreateProductRequest{Type: "books", ID: "clean-code", Title: "Clean Code", Price: "5.99"})
	require.NoError(t, err)

	first, err := svc.List(ctx, model.ListProductsQuery{})
	require.NoError(t, err)
	require.Len(t, first, 1)

	second, err := svc.List(ctx, model.ListProductsQuery{})
	require.NoError(t, err)
	require.Equal(t, first, second)
	require.Equal(t, 1, repo.listed, "second read should come from cache")
}

func TestWritesInvalidateCache(t *testing.T) {
	t.Parallel()

	svc, repo, _ := newTestProductService()
	ctx := context.Background()

	created, err := svc.Create(ctx, model.CreateProductRequest{Type: "books", ID: "clean-code", Title: "Clean Code", Price: "5.99"})
	require.NoError(t, err)

	_, err = svc.List(ctx, model.ListProductsQuery{})
	require.NoError(t, err)

	newPrice := "6.49"
	_, err = svc.Update(ctx, created.Key, model.UpdateProductRequest{Price: &newPrice})
	require.NoError(t, err)

	listed, err := svc.List(ctx, model.ListProductsQuery{})
	require.NoError(t, err)
	require.Equal(t, "6.49", listed[0].Price)
	require.Equal(t, 2, repo.listed, "update should have evicted the cached list")
}

func TestListFilters(t *testing.T) {
	t.Parallel()

	svc, _, _ := newTestProductService()
	ctx := context.Background()

	_, err := svc.Create(ctx, model.CreateProductRequest{Type: "books", ID: "clean-code", Title: "Clean Code", Price: "5.99"})
	require.NoError(t, err)
	_, err = svc.Create(ctx, model.CreateProductRequest{Type: "gadgets", ID: "usb-hub", Title: "USB Hub", Price: "12.50"})
	require.NoError(t, err)

	books, err := svc.List(ctx, model.ListProductsQuery{Type: "books"})
	require.NoError(t, err)
	require.Len(t, books, 1)
	require.Equal(t, "Clean Code", books[0].Title)

	all, err := svc.List(ctx, model.ListProductsQuery{Type: "all"})
	require.NoError(t, err)
	require.Len(t, all, 2)

	matches, err := svc.List(ctx, model.ListProductsQuery{Search: "usb"})
	require.NoError(t, err)
	require.Len(t, matches, 1)
	require.Equal(t, "USB Hub", matches[0].Title)
}

func TestUpdateProductPatchesFields(t *testing.T) {
	t.Parallel()

	svc, _, _ := newTestProductService()
	ctx := context.Background()

	created, err := svc.Create(ctx, model.CreateProductRequest{
		Type:  "laptops",
		ID:    "mbp14",
		Title: "MacBook Pro 14",
		Brand: "Apple",
		Price: "1999.00",
	})
	require.NoError(t, err)

	newModel := "A2918"
	updated, err := svc.Update(ctx, created.Key, model.UpdateProductRequest{Model: &newModel})
	require.NoError(t, err)
	require.Equal(t, "A2918", updated.Model)
	require.Equal(t, "Apple", updated.Brand, "unset fields stay unchanged")
	require.Equal(t, "1999.00", updated.Price)
}

func TestDeleteProduct(t *testing.T) {
	t.Parallel()

	svc, _, _ := newTestProductService()
	ctx := context.Background()

	created, err := svc.Create(ctx, model.CreateProductRequest{Type: "books", ID: "clean-code", Title: "Clean Code", Price: "5.99"})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, created.Key))

	_, err = svc.GetByKey(ctx, created.Key)
	require.ErrorIs(t, err, model.ErrProductNotFound)

	require.ErrorIs(t, svc.Delete(ctx, created.Key), model.ErrProductNotFound)
}
