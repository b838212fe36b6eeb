package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Amanisai/Emart/internal/domains/product/model"
)

type ProductRepository interface {
	Create(ctx context.Context, product *model.Product) error
	GetByKey(ctx context.Context, key string) (*model.Product, error)
	GetByKeys(ctx context.Context, keys []string) (map[string]model.Product, error)
	List(ctx context.Context, query model.ListProductsQuery) ([]model.Product, error)
	Update(ctx context.Context, product *model.Product) error
	Delete(ctx context.Context, key string) error
}

type productRepository struct {
	db *pgxpool.Pool
}

func NewProductRepository(db *pgxpool.Pool) ProductRepository {
	return &productRepository{db: db}
}

const productColumns = `key, type, title, brand, model, description, image, price_cents, created_at, updated_at`

func (r *productRepository) Create(ctx context.Context, product *model.Product) error {
	query := `
		INSERT INTO products (key, type, title, brand, model, description, image, price_cents)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING created_at, updated_at`

	err := r.db.QueryRow(ctx, query,
		product.Key, product.Type, product.Title, product.Brand, product.Model,
		product.Description, product.Image, product.PriceCents,
	).Scan(&product.CreatedAt, &product.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return model.ErrProductAlreadyExists
		}
		return fmt.Errorf("failed to create product: %w", err)
	}
	return nil
}

func (r *productRepository) GetByKey(ctx context.Context, key string) (*model.Product, error) {
	query := fmt.Sprintf(`SELECT %s FROM products WHERE key = $1`, productColumns)

	var p model.Product
	err := r.db.QueryRow(ctx, query, key).Scan(
		&p.Key, &p.Type, &p.Title, &p.Brand, &p.Model, &p.Description, &p.Image,
		&p.PriceCents, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrProductNotFound
		}
		return nil, fmt.Errorf("failed to get product: %w", err)
	}
	return &p, nil
}

// GetByKeys fetches products for a set of composite keys in one query.
// Keys that do not resolve are simply absent from the returned map.
func (r *productRepository) GetByKeys(ctx context.Context, keys []string) (map[string]model.Product, error) {
	result := make(map[string]model.Product, len(keys))
	if len(keys) == 0 {
		return result, nil
	}

	query := fmt.Sprintf(`SELECT %s FROM products WHERE key = ANY($1)`, productColumns)

	rows, err := r.db.Query(ctx, query, keys)
	if err != nil {
		return nil, fmt.Errorf("failed to get products by keys: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var p model.Product
		if err := rows.Scan(&p.Key, &p.Type, &p.Title, &p.Brand, &p.Model, &p.Description, &p.Image,
			&p.PriceCents, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan product: %w", err)
		}
		result[p.Key] = p
	}
	return result, rows.Err()
}

func (r *productRepository) List(ctx context.Context, query model.ListProductsQuery) ([]model.Product, error) {
	sql := fmt.Sprintf(`SELECT %s FROM products`, productColumns)

	var conditions []string
	var args []interface{}

	if query.Type != "" && query.Type != "all" {
		args = append(args, query.Type)
		conditions = append(conditions, fmt.Sprintf("type = $%d", len(args)))
	}
	if query.Search != "" {
		args = append(args, "%"+query.Search+"%")
		n := len(args)
		conditions = append(conditions, fmt.Sprintf(
			"(title ILIKE $%d OR brand ILIKE $%d OR model ILIKE $%d OR type ILIKE $%d)", n, n, n, n))
	}

	if len(conditions) > 0 {
		sql += " WHERE " + strings.Join(conditions, " AND ")
	}
	sql += " ORDER BY created_at DESC, key"

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	defer rows.Close()

	var products []model.Product
	for rows.Next() {
		var p model.Product
		if err := rows.Scan(&p.Key, &p.Type, &p.Title, &p.Brand, &p.Model, &p.Description, &p.Image,
			&p.PriceCents, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan product: %w", err)
		}
		products = append(products, p)
	}
	return products, rows.Err()
}

func (r *productRepository) Update(ctx context.Context, product *model.Product) error {
	query := `
		UPDATE products
		SET title = $2, brand = $3, model = $4, description = $5, image = $6, price_cents = $7, updated_at = NOW()
		WHERE key = $1
		RETURNING updated_at`

	err := r.db.QueryRow(ctx, query,
		product.Key, product.Title, product.Brand, product.Model,
		product.Description, product.Image, product.PriceCents,
	).Scan(&product.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.ErrProductNotFound
		}
		return fmt.Errorf("failed to update product: %w", err)
	}
	return nil
}

func (r *productRepository) Delete(ctx context.Context, key string) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM products WHERE key = $1`, key)
	if err != nil {
		return fmt.Errorf("failed to delete product: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrProductNotFound
	}
	return nil
}

// isUniqueViolation detects PostgreSQL unique constraint errors (23505)
func isUniqueViolation(err error) bool {
	return strings.Contains(err.Error(), "23505") ||
		strings.Contains(err.Error(), "duplicate key")
}
