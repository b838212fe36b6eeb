package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Amanisai/Emart/internal/domains/order/model"
)

// OrderWithUser pairs an order with its owner's email for admin views
type OrderWithUser struct {
	Order     model.Order
	UserEmail string
}

type OrderRepository interface {
	Create(ctx context.Context, order *model.Order) error
	GetByID(ctx context.Context, id int64) (*model.Order, error)
	GetByIDAndUserID(ctx context.Context, id, userID int64) (*model.Order, error)
	ListByUserID(ctx context.Context, userID int64) ([]model.Order, error)
	ListAll(ctx context.Context) ([]OrderWithUser, error)
	AttachPaymentRef(ctx context.Context, orderID int64, provider, ref string) error
	MarkPaid(ctx context.Context, orderID int64, provider, ref string) (bool, error)
}

type orderRepository struct {
	db *pgxpool.Pool
}

func NewOrderRepository(db *pgxpool.Pool) OrderRepository {
	return &orderRepository{db: db}
}

const orderColumns = `id, user_id, total_cents, status, payment_provider, payment_status, payment_ref, address_json, items_json, created_at, updated_at`

// Create inserts the order and its item snapshot in a single statement
func (r *orderRepository) Create(ctx context.Context, order *model.Order) error {
	itemsJSON, err := json.Marshal(order.Items)
	if err != nil {
		return fmt.Errorf("failed to marshal order items: %w", err)
	}

	addressJSON := order.Address
	if addressJSON == nil {
		addressJSON = json.RawMessage("null")
	}

	query := `
		INSERT INTO orders (user_id, total_cents, status, payment_provider, payment_status, payment_ref, address_json, items_json)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, created_at, updated_at`

	err = r.db.QueryRow(ctx, query,
		order.UserID, order.TotalCents, order.Status,
		order.PaymentProvider, order.PaymentStatus, order.PaymentRef,
		addressJSON, itemsJSON,
	).Scan(&order.ID, &order.CreatedAt, &order.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create order: %w", err)
	}
	return nil
}

func (r *orderRepository) GetByID(ctx context.Context, id int64) (*model.Order, error) {
	query := fmt.Sprintf(`SELECT %s FROM orders WHERE id = $1`, orderColumns)
	return r.scanOne(r.db.QueryRow(ctx, query, id))
}

func (r *orderRepository) GetByIDAndUserID(ctx context.Context, id, userID int64) (*model.Order, error) {
	query := fmt.Sprintf(`SELECT %s FROM orders WHERE id = $1 AND user_id = $2`, orderColumns)
	return r.scanOne(r.db.QueryRow(ctx, query, id, userID))
}

func (r *orderRepository) ListByUserID(ctx context.Context, userID int64) ([]model.Order, error) {
	query := fmt.Sprintf(`SELECT %s FROM orders WHERE user_id = $1 ORDER BY id DESC`, orderColumns)

	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}
	defer rows.Close()

	var orders []model.Order
	for rows.Next() {
		order, err := r.scanRow(rows)
		if err != nil {
			return nil, err
		}
		orders = append(orders, *order)
	}
	return orders, rows.Err()
}

func (r *orderRepository) ListAll(ctx context.Context) ([]OrderWithUser, error) {
	query := `
		SELECT o.id, o.user_id, o.total_cents, o.status,
		       o.payment_provider, o.payment_status, o.payment_ref,
		       o.address_json, o.items_json, o.created_at, o.updated_at,
		       u.email
		FROM orders o
		JOIN users u ON u.id = o.user_id
		ORDER BY o.id DESC`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list all orders: %w", err)
	}
	defer rows.Close()

	var results []OrderWithUser
	for rows.Next() {
		var o model.Order
		var itemsJSON []byte
		var email string
		err := rows.Scan(
			&o.ID, &o.UserID, &o.TotalCents, &o.Status,
			&o.PaymentProvider, &o.PaymentStatus, &o.PaymentRef,
			&o.Address, &itemsJSON, &o.CreatedAt, &o.UpdatedAt,
			&email,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan order: %w", err)
		}
		if err := json.Unmarshal(itemsJSON, &o.Items); err != nil {
			return nil, fmt.Errorf("failed to unmarshal order items: %w", err)
		}
		results = append(results, OrderWithUser{Order: o, UserEmail: email})
	}
	return results, rows.Err()
}

// AttachPaymentRef records the provider session reference before the
// client is redirected to the hosted checkout page
func (r *orderRepository) AttachPaymentRef(ctx context.Context, orderID int64, provider, ref string) error {
	query := `
		UPDATE orders
		SET payment_provider = $2,
		    payment_ref = $3,
		    payment_status = 'unpaid',
		    status = CASE WHEN status = 'paid' THEN status ELSE 'pending_payment' END,
		    updated_at = NOW()
		WHERE id = $1`

	tag, err := r.db.Exec(ctx, query, orderID, provider, ref)
	if err != nil {
		return fmt.Errorf("failed to attach payment ref: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrOrderNotFound
	}
	return nil
}

// MarkPaid transitions an order to paid as a single conditional write.
// It returns true only for the write that actually performed the
// transition, so concurrent confirmations for the same order converge
// on one paid state and trigger side effects exactly once.
func (r *orderRepository) MarkPaid(ctx context.Context, orderID int64, provider, ref string) (bool, error) {
	query := `
		UPDATE orders
		SET status = 'paid',
		    payment_status = 'paid',
		    payment_provider = $2,
		    payment_ref = COALESCE(payment_ref, $3),
		    updated_at = NOW()
		WHERE id = $1 AND status <> 'paid'`

	tag, err := r.db.Exec(ctx, query, orderID, provider, ref)
	if err != nil {
		return false, fmt.Errorf("failed to mark order paid: %w", err)
	}
	if tag.RowsAffected() > 0 {
		return true, nil
	}

	// No row updated: either already paid or missing
	var exists bool
	if err := r.db.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM orders WHERE id = $1)`, orderID).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check order existence: %w", err)
	}
	if !exists {
		return false, model.ErrOrderNotFound
	}
	return false, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func (r *orderRepository) scanOne(row rowScanner) (*model.Order, error) {
	order, err := r.scanRow(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrOrderNotFound
		}
		return nil, err
	}
	return order, nil
}

func (r *orderRepository) scanRow(row rowScanner) (*model.Order, error) {
	var o model.Order
	var itemsJSON []byte
	err := row.Scan(
		&o.ID, &o.UserID, &o.TotalCents, &o.Status,
		&o.PaymentProvider, &o.PaymentStatus, &o.PaymentRef,
		&o.Address, &itemsJSON, &o.CreatedAt, &o.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to scan order: %w", err)
	}
	if err := json.Unmarshal(itemsJSON, &o.Items); err != nil {
		return nil, fmt.Errorf("failed to unmarshal order items: %w", err)
	}
	return &o, nil
}
