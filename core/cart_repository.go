package core

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5/pgxpool"
)

// CartItem is the display-ready join of a cart line with its product.
type CartItem struct {
	ID       int64   `json:"id"`
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
	ImageURL string  `json:"imageUrl"`
	Quantity int32   `json:"quantity"`
}

// ErrInvalidProduct is returned when a cart write references a product that
// does not exist; detection relies on the store's foreign-key constraint
// rather than a pre-check.
var ErrInvalidProduct = errors.New("product does not exist")

// CartRepository defines persistence operations for cart lines.
type CartRepository interface {
	// AddItem inserts a cart line or increments an existing one in a single
	// atomic statement. It reports created=true when a new line was inserted.
	AddItem(ctx context.Context, userID, productID int64, quantity int32) (created bool, err error)
	ListByUser(ctx context.Context, userID int64) ([]CartItem, error)
}

// PgCartRepository implements CartRepository using pgxpool.
type PgCartRepository struct {
	db *pgxpool.Pool
}

func NewPgCartRepository(db *pgxpool.Pool) *PgCartRepository {
	return &PgCartRepository{db: db}
}

// AddItem relies on the UNIQUE (user_id, product_id) constraint so that two
// concurrent adds for the same pair converge on one row with the summed
// quantity instead of racing a read-then-write. xmax=0 distinguishes a fresh
// insert from a conflict update.
func (r *PgCartRepository) AddItem(ctx context.Context, userID, productID int64, quantity int32) (bool, error) {
	const q = `
INSERT INTO cart_items (user_id, product_id, quantity)
VALUES ($1, $2, $3)
ON CONFLICT (user_id, product_id)
DO UPDATE SET quantity = cart_items.quantity + EXCLUDED.quantity
RETURNING (xmax = 0) AS inserted`
	var inserted bool
	if err := r.db.QueryRow(ctx, q, userID, productID, quantity).Scan(&inserted); err != nil {
		if isForeignKeyViolation(err) {
			return false, ErrInvalidProduct
		}
		return false, err
	}
	return inserted, nil
}

func (r *PgCartRepository) ListByUser(ctx context.Context, userID int64) ([]CartItem, error) {
	const q = `
SELECT p.id, p.name, p.price, p.image_url, c.quantity
FROM cart_items c
JOIN products p ON c.product_id = p.id
WHERE c.user_id = $1
ORDER BY c.id`
	rows, err := r.db.Query(ctx, q, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	items := make([]CartItem, 0)
	for rows.Next() {
		var it CartItem
		if err := rows.Scan(&it.ID, &it.Name, &it.Price, &it.ImageURL, &it.Quantity); err != nil {
			return nil, err
		}
		items = append(items, it)
	}
	return items, rows.Err()
}
