package core

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
)

type Product struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name"`
	Price       float64 `json:"price"`
	Description string  `json:"description"`
	ImageURL    string  `json:"imageUrl"`
}

// ProductRepository defines read access to the catalog plus the insert used by seeding.
type ProductRepository interface {
	List(ctx context.Context) ([]Product, error)
	Search(ctx context.Context, name string) ([]Product, error)
	Count(ctx context.Context) (int, error)
	Insert(ctx context.Context, p Product) (int64, error)
}

// PgProductRepository implements ProductRepository using pgxpool.
type PgProductRepository struct {
	db *pgxpool.Pool
}

func NewPgProductRepository(db *pgxpool.Pool) *PgProductRepository {
	return &PgProductRepository{db: db}
}

func (r *PgProductRepository) List(ctx context.Context) ([]Product, error) {
	const q = `SELECT id, name, price, description, image_url FROM products ORDER BY id`
	rows, err := r.db.Query(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	items := make([]Product, 0)
	for rows.Next() {
		var p Product
		if err := rows.Scan(&p.ID, &p.Name, &p.Price, &p.Description, &p.ImageURL); err != nil {
			return nil, err
		}
		items = append(items, p)
	}
	return items, rows.Err()
}

// Search matches products whose name contains the given substring,
// case-insensitively. The pattern is always bound as a parameter, never
// concatenated into SQL. An empty substring matches the full catalog.
func (r *PgProductRepository) Search(ctx context.Context, name string) ([]Product, error) {
	const q = `SELECT id, name, price, description, image_url FROM products WHERE name ILIKE '%' || $1 || '%' ORDER BY id`
	rows, err := r.db.Query(ctx, q, name)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	items := make([]Product, 0)
	for rows.Next() {
		var p Product
		if err := rows.Scan(&p.ID, &p.Name, &p.Price, &p.Description, &p.ImageURL); err != nil {
			return nil, err
		}
		items = append(items, p)
	}
	return items, rows.Err()
}

func (r *PgProductRepository) Count(ctx context.Context) (int, error) {
	const q = `SELECT COUNT(*) FROM products`
	var n int
	if err := r.db.QueryRow(ctx, q).Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}

func (r *PgProductRepository) Insert(ctx context.Context, p Product) (int64, error) {
	const q = `INSERT INTO products (name, price, description, image_url) VALUES ($1,$2,$3,$4) RETURNING id`
	var id int64
	if err := r.db.QueryRow(ctx, q, p.Name, p.Price, p.Description, p.ImageURL).Scan(&id); err != nil {
		return 0, err
	}
	return id, nil
}
