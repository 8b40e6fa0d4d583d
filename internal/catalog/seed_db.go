package catalog

import (
	"context"
	"database/sql"
	_ "embed"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	_ "github.com/jackc/pgx/v5/stdlib"
)

const (
	pingTimeout  = 1 * time.Second
	queryTimeout = 3 * time.Second

	pgUndefinedTable = "42P01"
)

var ErrSeedSchemaMissing = errors.New("seed schema missing")

// SeedSchema is the DDL PostgresSeed expects.
//
//go:embed seed_schema.sql
var SeedSchema string

// PostgresSeed reads the initial catalog from Postgres. It is read once at
// startup; the running service never writes back.
type PostgresSeed struct {
	db *sql.DB
}

func NewPostgresSeed(db *sql.DB) *PostgresSeed {
	return &PostgresSeed{db: db}
}

// OpenPostgresSeed opens dsn with the pgx stdlib driver and checks it is
// reachable.
func OpenPostgresSeed(ctx context.Context, dsn string) (*PostgresSeed, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, err
	}

	s := NewPostgresSeed(db)
	if err := s.Ping(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}
	return s, nil
}

func (s *PostgresSeed) Close() error { return s.db.Close() }

func (s *PostgresSeed) Ping(ctx context.Context) error {
	return withTimeout(ctx, pingTimeout, func(ctx context.Context) error {
		return s.db.PingContext(ctx)
	})
}

func (s *PostgresSeed) Categories(ctx context.Context) ([]Category, error) {
	var out []Category

	err := withTimeout(ctx, queryTimeout, func(ctx context.Context) error {
		rows, err := s.db.QueryContext(ctx, `
			SELECT id, name
			FROM categories
			ORDER BY id ASC
		`)
		if err != nil {
			return err
		}
		defer rows.Close()

		out = make([]Category, 0, 8)
		for rows.Next() {
			var c Category
			if err := rows.Scan(&c.ID, &c.Name); err != nil {
				return err
			}
			out = append(out, c)
		}
		return rows.Err()
	})

	if err != nil {
		return nil, classify(err)
	}
	return out, nil
}

func (s *PostgresSeed) Products(ctx context.Context) ([]Product, error) {
	var out []Product

	err := withTimeout(ctx, queryTimeout, func(ctx context.Context) error {
		var err error
		if out, err = s.queryProducts(ctx); err != nil {
			return err
		}

		index := make(map[int64]int, len(out))
		for i, p := range out {
			index[p.ID] = i
		}

		if err := s.attachSpecs(ctx, out, index); err != nil {
			return err
		}
		return s.attachReviews(ctx, out, index)
	})

	if err != nil {
		return nil, classify(err)
	}
	return out, nil
}

func (s *PostgresSeed) queryProducts(ctx context.Context) ([]Product, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT p.id, p.name, p.price, p.description, p.category_id,
		       COALESCE(c.name, $1), p.stock, p.image_url, p.rating, p.review_count,
		       p.sku, p.brand, p.warranty, p.shipping_info, p.restock_date::text, p.last_updated::text
		FROM products p
		LEFT JOIN categories c ON c.id = p.category_id
		ORDER BY p.id ASC
	`, UncategorizedName)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Product, 0, 16)
	for rows.Next() {
		var p Product
		if err := rows.Scan(
			&p.ID, &p.Name, &p.Price, &p.Description, &p.CategoryID,
			&p.Category, &p.Stock, &p.ImageURL, &p.Rating, &p.ReviewCount,
			&p.SKU, &p.Brand, &p.Warranty, &p.ShippingInfo, &p.RestockDate, &p.LastUpdated,
		); err != nil {
			return nil, err
		}
		p.CategoryName = p.Category
		p.Specifications = []Spec{}
		p.Reviews = []Review{}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (s *PostgresSeed) attachSpecs(ctx context.Context, products []Product, index map[int64]int) error {
	rows, err := s.db.QueryContext(ctx, `
		SELECT product_id, name, value
		FROM product_specifications
		ORDER BY product_id ASC, position ASC
	`)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var (
			pid  int64
			spec Spec
		)
		if err := rows.Scan(&pid, &spec.Name, &spec.Value); err != nil {
			return err
		}
		if i, ok := index[pid]; ok {
			products[i].Specifications = append(products[i].Specifications, spec)
		}
	}
	return rows.Err()
}

func (s *PostgresSeed) attachReviews(ctx context.Context, products []Product, index map[int64]int) error {
	rows, err := s.db.QueryContext(ctx, `
		SELECT product_id, author_name, date::text, rating, content, verified_purchase
		FROM product_reviews
		ORDER BY product_id ASC, position ASC
	`)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var (
			pid int64
			r   Review
		)
		if err := rows.Scan(&pid, &r.AuthorName, &r.Date, &r.Rating, &r.Content, &r.VerifiedPurchase); err != nil {
			return err
		}
		if i, ok := index[pid]; ok {
			products[i].Reviews = append(products[i].Reviews, r)
		}
	}
	return rows.Err()
}

func classify(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgUndefinedTable {
		return fmt.Errorf("%w: %s", ErrSeedSchemaMissing, pgErr.Message)
	}
	return err
}

func withTimeout(parent context.Context, d time.Duration, fn func(ctx context.Context) error) error {
	ctx, cancel := context.WithTimeout(parent, d)
	defer cancel()
	return fn(ctx)
}
