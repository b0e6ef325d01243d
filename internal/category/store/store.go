package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/rmarques/smartbooks/internal/ledger"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

func (s *Store) CreateCategory(ctx context.Context, name string) (*ledger.Category, error) {
	query := `
		INSERT INTO categories (name, created_at)
		VALUES ($1, NOW())
		ON CONFLICT (name) DO NOTHING
		RETURNING id, created_at
	`

	category := ledger.Category{Name: name}

	err := s.db.QueryRowContext(ctx, query, name).Scan(&category.ID, &category.CreatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, &ledger.ConflictError{Kind: "category", Name: name}
		}

		return nil, fmt.Errorf("creating category: %w", err)
	}

	return &category, nil
}

func (s *Store) GetCategory(ctx context.Context, id int64) (*ledger.Category, error) {
	var category ledger.Category

	err := s.db.QueryRowContext(ctx,
		`SELECT id, name, created_at FROM categories WHERE id = $1`, id,
	).Scan(&category.ID, &category.Name, &category.CreatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ledger.ErrNotFound
		}

		return nil, fmt.Errorf("getting category: %w", err)
	}

	return &category, nil
}

func (s *Store) ListCategories(ctx context.Context) ([]ledger.Category, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id, name, created_at FROM categories ORDER BY name ASC`)
	if err != nil {
		return nil, fmt.Errorf("listing categories: %w", err)
	}
	defer rows.Close()

	var categories []ledger.Category

	for rows.Next() {
		var category ledger.Category

		if err := rows.Scan(&category.ID, &category.Name, &category.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning category: %w", err)
		}

		categories = append(categories, category)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating category rows: %w", err)
	}

	return categories, nil
}
