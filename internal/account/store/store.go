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

func (s *Store) CreateAccount(ctx context.Context, name string) (*ledger.Account, error) {
	query := `
		INSERT INTO accounts (name, created_at)
		VALUES ($1, NOW())
		ON CONFLICT (name) DO NOTHING
		RETURNING id, created_at
	`

	account := ledger.Account{Name: name}

	err := s.db.QueryRowContext(ctx, query, name).Scan(&account.ID, &account.CreatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, &ledger.ConflictError{Kind: "account", Name: name}
		}

		return nil, fmt.Errorf("creating account: %w", err)
	}

	return &account, nil
}

func (s *Store) GetAccount(ctx context.Context, id int64) (*ledger.Account, error) {
	var account ledger.Account

	err := s.db.QueryRowContext(ctx,
		`SELECT id, name, created_at FROM accounts WHERE id = $1`, id,
	).Scan(&account.ID, &account.Name, &account.CreatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ledger.ErrNotFound
		}

		return nil, fmt.Errorf("getting account: %w", err)
	}

	return &account, nil
}

func (s *Store) ListAccounts(ctx context.Context) ([]ledger.Account, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id, name, created_at FROM accounts ORDER BY name ASC`)
	if err != nil {
		return nil, fmt.Errorf("listing accounts: %w", err)
	}
	defer rows.Close()

	var accounts []ledger.Account

	for rows.Next() {
		var account ledger.Account

		if err := rows.Scan(&account.ID, &account.Name, &account.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning account: %w", err)
		}

		accounts = append(accounts, account)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating account rows: %w", err)
	}

	return accounts, nil
}
