package account

import (
	"context"
	"strings"

	"github.com/rmarques/smartbooks/internal/ledger"
)

type Repository interface {
	CreateAccount(ctx context.Context, name string) (*ledger.Account, error)
	GetAccount(ctx context.Context, id int64) (*ledger.Account, error)
	ListAccounts(ctx context.Context) ([]ledger.Account, error)
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Create inserts an account with a unique name. Accounts are administrative:
// they are never created implicitly by transaction writes.
func (s *Service) Create(ctx context.Context, name string) (*ledger.Account, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, &ledger.MissingFieldError{Field: "name"}
	}

	return s.repo.CreateAccount(ctx, name)
}

func (s *Service) Get(ctx context.Context, id int64) (*ledger.Account, error) {
	return s.repo.GetAccount(ctx, id)
}

func (s *Service) List(ctx context.Context) ([]ledger.Account, error) {
	return s.repo.ListAccounts(ctx)
}
