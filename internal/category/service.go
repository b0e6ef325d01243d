package category

import (
	"context"
	"strings"

	"github.com/rmarques/smartbooks/internal/ledger"
)

type Repository interface {
	CreateCategory(ctx context.Context, name string) (*ledger.Category, error)
	GetCategory(ctx context.Context, id int64) (*ledger.Category, error)
	ListCategories(ctx context.Context) ([]ledger.Category, error)
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) Create(ctx context.Context, name string) (*ledger.Category, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, &ledger.MissingFieldError{Field: "name"}
	}

	return s.repo.CreateCategory(ctx, name)
}

func (s *Service) Get(ctx context.Context, id int64) (*ledger.Category, error) {
	return s.repo.GetCategory(ctx, id)
}

func (s *Service) List(ctx context.Context) ([]ledger.Category, error) {
	return s.repo.ListCategories(ctx)
}
