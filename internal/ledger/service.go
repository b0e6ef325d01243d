package ledger

import (
	"context"
	"fmt"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=ledger
type Repository interface {
	// CreateTransaction persists tx and resolves tagNames within one atomic
	// write, populating tx.ID, tx.Tags and timestamps.
	CreateTransaction(ctx context.Context, tx *Transaction, tagNames []string) error
	GetTransaction(ctx context.Context, id int64) (*Transaction, error)
	// UpdateTransaction writes every column of tx. A nil tagNames keeps the
	// existing tag set; an empty non-nil slice clears it.
	UpdateTransaction(ctx context.Context, tx *Transaction, tagNames []string) error
	DeleteTransaction(ctx context.Context, id int64) error

	// ListTransactions returns one page plus the total row count of the
	// filtered, pre-pagination set.
	ListTransactions(ctx context.Context, q Query) ([]*Transaction, int64, error)
	// ListAllTransactions returns every matching row in the canonical order
	// (date ascending, id ascending), for aggregation and export.
	ListAllTransactions(ctx context.Context, f ListFilter) ([]*Transaction, error)
	ListTags(ctx context.Context) ([]Tag, error)

	BeginBatch(ctx context.Context) (BatchTx, error)

	AccountExists(ctx context.Context, id int64) (bool, error)
	CategoryExists(ctx context.Context, id int64) (bool, error)
}

// BatchTx is an all-or-nothing insert of several transactions within one
// store transaction.
type BatchTx interface {
	CreateTransaction(ctx context.Context, tx *Transaction, tagNames []string) error
	Commit() error
	Rollback() error
}

type Service struct {
	repo      Repository
	validator *Validator
}

func NewService(repo Repository) *Service {
	return &Service{
		repo:      repo,
		validator: NewValidator(repo),
	}
}

func (s *Service) Create(ctx context.Context, raw RawRecord) (*Transaction, error) {
	rec, err := s.validator.Validate(ctx, raw, ModeFull)
	if err != nil {
		return nil, err
	}

	tx, tagNames := rec.transaction()
	if err := s.repo.CreateTransaction(ctx, tx, tagNames); err != nil {
		return nil, err
	}

	return tx, nil
}

// Update applies a partial record to an existing transaction. Only supplied
// fields change; everything else keeps its pre-update value.
func (s *Service) Update(ctx context.Context, id int64, raw RawRecord) (*Transaction, error) {
	rec, err := s.validator.Validate(ctx, raw, ModePartial)
	if err != nil {
		return nil, err
	}

	tx, err := s.repo.GetTransaction(ctx, id)
	if err != nil {
		return nil, err
	}

	rec.applyTo(tx)

	if err := s.repo.UpdateTransaction(ctx, tx, rec.Tags); err != nil {
		return nil, err
	}

	return tx, nil
}

func (s *Service) Get(ctx context.Context, id int64) (*Transaction, error) {
	return s.repo.GetTransaction(ctx, id)
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	return s.repo.DeleteTransaction(ctx, id)
}

func (s *Service) List(ctx context.Context, q Query) (*ListResult, error) {
	items, total, err := s.repo.ListTransactions(ctx, q)
	if err != nil {
		return nil, err
	}

	if items == nil {
		items = []*Transaction{}
	}

	perPage := q.Page.Limit()

	page := q.Page.Number
	if page < DefaultPage {
		page = DefaultPage
	}

	return &ListResult{
		Items:   items,
		Page:    page,
		PerPage: perPage,
		Total:   total,
		Pages:   int((total + int64(perPage) - 1) / int64(perPage)),
	}, nil
}

// ListAll returns every transaction matching the filter in the canonical
// order, without pagination.
func (s *Service) ListAll(ctx context.Context, f ListFilter) ([]*Transaction, error) {
	return s.repo.ListAllTransactions(ctx, f)
}

func (s *Service) Tags(ctx context.Context) ([]Tag, error) {
	return s.repo.ListTags(ctx)
}

// CreateBatch validates every record up front and then inserts all of them
// within one store transaction. If any record fails validation nothing is
// persisted and the error carries the 1-based position of the bad record.
func (s *Service) CreateBatch(ctx context.Context, raws []RawRecord) (int, error) {
	if len(raws) == 0 {
		return 0, nil
	}

	recs, err := s.validator.ValidateBatch(ctx, raws)
	if err != nil {
		return 0, err
	}

	btx, err := s.repo.BeginBatch(ctx)
	if err != nil {
		return 0, fmt.Errorf("begin batch: %w", err)
	}
	defer btx.Rollback()

	for _, rec := range recs {
		tx, tagNames := rec.transaction()
		if err := btx.CreateTransaction(ctx, tx, tagNames); err != nil {
			return 0, fmt.Errorf("create transaction: %w", err)
		}
	}

	if err := btx.Commit(); err != nil {
		return 0, fmt.Errorf("commit batch: %w", err)
	}

	return len(recs), nil
}

// Summarize aggregates every transaction matching the filter.
func (s *Service) Summarize(ctx context.Context, f ListFilter) (*Summary, error) {
	txs, err := s.repo.ListAllTransactions(ctx, f)
	if err != nil {
		return nil, err
	}

	sum := Summarize(txs)

	return &sum, nil
}
