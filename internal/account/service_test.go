package account_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rmarques/smartbooks/internal/account"
	"github.com/rmarques/smartbooks/internal/ledger"
)

type stubRepo struct {
	created  []string
	conflict bool
}

func (r *stubRepo) CreateAccount(_ context.Context, name string) (*ledger.Account, error) {
	if r.conflict {
		return nil, &ledger.ConflictError{Kind: "account", Name: name}
	}

	r.created = append(r.created, name)

	return &ledger.Account{ID: int64(len(r.created)), Name: name, CreatedAt: time.Now()}, nil
}

func (r *stubRepo) GetAccount(_ context.Context, id int64) (*ledger.Account, error) {
	return nil, ledger.ErrNotFound
}

func (r *stubRepo) ListAccounts(_ context.Context) ([]ledger.Account, error) {
	return []ledger.Account{{ID: 1, Name: "Checking"}}, nil
}

func TestService_Create(t *testing.T) {
	repo := &stubRepo{}
	svc := account.NewService(repo)

	acc, err := svc.Create(context.Background(), "  Checking  ")
	require.NoError(t, err)
	assert.Equal(t, "Checking", acc.Name)
	assert.Equal(t, []string{"Checking"}, repo.created)
}

func TestService_Create_BlankName(t *testing.T) {
	repo := &stubRepo{}
	svc := account.NewService(repo)

	_, err := svc.Create(context.Background(), "   ")
	assert.Equal(t, &ledger.MissingFieldError{Field: "name"}, err)
	assert.Empty(t, repo.created)
}

func TestService_Create_DuplicateName(t *testing.T) {
	svc := account.NewService(&stubRepo{conflict: true})

	_, err := svc.Create(context.Background(), "Checking")

	var conflict *ledger.ConflictError
	require.ErrorAs(t, err, &conflict)
	assert.Equal(t, "account", conflict.Kind)
}

func TestService_List(t *testing.T) {
	svc := account.NewService(&stubRepo{})

	accounts, err := svc.List(context.Background())
	require.NoError(t, err)
	assert.Len(t, accounts, 1)
}
