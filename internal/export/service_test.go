package export_test

import (
	"bytes"
	"context"
	"encoding/csv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/rmarques/smartbooks/internal/export"
	"github.com/rmarques/smartbooks/internal/ledger"
)

func TestService_WriteCSV(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := ledger.NewMockRepository(ctrl)
	svc := export.NewService(ledger.NewService(repo))

	txs := []*ledger.Transaction{
		{
			ID:                   1,
			Date:                 time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC),
			Type:                 ledger.TypeIncome,
			Status:               ledger.StatusCompleted,
			SourceAccountID:      1,
			DestinationAccountID: 2,
			Amount:               500,
			Purpose:              "Paycheck",
			Category:             &ledger.Category{ID: 10, Name: "Salary"},
			Tags:                 []ledger.Tag{{ID: 1, Name: "salary"}, {ID: 2, Name: "monthly"}},
		},
		{
			ID:                   2,
			Date:                 time.Date(2024, 1, 6, 0, 0, 0, 0, time.UTC),
			Type:                 ledger.TypeExpense,
			Status:               ledger.StatusPending,
			SourceAccountID:      2,
			DestinationAccountID: 1,
			Amount:               1234.5,
			Purpose:              "Rent",
		},
	}

	repo.EXPECT().ListAllTransactions(gomock.Any(), ledger.ListFilter{}).Return(txs, nil)

	var buf bytes.Buffer

	rows, err := svc.WriteCSV(context.Background(), &buf, ledger.ListFilter{})
	require.NoError(t, err)
	assert.Equal(t, 2, rows)

	parsed, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, parsed, 3)

	assert.Equal(t, []string{
		"id", "date", "type", "status", "source_account_id", "destination_account_id",
		"amount", "purpose", "category", "tags",
	}, parsed[0])
	assert.Equal(t, []string{
		"1", "2024-01-05", "income", "completed", "1", "2", "500.00", "Paycheck", "Salary", "salary|monthly",
	}, parsed[1])
	assert.Equal(t, []string{
		"2", "2024-01-06", "expense", "pending", "2", "1", "1234.50", "Rent", "", "",
	}, parsed[2])
}

func TestService_WriteCSV_NoRows(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := ledger.NewMockRepository(ctrl)
	svc := export.NewService(ledger.NewService(repo))

	repo.EXPECT().ListAllTransactions(gomock.Any(), ledger.ListFilter{}).Return(nil, nil)

	var buf bytes.Buffer

	rows, err := svc.WriteCSV(context.Background(), &buf, ledger.ListFilter{})
	require.NoError(t, err)
	assert.Equal(t, 0, rows)

	parsed, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	assert.Len(t, parsed, 1)
}

func TestFormatSummary(t *testing.T) {
	sum := ledger.Summary{
		ByType: map[ledger.Type]ledger.TypeSummary{
			ledger.TypeIncome:  {Count: 2, Total: 600},
			ledger.TypeExpense: {Count: 1, Total: 200},
		},
		TotalIncome:  600,
		TotalExpense: 200,
		NetBalance:   400,
	}

	got := export.FormatSummary(sum)

	want := "expense: 1 transactions, total 200.00\n" +
		"income: 2 transactions, total 600.00\n" +
		"income: 600.00 | expenses: 200.00 | net: 400.00\n"
	assert.Equal(t, want, got)
}
