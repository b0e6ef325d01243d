package store

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/rmarques/smartbooks/internal/ledger"
)

func TestDedupNames(t *testing.T) {
	t.Run("ExactMatchOnly", func(t *testing.T) {
		// Case differences are distinct tags.
		assert.Equal(t, []string{"food", "Food"}, dedupNames([]string{"food", "food", "Food"}))
	})

	t.Run("KeepsFirstOccurrenceOrder", func(t *testing.T) {
		assert.Equal(t, []string{"b", "a"}, dedupNames([]string{"b", "a", "b", "a"}))
	})

	t.Run("Empty", func(t *testing.T) {
		assert.Empty(t, dedupNames(nil))
	})
}

func TestOrderClause(t *testing.T) {
	tests := []struct {
		name string
		sort ledger.Sort
		want string
	}{
		{
			name: "ZeroValueIsCanonicalDefault",
			sort: ledger.Sort{},
			want: " ORDER BY t.date ASC, t.id ASC",
		},
		{
			name: "DirectionAloneAppliesToDate",
			sort: ledger.Sort{Dir: ledger.SortDesc},
			want: " ORDER BY t.date DESC, t.id ASC",
		},
		{
			name: "AmountDescendingKeepsIDTiebreak",
			sort: ledger.Sort{Key: ledger.SortAmount, Dir: ledger.SortDesc},
			want: " ORDER BY t.amount DESC, t.id ASC",
		},
		{
			name: "StatusAscending",
			sort: ledger.Sort{Key: ledger.SortStatus, Dir: ledger.SortAsc},
			want: " ORDER BY t.status ASC, t.id ASC",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, orderClause(tt.sort))
		})
	}
}

func TestFilterClause(t *testing.T) {
	t.Run("EmptyFilterProducesNoConditions", func(t *testing.T) {
		clause, args := filterClause(ledger.ListFilter{})
		assert.Empty(t, clause)
		assert.Empty(t, args)
	})

	t.Run("SingleField", func(t *testing.T) {
		clause, args := filterClause(ledger.ListFilter{Type: ptrTo(ledger.TypeIncome)})
		assert.Equal(t, " AND t.type = $1", clause)
		assert.Equal(t, []any{ledger.TypeIncome}, args)
	})

	t.Run("DateRangeIsInclusiveBounds", func(t *testing.T) {
		start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
		end := time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC)

		clause, args := filterClause(ledger.ListFilter{StartDate: &start, EndDate: &end})
		assert.Equal(t, " AND t.date >= $1 AND t.date <= $2", clause)
		assert.Equal(t, []any{start, end}, args)
	})

	t.Run("AllFieldsNumberArgsInOrder", func(t *testing.T) {
		start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
		end := time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC)

		f := ledger.ListFilter{
			Type:                 ptrTo(ledger.TypeExpense),
			Status:               ptrTo(ledger.StatusCompleted),
			SourceAccountID:      ptrTo(int64(1)),
			DestinationAccountID: ptrTo(int64(2)),
			StartDate:            &start,
			EndDate:              &end,
		}

		clause, args := filterClause(f)
		assert.Equal(t,
			" AND t.type = $1 AND t.status = $2 AND t.source_account_id = $3"+
				" AND t.destination_account_id = $4 AND t.date >= $5 AND t.date <= $6",
			clause)
		assert.Equal(t, []any{
			ledger.TypeExpense, ledger.StatusCompleted, int64(1), int64(2), start, end,
		}, args)
	})
}

// ptrTo returns a pointer to a copy of v.
func ptrTo[T any](v T) *T {
	return &v
}
