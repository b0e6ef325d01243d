package ledger_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/rmarques/smartbooks/internal/ledger"
)

func TestSummarize(t *testing.T) {
	txs := []*ledger.Transaction{
		{Type: ledger.TypeIncome, Amount: 500},
		{Type: ledger.TypeIncome, Amount: 100},
		{Type: ledger.TypeExpense, Amount: 200},
		{Type: ledger.TypeTransfer, Amount: 50},
		{Type: ledger.Type("refund"), Amount: 25},
	}

	sum := ledger.Summarize(txs)

	assert.Equal(t, ledger.TypeSummary{Count: 2, Total: 600}, sum.ByType[ledger.TypeIncome])
	assert.Equal(t, ledger.TypeSummary{Count: 1, Total: 200}, sum.ByType[ledger.TypeExpense])
	assert.Equal(t, ledger.TypeSummary{Count: 1, Total: 50}, sum.ByType[ledger.TypeTransfer])

	// A type outside the known set still gets a per-type bucket but never
	// feeds the derived totals.
	assert.Equal(t, ledger.TypeSummary{Count: 1, Total: 25}, sum.ByType[ledger.Type("refund")])

	assert.Equal(t, 600.0, sum.TotalIncome)
	assert.Equal(t, 200.0, sum.TotalExpense)
	assert.Equal(t, 400.0, sum.NetBalance)
}

func TestSummarize_Empty(t *testing.T) {
	sum := ledger.Summarize(nil)

	assert.Empty(t, sum.ByType)
	assert.Zero(t, sum.TotalIncome)
	assert.Zero(t, sum.TotalExpense)
	assert.Zero(t, sum.NetBalance)
}

func TestSummarize_Deterministic(t *testing.T) {
	txs := []*ledger.Transaction{
		{Type: ledger.TypeIncome, Amount: 0.1},
		{Type: ledger.TypeIncome, Amount: 0.2},
		{Type: ledger.TypeIncome, Amount: 0.3},
	}

	first := ledger.Summarize(txs)
	second := ledger.Summarize(txs)

	assert.Equal(t, first, second)
}
