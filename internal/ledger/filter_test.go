package ledger_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rmarques/smartbooks/internal/ledger"
)

func TestListFilter_Empty(t *testing.T) {
	assert.True(t, ledger.ListFilter{}.Empty())
	assert.False(t, ledger.ListFilter{Type: ptrTo(ledger.TypeIncome)}.Empty())
}

func TestParseSort(t *testing.T) {
	t.Run("Defaults", func(t *testing.T) {
		s, err := ledger.ParseSort("", "")
		require.NoError(t, err)
		assert.Equal(t, ledger.Sort{Key: "", Dir: ledger.SortAsc}, s)
	})

	t.Run("ExplicitKeyAndDirection", func(t *testing.T) {
		s, err := ledger.ParseSort("amount", "desc")
		require.NoError(t, err)
		assert.Equal(t, ledger.Sort{Key: ledger.SortAmount, Dir: ledger.SortDesc}, s)
	})

	t.Run("DirectionWithoutKey", func(t *testing.T) {
		// Accepted: the store applies it to the default date column.
		s, err := ledger.ParseSort("", "desc")
		require.NoError(t, err)
		assert.Equal(t, ledger.Sort{Key: "", Dir: ledger.SortDesc}, s)
	})

	t.Run("UnknownKey", func(t *testing.T) {
		_, err := ledger.ParseSort("purpose", "")
		assert.Equal(t, &ledger.InvalidFormatError{Field: "sort"}, err)
	})

	t.Run("UnknownDirection", func(t *testing.T) {
		_, err := ledger.ParseSort("date", "sideways")
		assert.Equal(t, &ledger.InvalidFormatError{Field: "direction"}, err)
	})
}

func TestPage(t *testing.T) {
	tests := []struct {
		name       string
		page       ledger.Page
		wantLimit  int
		wantOffset int
	}{
		{name: "ZeroValueUsesDefaults", page: ledger.Page{}, wantLimit: 50, wantOffset: 0},
		{name: "FirstPage", page: ledger.Page{Number: 1, Size: 20}, wantLimit: 20, wantOffset: 0},
		{name: "ThirdPage", page: ledger.Page{Number: 3, Size: 20}, wantLimit: 20, wantOffset: 40},
		{name: "NegativeNumberClamped", page: ledger.Page{Number: -2, Size: 10}, wantLimit: 10, wantOffset: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.wantLimit, tt.page.Limit())
			assert.Equal(t, tt.wantOffset, tt.page.Offset())
		})
	}
}
