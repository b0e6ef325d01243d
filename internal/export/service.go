package export

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/rmarques/smartbooks/internal/ledger"
)

var csvHeader = []string{
	"id", "date", "type", "status", "source_account_id", "destination_account_id",
	"amount", "purpose", "category", "tags",
}

// Service renders bulk exports from the query engine's output. It owns no
// invariants of its own: rows come out exactly as listTransactions returns
// them, in the canonical date-ascending order.
type Service struct {
	transactions *ledger.Service
}

func NewService(txService *ledger.Service) *Service {
	return &Service{transactions: txService}
}

// WriteCSV streams every transaction matching the filter to w as CSV and
// returns the number of data rows written.
func (s *Service) WriteCSV(ctx context.Context, w io.Writer, f ledger.ListFilter) (int, error) {
	txs, err := s.transactions.ListAll(ctx, f)
	if err != nil {
		return 0, fmt.Errorf("listing transactions: %w", err)
	}

	cw := csv.NewWriter(w)

	if err := cw.Write(csvHeader); err != nil {
		return 0, fmt.Errorf("writing header: %w", err)
	}

	for _, tx := range txs {
		if err := cw.Write(csvRow(tx)); err != nil {
			return 0, fmt.Errorf("writing row: %w", err)
		}
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return 0, fmt.Errorf("flushing csv: %w", err)
	}

	return len(txs), nil
}

func csvRow(tx *ledger.Transaction) []string {
	category := ""
	if tx.Category != nil {
		category = tx.Category.Name
	}

	tags := make([]string, 0, len(tx.Tags))
	for _, tag := range tx.Tags {
		tags = append(tags, tag.Name)
	}

	return []string{
		strconv.FormatInt(tx.ID, 10),
		tx.Date.Format("2006-01-02"),
		string(tx.Type),
		string(tx.Status),
		strconv.FormatInt(tx.SourceAccountID, 10),
		strconv.FormatInt(tx.DestinationAccountID, 10),
		strconv.FormatFloat(tx.Amount, 'f', 2, 64),
		tx.Purpose,
		category,
		strings.Join(tags, "|"),
	}
}

// Summarize aggregates every transaction matching the filter.
func (s *Service) Summarize(ctx context.Context, f ledger.ListFilter) (*ledger.Summary, error) {
	return s.transactions.Summarize(ctx, f)
}

// FormatSummary renders a summary as a plain-text block, one line per type
// in alphabetical order followed by the balance figures.
func FormatSummary(sum ledger.Summary) string {
	types := make([]ledger.Type, 0, len(sum.ByType))
	for typ := range sum.ByType {
		types = append(types, typ)
	}

	sort.Slice(types, func(i, j int) bool { return types[i] < types[j] })

	var sb strings.Builder

	for _, typ := range types {
		agg := sum.ByType[typ]
		sb.WriteString(fmt.Sprintf("%s: %d transactions, total %.2f\n", typ, agg.Count, agg.Total))
	}

	sb.WriteString(fmt.Sprintf("income: %.2f | expenses: %.2f | net: %.2f\n",
		sum.TotalIncome, sum.TotalExpense, sum.NetBalance))

	return sb.String()
}
