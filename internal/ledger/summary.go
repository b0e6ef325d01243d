package ledger

// TypeSummary is the aggregate for one transaction type.
type TypeSummary struct {
	Count int
	Total float64
}

// Summary holds per-type aggregates plus the derived balance figures. Only
// rows whose type is exactly "income" or "expense" feed the derived totals;
// other types still appear in ByType.
type Summary struct {
	ByType       map[Type]TypeSummary
	TotalIncome  float64
	TotalExpense float64
	NetBalance   float64
}

// Summarize folds transactions in slice order. Callers pass rows in the
// canonical query order (date ascending, id ascending), which makes the
// float accumulation reproducible across runs on identical input.
func Summarize(txs []*Transaction) Summary {
	s := Summary{ByType: make(map[Type]TypeSummary)}

	for _, tx := range txs {
		agg := s.ByType[tx.Type]
		agg.Count++
		agg.Total += tx.Amount
		s.ByType[tx.Type] = agg

		switch tx.Type {
		case TypeIncome:
			s.TotalIncome += tx.Amount
		case TypeExpense:
			s.TotalExpense += tx.Amount
		}
	}

	s.NetBalance = s.TotalIncome - s.TotalExpense

	return s
}
