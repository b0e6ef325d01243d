package ledger

import (
	"time"

	"github.com/rmarques/smartbooks/internal/ledger"
)

type transactionResponse struct {
	ID                   int64             `json:"id"`
	Date                 string            `json:"date"`
	Type                 ledger.Type       `json:"type"`
	Status               ledger.Status     `json:"status"`
	SourceAccountID      int64             `json:"source_account_id"`
	DestinationAccountID int64             `json:"destination_account_id"`
	Amount               float64           `json:"amount"`
	Purpose              string            `json:"purpose"`
	CategoryID           *int64            `json:"category_id,omitempty"`
	Category             *categoryResponse `json:"category,omitempty"`
	Tags                 []string          `json:"tags"`
	CreatedAt            time.Time         `json:"created_at"`
	UpdatedAt            *time.Time        `json:"updated_at,omitempty"`
}

type categoryResponse struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type tagResponse struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

func toResponse(tx *ledger.Transaction) transactionResponse {
	tags := make([]string, 0, len(tx.Tags))
	for _, tag := range tx.Tags {
		tags = append(tags, tag.Name)
	}

	resp := transactionResponse{
		ID:                   tx.ID,
		Date:                 tx.Date.Format(time.DateOnly),
		Type:                 tx.Type,
		Status:               tx.Status,
		SourceAccountID:      tx.SourceAccountID,
		DestinationAccountID: tx.DestinationAccountID,
		Amount:               tx.Amount,
		Purpose:              tx.Purpose,
		CategoryID:           tx.CategoryID,
		Tags:                 tags,
		CreatedAt:            tx.CreatedAt,
		UpdatedAt:            tx.UpdatedAt,
	}

	if tx.Category != nil {
		resp.Category = &categoryResponse{
			ID:   tx.Category.ID,
			Name: tx.Category.Name,
		}
	}

	return resp
}

type listResponse struct {
	Items   []transactionResponse `json:"items"`
	Page    int                   `json:"page"`
	PerPage int                   `json:"per_page"`
	Total   int64                 `json:"total"`
	Pages   int                   `json:"pages"`
}

func toListResponse(result *ledger.ListResult) listResponse {
	items := make([]transactionResponse, 0, len(result.Items))
	for _, tx := range result.Items {
		items = append(items, toResponse(tx))
	}

	return listResponse{
		Items:   items,
		Page:    result.Page,
		PerPage: result.PerPage,
		Total:   result.Total,
		Pages:   result.Pages,
	}
}

type typeSummaryResponse struct {
	Count int     `json:"count"`
	Total float64 `json:"total"`
}

type summaryResponse struct {
	ByType       map[ledger.Type]typeSummaryResponse `json:"by_type"`
	TotalIncome  float64                             `json:"total_income"`
	TotalExpense float64                             `json:"total_expense"`
	NetBalance   float64                             `json:"net_balance"`
}

func toSummaryResponse(sum *ledger.Summary) summaryResponse {
	byType := make(map[ledger.Type]typeSummaryResponse, len(sum.ByType))
	for typ, agg := range sum.ByType {
		byType[typ] = typeSummaryResponse{Count: agg.Count, Total: agg.Total}
	}

	return summaryResponse{
		ByType:       byType,
		TotalIncome:  sum.TotalIncome,
		TotalExpense: sum.TotalExpense,
		NetBalance:   sum.NetBalance,
	}
}
