package store

import (
	"context"
	"database/sql"
	"fmt"
	"sort"

	"github.com/rmarques/smartbooks/internal/ledger"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// scanner is satisfied by both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

// querier is satisfied by both *sql.DB and *sql.Tx.
type querier interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

const selectTransactionColumns = `
	t.id, t.date, t.type, t.status, t.source_account_id, t.destination_account_id,
	t.amount, t.purpose, t.category_id, c.name AS category_name, t.created_at, t.updated_at
`

// scanTransaction reads a transaction row joined with its category.
func scanTransaction(s scanner) (*ledger.Transaction, error) {
	var tx ledger.Transaction

	var typeStr, statusStr string

	var categoryID sql.NullInt64

	var categoryName sql.NullString

	if err := s.Scan(
		&tx.ID, &tx.Date, &typeStr, &statusStr, &tx.SourceAccountID, &tx.DestinationAccountID,
		&tx.Amount, &tx.Purpose, &categoryID, &categoryName,
		&tx.CreatedAt, &tx.UpdatedAt,
	); err != nil {
		return nil, err
	}

	tx.Type = ledger.Type(typeStr)
	tx.Status = ledger.Status(statusStr)

	if categoryID.Valid {
		tx.CategoryID = &categoryID.Int64

		if categoryName.Valid {
			tx.Category = &ledger.Category{
				ID:   categoryID.Int64,
				Name: categoryName.String,
			}
		}
	}

	return &tx, nil
}

// filterClause renders the conjunctive filter as SQL appended after a
// "WHERE 1=1" base. An empty filter produces no conditions at all, which
// keeps "unfiltered" distinct from "matches nothing".
func filterClause(f ledger.ListFilter) (string, []any) {
	if f.Empty() {
		return "", nil
	}

	var clause string

	var args []any

	argIdx := 1

	if f.Type != nil {
		clause += fmt.Sprintf(" AND t.type = $%d", argIdx)

		args = append(args, *f.Type)
		argIdx++
	}

	if f.Status != nil {
		clause += fmt.Sprintf(" AND t.status = $%d", argIdx)

		args = append(args, *f.Status)
		argIdx++
	}

	if f.SourceAccountID != nil {
		clause += fmt.Sprintf(" AND t.source_account_id = $%d", argIdx)

		args = append(args, *f.SourceAccountID)
		argIdx++
	}

	if f.DestinationAccountID != nil {
		clause += fmt.Sprintf(" AND t.destination_account_id = $%d", argIdx)

		args = append(args, *f.DestinationAccountID)
		argIdx++
	}

	if f.StartDate != nil {
		clause += fmt.Sprintf(" AND t.date >= $%d", argIdx)

		args = append(args, *f.StartDate)
		argIdx++
	}

	if f.EndDate != nil {
		clause += fmt.Sprintf(" AND t.date <= $%d", argIdx)

		args = append(args, *f.EndDate)
		argIdx++
	}

	return clause, args
}

var sortColumns = map[ledger.SortKey]string{
	ledger.SortAmount: "t.amount",
	ledger.SortDate:   "t.date",
	ledger.SortType:   "t.type",
	ledger.SortStatus: "t.status",
}

// orderClause maps the sort to an ORDER BY over whitelisted columns. The id
// tiebreak keeps pagination and aggregation order deterministic. An empty
// key selects the canonical default column, date, so a direction supplied on
// its own still takes effect.
func orderClause(s ledger.Sort) string {
	col, ok := sortColumns[s.Key]
	if !ok {
		col = "t.date"
	}

	dir := "ASC"
	if s.Dir == ledger.SortDesc {
		dir = "DESC"
	}

	return fmt.Sprintf(" ORDER BY %s %s, t.id ASC", col, dir)
}

func (s *Store) CreateTransaction(ctx context.Context, tx *ledger.Transaction, tagNames []string) error {
	dbTx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer dbTx.Rollback()

	if err := insertTransaction(ctx, dbTx, tx, tagNames); err != nil {
		return err
	}

	if err := dbTx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}

	return nil
}

// insertTransaction writes one row and resolves its tags within dbTx.
func insertTransaction(ctx context.Context, dbTx *sql.Tx, tx *ledger.Transaction, tagNames []string) error {
	query := `
		INSERT INTO transactions (date, type, status, source_account_id, destination_account_id, amount, purpose, category_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NOW())
		RETURNING id, created_at
	`

	err := dbTx.QueryRowContext(ctx, query,
		tx.Date,
		tx.Type,
		tx.Status,
		tx.SourceAccountID,
		tx.DestinationAccountID,
		tx.Amount,
		tx.Purpose,
		tx.CategoryID,
	).Scan(&tx.ID, &tx.CreatedAt)
	if err != nil {
		return fmt.Errorf("creating transaction: %w", err)
	}

	tags, err := resolveTags(ctx, dbTx, tagNames)
	if err != nil {
		return err
	}

	if err := linkTags(ctx, dbTx, tx.ID, tags); err != nil {
		return err
	}

	tx.Tags = tags

	return nil
}

// resolveTags maps tag names to existing-or-newly-created rows, deduplicated
// by exact name. Creation races are settled by the uniqueness constraint on
// tags.name: a loser of the insert race re-reads the winner's row.
func resolveTags(ctx context.Context, q querier, names []string) ([]ledger.Tag, error) {
	names = dedupNames(names)
	tags := make([]ledger.Tag, 0, len(names))

	for _, name := range names {
		tag, err := resolveTag(ctx, q, name)
		if err != nil {
			return nil, err
		}

		tags = append(tags, *tag)
	}

	sort.Slice(tags, func(i, j int) bool { return tags[i].Name < tags[j].Name })

	return tags, nil
}

// dedupNames keeps the first occurrence of each name. Matching is exact, so
// "food" and "Food" remain distinct tags.
func dedupNames(names []string) []string {
	seen := make(map[string]struct{}, len(names))
	out := make([]string, 0, len(names))

	for _, name := range names {
		if _, dup := seen[name]; dup {
			continue
		}

		seen[name] = struct{}{}
		out = append(out, name)
	}

	return out
}

func resolveTag(ctx context.Context, q querier, name string) (*ledger.Tag, error) {
	var tag ledger.Tag

	err := q.QueryRowContext(ctx, `SELECT id, name FROM tags WHERE name = $1`, name).Scan(&tag.ID, &tag.Name)
	if err == nil {
		return &tag, nil
	}

	if err != sql.ErrNoRows {
		return nil, fmt.Errorf("looking up tag: %w", err)
	}

	insert := `INSERT INTO tags (name) VALUES ($1) ON CONFLICT (name) DO NOTHING RETURNING id`

	err = q.QueryRowContext(ctx, insert, name).Scan(&tag.ID)
	if err == nil {
		tag.Name = name
		return &tag, nil
	}

	if err != sql.ErrNoRows {
		return nil, fmt.Errorf("creating tag: %w", err)
	}

	// Lost the insert race; fetch the row the winner created.
	err = q.QueryRowContext(ctx, `SELECT id, name FROM tags WHERE name = $1`, name).Scan(&tag.ID, &tag.Name)
	if err == sql.ErrNoRows {
		return nil, &ledger.ConflictError{Kind: "tag", Name: name}
	}

	if err != nil {
		return nil, fmt.Errorf("refetching tag: %w", err)
	}

	return &tag, nil
}

func linkTags(ctx context.Context, q querier, txID int64, tags []ledger.Tag) error {
	for _, tag := range tags {
		_, err := q.ExecContext(ctx,
			`INSERT INTO transaction_tags (transaction_id, tag_id) VALUES ($1, $2) ON CONFLICT DO NOTHING`,
			txID, tag.ID,
		)
		if err != nil {
			return fmt.Errorf("linking tag: %w", err)
		}
	}

	return nil
}

func (s *Store) GetTransaction(ctx context.Context, id int64) (*ledger.Transaction, error) {
	query := `SELECT ` + selectTransactionColumns + `
		FROM transactions t
		LEFT JOIN categories c ON t.category_id = c.id
		WHERE t.id = $1`

	tx, err := scanTransaction(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ledger.ErrNotFound
		}

		return nil, fmt.Errorf("getting transaction: %w", err)
	}

	tagsByTx, err := loadTags(ctx, s.db, []int64{tx.ID})
	if err != nil {
		return nil, err
	}

	tx.Tags = tagsByTx[tx.ID]

	return tx, nil
}

func (s *Store) ListTransactions(ctx context.Context, q ledger.Query) ([]*ledger.Transaction, int64, error) {
	clause, args := filterClause(q.Filter)

	var total int64

	countQuery := `SELECT COUNT(*) FROM transactions t WHERE 1=1` + clause
	if err := s.db.QueryRowContext(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("counting transactions: %w", err)
	}

	query := `SELECT ` + selectTransactionColumns + `
		FROM transactions t
		LEFT JOIN categories c ON t.category_id = c.id
		WHERE 1=1` + clause + orderClause(q.Sort)

	query += fmt.Sprintf(" LIMIT $%d OFFSET $%d", len(args)+1, len(args)+2)
	args = append(args, q.Page.Limit(), q.Page.Offset())

	txs, err := s.queryTransactions(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}

	return txs, total, nil
}

func (s *Store) ListAllTransactions(ctx context.Context, f ledger.ListFilter) ([]*ledger.Transaction, error) {
	clause, args := filterClause(f)

	query := `SELECT ` + selectTransactionColumns + `
		FROM transactions t
		LEFT JOIN categories c ON t.category_id = c.id
		WHERE 1=1` + clause + orderClause(ledger.Sort{})

	return s.queryTransactions(ctx, query, args...)
}

func (s *Store) queryTransactions(ctx context.Context, query string, args ...any) ([]*ledger.Transaction, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing transactions: %w", err)
	}
	defer rows.Close()

	var txs []*ledger.Transaction

	var ids []int64

	for rows.Next() {
		tx, err := scanTransaction(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning transaction: %w", err)
		}

		txs = append(txs, tx)
		ids = append(ids, tx.ID)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating transaction rows: %w", err)
	}

	if len(ids) == 0 {
		return txs, nil
	}

	tagsByTx, err := loadTags(ctx, s.db, ids)
	if err != nil {
		return nil, err
	}

	for _, tx := range txs {
		tx.Tags = tagsByTx[tx.ID]
	}

	return txs, nil
}

// loadTags fetches the tag sets for a batch of transactions in one query,
// ordered by tag name.
func loadTags(ctx context.Context, q querier, txIDs []int64) (map[int64][]ledger.Tag, error) {
	query := `
		SELECT tt.transaction_id, tg.id, tg.name
		FROM transaction_tags tt
		JOIN tags tg ON tg.id = tt.tag_id
		WHERE tt.transaction_id = ANY($1)
		ORDER BY tg.name ASC
	`

	rows, err := q.QueryContext(ctx, query, txIDs)
	if err != nil {
		return nil, fmt.Errorf("loading tags: %w", err)
	}
	defer rows.Close()

	tagsByTx := make(map[int64][]ledger.Tag)

	for rows.Next() {
		var txID int64

		var tag ledger.Tag

		if err := rows.Scan(&txID, &tag.ID, &tag.Name); err != nil {
			return nil, fmt.Errorf("scanning tag: %w", err)
		}

		tagsByTx[txID] = append(tagsByTx[txID], tag)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating tag rows: %w", err)
	}

	return tagsByTx, nil
}

func (s *Store) UpdateTransaction(ctx context.Context, tx *ledger.Transaction, tagNames []string) error {
	dbTx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer dbTx.Rollback()

	query := `
		UPDATE transactions
		SET date = $1, type = $2, status = $3, source_account_id = $4, destination_account_id = $5,
			amount = $6, purpose = $7, category_id = $8, updated_at = NOW()
		WHERE id = $9
		RETURNING updated_at
	`

	err = dbTx.QueryRowContext(ctx, query,
		tx.Date,
		tx.Type,
		tx.Status,
		tx.SourceAccountID,
		tx.DestinationAccountID,
		tx.Amount,
		tx.Purpose,
		tx.CategoryID,
		tx.ID,
	).Scan(&tx.UpdatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return ledger.ErrNotFound
		}

		return fmt.Errorf("updating transaction: %w", err)
	}

	if tagNames != nil {
		if _, err := dbTx.ExecContext(ctx, `DELETE FROM transaction_tags WHERE transaction_id = $1`, tx.ID); err != nil {
			return fmt.Errorf("clearing tags: %w", err)
		}

		tags, err := resolveTags(ctx, dbTx, tagNames)
		if err != nil {
			return err
		}

		if err := linkTags(ctx, dbTx, tx.ID, tags); err != nil {
			return err
		}

		tx.Tags = tags
	}

	if err := dbTx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}

	return nil
}

func (s *Store) DeleteTransaction(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM transactions WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("deleting transaction: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("deleting transaction: %w", err)
	}

	if affected == 0 {
		return ledger.ErrNotFound
	}

	return nil
}

func (s *Store) ListTags(ctx context.Context) ([]ledger.Tag, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id, name FROM tags ORDER BY name ASC`)
	if err != nil {
		return nil, fmt.Errorf("listing tags: %w", err)
	}
	defer rows.Close()

	var tags []ledger.Tag

	for rows.Next() {
		var tag ledger.Tag

		if err := rows.Scan(&tag.ID, &tag.Name); err != nil {
			return nil, fmt.Errorf("scanning tag: %w", err)
		}

		tags = append(tags, tag)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating tag rows: %w", err)
	}

	return tags, nil
}

func (s *Store) AccountExists(ctx context.Context, id int64) (bool, error) {
	var exists bool

	err := s.db.QueryRowContext(ctx, `SELECT EXISTS (SELECT 1 FROM accounts WHERE id = $1)`, id).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("checking account: %w", err)
	}

	return exists, nil
}

func (s *Store) CategoryExists(ctx context.Context, id int64) (bool, error) {
	var exists bool

	err := s.db.QueryRowContext(ctx, `SELECT EXISTS (SELECT 1 FROM categories WHERE id = $1)`, id).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("checking category: %w", err)
	}

	return exists, nil
}

type batchTx struct {
	tx *sql.Tx
}

// BeginBatch opens the store transaction backing an all-or-nothing batch
// insert.
func (s *Store) BeginBatch(ctx context.Context) (ledger.BatchTx, error) {
	dbTx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("beginning batch tx: %w", err)
	}

	return &batchTx{tx: dbTx}, nil
}

func (b *batchTx) Commit() error   { return b.tx.Commit() }
func (b *batchTx) Rollback() error { return b.tx.Rollback() }

func (b *batchTx) CreateTransaction(ctx context.Context, tx *ledger.Transaction, tagNames []string) error {
	return insertTransaction(ctx, b.tx, tx, tagNames)
}
