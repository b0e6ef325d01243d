package ledger

import (
	"context"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// Mode selects how strictly Validate treats absent fields.
type Mode int

const (
	// ModeFull requires every field of a new transaction to be present.
	ModeFull Mode = iota
	// ModePartial checks only the fields that were supplied; absent fields
	// are left untouched by the subsequent merge.
	ModePartial
)

// RawRecord is an unvalidated transaction record as supplied by a caller.
// It doubles as the field mask for partial updates: a nil pointer means the
// field was not supplied at all.
type RawRecord struct {
	Date                 *string
	Type                 *string
	Status               *string
	SourceAccountID      *string
	DestinationAccountID *string
	Amount               *string
	Purpose              *string
	CategoryID           *string
	ClearCategory        bool     // category_id was explicitly null
	Tags                 []string // nil means tags were not supplied
}

// Record is the normalized output of a successful validation. In full mode
// every required field is set; in partial mode nil fields were absent from
// the input.
type Record struct {
	Date                 *time.Time
	Type                 *Type
	Status               *Status
	SourceAccountID      *int64
	DestinationAccountID *int64
	Amount               *float64
	Purpose              *string
	CategoryID           *int64
	ClearCategory        bool
	Tags                 []string
}

// transaction builds a Transaction from a fully validated record, returning
// the tag names to resolve alongside it.
func (r Record) transaction() (*Transaction, []string) {
	tx := &Transaction{
		Date:                 *r.Date,
		Type:                 *r.Type,
		Status:               *r.Status,
		SourceAccountID:      *r.SourceAccountID,
		DestinationAccountID: *r.DestinationAccountID,
		Amount:               *r.Amount,
		Purpose:              *r.Purpose,
		CategoryID:           r.CategoryID,
	}

	tags := r.Tags
	if tags == nil {
		tags = []string{}
	}

	return tx, tags
}

// applyTo merges the supplied fields of a partial record into tx, leaving
// everything else untouched. Tags are handled separately by the store.
func (r Record) applyTo(tx *Transaction) {
	if r.Date != nil {
		tx.Date = *r.Date
	}

	if r.Type != nil {
		tx.Type = *r.Type
	}

	if r.Status != nil {
		tx.Status = *r.Status
	}

	if r.SourceAccountID != nil {
		tx.SourceAccountID = *r.SourceAccountID
	}

	if r.DestinationAccountID != nil {
		tx.DestinationAccountID = *r.DestinationAccountID
	}

	if r.Amount != nil {
		tx.Amount = *r.Amount
	}

	if r.Purpose != nil {
		tx.Purpose = *r.Purpose
	}

	if r.CategoryID != nil {
		tx.CategoryID = r.CategoryID
		tx.Category = nil
	}

	if r.ClearCategory {
		tx.CategoryID = nil
		tx.Category = nil
	}
}

// RefLookup resolves foreign keys during validation. Implemented by the
// entity store.
type RefLookup interface {
	AccountExists(ctx context.Context, id int64) (bool, error)
	CategoryExists(ctx context.Context, id int64) (bool, error)
}

// Validator normalizes raw records and checks them against format and
// relational constraints.
type Validator struct {
	refs RefLookup
}

func NewValidator(refs RefLookup) *Validator {
	return &Validator{refs: refs}
}

// Validate checks raw against the per-field rules in a fixed order (date,
// type, status, source account, destination account, amount, purpose,
// category, tags) and stops at the first failing field. Account and
// category ids must resolve to existing rows; source and destination may be
// the same account.
func (v *Validator) Validate(ctx context.Context, raw RawRecord, mode Mode) (*Record, error) {
	rec := &Record{}

	if raw.Date == nil {
		if mode == ModeFull {
			return nil, &MissingFieldError{Field: "date"}
		}
	} else {
		date, err := time.Parse(time.DateOnly, strings.TrimSpace(*raw.Date))
		if err != nil {
			return nil, &InvalidFormatError{Field: "date"}
		}

		rec.Date = &date
	}

	typ, err := requireText(raw.Type, "type", mode)
	if err != nil {
		return nil, err
	}

	if typ != nil {
		t := Type(*typ)
		rec.Type = &t
	}

	status, err := requireText(raw.Status, "status", mode)
	if err != nil {
		return nil, err
	}

	if status != nil {
		s := Status(*status)
		rec.Status = &s
	}

	rec.SourceAccountID, err = v.requireAccount(ctx, raw.SourceAccountID, "source_account_id", mode)
	if err != nil {
		return nil, err
	}

	rec.DestinationAccountID, err = v.requireAccount(ctx, raw.DestinationAccountID, "destination_account_id", mode)
	if err != nil {
		return nil, err
	}

	if raw.Amount == nil {
		if mode == ModeFull {
			return nil, &MissingFieldError{Field: "amount"}
		}
	} else {
		amount, err := strconv.ParseFloat(strings.TrimSpace(*raw.Amount), 64)
		if err != nil || math.IsNaN(amount) || math.IsInf(amount, 0) {
			return nil, &InvalidFormatError{Field: "amount"}
		}

		rec.Amount = &amount
	}

	rec.Purpose, err = requireText(raw.Purpose, "purpose", mode)
	if err != nil {
		return nil, err
	}

	if raw.ClearCategory {
		rec.ClearCategory = true
	} else if raw.CategoryID != nil {
		id, parseErr := strconv.ParseInt(strings.TrimSpace(*raw.CategoryID), 10, 64)
		if parseErr != nil {
			return nil, &InvalidFormatError{Field: "category_id"}
		}

		exists, err := v.refs.CategoryExists(ctx, id)
		if err != nil {
			return nil, fmt.Errorf("checking category %d: %w", id, err)
		}

		if !exists {
			return nil, &ReferenceNotFoundError{Kind: "category", ID: id}
		}

		rec.CategoryID = &id
	}

	if raw.Tags != nil {
		rec.Tags = make([]string, len(raw.Tags))
		copy(rec.Tags, raw.Tags)
	}

	return rec, nil
}

// ValidateBatch validates records in order under full mode. The first
// failure aborts the batch and is annotated with its 1-based position.
func (v *Validator) ValidateBatch(ctx context.Context, raws []RawRecord) ([]Record, error) {
	recs := make([]Record, 0, len(raws))

	for i, raw := range raws {
		rec, err := v.Validate(ctx, raw, ModeFull)
		if err != nil {
			return nil, markIndex(err, i+1)
		}

		recs = append(recs, *rec)
	}

	return recs, nil
}

// requireText validates a free-form text field: present in full mode,
// non-blank after trimming whenever supplied.
func requireText(value *string, field string, mode Mode) (*string, error) {
	if value == nil {
		if mode == ModeFull {
			return nil, &MissingFieldError{Field: field}
		}

		return nil, nil
	}

	trimmed := strings.TrimSpace(*value)
	if trimmed == "" {
		return nil, &InvalidFormatError{Field: field}
	}

	return &trimmed, nil
}

func (v *Validator) requireAccount(ctx context.Context, value *string, field string, mode Mode) (*int64, error) {
	if value == nil {
		if mode == ModeFull {
			return nil, &MissingFieldError{Field: field}
		}

		return nil, nil
	}

	id, err := strconv.ParseInt(strings.TrimSpace(*value), 10, 64)
	if err != nil {
		return nil, &InvalidFormatError{Field: field}
	}

	exists, err := v.refs.AccountExists(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("checking account %d: %w", id, err)
	}

	if !exists {
		return nil, &ReferenceNotFoundError{Kind: "account", ID: id}
	}

	return &id, nil
}
