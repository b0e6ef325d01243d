package ledger

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/rmarques/smartbooks/internal/ledger"
)

// rawField accepts a JSON string, number or null and preserves the
// distinction between "absent", "null" and a value. The engine validates the
// literal text, so "1" and 1 are equivalent on the wire.
type rawField struct {
	set  bool
	null bool
	text string
}

func (f *rawField) UnmarshalJSON(b []byte) error {
	f.set = true

	if string(b) == "null" {
		f.null = true
		return nil
	}

	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		f.text = s
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return err
	}

	f.text = n.String()

	return nil
}

// ptr returns the field as the validator's absent-or-present representation.
// An explicit null becomes an empty string so that it fails validation as
// "present but blank" rather than passing as absent.
func (f rawField) ptr() *string {
	if !f.set {
		return nil
	}

	if f.null {
		empty := ""
		return &empty
	}

	return &f.text
}

type transactionRequest struct {
	Date                 rawField  `json:"date"`
	Type                 rawField  `json:"type"`
	Status               rawField  `json:"status"`
	SourceAccountID      rawField  `json:"source_account_id"`
	DestinationAccountID rawField  `json:"destination_account_id"`
	Amount               rawField  `json:"amount"`
	Purpose              rawField  `json:"purpose"`
	CategoryID           rawField  `json:"category_id"`
	Tags                 *[]string `json:"tags"`
}

func (r transactionRequest) rawRecord() ledger.RawRecord {
	rec := ledger.RawRecord{
		Date:                 r.Date.ptr(),
		Type:                 r.Type.ptr(),
		Status:               r.Status.ptr(),
		SourceAccountID:      r.SourceAccountID.ptr(),
		DestinationAccountID: r.DestinationAccountID.ptr(),
		Amount:               r.Amount.ptr(),
		Purpose:              r.Purpose.ptr(),
	}

	// category_id: null clears, absent leaves untouched.
	if r.CategoryID.set {
		if r.CategoryID.null {
			rec.ClearCategory = true
		} else {
			rec.CategoryID = &r.CategoryID.text
		}
	}

	if r.Tags != nil {
		tags := *r.Tags
		if tags == nil {
			tags = []string{}
		}

		rec.Tags = tags
	}

	return rec
}

// ParseFilter reads the shared filter query parameters. A malformed bound is
// an error, not a silently ignored filter.
func ParseFilter(r *http.Request) (ledger.ListFilter, error) {
	var filter ledger.ListFilter

	query := r.URL.Query()

	if s := query.Get("type"); s != "" {
		t := ledger.Type(s)
		filter.Type = &t
	}

	if s := query.Get("status"); s != "" {
		st := ledger.Status(s)
		filter.Status = &st
	}

	if s := query.Get("source_account_id"); s != "" {
		id, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			return ledger.ListFilter{}, &ledger.InvalidFormatError{Field: "source_account_id"}
		}

		filter.SourceAccountID = &id
	}

	if s := query.Get("destination_account_id"); s != "" {
		id, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			return ledger.ListFilter{}, &ledger.InvalidFormatError{Field: "destination_account_id"}
		}

		filter.DestinationAccountID = &id
	}

	if s := query.Get("start_date"); s != "" {
		t, err := time.Parse(time.DateOnly, s)
		if err != nil {
			return ledger.ListFilter{}, &ledger.InvalidFormatError{Field: "start_date"}
		}

		filter.StartDate = &t
	}

	if s := query.Get("end_date"); s != "" {
		t, err := time.Parse(time.DateOnly, s)
		if err != nil {
			return ledger.ListFilter{}, &ledger.InvalidFormatError{Field: "end_date"}
		}

		filter.EndDate = &t
	}

	return filter, nil
}
