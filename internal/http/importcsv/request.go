package importcsv

import (
	"encoding/json"

	"github.com/rmarques/smartbooks/internal/ledger"
)

// rawField accepts a JSON string, number or null, preserving the difference
// between absent and null. Mirrors the single-transaction request decoding.
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

type batchItem struct {
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

func (i batchItem) rawRecord() ledger.RawRecord {
	rec := ledger.RawRecord{
		Date:                 i.Date.ptr(),
		Type:                 i.Type.ptr(),
		Status:               i.Status.ptr(),
		SourceAccountID:      i.SourceAccountID.ptr(),
		DestinationAccountID: i.DestinationAccountID.ptr(),
		Amount:               i.Amount.ptr(),
		Purpose:              i.Purpose.ptr(),
	}

	if i.CategoryID.set {
		if i.CategoryID.null {
			rec.ClearCategory = true
		} else {
			rec.CategoryID = &i.CategoryID.text
		}
	}

	if i.Tags != nil {
		tags := *i.Tags
		if tags == nil {
			tags = []string{}
		}

		rec.Tags = tags
	}

	return rec
}
