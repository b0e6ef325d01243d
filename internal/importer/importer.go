package importer

import (
	"io"

	"github.com/rmarques/smartbooks/internal/ledger"
)

// Format identifies a supported batch input format.
type Format string

const (
	FormatCSV Format = "csv"
)

// Parser turns one delimited input into an ordered sequence of raw records.
// Parsers do not validate; that is the validator's job.
type Parser interface {
	Parse(r io.Reader) ([]ledger.RawRecord, error)
}
