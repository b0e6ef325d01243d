package importer

import (
	"fmt"
	"io"

	"github.com/rmarques/smartbooks/internal/importer/csvfile"
	"github.com/rmarques/smartbooks/internal/ledger"
)

type Service struct {
	csvParser Parser
}

func NewService() *Service {
	return &Service{
		csvParser: csvfile.NewParser(),
	}
}

func (s *Service) Import(format Format, r io.Reader) ([]ledger.RawRecord, error) {
	var parser Parser

	switch format {
	case FormatCSV:
		parser = s.csvParser
	default:
		return nil, fmt.Errorf("unknown format: %s", format)
	}

	return parser.Parse(r)
}
