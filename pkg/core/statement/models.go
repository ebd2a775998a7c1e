package statement

import (
	"fmt"
	"time"
)

// Transaction is one normalized statement row.
// Amount sign convention: negative = expense, positive = income. The
// aggregator relies on this uniformly.
type Transaction struct {
	ID          int64     `json:"id,omitempty"`
	Date        time.Time `json:"date"`
	Description string    `json:"description"`
	Amount      float64   `json:"amount"`
	Category    string    `json:"category"`
	Bank        string    `json:"bank"`
	SourceFile  string    `json:"source_file"`
}

// ParseResult is the outcome of parsing one uploaded file. Rows the parser
// could not understand are skipped and counted, not fatal.
type ParseResult struct {
	Transactions []Transaction
	Skipped      int
	Bank         string
}

// ParseError is the hard failure for a wholly unreadable file. Partial
// results never produce a ParseError.
type ParseError struct {
	File   string
	Reason string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("cannot parse statement %s: %s", e.File, e.Reason)
}
