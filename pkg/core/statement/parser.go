package statement

import (
	"path/filepath"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
)

// Parser converts uploaded statement files into normalized transactions.
// It is stateless and safe for concurrent use.
type Parser struct{}

func NewParser() *Parser {
	return &Parser{}
}

// Parse dispatches on the file layout. declaredBank may be empty; the bank is
// then inferred from the content or the file name stem. A file from which not
// a single transaction can be read fails with *ParseError; anything less is a
// partial result with a skipped-row count.
func (p *Parser) Parse(data []byte, filename, declaredBank string) (*ParseResult, error) {
	if len(data) == 0 {
		return nil, &ParseError{File: filename, Reason: "empty file"}
	}

	text, err := decodeText(data)
	if err != nil {
		return nil, &ParseError{File: filename, Reason: "unknown encoding"}
	}

	bank := declaredBank
	if bank == "" {
		bank = bankFromFilename(filename)
	}

	var result *ParseResult
	switch {
	case isSberbankLayout(text):
		result = parseSberbank(text, filename)
	case isDelimited(text):
		result = parseCSV(text, filename, bank)
	default:
		result = parseText(text, filename, bank)
	}

	if len(result.Transactions) == 0 {
		return nil, &ParseError{File: filename, Reason: "no parseable transaction rows"}
	}
	return result, nil
}

// decodeText returns the file content as UTF-8, falling back to
// cp1251/windows-1251, the encoding of most Russian bank exports.
func decodeText(data []byte) (string, error) {
	if utf8.Valid(data) {
		return string(data), nil
	}
	decoded, err := charmap.Windows1251.NewDecoder().Bytes(data)
	if err != nil {
		return "", err
	}
	return string(decoded), nil
}

func isDelimited(text string) bool {
	head := firstLines(text, 5)
	for _, line := range head {
		if strings.Count(line, ",") >= 2 || strings.Count(line, ";") >= 2 {
			return true
		}
	}
	return false
}

func firstLines(text string, n int) []string {
	lines := strings.Split(text, "\n")
	if len(lines) > n {
		lines = lines[:n]
	}
	return lines
}

func bankFromFilename(filename string) string {
	return strings.TrimSuffix(filepath.Base(filename), filepath.Ext(filename))
}

// dateLayouts covers the formats seen across supported bank exports.
var dateLayouts = []string{
	"02.01.2006",
	"2.1.2006",
	"02/01/2006",
	"2/1/2006",
	"2006-01-02",
	"02.01.06",
}

func parseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// parseAmount handles comma decimal separators, space and NBSP thousands
// separators and an optional sign.
func parseAmount(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	s = strings.ReplaceAll(s, " ", "")
	s = strings.ReplaceAll(s, " ", "")
	if s == "" {
		return 0, false
	}
	if strings.Contains(s, ",") && strings.Contains(s, ".") {
		// comma is the thousands separator
		s = strings.ReplaceAll(s, ",", "")
	} else {
		s = strings.ReplaceAll(s, ",", ".")
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}
