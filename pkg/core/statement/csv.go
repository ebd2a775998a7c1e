package statement

import (
	"encoding/csv"
	"strings"
)

// column keywords for header inference, Russian exports first.
var (
	dateKeywords   = []string{"дата", "date", "время", "time", "день"}
	amountKeywords = []string{"сумма", "amount", "сум", "руб", "rub", "деньги", "money"}
	descKeywords   = []string{"описание", "description", "назначение", "комментарий", "comment", "детали"}
)

// parseCSV reads a comma- or semicolon-delimited export. The columns holding
// date, amount and description are found by header keywords; failing that, by
// probing the first data row. Rows that do not yield a date and an amount are
// skipped and counted.
func parseCSV(text, filename, bank string) *ParseResult {
	delim := ','
	head := strings.Join(firstLines(text, 3), "\n")
	if strings.Count(head, ";") > strings.Count(head, ",") {
		delim = ';'
	}

	r := csv.NewReader(strings.NewReader(text))
	r.Comma = delim
	r.FieldsPerRecord = -1
	r.LazyQuotes = true

	records, err := r.ReadAll()
	if err != nil || len(records) == 0 {
		// Fall back to line-wise parsing of malformed CSV.
		return parseText(text, filename, bank)
	}

	result := &ParseResult{Bank: bank}

	dateCol, amountCol, descCol, headerRows := inferColumns(records)
	if dateCol < 0 || amountCol < 0 {
		return parseText(text, filename, bank)
	}

	for i, row := range records {
		if i < headerRows {
			continue
		}
		maxCol := dateCol
		if amountCol > maxCol {
			maxCol = amountCol
		}
		if descCol > maxCol {
			maxCol = descCol
		}
		if len(row) <= maxCol {
			result.Skipped++
			continue
		}

		date, ok := parseDate(row[dateCol])
		if !ok {
			result.Skipped++
			continue
		}
		amount, ok := parseAmount(row[amountCol])
		if !ok || amount == 0 {
			result.Skipped++
			continue
		}

		desc := ""
		if descCol >= 0 {
			desc = strings.TrimSpace(row[descCol])
		}

		result.Transactions = append(result.Transactions, Transaction{
			Date:        date,
			Description: desc,
			Amount:      amount,
			Bank:        bank,
			SourceFile:  filename,
		})
	}

	return result
}

// inferColumns returns the date, amount and description column indexes and
// how many leading rows are headers. -1 means the column was not found.
func inferColumns(records [][]string) (dateCol, amountCol, descCol, headerRows int) {
	dateCol, amountCol, descCol = -1, -1, -1

	header := records[0]
	for i, cell := range header {
		lower := strings.ToLower(strings.TrimSpace(cell))
		if dateCol < 0 && matchesAny(lower, dateKeywords) {
			dateCol = i
		}
		if amountCol < 0 && matchesAny(lower, amountKeywords) {
			amountCol = i
		}
		if descCol < 0 && matchesAny(lower, descKeywords) {
			descCol = i
		}
	}
	if dateCol >= 0 || amountCol >= 0 || descCol >= 0 {
		headerRows = 1
	}

	// Probe data rows for whatever the header did not reveal.
	probe := records
	if headerRows == 1 && len(records) > 1 {
		probe = records[1:]
	}
	for _, row := range probe {
		if dateCol >= 0 && amountCol >= 0 {
			break
		}
		for i, cell := range row {
			if dateCol < 0 {
				if _, ok := parseDate(cell); ok {
					dateCol = i
					continue
				}
			}
			if amountCol < 0 && i != dateCol {
				if _, ok := parseAmount(cell); ok {
					amountCol = i
				}
			}
		}
	}

	// Description: the first column that is neither date nor amount.
	if descCol < 0 && len(records[0]) > 0 {
		for i := range records[0] {
			if i != dateCol && i != amountCol {
				descCol = i
				break
			}
		}
	}

	return dateCol, amountCol, descCol, headerRows
}

func matchesAny(s string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(s, kw) {
			return true
		}
	}
	return false
}
