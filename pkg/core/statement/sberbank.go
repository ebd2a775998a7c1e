package statement

import (
	"strings"
)

// Sberbank exports are tab-separated with a technical header row somewhere in
// the file; rows before it are account metadata.
func isSberbankLayout(text string) bool {
	return strings.Contains(text, "statement_unid") || strings.Contains(text, "ID-записи")
}

// parseSberbank reads the tab-separated Sberbank layout. Columns of interest:
// date_oper / Дата_опер, sum_rur / Сум_руб, text70 / Назначение.
func parseSberbank(text, filename string) *ParseResult {
	result := &ParseResult{Bank: "sberbank"}

	lines := strings.Split(text, "\n")

	headerLine := -1
	for i, line := range lines {
		if strings.Contains(line, "statement_unid") || strings.Contains(line, "ID-записи") {
			headerLine = i
			break
		}
	}
	if headerLine < 0 {
		return result
	}

	headers := strings.Split(lines[headerLine], "\t")
	dateCol, amountCol, descCol := -1, -1, -1
	for i, h := range headers {
		lower := strings.ToLower(strings.TrimSpace(h))
		switch {
		case strings.Contains(lower, "date_oper") || strings.Contains(lower, "дата_опер"):
			dateCol = i
		case strings.Contains(lower, "sum_rur") || strings.Contains(lower, "сум_руб"):
			amountCol = i
		case strings.Contains(lower, "text70") || strings.Contains(lower, "назначение"):
			descCol = i
		}
	}
	if dateCol < 0 || amountCol < 0 || descCol < 0 {
		return result
	}

	maxCol := dateCol
	if amountCol > maxCol {
		maxCol = amountCol
	}
	if descCol > maxCol {
		maxCol = descCol
	}

	for _, line := range lines[headerLine+1:] {
		line = strings.TrimRight(line, "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}

		values := strings.Split(line, "\t")
		if len(values) <= maxCol {
			result.Skipped++
			continue
		}

		date, ok := parseDate(values[dateCol])
		if !ok {
			result.Skipped++
			continue
		}
		amount, ok := parseAmount(values[amountCol])
		if !ok {
			result.Skipped++
			continue
		}
		// Zero-sum technical rows carry no transaction.
		if amount == 0 {
			result.Skipped++
			continue
		}

		result.Transactions = append(result.Transactions, Transaction{
			Date:        date,
			Description: strings.TrimSpace(values[descCol]),
			Amount:      amount,
			Bank:        "sberbank",
			SourceFile:  filename,
		})
	}

	return result
}
