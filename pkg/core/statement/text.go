package statement

import (
	"regexp"
	"strings"
)

var (
	dateRe   = regexp.MustCompile(`\d{1,2}[./]\d{1,2}[./]\d{2,4}|\d{4}-\d{2}-\d{2}`)
	amountRe = regexp.MustCompile(`[+-]?\d+(?:[ \x{00a0}]\d{3})*[.,]\d{2}`)
)

// parseText scans free-form statement lines for a date and a signed amount.
// Everything left on the line becomes the description. Lines without both
// are skipped and counted.
func parseText(text, filename, bank string) *ParseResult {
	result := &ParseResult{Bank: bank}

	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		dateStr := dateRe.FindString(line)
		amountStr := amountRe.FindString(line)
		if dateStr == "" || amountStr == "" {
			result.Skipped++
			continue
		}

		date, ok := parseDate(dateStr)
		if !ok {
			result.Skipped++
			continue
		}
		amount, ok := parseAmount(amountStr)
		if !ok || amount == 0 {
			result.Skipped++
			continue
		}

		desc := strings.Replace(line, dateStr, "", 1)
		desc = strings.Replace(desc, amountStr, "", 1)
		desc = strings.Trim(desc, " \t;,-")

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
