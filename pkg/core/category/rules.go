package category

import (
	"fmt"
	"os"
	"strings"

	hjson "github.com/hjson/hjson-go/v4"
)

// Other is the catch-all category for descriptions no rule matches.
const Other = "other"

// Rule maps any of its keywords, matched case-insensitively as substrings of
// the transaction description, to a category.
type Rule struct {
	Category string
	Keywords []string
}

// Table is an ordered, immutable rule set. First matching rule wins, so rule
// order is rank. Construct once at startup and share by reference.
type Table struct {
	rules []Rule
}

// DefaultRules mirrors the production rule table: Russian merchant keywords
// first, with English equivalents for foreign statements.
func DefaultRules() *Table {
	return NewTable([]Rule{
		{Category: "groceries", Keywords: []string{"магнит", "пятерочка", "перекресток", "ашан", "лента", "продукты", "еда", "кафе", "ресторан", "grocery", "supermarket", "restaurant", "cafe"}},
		{Category: "transport", Keywords: []string{"яндекс.такси", "uber", "метро", "автобус", "бензин", "заправка", "парковка", "транспорт", "taxi", "fuel", "parking"}},
		{Category: "utilities", Keywords: []string{"жкх", "электричество", "газ", "вода", "отопление", "коммунальные", "квартплата", "utilities", "electricity"}},
		{Category: "telecom", Keywords: []string{"мтс", "билайн", "мегафон", "теле2", "интернет", "связь", "мобильная связь", "internet", "mobile"}},
		{Category: "health", Keywords: []string{"аптека", "больница", "поликлиника", "врач", "лекарства", "медицина", "pharmacy", "hospital", "doctor"}},
		{Category: "education", Keywords: []string{"школа", "университет", "курсы", "обучение", "образование", "school", "university", "course"}},
		{Category: "entertainment", Keywords: []string{"кино", "театр", "концерт", "игры", "развлечения", "отдых", "cinema", "theatre", "games"}},
		{Category: "clothing", Keywords: []string{"одежда", "обувь", "магазин одежды", "h&m", "zara", "uniqlo", "clothes", "shoes"}},
		{Category: "salary", Keywords: []string{"зарплата", "доход", "перевод", "возврат", "проценты", "дивиденды", "salary", "income", "dividend", "refund"}},
		{Category: "investments", Keywords: []string{"акции", "облигации", "депозит", "инвестиции", "брокер", "stocks", "bonds", "deposit", "broker"}},
	})
}

// NewTable copies the rules so callers cannot mutate the table afterwards.
func NewTable(rules []Rule) *Table {
	copied := make([]Rule, len(rules))
	for i, r := range rules {
		copied[i] = Rule{
			Category: r.Category,
			Keywords: append([]string(nil), r.Keywords...),
		}
		for j, kw := range copied[i].Keywords {
			copied[i].Keywords[j] = strings.ToLower(kw)
		}
	}
	return &Table{rules: copied}
}

// LoadTable reads a rule table from an Hjson file laid out as
// { "rules": [ { "category": ..., "keywords": [...] }, ... ] }.
// Hjson allows comments and unquoted keys, which keeps hand-edited rule
// files readable.
func LoadTable(path string) (*Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var doc struct {
		Rules []struct {
			Category string   `json:"category"`
			Keywords []string `json:"keywords"`
		} `json:"rules"`
	}
	if err := hjson.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse rules file %s: %w", path, err)
	}
	if len(doc.Rules) == 0 {
		return nil, fmt.Errorf("rules file %s has no rules", path)
	}

	rules := make([]Rule, len(doc.Rules))
	for i, r := range doc.Rules {
		rules[i] = Rule{Category: r.Category, Keywords: r.Keywords}
	}
	return NewTable(rules), nil
}

// Categorize returns the category of the first rule with a keyword contained
// in the description, or Other. Deterministic: same description, same result.
func (t *Table) Categorize(description string) string {
	desc := strings.ToLower(description)
	for _, rule := range t.rules {
		for _, kw := range rule.Keywords {
			if strings.Contains(desc, kw) {
				return rule.Category
			}
		}
	}
	return Other
}

// Categories lists every category the table can assign, including Other.
func (t *Table) Categories() []string {
	out := make([]string, 0, len(t.rules)+1)
	for _, r := range t.rules {
		out = append(out, r.Category)
	}
	return append(out, Other)
}

// Valid reports whether a label is one of the table's categories. Used to
// validate manual reassignments and model suggestions.
func (t *Table) Valid(label string) bool {
	for _, c := range t.Categories() {
		if c == label {
			return true
		}
	}
	return false
}
