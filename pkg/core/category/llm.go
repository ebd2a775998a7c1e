package category

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"legacy_m/pkg/core/llm"
	"legacy_m/pkg/core/utils"
)

// Assist asks a model to categorize descriptions the rule table left in
// Other. Best effort: any failure, malformed output or label outside the
// table leaves the description in Other.
type Assist struct {
	table    *Table
	provider llm.Provider
}

func NewAssist(table *Table, provider llm.Provider) *Assist {
	return &Assist{table: table, provider: provider}
}

// Categorize maps description -> category for the given descriptions.
// Descriptions the model could not place are absent from the result.
func (a *Assist) Categorize(ctx context.Context, descriptions []string) (map[string]string, error) {
	if len(descriptions) == 0 {
		return nil, nil
	}

	system := fmt.Sprintf(`You categorize bank transaction descriptions.
Allowed categories: %s.
Output STRICT JSON only: an object mapping each input description to one allowed category.
Do NOT wrap the response in code fences. Do NOT invent categories.`,
		strings.Join(a.table.Categories(), ", "))

	payload, err := json.Marshal(descriptions)
	if err != nil {
		return nil, err
	}

	text, err := a.provider.Complete(ctx, llm.Request{
		System:   system,
		Question: string(payload),
	})
	if err != nil {
		return nil, err
	}

	// Models routinely emit trailing commas or fence-wrapped JSON; repair
	// before unmarshalling.
	repaired, err := utils.RepairJSON(text)
	if err != nil {
		return nil, fmt.Errorf("unrepairable model output: %w", err)
	}

	var raw map[string]string
	if err := json.Unmarshal([]byte(repaired), &raw); err != nil {
		return nil, fmt.Errorf("model output is not a category map: %w", err)
	}

	out := make(map[string]string, len(raw))
	for desc, label := range raw {
		label = strings.ToLower(strings.TrimSpace(label))
		if label == Other || !a.table.Valid(label) {
			continue
		}
		out[desc] = label
	}
	return out, nil
}
