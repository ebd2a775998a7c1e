package utils

import (
	"encoding/json"
	"testing"
)

func TestRepairJSON(t *testing.T) {
	cases := []struct {
		name  string
		input string
	}{
		{"trailing comma", `{"a": "b",}`},
		{"fenced payload", "```json\n{\"a\": \"b\"}\n```"},
		{"single quotes", `{'a': 'b'}`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			repaired, err := RepairJSON(tc.input)
			if err != nil {
				t.Fatalf("repair failed: %v", err)
			}
			var out map[string]string
			if err := json.Unmarshal([]byte(repaired), &out); err != nil {
				t.Fatalf("repaired output still invalid: %v\n%s", err, repaired)
			}
			if out["a"] != "b" {
				t.Errorf("got %v", out)
			}
		})
	}
}

func TestCleanAnswer(t *testing.T) {
	cases := []struct {
		input string
		want  string
	}{
		{"```markdown\n# Ответ\nтекст\n```", "# Ответ\nтекст"},
		{"```\nтекст\n```", "текст"},
		{"обычный ответ", "обычный ответ"},
		{"  с пробелами  ", "с пробелами"},
	}
	for _, tc := range cases {
		if got := CleanAnswer(tc.input); got != tc.want {
			t.Errorf("CleanAnswer(%q) = %q, want %q", tc.input, got, tc.want)
		}
	}
}

func TestValidateMarkdown(t *testing.T) {
	if !ValidateMarkdown("# Заголовок\n\nАбзац со **смыслом**.") {
		t.Error("plain markdown should validate")
	}
	if !ValidateMarkdown("") {
		t.Error("empty input still parses to a document")
	}
}
