package utils

import (
	"fmt"

	jsonrepair "github.com/RealAlexandreAI/json-repair"
)

// RepairJSON attempts to fix common JSON errors from LLM outputs: missing
// quotes around keys, single quotes, unclosed brackets, trailing commas,
// markdown code fences around the payload.
func RepairJSON(malformedJSON string) (string, error) {
	repaired, err := jsonrepair.RepairJSON(malformedJSON)
	if err != nil {
		return "", fmt.Errorf("JSON_REPAIR_FAILED: %v", err)
	}
	return repaired, nil
}
