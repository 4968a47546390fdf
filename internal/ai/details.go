package ai

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// ErrNoOutput means the model returned nothing that conforms to the
// requested output schema. The caller surfaces it as a user-facing
// failure; there is no fallback generation.
var ErrNoOutput = errors.New("the model could not generate project details from the prompt")

// ProjectDetails is the structured output contract for AI-assisted
// project creation. Status carries the raw model value; the projects
// package normalizes it onto its enum.
type ProjectDetails struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Status      string `json:"status"`
}

// ParseProjectDetails decodes the model's JSON answer and checks it
// carries at least a usable name.
func ParseProjectDetails(raw string) (*ProjectDetails, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, ErrNoOutput
	}

	var out ProjectDetails
	if err := json.Unmarshal([]byte(raw), &out); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNoOutput, err)
	}
	if strings.TrimSpace(out.Name) == "" {
		return nil, ErrNoOutput
	}
	return &out, nil
}
