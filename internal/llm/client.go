package llm

import (
	"context"
)

// Generator is the generative-text capability. Both the prescription
// structuring step and the interaction analysis use it with different
// prompts.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}
