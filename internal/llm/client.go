package llm

import (
	"context"
)

// Client is the single generation capability used by the pipeline. One
// implementation is chosen at composition time and shared read-only across
// concurrent callers.
type Client interface {
	Generate(ctx context.Context, prompt string) (string, error)
}
