package common

import (
	"context"
	"errors"
	"fmt"
)

// Generator is the minimal generation surface needed for the local reformat
// attempt, satisfied by llm.Client.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

const reformatPrompt = `The following text should be a valid JSON object but is not. Fix it and return ONLY the corrected JSON object, no commentary.

TEXT:
%s`

// ParseOrReformat parses a generation response, and on a format failure asks
// the generator once to reformat its own output before escalating. Transport
// failures during the reformat call are returned as-is; they are not format
// errors.
func ParseOrReformat[T any](ctx context.Context, g Generator, response string) (T, error) {
	result, err := ParseJSON[T](response)
	if err == nil {
		return result, nil
	}

	var formatErr *GenerationFormatError
	if !errors.As(err, &formatErr) || g == nil {
		return result, err
	}

	fixed, genErr := g.Generate(ctx, fmt.Sprintf(reformatPrompt, response))
	if genErr != nil {
		var zero T
		return zero, fmt.Errorf("reformat attempt failed: %w", genErr)
	}

	return ParseJSON[T](fixed)
}
