package hypothesis

import (
	"context"
)

// MockLLMClient replays queued responses in order, then repeats the last
// one. Prompts records every call for assertion.
type MockLLMClient struct {
	ResponseQueue []string
	Prompts       []string
	Err           error
}

func (m *MockLLMClient) Generate(ctx context.Context, prompt string) (string, error) {
	m.Prompts = append(m.Prompts, prompt)
	if m.Err != nil {
		return "", m.Err
	}
	if len(m.ResponseQueue) == 0 {
		return "", nil
	}
	response := m.ResponseQueue[0]
	if len(m.ResponseQueue) > 1 {
		m.ResponseQueue = m.ResponseQueue[1:]
	}
	return response, nil
}
