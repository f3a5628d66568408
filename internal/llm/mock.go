package llm

import "context"

// MockClient is a canned-response Client for tests. Responses are returned in
// order; once exhausted the last one repeats. If Err is set every call fails
// with it.
type MockClient struct {
	Responses []string
	Err       error

	// Prompts records every prompt the mock received, in call order.
	Prompts []string

	calls int
}

// GenerateContent returns the next canned response.
func (m *MockClient) GenerateContent(_ context.Context, prompt string, _ ModelTier) (string, error) {
	return m.next(prompt)
}

// GenerateJSON returns the next canned response.
func (m *MockClient) GenerateJSON(_ context.Context, prompt string, _ ModelTier) (string, error) {
	return m.next(prompt)
}

// GetModel returns a fixed model name.
func (m *MockClient) GetModel(tier ModelTier) string {
	return "mock-" + string(tier)
}

// Close is a no-op.
func (m *MockClient) Close() error { return nil }

func (m *MockClient) next(prompt string) (string, error) {
	m.Prompts = append(m.Prompts, prompt)
	if m.Err != nil {
		return "", m.Err
	}
	if len(m.Responses) == 0 {
		return "", nil
	}
	idx := m.calls
	if idx >= len(m.Responses) {
		idx = len(m.Responses) - 1
	}
	m.calls++
	return m.Responses[idx], nil
}
