package llm

import (
	"context"
	"sync"

	"github.com/agenthands/tagtally/internal/media"
)

// MockVisionClient returns canned text keyed by instruction. It is safe for
// concurrent use because the pipeline extracts legend and plan in parallel.
type MockVisionClient struct {
	mu sync.Mutex

	Response  string
	Err       error
	Responses map[string]string
	Errors    map[string]error
	// Block makes Extract wait for ctx to end and return its error.
	Block    bool
	Blocking map[string]bool

	Calls []MockCall
}

type MockCall struct {
	Instruction string
	MIMEType    string
}

func (m *MockVisionClient) Extract(ctx context.Context, img *media.Image, instruction string) (string, error) {
	m.mu.Lock()
	m.Calls = append(m.Calls, MockCall{Instruction: instruction, MIMEType: img.MIMEType})
	block := m.Block || m.Blocking[instruction]
	m.mu.Unlock()

	if block {
		<-ctx.Done()
		return "", ctx.Err()
	}

	if err, ok := m.Errors[instruction]; ok {
		return "", err
	}
	if m.Err != nil {
		return "", m.Err
	}
	if resp, ok := m.Responses[instruction]; ok {
		return resp, nil
	}
	return m.Response, nil
}

func (m *MockVisionClient) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Calls)
}

// SequenceVisionClient returns results in call order, for retry tests.
type SequenceVisionClient struct {
	mu      sync.Mutex
	Results []SequenceResult
	calls   int
}

type SequenceResult struct {
	Text string
	Err  error
}

func (s *SequenceVisionClient) Extract(ctx context.Context, img *media.Image, instruction string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.calls
	s.calls++
	if i >= len(s.Results) {
		i = len(s.Results) - 1
	}
	return s.Results[i].Text, s.Results[i].Err
}

func (s *SequenceVisionClient) CallCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls
}
