package client

import (
	"context"
	"errors"
	"testing"

	gobreaker "github.com/sony/gobreaker/v2"
	"google.golang.org/genai"

	"seedrec/internal/domain/entity"
	"seedrec/internal/domain/repository"
)

type fakeModels struct {
	text   string
	err    error
	calls  int
	model  string
	config *genai.GenerateContentConfig
}

func (f *fakeModels) GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error) {
	f.calls++
	f.model = model
	f.config = config
	if f.err != nil {
		return nil, f.err
	}
	return &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{{
			Content: &genai.Content{Role: "model", Parts: []*genai.Part{{Text: f.text}}},
		}},
		UsageMetadata: &genai.GenerateContentResponseUsageMetadata{TotalTokenCount: 321},
	}, nil
}

var testOpts = repository.GenerationOptions{Temperature: 0.4, TopP: 0.8, TopK: 40, MaxOutputTokens: 8192}

func TestGeminiClient_Generate(t *testing.T) {
	fake := &fakeModels{text: "  {\"items\":[]}\n"}
	g := newGeminiClient(fake, "gemini-2.5-flash")

	resp, err := g.Generate(context.Background(), "recommend", testOpts)
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	if resp.Content != `{"items":[]}` {
		t.Errorf("content = %q", resp.Content)
	}
	if resp.Model != "gemini-2.5-flash" || resp.TokenCount != 321 {
		t.Errorf("resp = %+v", resp)
	}
	if fake.model != "gemini-2.5-flash" {
		t.Errorf("model = %q", fake.model)
	}
	if *fake.config.Temperature != 0.4 || *fake.config.TopK != 40 || fake.config.MaxOutputTokens != 8192 {
		t.Errorf("config = %+v", fake.config)
	}
}

func TestGeminiClient_EmptyText(t *testing.T) {
	g := newGeminiClient(&fakeModels{text: "   "}, "m")
	if _, err := g.Generate(context.Background(), "p", testOpts); !errors.Is(err, entity.ErrEmptyResponse) {
		t.Fatalf("error = %v, want ErrEmptyResponse", err)
	}
}

func TestGeminiClient_BreakerOpens(t *testing.T) {
	upstream := errors.New("503 unavailable")
	fake := &fakeModels{err: upstream}
	g := newGeminiClient(fake, "breaker-test")

	for i := 0; i < breakerConsecutiveFailures; i++ {
		if _, err := g.Generate(context.Background(), "p", testOpts); !errors.Is(err, upstream) {
			t.Fatalf("call %d error = %v", i+1, err)
		}
	}
	if g.cb.State() != gobreaker.StateOpen {
		t.Fatalf("state = %v, want open", g.cb.State())
	}

	_, err := g.Generate(context.Background(), "p", testOpts)
	if !errors.Is(err, gobreaker.ErrOpenState) {
		t.Fatalf("error = %v, want ErrOpenState", err)
	}
	if fake.calls != breakerConsecutiveFailures {
		t.Fatalf("upstream calls = %d, want %d", fake.calls, breakerConsecutiveFailures)
	}
}

func TestStateHelpers(t *testing.T) {
	tests := []struct {
		state gobreaker.State
		str   string
		num   float64
	}{
		{gobreaker.StateClosed, "closed", 0},
		{gobreaker.StateHalfOpen, "half-open", 1},
		{gobreaker.StateOpen, "open", 2},
	}
	for _, tt := range tests {
		if got := stateToString(tt.state); got != tt.str {
			t.Errorf("stateToString(%v) = %q, want %q", tt.state, got, tt.str)
		}
		if got := stateToFloat(tt.state); got != tt.num {
			t.Errorf("stateToFloat(%v) = %v, want %v", tt.state, got, tt.num)
		}
	}
}
