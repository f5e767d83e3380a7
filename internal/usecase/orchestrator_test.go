package usecase

import (
	"context"
	"errors"
	"strings"
	"testing"

	"seedrec/internal/domain/entity"
)

type stubRecommender struct {
	resp   *entity.RecommendationResponse
	err    error
	called bool
	seeds  []entity.Seed
	count  int
}

func (s *stubRecommender) Generate(ctx context.Context, domain entity.Domain, seeds []entity.Seed, count int) (*entity.RecommendationResponse, error) {
	s.called = true
	s.seeds = seeds
	s.count = count
	return s.resp, s.err
}

func validBody() map[string]any {
	return map[string]any{
		"domain": "songs",
		"seeds":  []any{map[string]any{"title": "  Heroes ", "by": "   "}},
		"count":  3.0,
	}
}

func TestOrchestrator_ValidationErrors(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(map[string]any)
		wantMsg string
	}{
		{"bad domain", func(b map[string]any) { b["domain"] = "books" }, "Domain must be one of"},
		{"missing domain", func(b map[string]any) { delete(b, "domain") }, "Domain must be one of"},
		{"empty seeds", func(b map[string]any) { b["seeds"] = []any{} }, "At least one seed is required"},
		{"seeds not array", func(b map[string]any) { b["seeds"] = "Heroes" }, "Seeds must be an array"},
		{"joined seed errors", func(b map[string]any) {
			b["seeds"] = []any{map[string]any{"title": "A"}, map[string]any{"title": "Ok title", "by": 3.0}}
		}, "Seed 1: Title must be at least 2 characters, Seed 2: By field must be a string"},
		{"fractional count", func(b map[string]any) { b["count"] = 2.5 }, "Count must be an integer"},
		{"count too high", func(b map[string]any) { b["count"] = "21" }, "Count must be at most 20"},
		{"bad domain wins over bad count", func(b map[string]any) { b["domain"] = 1.0; b["count"] = 0.0 }, "Domain must be one of"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stub := &stubRecommender{}
			body := validBody()
			tt.mutate(body)

			_, err := NewOrchestrator(stub).Execute(context.Background(), body)
			var appErr *entity.Error
			if !errors.As(err, &appErr) {
				t.Fatalf("error = %v, want *entity.Error", err)
			}
			if appErr.Code != entity.CodeBadRequest {
				t.Errorf("code = %s, want BAD_REQUEST", appErr.Code)
			}
			if !strings.Contains(appErr.Message, tt.wantMsg) {
				t.Errorf("message = %q, want it to contain %q", appErr.Message, tt.wantMsg)
			}
			if stub.called {
				t.Error("generator called for an invalid request")
			}
		})
	}
}

func TestOrchestrator_PostProcesses(t *testing.T) {
	stub := &stubRecommender{resp: &entity.RecommendationResponse{
		Items: []entity.Recommendation{
			song("Low", "a", 0.2),
			song("High", "b", 0.9),
			song("high", "B", 0.1),
		},
		Meta: entity.Meta{Model: "gemini-2.5-flash", SeedCount: 99, Requested: 99},
	}}

	resp, err := NewOrchestrator(stub).Execute(context.Background(), validBody())
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if len(resp.Items) != 2 || resp.Items[0].Title != "High" || resp.Items[1].Title != "Low" {
		t.Fatalf("items = %+v", resp.Items)
	}
	if resp.Meta.SeedCount != 1 || resp.Meta.Requested != 3 || resp.Meta.Model != "gemini-2.5-flash" {
		t.Fatalf("meta = %+v", resp.Meta)
	}
	if stub.count != 3 {
		t.Errorf("count passed = %d", stub.count)
	}
	if len(stub.seeds) != 1 || stub.seeds[0].Title != "Heroes" || stub.seeds[0].By != "" {
		t.Errorf("seeds passed = %+v", stub.seeds)
	}
}

func TestOrchestrator_UpstreamFailureHidesCause(t *testing.T) {
	cause := errors.New("googleapi: quota exhausted for project 1234")
	stub := &stubRecommender{err: cause}

	_, err := NewOrchestrator(stub).Execute(context.Background(), validBody())
	var appErr *entity.Error
	if !errors.As(err, &appErr) {
		t.Fatalf("error = %v", err)
	}
	if appErr.Code != entity.CodeUpstream {
		t.Errorf("code = %s", appErr.Code)
	}
	if strings.Contains(appErr.Message, "quota") {
		t.Errorf("message leaks cause: %q", appErr.Message)
	}
	if !errors.Is(err, cause) {
		t.Error("cause not wrapped for logging")
	}
}
