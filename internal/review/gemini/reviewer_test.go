package gemini

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"go.uber.org/zap"
)

type stubGenerator struct {
	responses  []string
	errs       []error
	calls      int
	lastPrompt string
}

func (s *stubGenerator) GenerateContent(_ context.Context, prompt string) (string, error) {
	s.lastPrompt = prompt
	i := s.calls
	s.calls++

	if i < len(s.errs) && s.errs[i] != nil {
		return "", s.errs[i]
	}
	if i < len(s.responses) {
		return s.responses[i], nil
	}
	return "", errors.New("no scripted response")
}

const wellFormedResponse = `Summary: Strong backend engineer with tier-1 experience.
Score: 8
Issues: None
Follow-Ups:
- Confirm notice period
- Verify LinkedIn profile`

func newTestReviewer(stub *stubGenerator, maxRetries int) *Reviewer {
	r := NewReviewer(stub, maxRetries, 0, zap.NewNop())
	r.backoff = time.Millisecond
	return r
}

func TestReviewerParsesWellFormedResponse(t *testing.T) {
	stub := &stubGenerator{responses: []string{wellFormedResponse}}
	reviewer := newTestReviewer(stub, 3)

	result, err := reviewer.Review(context.Background(), `{"personal":{"name":"Jane"}}`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if result.Summary != "Strong backend engineer with tier-1 experience." {
		t.Fatalf("unexpected summary: %q", result.Summary)
	}
	if result.Score != 8 {
		t.Fatalf("expected score 8, got %d", result.Score)
	}
	if result.Issues != "None" {
		t.Fatalf("unexpected issues: %q", result.Issues)
	}
	if !strings.Contains(result.FollowUps, "Confirm notice period") ||
		!strings.Contains(result.FollowUps, "Verify LinkedIn profile") {
		t.Fatalf("follow-ups must capture all trailing lines: %q", result.FollowUps)
	}

	if !strings.Contains(stub.lastPrompt, `{"personal":{"name":"Jane"}}`) {
		t.Fatalf("prompt must embed the serialized profile")
	}
	if !strings.Contains(stub.lastPrompt, "Summary: <text>") {
		t.Fatalf("prompt must carry the response template")
	}
}

func TestReviewerRetriesThenSucceeds(t *testing.T) {
	stub := &stubGenerator{
		errs:      []error{errors.New("transient"), errors.New("transient")},
		responses: []string{"", "", wellFormedResponse},
	}
	reviewer := newTestReviewer(stub, 3)

	result, err := reviewer.Review(context.Background(), "{}")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if stub.calls != 3 {
		t.Fatalf("expected 3 attempts, got %d", stub.calls)
	}
	if result.Score != 8 {
		t.Fatalf("expected score 8, got %d", result.Score)
	}
}

func TestReviewerExhaustsAttempts(t *testing.T) {
	stub := &stubGenerator{
		errs: []error{errors.New("down"), errors.New("down"), errors.New("down")},
	}
	reviewer := newTestReviewer(stub, 3)

	result, err := reviewer.Review(context.Background(), "{}")
	if result != nil {
		t.Fatalf("expected no result on exhaustion")
	}
	if !errors.Is(err, ErrAttemptsExhausted) {
		t.Fatalf("expected ErrAttemptsExhausted, got %v", err)
	}
	if stub.calls != 3 {
		t.Fatalf("expected 3 attempts, got %d", stub.calls)
	}
}

func TestReviewerCanceledContextStopsRetrying(t *testing.T) {
	stub := &stubGenerator{
		errs: []error{errors.New("down"), errors.New("down"), errors.New("down")},
	}
	reviewer := newTestReviewer(stub, 3)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := reviewer.Review(ctx, "{}")
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if stub.calls != 1 {
		t.Fatalf("expected a single attempt before the canceled backoff, got %d", stub.calls)
	}
}

func TestParseResponseMissingScore(t *testing.T) {
	raw := "Summary: Looks fine.\nIssues: None\nFollow-Ups:\n- none"
	if _, err := parseResponse(raw); err == nil {
		t.Fatalf("expected error for response without Score line")
	}
}

func TestParseResponseNonIntegerScore(t *testing.T) {
	raw := "Summary: Looks fine.\nScore: excellent\nFollow-Ups:\n- none"
	if _, err := parseResponse(raw); err == nil {
		t.Fatalf("expected error for non-integer score")
	}
}

func TestParseResponseToleratesIndentedLabels(t *testing.T) {
	raw := "  Summary: Indented.\n\tScore: 5\nFollow-Ups:\n- ask"
	result, err := parseResponse(raw)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Summary != "Indented." || result.Score != 5 {
		t.Fatalf("unexpected result: %+v", result)
	}
}
