package gemini

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	_ "embed"

	"github.com/talentops/shortlister/internal/logger"
	"github.com/talentops/shortlister/internal/review"
	"github.com/talentops/shortlister/internal/utils"
	"go.uber.org/zap"
)

//go:embed prompt.md
var promptTemplate string

const (
	defaultMaxRetries   = 3
	defaultMaxLogLength = 200
	initialBackoff      = time.Second

	summaryLabel   = "Summary:"
	scoreLabel     = "Score:"
	issuesLabel    = "Issues:"
	followUpsLabel = "Follow-Ups:"
)

// ErrAttemptsExhausted marks a review that failed on transport after every
// retry. The affected applicant is skipped, not the run.
var ErrAttemptsExhausted = errors.New("model attempts exhausted")

type contentGenerator interface {
	GenerateContent(ctx context.Context, prompt string) (string, error)
}

// Reviewer sends applicant profiles to Gemini and parses the fixed-format
// response.
type Reviewer struct {
	generator  contentGenerator
	maxRetries int
	maxLogLen  int
	backoff    time.Duration
	logger     *zap.Logger
}

func NewReviewer(generator contentGenerator, maxRetries, maxLogLength int, log *zap.Logger) *Reviewer {
	if maxRetries <= 0 {
		maxRetries = defaultMaxRetries
	}
	if maxLogLength <= 0 {
		maxLogLength = defaultMaxLogLength
	}

	return &Reviewer{
		generator:  generator,
		maxRetries: maxRetries,
		maxLogLen:  maxLogLength,
		backoff:    initialBackoff,
		logger:     log,
	}
}

// Review builds the fixed-template prompt around the serialized profile,
// calls the model with bounded retries and exponential backoff, and parses
// the labeled response. Transport exhaustion and parse failures are both
// scoped to the single applicant.
func (r *Reviewer) Review(ctx context.Context, profileJSON string) (*review.Result, error) {
	prompt := buildPrompt(profileJSON)

	r.logger.Debug("gemini review request",
		zap.Int("prompt_length", utf8.RuneCountInString(prompt)),
		zap.String("prompt_preview", logger.TruncateForLog(prompt, r.maxLogLen)),
	)

	raw, err := r.generate(ctx, prompt)
	if err != nil {
		return nil, err
	}

	r.logger.Debug("gemini review response",
		zap.Int("response_length", utf8.RuneCountInString(raw)),
		zap.String("response_preview", logger.TruncateForLog(raw, r.maxLogLen)),
	)

	return parseResponse(raw)
}

func (r *Reviewer) generate(ctx context.Context, prompt string) (string, error) {
	backoff := r.backoff

	var lastErr error
	for attempt := 1; attempt <= r.maxRetries; attempt++ {
		raw, err := r.generator.GenerateContent(ctx, prompt)
		if err == nil {
			return raw, nil
		}
		lastErr = err

		r.logger.Warn("model call failed",
			zap.Int("attempt", attempt),
			zap.Int("max_attempts", r.maxRetries),
			zap.Error(err),
		)

		if attempt == r.maxRetries {
			break
		}

		if err := utils.WaitFor(ctx, backoff); err != nil {
			return "", err
		}
		backoff *= 2
	}

	return "", fmt.Errorf("%w after %d attempts: %v", ErrAttemptsExhausted, r.maxRetries, lastErr)
}

func buildPrompt(profileJSON string) string {
	template := promptTemplate
	if strings.TrimSpace(template) == "" {
		template = "Review this applicant profile:\n{{PROFILE_JSON}}"
	}
	return strings.ReplaceAll(template, "{{PROFILE_JSON}}", profileJSON)
}

// parseResponse scans the response lines for the fixed labels. The follow-ups
// field captures every line after its own label line. A missing or
// non-integer Score: line fails the parse for this applicant only.
func parseResponse(raw string) (*review.Result, error) {
	result := &review.Result{}
	scoreSeen := false

	lines := strings.Split(raw, "\n")
	for i, line := range lines {
		trimmed := strings.TrimSpace(line)
		switch {
		case strings.HasPrefix(trimmed, summaryLabel):
			result.Summary = strings.TrimSpace(strings.TrimPrefix(trimmed, summaryLabel))
		case strings.HasPrefix(trimmed, scoreLabel):
			value := strings.TrimSpace(strings.TrimPrefix(trimmed, scoreLabel))
			score, err := strconv.Atoi(value)
			if err != nil {
				return nil, fmt.Errorf("parse score %q: %w", value, err)
			}
			result.Score = score
			scoreSeen = true
		case strings.HasPrefix(trimmed, issuesLabel):
			result.Issues = strings.TrimSpace(strings.TrimPrefix(trimmed, issuesLabel))
		case strings.HasPrefix(trimmed, followUpsLabel):
			result.FollowUps = strings.TrimSpace(strings.Join(lines[i+1:], "\n"))
		}
	}

	if !scoreSeen {
		return nil, errors.New("response missing Score line")
	}

	return result, nil
}
