// Package review defines the qualitative review contract: an external
// language model reads a serialized profile and returns a structured
// assessment.
package review

import "context"

// Result is the parsed model assessment of one applicant profile.
type Result struct {
	Summary   string
	Score     int
	Issues    string
	FollowUps string
}

// Reviewer evaluates a serialized profile document.
type Reviewer interface {
	Review(ctx context.Context, profileJSON string) (*Result, error)
}
