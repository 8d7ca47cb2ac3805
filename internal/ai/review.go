// Package ai defines the optional AI review of completed interviews.
package ai

import (
	"context"

	"github.com/spigell/jobcoach/internal/flow"
)

// AnswerReview is the advice for a single answer, Index being 1-based.
type AnswerReview struct {
	Index      int
	Suggestion string
}

// Review is the coach feedback for a completed interview.
type Review struct {
	Summary      string
	Strengths    []string
	Improvements []string
	Answers      []AnswerReview
	Raw          string
}

// Reviewer produces coach feedback for interview results.
type Reviewer interface {
	Review(ctx context.Context, results flow.Results) (*Review, error)
}
