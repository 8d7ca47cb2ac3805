// Package flow drives the guided question sequences: the scored interview and the
// branching CV wizard. Controllers own their cursor and answers and expect a single
// caller; they are not safe for concurrent mutation.
package flow

import (
	"errors"

	"github.com/spigell/jobcoach/internal/questions"
)

var (
	// ErrInputRejected is returned when a submission does not pass validation.
	ErrInputRejected = errors.New("input rejected")
	// ErrCompleted is returned when the flow has no current question.
	ErrCompleted = errors.New("flow completed")
	// ErrSkipNotAllowed is returned when the current prompt cannot be skipped.
	ErrSkipNotAllowed = errors.New("skip not allowed")
)

// State is the position of a controller in its state machine. The interview only
// uses InProgress and Completed.
type State int

const (
	InProgress State = iota
	AwaitingExtra
	AwaitingConfirmation
	Completed
)

// Linear is the wizard's name for InProgress: it presents bank questions in order.
const Linear = InProgress

func (s State) String() string {
	switch s {
	case InProgress:
		return "linear"
	case AwaitingExtra:
		return "awaiting_extra"
	case AwaitingConfirmation:
		return "awaiting_confirmation"
	case Completed:
		return "completed"
	default:
		return "unknown"
	}
}

// Answer is a recorded response. Answers are append-only.
type Answer struct {
	Question questions.Question
	Response string
	Feedback string
	Score    float64
}

// PromptKind tags what a controller currently presents.
type PromptKind int

const (
	// StaticPrompt presents a question from the bank.
	StaticPrompt PromptKind = iota
	// ExtraPrompt presents a synthetic follow-up question for an optional section.
	ExtraPrompt
	// ConfirmPrompt asks whether another optional section should be added.
	ConfirmPrompt
)

func (k PromptKind) String() string {
	switch k {
	case StaticPrompt:
		return "static"
	case ExtraPrompt:
		return "extra"
	case ConfirmPrompt:
		return "confirm"
	default:
		return "unknown"
	}
}

// Prompt is the item a controller presents next.
type Prompt struct {
	Kind     PromptKind
	Question questions.Question
	// Category is set for ExtraPrompt.
	Category string
}
