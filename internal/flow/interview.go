package flow

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/spigell/jobcoach/internal/evaluator"
	"github.com/spigell/jobcoach/internal/questions"
)

// Interview is the linear, scored question flow.
type Interview struct {
	bank      *questions.Bank
	filter    questions.Filter
	questions []questions.Question
	step      int
	answers   []Answer
	watch     *Stopwatch
}

// InterviewOption customises an Interview.
type InterviewOption func(*Interview)

// WithStopwatch replaces the default stopwatch, mostly for tests.
func WithStopwatch(w *Stopwatch) InterviewOption {
	return func(iv *Interview) {
		if w != nil {
			iv.watch = w
		}
	}
}

// NewInterview filters the bank and starts the elapsed-time counter.
func NewInterview(bank *questions.Bank, filter questions.Filter, opts ...InterviewOption) (*Interview, error) {
	if bank == nil {
		return nil, fmt.Errorf("question bank is required")
	}

	iv := &Interview{
		bank:  bank,
		watch: NewStopwatch(nil),
	}
	for _, opt := range opts {
		opt(iv)
	}

	iv.applyFilter(filter)
	iv.watch.Reset()
	if iv.State() == InProgress {
		iv.watch.Start()
	}

	return iv, nil
}

func (iv *Interview) applyFilter(filter questions.Filter) {
	iv.filter = filter
	iv.questions = iv.bank.Filter(filter)
	iv.step = 0
}

// SetFilter recomputes the question list and moves the cursor back to the start.
// Recorded answers are left untouched.
func (iv *Interview) SetFilter(filter questions.Filter) {
	iv.applyFilter(filter)
	if iv.State() == Completed {
		iv.watch.Stop()
		return
	}
	iv.watch.Start()
}

func (iv *Interview) Filter() questions.Filter { return iv.filter }

func (iv *Interview) State() State {
	if iv.step >= len(iv.questions) {
		return Completed
	}
	return InProgress
}

// Step is the zero-based index of the current question.
func (iv *Interview) Step() int { return iv.step }

// Total is the number of questions in the filtered list.
func (iv *Interview) Total() int { return len(iv.questions) }

// Current returns the question being asked.
func (iv *Interview) Current() (questions.Question, bool) {
	if iv.State() == Completed {
		return questions.Question{}, false
	}
	return iv.questions[iv.step], true
}

// CanSubmit reports whether response would be accepted.
func (iv *Interview) CanSubmit(response string) bool {
	return iv.State() == InProgress && strings.TrimSpace(response) != ""
}

// Submit scores response against the current question, records it and advances.
func (iv *Interview) Submit(response string) (Answer, error) {
	q, ok := iv.Current()
	if !ok {
		return Answer{}, ErrCompleted
	}
	if strings.TrimSpace(response) == "" {
		return Answer{}, ErrInputRejected
	}

	result := evaluator.Evaluate(response, q)
	answer := Answer{
		Question: q,
		Response: response,
		Feedback: result.Feedback,
		Score:    result.Score,
	}
	iv.answers = append(iv.answers, answer)
	iv.advance()

	return answer, nil
}

// Skip moves to the next question without recording an answer.
func (iv *Interview) Skip() error {
	if iv.State() == Completed {
		return ErrCompleted
	}
	iv.advance()
	return nil
}

func (iv *Interview) advance() {
	iv.step++
	if iv.State() == Completed {
		iv.watch.Stop()
	}
}

// Restart clears every answer and the elapsed time and starts over.
func (iv *Interview) Restart() {
	iv.step = 0
	iv.answers = nil
	iv.watch.Reset()
	if iv.State() == InProgress {
		iv.watch.Start()
	}
}

// Close stops the elapsed-time counter.
func (iv *Interview) Close() {
	iv.watch.Stop()
}

// Answers returns a copy of the recorded answers in presentation order.
func (iv *Interview) Answers() []Answer {
	return append([]Answer(nil), iv.answers...)
}

func (iv *Interview) Elapsed() time.Duration { return iv.watch.Elapsed() }

// Results summarises the recorded answers.
type Results struct {
	Answers    []Answer
	TotalScore float64
	MaxScore   float64
	Percentage int
	Average    float64
	Elapsed    time.Duration
}

// Results computes the score summary. MaxScore counts every filtered question,
// so skipped questions lower the percentage.
func (iv *Interview) Results() Results {
	r := Results{
		Answers:  iv.Answers(),
		MaxScore: float64(len(iv.questions)) * evaluator.MaxScore,
		Elapsed:  iv.Elapsed(),
	}

	for _, a := range r.Answers {
		r.TotalScore += a.Score
	}
	if r.MaxScore > 0 {
		r.Percentage = int(math.Round(r.TotalScore / r.MaxScore * 100))
	}
	if len(r.Answers) > 0 {
		r.Average = r.TotalScore / float64(len(r.Answers))
	}

	return r
}

// Verdict is the overall comment shown with the results.
func (r Results) Verdict() string {
	switch {
	case r.Percentage >= 80:
		return "Excellent work! Your answers are complete and well structured."
	case r.Percentage >= 60:
		return "Good work! Your structure could still be improved in places."
	default:
		return "Keep practising with concrete examples!"
	}
}
