package flow

import (
	"fmt"
	"strings"

	"github.com/spigell/jobcoach/internal/questions"
)

const (
	// AdditionalInfoCategory is the category of every optional-section answer.
	AdditionalInfoCategory = "Additional Info"
	// OptionalIDPrefix prefixes the id of synthetic optional-section questions.
	OptionalIDPrefix = "optional_"

	confirmID     = "optional_confirm"
	confirmPrompt = "Would you like to add another optional section? (yes/no)"
)

// OptionalCategory is a named supplementary CV section and its follow-up question.
type OptionalCategory struct {
	Label  string
	Prompt string
}

// WizardConfig describes the branching rules of the CV wizard.
type WizardConfig struct {
	// PickerID is the question that offers optional sections.
	PickerID string
	// RequiredIDs lists questions that can never be skipped.
	RequiredIDs []string
	// Categories are matched in order; the first label found in a response wins.
	Categories []OptionalCategory
}

// DefaultWizardConfig matches the embedded CV bank.
func DefaultWizardConfig() WizardConfig {
	return WizardConfig{
		PickerID:    "b_opt_1",
		RequiredIDs: []string{"b_html_2", "b_html_1", "b_gen_1"},
		Categories: []OptionalCategory{
			{Label: "Internships", Prompt: "Describe your internships (company, role, dates)."},
			{Label: "Certifications", Prompt: "Which certifications do you hold? Add the issuer and the year."},
			{Label: "Projects", Prompt: "Describe the personal or open source projects you are proud of."},
			{Label: "Volunteering", Prompt: "Describe your volunteering experience."},
			{Label: "Awards", Prompt: "Which awards or distinctions have you received?"},
		},
	}
}

// Wizard is the CV question flow with its optional-section branch.
type Wizard struct {
	cfg       WizardConfig
	required  map[string]struct{}
	questions []questions.Question
	step      int
	state     State
	pending   *OptionalCategory
	answers   []Answer
}

// NewWizard builds a wizard over every question of the bank.
func NewWizard(bank *questions.Bank, cfg WizardConfig) (*Wizard, error) {
	if bank == nil {
		return nil, fmt.Errorf("question bank is required")
	}
	if len(cfg.Categories) == 0 {
		return nil, fmt.Errorf("at least one optional category is required")
	}

	w := &Wizard{
		cfg:       cfg,
		required:  make(map[string]struct{}, len(cfg.RequiredIDs)),
		questions: bank.All(),
	}
	for _, id := range cfg.RequiredIDs {
		w.required[id] = struct{}{}
	}
	w.Restart()

	return w, nil
}

func (w *Wizard) State() State { return w.state }

func (w *Wizard) Step() int { return w.step }

func (w *Wizard) Total() int { return len(w.questions) }

// PendingCategory is the optional section being filled in, if any.
func (w *Wizard) PendingCategory() (OptionalCategory, bool) {
	if w.pending == nil {
		return OptionalCategory{}, false
	}
	return *w.pending, true
}

// Categories returns the optional section labels in match order.
func (w *Wizard) Categories() []string {
	labels := make([]string, 0, len(w.cfg.Categories))
	for _, c := range w.cfg.Categories {
		labels = append(labels, c.Label)
	}
	return labels
}

// IsPicker reports whether q is the optional-section picker.
func (w *Wizard) IsPicker(q questions.Question) bool {
	return q.ID == w.cfg.PickerID
}

// IsRequired reports whether q must be answered.
func (w *Wizard) IsRequired(q questions.Question) bool {
	_, ok := w.required[q.ID]
	return ok
}

// Current returns what the wizard presents next.
func (w *Wizard) Current() (Prompt, bool) {
	switch w.state {
	case Linear:
		return Prompt{Kind: StaticPrompt, Question: w.questions[w.step]}, true
	case AwaitingExtra:
		return Prompt{Kind: ExtraPrompt, Question: extraQuestion(*w.pending), Category: w.pending.Label}, true
	case AwaitingConfirmation:
		return Prompt{Kind: ConfirmPrompt, Question: questions.Question{
			ID:       confirmID,
			Prompt:   confirmPrompt,
			Category: AdditionalInfoCategory,
		}}, true
	default:
		return Prompt{}, false
	}
}

func extraQuestion(c OptionalCategory) questions.Question {
	return questions.Question{
		ID:       OptionalIDPrefix + strings.ToLower(c.Label),
		Prompt:   c.Prompt,
		Category: AdditionalInfoCategory,
	}
}

// MatchCategory finds the first optional category whose label appears in response.
func (w *Wizard) MatchCategory(response string) (OptionalCategory, bool) {
	lower := strings.ToLower(response)
	for _, c := range w.cfg.Categories {
		if strings.Contains(lower, strings.ToLower(c.Label)) {
			return c, true
		}
	}
	return OptionalCategory{}, false
}

// ParseYesNo accepts exactly "yes" or "no", ignoring case and surrounding space.
func ParseYesNo(response string) (yes bool, ok bool) {
	switch strings.ToLower(strings.TrimSpace(response)) {
	case "yes":
		return true, true
	case "no":
		return false, true
	default:
		return false, false
	}
}

// CanSubmit is the validation gate for Submit.
func (w *Wizard) CanSubmit(response string) bool {
	if strings.TrimSpace(response) == "" {
		return false
	}

	switch w.state {
	case Linear:
		if w.IsPicker(w.questions[w.step]) {
			_, ok := w.MatchCategory(response)
			return ok
		}
		return true
	case AwaitingExtra:
		return true
	case AwaitingConfirmation:
		_, ok := ParseYesNo(response)
		return ok
	default:
		return false
	}
}

// Submit applies response to the current prompt. It returns the recorded answer,
// or nil when the transition records none (picker selection, confirmation).
func (w *Wizard) Submit(response string) (*Answer, error) {
	if w.state == Completed {
		return nil, ErrCompleted
	}
	if !w.CanSubmit(response) {
		return nil, ErrInputRejected
	}

	switch w.state {
	case Linear:
		q := w.questions[w.step]
		if w.IsPicker(q) {
			category, _ := w.MatchCategory(response)
			w.pending = &category
			w.state = AwaitingExtra
			return nil, nil
		}
		answer := w.record(q, response)
		w.advance()
		return answer, nil

	case AwaitingExtra:
		answer := w.record(extraQuestion(*w.pending), response)
		w.state = AwaitingConfirmation
		return answer, nil

	case AwaitingConfirmation:
		yes, _ := ParseYesNo(response)
		w.pending = nil
		if yes {
			w.state = Linear
			return nil, nil
		}
		w.advance()
		return nil, nil
	}

	return nil, ErrInputRejected
}

// CanSkip reports whether the current prompt may be skipped.
func (w *Wizard) CanSkip() bool {
	if w.state != Linear {
		return false
	}
	return !w.IsRequired(w.questions[w.step])
}

// Skip advances past a non-required question without recording an answer.
func (w *Wizard) Skip() error {
	if w.state == Completed {
		return ErrCompleted
	}
	if !w.CanSkip() {
		return ErrSkipNotAllowed
	}
	w.advance()
	return nil
}

// Restart clears every answer and returns to the first question.
func (w *Wizard) Restart() {
	w.step = 0
	w.pending = nil
	w.answers = nil
	w.state = Linear
	if len(w.questions) == 0 {
		w.state = Completed
	}
}

// Answers returns a copy of the recorded answers in presentation order.
func (w *Wizard) Answers() []Answer {
	return append([]Answer(nil), w.answers...)
}

func (w *Wizard) record(q questions.Question, response string) *Answer {
	w.answers = append(w.answers, Answer{Question: q, Response: response})
	answer := w.answers[len(w.answers)-1]
	return &answer
}

func (w *Wizard) advance() {
	w.step++
	w.state = Linear
	if w.step >= len(w.questions) {
		w.state = Completed
	}
}
