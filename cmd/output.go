package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"github.com/spigell/jobcoach/internal/ai"
	"github.com/spigell/jobcoach/internal/evaluator"
	"github.com/spigell/jobcoach/internal/flow"
)

type palette struct {
	heading *color.Color
	muted   *color.Color
	good    *color.Color
	bad     *color.Color
}

func newPalette(styled bool) *palette {
	p := &palette{
		heading: color.New(color.Bold, color.FgCyan),
		muted:   color.New(color.Faint),
		good:    color.New(color.FgGreen),
		bad:     color.New(color.FgYellow),
	}
	for _, c := range []*color.Color{p.heading, p.muted, p.good, p.bad} {
		if styled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return p
}

func (p *palette) score(score float64) string {
	text := fmt.Sprintf("%s/%s", evaluator.FormatScore(score), evaluator.FormatScore(evaluator.MaxScore))
	if score >= evaluator.GoodThreshold {
		return p.good.Sprint(text)
	}
	return p.bad.Sprint(text)
}

func printFeedback(w io.Writer, p *palette, answer flow.Answer) {
	fmt.Fprintf(w, "Score: %s\n", p.score(answer.Score))
	if answer.Feedback != "" {
		fmt.Fprintln(w, answer.Feedback)
	}
}

func printResults(w io.Writer, p *palette, res flow.Results) {
	fmt.Fprintln(w)
	fmt.Fprintln(w, p.heading.Sprint("Interview completed"))
	fmt.Fprintf(w, "Total: %s/%s (%d%%)  Average: %s  Time: %s\n",
		evaluator.FormatScore(res.TotalScore),
		evaluator.FormatScore(res.MaxScore),
		res.Percentage,
		evaluator.FormatScore(res.Average),
		flow.FormatElapsed(res.Elapsed),
	)
	fmt.Fprintln(w, res.Verdict())

	if len(res.Answers) == 0 {
		fmt.Fprintln(w, p.muted.Sprint("No answers were recorded."))
		return
	}

	for i, a := range res.Answers {
		fmt.Fprintf(w, "\n%d. %s\n", i+1, a.Question.Prompt)
		fmt.Fprintf(w, "   Your answer: %s\n", a.Response)
		fmt.Fprintf(w, "   Score: %s\n", p.score(a.Score))
		if a.Feedback != "" {
			fmt.Fprintf(w, "   %s\n", p.muted.Sprint(a.Feedback))
		}
	}
}

func printReview(w io.Writer, p *palette, review *ai.Review) {
	fmt.Fprintln(w)
	fmt.Fprintln(w, p.heading.Sprint("Coach review"))
	if review.Summary != "" {
		fmt.Fprintln(w, review.Summary)
	}
	printList(w, p, "Strengths", review.Strengths)
	printList(w, p, "To improve", review.Improvements)
	for _, a := range review.Answers {
		fmt.Fprintf(w, "Q%d: %s\n", a.Index, a.Suggestion)
	}
}

func printList(w io.Writer, p *palette, title string, items []string) {
	if len(items) == 0 {
		return
	}
	fmt.Fprintln(w, p.muted.Sprint(title+":"))
	fmt.Fprintln(w, "  - "+strings.Join(items, "\n  - "))
}
