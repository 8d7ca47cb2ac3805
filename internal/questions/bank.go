// Package questions holds the immutable question banks used by the guided flows.
package questions

import (
	"fmt"
	"strings"
)

// Bank is an ordered, immutable catalog of questions.
type Bank struct {
	items []Question
	byID  map[string]int
}

// New builds a bank from the given questions, keeping their order.
// Question ids must be unique and non-empty.
func New(items []Question) (*Bank, error) {
	b := &Bank{
		items: make([]Question, 0, len(items)),
		byID:  make(map[string]int, len(items)),
	}

	for i, q := range items {
		id := strings.TrimSpace(q.ID)
		if id == "" {
			return nil, fmt.Errorf("question #%d: id is required", i+1)
		}
		if _, ok := b.byID[id]; ok {
			return nil, fmt.Errorf("question %q: duplicate id", id)
		}

		q.ID = id
		b.byID[id] = len(b.items)
		b.items = append(b.items, q.clone())
	}

	return b, nil
}

func (b *Bank) Len() int {
	if b == nil {
		return 0
	}
	return len(b.items)
}

// All returns a copy of every question in bank order.
func (b *Bank) All() []Question {
	return b.Filter(Filter{})
}

// Get looks a question up by id.
func (b *Bank) Get(id string) (Question, bool) {
	if b == nil {
		return Question{}, false
	}
	idx, ok := b.byID[id]
	if !ok {
		return Question{}, false
	}
	return b.items[idx].clone(), true
}

// Filter returns a fresh ordered slice of the questions matching f.
// The bank itself is never modified.
func (b *Bank) Filter(f Filter) []Question {
	if b == nil {
		return nil
	}

	result := make([]Question, 0, len(b.items))
	for _, q := range b.items {
		if f.Matches(q) {
			result = append(result, q.clone())
		}
	}
	return result
}

// Technologies lists the distinct technologies available for a level,
// in the order they first appear in the bank.
func (b *Bank) Technologies(level Level) []Technology {
	if b == nil {
		return nil
	}

	seen := make(map[Technology]struct{})
	techs := make([]Technology, 0)
	for _, q := range b.items {
		if level != "" && q.Level != level {
			continue
		}
		if q.Technology == "" {
			continue
		}
		if _, ok := seen[q.Technology]; ok {
			continue
		}
		seen[q.Technology] = struct{}{}
		techs = append(techs, q.Technology)
	}
	return techs
}
