// Package render projects CV wizard answers into a terminal preview and a
// paginated PDF document.
package render

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/spigell/jobcoach/internal/flow"
)

// Question ids of the CV bank feeding each document field.
const (
	NameID       = "b_html_2"
	ContactID    = "b_html_1"
	ObjectiveID  = "b_html_3"
	SkillsID     = "b_gen_1"
	ExperienceID = "b_gen_2"
	EducationID  = "b_gen_3"
	LanguagesID  = "b_gen_4"
	InterestsID  = "b_gen_5"
)

// Section titles in document order.
const (
	TitleObjective      = "Career Objective"
	TitleQualifications = "Core Qualifications"
	TitleExperience     = "Work Experience"
	TitleEducation      = "Education"
	TitleLanguages      = "Languages"
	TitleInterests      = "Interests"
	TitleAdditional     = flow.AdditionalInfoCategory
)

const listDelimiter = ","

// Entry is one optional section collected through the wizard follow-ups.
type Entry struct {
	Label string
	Text  string
}

// CV is the document model derived from the wizard answers.
type CV struct {
	Name       string
	Contact    string
	Objective  string
	Skills     []string
	Experience []string
	Education  []string
	Languages  []string
	Interests  []string
	Additional []Entry
}

// Section is a titled block of the document: a paragraph, bullet items or labelled entries.
type Section struct {
	Title     string
	Paragraph string
	Items     []string
	Entries   []Entry
}

func (s Section) empty() bool {
	return s.Paragraph == "" && len(s.Items) == 0 && len(s.Entries) == 0
}

// BuildCV maps answers onto the document fields. A later answer to the same
// question wins.
func BuildCV(answers []flow.Answer) CV {
	var cv CV
	for _, a := range answers {
		response := strings.TrimSpace(a.Response)
		id := a.Question.ID

		if strings.HasPrefix(id, flow.OptionalIDPrefix) {
			if response == "" {
				continue
			}
			cv.Additional = append(cv.Additional, Entry{
				Label: Capitalize(strings.TrimPrefix(id, flow.OptionalIDPrefix)),
				Text:  response,
			})
			continue
		}

		switch id {
		case NameID:
			cv.Name = response
		case ContactID:
			cv.Contact = response
		case ObjectiveID:
			cv.Objective = response
		case SkillsID:
			cv.Skills = SplitList(response)
		case ExperienceID:
			cv.Experience = SplitList(response)
		case EducationID:
			cv.Education = SplitList(response)
		case LanguagesID:
			cv.Languages = SplitList(response)
		case InterestsID:
			cv.Interests = SplitList(response)
		}
	}
	return cv
}

// Sections returns the non-empty sections in their fixed order. Additional Info
// is present only when optional answers exist.
func (cv CV) Sections() []Section {
	all := []Section{
		{Title: TitleObjective, Paragraph: cv.Objective},
		{Title: TitleQualifications, Items: cv.Skills},
		{Title: TitleExperience, Items: cv.Experience},
		{Title: TitleEducation, Items: cv.Education},
		{Title: TitleLanguages, Items: cv.Languages},
		{Title: TitleInterests, Items: cv.Interests},
		{Title: TitleAdditional, Entries: cv.Additional},
	}

	sections := make([]Section, 0, len(all))
	for _, s := range all {
		if s.empty() {
			continue
		}
		sections = append(sections, s)
	}
	return sections
}

// SplitList splits a raw response on commas, trimming and capitalizing each
// item and dropping empty ones.
func SplitList(raw string) []string {
	parts := strings.Split(raw, listDelimiter)
	items := make([]string, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		items = append(items, Capitalize(part))
	}
	return items
}

// Capitalize upper-cases the first letter. A single word is also lower-cased
// after it ("JavaScript" becomes "Javascript"); phrases keep the rest as typed
// so names such as "Acme Corp" survive.
func Capitalize(s string) string {
	if s == "" {
		return s
	}
	first, size := utf8.DecodeRuneInString(s)
	rest := s[size:]
	if !strings.ContainsFunc(rest, unicode.IsSpace) {
		rest = strings.ToLower(rest)
	}
	return string(unicode.ToUpper(first)) + rest
}
