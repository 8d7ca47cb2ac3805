package render

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spigell/jobcoach/internal/flow"
	"github.com/spigell/jobcoach/internal/questions"
)

func answer(id, response string) flow.Answer {
	return flow.Answer{Question: questions.Question{ID: id}, Response: response}
}

func fullAnswers() []flow.Answer {
	return []flow.Answer{
		answer(NameID, "Jane Doe"),
		answer(ContactID, "jane@example.com | +33 6 00 00 00 00"),
		answer(ObjectiveID, "Frontend developer looking for a product team."),
		answer(SkillsID, "JavaScript, Python"),
		answer(ExperienceID, "Acme 2020-2023, Globex 2018-2020"),
		answer(EducationID, "MSc Computer Science"),
		answer(LanguagesID, "english, FRENCH"),
		answer(InterestsID, "climbing, , chess"),
	}
}

func TestBuildCV(t *testing.T) {
	t.Parallel()

	answers := append(fullAnswers(), answer("optional_projects", "Open source PDF toolkit"))
	cv := BuildCV(answers)

	assert.Equal(t, "Jane Doe", cv.Name)
	assert.Equal(t, "jane@example.com | +33 6 00 00 00 00", cv.Contact)
	assert.Equal(t, []string{"Javascript", "Python"}, cv.Skills)
	assert.Equal(t, []string{"Acme 2020-2023", "Globex 2018-2020"}, cv.Experience)
	assert.Equal(t, []string{"MSc Computer Science"}, cv.Education)
	assert.Equal(t, []string{"English", "French"}, cv.Languages)
	assert.Equal(t, []string{"Climbing", "Chess"}, cv.Interests)
	assert.Equal(t, []Entry{{Label: "Projects", Text: "Open source PDF toolkit"}}, cv.Additional)
}

func TestSectionsOrder(t *testing.T) {
	t.Parallel()

	titles := func(cv CV) []string {
		var out []string
		for _, s := range cv.Sections() {
			out = append(out, s.Title)
		}
		return out
	}

	base := titles(BuildCV(fullAnswers()))
	assert.Equal(t, []string{
		TitleObjective, TitleQualifications, TitleExperience,
		TitleEducation, TitleLanguages, TitleInterests,
	}, base)

	withOptional := titles(BuildCV(append(fullAnswers(), answer("optional_awards", "Hackathon winner"))))
	assert.Equal(t, append(base, TitleAdditional), withOptional)

	sparse := titles(BuildCV([]flow.Answer{answer(NameID, "Jane"), answer(LanguagesID, "Spanish")}))
	assert.Equal(t, []string{TitleLanguages}, sparse)
}

func TestSplitList(t *testing.T) {
	t.Parallel()

	tests := []struct {
		raw  string
		want []string
	}{
		{"JavaScript, Python", []string{"Javascript", "Python"}},
		{"  go ,, RUST,", []string{"Go", "Rust"}},
		{"", []string{}},
		{"élan vital", []string{"Élan vital"}},
		{"frontend developer at Acme Corp 2021-2023, REACT", []string{"Frontend developer at Acme Corp 2021-2023", "React"}},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			require.Equal(t, tt.want, SplitList(tt.raw))
		})
	}
}

func TestCapitalize(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "Javascript", Capitalize("JavaScript"))
	assert.Equal(t, "Python", Capitalize("python"))
	assert.Equal(t, "", Capitalize(""))
	assert.Equal(t, "MSc Computer Science", Capitalize("MSc Computer Science"))
	assert.Equal(t, "Software engineer at Globex", Capitalize("software engineer at Globex"))
}
