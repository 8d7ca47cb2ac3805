package render

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spigell/jobcoach/internal/flow"
)

func TestPreviewPlain(t *testing.T) {
	t.Parallel()

	answers := []flow.Answer{
		answer(NameID, "Jane Doe"),
		answer(ContactID, "jane@example.com"),
		answer(SkillsID, "JavaScript, Python"),
		answer("optional_awards", "Hackathon winner"),
	}

	var out bytes.Buffer
	require.NoError(t, NewPreview(false).Write(&out, BuildCV(answers), true))

	want := "Jane Doe  [photo]\n" +
		"jane@example.com\n" +
		previewRule + "\n" +
		"\nCORE QUALIFICATIONS\n" +
		"  • Javascript\n" +
		"  • Python\n" +
		"\nADDITIONAL INFO\n" +
		"  Awards\n" +
		"    Hackathon winner\n"
	assert.Equal(t, want, out.String())
}

func TestPreviewStyled(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer
	require.NoError(t, NewPreview(true).Write(&out, CV{Name: "Jane"}, false))
	assert.Contains(t, out.String(), "\x1b[")
	assert.Contains(t, out.String(), "Jane")
}
