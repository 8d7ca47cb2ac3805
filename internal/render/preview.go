package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
)

const previewRule = "────────────────────────────────────────"

// Preview writes CV answers as a terminal document.
type Preview struct {
	name    *color.Color
	heading *color.Color
	muted   *color.Color
	label   *color.Color
}

// NewPreview creates a preview writer. Colours are emitted only when styled is set.
func NewPreview(styled bool) *Preview {
	p := &Preview{
		name:    color.New(color.Bold, color.FgCyan),
		heading: color.New(color.Bold, color.FgBlue),
		muted:   color.New(color.Faint),
		label:   color.New(color.Bold),
	}
	for _, c := range []*color.Color{p.name, p.heading, p.muted, p.label} {
		if styled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return p
}

// Write renders cv to w. hasPhoto adds a marker for the supplied photo.
func (p *Preview) Write(w io.Writer, cv CV, hasPhoto bool) error {
	var b strings.Builder

	name := cv.Name
	if name == "" {
		name = documentTitle
	}
	b.WriteString(p.name.Sprint(name))
	if hasPhoto {
		b.WriteString("  " + p.muted.Sprint("[photo]"))
	}
	b.WriteString("\n")
	if cv.Contact != "" {
		b.WriteString(p.muted.Sprint(cv.Contact) + "\n")
	}
	b.WriteString(previewRule + "\n")

	for _, s := range cv.Sections() {
		b.WriteString("\n" + p.heading.Sprint(strings.ToUpper(s.Title)) + "\n")
		if s.Paragraph != "" {
			b.WriteString("  " + s.Paragraph + "\n")
		}
		for _, item := range s.Items {
			b.WriteString("  " + bullet + item + "\n")
		}
		for _, entry := range s.Entries {
			b.WriteString("  " + p.label.Sprint(entry.Label) + "\n")
			b.WriteString("    " + entry.Text + "\n")
		}
	}

	if _, err := fmt.Fprint(w, b.String()); err != nil {
		return fmt.Errorf("write preview: %w", err)
	}
	return nil
}
