package render

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/spigell/jobcoach/internal/flow"
)

// FileName is the fixed name of the exported document.
const FileName = "cv.pdf"

const (
	documentTitle = "Curriculum Vitae"
	photoImage    = "photo"
	bullet        = "• "
)

// Layout holds the page geometry in millimetres and font sizes in points.
type Layout struct {
	Margin        float64
	LineHeight    float64
	HeadingHeight float64
	NameHeight    float64
	PhotoBox      float64
	NameSize      float64
	HeadingSize   float64
	BodySize      float64
}

func DefaultLayout() Layout {
	return Layout{
		Margin:        15,
		LineHeight:    6,
		HeadingHeight: 11,
		NameHeight:    10,
		PhotoBox:      30,
		NameSize:      22,
		HeadingSize:   13,
		BodySize:      11,
	}
}

// Exporter turns CV answers into a paginated document.
type Exporter struct {
	layout    Layout
	logger    *zap.Logger
	newCanvas func(title string) Canvas
}

func NewExporter(layout Layout, logger *zap.Logger) *Exporter {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Exporter{
		layout:    layout,
		logger:    logger,
		newCanvas: NewPDFCanvas,
	}
}

// Export runs the export pipeline and writes the document to out.
func (e *Exporter) Export(ctx context.Context, answers []flow.Answer, photoPath string, out io.Writer) (*Job, error) {
	job := &Job{
		Answers:   answers,
		PhotoPath: strings.TrimSpace(photoPath),
		Canvas:    e.newCanvas(documentTitle),
		Output:    out,
	}

	stages := e.Stages()
	if job.PhotoPath == "" {
		DisableByName(stages, StageDecodePhoto, "no photo supplied")
	}

	if err := Run(ctx, e.logger, stages, job); err != nil {
		return nil, err
	}
	return job, nil
}

// ExportFile writes cv.pdf into dir and returns its path. A partially written
// file is removed on failure.
func (e *Exporter) ExportFile(ctx context.Context, dir string, answers []flow.Answer, photoPath string) (string, error) {
	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create output dir: %w", err)
	}

	path := filepath.Join(dir, FileName)
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create %s: %w", path, err)
	}

	if _, err := e.Export(ctx, answers, photoPath, f); err != nil {
		f.Close()
		os.Remove(path)
		return "", err
	}

	if err := f.Close(); err != nil {
		return "", fmt.Errorf("close %s: %w", path, err)
	}

	e.logger.Info("document exported", zap.String("path", path))
	return path, nil
}

// Render draws the document. The photo, when present, is drawn before anything else.
func (e *Exporter) Render(c Canvas, cv CV, photo *Photo) error {
	d := newDrawer(c, e.layout)
	c.AddPage()

	if err := d.header(cv, photo); err != nil {
		return err
	}

	for _, s := range cv.Sections() {
		d.section(s)
	}

	return nil
}

type drawer struct {
	c      Canvas
	l      Layout
	width  float64
	height float64
	y      float64
}

func newDrawer(c Canvas, l Layout) *drawer {
	w, h := c.PageSize()
	return &drawer{c: c, l: l, width: w, height: h, y: l.Margin}
}

func (d *drawer) bottom() float64 { return d.height - d.l.Margin }

func (d *drawer) contentWidth() float64 { return d.width - 2*d.l.Margin }

// ensure starts a new page when h does not fit above the bottom margin.
func (d *drawer) ensure(h float64) {
	if d.y+h > d.bottom() {
		d.c.AddPage()
		d.y = d.l.Margin
	}
}

func (d *drawer) text(x, h float64, s string) {
	d.ensure(h)
	d.y += h
	d.c.Text(x, d.y, s)
}

func (d *drawer) header(cv CV, photo *Photo) error {
	textWidth := d.contentWidth()
	photoBottom := d.y

	if photo != nil {
		w, h := photo.Fit(d.l.PhotoBox, d.l.PhotoBox)
		if err := d.c.Image(photoImage, photo.PNG, d.width-d.l.Margin-w, d.y, w, h); err != nil {
			return err
		}
		photoBottom = d.y + h
		textWidth -= d.l.PhotoBox + d.l.LineHeight
	}

	name := cv.Name
	if name == "" {
		name = documentTitle
	}
	d.c.SetFont("B", d.l.NameSize)
	d.c.SetTextColor(0, 51, 102)
	d.text(d.l.Margin, d.l.NameHeight, name)

	d.body()
	for _, line := range wrap(d.c, cv.Contact, textWidth) {
		d.text(d.l.Margin, d.l.LineHeight, line)
	}

	d.y = max(d.y, photoBottom) + d.l.LineHeight/2
	d.c.Line(d.l.Margin, d.y, d.width-d.l.Margin, d.y)
	return nil
}

func (d *drawer) body() {
	d.c.SetFont("", d.l.BodySize)
	d.c.SetTextColor(26, 26, 26)
}

func (d *drawer) section(s Section) {
	// Keep the heading together with its first line.
	d.ensure(d.l.HeadingHeight + d.l.LineHeight)
	d.c.SetFont("B", d.l.HeadingSize)
	d.c.SetTextColor(0, 102, 204)
	d.text(d.l.Margin, d.l.HeadingHeight, s.Title)
	d.body()

	width := d.contentWidth()

	if s.Paragraph != "" {
		for _, line := range wrap(d.c, s.Paragraph, width) {
			d.text(d.l.Margin, d.l.LineHeight, line)
		}
	}

	indent := d.c.TextWidth(bullet)
	for _, item := range s.Items {
		for i, line := range wrap(d.c, item, width-indent) {
			if i == 0 {
				d.text(d.l.Margin, d.l.LineHeight, bullet+line)
				continue
			}
			d.text(d.l.Margin+indent, d.l.LineHeight, line)
		}
	}

	for _, entry := range s.Entries {
		d.c.SetFont("B", d.l.BodySize)
		d.text(d.l.Margin, d.l.LineHeight, entry.Label)
		d.body()
		for _, line := range wrap(d.c, entry.Text, width) {
			d.text(d.l.Margin, d.l.LineHeight, line)
		}
	}
}

// wrap splits text into lines no wider than width. Words longer than the width
// get a line of their own.
func wrap(c Canvas, text string, width float64) []string {
	var lines []string
	for _, paragraph := range strings.Split(text, "\n") {
		words := strings.Fields(paragraph)
		if len(words) == 0 {
			continue
		}

		current := words[0]
		for _, word := range words[1:] {
			candidate := current + " " + word
			if c.TextWidth(candidate) > width {
				lines = append(lines, current)
				current = word
				continue
			}
			current = candidate
		}
		lines = append(lines, current)
	}
	return lines
}
