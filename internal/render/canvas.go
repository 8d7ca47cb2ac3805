package render

import (
	"bytes"
	"fmt"
	"io"

	"github.com/go-pdf/fpdf"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"
)

// Canvas is the drawing surface used by the exporter. Coordinates are in
// millimetres from the top-left corner; Text draws at the baseline.
type Canvas interface {
	AddPage()
	PageSize() (width, height float64)
	PageCount() int
	SetFont(style string, size float64)
	SetTextColor(r, g, b int)
	Text(x, y float64, text string)
	TextWidth(text string) float64
	Line(x1, y1, x2, y2 float64)
	Image(name string, png []byte, x, y, w, h float64) error
	Output(w io.Writer) error
}

// pdfFontFamily is embedded as UTF-8 TrueType, so names outside Latin-1
// (Cyrillic, Greek) are drawn as typed.
const pdfFontFamily = "Go"

type pdfCanvas struct {
	pdf *fpdf.Fpdf
}

// NewPDFCanvas creates an A4 portrait canvas backed by go-pdf/fpdf.
func NewPDFCanvas(title string) Canvas {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetAutoPageBreak(false, 0)
	pdf.SetTitle(title, true)
	pdf.SetCreator("jobcoach", true)
	pdf.AddUTF8FontFromBytes(pdfFontFamily, "", goregular.TTF)
	pdf.AddUTF8FontFromBytes(pdfFontFamily, "B", gobold.TTF)
	pdf.SetFont(pdfFontFamily, "", 11)

	return &pdfCanvas{pdf: pdf}
}

func (c *pdfCanvas) AddPage() { c.pdf.AddPage() }

func (c *pdfCanvas) PageSize() (float64, float64) { return c.pdf.GetPageSize() }

func (c *pdfCanvas) PageCount() int { return c.pdf.PageCount() }

func (c *pdfCanvas) SetFont(style string, size float64) {
	c.pdf.SetFont(pdfFontFamily, style, size)
}

func (c *pdfCanvas) SetTextColor(r, g, b int) { c.pdf.SetTextColor(r, g, b) }

func (c *pdfCanvas) Text(x, y float64, text string) { c.pdf.Text(x, y, text) }

func (c *pdfCanvas) TextWidth(text string) float64 { return c.pdf.GetStringWidth(text) }

func (c *pdfCanvas) Line(x1, y1, x2, y2 float64) {
	c.pdf.SetDrawColor(200, 200, 200)
	c.pdf.SetLineWidth(0.4)
	c.pdf.Line(x1, y1, x2, y2)
}

func (c *pdfCanvas) Image(name string, png []byte, x, y, w, h float64) error {
	opts := fpdf.ImageOptions{ImageType: "PNG"}
	c.pdf.RegisterImageOptionsReader(name, opts, bytes.NewReader(png))
	c.pdf.ImageOptions(name, x, y, w, h, false, opts, 0, "")
	if err := c.pdf.Error(); err != nil {
		return fmt.Errorf("draw image %s: %w", name, err)
	}
	return nil
}

func (c *pdfCanvas) Output(w io.Writer) error {
	if err := c.pdf.Output(w); err != nil {
		return fmt.Errorf("write pdf: %w", err)
	}
	return nil
}
