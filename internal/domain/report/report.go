// Package report renders an eligibility result into a downloadable PDF.
package report

import (
	"bytes"
	"errors"
	"fmt"
	"time"

	"github.com/go-pdf/fpdf"

	"github.com/okian/admitcheck/internal/domain/cutoff"
	"github.com/okian/admitcheck/internal/domain/eligibility"
	"github.com/okian/admitcheck/internal/domain/scoring"
)

// Filename is the name the exported artifact is offered under.
const Filename = "AAU_Eligibility_Report.pdf"

// ContentType of the rendered artifact.
const ContentType = "application/pdf"

// ErrRender wraps failures from the PDF backend.
var ErrRender = errors.New("report render failed")

const (
	defaultTitle       = "AAU Admissions Eligibility Report"
	defaultInstitution = "Addis Ababa University"
	defaultCycle       = "2025/26 Academic Year"
	defaultDateLayout  = "1/2/2006"

	fontFamily = "Helvetica"
	leftMargin = 20.0
	topMargin  = 14.0
	indent     = 25.0
	footerY    = 280.0
	lineHeight = 7.0
	rowHeight  = 6.0
)

// Option configures a Generator.
type Option func(*Generator)

// WithTitle overrides the report title.
func WithTitle(title string) Option {
	return func(g *Generator) {
		if title != "" {
			g.title = title
		}
	}
}

// WithInstitution sets the institution line under the title.
func WithInstitution(name string) Option {
	return func(g *Generator) {
		if name != "" {
			g.institution = name
		}
	}
}

// WithCycle sets the admission cycle line under the title.
func WithCycle(cycle string) Option {
	return func(g *Generator) {
		if cycle != "" {
			g.cycle = cycle
		}
	}
}

// WithDateLayout sets the time layout of the footer date.
func WithDateLayout(layout string) Option {
	return func(g *Generator) {
		if layout != "" {
			g.dateLayout = layout
		}
	}
}

// Generator renders reports. It has no mutable state after construction.
type Generator struct {
	title       string
	institution string
	cycle       string
	dateLayout  string
}

// New creates a Generator.
func New(opts ...Option) *Generator {
	g := &Generator{
		title:       defaultTitle,
		institution: defaultInstitution,
		cycle:       defaultCycle,
		dateLayout:  defaultDateLayout,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Render draws the report for result. Output bytes depend only on the
// arguments; generatedAt is the only time input and also pins the PDF
// creation date.
func (g *Generator) Render(result eligibility.Result, score scoring.Score, category cutoff.Category, track eligibility.Track, generatedAt time.Time) ([]byte, error) {
	l := g.Build(result, score, category, track, generatedAt)

	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(leftMargin, topMargin, leftMargin)
	pdf.SetCreationDate(generatedAt)
	pdf.SetModificationDate(generatedAt)
	pdf.SetCatalogSort(true)
	pdf.SetTitle(l.Title, true)
	pdf.SetCreator("admitcheck", false)
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pdf.AddPage()
	pageW, _ := pdf.GetPageSize()
	contentW := pageW - 2*leftMargin

	pdf.SetFont(fontFamily, "B", 18)
	pdf.CellFormat(contentW, 8, tr(l.Title), "", 1, "C", false, 0, "")
	pdf.SetFont(fontFamily, "", 12)
	for _, s := range l.Subtitles {
		pdf.CellFormat(contentW, lineHeight, tr(s), "", 1, "C", false, 0, "")
	}

	pdf.Ln(6)
	pdf.SetFont(fontFamily, "B", 14)
	pdf.CellFormat(contentW, 8, tr(l.ScoreLine), "", 1, "L", false, 0, "")

	pdf.Ln(2)
	pdf.SetFont(fontFamily, "", 11)
	for _, p := range l.Profile {
		pdf.CellFormat(contentW, lineHeight, tr(p), "", 1, "L", false, 0, "")
	}

	pdf.Ln(4)
	pdf.SetFont(fontFamily, "B", 12)
	pdf.CellFormat(contentW, 8, tr(l.Heading), "", 1, "L", false, 0, "")

	for _, row := range l.Rows {
		pdf.Ln(2)
		pdf.SetFont(fontFamily, "B", 10)
		pdf.CellFormat(contentW, rowHeight, tr(fmt.Sprintf("%d. %s", row.Index, row.Program)), "", 1, "L", false, 0, "")
		pdf.SetFont(fontFamily, "", 10)
		pdf.SetX(indent)
		pdf.CellFormat(contentW, rowHeight, "Cut-off: "+row.Cutoff, "", 1, "L", false, 0, "")
		pdf.SetX(indent)
		pdf.CellFormat(contentW, rowHeight, "Your Score: "+row.Score, "", 1, "L", false, 0, "")
		if row.Passed {
			pdf.SetTextColor(16, 185, 129)
		} else {
			pdf.SetTextColor(239, 68, 68)
		}
		pdf.SetX(indent)
		pdf.CellFormat(contentW, rowHeight, row.Status(), "", 1, "L", false, 0, "")
		pdf.SetTextColor(0, 0, 0)
	}

	pdf.Ln(8)
	pdf.SetFont(fontFamily, "B", 11)
	pdf.MultiCell(contentW, lineHeight, tr(l.Summary), "", "L", false)

	pdf.SetAutoPageBreak(false, 0)
	pdf.SetY(footerY)
	pdf.SetFont(fontFamily, "I", 9)
	pdf.CellFormat(contentW, 5, tr(l.Footer), "", 1, "C", false, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRender, err)
	}
	return buf.Bytes(), nil
}
