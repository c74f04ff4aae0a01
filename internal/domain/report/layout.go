package report

import (
	"fmt"
	"strconv"
	"time"

	"github.com/okian/admitcheck/internal/domain/cutoff"
	"github.com/okian/admitcheck/internal/domain/eligibility"
	"github.com/okian/admitcheck/internal/domain/scoring"
)

// Row is one verdict block.
type Row struct {
	Index   int
	Program string
	Cutoff  string
	Score   string
	Passed  bool
}

// Status is the PASSED/FAILED marker for the row.
func (r Row) Status() string {
	if r.Passed {
		return "Status: PASSED"
	}
	return "Status: FAILED"
}

// Layout is the text content of a report, in drawing order.
type Layout struct {
	Title     string
	Subtitles []string
	ScoreLine string
	Profile   []string
	Heading   string
	Rows      []Row
	Passed    int
	Total     int
	Summary   string
	Footer    string
}

// Build lays out a report. It is a pure function of its arguments.
func (g *Generator) Build(result eligibility.Result, score scoring.Score, category cutoff.Category, track eligibility.Track, generatedAt time.Time) Layout {
	l := Layout{
		Title:     g.title,
		Subtitles: []string{g.institution, g.cycle},
		ScoreLine: fmt.Sprintf("Your Weighted Score: %s/%d", score.String(), scoring.MaxScore),
		Profile: []string{
			"Student Type: " + track.Label(),
			"Sponsorship: " + category.Label(),
		},
		Heading: "Eligibility Results:",
		Rows:    make([]Row, 0, result.Len()),
		Passed:  result.ReportPassed(),
		Total:   result.Len(),
		Footer:  "Generated on " + generatedAt.Format(g.dateLayout),
	}
	for i, v := range result.Verdicts {
		l.Rows = append(l.Rows, Row{
			Index:   i + 1,
			Program: v.Program,
			Cutoff:  formatCutoff(v.Cutoff),
			Score:   scoring.Score(v.Score).String(),
			Passed:  v.Passed,
		})
	}
	l.Summary = fmt.Sprintf("Summary: You qualified for %d out of %d selected programs.", l.Passed, l.Total)
	return l
}

func formatCutoff(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
