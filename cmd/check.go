package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"text/tabwriter"

	"github.com/spf13/cobra"

	service "github.com/okian/admitcheck/internal/app"
	"github.com/okian/admitcheck/internal/domain/cutoff"
	"github.com/okian/admitcheck/internal/domain/eligibility"
	"github.com/okian/admitcheck/internal/domain/report"
	"github.com/okian/admitcheck/internal/domain/scoring"
	"github.com/okian/admitcheck/pkg/logger"
)

const reportFileMode = 0o644

type checkFlags struct {
	matric   float64
	uat      float64
	category string
	track    string
	depts    []string
	pdf      string
}

func newCheckCmd(e *env) *cobra.Command {
	f := &checkFlags{}
	cmd := &cobra.Command{
		Use:   "check",
		Short: "Evaluate one applicant against up to three programs",
		RunE: func(cmd *cobra.Command, _ []string) error {
			q, err := f.query()
			if err != nil {
				return err
			}
			out, err := e.svc.Evaluate(cmd.Context(), q)
			if err != nil {
				return err
			}
			if err := printOutcome(cmd.OutOrStdout(), out, q); err != nil {
				return err
			}
			if f.pdf == "" {
				return nil
			}
			pdf, err := e.svc.Report(cmd.Context(), q)
			if err != nil {
				return err
			}
			path := reportPath(f.pdf)
			if err := os.WriteFile(path, pdf, reportFileMode); err != nil {
				return fmt.Errorf("write report: %w", err)
			}
			e.log.Info(cmd.Context(), "report written", logger.String("path", path))
			return nil
		},
	}
	cmd.Flags().Float64Var(&f.matric, "matric", 0, "Matric result")
	cmd.Flags().Float64Var(&f.uat, "uat", 0, "UAT result")
	cmd.Flags().StringVar(&f.category, "category", "", "sponsorship category: self or government")
	cmd.Flags().StringVar(&f.track, "track", "", "stream: natural or social")
	cmd.Flags().StringArrayVar(&f.depts, "dept", nil, "program to check (repeatable, at most 3)")
	cmd.Flags().StringVar(&f.pdf, "pdf", "", "write the PDF report to this file or directory")
	_ = cmd.MarkFlagRequired("matric")
	_ = cmd.MarkFlagRequired("uat")
	_ = cmd.MarkFlagRequired("category")
	return cmd
}

func (f *checkFlags) query() (service.Query, error) {
	category, err := cutoff.ParseCategory(f.category)
	if err != nil {
		return service.Query{}, err
	}
	track, err := eligibility.ParseTrack(f.track)
	if err != nil {
		return service.Query{}, err
	}
	return service.Query{
		Inputs:   scoring.RawInputs{Matric: f.matric, UAT: f.uat},
		Category: category,
		Track:    track,
		Programs: f.depts,
	}, nil
}

func reportPath(p string) string {
	if info, err := os.Stat(p); err == nil && info.IsDir() {
		return filepath.Join(p, report.Filename)
	}
	return p
}

func printOutcome(w io.Writer, out service.Outcome, q service.Query) error {
	fmt.Fprintf(w, "Weighted score: %s/%d (%s)\n", out.Score, scoring.MaxScore, out.Band)
	fmt.Fprintf(w, "Sponsorship: %s  Student type: %s\n", q.Category.Label(), q.Track.Label())
	if out.Advisory {
		fmt.Fprintln(w, "Note: your score is below every cutoff in this category.")
	}
	if out.Result.Empty() {
		fmt.Fprintln(w, "No programs selected.")
		return nil
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "#\tPROGRAM\tCUTOFF\tSCORE\tDIFF\tSTATUS")
	for i, v := range out.Result.Verdicts {
		status := "FAILED"
		if v.Passed {
			status = "PASSED"
		}
		fmt.Fprintf(tw, "%d\t%s\t%g\t%s\t%+.2f\t%s\n", i+1, v.Program, v.Cutoff, scoring.Score(v.Score), v.Difference, status)
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	for _, p := range out.Result.Omitted {
		fmt.Fprintf(w, "Skipped %q: no cutoff under %s\n", p, q.Category.Label())
	}
	fmt.Fprintf(w, "Summary: You qualified for %d out of %d selected programs.\n", out.Result.ReportPassed(), out.Result.Len())
	return nil
}
