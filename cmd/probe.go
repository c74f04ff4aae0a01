package main

import (
	"fmt"
	"runtime"
	"time"

	"github.com/spf13/cobra"

	"github.com/okian/admitcheck/internal/probe"
)

func newProbeCmd(e *env) *cobra.Command {
	cfg := probe.Config{}
	cmd := &cobra.Command{
		Use:   "probe",
		Short: "Submit generated applicants to a running server and verify its verdicts",
		RunE: func(cmd *cobra.Command, _ []string) error {
			stats, err := probe.Run(cmd.Context(), cfg, e.log.Named("probe"))
			if stats != nil {
				fmt.Fprintf(cmd.OutOrStdout(), "submitted=%d matched=%d mismatched=%d failed=%d fallbacks=%d duration=%s\n",
					stats.Submitted, stats.Matched, stats.Mismatched, stats.Failed, stats.Fallbacks, stats.Duration.Round(time.Millisecond))
			}
			return err
		},
	}
	cmd.Flags().StringVar(&cfg.BaseURL, "url", "http://localhost:9080", "base URL of the service")
	cmd.Flags().IntVar(&cfg.Applicants, "applicants", 1000, "number of applicants to generate")
	cmd.Flags().IntVar(&cfg.Workers, "workers", runtime.NumCPU()*2, "concurrent workers")
	cmd.Flags().DurationVar(&cfg.Timeout, "timeout", 30*time.Second, "HTTP request timeout")
	cmd.Flags().BoolVar(&cfg.Verbose, "verbose", false, "log every mismatch")
	return cmd
}
