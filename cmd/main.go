// Command admitcheck computes AAU admission eligibility: it serves the HTTP
// API, evaluates one applicant from the command line, and lists the cutoff
// tables.
package main

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	service "github.com/okian/admitcheck/internal/app"
	"github.com/okian/admitcheck/internal/config"
	"github.com/okian/admitcheck/internal/domain/report"
	"github.com/okian/admitcheck/pkg/logger"
)

// env carries what every subcommand needs once the root has loaded it.
type env struct {
	cfg *config.Config
	log logger.Logger
	svc *service.Service
}

func main() {
	os.Exit(run())
}

func run() int {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		return 1
	}
	return 0
}

func newRootCmd() *cobra.Command {
	e := &env{}
	var envFile string
	var jsonLogs bool

	root := &cobra.Command{
		Use:          "admitcheck",
		Short:        "AAU admission eligibility engine",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if err := loadDotEnv(envFile); err != nil {
				return err
			}
			if err := logger.Init(logger.WithOutput(cmd.ErrOrStderr()), logger.WithJSON(jsonLogs)); err != nil {
				return err
			}
			cfg, err := config.Load(cmd.Context())
			if err != nil {
				return err
			}
			if err := logger.SetLevelString(cfg.LogLevel); err != nil {
				return err
			}
			svc, err := newService(cfg, logger.Get())
			if err != nil {
				return err
			}
			e.cfg, e.log, e.svc = cfg, logger.Get(), svc
			return nil
		},
	}
	root.PersistentFlags().StringVar(&envFile, "env-file", ".env", "dotenv file loaded before configuration")
	root.PersistentFlags().BoolVar(&jsonLogs, "json-logs", false, "emit JSON log lines")

	root.AddCommand(newServeCmd(e), newCheckCmd(e), newProgramsCmd(e), newProbeCmd(e))
	return root
}

// loadDotEnv loads path if it exists. A missing file is not an error.
func loadDotEnv(path string) error {
	if path == "" {
		return nil
	}
	if err := godotenv.Load(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return nil
}

func newService(cfg *config.Config, log logger.Logger) (*service.Service, error) {
	formula, err := cfg.ScoringFormula()
	if err != nil {
		return nil, err
	}
	return service.New(
		service.WithLogger(log),
		service.WithFormula(formula),
		service.WithReportOptions(
			report.WithInstitution(cfg.Institution),
			report.WithCycle(cfg.Cycle),
			report.WithDateLayout(cfg.ReportDateLayout),
		),
	), nil
}
