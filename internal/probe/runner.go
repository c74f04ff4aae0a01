package probe

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	service "github.com/okian/admitcheck/internal/app"
	"github.com/okian/admitcheck/internal/domain/cutoff"
	"github.com/okian/admitcheck/internal/domain/eligibility"
	"github.com/okian/admitcheck/internal/domain/scoring"
	"github.com/okian/admitcheck/pkg/logger"
)

const workerChannelMultiplier = 2

// Run checks the service, generates applicants, submits them concurrently and
// verifies every response. It returns ErrMismatch if any verdict differs.
func Run(ctx context.Context, cfg Config, log logger.Logger) (*Stats, error) {
	if log == nil {
		log = logger.Nop()
	}
	if cfg.Workers <= 0 {
		cfg.Workers = 1
	}
	stats := &Stats{StartTime: time.Now()}
	client := newHTTPClient(cfg.Timeout)

	log.Info(ctx, "starting eligibility probe",
		logger.String("baseURL", cfg.BaseURL),
		logger.Int("applicants", cfg.Applicants),
		logger.Int("workers", cfg.Workers),
	)

	if err := client.getJSON(ctx, cfg.BaseURL+"/healthz", nil); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUnhealthy, err)
	}

	var formula scoring.Formula
	if err := client.getJSON(ctx, cfg.BaseURL+"/formula", &formula); err != nil {
		return nil, fmt.Errorf("fetch formula: %w", err)
	}
	if err := formula.Validate(); err != nil {
		return nil, fmt.Errorf("server formula: %w", err)
	}
	local := service.New(service.WithFormula(formula))

	applicants := generateApplicants(cfg.Applicants, formula, cutoff.Default())
	stats.Generated = len(applicants)

	submit(ctx, cfg, client, local, applicants, stats, log)

	stats.EndTime = time.Now()
	stats.Duration = stats.EndTime.Sub(stats.StartTime)
	log.Info(ctx, "probe finished",
		logger.Int("submitted", stats.Submitted),
		logger.Int("matched", stats.Matched),
		logger.Int("mismatched", stats.Mismatched),
		logger.Int("failed", stats.Failed),
		logger.Int("fallbacks", stats.Fallbacks),
		logger.Duration("duration", stats.Duration),
	)

	if stats.Mismatched > 0 {
		return stats, fmt.Errorf("%w: %d of %d", ErrMismatch, stats.Mismatched, stats.Submitted)
	}
	return stats, nil
}

func submit(ctx context.Context, cfg Config, client *HTTPClient, local *service.Service, applicants []Applicant, stats *Stats, log logger.Logger) {
	var submitted, matched, mismatched, failed, fallbacks atomic.Int64
	url := cfg.BaseURL + "/eligibility"

	ch := make(chan Applicant, cfg.Workers*workerChannelMultiplier)
	var wg sync.WaitGroup
	for i := 0; i < cfg.Workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for a := range ch {
				submitted.Add(1)
				var remote Response
				if err := client.postJSON(ctx, url, a, &remote); err != nil {
					failed.Add(1)
					log.Warn(ctx, "submission failed", logger.String("applicant", a.ID), logger.Error(err))
					continue
				}
				out, err := local.Evaluate(ctx, toQuery(a))
				if err != nil {
					failed.Add(1)
					log.Warn(ctx, "local evaluation failed", logger.String("applicant", a.ID), logger.Error(err))
					continue
				}
				if remote.FallbackApplied {
					fallbacks.Add(1)
				}
				if err := compare(out, remote); err != nil {
					mismatched.Add(1)
					if cfg.Verbose {
						log.Error(ctx, "verdict mismatch", logger.String("applicant", a.ID), logger.Error(err))
					}
					continue
				}
				matched.Add(1)
			}
		}()
	}

	go func() {
		defer close(ch)
		for _, a := range applicants {
			select {
			case <-ctx.Done():
				return
			case ch <- a:
			}
		}
	}()
	wg.Wait()

	stats.Submitted = int(submitted.Load())
	stats.Matched = int(matched.Load())
	stats.Mismatched = int(mismatched.Load())
	stats.Failed = int(failed.Load())
	stats.Fallbacks = int(fallbacks.Load())
}

func toQuery(a Applicant) service.Query {
	category, _ := cutoff.ParseCategory(a.Category)
	track, _ := eligibility.ParseTrack(a.Track)
	return service.Query{
		Inputs:   scoring.RawInputs{Matric: a.Matric, UAT: a.UAT},
		Category: category,
		Track:    track,
		Programs: a.Departments,
	}
}
