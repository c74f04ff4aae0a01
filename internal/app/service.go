// Package service wires the scoring, cutoff, eligibility and report packages
// into the operations exposed by the HTTP API, the CLI and interactive
// sessions.
package service

import (
	"context"
	"errors"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/okian/admitcheck/internal/domain/cutoff"
	"github.com/okian/admitcheck/internal/domain/eligibility"
	"github.com/okian/admitcheck/internal/domain/report"
	"github.com/okian/admitcheck/internal/domain/scoring"
	"github.com/okian/admitcheck/internal/domain/selection"
	"github.com/okian/admitcheck/pkg/logger"
	"github.com/okian/admitcheck/pkg/metrics"
)

// Service is stateless per request and safe for concurrent use.
type Service struct {
	formula   scoring.Formula
	registry  *cutoff.Registry
	evaluator *eligibility.Evaluator
	generator *report.Generator

	reportOpts []report.Option
	now        func() time.Time
	logger     logger.Logger

	scores      atomic.Int64
	evaluations atomic.Int64
	reports     atomic.Int64
	sessions    atomic.Int64
	misses      atomic.Int64
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithFormula sets the scoring formula.
func WithFormula(f scoring.Formula) Option {
	return func(s *Service) {
		s.formula = f
	}
}

// WithRegistry replaces the compiled cutoff tables.
func WithRegistry(r *cutoff.Registry) Option {
	return func(s *Service) {
		if r != nil {
			s.registry = r
		}
	}
}

// WithReportOptions configures the report generator.
func WithReportOptions(opts ...report.Option) Option {
	return func(s *Service) {
		s.reportOpts = append(s.reportOpts, opts...)
	}
}

// WithClock sets the time source used to stamp reports.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

// New constructs a Service with the 2025/26 formula and cutoff tables.
func New(opts ...Option) *Service {
	s := &Service{
		formula:  scoring.Default(),
		registry: cutoff.Default(),
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = logger.Nop()
	}
	s.logger = s.logger.Named("eligibility")
	s.evaluator = eligibility.New(s.registry, eligibility.WithMissHook(s.onMiss))
	s.generator = report.New(s.reportOpts...)
	return s
}

// A selected program without a cutoff is a configuration defect, not a user error.
func (s *Service) onMiss(category cutoff.Category, program string) {
	s.misses.Add(1)
	metrics.RecordCutoffMiss(category.String())
	s.logger.Error(context.Background(), "cutoff missing for selected program",
		logger.String("category", category.String()),
		logger.String("program", program),
	)
}

// Formula returns the active scoring formula.
func (s *Service) Formula() scoring.Formula { return s.formula }

// Programs returns the ordered cutoff entries for category.
func (s *Service) Programs(category cutoff.Category) ([]cutoff.Entry, error) {
	if !category.Valid() {
		return nil, ErrNoCategory
	}
	return s.registry.Entries(category), nil
}

// Score validates raw inputs and computes the composite score.
func (s *Service) Score(ctx context.Context, in scoring.RawInputs) (scoring.Score, error) {
	if err := s.formula.CheckInputs(in); err != nil {
		metrics.RecordInputRejected(rejectedField(s.formula, in))
		s.logger.Debug(ctx, "raw inputs rejected",
			logger.Float64("matric", in.Matric),
			logger.Float64("uat", in.UAT),
			logger.Error(err),
		)
		return 0, err
	}
	score := s.formula.Normalize(in.Matric, in.UAT)
	s.scores.Add(1)
	metrics.RecordScoreComputed(score.Value())
	return score, nil
}

func rejectedField(f scoring.Formula, in scoring.RawInputs) string {
	if in.Matric >= 0 && in.Matric <= f.MatricMax {
		return "uat"
	}
	return "matric"
}

// Query is one stateless eligibility request.
type Query struct {
	Inputs   scoring.RawInputs
	Category cutoff.Category
	Track    eligibility.Track
	Programs []string
}

// Outcome is the evaluated Query.
type Outcome struct {
	Score    scoring.Score
	Band     scoring.Band
	Advisory bool
	Result   eligibility.Result
}

// Evaluate scores q and classifies its programs. The program list follows the
// same rules as an interactive selection: no duplicates and at most
// selection.MaxPrograms entries.
func (s *Service) Evaluate(ctx context.Context, q Query) (Outcome, error) {
	if !q.Category.Valid() {
		return Outcome{}, ErrNoCategory
	}
	sel, err := selection.New(q.Programs...)
	if err != nil {
		metrics.RecordSelectionRejected(selectionReason(err))
		return Outcome{}, err
	}
	score, err := s.Score(ctx, q.Inputs)
	if err != nil {
		return Outcome{}, err
	}
	res := s.evaluate(ctx, score, q.Category, sel.Programs(), q.Track)
	return Outcome{
		Score:    score,
		Band:     scoring.BandOf(score),
		Advisory: s.advisory(score, q.Category),
		Result:   res,
	}, nil
}

// Report evaluates q and renders the PDF artifact.
func (s *Service) Report(ctx context.Context, q Query) ([]byte, error) {
	out, err := s.Evaluate(ctx, q)
	if err != nil {
		return nil, err
	}
	return s.render(ctx, out.Result, out.Score, q.Category, q.Track, s.now())
}

func (s *Service) evaluate(ctx context.Context, score scoring.Score, category cutoff.Category, programs []string, track eligibility.Track) eligibility.Result {
	res := s.evaluator.Evaluate(score, category, programs, track)
	s.evaluations.Add(1)
	metrics.RecordEvaluation(category.String())
	for _, v := range res.Verdicts {
		metrics.RecordVerdict(v.Passed, v.Fallback)
		if v.Fallback {
			metrics.RecordFallback(track.String())
		}
	}
	s.logger.Debug(ctx, "evaluated selection",
		logger.String("category", category.String()),
		logger.String("score", score.String()),
		logger.Int("verdicts", res.Len()),
		logger.Int("passed", res.PassCount()),
		logger.Bool("fallback", res.FallbackApplied()),
	)
	return res
}

func (s *Service) advisory(score scoring.Score, category cutoff.Category) bool {
	lowest, ok := s.registry.Lowest(category)
	if !ok {
		return false
	}
	return scoring.BelowLowestCutoff(score, lowest.Threshold)
}

func (s *Service) render(ctx context.Context, res eligibility.Result, score scoring.Score, category cutoff.Category, track eligibility.Track, generatedAt time.Time) ([]byte, error) {
	start := time.Now()
	pdf, err := s.generator.Render(res, score, category, track, generatedAt)
	if err != nil {
		metrics.RecordReportError()
		s.logger.Error(ctx, "report render failed", logger.Error(err))
		return nil, err
	}
	s.reports.Add(1)
	metrics.RecordReportRendered(float64(time.Since(start).Microseconds()) / 1000)
	s.logger.Info(ctx, "report rendered",
		logger.Int("bytes", len(pdf)),
		logger.Int("rows", res.Len()),
	)
	return pdf, nil
}

// NewSession starts an interactive session.
func (s *Service) NewSession() *Session {
	s.sessions.Add(1)
	id := uuid.NewString()
	return &Session{
		id:     id,
		svc:    s,
		sel:    &selection.Selection{},
		logger: s.logger.With(logger.String("session", id)),
	}
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats() map[string]interface{} {
	return map[string]interface{}{
		"formula":      s.formula.Name,
		"scores":       s.scores.Load(),
		"evaluations":  s.evaluations.Load(),
		"reports":      s.reports.Load(),
		"sessions":     s.sessions.Load(),
		"cutoffMisses": s.misses.Load(),
	}
}

func selectionReason(err error) string {
	switch {
	case errors.Is(err, selection.ErrSelectionLimitExceeded):
		return "limit"
	case errors.Is(err, selection.ErrDuplicateProgram):
		return "duplicate"
	case errors.Is(err, ErrUnknownProgram):
		return "unknown_program"
	case errors.Is(err, ErrNoCategory):
		return "no_category"
	default:
		return "other"
	}
}
