// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"sync"

	"github.com/go-playground/validator/v10"

	service "github.com/okian/admitcheck/internal/app"
	"github.com/okian/admitcheck/internal/domain/cutoff"
	"github.com/okian/admitcheck/internal/domain/eligibility"
	"github.com/okian/admitcheck/internal/domain/report"
	"github.com/okian/admitcheck/internal/domain/scoring"
	"github.com/okian/admitcheck/internal/domain/selection"
	"github.com/okian/admitcheck/pkg/logger"
)

// Dependencies required by HTTP handlers.
type Dependencies interface {
	Formula() scoring.Formula
	Programs(category cutoff.Category) ([]cutoff.Entry, error)
	Score(ctx context.Context, in scoring.RawInputs) (scoring.Score, error)
	Evaluate(ctx context.Context, q service.Query) (service.Outcome, error)
	Report(ctx context.Context, q service.Query) ([]byte, error)
}

// Server wires HTTP routes for the business API.
type Server struct {
	healthHandler      *HealthHandler
	statsHandler       *StatsHandler
	formulaHandler     *FormulaHandler
	programsHandler    *ProgramsHandler
	eligibilityHandler *EligibilityHandler
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies, statsProvider StatsProvider, log logger.Logger) *Server {
	if log == nil {
		log = logger.Nop()
	}
	return &Server{
		healthHandler:      NewHealthHandler(),
		statsHandler:       NewStatsHandler(statsProvider),
		formulaHandler:     NewFormulaHandler(deps),
		programsHandler:    NewProgramsHandler(deps),
		eligibilityHandler: NewEligibilityHandler(deps, log.Named("http")),
	}
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(mux *http.ServeMux) {
	mux.HandleFunc("/healthz", MetricsMiddleware(s.healthHandler.HandleHealth, "healthz"))
	mux.HandleFunc("/stats", MetricsMiddleware(s.statsHandler.HandleStats, "stats"))
	mux.HandleFunc("/formula", MetricsMiddleware(s.formulaHandler.HandleFormula, "formula"))
	mux.HandleFunc("/programs", MetricsMiddleware(s.programsHandler.HandlePrograms, "programs"))
	mux.HandleFunc("/score", MetricsMiddleware(s.eligibilityHandler.HandleScore, "score"))
	mux.HandleFunc("/eligibility", MetricsMiddleware(s.eligibilityHandler.HandleEligibility, "eligibility"))
	mux.HandleFunc("/report", MetricsMiddleware(s.eligibilityHandler.HandleReport, "report"))
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string, err error) {
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	writeJSON(w, status, errorResponse{Code: code, Message: msg})
}

// Stable error codes.
const (
	codeBadRequest       = "bad_request"
	codeInputOutOfDomain = "input_out_of_domain"
	codeSelectionLimit   = "selection_limit_exceeded"
	codeDuplicateProgram = "duplicate_program"
	codeUnknownCategory  = "unknown_category"
	codeUnknownTrack     = "unknown_track"
	codeRenderFailed     = "render_failed"
	codeInternal         = "internal"
)

// classify maps domain errors onto a status and stable code.
func classify(err error) (int, string) {
	switch {
	case errors.Is(err, scoring.ErrInputOutOfDomain):
		return http.StatusBadRequest, codeInputOutOfDomain
	case errors.Is(err, selection.ErrSelectionLimitExceeded):
		return http.StatusBadRequest, codeSelectionLimit
	case errors.Is(err, selection.ErrDuplicateProgram):
		return http.StatusBadRequest, codeDuplicateProgram
	case errors.Is(err, cutoff.ErrUnknownCategory), errors.Is(err, service.ErrNoCategory):
		return http.StatusBadRequest, codeUnknownCategory
	case errors.Is(err, eligibility.ErrUnknownTrack):
		return http.StatusBadRequest, codeUnknownTrack
	case errors.Is(err, ErrBadRequest):
		return http.StatusBadRequest, codeBadRequest
	case errors.Is(err, report.ErrRender):
		return http.StatusInternalServerError, codeRenderFailed
	default:
		return http.StatusInternalServerError, codeInternal
	}
}

var (
	validateOnce sync.Once
	validate     *validator.Validate
)

func requestValidator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
	})
	return validate
}
