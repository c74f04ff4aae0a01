package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	service "github.com/okian/admitcheck/internal/app"
	"github.com/okian/admitcheck/internal/domain/cutoff"
	"github.com/okian/admitcheck/internal/domain/eligibility"
	"github.com/okian/admitcheck/internal/domain/report"
	"github.com/okian/admitcheck/internal/domain/scoring"
	"github.com/okian/admitcheck/pkg/logger"
)

// scoreRequest is the body of POST /score.
type scoreRequest struct {
	Matric *float64 `json:"matric" validate:"required"`
	UAT    *float64 `json:"uat" validate:"required"`
}

func (r scoreRequest) inputs() scoring.RawInputs {
	return scoring.RawInputs{Matric: *r.Matric, UAT: *r.UAT}
}

type scoreResponse struct {
	Score float64      `json:"score"`
	Text  string       `json:"score_text"`
	Band  scoring.Band `json:"band"`
}

// eligibilityRequest is the body of POST /eligibility and POST /report.
// Domain bounds and the selection cap are enforced by the service so they
// surface with their own error codes.
type eligibilityRequest struct {
	scoreRequest
	Category    string   `json:"category" validate:"required"`
	Track       string   `json:"track"`
	Departments []string `json:"departments" validate:"dive,required"`
}

func (r eligibilityRequest) query() (service.Query, error) {
	category, err := cutoff.ParseCategory(r.Category)
	if err != nil {
		return service.Query{}, err
	}
	track, err := eligibility.ParseTrack(r.Track)
	if err != nil {
		return service.Query{}, err
	}
	return service.Query{
		Inputs:   r.inputs(),
		Category: category,
		Track:    track,
		Programs: r.Departments,
	}, nil
}

type eligibilityResponse struct {
	Score           float64               `json:"score"`
	Text            string                `json:"score_text"`
	Band            scoring.Band          `json:"band"`
	Advisory        bool                  `json:"advisory"`
	Passed          int                   `json:"passed"`
	Total           int                   `json:"total"`
	FallbackApplied bool                  `json:"fallback_applied"`
	Verdicts        []eligibility.Verdict `json:"verdicts"`
	Omitted         []string              `json:"omitted,omitempty"`
}

// EligibilityHandler serves scoring, eligibility and report requests.
type EligibilityHandler struct {
	deps   Dependencies
	logger logger.Logger
}

// NewEligibilityHandler creates a new eligibility handler.
func NewEligibilityHandler(deps Dependencies, log logger.Logger) *EligibilityHandler {
	return &EligibilityHandler{deps: deps, logger: log}
}

func decode(r *http.Request, op string, dst any) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return WrapKind(op, ErrBadRequest, err)
	}
	if err := requestValidator().Struct(dst); err != nil {
		return WrapKind(op, ErrBadRequest, err)
	}
	return nil
}

func (h *EligibilityHandler) fail(w http.ResponseWriter, r *http.Request, op string, err error) {
	status, code := classify(err)
	if status >= http.StatusInternalServerError {
		h.logger.Error(r.Context(), "request failed", logger.String("op", op), logger.Error(err))
	}
	writeError(w, status, code, err)
}

// HandleScore handles POST /score requests.
func (h *EligibilityHandler) HandleScore(w http.ResponseWriter, r *http.Request) {
	const op = "api.score"
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}
	var req scoreRequest
	if err := decode(r, op, &req); err != nil {
		h.fail(w, r, op, err)
		return
	}
	score, err := h.deps.Score(r.Context(), req.inputs())
	if err != nil {
		h.fail(w, r, op, err)
		return
	}
	writeJSON(w, http.StatusOK, scoreResponse{
		Score: score.Value(),
		Text:  score.String(),
		Band:  scoring.BandOf(score),
	})
}

// HandleEligibility handles POST /eligibility requests.
func (h *EligibilityHandler) HandleEligibility(w http.ResponseWriter, r *http.Request) {
	const op = "api.eligibility"
	q, ok := h.readQuery(w, r, op)
	if !ok {
		return
	}
	out, err := h.deps.Evaluate(r.Context(), q)
	if err != nil {
		h.fail(w, r, op, err)
		return
	}
	verdicts := out.Result.Verdicts
	if verdicts == nil {
		verdicts = []eligibility.Verdict{}
	}
	writeJSON(w, http.StatusOK, eligibilityResponse{
		Score:           out.Score.Value(),
		Text:            out.Score.String(),
		Band:            out.Band,
		Advisory:        out.Advisory,
		Passed:          out.Result.ReportPassed(),
		Total:           out.Result.Len(),
		FallbackApplied: out.Result.FallbackApplied(),
		Verdicts:        verdicts,
		Omitted:         out.Result.Omitted,
	})
}

// HandleReport handles POST /report requests.
func (h *EligibilityHandler) HandleReport(w http.ResponseWriter, r *http.Request) {
	const op = "api.report"
	q, ok := h.readQuery(w, r, op)
	if !ok {
		return
	}
	pdf, err := h.deps.Report(r.Context(), q)
	if err != nil {
		h.fail(w, r, op, err)
		return
	}
	w.Header().Set("Content-Type", report.ContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", report.Filename))
	w.Header().Set("Content-Length", strconv.Itoa(len(pdf)))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(pdf)
}

func (h *EligibilityHandler) readQuery(w http.ResponseWriter, r *http.Request, op string) (service.Query, bool) {
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return service.Query{}, false
	}
	var req eligibilityRequest
	if err := decode(r, op, &req); err != nil {
		h.fail(w, r, op, err)
		return service.Query{}, false
	}
	q, err := req.query()
	if err != nil {
		h.fail(w, r, op, err)
		return service.Query{}, false
	}
	return q, true
}
