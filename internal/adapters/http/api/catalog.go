package api

import (
	"net/http"

	"github.com/okian/admitcheck/internal/domain/cutoff"
	"github.com/okian/admitcheck/internal/domain/scoring"
)

// FormulaHandler exposes the active scoring formula.
type FormulaHandler struct {
	deps Dependencies
}

// NewFormulaHandler creates a new formula handler.
func NewFormulaHandler(deps Dependencies) *FormulaHandler {
	return &FormulaHandler{deps: deps}
}

type formulaResponse struct {
	scoring.Formula
	Presets []string `json:"presets"`
}

// HandleFormula handles GET /formula requests.
func (h *FormulaHandler) HandleFormula(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	writeJSON(w, http.StatusOK, formulaResponse{
		Formula: h.deps.Formula(),
		Presets: scoring.PresetNames(),
	})
}

// ProgramsHandler lists the programs of a sponsorship category.
type ProgramsHandler struct {
	deps Dependencies
}

// NewProgramsHandler creates a new programs handler.
func NewProgramsHandler(deps Dependencies) *ProgramsHandler {
	return &ProgramsHandler{deps: deps}
}

type programsResponse struct {
	Category string         `json:"category"`
	Label    string         `json:"label"`
	Programs []cutoff.Entry `json:"programs"`
}

// HandlePrograms handles GET /programs?category= requests.
func (h *ProgramsHandler) HandlePrograms(w http.ResponseWriter, r *http.Request) {
	const op = "api.programs"
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	category, err := cutoff.ParseCategory(r.URL.Query().Get("category"))
	if err != nil {
		writeError(w, http.StatusBadRequest, codeUnknownCategory, WrapKind(op, ErrBadRequest, err))
		return
	}
	entries, err := h.deps.Programs(category)
	if err != nil {
		status, code := classify(err)
		writeError(w, status, code, err)
		return
	}
	writeJSON(w, http.StatusOK, programsResponse{
		Category: category.String(),
		Label:    category.Label(),
		Programs: entries,
	})
}
