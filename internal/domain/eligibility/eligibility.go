// Package eligibility compares a composite score against program cutoffs and
// applies the freshman fallback rule for self-sponsored applicants.
package eligibility

import (
	"github.com/okian/admitcheck/internal/domain/cutoff"
	"github.com/okian/admitcheck/internal/domain/scoring"
)

// FallbackSuffix labels the auto-checked freshman verdict.
const FallbackSuffix = " (Auto-checked)"

// Verdict is the outcome for one program.
type Verdict struct {
	Program    string  `json:"program"`
	Cutoff     float64 `json:"cutoff"`
	Score      float64 `json:"score"`
	Passed     bool    `json:"passed"`
	Difference float64 `json:"difference"`
	Fallback   bool    `json:"fallback"`
}

// Result is the ordered list of verdicts for one evaluation: user-selected
// programs in selection order, then at most one fallback verdict. Omitted
// lists selected programs that had no cutoff under the category.
type Result struct {
	Verdicts []Verdict `json:"verdicts"`
	Omitted  []string  `json:"omitted,omitempty"`
}

// Len is the number of verdicts including the fallback.
func (r Result) Len() int { return len(r.Verdicts) }

// Total counts user-selected verdicts only.
func (r Result) Total() int {
	n := 0
	for _, v := range r.Verdicts {
		if !v.Fallback {
			n++
		}
	}
	return n
}

// PassCount counts passed user-selected verdicts. The fallback verdict is
// excluded so it never gates presentation state.
func (r Result) PassCount() int {
	n := 0
	for _, v := range r.Verdicts {
		if v.Passed && !v.Fallback {
			n++
		}
	}
	return n
}

// ReportPassed counts every passed verdict, fallback included.
func (r Result) ReportPassed() int {
	n := 0
	for _, v := range r.Verdicts {
		if v.Passed {
			n++
		}
	}
	return n
}

// FallbackApplied reports whether a fallback verdict was appended.
func (r Result) FallbackApplied() bool {
	return len(r.Verdicts) > 0 && r.Verdicts[len(r.Verdicts)-1].Fallback
}

// Empty reports whether nothing was evaluated.
func (r Result) Empty() bool { return len(r.Verdicts) == 0 }

// Check compares score against threshold. The difference is signed and is
// not clamped or rounded again.
func Check(score scoring.Score, threshold float64) (passed bool, difference float64) {
	s := score.Value()
	return s >= threshold, s - threshold
}

// MissFunc is called for each selected program without a cutoff.
type MissFunc func(category cutoff.Category, program string)

// Option configures an Evaluator.
type Option func(*Evaluator)

// WithMissHook registers a callback for registry misses.
func WithMissHook(fn MissFunc) Option {
	return func(e *Evaluator) {
		if fn != nil {
			e.onMiss = fn
		}
	}
}

// Evaluator resolves cutoffs through a Registry. It holds no per-evaluation
// state and is safe for concurrent use.
type Evaluator struct {
	registry *cutoff.Registry
	onMiss   MissFunc
}

// New creates an Evaluator over registry.
func New(registry *cutoff.Registry, opts ...Option) *Evaluator {
	e := &Evaluator{
		registry: registry,
		onMiss:   func(cutoff.Category, string) {},
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Evaluate classifies every program in selection, in order. Selections larger
// than the UI cap are still evaluated. A program missing from the registry is
// left out of the verdicts and reported in Result.Omitted.
func (e *Evaluator) Evaluate(score scoring.Score, category cutoff.Category, selection []string, track Track) Result {
	var res Result
	if len(selection) == 0 {
		return res
	}
	res.Verdicts = make([]Verdict, 0, len(selection)+1)

	anyPassed := false
	for _, program := range selection {
		threshold, err := e.registry.Lookup(category, program)
		if err != nil {
			res.Omitted = append(res.Omitted, program)
			e.onMiss(category, program)
			continue
		}
		v := verdict(program, threshold, score)
		anyPassed = anyPassed || v.Passed
		res.Verdicts = append(res.Verdicts, v)
	}

	if fb, ok := e.fallback(score, category, track, len(res.Verdicts) > 0 && !anyPassed); ok {
		res.Verdicts = append(res.Verdicts, fb)
	}
	return res
}

func (e *Evaluator) fallback(score scoring.Score, category cutoff.Category, track Track, allFailed bool) (Verdict, bool) {
	if category != cutoff.SelfSponsored || !allFailed {
		return Verdict{}, false
	}
	program, ok := track.FreshmanProgram()
	if !ok {
		return Verdict{}, false
	}
	threshold, err := e.registry.Lookup(category, program)
	if err != nil {
		e.onMiss(category, program)
		return Verdict{}, false
	}
	v := verdict(program+FallbackSuffix, threshold, score)
	v.Fallback = true
	return v, true
}

func verdict(program string, threshold float64, score scoring.Score) Verdict {
	passed, diff := Check(score, threshold)
	return Verdict{
		Program:    program,
		Cutoff:     threshold,
		Score:      score.Value(),
		Passed:     passed,
		Difference: diff,
	}
}
