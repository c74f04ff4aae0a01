// Package scoring maps raw Matric and UAT results to a composite score on a
// 0-100 scale.
package scoring

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

// Score bounds and rounding.
const (
	MaxScore       = 100
	scorePrecision = 100 // two decimal places
	weightEpsilon  = 1e-9
)

// Formula preset names.
const (
	FormulaAAU2025   = "aau-2025"
	FormulaLegacy600 = "legacy-600"
)

// RawInputs are the applicant's two exam results.
type RawInputs struct {
	Matric float64 `json:"matric"`
	UAT    float64 `json:"uat"`
}

// Score is a composite score rounded to two decimals.
type Score float64

// Value returns the score as a float64.
func (s Score) Value() float64 { return float64(s) }

// String formats the score with exactly two decimals.
func (s Score) String() string { return strconv.FormatFloat(float64(s), 'f', 2, 64) }

// Formula is the weighted linear combination used by one admission cycle.
// Each input is rescaled to its domain maximum and multiplied by its weight;
// the two weights sum to 100.
type Formula struct {
	Name         string  `json:"name"`
	MatricMax    float64 `json:"matric_max"`
	MatricWeight float64 `json:"matric_weight"`
	UATMax       float64 `json:"uat_max"`
	UATWeight    float64 `json:"uat_weight"`
}

var presets = map[string]Formula{
	FormulaAAU2025: {
		Name:         FormulaAAU2025,
		MatricMax:    420,
		MatricWeight: 60,
		UATMax:       160,
		UATWeight:    40,
	},
	// Matric/12 + UAT/2.
	FormulaLegacy600: {
		Name:         FormulaLegacy600,
		MatricMax:    600,
		MatricWeight: 50,
		UATMax:       100,
		UATWeight:    50,
	},
}

// Default returns the formula announced for the 2025/26 cycle.
func Default() Formula {
	return presets[FormulaAAU2025]
}

// Preset returns a named formula.
func Preset(name string) (Formula, error) {
	f, ok := presets[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return Formula{}, fmt.Errorf("%w: %q", ErrUnknownFormula, name)
	}
	return f, nil
}

// PresetNames lists the known presets.
func PresetNames() []string {
	return []string{FormulaAAU2025, FormulaLegacy600}
}

// Validate checks that the formula constants are usable.
func (f Formula) Validate() error {
	switch {
	case f.MatricMax <= 0:
		return fmt.Errorf("%w: matric_max must be positive", ErrInvalidFormula)
	case f.UATMax <= 0:
		return fmt.Errorf("%w: uat_max must be positive", ErrInvalidFormula)
	case f.MatricWeight < 0 || f.UATWeight < 0:
		return fmt.Errorf("%w: weights must not be negative", ErrInvalidFormula)
	case math.Abs(f.MatricWeight+f.UATWeight-MaxScore) > weightEpsilon:
		return fmt.Errorf("%w: weights must sum to %d, got %g", ErrInvalidFormula, MaxScore, f.MatricWeight+f.UATWeight)
	}
	return nil
}

// Normalize computes the composite score. It performs no bounds checking;
// callers reject out-of-domain inputs with CheckInputs first. The result is
// rounded half away from zero to two decimals and is the only rounding step.
func (f Formula) Normalize(matric, uat float64) Score {
	raw := matric/f.MatricMax*f.MatricWeight + uat/f.UATMax*f.UATWeight
	return Score(math.Round(raw*scorePrecision) / scorePrecision)
}

var (
	validateOnce sync.Once
	validate     *validator.Validate
)

func inputValidator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New()
	})
	return validate
}

// CheckInputs rejects inputs outside [0, max] for this formula, including NaN
// and infinities.
func (f Formula) CheckInputs(in RawInputs) error {
	v := inputValidator()
	if err := v.Var(in.Matric, rangeTag(f.MatricMax)); err != nil {
		return fmt.Errorf("%w: matric must be between 0 and %g", ErrInputOutOfDomain, f.MatricMax)
	}
	if err := v.Var(in.UAT, rangeTag(f.UATMax)); err != nil {
		return fmt.Errorf("%w: uat must be between 0 and %g", ErrInputOutOfDomain, f.UATMax)
	}
	return nil
}

func rangeTag(upper float64) string {
	return "gte=0,lte=" + strconv.FormatFloat(upper, 'f', -1, 64)
}
