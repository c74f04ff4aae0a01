package probe

import (
	"crypto/rand"
	"math/big"

	"github.com/google/uuid"

	"github.com/okian/admitcheck/internal/domain/cutoff"
	"github.com/okian/admitcheck/internal/domain/scoring"
	"github.com/okian/admitcheck/internal/domain/selection"
)

const randomFloatDivisor = 1_000_000

// Applicant profiles, weighted toward the cutoff band.
const (
	profileStrong = iota
	profileBorderline
	profileWeak
	profileWide
	profileCount
)

func randomInt(n int) int {
	if n <= 0 {
		return 0
	}
	v, _ := rand.Int(rand.Reader, big.NewInt(int64(n)))
	return int(v.Int64())
}

// randomFloat returns a value in [0, 1).
func randomFloat() float64 {
	return float64(randomInt(randomFloatDivisor)) / randomFloatDivisor
}

// generateApplicants creates n applicants whose inputs are valid under f and
// whose departments exist in registry.
func generateApplicants(n int, f scoring.Formula, registry *cutoff.Registry) []Applicant {
	out := make([]Applicant, n)
	for i := range out {
		out[i] = generateApplicant(f, registry)
	}
	return out
}

func generateApplicant(f scoring.Formula, registry *cutoff.Registry) Applicant {
	category := cutoff.Categories()[randomInt(len(cutoff.Categories()))]
	ratio := profileRatio(randomInt(profileCount))

	a := Applicant{
		ID:       uuid.NewString(),
		Matric:   inputFor(f.MatricMax, ratio),
		UAT:      inputFor(f.UATMax, ratio),
		Category: category.String(),
	}
	switch randomInt(3) {
	case 1:
		a.Track = "natural"
	case 2:
		a.Track = "social"
	}

	programs := registry.Programs(category)
	want := 1 + randomInt(selection.MaxPrograms)
	for len(a.Departments) < want {
		p := programs[randomInt(len(programs))]
		if !contains(a.Departments, p) {
			a.Departments = append(a.Departments, p)
		}
	}
	return a
}

// profileRatio picks the share of each maximum the applicant scores.
func profileRatio(profile int) float64 {
	switch profile {
	case profileStrong:
		return 0.75 + randomFloat()*0.25
	case profileBorderline:
		return 0.5 + randomFloat()*0.25
	case profileWeak:
		return randomFloat() * 0.5
	default:
		return randomFloat()
	}
}

// inputFor jitters ratio around upper and keeps whole marks inside [0, upper].
func inputFor(upper, ratio float64) float64 {
	v := float64(int(upper*ratio + (randomFloat()-0.5)*10))
	switch {
	case v < 0:
		return 0
	case v > upper:
		return upper
	}
	return v
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
