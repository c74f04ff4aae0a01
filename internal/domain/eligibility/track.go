package eligibility

import (
	"errors"
	"fmt"
	"strings"

	"github.com/okian/admitcheck/internal/domain/cutoff"
)

// ErrUnknownTrack is returned when a student track cannot be parsed.
var ErrUnknownTrack = errors.New("unknown student track")

// Track is the applicant's secondary-school stream.
type Track int

// Tracks. NoTrack means the selector was left empty; the fallback rule never
// runs without a track.
const (
	NoTrack Track = iota
	Natural
	Social
)

// String returns the wire form.
func (t Track) String() string {
	switch t {
	case Natural:
		return "natural"
	case Social:
		return "social"
	default:
		return ""
	}
}

// Label returns the name printed in reports.
func (t Track) Label() string {
	switch t {
	case Natural:
		return "Natural Science"
	case Social:
		return "Social Science"
	default:
		return "Not specified"
	}
}

// FreshmanProgram returns the fallback program key for the track.
func (t Track) FreshmanProgram() (string, bool) {
	switch t {
	case Natural:
		return cutoff.NaturalFreshmanProgram, true
	case Social:
		return cutoff.SocialFreshmanProgram, true
	default:
		return "", false
	}
}

// ParseTrack accepts "natural", "social" or an empty string for NoTrack.
func ParseTrack(s string) (Track, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "":
		return NoTrack, nil
	case "natural", "natural science", "natural_science":
		return Natural, nil
	case "social", "social science", "social_science":
		return Social, nil
	default:
		return NoTrack, fmt.Errorf("%w: %q", ErrUnknownTrack, s)
	}
}
