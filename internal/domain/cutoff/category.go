package cutoff

import (
	"fmt"
	"strings"
)

// Category partitions the cutoff table by sponsorship.
type Category int

// Sponsorship categories. The zero value is not a valid category so an unset
// selector is distinguishable from a chosen one.
const (
	NoCategory Category = iota
	SelfSponsored
	GovernmentSponsored
)

// Categories lists the valid categories in display order.
func Categories() []Category {
	return []Category{SelfSponsored, GovernmentSponsored}
}

// String returns the wire form used by the API and the CLI.
func (c Category) String() string {
	switch c {
	case SelfSponsored:
		return "self"
	case GovernmentSponsored:
		return "government"
	default:
		return ""
	}
}

// Label returns the human-readable name printed in reports.
func (c Category) Label() string {
	switch c {
	case SelfSponsored:
		return "Self-Sponsored"
	case GovernmentSponsored:
		return "Government-Sponsored"
	default:
		return "Not selected"
	}
}

// Valid reports whether c names a real category.
func (c Category) Valid() bool {
	return c == SelfSponsored || c == GovernmentSponsored
}

// ParseCategory accepts the wire form ("self", "government") or the label.
func ParseCategory(s string) (Category, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "self", "self-sponsored", "selfsponsored", "self_sponsored":
		return SelfSponsored, nil
	case "government", "government-sponsored", "governmentsponsored", "government_sponsored", "gov":
		return GovernmentSponsored, nil
	default:
		return NoCategory, fmt.Errorf("%w: %q", ErrUnknownCategory, s)
	}
}
