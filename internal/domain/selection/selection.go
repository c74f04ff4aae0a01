// Package selection tracks the programs an applicant has picked for
// evaluation.
package selection

import (
	"errors"
	"fmt"
)

// MaxPrograms caps how many programs can be selected at once.
const MaxPrograms = 3

// Sentinel errors.
var (
	ErrSelectionLimitExceeded = errors.New("selection limit exceeded")
	ErrDuplicateProgram       = errors.New("program selected twice")
)

// Selection is an ordered, duplicate-free set of program names bounded by
// MaxPrograms. The zero value is an empty selection. It is not safe for
// concurrent mutation.
type Selection struct {
	programs []string
}

// New builds a selection from names in order, rejecting duplicates and more
// than MaxPrograms entries.
func New(programs ...string) (*Selection, error) {
	s := &Selection{}
	for _, p := range programs {
		if s.Contains(p) {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateProgram, p)
		}
		if len(s.programs) >= MaxPrograms {
			return nil, fmt.Errorf("%w: at most %d programs", ErrSelectionLimitExceeded, MaxPrograms)
		}
		s.programs = append(s.programs, p)
	}
	return s, nil
}

// Toggle removes program if selected, otherwise appends it. Adding to a full
// selection returns ErrSelectionLimitExceeded and leaves it unchanged.
// It reports whether program is selected afterwards.
func (s *Selection) Toggle(program string) (bool, error) {
	for i, p := range s.programs {
		if p == program {
			s.programs = append(s.programs[:i:i], s.programs[i+1:]...)
			return false, nil
		}
	}
	if len(s.programs) >= MaxPrograms {
		return false, fmt.Errorf("%w: you can select up to %d departments only", ErrSelectionLimitExceeded, MaxPrograms)
	}
	s.programs = append(s.programs, program)
	return true, nil
}

// Contains reports whether program is selected.
func (s *Selection) Contains(program string) bool {
	for _, p := range s.programs {
		if p == program {
			return true
		}
	}
	return false
}

// Programs returns a copy of the selected names in selection order.
func (s *Selection) Programs() []string {
	out := make([]string, len(s.programs))
	copy(out, s.programs)
	return out
}

// Len returns the number of selected programs.
func (s *Selection) Len() int { return len(s.programs) }

// Full reports whether another program can be added.
func (s *Selection) Full() bool { return len(s.programs) >= MaxPrograms }

// Clear empties the selection.
func (s *Selection) Clear() { s.programs = nil }
