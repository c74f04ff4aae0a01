package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/okian/admitcheck/internal/domain/cutoff"
	"github.com/okian/admitcheck/internal/domain/eligibility"
	"github.com/okian/admitcheck/internal/domain/scoring"
	"github.com/okian/admitcheck/internal/domain/selection"
	"github.com/okian/admitcheck/pkg/logger"
	"github.com/okian/admitcheck/pkg/metrics"
)

// Session holds one applicant's in-progress state: the last computed score,
// the sponsorship category, the track and up to three selected programs.
// Every read derives from the current state; nothing is cached.
type Session struct {
	mu sync.Mutex

	id       string
	svc      *Service
	score    *scoring.Score
	category cutoff.Category
	track    eligibility.Track
	sel      *selection.Selection
	logger   logger.Logger
}

// ID identifies the session in logs.
func (s *Session) ID() string { return s.id }

// Calculate validates and normalizes inputs and stores the score. On error
// the previous score is kept.
func (s *Session) Calculate(ctx context.Context, matric, uat float64) (scoring.Score, error) {
	score, err := s.svc.Score(ctx, scoring.RawInputs{Matric: matric, UAT: uat})
	if err != nil {
		return 0, err
	}
	s.mu.Lock()
	s.score = &score
	s.mu.Unlock()
	s.logger.Debug(ctx, "score calculated", logger.String("score", score.String()))
	return score, nil
}

// Score returns the stored score, if any.
func (s *Session) Score() (scoring.Score, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.score == nil {
		return 0, false
	}
	return *s.score, true
}

// SetCategory switches the sponsorship category. Program names are only
// meaningful within a category, so the selection is cleared on change.
func (s *Session) SetCategory(category cutoff.Category) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.category != category {
		s.sel.Clear()
	}
	s.category = category
}

// Category returns the active category.
func (s *Session) Category() cutoff.Category {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.category
}

// SetTrack sets the applicant's stream.
func (s *Session) SetTrack(track eligibility.Track) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.track = track
}

// Track returns the applicant's stream.
func (s *Session) Track() eligibility.Track {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.track
}

// Toggle adds program to the selection or removes it if present.
func (s *Session) Toggle(ctx context.Context, program string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	err := s.toggle(program)
	if err != nil {
		reason := selectionReason(err)
		metrics.RecordSelectionRejected(reason)
		s.logger.Debug(ctx, "selection change rejected",
			logger.String("program", program),
			logger.String("reason", reason),
		)
	}
	return err
}

func (s *Session) toggle(program string) error {
	if !s.category.Valid() {
		return ErrNoCategory
	}
	if !s.sel.Contains(program) && !s.svc.registry.Has(s.category, program) {
		return fmt.Errorf("%w: %q under %s", ErrUnknownProgram, program, s.category.Label())
	}
	_, err := s.sel.Toggle(program)
	return err
}

// Selection returns the selected programs in insertion order.
func (s *Session) Selection() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sel.Programs()
}

// Programs lists the programs selectable under the active category.
func (s *Session) Programs() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.category.Valid() {
		return nil
	}
	return s.svc.registry.Programs(s.category)
}

// Result evaluates the current state. It is empty until a score, a category
// and at least one program are present.
func (s *Session) Result(ctx context.Context) eligibility.Result {
	st := s.snapshot()
	if !st.ready() {
		return eligibility.Result{}
	}
	return s.svc.evaluate(ctx, st.score, st.category, st.programs, st.track)
}

// Advisory reports whether the stored score is below every cutoff of the
// active category.
func (s *Session) Advisory() bool {
	st := s.snapshot()
	if !st.hasScore || !st.category.Valid() {
		return false
	}
	return s.svc.advisory(st.score, st.category)
}

// Report renders the current result stamped with now.
func (s *Session) Report(ctx context.Context, now time.Time) ([]byte, error) {
	st := s.snapshot()
	if !st.hasScore {
		return nil, ErrNoScore
	}
	var res eligibility.Result
	if st.ready() {
		res = s.svc.evaluate(ctx, st.score, st.category, st.programs, st.track)
	}
	return s.svc.render(ctx, res, st.score, st.category, st.track, now)
}

type state struct {
	score    scoring.Score
	hasScore bool
	category cutoff.Category
	track    eligibility.Track
	programs []string
}

func (st state) ready() bool {
	return st.hasScore && st.category.Valid() && len(st.programs) > 0
}

func (s *Session) snapshot() state {
	s.mu.Lock()
	defer s.mu.Unlock()
	st := state{
		category: s.category,
		track:    s.track,
		programs: s.sel.Programs(),
	}
	if s.score != nil {
		st.score, st.hasScore = *s.score, true
	}
	return st
}
