// Package probe drives a running admitcheck server with generated applicants
// and checks every verdict it returns against an in-process evaluation.
package probe

import (
	"time"

	"github.com/okian/admitcheck/internal/domain/eligibility"
)

// Config holds configuration for a probe run.
type Config struct {
	BaseURL    string        // Base URL of the service
	Applicants int           // Number of applicants to generate
	Workers    int           // Number of concurrent workers
	Timeout    time.Duration // HTTP request timeout
	Verbose    bool          // Log every mismatch
}

// Applicant is one generated request body for POST /eligibility.
type Applicant struct {
	ID          string   `json:"-"`
	Matric      float64  `json:"matric"`
	UAT         float64  `json:"uat"`
	Category    string   `json:"category"`
	Track       string   `json:"track,omitempty"`
	Departments []string `json:"departments"`
}

// Response mirrors the body of a successful POST /eligibility.
type Response struct {
	Score           float64               `json:"score"`
	Passed          int                   `json:"passed"`
	Total           int                   `json:"total"`
	FallbackApplied bool                  `json:"fallback_applied"`
	Verdicts        []eligibility.Verdict `json:"verdicts"`
}

// Stats holds run statistics.
type Stats struct {
	Generated  int
	Submitted  int
	Matched    int
	Mismatched int
	Failed     int
	Fallbacks  int
	StartTime  time.Time
	EndTime    time.Time
	Duration   time.Duration
}
