package probe

import (
	"fmt"

	service "github.com/okian/admitcheck/internal/app"
)

// compare reports the first difference between a server response and the
// local outcome for the same applicant.
func compare(local service.Outcome, remote Response) error {
	if local.Score.Value() != remote.Score {
		return fmt.Errorf("score: local %s, server %.2f", local.Score, remote.Score)
	}
	if local.Result.Len() != len(remote.Verdicts) {
		return fmt.Errorf("verdict count: local %d, server %d", local.Result.Len(), len(remote.Verdicts))
	}
	for i, want := range local.Result.Verdicts {
		got := remote.Verdicts[i]
		switch {
		case want.Program != got.Program:
			return fmt.Errorf("verdict %d program: local %q, server %q", i, want.Program, got.Program)
		case want.Cutoff != got.Cutoff:
			return fmt.Errorf("verdict %d cutoff: local %g, server %g", i, want.Cutoff, got.Cutoff)
		case want.Passed != got.Passed:
			return fmt.Errorf("verdict %d status: local %t, server %t", i, want.Passed, got.Passed)
		case want.Fallback != got.Fallback:
			return fmt.Errorf("verdict %d fallback: local %t, server %t", i, want.Fallback, got.Fallback)
		}
	}
	if local.Result.ReportPassed() != remote.Passed {
		return fmt.Errorf("passed: local %d, server %d", local.Result.ReportPassed(), remote.Passed)
	}
	if local.Result.FallbackApplied() != remote.FallbackApplied {
		return fmt.Errorf("fallback: local %t, server %t", local.Result.FallbackApplied(), remote.FallbackApplied)
	}
	return nil
}
