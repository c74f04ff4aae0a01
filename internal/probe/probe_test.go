package probe

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/okian/admitcheck/internal/adapters/http/api"
	service "github.com/okian/admitcheck/internal/app"
	"github.com/okian/admitcheck/internal/domain/cutoff"
	"github.com/okian/admitcheck/internal/domain/eligibility"
	"github.com/okian/admitcheck/internal/domain/scoring"
	"github.com/okian/admitcheck/internal/domain/selection"
	"github.com/okian/admitcheck/pkg/logger"
)

func newAPIServer(svc *service.Service) *httptest.Server {
	mux := http.NewServeMux()
	api.NewServer(svc, svc, logger.Nop()).Register(mux)
	return httptest.NewServer(mux)
}

func TestGenerateApplicants(t *testing.T) {
	Convey("Given the default formula and registry", t, func() {
		f := scoring.Default()
		reg := cutoff.Default()
		applicants := generateApplicants(200, f, reg)

		Convey("Every applicant is a valid request", func() {
			So(applicants, ShouldHaveLength, 200)
			for _, a := range applicants {
				So(f.CheckInputs(scoring.RawInputs{Matric: a.Matric, UAT: a.UAT}), ShouldBeNil)
				cat, err := cutoff.ParseCategory(a.Category)
				So(err, ShouldBeNil)
				_, err = selection.New(a.Departments...)
				So(err, ShouldBeNil)
				So(len(a.Departments), ShouldBeGreaterThan, 0)
				for _, d := range a.Departments {
					So(reg.Has(cat, d), ShouldBeTrue)
				}
				So(a.ID, ShouldNotBeEmpty)
			}
		})
	})
}

func TestRun(t *testing.T) {
	Convey("Given a running server with the legacy formula", t, func() {
		legacy, err := scoring.Preset(scoring.FormulaLegacy600)
		So(err, ShouldBeNil)
		srv := newAPIServer(service.New(service.WithFormula(legacy)))
		defer srv.Close()

		Convey("When probing it", func() {
			stats, err := Run(context.Background(), Config{
				BaseURL:    srv.URL,
				Applicants: 50,
				Workers:    4,
				Timeout:    5 * time.Second,
			}, logger.Nop())

			Convey("Then every verdict matches", func() {
				So(err, ShouldBeNil)
				So(stats.Generated, ShouldEqual, 50)
				So(stats.Submitted, ShouldEqual, 50)
				So(stats.Matched, ShouldEqual, 50)
				So(stats.Failed, ShouldEqual, 0)
			})
		})
	})

	Convey("Given an unhealthy server", t, func() {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusServiceUnavailable)
		}))
		defer srv.Close()

		_, err := Run(context.Background(), Config{BaseURL: srv.URL, Applicants: 1, Timeout: time.Second}, nil)
		So(errors.Is(err, ErrUnhealthy), ShouldBeTrue)
	})
}

func TestCompare(t *testing.T) {
	Convey("Given a local outcome", t, func() {
		local := service.Outcome{
			Score: 53.57,
			Result: eligibility.Result{Verdicts: []eligibility.Verdict{
				{Program: "Medicine", Cutoff: 78, Score: 53.57, Passed: false, Difference: -24.43},
			}},
		}
		remote := Response{
			Score:    53.57,
			Verdicts: []eligibility.Verdict{{Program: "Medicine", Cutoff: 78, Score: 53.57}},
		}

		Convey("An identical response matches", func() {
			So(compare(local, remote), ShouldBeNil)
		})

		Convey("A different status is reported", func() {
			remote.Verdicts[0].Passed = true
			remote.Passed = 1
			So(compare(local, remote), ShouldNotBeNil)
		})

		Convey("A different score is reported", func() {
			remote.Score = 53.58
			So(compare(local, remote), ShouldNotBeNil)
		})

		Convey("A missing fallback row is reported", func() {
			local.Result.Verdicts = append(local.Result.Verdicts, eligibility.Verdict{
				Program: cutoff.NaturalFreshmanProgram + eligibility.FallbackSuffix, Cutoff: 54, Fallback: true,
			})
			So(compare(local, remote), ShouldNotBeNil)
		})
	})
}
