package eligibility_test

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/okian/admitcheck/internal/domain/cutoff"
	"github.com/okian/admitcheck/internal/domain/eligibility"
	"github.com/okian/admitcheck/internal/domain/scoring"
	. "github.com/smartystreets/goconvey/convey"
)

func testRegistry() *cutoff.Registry {
	return cutoff.MustNew(
		cutoff.Table{
			Category: cutoff.SelfSponsored,
			Entries: []cutoff.Entry{
				{Program: "Medicine", Threshold: 78},
				{Program: "Law", Threshold: 64},
				{Program: "Accounting and Finance", Threshold: 60},
				{Program: cutoff.NaturalFreshmanProgram, Threshold: 54},
				{Program: cutoff.SocialFreshmanProgram, Threshold: 52},
			},
		},
		cutoff.Table{
			Category: cutoff.GovernmentSponsored,
			Entries: []cutoff.Entry{
				{Program: "Medicine", Threshold: 85},
				{Program: "Law", Threshold: 72},
			},
		},
	)
}

func TestEvaluator_Scenarios(t *testing.T) {
	Convey("Given the 2025/26 formula and the default registry", t, func() {
		f := scoring.Default()
		ev := eligibility.New(cutoff.Default())

		Convey("When a perfect applicant picks one program with cutoff 60 (scenario A)", func() {
			score := f.Normalize(420, 160)
			res := ev.Evaluate(score, cutoff.SelfSponsored, []string{"Accounting and Finance"}, eligibility.NoTrack)

			Convey("Then it should pass with difference 40", func() {
				So(score.String(), ShouldEqual, "100.00")
				So(res.Len(), ShouldEqual, 1)
				So(res.Verdicts[0].Passed, ShouldBeTrue)
				So(res.Verdicts[0].Difference, ShouldEqual, 40.0)
				So(res.Verdicts[0].Cutoff, ShouldEqual, 60.0)
				So(res.FallbackApplied(), ShouldBeFalse)
			})
		})

		Convey("When a zero applicant on the natural track picks one program (scenario B)", func() {
			score := f.Normalize(0, 0)
			res := ev.Evaluate(score, cutoff.SelfSponsored, []string{"Medicine"}, eligibility.Natural)

			Convey("Then the pick should fail and the natural freshman program be auto-checked", func() {
				So(score.String(), ShouldEqual, "0.00")
				So(res.Len(), ShouldEqual, 2)
				So(res.Verdicts[0].Passed, ShouldBeFalse)
				So(res.Verdicts[0].Difference, ShouldBeLessThan, 0)
				fb := res.Verdicts[1]
				So(fb.Fallback, ShouldBeTrue)
				So(fb.Program, ShouldEqual, cutoff.NaturalFreshmanProgram+eligibility.FallbackSuffix)
				So(fb.Passed, ShouldBeFalse)
				So(res.FallbackApplied(), ShouldBeTrue)
			})
		})
	})
}

func TestEvaluator_Evaluate(t *testing.T) {
	Convey("Given an evaluator over a small registry", t, func() {
		ev := eligibility.New(testRegistry())

		Convey("When the score equals a cutoff", func() {
			res := ev.Evaluate(64, cutoff.SelfSponsored, []string{"Law"}, eligibility.NoTrack)

			Convey("Then it should pass with zero difference", func() {
				So(res.Verdicts[0].Passed, ShouldBeTrue)
				So(res.Verdicts[0].Difference, ShouldEqual, 0.0)
			})
		})

		Convey("When several programs are selected", func() {
			sel := []string{"Law", "Medicine", "Accounting and Finance"}
			res := ev.Evaluate(70, cutoff.SelfSponsored, sel, eligibility.Social)

			Convey("Then verdicts should follow selection order", func() {
				So(res.Len(), ShouldEqual, 3)
				for i, p := range sel {
					So(res.Verdicts[i].Program, ShouldEqual, p)
					So(res.Verdicts[i].Score, ShouldEqual, 70.0)
				}
			})

			Convey("And counts should reflect pass/fail", func() {
				So(res.PassCount(), ShouldEqual, 2)
				So(res.Total(), ShouldEqual, 3)
				So(res.ReportPassed(), ShouldEqual, 2)
			})

			Convey("And no fallback should be added because one passed", func() {
				So(res.FallbackApplied(), ShouldBeFalse)
			})

			Convey("And differences should be signed", func() {
				So(res.Verdicts[0].Difference, ShouldEqual, 6.0)
				So(res.Verdicts[1].Difference, ShouldEqual, -8.0)
			})
		})

		Convey("When a selected program is missing from the registry", func() {
			var misses []string
			ev := eligibility.New(testRegistry(), eligibility.WithMissHook(func(_ cutoff.Category, p string) {
				misses = append(misses, p)
			}))
			res := ev.Evaluate(70, cutoff.GovernmentSponsored, []string{"Medicine", "Astrology", "Law"}, eligibility.NoTrack)

			Convey("Then it should be omitted and the rest still evaluated", func() {
				So(res.Len(), ShouldEqual, 2)
				So(res.Verdicts[0].Program, ShouldEqual, "Medicine")
				So(res.Verdicts[1].Program, ShouldEqual, "Law")
				So(res.Omitted, ShouldResemble, []string{"Astrology"})
				So(misses, ShouldResemble, []string{"Astrology"})
			})
		})

		Convey("When more than three programs are passed in", func() {
			res := ev.Evaluate(99, cutoff.SelfSponsored, []string{"Medicine", "Law", "Accounting and Finance", cutoff.SocialFreshmanProgram}, eligibility.NoTrack)

			Convey("Then all of them should be evaluated", func() {
				So(res.Len(), ShouldEqual, 4)
				So(res.PassCount(), ShouldEqual, 4)
			})
		})

		Convey("When the selection is empty", func() {
			res := ev.Evaluate(10, cutoff.SelfSponsored, nil, eligibility.Natural)

			Convey("Then the result should be empty and no fallback added", func() {
				So(res.Empty(), ShouldBeTrue)
				So(res.PassCount(), ShouldEqual, 0)
				So(res.Total(), ShouldEqual, 0)
			})
		})

		Convey("When evaluating twice with identical inputs", func() {
			a := ev.Evaluate(58.5, cutoff.SelfSponsored, []string{"Law", "Medicine"}, eligibility.Social)
			b := ev.Evaluate(58.5, cutoff.SelfSponsored, []string{"Law", "Medicine"}, eligibility.Social)

			Convey("Then the results should be byte-identical", func() {
				ja, err := json.Marshal(a)
				So(err, ShouldBeNil)
				jb, err := json.Marshal(b)
				So(err, ShouldBeNil)
				So(string(ja), ShouldEqual, string(jb))
			})
		})
	})
}

func TestEvaluator_Fallback(t *testing.T) {
	Convey("Given an evaluator over a small registry", t, func() {
		ev := eligibility.New(testRegistry())
		failing := []string{"Medicine", "Law"}

		Convey("When self-sponsored, track set and every pick fails", func() {
			res := ev.Evaluate(53, cutoff.SelfSponsored, failing, eligibility.Social)

			Convey("Then exactly one fallback verdict should be appended last", func() {
				So(res.Len(), ShouldEqual, 3)
				So(res.Verdicts[0].Program, ShouldEqual, "Medicine")
				So(res.Verdicts[1].Program, ShouldEqual, "Law")
				fb := res.Verdicts[2]
				So(fb.Fallback, ShouldBeTrue)
				So(fb.Program, ShouldEqual, cutoff.SocialFreshmanProgram+" (Auto-checked)")
				So(fb.Cutoff, ShouldEqual, 52.0)
				So(fb.Passed, ShouldBeTrue)
			})

			Convey("And the fallback should not count towards the pass count", func() {
				So(res.PassCount(), ShouldEqual, 0)
				So(res.Total(), ShouldEqual, 2)
			})

			Convey("And it should count in the report totals", func() {
				So(res.ReportPassed(), ShouldEqual, 1)
				So(res.Len(), ShouldEqual, 3)
			})
		})

		Convey("When the natural track is used", func() {
			res := ev.Evaluate(53, cutoff.SelfSponsored, failing, eligibility.Natural)

			Convey("Then the natural freshman cutoff should be used", func() {
				fb := res.Verdicts[len(res.Verdicts)-1]
				So(fb.Cutoff, ShouldEqual, 54.0)
				So(fb.Passed, ShouldBeFalse)
			})
		})

		Convey("When no track is set", func() {
			res := ev.Evaluate(53, cutoff.SelfSponsored, failing, eligibility.NoTrack)

			Convey("Then no fallback should be added", func() {
				So(res.FallbackApplied(), ShouldBeFalse)
				So(res.Len(), ShouldEqual, 2)
			})
		})

		Convey("When the category is government-sponsored", func() {
			Convey("Then the fallback should never apply", func() {
				for _, tr := range []eligibility.Track{eligibility.Natural, eligibility.Social} {
					for _, score := range []scoring.Score{0, 50, 71.99, 100} {
						res := ev.Evaluate(score, cutoff.GovernmentSponsored, failing, tr)
						So(res.FallbackApplied(), ShouldBeFalse)
						So(res.Len(), ShouldEqual, 2)
					}
				}
			})
		})

		Convey("When at least one pick passes", func() {
			res := ev.Evaluate(65, cutoff.SelfSponsored, failing, eligibility.Natural)

			Convey("Then no fallback should be added", func() {
				So(res.FallbackApplied(), ShouldBeFalse)
				So(res.PassCount(), ShouldEqual, 1)
			})
		})

		Convey("When every pick was missing from the registry", func() {
			res := ev.Evaluate(10, cutoff.SelfSponsored, []string{"Astrology"}, eligibility.Natural)

			Convey("Then nothing was evaluated so no fallback should be added", func() {
				So(res.Empty(), ShouldBeTrue)
				So(res.Omitted, ShouldResemble, []string{"Astrology"})
			})
		})

		Convey("When the freshman program itself is missing", func() {
			var misses []string
			reg := cutoff.MustNew(cutoff.Table{
				Category: cutoff.SelfSponsored,
				Entries:  []cutoff.Entry{{Program: "Law", Threshold: 64}},
			})
			ev := eligibility.New(reg, eligibility.WithMissHook(func(_ cutoff.Category, p string) {
				misses = append(misses, p)
			}))
			res := ev.Evaluate(10, cutoff.SelfSponsored, []string{"Law"}, eligibility.Natural)

			Convey("Then the fallback should be skipped and the miss reported", func() {
				So(res.Len(), ShouldEqual, 1)
				So(misses, ShouldResemble, []string{cutoff.NaturalFreshmanProgram})
			})
		})
	})
}

func TestParseTrack(t *testing.T) {
	Convey("Given track inputs", t, func() {
		Convey("Then known values should parse", func() {
			tr, err := eligibility.ParseTrack("Natural")
			So(err, ShouldBeNil)
			So(tr, ShouldEqual, eligibility.Natural)

			tr, err = eligibility.ParseTrack("social")
			So(err, ShouldBeNil)
			So(tr, ShouldEqual, eligibility.Social)

			tr, err = eligibility.ParseTrack("")
			So(err, ShouldBeNil)
			So(tr, ShouldEqual, eligibility.NoTrack)
		})

		Convey("Then unknown values should be rejected", func() {
			_, err := eligibility.ParseTrack("arts")
			So(errors.Is(err, eligibility.ErrUnknownTrack), ShouldBeTrue)
		})

		Convey("Then only real tracks should map to a freshman program", func() {
			_, ok := eligibility.NoTrack.FreshmanProgram()
			So(ok, ShouldBeFalse)
			p, ok := eligibility.Social.FreshmanProgram()
			So(ok, ShouldBeTrue)
			So(p, ShouldEqual, cutoff.SocialFreshmanProgram)
		})
	})
}
