package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	service "github.com/okian/admitcheck/internal/app"
	"github.com/okian/admitcheck/internal/domain/cutoff"
	"github.com/okian/admitcheck/internal/domain/eligibility"
	"github.com/okian/admitcheck/internal/domain/scoring"
	"github.com/okian/admitcheck/internal/domain/selection"
	. "github.com/smartystreets/goconvey/convey"
)

func TestSession_Selection(t *testing.T) {
	Convey("Given a new session", t, func() {
		ctx := context.Background()
		sess := service.New().NewSession()

		Convey("It has an identifier", func() {
			So(sess.ID(), ShouldNotBeEmpty)
		})

		Convey("Toggling without a category fails", func() {
			So(errors.Is(sess.Toggle(ctx, "Medicine"), service.ErrNoCategory), ShouldBeTrue)
			So(sess.Programs(), ShouldBeNil)
		})

		Convey("When self-sponsored is chosen", func() {
			sess.SetCategory(cutoff.SelfSponsored)

			Convey("Programs list the category table", func() {
				So(sess.Programs()[0], ShouldEqual, "Medicine")
				So(sess.Programs(), ShouldContain, "Management")
			})

			Convey("Toggle adds then removes", func() {
				So(sess.Toggle(ctx, "Law"), ShouldBeNil)
				So(sess.Selection(), ShouldResemble, []string{"Law"})
				So(sess.Toggle(ctx, "Law"), ShouldBeNil)
				So(sess.Selection(), ShouldBeEmpty)
			})

			Convey("A fourth program is rejected and the selection kept", func() {
				for _, p := range []string{"Medicine", "Law", "Economics"} {
					So(sess.Toggle(ctx, p), ShouldBeNil)
				}
				err := sess.Toggle(ctx, "Management")
				So(errors.Is(err, selection.ErrSelectionLimitExceeded), ShouldBeTrue)
				So(sess.Selection(), ShouldResemble, []string{"Medicine", "Law", "Economics"})
			})

			Convey("Unknown programs are rejected", func() {
				err := sess.Toggle(ctx, "Astrology")
				So(errors.Is(err, service.ErrUnknownProgram), ShouldBeTrue)
			})

			Convey("Switching category clears the selection", func() {
				So(sess.Toggle(ctx, "Law"), ShouldBeNil)
				sess.SetCategory(cutoff.GovernmentSponsored)
				So(sess.Selection(), ShouldBeEmpty)
				So(sess.Category(), ShouldEqual, cutoff.GovernmentSponsored)
			})

			Convey("Re-selecting the same category keeps the selection", func() {
				So(sess.Toggle(ctx, "Law"), ShouldBeNil)
				sess.SetCategory(cutoff.SelfSponsored)
				So(sess.Selection(), ShouldResemble, []string{"Law"})
			})
		})
	})
}

func TestSession_Result(t *testing.T) {
	Convey("Given a session", t, func() {
		ctx := context.Background()
		sess := service.New().NewSession()

		Convey("The result is empty without a score", func() {
			sess.SetCategory(cutoff.SelfSponsored)
			So(sess.Toggle(ctx, "Medicine"), ShouldBeNil)
			So(sess.Result(ctx).Empty(), ShouldBeTrue)
		})

		Convey("Out of domain input keeps the previous score", func() {
			_, err := sess.Calculate(ctx, 420, 160)
			So(err, ShouldBeNil)
			_, err = sess.Calculate(ctx, 500, 160)
			So(errors.Is(err, scoring.ErrInputOutOfDomain), ShouldBeTrue)
			score, ok := sess.Score()
			So(ok, ShouldBeTrue)
			So(score.String(), ShouldEqual, "100.00")
		})

		Convey("A failing self-sponsored natural applicant gets the fallback (scenario B)", func() {
			_, err := sess.Calculate(ctx, 0, 0)
			So(err, ShouldBeNil)
			sess.SetCategory(cutoff.SelfSponsored)
			sess.SetTrack(eligibility.Natural)
			So(sess.Toggle(ctx, "Medicine"), ShouldBeNil)

			res := sess.Result(ctx)
			So(res.Len(), ShouldEqual, 2)
			So(res.Verdicts[1].Fallback, ShouldBeTrue)
			So(res.Verdicts[1].Program, ShouldEqual, cutoff.NaturalFreshmanProgram+eligibility.FallbackSuffix)
			So(sess.Advisory(), ShouldBeTrue)
			So(sess.Track(), ShouldEqual, eligibility.Natural)
		})

		Convey("The result is recomputed after every change", func() {
			_, err := sess.Calculate(ctx, 300, 100)
			So(err, ShouldBeNil)
			sess.SetCategory(cutoff.SelfSponsored)
			So(sess.Toggle(ctx, "Computer Science"), ShouldBeNil)
			So(sess.Result(ctx).PassCount(), ShouldEqual, 1)

			_, err = sess.Calculate(ctx, 200, 100)
			So(err, ShouldBeNil)
			So(sess.Result(ctx).PassCount(), ShouldEqual, 0)
		})
	})
}

func TestSession_Report(t *testing.T) {
	Convey("Given a session", t, func() {
		ctx := context.Background()
		sess := service.New().NewSession()
		now := time.Date(2025, time.September, 14, 0, 0, 0, 0, time.UTC)

		Convey("Report without a score fails", func() {
			_, err := sess.Report(ctx, now)
			So(errors.Is(err, service.ErrNoScore), ShouldBeTrue)
		})

		Convey("Report with a score and no selection still renders", func() {
			_, err := sess.Calculate(ctx, 350, 120)
			So(err, ShouldBeNil)
			pdf, err := sess.Report(ctx, now)
			So(err, ShouldBeNil)
			So(string(pdf[:5]), ShouldEqual, "%PDF-")
		})
	})
}
