package scoring_test

import (
	"errors"
	"math"
	"testing"

	scoring "github.com/okian/admitcheck/internal/domain/scoring"
	. "github.com/smartystreets/goconvey/convey"
)

func TestFormula_Normalize(t *testing.T) {
	Convey("Given the 2025/26 formula", t, func() {
		f := scoring.Default()

		Convey("Then its constants should be 60/420 and 40/160", func() {
			So(f.MatricMax, ShouldEqual, 420.0)
			So(f.MatricWeight, ShouldEqual, 60.0)
			So(f.UATMax, ShouldEqual, 160.0)
			So(f.UATWeight, ShouldEqual, 40.0)
			So(f.Validate(), ShouldBeNil)
		})

		Convey("When both inputs are at their maximum", func() {
			Convey("Then the score should be 100.00", func() {
				So(f.Normalize(420, 160), ShouldEqual, scoring.Score(100))
				So(f.Normalize(420, 160).String(), ShouldEqual, "100.00")
			})
		})

		Convey("When both inputs are zero", func() {
			Convey("Then the score should be 0.00", func() {
				So(f.Normalize(0, 0), ShouldEqual, scoring.Score(0))
				So(f.Normalize(0, 0).String(), ShouldEqual, "0.00")
			})
		})

		Convey("When inputs produce a long fraction", func() {
			// 300/420*60 = 42.857142..., 100/160*40 = 25
			s := f.Normalize(300, 100)

			Convey("Then the score should be rounded to two decimals", func() {
				So(s.Value(), ShouldEqual, 67.86)
			})
		})

		Convey("When the unrounded value sits just under a half cent", func() {
			// 1/420*60 = 0.142857...
			s := f.Normalize(1, 0)

			Convey("Then it should round to the nearest cent", func() {
				So(s.Value(), ShouldEqual, 0.14)
			})
		})

		Convey("When inputs are outside the domain", func() {
			Convey("Then Normalize should still be total", func() {
				So(f.Normalize(840, 0).Value(), ShouldEqual, 120.0)
				So(f.Normalize(-420, 0).Value(), ShouldEqual, -60.0)
			})
		})

		Convey("When sweeping each argument independently", func() {
			Convey("Then the score should be monotonic non-decreasing", func() {
				prev := f.Normalize(0, 80)
				for m := 0.0; m <= 420; m += 3.5 {
					cur := f.Normalize(m, 80)
					So(cur.Value(), ShouldBeGreaterThanOrEqualTo, prev.Value())
					prev = cur
				}
				prev = f.Normalize(210, 0)
				for u := 0.0; u <= 160; u += 1.25 {
					cur := f.Normalize(210, u)
					So(cur.Value(), ShouldBeGreaterThanOrEqualTo, prev.Value())
					prev = cur
				}
			})
		})

		Convey("When the same inputs are normalized twice", func() {
			Convey("Then the results should be identical", func() {
				So(f.Normalize(377, 121), ShouldEqual, f.Normalize(377, 121))
			})
		})
	})

	Convey("Given the legacy formula", t, func() {
		f, err := scoring.Preset(scoring.FormulaLegacy600)
		So(err, ShouldBeNil)

		Convey("Then it should equal Matric/12 + UAT/2", func() {
			So(f.Normalize(600, 100).Value(), ShouldEqual, 100.0)
			So(f.Normalize(480, 70).Value(), ShouldEqual, 480.0/12+70.0/2)
		})
	})
}

func TestFormula_Validate(t *testing.T) {
	Convey("Given formula constants", t, func() {
		Convey("When weights do not sum to 100", func() {
			f := scoring.Formula{MatricMax: 420, MatricWeight: 60, UATMax: 160, UATWeight: 30}

			Convey("Then validation should fail", func() {
				So(errors.Is(f.Validate(), scoring.ErrInvalidFormula), ShouldBeTrue)
			})
		})

		Convey("When a maximum is zero", func() {
			f := scoring.Formula{MatricMax: 0, MatricWeight: 60, UATMax: 160, UATWeight: 40}

			Convey("Then validation should fail", func() {
				So(errors.Is(f.Validate(), scoring.ErrInvalidFormula), ShouldBeTrue)
			})
		})

		Convey("When a weight is negative", func() {
			f := scoring.Formula{MatricMax: 420, MatricWeight: 110, UATMax: 160, UATWeight: -10}

			Convey("Then validation should fail", func() {
				So(errors.Is(f.Validate(), scoring.ErrInvalidFormula), ShouldBeTrue)
			})
		})

		Convey("When looking up an unknown preset", func() {
			_, err := scoring.Preset("aau-1999")

			Convey("Then it should fail with ErrUnknownFormula", func() {
				So(errors.Is(err, scoring.ErrUnknownFormula), ShouldBeTrue)
			})
		})

		Convey("Then every preset should validate", func() {
			for _, name := range scoring.PresetNames() {
				f, err := scoring.Preset(name)
				So(err, ShouldBeNil)
				So(f.Validate(), ShouldBeNil)
				So(f.Normalize(f.MatricMax, f.UATMax).Value(), ShouldEqual, float64(scoring.MaxScore))
			}
		})
	})
}

func TestFormula_CheckInputs(t *testing.T) {
	Convey("Given the 2025/26 formula", t, func() {
		f := scoring.Default()

		Convey("Then inputs on the domain boundary should be accepted", func() {
			So(f.CheckInputs(scoring.RawInputs{Matric: 0, UAT: 0}), ShouldBeNil)
			So(f.CheckInputs(scoring.RawInputs{Matric: 420, UAT: 160}), ShouldBeNil)
			So(f.CheckInputs(scoring.RawInputs{Matric: 301.5, UAT: 99.25}), ShouldBeNil)
		})

		Convey("When matric exceeds its maximum", func() {
			err := f.CheckInputs(scoring.RawInputs{Matric: 600, UAT: 100})

			Convey("Then it should be rejected naming the field", func() {
				So(errors.Is(err, scoring.ErrInputOutOfDomain), ShouldBeTrue)
				So(err.Error(), ShouldContainSubstring, "matric")
			})
		})

		Convey("When uat is negative", func() {
			err := f.CheckInputs(scoring.RawInputs{Matric: 300, UAT: -1})

			Convey("Then it should be rejected naming the field", func() {
				So(errors.Is(err, scoring.ErrInputOutOfDomain), ShouldBeTrue)
				So(err.Error(), ShouldContainSubstring, "uat")
			})
		})

		Convey("When inputs are not finite", func() {
			Convey("Then they should be rejected", func() {
				So(errors.Is(f.CheckInputs(scoring.RawInputs{Matric: math.NaN()}), scoring.ErrInputOutOfDomain), ShouldBeTrue)
				So(errors.Is(f.CheckInputs(scoring.RawInputs{UAT: math.Inf(1)}), scoring.ErrInputOutOfDomain), ShouldBeTrue)
			})
		})
	})
}

func TestBandOf(t *testing.T) {
	Convey("Given composite scores", t, func() {
		Convey("Then bands should follow the display thresholds", func() {
			So(scoring.BandOf(90), ShouldEqual, scoring.BandHigh)
			So(scoring.BandOf(75), ShouldEqual, scoring.BandHigh)
			So(scoring.BandOf(74.99), ShouldEqual, scoring.BandMedium)
			So(scoring.BandOf(60), ShouldEqual, scoring.BandMedium)
			So(scoring.BandOf(59.99), ShouldEqual, scoring.BandLow)
		})

		Convey("Then the lowest-cutoff advisory should trigger strictly below", func() {
			So(scoring.BelowLowestCutoff(51.99, 52), ShouldBeTrue)
			So(scoring.BelowLowestCutoff(52, 52), ShouldBeFalse)
		})
	})
}
