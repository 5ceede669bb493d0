package advice_test

import (
	"testing"

	"github.com/pitchlab/rabona/internal/domain/advice"
	"github.com/pitchlab/rabona/internal/domain/model"
	. "github.com/smartystreets/goconvey/convey"
)

func TestSuggest(t *testing.T) {
	Convey("Given the suggestion rules", t, func() {
		good := model.Metrics{KneeFlex: 70, BodyLean: 20, SprintTempo: 180, Touches: 25}

		Convey("When every metric clears its threshold", func() {
			out := advice.Suggest(good)

			Convey("Then only the fallback suggestion is returned", func() {
				So(len(out), ShouldEqual, 1)
				So(out[0], ShouldContainSubstring, "Good mechanics")
			})
		})

		Convey("When a single metric falls below its threshold", func() {
			m := good
			m.KneeFlex = 40
			out := advice.Suggest(m)

			Convey("Then exactly that rule fires and the fallback does not", func() {
				So(len(out), ShouldEqual, 1)
				So(out[0], ShouldContainSubstring, "knee flexion")
			})
		})

		Convey("When all metrics fall below their thresholds", func() {
			m := model.Metrics{KneeFlex: 30, BodyLean: 5, SprintTempo: 140, Touches: 10}
			out := advice.Suggest(m)

			Convey("Then all four rules fire in rule order", func() {
				So(len(out), ShouldEqual, 4)
				So(out[0], ShouldContainSubstring, "knee flexion")
				So(out[1], ShouldContainSubstring, "torso")
				So(out[2], ShouldContainSubstring, "cadence")
				So(out[3], ShouldContainSubstring, "touches")
			})
		})

		Convey("When a metric sits exactly on the threshold", func() {
			m := good
			m.SprintTempo = advice.SprintTempoThreshold
			out := advice.Suggest(m)

			Convey("Then the rule does not fire", func() {
				So(len(out), ShouldEqual, 1)
				So(out[0], ShouldContainSubstring, "Good mechanics")
			})
		})

		Convey("The suggestion list is never empty", func() {
			cases := []model.Metrics{
				good,
				{KneeFlex: 0, BodyLean: 0, SprintTempo: 0, Touches: 0},
				{KneeFlex: 49, BodyLean: 30, SprintTempo: 200, Touches: 35},
			}
			for _, m := range cases {
				So(len(advice.Suggest(m)), ShouldBeGreaterThanOrEqualTo, 1)
			}
		})
	})
}
