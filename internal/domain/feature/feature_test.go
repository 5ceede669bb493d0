package feature_test

import (
	"testing"

	"github.com/pitchlab/rabona/internal/domain/feature"
	"github.com/pitchlab/rabona/internal/domain/model"
	. "github.com/smartystreets/goconvey/convey"
)

func TestEncode(t *testing.T) {
	Convey("Given a set of player attributes", t, func() {
		attrs := model.PlayerAttributes{
			HeightCM:     180,
			DominantFoot: "right",
			Position:     "striker",
			Age:          22,
			Pace:         0.8,
			Dribbling:    0.7,
			Passing:      0.6,
			Shooting:     0.9,
		}

		Convey("When encoding", func() {
			v := feature.Encode(attrs)

			Convey("Then the vector has the fixed attribute length", func() {
				So(len(v), ShouldEqual, feature.AttributeLen)
			})

			Convey("And height and age are normalized into [0,1]", func() {
				So(v[0], ShouldAlmostEqual, 0.6) // (180-150)/50
				So(v[1], ShouldAlmostEqual, 0.5) // (22-12)/20
			})

			Convey("And skill scores pass through unchanged", func() {
				So(v[2], ShouldAlmostEqual, 0.8)
				So(v[3], ShouldAlmostEqual, 0.7)
				So(v[4], ShouldAlmostEqual, 0.6)
				So(v[5], ShouldAlmostEqual, 0.9)
			})

			Convey("And exactly one foot flag is set", func() {
				So(v[6], ShouldEqual, 1) // right
				So(v[7], ShouldEqual, 0)
				So(v[8], ShouldEqual, 0)
			})

			Convey("And exactly one position flag is set", func() {
				So(v[9], ShouldEqual, 0)  // winger
				So(v[10], ShouldEqual, 1) // striker
				So(v[11]+v[12]+v[13], ShouldEqual, 0)
			})

			Convey("And the composite indices average the skills", func() {
				So(v[14], ShouldAlmostEqual, (0.8+0.9)/2)
				So(v[15], ShouldAlmostEqual, (0.7+0.6)/2)
				So(v[16], ShouldAlmostEqual, (0.8+0.7+0.6+0.9)/4)
			})
		})

		Convey("When height and age sit outside the supported ranges", func() {
			attrs.HeightCM = 142
			attrs.Age = 40
			v := feature.Encode(attrs)

			Convey("Then the derived features clamp exactly to the boundary", func() {
				So(v[0], ShouldEqual, 0)
				So(v[1], ShouldEqual, 1)
			})
		})

		Convey("When height and age sit exactly on the boundaries", func() {
			attrs.HeightCM = 200
			attrs.Age = 12
			v := feature.Encode(attrs)

			So(v[0], ShouldEqual, 1)
			So(v[1], ShouldEqual, 0)
		})

		Convey("When the dominant foot is unrecognized", func() {
			attrs.DominantFoot = "ambidextrous"
			v := feature.Encode(attrs)

			Convey("Then all foot flags stay zero", func() {
				So(v[6]+v[7]+v[8], ShouldEqual, 0)
			})
		})

		Convey("When the position is unrecognized", func() {
			attrs.Position = "libero"
			v := feature.Encode(attrs)

			Convey("Then all position flags stay zero", func() {
				So(v[9]+v[10]+v[11]+v[12]+v[13], ShouldEqual, 0)
			})
		})

		Convey("When encoding a two-footed left winger", func() {
			attrs.DominantFoot = "two-footed"
			attrs.Position = "winger"
			v := feature.Encode(attrs)

			So(v[8], ShouldEqual, 1)
			So(v[9], ShouldEqual, 1)
			So(v[6]+v[7], ShouldEqual, 0)
		})
	})
}

func TestCompose(t *testing.T) {
	Convey("Given an attribute vector and metrics", t, func() {
		attrs := model.PlayerAttributes{HeightCM: 175, Age: 20, Position: "midfielder", DominantFoot: "left"}
		attrVec := feature.Encode(attrs)

		Convey("When composing with in-range metrics", func() {
			m := model.Metrics{KneeFlex: 60, BodyLean: 15, SprintTempo: 176, Touches: 30}
			v := feature.Compose(attrVec, m)

			Convey("Then the player vector has the full length", func() {
				So(len(v), ShouldEqual, feature.PlayerVectorLen)
			})

			Convey("And the metric tail uses the fixed scale divisors", func() {
				So(v[17], ShouldAlmostEqual, 60.0/feature.KneeFlexScale)
				So(v[18], ShouldAlmostEqual, 15.0/feature.BodyLeanScale)
				So(v[19], ShouldAlmostEqual, 176.0/feature.SprintTempoScale)
				So(v[20], ShouldAlmostEqual, 30.0/feature.TouchesScale)
			})

			Convey("And the attribute prefix is untouched", func() {
				for i := range attrVec {
					So(v[i], ShouldEqual, attrVec[i])
				}
			})
		})

		Convey("When a metric exceeds its scale", func() {
			m := model.Metrics{KneeFlex: 200, BodyLean: 90, SprintTempo: 500, Touches: 400}
			v := feature.Compose(attrVec, m)

			Convey("Then the normalized values cap at one", func() {
				So(v[17], ShouldEqual, 1)
				So(v[18], ShouldEqual, 1)
				So(v[19], ShouldEqual, 1)
				So(v[20], ShouldEqual, 1)
			})
		})
	})
}
