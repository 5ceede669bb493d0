package model_test

import (
	"encoding/json"
	"testing"

	"github.com/smartystreets/goconvey/convey"

	model "github.com/pitchlab/rabona/internal/domain/model"
)

func TestPlayerAttributesUnmarshal(t *testing.T) {
	convey.Convey("Given player attributes JSON", t, func() {
		convey.Convey("When all fields are present", func() {
			raw := `{"height_cm":181,"dominant_foot":"left","position":"striker","age":22,"pace":0.9,"dribbling":0.7,"passing":0.5,"shooting":0.95}`
			var attrs model.PlayerAttributes
			err := json.Unmarshal([]byte(raw), &attrs)

			convey.Convey("Then every field should be decoded as given", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(attrs.HeightCM, convey.ShouldEqual, 181)
				convey.So(attrs.DominantFoot, convey.ShouldEqual, "left")
				convey.So(attrs.Position, convey.ShouldEqual, "striker")
				convey.So(attrs.Age, convey.ShouldEqual, 22)
				convey.So(attrs.Pace, convey.ShouldEqual, 0.9)
				convey.So(attrs.Shooting, convey.ShouldEqual, 0.95)
			})
		})

		convey.Convey("When skill fields are omitted", func() {
			raw := `{"height_cm":170,"dominant_foot":"right","position":"defender","age":16}`
			var attrs model.PlayerAttributes
			err := json.Unmarshal([]byte(raw), &attrs)

			convey.Convey("Then the missing skills should take the default score", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(attrs.Pace, convey.ShouldEqual, model.DefaultSkillScore)
				convey.So(attrs.Dribbling, convey.ShouldEqual, model.DefaultSkillScore)
				convey.So(attrs.Passing, convey.ShouldEqual, model.DefaultSkillScore)
				convey.So(attrs.Shooting, convey.ShouldEqual, model.DefaultSkillScore)
			})
		})

		convey.Convey("When a skill is explicitly zero", func() {
			raw := `{"height_cm":170,"dominant_foot":"right","position":"defender","age":16,"pace":0}`
			var attrs model.PlayerAttributes
			err := json.Unmarshal([]byte(raw), &attrs)

			convey.Convey("Then the explicit zero should be kept", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(attrs.Pace, convey.ShouldEqual, 0)
				convey.So(attrs.Dribbling, convey.ShouldEqual, model.DefaultSkillScore)
			})
		})

		convey.Convey("When the JSON is malformed", func() {
			var attrs model.PlayerAttributes
			err := json.Unmarshal([]byte(`{"height_cm":`), &attrs)

			convey.Convey("Then decoding should fail", func() {
				convey.So(err, convey.ShouldNotBeNil)
			})
		})
	})
}

func TestSessionRoundtrip(t *testing.T) {
	convey.Convey("Given a populated session", t, func() {
		session := model.Session{
			ID: "f3a85e1c-0000-4000-8000-00000000abcd",
			Attributes: model.PlayerAttributes{
				HeightCM:     178,
				DominantFoot: "right",
				Position:     "winger",
				Age:          19,
				Pace:         0.8,
				Dribbling:    0.7,
				Passing:      0.6,
				Shooting:     0.5,
			},
			Metrics: model.Metrics{KneeFlex: 55, BodyLean: 12, SprintTempo: 170, Touches: 20},
			SimilarPlayers: []model.Match{
				{Name: "Lamine Yamal", Position: "winger", Club: "FC Barcelona", Similarity: 0.93},
			},
		}

		convey.Convey("When encoding it to JSON", func() {
			data, err := json.Marshal(session)

			convey.Convey("Then it should use the wire field names", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(string(data), convey.ShouldContainSubstring, `"attrs"`)
				convey.So(string(data), convey.ShouldContainSubstring, `"similar_players"`)
				convey.So(string(data), convey.ShouldContainSubstring, `"knee_flex"`)
			})

			convey.Convey("And decoding should restore the record", func() {
				var got model.Session
				convey.So(json.Unmarshal(data, &got), convey.ShouldBeNil)
				convey.So(got.ID, convey.ShouldEqual, session.ID)
				convey.So(got.Metrics, convey.ShouldResemble, session.Metrics)
				convey.So(got.SimilarPlayers, convey.ShouldResemble, session.SimilarPlayers)
			})
		})
	})
}
