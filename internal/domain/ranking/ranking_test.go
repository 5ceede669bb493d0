package ranking_test

import (
	"context"
	"testing"

	"github.com/pitchlab/rabona/internal/domain/ranking"
	"github.com/pitchlab/rabona/internal/roster"
	. "github.com/smartystreets/goconvey/convey"
)

func testRoster() []roster.Player {
	return []roster.Player{
		{Name: "A", Position: "striker", Club: "X FC", Vector: []float64{1, 0, 0}},
		{Name: "B", Position: "winger", Club: "Y FC", Vector: []float64{0, 1, 0}},
		{Name: "C", Position: "midfielder", Club: "Z FC", Vector: []float64{1, 1, 0}},
		{Name: "D", Position: "defender", Club: "X FC", Vector: []float64{1, 0, 0}},
		{Name: "E", Position: "goalkeeper", Club: "Y FC", Vector: []float64{0, 0, 1}},
		{Name: "F", Position: "striker", Club: "Z FC", Vector: []float64{0.5, 0.5, 0.5}},
	}
}

func TestCosine(t *testing.T) {
	Convey("Given the cosine similarity function", t, func() {
		Convey("A vector against itself scores close to one", func() {
			v := []float64{0.3, 0.7, 0.2, 0.9}
			So(ranking.Cosine(v, v), ShouldAlmostEqual, 1.0, 1e-6)
		})

		Convey("Orthogonal vectors score zero", func() {
			So(ranking.Cosine([]float64{1, 0}, []float64{0, 1}), ShouldAlmostEqual, 0, 1e-9)
		})

		Convey("An all-zero vector scores zero instead of dividing by zero", func() {
			So(ranking.Cosine([]float64{0, 0}, []float64{1, 1}), ShouldEqual, 0)
		})
	})
}

func TestRanker(t *testing.T) {
	Convey("Given a ranker over a small roster", t, func() {
		ctx := context.Background()
		r, err := ranking.New(testRoster(), 3)
		So(err, ShouldBeNil)

		Convey("When ranking a vector identical to one roster entry", func() {
			matches, rankErr := r.Rank(ctx, []float64{1, 0, 0})

			Convey("Then that entry leads with similarity near one", func() {
				So(rankErr, ShouldBeNil)
				So(matches[0].Name, ShouldEqual, "A")
				So(matches[0].Similarity, ShouldAlmostEqual, 1.0, 1e-6)
			})

			Convey("And ties keep roster order", func() {
				// A and D share the same vector; A comes first in the roster.
				So(matches[0].Name, ShouldEqual, "A")
				So(matches[1].Name, ShouldEqual, "D")
			})

			Convey("And the result is capped at the default top five", func() {
				So(len(matches), ShouldEqual, 5)
			})

			Convey("And every similarity stays within [-1,1] up to epsilon", func() {
				for _, m := range matches {
					So(m.Similarity, ShouldBeBetweenOrEqual, -1.000001, 1.000001)
				}
			})
		})

		Convey("When ranking the same vector repeatedly", func() {
			first, err1 := r.Rank(ctx, []float64{0.2, 0.9, 0.4})
			second, err2 := r.Rank(ctx, []float64{0.2, 0.9, 0.4})

			Convey("Then the ordering is identical across calls", func() {
				So(err1, ShouldBeNil)
				So(err2, ShouldBeNil)
				So(second, ShouldResemble, first)
			})
		})

		Convey("When the top-N exceeds the roster size", func() {
			wide, err := ranking.New(testRoster(), 3, ranking.WithTopN(50))
			So(err, ShouldBeNil)

			matches, rankErr := wide.Rank(ctx, []float64{1, 1, 1})

			Convey("Then all roster entries are returned", func() {
				So(rankErr, ShouldBeNil)
				So(len(matches), ShouldEqual, len(testRoster()))
			})
		})

		Convey("When the player vector has the wrong dimension", func() {
			_, rankErr := r.Rank(ctx, []float64{1, 0})

			Convey("Then it reports a dimension mismatch", func() {
				So(rankErr, ShouldNotBeNil)
				So(rankErr.Error(), ShouldContainSubstring, "dimension")
			})
		})
	})

	Convey("Given a roster with a malformed vector", t, func() {
		bad := testRoster()
		bad[2].Vector = []float64{1, 0}

		Convey("When constructing the ranker", func() {
			_, err := ranking.New(bad, 3)

			Convey("Then construction fails fast", func() {
				So(err, ShouldNotBeNil)
				So(err.Error(), ShouldContainSubstring, "C")
			})
		})
	})
}
