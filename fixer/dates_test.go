package fixer

import (
	"testing"

	"github.com/malfix-cli/malfix/mal"
	. "github.com/smartystreets/goconvey/convey"
)

func TestDetermineDates(t *testing.T) {
	Convey("DetermineDates", t, func() {
		Convey("Derives start and finish from a simple watch-through", func() {
			// Newest first, as scraped.
			history := []mal.WatchEvent{
				{Count: 3, Date: "2021-02-15", Time: "21:04"},
				{Count: 2, Date: "2021-02-14", Time: "19:30"},
				{Count: 1, Date: "2021-02-13", Time: "09:12"},
			}

			proposal, err := DetermineDates(history)
			So(err, ShouldBeNil)
			So(proposal.StartDate, ShouldEqual, "2021-02-13")
			So(proposal.FinishDate, ShouldEqual, "2021-02-15")
		})

		Convey("Uses the earliest watch of a rewatched first episode", func() {
			history := []mal.WatchEvent{
				{Count: 2, Date: "2021-03-01"},
				{Count: 1, Date: "2021-02-20"}, // rewatch
				{Count: 1, Date: "2021-01-01"}, // original start
			}

			proposal, err := DetermineDates(history)
			So(err, ShouldBeNil)
			So(proposal.StartDate, ShouldEqual, "2021-01-01")
			So(proposal.FinishDate, ShouldEqual, "2021-03-01")
		})

		Convey("Single-episode history yields identical dates", func() {
			history := []mal.WatchEvent{{Count: 1, Date: "2020-06-06"}}

			proposal, err := DetermineDates(history)
			So(err, ShouldBeNil)
			So(proposal.StartDate, ShouldEqual, "2020-06-06")
			So(proposal.FinishDate, ShouldEqual, "2020-06-06")
		})

		Convey("Empty history is an error", func() {
			_, err := DetermineDates(nil)
			So(err, ShouldEqual, ErrNoHistory)
		})

		Convey("Final episode seen only before the first is inconsistent", func() {
			// Chronologically: Ep 2 then Ep 1, never Ep 2 again.
			history := []mal.WatchEvent{
				{Count: 1, Date: "2021-02-02"},
				{Count: 2, Date: "2021-01-01"},
			}

			_, err := DetermineDates(history)
			So(err, ShouldNotBeNil)
		})
	})
}
