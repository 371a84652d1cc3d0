package mal

import (
	"strings"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

const historyFixture = `<!DOCTYPE html>
<html><body>
<div class="normal_header">Episode Details</div>
<div class="spaceit_pad">Ep 3, watched on 02/15/2021 at 21:04 <a href="#">Remove</a></div>
<div class="spaceit_pad">Ep 2, watched on 02/14/2021 at 19:30 <a href="#">Remove</a></div>
<div class="spaceit_pad">Ep 1, watched on 02/13/2021 at 9:12 <a href="#">Remove</a></div>
<div class="spaceit_pad">Something unrelated</div>
</body></html>`

const mangaHistoryFixture = `<html><body>
<div class="spaceit_pad">Chapter 10, read on 12/01/2020 at 08:45</div>
</body></html>`

func TestParseWatchHistory(t *testing.T) {
	Convey("ParseWatchHistory", t, func() {
		Convey("Should extract dated events in document order", func() {
			events, err := ParseWatchHistory(strings.NewReader(historyFixture))
			So(err, ShouldBeNil)
			So(events, ShouldHaveLength, 3)

			So(events[0].Count, ShouldEqual, 3)
			So(events[0].Date, ShouldEqual, "2021-02-15")
			So(events[0].Time, ShouldEqual, "21:04")

			So(events[2].Count, ShouldEqual, 1)
			So(events[2].Date, ShouldEqual, "2021-02-13")
			So(events[2].Time, ShouldEqual, "9:12")
		})

		Convey("Should understand manga history lines", func() {
			events, err := ParseWatchHistory(strings.NewReader(mangaHistoryFixture))
			So(err, ShouldBeNil)
			So(events, ShouldHaveLength, 1)
			So(events[0].Count, ShouldEqual, 10)
			So(events[0].Date, ShouldEqual, "2020-12-01")
		})

		Convey("Should return no events for markup without history rows", func() {
			events, err := ParseWatchHistory(strings.NewReader("<html><body><p>empty</p></body></html>"))
			So(err, ShouldBeNil)
			So(events, ShouldBeEmpty)
		})
	})
}

func TestIsoDate(t *testing.T) {
	Convey("isoDate", t, func() {
		So(isoDate("02/15/2021"), ShouldEqual, "2021-02-15")
		So(isoDate("12/01/2020"), ShouldEqual, "2020-12-01")
	})
}
