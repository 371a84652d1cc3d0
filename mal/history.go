package mal

import (
	"fmt"
	"io"
	"net/http"
	"regexp"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/malfix-cli/malfix/util"
	"golang.org/x/net/html"
)

// WatchEvent is a single watched-episode or read-chapter record from an
// entry's history page. Date is normalized to YYYY-MM-DD.
type WatchEvent struct {
	Count int    `json:"count"`
	Date  string `json:"date"`
	Time  string `json:"time"`
}

// historyLine matches the per-event rows of the ajaxtb history markup,
// e.g. "Ep 12, watched on 01/23/2021 at 20:15".
var historyLine = regexp.MustCompile(
	`(?P<count>\d+),\s+(?:watched|read) on (?P<date>\d{2}/\d{2}/\d{4}) at (?P<time>\d{1,2}:\d{2})`,
)

// WatchHistory retrieves the dated consumption history for a list entry.
// The endpoint is the site's legacy detail popup, so the payload is HTML
// rather than JSON. Entries with the count feature unused have no history.
func (c *Client) WatchHistory(id int, listType ListType) ([]WatchEvent, error) {
	url := fmt.Sprintf(
		"%s/ajaxtb.php?keepThis=true&detailed%sid=%d&TB_iframe=true&height=420&width=390",
		c.siteBase, listType.historyModifier(), id,
	)

	req, err := http.NewRequest(http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("mal history request for entry %d failed with status %d", id, resp.StatusCode)
	}

	return ParseWatchHistory(resp.Body)
}

// ParseWatchHistory extracts watch events from the history popup markup.
// Events are returned in document order, which is newest first.
func ParseWatchHistory(r io.Reader) ([]WatchEvent, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("parse history document: %w", err)
	}

	var events []WatchEvent
	doc.Find("div.spaceit_pad").Each(func(_ int, s *goquery.Selection) {
		// Only direct text carries the event line, nested elements hold remove links.
		text := s.Contents().FilterFunction(func(_ int, c *goquery.Selection) bool {
			return c.Nodes[0].Type == html.TextNode
		}).Text()

		groups := util.ReGroups(historyLine, strings.TrimSpace(text))
		if len(groups) == 0 {
			return
		}

		count, err := strconv.Atoi(groups["count"])
		if err != nil {
			return
		}

		events = append(events, WatchEvent{
			Count: count,
			Date:  isoDate(groups["date"]),
			Time:  groups["time"],
		})
	})

	return events, nil
}

// isoDate converts the site's MM/DD/YYYY dates to YYYY-MM-DD.
func isoDate(date string) string {
	return date[6:] + "-" + date[:2] + "-" + date[3:5]
}
