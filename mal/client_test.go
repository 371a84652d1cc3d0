package mal

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/malfix-cli/malfix/filesystem"
	"github.com/malfix-cli/malfix/oauth"
	. "github.com/smartystreets/goconvey/convey"
)

// testClient builds a Client backed by a fresh in-memory token store and
// pointed at the given test server.
func testClient(srv *httptest.Server) *Client {
	filesystem.SetMemMapFs()

	store := oauth.FileStore{}
	_ = store.Save(&oauth.Token{
		AccessToken:  "test-access",
		TokenType:    "Bearer",
		RefreshToken: "test-refresh",
		ExpiresAt:    time.Now().Add(time.Hour),
	})

	return &Client{
		httpClient: srv.Client(),
		store:      store,
		creds:      oauth.Credentials{ClientID: "id"},
		apiBase:    srv.URL,
		siteBase:   srv.URL,
	}
}

func TestUserList(t *testing.T) {
	Convey("UserList", t, func() {
		Convey("Should follow pagination and forward the bearer token", func(c C) {
			var srv *httptest.Server
			srv = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				c.So(r.Header.Get("Authorization"), ShouldEqual, "Bearer test-access")
				c.So(r.URL.Path, ShouldEqual, "/users/@me/animelist")
				c.So(r.URL.Query().Get("fields"), ShouldEqual, "list_status")

				w.Header().Set("Content-Type", "application/json")
				if r.URL.Query().Get("offset") == "" {
					fmt.Fprintf(w, `{
						"data": [{"node": {"id": 1, "title": "First"}, "list_status": {"status": "completed"}}],
						"paging": {"next": "%s/users/@me/animelist?fields=list_status&limit=2&offset=1"}
					}`, srv.URL)
					return
				}
				fmt.Fprint(w, `{
					"data": [{"node": {"id": 2, "title": "Second"}, "list_status": {"status": "watching"}}],
					"paging": {}
				}`)
			}))
			defer srv.Close()

			entries, err := testClient(srv).UserList(Anime, 2)
			So(err, ShouldBeNil)
			So(entries, ShouldHaveLength, 2)
			So(entries[0].Node.Title, ShouldEqual, "First")
			So(entries[0].Completed(), ShouldBeTrue)
			So(entries[1].Node.ID, ShouldEqual, 2)
			So(entries[1].Completed(), ShouldBeFalse)
		})

		Convey("Should surface non-200 responses as errors", func() {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusForbidden)
			}))
			defer srv.Close()

			_, err := testClient(srv).UserList(Manga, 10)
			So(err, ShouldNotBeNil)
			So(err.Error(), ShouldContainSubstring, "403")
		})

		Convey("Should refuse to run with an expired token it cannot refresh", func() {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusOK)
			}))
			defer srv.Close()

			client := testClient(srv)
			_ = client.store.Save(&oauth.Token{
				AccessToken: "stale",
				// No refresh token: renewal is impossible and the stale
				// record must not be reused.
				ExpiresAt: time.Now().Add(-time.Hour),
			})

			_, err := client.UserList(Anime, 10)
			So(err, ShouldNotBeNil)
		})
	})
}

func TestUpdateListStatus(t *testing.T) {
	Convey("UpdateListStatus", t, func() {
		Convey("Should PUT the form-encoded updates", func(c C) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				c.So(r.Method, ShouldEqual, http.MethodPut)
				c.So(r.URL.Path, ShouldEqual, "/anime/42/my_list_status")
				c.So(r.FormValue("start_date"), ShouldEqual, "2021-01-02")
				c.So(r.FormValue("finish_date"), ShouldEqual, "2021-03-04")
				w.WriteHeader(http.StatusOK)
			}))
			defer srv.Close()

			updates := url.Values{}
			updates.Set("start_date", "2021-01-02")
			updates.Set("finish_date", "2021-03-04")

			err := testClient(srv).UpdateListStatus(42, Anime, updates)
			So(err, ShouldBeNil)
		})

		Convey("Should report rejected updates", func() {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusBadRequest)
			}))
			defer srv.Close()

			err := testClient(srv).UpdateListStatus(7, Manga, url.Values{})
			So(err, ShouldNotBeNil)
			So(err.Error(), ShouldContainSubstring, "400")
		})
	})
}

func TestParseListType(t *testing.T) {
	Convey("ParseListType", t, func() {
		Convey("Accepts anime and manga", func() {
			for _, raw := range []string{"anime", "manga"} {
				parsed, err := ParseListType(raw)
				So(err, ShouldBeNil)
				So(string(parsed), ShouldEqual, raw)
			}
		})

		Convey("Rejects anything else", func() {
			_, err := ParseListType("novel")
			So(err, ShouldNotBeNil)
		})
	})
}

func TestEntryHelpers(t *testing.T) {
	Convey("Entry helpers", t, func() {
		entry := Entry{}
		entry.Status.Status = StatusCompleted
		entry.Status.StartDate = "2021-05-01"
		entry.Status.FinishDate = "2021-01-01"

		So(entry.Completed(), ShouldBeTrue)
		So(entry.HasBothDates(), ShouldBeTrue)
		So(entry.DatesInverted(), ShouldBeTrue)

		entry.Status.FinishDate = ""
		So(entry.HasBothDates(), ShouldBeFalse)
		So(entry.DatesInverted(), ShouldBeFalse)

		So(DisplayDate(""), ShouldEqual, "UNKNOWN")
		So(DisplayDate("2021-05-01"), ShouldEqual, "2021-05-01")
	})
}
