package oauth

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestExchange(t *testing.T) {
	Convey("Exchange", t, func() {
		creds := Credentials{ClientID: "id", ClientSecret: "secret"}

		Convey("Should convert a successful response into a token record", func(c C) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				c.So(r.Method, ShouldEqual, http.MethodPost)
				c.So(r.FormValue("grant_type"), ShouldEqual, "authorization_code")
				c.So(r.FormValue("client_id"), ShouldEqual, "id")
				c.So(r.FormValue("client_secret"), ShouldEqual, "secret")
				c.So(r.FormValue("code"), ShouldEqual, "the-code")
				c.So(r.FormValue("code_verifier"), ShouldEqual, "the-verifier")

				w.Header().Set("Content-Type", "application/json")
				fmt.Fprint(w, `{"access_token":"at","token_type":"Bearer","expires_in":3600,"refresh_token":"rt"}`)
			}))
			defer srv.Close()

			prev := tokenEndpoint
			tokenEndpoint = srv.URL
			defer func() { tokenEndpoint = prev }()

			token, err := Exchange(creds, "the-code", "the-verifier", 8080)
			So(err, ShouldBeNil)
			So(token.AccessToken, ShouldEqual, "at")
			So(token.RefreshToken, ShouldEqual, "rt")
			So(token.Expired(), ShouldBeFalse)
		})

		Convey("Should surface provider errors", func() {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusUnauthorized)
				fmt.Fprint(w, `{"error":"invalid_client"}`)
			}))
			defer srv.Close()

			prev := tokenEndpoint
			tokenEndpoint = srv.URL
			defer func() { tokenEndpoint = prev }()

			_, err := Exchange(creds, "code", "verifier", 8080)
			So(err, ShouldNotBeNil)
			So(err.Error(), ShouldContainSubstring, "invalid_client")
		})

		Convey("Should reject an empty access token", func() {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				fmt.Fprint(w, `{"token_type":"Bearer","expires_in":3600}`)
			}))
			defer srv.Close()

			prev := tokenEndpoint
			tokenEndpoint = srv.URL
			defer func() { tokenEndpoint = prev }()

			_, err := Exchange(creds, "code", "verifier", 8080)
			So(err, ShouldNotBeNil)
		})
	})
}

func TestRefresh(t *testing.T) {
	Convey("Refresh", t, func() {
		creds := Credentials{ClientID: "id"}

		Convey("Should require a refresh token", func() {
			_, err := Refresh(creds, &Token{AccessToken: "x"})
			So(err, ShouldNotBeNil)
		})

		Convey("Should renew the record", func(c C) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				c.So(r.FormValue("grant_type"), ShouldEqual, "refresh_token")
				c.So(r.FormValue("refresh_token"), ShouldEqual, "old-rt")
				fmt.Fprint(w, `{"access_token":"new-at","token_type":"Bearer","expires_in":3600,"refresh_token":"new-rt"}`)
			}))
			defer srv.Close()

			prev := tokenEndpoint
			tokenEndpoint = srv.URL
			defer func() { tokenEndpoint = prev }()

			renewed, err := Refresh(creds, &Token{RefreshToken: "old-rt"})
			So(err, ShouldBeNil)
			So(renewed.AccessToken, ShouldEqual, "new-at")
			So(renewed.RefreshToken, ShouldEqual, "new-rt")
		})
	})
}
