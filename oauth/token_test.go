package oauth

import (
	"encoding/json"
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"
)

func TestTokenExpiry(t *testing.T) {
	Convey("Token expiry", t, func() {
		Convey("A token past expires_at is expired and needs refresh", func() {
			token := &Token{AccessToken: "x", ExpiresAt: time.Now().Add(-time.Hour)}
			So(token.Expired(), ShouldBeTrue)
			So(token.NeedsRefresh(), ShouldBeTrue)
		})

		Convey("A fresh token is neither", func() {
			token := &Token{AccessToken: "x", ExpiresAt: time.Now().Add(time.Hour)}
			So(token.Expired(), ShouldBeFalse)
			So(token.NeedsRefresh(), ShouldBeFalse)
		})

		Convey("A token inside the refresh window needs refresh but is not expired", func() {
			token := &Token{AccessToken: "x", ExpiresAt: time.Now().Add(time.Minute)}
			So(token.Expired(), ShouldBeFalse)
			So(token.NeedsRefresh(), ShouldBeTrue)
		})

		Convey("An empty token always needs refresh", func() {
			token := &Token{ExpiresAt: time.Now().Add(time.Hour)}
			So(token.NeedsRefresh(), ShouldBeTrue)
		})
	})
}

func TestWireTokenRecord(t *testing.T) {
	Convey("wireToken.record", t, func() {
		wire := wireToken{
			AccessToken:  "access",
			TokenType:    "Bearer",
			ExpiresIn:    3600,
			RefreshToken: "refresh",
		}

		token := wire.record()
		So(token.AccessToken, ShouldEqual, "access")
		So(token.RefreshToken, ShouldEqual, "refresh")
		So(token.ExpiresAt.After(time.Now().Add(59*time.Minute)), ShouldBeTrue)
		So(token.ExpiresAt.Before(time.Now().Add(61*time.Minute)), ShouldBeTrue)
	})
}

func TestTokenSerialization(t *testing.T) {
	Convey("Token JSON roundtrip preserves the absolute expiry", t, func() {
		expiry := time.Now().Add(time.Hour).Truncate(time.Second)
		token := &Token{AccessToken: "a", TokenType: "Bearer", RefreshToken: "r", ExpiresAt: expiry}

		raw, err := json.Marshal(token)
		So(err, ShouldBeNil)
		So(string(raw), ShouldContainSubstring, "expires_at")

		var decoded Token
		So(json.Unmarshal(raw, &decoded), ShouldBeNil)
		So(decoded.ExpiresAt.Equal(expiry), ShouldBeTrue)
	})
}
