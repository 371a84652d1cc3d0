package oauth

import (
	"testing"
	"time"

	"github.com/malfix-cli/malfix/filesystem"
	"github.com/malfix-cli/malfix/key"
	. "github.com/smartystreets/goconvey/convey"
	"github.com/spf13/viper"
)

func TestFileStore(t *testing.T) {
	Convey("FileStore", t, func() {
		filesystem.SetMemMapFs()
		store := FileStore{}

		Convey("Load without a saved token returns ErrNoToken", func() {
			_, err := store.Load()
			So(err, ShouldEqual, ErrNoToken)
		})

		Convey("Save then Load roundtrips the record", func() {
			expiry := time.Now().Add(time.Hour).Truncate(time.Second)
			token := &Token{
				AccessToken:  "access",
				TokenType:    "Bearer",
				RefreshToken: "refresh",
				ExpiresAt:    expiry,
			}

			So(store.Save(token), ShouldBeNil)

			loaded, err := store.Load()
			So(err, ShouldBeNil)
			So(loaded.AccessToken, ShouldEqual, "access")
			So(loaded.RefreshToken, ShouldEqual, "refresh")
			So(loaded.ExpiresAt.Equal(expiry), ShouldBeTrue)
		})

		Convey("Delete removes the record", func() {
			So(store.Save(&Token{AccessToken: "x"}), ShouldBeNil)
			So(store.Delete(), ShouldBeNil)

			_, err := store.Load()
			So(err, ShouldEqual, ErrNoToken)
		})
	})
}

func TestNewStore(t *testing.T) {
	Convey("NewStore", t, func() {
		Convey("Defaults to the file backend", func() {
			viper.Set(key.MalTokenKeyring, false)
			_, ok := NewStore().(FileStore)
			So(ok, ShouldBeTrue)
		})

		Convey("Selects the keyring backend when configured", func() {
			viper.Set(key.MalTokenKeyring, true)
			_, ok := NewStore().(KeyringStore)
			So(ok, ShouldBeTrue)
			viper.Set(key.MalTokenKeyring, false)
		})
	})
}
