package oauth

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/malfix-cli/malfix/constant"
	"github.com/malfix-cli/malfix/filesystem"
	"github.com/malfix-cli/malfix/key"
	"github.com/malfix-cli/malfix/where"
	"github.com/spf13/viper"
	"github.com/zalando/go-keyring"
)

// ErrNoToken indicates that no token record has been persisted yet.
var ErrNoToken = errors.New("no mal token found, run auth login first")

const keyringUser = "mal-token"

// Store persists the OAuth2 token record between invocations.
type Store interface {
	Save(*Token) error
	Load() (*Token, error)
	Delete() error
}

// NewStore selects the configured token backend: the token.json file by
// default, or the system keyring when mal.token_keyring is enabled.
func NewStore() Store {
	if viper.GetBool(key.MalTokenKeyring) {
		return KeyringStore{}
	}
	return FileStore{}
}

// FileStore persists the token as JSON at where.Token() through the
// virtualized filesystem.
type FileStore struct{}

func (FileStore) Save(token *Token) error {
	raw, err := json.MarshalIndent(token, "", "  ")
	if err != nil {
		return err
	}
	return filesystem.API().WriteFile(where.Token(), raw, 0600)
}

func (FileStore) Load() (*Token, error) {
	path := where.Token()
	exists, err := filesystem.API().Exists(path)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, ErrNoToken
	}

	raw, err := filesystem.API().ReadFile(path)
	if err != nil {
		return nil, err
	}

	var token Token
	if err := json.Unmarshal(raw, &token); err != nil {
		return nil, fmt.Errorf("malformed token file %s: %w", path, err)
	}
	return &token, nil
}

func (FileStore) Delete() error {
	return filesystem.API().Remove(where.Token())
}

// KeyringStore persists the serialized token in the system keyring.
type KeyringStore struct{}

func (KeyringStore) Save(token *Token) error {
	raw, err := json.Marshal(token)
	if err != nil {
		return err
	}
	return keyring.Set(constant.Malfix, keyringUser, string(raw))
}

func (KeyringStore) Load() (*Token, error) {
	str, err := keyring.Get(constant.Malfix, keyringUser)
	if err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return nil, ErrNoToken
		}
		return nil, err
	}

	var token Token
	if err := json.Unmarshal([]byte(str), &token); err != nil {
		return nil, err
	}
	return &token, nil
}

func (KeyringStore) Delete() error {
	return keyring.Delete(constant.Malfix, keyringUser)
}
