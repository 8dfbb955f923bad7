package session

import (
	"os"
	"path/filepath"
	"strings"
)

// TokenStore persists the bearer token between runs. The token is the only
// durable client-side state.
type TokenStore interface {
	Load() (string, error)
	Save(token string) error
	Clear() error
}

// FileTokenStore keeps the token in a single file, the CLI analogue of
// browser local storage. An absent file means anonymous.
type FileTokenStore struct {
	Path string
}

func (s FileTokenStore) Load() (string, error) {
	b, err := os.ReadFile(s.Path)
	if os.IsNotExist(err) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(b)), nil
}

func (s FileTokenStore) Save(token string) error {
	if err := os.MkdirAll(filepath.Dir(s.Path), 0o700); err != nil {
		return err
	}
	return os.WriteFile(s.Path, []byte(token+"\n"), 0o600)
}

func (s FileTokenStore) Clear() error {
	err := os.Remove(s.Path)
	if os.IsNotExist(err) {
		return nil
	}
	return err
}

// MemTokenStore is an in-memory TokenStore for tests.
type MemTokenStore struct {
	Token string
}

func (s *MemTokenStore) Load() (string, error) { return s.Token, nil }

func (s *MemTokenStore) Save(token string) error {
	s.Token = token
	return nil
}

func (s *MemTokenStore) Clear() error {
	s.Token = ""
	return nil
}
