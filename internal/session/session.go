// Package session persists the login token pair between CLI invocations.
// Tokens go to the OS keyring when one is available; otherwise they fall back
// to an encrypted file under the config directory, keyed by a machine-local
// secret generated on first use.
package session

import (
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/zalando/go-keyring"

	"github.com/dukerupert/habitly/internal/model"
)

const (
	keyringService = "habitly"
	keyringUser    = "tokens"

	tokenFileName  = "session.enc"
	secretFileName = "secret"
)

var (
	// ErrNoSession is returned when no stored login exists.
	ErrNoSession = errors.New("no stored session: run 'habitly login'")
)

type Store struct {
	configDir string
}

func NewStore(configDir string) *Store {
	return &Store{configDir: configDir}
}

type storedTokens struct {
	Access  string `json:"access"`
	Refresh string `json:"refresh"`
}

// Save persists the token pair, preferring the OS keyring.
func (s *Store) Save(tokens model.TokenPair) error {
	payload, err := json.Marshal(storedTokens{Access: tokens.Access, Refresh: tokens.Refresh})
	if err != nil {
		return fmt.Errorf("marshal tokens: %w", err)
	}

	if err := keyring.Set(keyringService, keyringUser, string(payload)); err == nil {
		return nil
	}

	return s.saveFile(payload)
}

// Load retrieves the stored token pair. Returns ErrNoSession when neither the
// keyring nor the fallback file holds one.
func (s *Store) Load() (*model.TokenPair, error) {
	if raw, err := keyring.Get(keyringService, keyringUser); err == nil {
		return parseTokens([]byte(raw))
	}
	return s.loadFile()
}

// Clear forgets the stored session everywhere. Keyring backends report
// absence inconsistently, so only the fallback file can fail a logout.
func (s *Store) Clear() error {
	_ = keyring.Delete(keyringService, keyringUser)
	if err := os.Remove(filepath.Join(s.configDir, tokenFileName)); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove session file: %w", err)
	}
	return nil
}

func (s *Store) saveFile(payload []byte) error {
	if err := os.MkdirAll(s.configDir, 0700); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}
	secret, err := s.machineSecret()
	if err != nil {
		return err
	}
	sealed, err := sealBytes(payload, secret)
	if err != nil {
		return fmt.Errorf("seal tokens: %w", err)
	}
	if err := os.WriteFile(filepath.Join(s.configDir, tokenFileName), sealed, 0600); err != nil {
		return fmt.Errorf("write session file: %w", err)
	}
	return nil
}

func (s *Store) loadFile() (*model.TokenPair, error) {
	data, err := os.ReadFile(filepath.Join(s.configDir, tokenFileName))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNoSession
		}
		return nil, fmt.Errorf("read session file: %w", err)
	}
	secret, err := s.machineSecret()
	if err != nil {
		return nil, err
	}
	payload, err := openBytes(data, secret)
	if err != nil {
		return nil, fmt.Errorf("open session file: %w", err)
	}
	return parseTokens(payload)
}

// machineSecret returns the per-machine passphrase for the fallback file,
// generating it on first use.
func (s *Store) machineSecret() (string, error) {
	path := filepath.Join(s.configDir, secretFileName)
	data, err := os.ReadFile(path)
	if err == nil {
		return string(data), nil
	}
	if !os.IsNotExist(err) {
		return "", fmt.Errorf("read machine secret: %w", err)
	}

	salt, err := generateSalt()
	if err != nil {
		return "", err
	}
	secret := hex.EncodeToString(salt)
	if err := os.MkdirAll(s.configDir, 0700); err != nil {
		return "", fmt.Errorf("create config dir: %w", err)
	}
	if err := os.WriteFile(path, []byte(secret), 0600); err != nil {
		return "", fmt.Errorf("write machine secret: %w", err)
	}
	return secret, nil
}

func parseTokens(payload []byte) (*model.TokenPair, error) {
	var st storedTokens
	if err := json.Unmarshal(payload, &st); err != nil {
		return nil, fmt.Errorf("parse stored tokens: %w", err)
	}
	if st.Access == "" {
		return nil, ErrNoSession
	}
	return &model.TokenPair{Access: st.Access, Refresh: st.Refresh}, nil
}

// Expired reports whether the access token's exp claim has passed. The token
// is parsed unverified: the server is the authority, this only short-circuits
// a guaranteed 401 with a friendlier re-login prompt. Tokens without a
// readable exp claim are assumed live.
func Expired(accessToken string) bool {
	claims := jwt.MapClaims{}
	parser := jwt.NewParser()
	if _, _, err := parser.ParseUnverified(accessToken, claims); err != nil {
		return false
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return false
	}
	return exp.Before(time.Now())
}
