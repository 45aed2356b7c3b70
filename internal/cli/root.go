// Package cli implements the habitly command tree. Commands are thin: they
// gather input, call the API client, and report the outcome. Write commands
// surface failures as errors; reads degrade to cached data.
package cli

import (
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/dukerupert/habitly/internal/api"
	"github.com/dukerupert/habitly/internal/cache"
	"github.com/dukerupert/habitly/internal/session"
)

type Context struct {
	BaseURL   string
	ConfigDir string
	Logger    *slog.Logger
	Sessions  *session.Store
}

// APIClient builds a client from the stored session. Fails when no session
// exists or the access token is past its exp claim.
func (c *Context) APIClient() (*api.Client, error) {
	tokens, err := c.Sessions.Load()
	if err != nil {
		return nil, err
	}
	if session.Expired(tokens.Access) {
		return nil, fmt.Errorf("session expired: run 'habitly login'")
	}
	return api.NewClient(c.BaseURL, tokens.Access, api.WithLogger(c.Logger)), nil
}

// OpenCache opens the offline habit cache. The caller must invoke the
// returned closer.
func (c *Context) OpenCache() (*cache.Store, func(), error) {
	db, err := cache.Open(filepath.Join(c.ConfigDir, "cache.db"))
	if err != nil {
		return nil, nil, fmt.Errorf("open cache: %w", err)
	}
	return cache.NewStore(db), func() { db.Close() }, nil
}
