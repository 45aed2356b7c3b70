// Package auth exchanges credentials for the token pair every other API call
// rides on. Login is the one operation that runs without a bearer token.
package auth

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/dukerupert/habitly/internal/model"
)

// ErrInvalidCredentials is the only failure a login caller sees. The real
// cause (rejected credentials, unreachable server, bad payload) goes to the
// log; the user-facing message stays generic either way.
var ErrInvalidCredentials = errors.New("invalid username or password")

type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *slog.Logger
}

type Option func(*Client)

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

func NewClient(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 30 * time.Second},
		logger:     slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type loginResponse struct {
	Access  *string `json:"access"`
	Refresh *string `json:"refresh"`
}

// Login exchanges credentials for a token pair via POST /token/.
func (c *Client) Login(ctx context.Context, username, password string) (*model.TokenPair, error) {
	payload, err := json.Marshal(loginRequest{Username: username, Password: password})
	if err != nil {
		return nil, c.reject("marshal login request", 0, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/token/", bytes.NewReader(payload))
	if err != nil {
		return nil, c.reject("create login request", 0, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, c.reject("login request", 0, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, c.reject("login rejected", resp.StatusCode, nil)
	}

	var lr loginResponse
	if err := json.NewDecoder(resp.Body).Decode(&lr); err != nil {
		return nil, c.reject("decode login response", resp.StatusCode, err)
	}
	if lr.Access == nil || lr.Refresh == nil {
		return nil, c.reject("login response missing tokens", resp.StatusCode, nil)
	}

	return &model.TokenPair{Access: *lr.Access, Refresh: *lr.Refresh}, nil
}

func (c *Client) reject(detail string, status int, err error) error {
	c.logger.Error("login failed", "detail", detail, "status", status, "error", err)
	return ErrInvalidCredentials
}
