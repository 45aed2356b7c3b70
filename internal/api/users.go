package api

import (
	"context"
	"net/http"

	"github.com/dukerupert/habitly/internal/codec"
	"github.com/dukerupert/habitly/internal/model"
)

// FetchAllUsers lists every user account, for assigning item responsibility.
// Fails soft like FetchHabits: empty slice on any failure.
func (c *Client) FetchAllUsers(ctx context.Context) []model.User {
	req, err := c.newRequest(ctx, http.MethodGet, "/users/", nil)
	if err != nil {
		c.report("fetch users", 0, err)
		return []model.User{}
	}

	status, body, err := c.do(req, "fetch users")
	if err != nil {
		c.report("fetch users", status, err)
		return []model.User{}
	}

	users, err := codec.DecodeUsers(body)
	if err != nil {
		c.report("fetch users", status, err)
		return []model.User{}
	}
	return users
}
