package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/dukerupert/habitly/internal/codec"
	"github.com/dukerupert/habitly/internal/model"
)

// FetchHabits returns the caller's habits in server order. The read path
// fails soft: any failure yields an empty slice and a log entry, so a screen
// can always render.
func (c *Client) FetchHabits(ctx context.Context) []model.Habit {
	req, err := c.newRequest(ctx, http.MethodGet, "/api/v1/habits/", nil)
	if err != nil {
		c.report("fetch habits", 0, err)
		return []model.Habit{}
	}

	status, body, err := c.do(req, "fetch habits")
	if err != nil {
		c.report("fetch habits", status, err)
		return []model.Habit{}
	}

	habits, err := codec.DecodeHabits(body)
	if err != nil {
		c.report("fetch habits", status, err)
		return []model.Habit{}
	}
	return habits
}

// CreateHabit posts a new habit and returns the server-assigned id.
func (c *Client) CreateHabit(ctx context.Context, habit model.Habit) (int64, bool) {
	payload, err := codec.EncodeHabit(habit)
	if err != nil {
		c.report("create habit", 0, err)
		return 0, false
	}

	req, err := c.newRequest(ctx, http.MethodPost, "/api/v1/habits/", bytes.NewReader(payload))
	if err != nil {
		c.report("create habit", 0, err)
		return 0, false
	}
	req.Header.Set("Content-Type", "application/json")

	status, body, err := c.do(req, "create habit")
	if err != nil {
		c.report("create habit", status, err)
		return 0, false
	}

	id, err := codec.DecodeCreatedID(body)
	if err != nil {
		c.report("create habit", status, err)
		return 0, false
	}
	return id, true
}

// UpdateHabit replaces the habit identified by habit.ID.
func (c *Client) UpdateHabit(ctx context.Context, habit model.Habit) bool {
	payload, err := codec.EncodeHabit(habit)
	if err != nil {
		c.report("update habit", 0, err)
		return false
	}

	path := fmt.Sprintf("/api/v1/habits/%d/", habit.ID)
	req, err := c.newRequest(ctx, http.MethodPut, path, bytes.NewReader(payload))
	if err != nil {
		c.report("update habit", 0, err)
		return false
	}
	req.Header.Set("Content-Type", "application/json")

	status, _, err := c.do(req, "update habit")
	if err != nil {
		c.report("update habit", status, err)
		return false
	}
	return true
}

// DeleteHabit removes a habit by id.
func (c *Client) DeleteHabit(ctx context.Context, id int64) bool {
	req, err := c.newRequest(ctx, http.MethodDelete, fmt.Sprintf("/api/v1/habits/%d/", id), nil)
	if err != nil {
		c.report("delete habit", 0, err)
		return false
	}

	status, _, err := c.do(req, "delete habit")
	if err != nil {
		c.report("delete habit", status, err)
		return false
	}
	return true
}

type createItemRequest struct {
	Name          string `json:"name"`
	ResponsibleID int64  `json:"responsible_id"`
	EventID       int64  `json:"event_id"`
}

// CreateItem adds a checklist item to the event identified by eventID and
// returns the created item as the server recorded it.
func (c *Client) CreateItem(ctx context.Context, eventID int64, name string, responsibleID int64) (*model.HabitItem, bool) {
	payload, err := json.Marshal(createItemRequest{
		Name:          name,
		ResponsibleID: responsibleID,
		EventID:       eventID,
	})
	if err != nil {
		c.report("create item", 0, err)
		return nil, false
	}

	req, err := c.newRequest(ctx, http.MethodPost, "/api/v1/items/", bytes.NewReader(payload))
	if err != nil {
		c.report("create item", 0, err)
		return nil, false
	}
	req.Header.Set("Content-Type", "application/json")

	status, body, err := c.do(req, "create item")
	if err != nil {
		c.report("create item", status, err)
		return nil, false
	}

	item, err := codec.DecodeItem(body)
	if err != nil {
		c.report("create item", status, err)
		return nil, false
	}
	return &item, true
}
