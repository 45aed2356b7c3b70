package cli

import (
	"context"
	"fmt"
	"mime"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/dukerupert/habitly/internal/api"
	"github.com/dukerupert/habitly/internal/model"
)

type ListCmd struct {
	Offline bool `help:"Read from the local cache without contacting the server."`
}

func (cmd *ListCmd) Run(ctx *Context) error {
	store, closer, err := ctx.OpenCache()
	if err != nil {
		return err
	}
	defer closer()

	var habits []model.Habit
	cached := cmd.Offline

	if cmd.Offline {
		habits, err = store.LoadAll()
		if err != nil {
			return err
		}
	} else {
		client, err := ctx.APIClient()
		if err != nil {
			return err
		}
		habits = client.FetchHabits(context.Background())
		if len(habits) > 0 {
			if err := store.ReplaceAll(habits); err != nil {
				ctx.Logger.Warn("cache update failed", "error", err)
			}
		} else {
			// The client reports an empty list for every read failure; fall
			// back to whatever the last good fetch left behind.
			habits, err = store.LoadAll()
			if err != nil {
				return err
			}
			cached = len(habits) > 0
		}
	}

	if len(habits) == 0 {
		fmt.Println("No habits.")
		return nil
	}
	if cached {
		if at, ok, err := store.FetchedAt(); err == nil && ok {
			fmt.Printf("(cached copy from %s)\n", at.Local().Format("2006-01-02 15:04"))
		}
	}
	for _, h := range habits {
		printHabit(h)
	}
	return nil
}

func printHabit(h model.Habit) {
	line := fmt.Sprintf("#%d  %s", h.ID, h.Name)
	if h.Frequency != "" {
		line += "  [" + h.Frequency + "]"
	}
	if h.TimeOfDay != nil {
		line += "  at " + *h.TimeOfDay
	}
	if n := len(h.List.Items); n > 0 {
		line += fmt.Sprintf("  (%d items)", n)
	}
	fmt.Println(line)
	if h.Description != nil {
		fmt.Printf("    %s\n", *h.Description)
	}
}

type CreateCmd struct {
	Name        string   `arg:"" help:"Habit name."`
	Description string   `short:"d" help:"Optional description."`
	Frequency   string   `short:"f" help:"Frequency label, e.g. Daily." default:"Daily"`
	Days        string   `help:"Comma-separated weekday numbers, 0=Sunday."`
	Time        string   `short:"t" help:"Time of day (HH:MM)."`
	Latitude    *float64 `help:"Location latitude."`
	Longitude   *float64 `help:"Location longitude."`
	Place       string   `help:"Location name."`
}

func (cmd *CreateCmd) Run(ctx *Context) error {
	client, err := ctx.APIClient()
	if err != nil {
		return err
	}

	habit := model.Habit{
		Name:      cmd.Name,
		Frequency: cmd.Frequency,
		List:      model.DefaultList(),
	}
	if cmd.Description != "" {
		habit.Description = &cmd.Description
	}
	if cmd.Time != "" {
		habit.TimeOfDay = &cmd.Time
	}
	if cmd.Days != "" {
		days, err := parseDays(cmd.Days)
		if err != nil {
			return err
		}
		habit.DaysOfWeek = days
	}
	if cmd.Latitude != nil || cmd.Longitude != nil {
		loc := &model.Location{}
		if cmd.Latitude != nil {
			loc.Latitude = *cmd.Latitude
		}
		if cmd.Longitude != nil {
			loc.Longitude = *cmd.Longitude
		}
		if cmd.Place != "" {
			loc.Name = &cmd.Place
		}
		habit.Location = loc
	}

	id, ok := client.CreateHabit(context.Background(), habit)
	if !ok {
		return fmt.Errorf("create failed (see log for detail)")
	}
	fmt.Printf("Created habit #%d.\n", id)
	return nil
}

type UpdateCmd struct {
	ID          int64    `arg:"" help:"Habit id."`
	Name        *string  `help:"New name."`
	Description *string  `short:"d" help:"New description."`
	Frequency   *string  `short:"f" help:"New frequency label."`
	Days        *string  `help:"New comma-separated weekday numbers."`
	Time        *string  `short:"t" help:"New time of day (HH:MM)."`
	Latitude    *float64 `help:"New location latitude."`
	Longitude   *float64 `help:"New location longitude."`
	Place       *string  `help:"New location name."`
}

func (cmd *UpdateCmd) Run(ctx *Context) error {
	client, err := ctx.APIClient()
	if err != nil {
		return err
	}

	habit, err := findHabit(client, cmd.ID)
	if err != nil {
		return err
	}

	if cmd.Name != nil {
		habit.Name = *cmd.Name
	}
	if cmd.Description != nil {
		habit.Description = cmd.Description
	}
	if cmd.Frequency != nil {
		habit.Frequency = *cmd.Frequency
	}
	if cmd.Time != nil {
		habit.TimeOfDay = cmd.Time
	}
	if cmd.Days != nil {
		days, err := parseDays(*cmd.Days)
		if err != nil {
			return err
		}
		habit.DaysOfWeek = days
	}
	if cmd.Latitude != nil || cmd.Longitude != nil || cmd.Place != nil {
		loc := habit.Location
		if loc == nil {
			loc = &model.Location{}
		}
		if cmd.Latitude != nil {
			loc.Latitude = *cmd.Latitude
		}
		if cmd.Longitude != nil {
			loc.Longitude = *cmd.Longitude
		}
		if cmd.Place != nil {
			loc.Name = cmd.Place
		}
		habit.Location = loc
	}

	if !client.UpdateHabit(context.Background(), habit) {
		return fmt.Errorf("update failed (see log for detail)")
	}
	fmt.Printf("Updated habit #%d.\n", cmd.ID)
	return nil
}

type DeleteCmd struct {
	ID int64 `arg:"" help:"Habit id."`
}

func (cmd *DeleteCmd) Run(ctx *Context) error {
	client, err := ctx.APIClient()
	if err != nil {
		return err
	}
	if !client.DeleteHabit(context.Background(), cmd.ID) {
		return fmt.Errorf("delete failed (see log for detail)")
	}
	fmt.Printf("Deleted habit #%d.\n", cmd.ID)
	return nil
}

type UploadImageCmd struct {
	ID   int64  `arg:"" help:"Habit id."`
	Path string `arg:"" type:"existingfile" help:"Image file to attach."`
}

func (cmd *UploadImageCmd) Run(ctx *Context) error {
	return runUpload(ctx, cmd.ID, cmd.Path, "image/jpeg", func(c *api.Client, att api.Attachment) bool {
		return c.UploadImage(context.Background(), cmd.ID, att)
	})
}

type UploadAudioCmd struct {
	ID   int64  `arg:"" help:"Habit id."`
	Path string `arg:"" type:"existingfile" help:"Audio file to attach."`
}

func (cmd *UploadAudioCmd) Run(ctx *Context) error {
	return runUpload(ctx, cmd.ID, cmd.Path, "audio/mpeg", func(c *api.Client, att api.Attachment) bool {
		return c.UploadAudio(context.Background(), cmd.ID, att)
	})
}

func runUpload(ctx *Context, id int64, path, fallbackType string, send func(*api.Client, api.Attachment) bool) error {
	client, err := ctx.APIClient()
	if err != nil {
		return err
	}

	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open file: %w", err)
	}
	defer f.Close()

	contentType := mime.TypeByExtension(filepath.Ext(path))
	if contentType == "" {
		contentType = fallbackType
	}

	att := api.Attachment{
		Filename:    filepath.Base(path),
		Content:     f,
		ContentType: contentType,
	}
	if !send(client, att) {
		return fmt.Errorf("upload failed (see log for detail)")
	}
	fmt.Printf("Uploaded %s to habit #%d.\n", att.Filename, id)
	return nil
}

func findHabit(client *api.Client, id int64) (model.Habit, error) {
	for _, h := range client.FetchHabits(context.Background()) {
		if h.ID == id {
			return h, nil
		}
	}
	return model.Habit{}, fmt.Errorf("habit #%d not found", id)
}

func parseDays(s string) ([]int, error) {
	parts := strings.Split(s, ",")
	days := make([]int, 0, len(parts))
	for _, part := range parts {
		num, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil || num < 0 || num > 6 {
			return nil, fmt.Errorf("invalid weekday: %s", part)
		}
		days = append(days, num)
	}
	return days, nil
}
