package codec

import (
	"encoding/json"

	"github.com/dukerupert/habitly/internal/model"
)

// EncodeHabit builds the create/update request payload for a habit. Only
// populated fields are emitted; server-assigned fields (ids, timestamps on
// the habit itself) are never part of the request.
func EncodeHabit(h model.Habit) ([]byte, error) {
	payload := map[string]any{
		"name":      h.Name,
		"frequency": h.Frequency,
	}
	if h.Description != nil {
		payload["description"] = *h.Description
	}
	if h.DaysOfWeek != nil {
		payload["days_of_week"] = h.DaysOfWeek
	}
	if h.TimeOfDay != nil {
		payload["time_of_day"] = *h.TimeOfDay
	}
	if h.Location != nil {
		loc := map[string]any{
			"latitude":  h.Location.Latitude,
			"longitude": h.Location.Longitude,
		}
		if h.Location.Name != nil {
			loc["name"] = *h.Location.Name
		}
		payload["location"] = loc
	}
	if h.AudioNote != nil {
		note := map[string]any{
			"audio_file":  h.AudioNote.AudioFile,
			"recorded_at": h.AudioNote.RecordedAt,
		}
		if h.AudioNote.Title != nil {
			note["title"] = *h.AudioNote.Title
		}
		payload["audio_note"] = note
	}
	if h.Images != nil {
		images := make([]map[string]any, 0, len(h.Images))
		for _, img := range h.Images {
			out := map[string]any{
				"image":       img.Image,
				"uploaded_at": img.UploadedAt,
			}
			if img.Caption != nil {
				out["caption"] = *img.Caption
			}
			images = append(images, out)
		}
		payload["images"] = images
	}
	return json.Marshal(payload)
}

// EncodeHabitDocument renders a habit back into the server's full response
// shape, ids and timestamps included. DecodeHabit(EncodeHabitDocument(h))
// reproduces h exactly; the offline cache relies on that.
func EncodeHabitDocument(h model.Habit) ([]byte, error) {
	doc := map[string]any{
		"id":         h.ID,
		"name":       h.Name,
		"frequency":  h.Frequency,
		"created_at": h.CreatedAt,
		"updated_at": h.UpdatedAt,
		"habit_list": listDocument(h.List),
	}
	if h.Description != nil {
		doc["description"] = *h.Description
	}
	if h.DaysOfWeek != nil {
		doc["days_of_week"] = h.DaysOfWeek
	}
	if h.TimeOfDay != nil {
		doc["time_of_day"] = *h.TimeOfDay
	}
	if h.Location != nil {
		loc := map[string]any{
			"id":        h.Location.ID,
			"latitude":  h.Location.Latitude,
			"longitude": h.Location.Longitude,
		}
		if h.Location.Name != nil {
			loc["name"] = *h.Location.Name
		}
		doc["location"] = loc
	}
	if h.AudioNote != nil {
		note := map[string]any{
			"id":          h.AudioNote.ID,
			"audio_file":  h.AudioNote.AudioFile,
			"recorded_at": h.AudioNote.RecordedAt,
		}
		if h.AudioNote.Title != nil {
			note["title"] = *h.AudioNote.Title
		}
		doc["audio_note"] = note
	}
	if h.Images != nil {
		images := make([]map[string]any, 0, len(h.Images))
		for _, img := range h.Images {
			out := map[string]any{
				"id":          img.ID,
				"image":       img.Image,
				"uploaded_at": img.UploadedAt,
			}
			if img.Caption != nil {
				out["caption"] = *img.Caption
			}
			images = append(images, out)
		}
		doc["images"] = images
	}
	return json.Marshal(doc)
}

func listDocument(list model.HabitList) map[string]any {
	items := make([]map[string]any, 0, len(list.Items))
	for _, item := range list.Items {
		out := map[string]any{
			"id":     item.ID,
			"name":   item.Name,
			"status": item.Status,
			"responsible": map[string]any{
				"id":         item.Responsible.ID,
				"username":   item.Responsible.Username,
				"email":      item.Responsible.Email,
				"first_name": item.Responsible.FirstName,
				"last_name":  item.Responsible.LastName,
			},
		}
		if item.AddedAt != "" {
			out["added_at"] = item.AddedAt
		}
		if item.UpdatedAt != "" {
			out["updated_at"] = item.UpdatedAt
		}
		if item.Description != nil {
			out["description"] = *item.Description
		}
		items = append(items, out)
	}
	doc := map[string]any{
		"id":    list.ID,
		"title": list.Title,
		"items": items,
	}
	if list.Description != nil {
		doc["description"] = *list.Description
	}
	return doc
}
