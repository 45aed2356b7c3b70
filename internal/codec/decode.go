// Package codec maps between the habits API wire JSON and the domain records
// in internal/model. All defaulting rules live here: callers never substitute
// their own fallbacks for absent fields.
package codec

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/dukerupert/habitly/internal/model"
)

type wireHabit struct {
	ID          *int64             `json:"id"`
	Name        *string            `json:"name"`
	Description *string            `json:"description"`
	Frequency   *string            `json:"frequency"`
	DaysOfWeek  *[]int             `json:"days_of_week"`
	TimeOfDay   *string            `json:"time_of_day"`
	Location    json.RawMessage    `json:"location"`
	AudioNote   json.RawMessage    `json:"audio_note"`
	Images      *[]json.RawMessage `json:"images"`
	CreatedAt   *string            `json:"created_at"`
	UpdatedAt   *string            `json:"updated_at"`
	HabitList   json.RawMessage    `json:"habit_list"`
}

type wireLocation struct {
	ID        *int64   `json:"id"`
	Latitude  *float64 `json:"latitude"`
	Longitude *float64 `json:"longitude"`
	Name      *string  `json:"name"`
}

type wireAudioNote struct {
	ID         *int64  `json:"id"`
	AudioFile  *string `json:"audio_file"`
	Title      *string `json:"title"`
	RecordedAt *string `json:"recorded_at"`
}

type wireImage struct {
	ID         *int64  `json:"id"`
	Image      *string `json:"image"`
	Caption    *string `json:"caption"`
	UploadedAt *string `json:"uploaded_at"`
}

type wireList struct {
	ID          *int64             `json:"id"`
	Title       *string            `json:"title"`
	Description *string            `json:"description"`
	Items       *[]json.RawMessage `json:"items"`
}

type wireItem struct {
	ID          *int64          `json:"id"`
	Name        *string         `json:"name"`
	Responsible json.RawMessage `json:"responsible"`
	Status      *string         `json:"status"`
	AddedAt     *string         `json:"added_at"`
	UpdatedAt   *string         `json:"updated_at"`
	Description *string         `json:"description"`
}

type wireUser struct {
	ID        *int64  `json:"id"`
	Username  *string `json:"username"`
	Email     *string `json:"email"`
	FirstName *string `json:"first_name"`
	LastName  *string `json:"last_name"`
}

// The /users/ endpoint is the one place the server emits camelCase names.
type wireAccount struct {
	ID        *int64  `json:"id"`
	Username  *string `json:"username"`
	Email     *string `json:"email"`
	FirstName *string `json:"firstName"`
	LastName  *string `json:"lastName"`
}

// DecodeHabits decodes a habits list response. Order is preserved, and the
// decode is all-or-nothing: one bad element fails the whole list.
func DecodeHabits(data []byte) ([]model.Habit, error) {
	var elems []json.RawMessage
	if err := json.Unmarshal(data, &elems); err != nil {
		return nil, malformed("Habit", "", err)
	}
	habits := make([]model.Habit, 0, len(elems))
	for i, el := range elems {
		h, err := decodeHabit(el, fmt.Sprintf("[%d]", i))
		if err != nil {
			return nil, err
		}
		habits = append(habits, h)
	}
	return habits, nil
}

// DecodeHabit decodes a single habit object.
func DecodeHabit(data []byte) (model.Habit, error) {
	return decodeHabit(data, "")
}

func decodeHabit(data json.RawMessage, path string) (model.Habit, error) {
	var w wireHabit
	if err := json.Unmarshal(data, &w); err != nil {
		return model.Habit{}, malformed("Habit", path, err)
	}
	switch {
	case w.ID == nil:
		return model.Habit{}, missing("Habit", path, "id")
	case w.Name == nil:
		return model.Habit{}, missing("Habit", path, "name")
	case w.CreatedAt == nil:
		return model.Habit{}, missing("Habit", path, "created_at")
	case w.UpdatedAt == nil:
		return model.Habit{}, missing("Habit", path, "updated_at")
	}

	h := model.Habit{
		ID:          *w.ID,
		Name:        *w.Name,
		Description: w.Description,
		TimeOfDay:   w.TimeOfDay,
		CreatedAt:   *w.CreatedAt,
		UpdatedAt:   *w.UpdatedAt,
	}
	if w.Frequency != nil {
		h.Frequency = *w.Frequency
	}
	if w.DaysOfWeek != nil {
		h.DaysOfWeek = append([]int{}, (*w.DaysOfWeek)...)
	}

	if present(w.Location) && !emptyObject(w.Location) {
		loc, err := decodeLocation(w.Location, join(path, "location"))
		if err != nil {
			return model.Habit{}, err
		}
		h.Location = loc
	}
	if present(w.AudioNote) && !emptyObject(w.AudioNote) {
		note, err := decodeAudioNote(w.AudioNote, join(path, "audio_note"))
		if err != nil {
			return model.Habit{}, err
		}
		h.AudioNote = note
	}
	if w.Images != nil {
		images := make([]model.HabitImage, 0, len(*w.Images))
		for i, raw := range *w.Images {
			img, err := decodeImage(raw, fmt.Sprintf("%s[%d]", join(path, "images"), i))
			if err != nil {
				return model.Habit{}, err
			}
			images = append(images, img)
		}
		h.Images = images
	}

	if present(w.HabitList) && !emptyObject(w.HabitList) {
		list, err := decodeList(w.HabitList, join(path, "habit_list"))
		if err != nil {
			return model.Habit{}, err
		}
		h.List = list
	} else {
		h.List = model.DefaultList()
	}
	return h, nil
}

func decodeLocation(data json.RawMessage, path string) (*model.Location, error) {
	var w wireLocation
	if err := json.Unmarshal(data, &w); err != nil {
		return nil, malformed("Location", path, err)
	}
	if w.ID == nil {
		return nil, missing("Location", path, "id")
	}
	loc := &model.Location{ID: *w.ID, Name: w.Name}
	if w.Latitude != nil {
		loc.Latitude = *w.Latitude
	}
	if w.Longitude != nil {
		loc.Longitude = *w.Longitude
	}
	return loc, nil
}

func decodeAudioNote(data json.RawMessage, path string) (*model.AudioNote, error) {
	var w wireAudioNote
	if err := json.Unmarshal(data, &w); err != nil {
		return nil, malformed("AudioNote", path, err)
	}
	switch {
	case w.ID == nil:
		return nil, missing("AudioNote", path, "id")
	case w.AudioFile == nil:
		return nil, missing("AudioNote", path, "audio_file")
	case w.RecordedAt == nil:
		return nil, missing("AudioNote", path, "recorded_at")
	}
	return &model.AudioNote{
		ID:         *w.ID,
		AudioFile:  *w.AudioFile,
		Title:      w.Title,
		RecordedAt: *w.RecordedAt,
	}, nil
}

func decodeImage(data json.RawMessage, path string) (model.HabitImage, error) {
	var w wireImage
	if err := json.Unmarshal(data, &w); err != nil {
		return model.HabitImage{}, malformed("HabitImage", path, err)
	}
	switch {
	case w.ID == nil:
		return model.HabitImage{}, missing("HabitImage", path, "id")
	case w.Image == nil:
		return model.HabitImage{}, missing("HabitImage", path, "image")
	case w.UploadedAt == nil:
		return model.HabitImage{}, missing("HabitImage", path, "uploaded_at")
	}
	return model.HabitImage{
		ID:         *w.ID,
		Image:      *w.Image,
		Caption:    w.Caption,
		UploadedAt: *w.UploadedAt,
	}, nil
}

func decodeList(data json.RawMessage, path string) (model.HabitList, error) {
	var w wireList
	if err := json.Unmarshal(data, &w); err != nil {
		return model.HabitList{}, malformed("HabitList", path, err)
	}
	if w.ID == nil {
		return model.HabitList{}, missing("HabitList", path, "id")
	}
	if w.Title == nil {
		return model.HabitList{}, missing("HabitList", path, "title")
	}
	list := model.HabitList{
		ID:          *w.ID,
		Title:       *w.Title,
		Description: w.Description,
		Items:       []model.HabitItem{},
	}
	if w.Items != nil {
		for i, raw := range *w.Items {
			item, err := decodeItem(raw, fmt.Sprintf("%s[%d]", join(path, "items"), i))
			if err != nil {
				return model.HabitList{}, err
			}
			list.Items = append(list.Items, item)
		}
	}
	return list, nil
}

// DecodeItem decodes a single checklist item, e.g. a create-item response.
func DecodeItem(data []byte) (model.HabitItem, error) {
	return decodeItem(data, "")
}

func decodeItem(data json.RawMessage, path string) (model.HabitItem, error) {
	var w wireItem
	if err := json.Unmarshal(data, &w); err != nil {
		return model.HabitItem{}, malformed("HabitItem", path, err)
	}
	switch {
	case w.ID == nil:
		return model.HabitItem{}, missing("HabitItem", path, "id")
	case w.Name == nil:
		return model.HabitItem{}, missing("HabitItem", path, "name")
	case !present(w.Responsible):
		return model.HabitItem{}, missing("HabitItem", path, "responsible")
	case w.Status == nil:
		return model.HabitItem{}, missing("HabitItem", path, "status")
	}
	responsible, err := decodeUser(w.Responsible, join(path, "responsible"))
	if err != nil {
		return model.HabitItem{}, err
	}
	item := model.HabitItem{
		ID:          *w.ID,
		Name:        *w.Name,
		Responsible: responsible,
		Status:      *w.Status,
		Description: w.Description,
	}
	if w.AddedAt != nil {
		item.AddedAt = *w.AddedAt
	}
	if w.UpdatedAt != nil {
		item.UpdatedAt = *w.UpdatedAt
	}
	return item, nil
}

func decodeUser(data json.RawMessage, path string) (model.User, error) {
	var w wireUser
	if err := json.Unmarshal(data, &w); err != nil {
		return model.User{}, malformed("User", path, err)
	}
	switch {
	case w.ID == nil:
		return model.User{}, missing("User", path, "id")
	case w.Username == nil:
		return model.User{}, missing("User", path, "username")
	case w.Email == nil:
		return model.User{}, missing("User", path, "email")
	case w.FirstName == nil:
		return model.User{}, missing("User", path, "first_name")
	case w.LastName == nil:
		return model.User{}, missing("User", path, "last_name")
	}
	return model.User{
		ID:        *w.ID,
		Username:  *w.Username,
		Email:     *w.Email,
		FirstName: *w.FirstName,
		LastName:  *w.LastName,
	}, nil
}

// DecodeUsers decodes the /users/ listing, which uses camelCase name fields
// unlike the snake_case responsible objects nested in items.
func DecodeUsers(data []byte) ([]model.User, error) {
	var elems []json.RawMessage
	if err := json.Unmarshal(data, &elems); err != nil {
		return nil, malformed("User", "", err)
	}
	users := make([]model.User, 0, len(elems))
	for i, el := range elems {
		path := fmt.Sprintf("[%d]", i)
		var w wireAccount
		if err := json.Unmarshal(el, &w); err != nil {
			return nil, malformed("User", path, err)
		}
		switch {
		case w.ID == nil:
			return nil, missing("User", path, "id")
		case w.Username == nil:
			return nil, missing("User", path, "username")
		case w.Email == nil:
			return nil, missing("User", path, "email")
		case w.FirstName == nil:
			return nil, missing("User", path, "firstName")
		case w.LastName == nil:
			return nil, missing("User", path, "lastName")
		}
		users = append(users, model.User{
			ID:        *w.ID,
			Username:  *w.Username,
			Email:     *w.Email,
			FirstName: *w.FirstName,
			LastName:  *w.LastName,
		})
	}
	return users, nil
}

// DecodeCreatedID extracts the server-assigned id from a create response.
func DecodeCreatedID(data []byte) (int64, error) {
	var w struct {
		ID *int64 `json:"id"`
	}
	if err := json.Unmarshal(data, &w); err != nil {
		return 0, malformed("Habit", "", err)
	}
	if w.ID == nil {
		return 0, missing("Habit", "", "id")
	}
	return *w.ID, nil
}

// present reports whether an optional object field carried a value at all.
func present(raw json.RawMessage) bool {
	return len(raw) > 0 && !bytes.Equal(bytes.TrimSpace(raw), []byte("null"))
}

// emptyObject reports whether raw is a structurally empty JSON object. The
// server emits {} for cleared optional objects; those map to absence.
func emptyObject(raw json.RawMessage) bool {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil {
		return false
	}
	return len(fields) == 0
}
