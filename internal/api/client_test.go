package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/dukerupert/habitly/internal/model"
)

func testClient(t *testing.T, url string) (*Client, *bytes.Buffer) {
	t.Helper()
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))
	return NewClient(url, "test-token", WithLogger(logger)), &buf
}

func TestFetchHabitsSuccess(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/v1/habits/" {
			t.Errorf("path = %q", r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer test-token" {
			t.Errorf("authorization = %q", got)
		}
		if r.Header.Get("X-Request-ID") == "" {
			t.Error("missing X-Request-ID header")
		}
		fmt.Fprint(w, `[
			{"id": 2, "name": "b", "created_at": "t", "updated_at": "t"},
			{"id": 1, "name": "a", "created_at": "t", "updated_at": "t"}
		]`)
	}))
	defer server.Close()

	client, _ := testClient(t, server.URL)
	habits := client.FetchHabits(context.Background())
	if len(habits) != 2 {
		t.Fatalf("habits count = %d, want 2", len(habits))
	}
	if habits[0].ID != 2 || habits[1].ID != 1 {
		t.Errorf("order = %d, %d, want 2, 1", habits[0].ID, habits[1].ID)
	}
}

func TestFetchHabitsFailsSoft(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{"server error", func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "boom", http.StatusInternalServerError)
		}},
		{"bad payload", func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprint(w, `[{"id": 1, "created_at": "t", "updated_at": "t"}]`)
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(tt.handler)
			defer server.Close()

			client, logs := testClient(t, server.URL)
			habits := client.FetchHabits(context.Background())
			if habits == nil || len(habits) != 0 {
				t.Errorf("habits = %v, want empty slice", habits)
			}
			if !strings.Contains(logs.String(), "fetch habits failed") {
				t.Errorf("expected failure log, got %q", logs.String())
			}
		})
	}
}

func TestFetchHabitsTransportError(t *testing.T) {
	// A closed server is unreachable.
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close()

	client, logs := testClient(t, server.URL)
	habits := client.FetchHabits(context.Background())
	if len(habits) != 0 {
		t.Errorf("habits = %v, want empty", habits)
	}
	if logs.Len() == 0 {
		t.Error("expected failure log")
	}
}

// TestHabitLifecycle walks create, update, delete, and a repeated delete
// against a fake server.
func TestHabitLifecycle(t *testing.T) {
	deleted := false
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodPost && r.URL.Path == "/api/v1/habits/":
			var payload map[string]any
			body, _ := io.ReadAll(r.Body)
			if err := json.Unmarshal(body, &payload); err != nil {
				t.Errorf("create body not JSON: %v", err)
			}
			if payload["name"] != "Morning Run" {
				t.Errorf("create name = %v", payload["name"])
			}
			w.WriteHeader(http.StatusCreated)
			fmt.Fprint(w, `{"id": 42, "name": "Morning Run"}`)
		case r.Method == http.MethodPut && r.URL.Path == "/api/v1/habits/42/":
			w.WriteHeader(http.StatusOK)
		case r.Method == http.MethodDelete && r.URL.Path == "/api/v1/habits/42/":
			if deleted {
				http.Error(w, "not found", http.StatusNotFound)
				return
			}
			deleted = true
			w.WriteHeader(http.StatusNoContent)
		default:
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
			http.Error(w, "bad request", http.StatusBadRequest)
		}
	}))
	defer server.Close()

	client, logs := testClient(t, server.URL)
	ctx := context.Background()

	habit := model.Habit{Name: "Morning Run", Frequency: "Daily", List: model.DefaultList()}
	id, ok := client.CreateHabit(ctx, habit)
	if !ok {
		t.Fatal("create failed")
	}
	if id != 42 {
		t.Fatalf("created id = %d, want 42", id)
	}

	habit.ID = id
	if !client.UpdateHabit(ctx, habit) {
		t.Error("update returned false")
	}
	if !client.DeleteHabit(ctx, 42) {
		t.Error("first delete returned false")
	}
	if client.DeleteHabit(ctx, 42) {
		t.Error("second delete returned true, want false")
	}
	if !strings.Contains(logs.String(), "status=404") {
		t.Errorf("expected 404 in failure log, got %q", logs.String())
	}
}

func TestCreateHabitMissingIDFails(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
		fmt.Fprint(w, `{"name": "x"}`)
	}))
	defer server.Close()

	client, _ := testClient(t, server.URL)
	_, ok := client.CreateHabit(context.Background(), model.Habit{Name: "x", List: model.DefaultList()})
	if ok {
		t.Error("create succeeded despite missing id in response")
	}
}

func TestCreateItem(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/v1/items/" {
			t.Errorf("path = %q", r.URL.Path)
		}
		var payload struct {
			Name          string `json:"name"`
			ResponsibleID int64  `json:"responsible_id"`
			EventID       int64  `json:"event_id"`
		}
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		if payload.Name != "Fill bottle" || payload.ResponsibleID != 5 || payload.EventID != 2 {
			t.Errorf("payload = %+v", payload)
		}
		w.WriteHeader(http.StatusCreated)
		fmt.Fprint(w, `{"id": 21, "name": "Fill bottle", "status": "pending",
			"responsible": {"id": 5, "username": "ana", "email": "e", "first_name": "A", "last_name": "D"}}`)
	}))
	defer server.Close()

	client, _ := testClient(t, server.URL)
	item, ok := client.CreateItem(context.Background(), 2, "Fill bottle", 5)
	if !ok {
		t.Fatal("create item failed")
	}
	if item.ID != 21 || item.Responsible.ID != 5 {
		t.Errorf("item = %+v", item)
	}
	if item.AddedAt != "" {
		t.Errorf("added_at = %q, want empty default", item.AddedAt)
	}
}

func TestFetchAllUsers(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/users/" {
			t.Errorf("path = %q", r.URL.Path)
		}
		fmt.Fprint(w, `[
			{"id": 5, "username": "ana", "email": "a@e.com", "firstName": "Ana", "lastName": "Diaz"},
			{"id": 6, "username": "bo", "email": "b@e.com", "firstName": "Bo", "lastName": "Li"}
		]`)
	}))
	defer server.Close()

	client, _ := testClient(t, server.URL)
	users := client.FetchAllUsers(context.Background())
	if len(users) != 2 {
		t.Fatalf("users count = %d, want 2", len(users))
	}
	if users[0].Username != "ana" || users[1].Username != "bo" {
		t.Errorf("order = %q, %q", users[0].Username, users[1].Username)
	}
}

func TestUploadImage(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/v1/habits/7/add_image/" {
			t.Errorf("path = %q", r.URL.Path)
		}
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			t.Fatalf("parse multipart: %v", err)
		}
		file, header, err := r.FormFile("image")
		if err != nil {
			t.Fatalf("form file: %v", err)
		}
		defer file.Close()
		if header.Filename != "sunrise.jpg" {
			t.Errorf("filename = %q", header.Filename)
		}
		if ct := header.Header.Get("Content-Type"); ct != "image/jpeg" {
			t.Errorf("part content type = %q", ct)
		}
		content, _ := io.ReadAll(file)
		if string(content) != "fake-jpeg-bytes" {
			t.Errorf("content = %q", content)
		}
		w.WriteHeader(http.StatusCreated)
	}))
	defer server.Close()

	client, _ := testClient(t, server.URL)
	ok := client.UploadImage(context.Background(), 7, Attachment{
		Filename:    "sunrise.jpg",
		Content:     strings.NewReader("fake-jpeg-bytes"),
		ContentType: "image/jpeg",
	})
	if !ok {
		t.Error("upload returned false")
	}
}

func TestUploadAudioFieldName(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/v1/habits/7/add_note_audio/" {
			t.Errorf("path = %q", r.URL.Path)
		}
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			t.Fatalf("parse multipart: %v", err)
		}
		if _, _, err := r.FormFile("audio_file"); err != nil {
			t.Errorf("audio_file part missing: %v", err)
		}
		w.WriteHeader(http.StatusCreated)
	}))
	defer server.Close()

	client, _ := testClient(t, server.URL)
	ok := client.UploadAudio(context.Background(), 7, Attachment{
		Filename:    "note.m4a",
		Content:     strings.NewReader("fake-audio"),
		ContentType: "audio/mp4",
	})
	if !ok {
		t.Error("upload returned false")
	}
}

func TestUploadFailureReturnsFalse(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "too large", http.StatusRequestEntityTooLarge)
	}))
	defer server.Close()

	client, logs := testClient(t, server.URL)
	ok := client.UploadImage(context.Background(), 7, Attachment{
		Filename: "a.jpg",
		Content:  strings.NewReader("x"),
	})
	if ok {
		t.Error("upload returned true for non-2xx")
	}
	if !strings.Contains(logs.String(), "413") {
		t.Errorf("expected status in log, got %q", logs.String())
	}
}
