// Package tui is an interactive habit browser. It keeps the habit list as an
// immutable snapshot and swaps it wholesale after every confirmed mutation;
// nothing edits the displayed state in place.
package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/dukerupert/habitly/internal/api"
	"github.com/dukerupert/habitly/internal/cache"
	"github.com/dukerupert/habitly/internal/model"
	"github.com/dukerupert/habitly/internal/state"
)

type habitEntry struct {
	habit model.Habit
}

func (e habitEntry) Title() string {
	return fmt.Sprintf("#%d %s", e.habit.ID, e.habit.Name)
}

func (e habitEntry) Description() string {
	var parts []string
	if e.habit.Frequency != "" {
		parts = append(parts, e.habit.Frequency)
	}
	if e.habit.TimeOfDay != nil {
		parts = append(parts, "at "+*e.habit.TimeOfDay)
	}
	if n := len(e.habit.List.Items); n > 0 {
		parts = append(parts, fmt.Sprintf("%d items", n))
	}
	if len(parts) == 0 {
		return "no schedule"
	}
	return strings.Join(parts, " · ")
}

func (e habitEntry) FilterValue() string { return e.habit.Name }

type habitsLoadedMsg struct {
	habits    []model.Habit
	fromCache bool
}

type deleteDoneMsg struct {
	id int64
	ok bool
}

type Model struct {
	client  *api.Client
	cache   *cache.Store
	snap    state.Snapshot
	list    list.Model
	status  string
	confirm *int64 // habit id awaiting delete confirmation
}

func newModel(client *api.Client, store *cache.Store) Model {
	l := list.New(nil, list.NewDefaultDelegate(), 0, 0)
	l.Title = "Habits"
	l.SetShowStatusBar(false)
	return Model{
		client: client,
		cache:  store,
		list:   l,
		status: "loading...",
	}
}

// Run launches the habit browser and blocks until the user quits.
func Run(client *api.Client, store *cache.Store) error {
	p := tea.NewProgram(newModel(client, store), tea.WithAltScreen())
	_, err := p.Run()
	return err
}

func (m Model) Init() tea.Cmd {
	return m.loadCmd()
}

// loadCmd fetches habits off the UI loop. A failed fetch surfaces as an empty
// list, so the cached copy stands in when one exists.
func (m Model) loadCmd() tea.Cmd {
	client, store := m.client, m.cache
	return func() tea.Msg {
		habits := client.FetchHabits(context.Background())
		if len(habits) > 0 {
			_ = store.ReplaceAll(habits)
			return habitsLoadedMsg{habits: habits}
		}
		cached, err := store.LoadAll()
		if err != nil || len(cached) == 0 {
			return habitsLoadedMsg{habits: habits}
		}
		return habitsLoadedMsg{habits: cached, fromCache: true}
	}
}

func (m Model) deleteCmd(id int64) tea.Cmd {
	client := m.client
	return func() tea.Msg {
		return deleteDoneMsg{id: id, ok: client.DeleteHabit(context.Background(), id)}
	}
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		frameW, frameH := docStyle.GetFrameSize()
		m.list.SetSize(msg.Width-frameW, msg.Height-frameH-1)
		return m, nil

	case habitsLoadedMsg:
		m.snap = state.NewSnapshot(msg.habits)
		m.confirm = nil
		if msg.fromCache {
			m.status = cachedStyle.Render("offline: showing cached copy")
		} else {
			m.status = fmt.Sprintf("%d habits", m.snap.Len())
		}
		return m, m.setEntries()

	case deleteDoneMsg:
		m.confirm = nil
		if !msg.ok {
			m.status = dangerStyle.Render("delete failed (see log)")
			return m, nil
		}
		m.snap = m.snap.Without(msg.id)
		m.status = fmt.Sprintf("deleted #%d", msg.id)
		return m, m.setEntries()

	case tea.KeyMsg:
		if m.confirm != nil {
			switch msg.String() {
			case "y":
				id := *m.confirm
				m.status = fmt.Sprintf("deleting #%d...", id)
				return m, m.deleteCmd(id)
			case "n", "esc":
				m.confirm = nil
				m.status = "cancelled"
				return m, nil
			}
			return m, nil
		}
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case "r":
			m.status = "refreshing..."
			return m, m.loadCmd()
		case "d":
			if entry, ok := m.list.SelectedItem().(habitEntry); ok {
				id := entry.habit.ID
				m.confirm = &id
				m.status = dangerStyle.Render(fmt.Sprintf("delete #%d %s? (y/n)", id, entry.habit.Name))
			}
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m Model) setEntries() tea.Cmd {
	entries := make([]list.Item, 0, m.snap.Len())
	for _, h := range m.snap.Habits() {
		entries = append(entries, habitEntry{habit: h})
	}
	return m.list.SetItems(entries)
}

func (m Model) View() string {
	return docStyle.Render(m.list.View()) + "\n" + statusStyle.Render(m.status)
}
