package model

// Known HabitItem status values. The server treats status as free-form text,
// anything else renders as neutral.
const (
	StatusCompleted = "completed"
	StatusPending   = "pending"
)

// An ID of 0 on any record means "not yet persisted": the record was built on
// the client and is waiting for the server to assign an identity.

type Location struct {
	ID        int64
	Latitude  float64
	Longitude float64
	Name      *string
}

type AudioNote struct {
	ID         int64
	AudioFile  string
	Title      *string
	RecordedAt string
}

type HabitImage struct {
	ID         int64
	Image      string
	Caption    *string
	UploadedAt string
}

type HabitItem struct {
	ID          int64
	Name        string
	Responsible User
	Status      string
	AddedAt     string
	UpdatedAt   string
	Description *string
}

type HabitList struct {
	ID          int64
	Title       string
	Description *string
	Items       []HabitItem
}

type Habit struct {
	ID          int64
	Name        string
	Description *string
	Frequency   string
	DaysOfWeek  []int // nil when the habit has no weekday schedule
	TimeOfDay   *string
	Location    *Location
	AudioNote   *AudioNote
	Images      []HabitImage // nil when the server sent no images field
	CreatedAt   string
	UpdatedAt   string
	List        HabitList
}

// DefaultList is the placeholder checklist substituted when the server omits
// habit_list from a habit payload.
func DefaultList() HabitList {
	return HabitList{ID: 0, Title: "Default List", Items: []HabitItem{}}
}
