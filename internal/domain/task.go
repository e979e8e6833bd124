package domain

import (
	"database/sql/driver"
	"fmt"
	"strings"
	"time"
)

// Priority is the urgency level of a task.
type Priority string

// Recognized priority values.
const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

// DefaultPriority is assigned when a task is created without an explicit
// priority.
const DefaultPriority = PriorityMedium

// MaxTitleLength is the upper bound on task titles.
const MaxTitleLength = 255

// Valid reports whether p is one of the recognized priority values.
func (p Priority) Valid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	}
	return false
}

// Rank returns the sort rank of the priority: high sorts before medium,
// medium before low. This is the fixed rank mapping used for priority
// ordering; it is deliberately not lexicographic. Unrecognized values rank
// after all known ones.
func (p Priority) Rank() int {
	switch p {
	case PriorityHigh:
		return 1
	case PriorityMedium:
		return 2
	case PriorityLow:
		return 3
	}
	return 4
}

// DateLayout is the wire and storage format for calendar dates.
const DateLayout = "2006-01-02"

// Date is a calendar date with no time component. It marshals to and from
// JSON as "YYYY-MM-DD" and maps to the SQL DATE type.
type Date struct {
	time.Time
}

// NewDate builds a Date from year, month and day in UTC.
func NewDate(year int, month time.Month, day int) Date {
	return Date{time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// ParseDate parses a "YYYY-MM-DD" string into a Date.
// Returns ErrInvalidDate if the string is not a valid calendar date.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return Date{}, fmt.Errorf("%w: %q", ErrInvalidDate, s)
	}
	return Date{t}, nil
}

// String returns the date in "YYYY-MM-DD" form.
func (d Date) String() string {
	return d.Format(DateLayout)
}

// MarshalJSON implements json.Marshaler.
func (d Date) MarshalJSON() ([]byte, error) {
	return []byte(`"` + d.Format(DateLayout) + `"`), nil
}

// UnmarshalJSON implements json.Unmarshaler, accepting "YYYY-MM-DD".
func (d *Date) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	parsed, err := ParseDate(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// Value implements driver.Valuer so a Date can be passed directly as a
// query argument for a DATE column.
func (d Date) Value() (driver.Value, error) {
	return d.Time, nil
}

// Scan implements sql.Scanner so a DATE column can be read into a Date.
func (d *Date) Scan(src any) error {
	switch v := src.(type) {
	case time.Time:
		d.Time = v
		return nil
	case string:
		parsed, err := ParseDate(v)
		if err != nil {
			return err
		}
		*d = parsed
		return nil
	case []byte:
		return d.Scan(string(v))
	}
	return fmt.Errorf("%w: cannot scan %T into Date", ErrInvalidDate, src)
}

// Task is a unit of work owned by exactly one user. Tasks are only ever
// visible or mutable through their owner's identity.
type Task struct {
	ID          int64     `json:"id"`
	UserID      int64     `json:"user_id"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	Priority    Priority  `json:"priority"`
	EndDate     Date      `json:"end_date"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// NewTask creates a new Task for the given owner. An empty priority defaults
// to medium. The ID is assigned by the store on creation.
// Returns a ValidationError if any field is invalid.
func NewTask(userID int64, title, description string, priority Priority, endDate Date) (*Task, error) {
	if priority == "" {
		priority = DefaultPriority
	}

	now := time.Now().UTC()
	task := &Task{
		UserID:      userID,
		Title:       strings.TrimSpace(title),
		Description: description,
		Priority:    priority,
		EndDate:     endDate,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := task.Validate(); err != nil {
		return nil, err
	}

	return task, nil
}

// Validate checks if the Task has valid data.
// Returns a ValidationError describing the first failing field.
func (t *Task) Validate() error {
	if t.UserID <= 0 {
		return NewValidationError("user_id", "is required", ErrInvalidID)
	}
	if t.Title == "" {
		return NewValidationError("title", "cannot be empty", ErrValidation)
	}
	if len(t.Title) > MaxTitleLength {
		return NewValidationError("title", "must be at most 255 characters", ErrValidation)
	}
	if !t.Priority.Valid() {
		return NewValidationError("priority", "must be one of low, medium, high", ErrInvalidPriority)
	}
	if t.EndDate.IsZero() {
		return NewValidationError("endDate", "is required", ErrInvalidDate)
	}
	return nil
}

// TaskUpdate describes a partial update to a task. Each field is applied
// only when non-nil, so "absent" and "set to zero value" stay distinct.
type TaskUpdate struct {
	Title       *string
	Description *string
	Priority    *Priority
	EndDate     *Date
}

// IsEmpty reports whether the update changes nothing.
func (u TaskUpdate) IsEmpty() bool {
	return u.Title == nil && u.Description == nil && u.Priority == nil && u.EndDate == nil
}

// Apply copies the supplied fields onto the task, refreshes its updated
// timestamp and re-validates. The task is left unmodified on validation
// failure.
func (u TaskUpdate) Apply(t *Task) error {
	updated := *t
	if u.Title != nil {
		updated.Title = strings.TrimSpace(*u.Title)
	}
	if u.Description != nil {
		updated.Description = *u.Description
	}
	if u.Priority != nil {
		updated.Priority = *u.Priority
	}
	if u.EndDate != nil {
		updated.EndDate = *u.EndDate
	}
	updated.UpdatedAt = time.Now().UTC()

	if err := updated.Validate(); err != nil {
		return err
	}

	*t = updated
	return nil
}
