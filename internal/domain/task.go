package domain

import (
	"strings"
	"time"
)

// Priority is the urgency level of a task.
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

// DefaultCategory is assigned to tasks created without a category.
const DefaultCategory = "general"

// Rank orders priorities for display: high=3, medium=2, low=1, unknown=0.
func (p Priority) Rank() int {
	switch p {
	case PriorityHigh:
		return 3
	case PriorityMedium:
		return 2
	case PriorityLow:
		return 1
	default:
		return 0
	}
}

// IsValid reports whether p is one of the known priorities.
func (p Priority) IsValid() bool {
	return p.Rank() > 0
}

// ParsePriority converts user input into a Priority.
func ParsePriority(s string) (Priority, bool) {
	p := Priority(strings.ToLower(strings.TrimSpace(s)))
	return p, p.IsValid()
}

// Task represents a personal to-do item.
// The identifier is assigned by the caller; uniqueness within the
// collection is the only contract on it.
type Task struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description,omitempty"`
	DueDate     *time.Time `json:"due_date,omitempty"`
	Completed   bool       `json:"completed"`
	Priority    Priority   `json:"priority"`
	Category    string     `json:"category"`
}

// NewTask creates a pending medium-priority task in the default category.
func NewTask(id, title string) Task {
	return Task{
		ID:       id,
		Title:    title,
		Priority: PriorityMedium,
		Category: DefaultCategory,
	}
}

// IsValid checks if the task has an identifier and a title.
func (t Task) IsValid() bool {
	return t.ID != "" && strings.TrimSpace(t.Title) != ""
}

// HasDueDate reports whether a due date is set.
func (t Task) HasDueDate() bool {
	return t.DueDate != nil
}

// Clone returns a copy that shares no pointers with t.
func (t Task) Clone() Task {
	if t.DueDate != nil {
		due := *t.DueDate
		t.DueDate = &due
	}
	return t
}

// String returns the task title for display purposes.
func (t Task) String() string {
	return t.Title
}

// TaskUpdate carries a partial edit of a task. Nil fields are left unchanged.
type TaskUpdate struct {
	Title        *string
	Description  *string
	DueDate      *time.Time
	ClearDueDate bool
	Priority     *Priority
	Category     *string
}

// Apply shallow-merges the set fields into t and returns the result.
func (u TaskUpdate) Apply(t Task) Task {
	t = t.Clone()
	if u.Title != nil {
		t.Title = *u.Title
	}
	if u.Description != nil {
		t.Description = *u.Description
	}
	if u.ClearDueDate {
		t.DueDate = nil
	} else if u.DueDate != nil {
		due := DateOf(*u.DueDate)
		t.DueDate = &due
	}
	if u.Priority != nil {
		t.Priority = *u.Priority
	}
	if u.Category != nil {
		t.Category = *u.Category
	}
	return t
}
