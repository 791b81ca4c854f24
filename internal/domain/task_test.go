package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNewTask(t *testing.T) {
	result := NewTask("t1", "Write report")

	assert.Equal(t, Task{
		ID:       "t1",
		Title:    "Write report",
		Priority: PriorityMedium,
		Category: DefaultCategory,
	}, result)
	assert.False(t, result.Completed)
	assert.False(t, result.HasDueDate())
}

func TestPriority(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected Priority
		valid    bool
		rank     int
	}{
		{name: "should parse high", input: "high", expected: PriorityHigh, valid: true, rank: 3},
		{name: "should parse medium ignoring case", input: " Medium ", expected: PriorityMedium, valid: true, rank: 2},
		{name: "should parse low", input: "LOW", expected: PriorityLow, valid: true, rank: 1},
		{name: "should reject unknown", input: "urgent", expected: Priority("urgent"), valid: false, rank: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, ok := ParsePriority(tt.input)
			assert.Equal(t, tt.valid, ok)
			assert.Equal(t, tt.expected, p)
			assert.Equal(t, tt.rank, p.Rank())
		})
	}
}

func TestTask_IsValid(t *testing.T) {
	tests := []struct {
		name     string
		task     Task
		expected bool
	}{
		{name: "valid task", task: Task{ID: "1", Title: "Valid Task"}, expected: true},
		{name: "invalid task with empty title", task: Task{ID: "1", Title: ""}, expected: false},
		{name: "invalid task with blank title", task: Task{ID: "1", Title: "   "}, expected: false},
		{name: "invalid task without id", task: Task{Title: "Valid Task"}, expected: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.task.IsValid())
		})
	}
}

func TestTask_String(t *testing.T) {
	assert.Equal(t, "My Task", Task{ID: "1", Title: "My Task"}.String())
	assert.Equal(t, "", Task{ID: "1"}.String())
}

func TestTask_Clone(t *testing.T) {
	due := time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC)
	original := Task{ID: "1", Title: "x", DueDate: &due}

	clone := original.Clone()
	*clone.DueDate = clone.DueDate.AddDate(0, 0, 1)

	assert.Equal(t, 10, original.DueDate.Day())
	assert.Equal(t, 11, clone.DueDate.Day())
}

func TestTaskUpdate_Apply(t *testing.T) {
	due := time.Date(2024, 3, 10, 15, 30, 0, 0, time.UTC)
	base := Task{ID: "1", Title: "old", Description: "keep", DueDate: &due, Priority: PriorityLow, Category: "general"}

	title := "new"
	high := PriorityHigh
	newDue := time.Date(2024, 4, 1, 22, 0, 0, 0, time.UTC)

	tests := []struct {
		name   string
		update TaskUpdate
		check  func(t *testing.T, result Task)
	}{
		{
			name:   "should change only set fields",
			update: TaskUpdate{Title: &title, Priority: &high},
			check: func(t *testing.T, result Task) {
				assert.Equal(t, "new", result.Title)
				assert.Equal(t, PriorityHigh, result.Priority)
				assert.Equal(t, "keep", result.Description)
				assert.Equal(t, "general", result.Category)
				assert.NotNil(t, result.DueDate)
			},
		},
		{
			name:   "should normalise a new due date to its calendar day",
			update: TaskUpdate{DueDate: &newDue},
			check: func(t *testing.T, result Task) {
				assert.Equal(t, "2024-04-01", FormatDate(result.DueDate))
				assert.Equal(t, 0, result.DueDate.Hour())
			},
		},
		{
			name:   "should clear the due date",
			update: TaskUpdate{ClearDueDate: true, DueDate: &newDue},
			check: func(t *testing.T, result Task) {
				assert.Nil(t, result.DueDate)
			},
		},
		{
			name:   "should leave the task unchanged for an empty update",
			update: TaskUpdate{},
			check: func(t *testing.T, result Task) {
				assert.Equal(t, base, result)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.check(t, tt.update.Apply(base))
		})
	}
	assert.Equal(t, "old", base.Title)
}
