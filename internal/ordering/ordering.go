// Package ordering computes the display order and urgency labels of tasks
// without touching their storage order.
package ordering

import (
	"sort"
	"time"

	"company-portal/internal/domain"
)

// DueSoonDays is the inclusive look-ahead for the due-soon label.
const DueSoonDays = 7

// Classification is a computed urgency label. It is never stored.
type Classification string

const (
	ClassNone    Classification = "none"
	ClassOverdue Classification = "overdue"
	ClassDueSoon Classification = "due-soon"
)

// ClassifiedTask pairs a task with its label for today.
type ClassifiedTask struct {
	domain.Task
	Class Classification
}

// TaskView is the presentation-ready split of a task collection.
type TaskView struct {
	Pending   []ClassifiedTask
	Completed []ClassifiedTask
}

// SortPending returns the pending tasks ordered by priority descending,
// then due date ascending with undated tasks last, then insertion order.
// The input slice is not modified.
func SortPending(tasks []domain.Task) []domain.Task {
	pending := make([]domain.Task, 0, len(tasks))
	for _, t := range tasks {
		if !t.Completed {
			pending = append(pending, t.Clone())
		}
	}

	sort.SliceStable(pending, func(i, j int) bool {
		return less(pending[i], pending[j])
	})
	return pending
}

func less(a, b domain.Task) bool {
	if ra, rb := a.Priority.Rank(), b.Priority.Rank(); ra != rb {
		return ra > rb
	}
	switch {
	case a.DueDate != nil && b.DueDate != nil:
		return domain.DateOf(*a.DueDate).Before(domain.DateOf(*b.DueDate))
	case a.DueDate != nil:
		return true
	default:
		return false
	}
}

// Completed returns the completed tasks in storage order.
func Completed(tasks []domain.Task) []domain.Task {
	done := make([]domain.Task, 0)
	for _, t := range tasks {
		if t.Completed {
			done = append(done, t.Clone())
		}
	}
	return done
}

// Classify labels a task relative to today. Completed and undated tasks
// are never overdue or due soon.
func Classify(task domain.Task, today time.Time) Classification {
	if task.Completed || task.DueDate == nil {
		return ClassNone
	}

	days := domain.DaysBetween(today, *task.DueDate)
	switch {
	case days < 0:
		return ClassOverdue
	case days <= DueSoonDays:
		return ClassDueSoon
	default:
		return ClassNone
	}
}

// View sorts and classifies tasks for display.
func View(tasks []domain.Task, today time.Time) TaskView {
	view := TaskView{
		Pending:   make([]ClassifiedTask, 0),
		Completed: make([]ClassifiedTask, 0),
	}
	for _, t := range SortPending(tasks) {
		view.Pending = append(view.Pending, ClassifiedTask{Task: t, Class: Classify(t, today)})
	}
	for _, t := range Completed(tasks) {
		view.Completed = append(view.Completed, ClassifiedTask{Task: t, Class: ClassNone})
	}
	return view
}
