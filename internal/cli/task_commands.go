package cli

import (
	"context"
	"fmt"
	"io"
	"strings"

	"company-portal/internal/domain"
	"company-portal/internal/errors"
	"company-portal/internal/metrics"
	"company-portal/internal/ordering"
)

var taskKeys = []string{"priority", "due", "category", "description"}

// TaskAddCommand handles the task add command
type TaskAddCommand struct {
	app          *App
	errorHandler *ErrorHandler
}

// NewTaskAddCommand creates a new task add command handler
func NewTaskAddCommand(app *App) *TaskAddCommand {
	return &TaskAddCommand{app: app, errorHandler: NewErrorHandler()}
}

// Execute runs the task add command
func (c *TaskAddCommand) Execute(ctx context.Context, args []string) error {
	fields, words := splitFields(args, taskKeys...)
	if len(words) == 0 {
		return errors.NewInvalidInputError("command", "task add",
			"usage: portal task add <title> [priority=low|medium|high] [due=YYYY-MM-DD] [category=..] [description=..]")
	}

	priority, err := parsePriorityField(fields)
	if err != nil {
		return err
	}
	due, err := parseDateField(fields, "due")
	if err != nil {
		return err
	}

	task := domain.Task{
		Title:       strings.Join(words, " "),
		Description: fields["description"],
		DueDate:     due,
		Category:    fields["category"],
	}
	if priority != nil {
		task.Priority = *priority
	}

	added, err := c.app.api.AddTask(ctx, task)
	if err != nil {
		if added != nil {
			// kept locally but not persisted
			fmt.Fprintf(c.app.out, "Added %s locally: %s\n", shortID(added.ID), added.Title)
		}
		return c.errorHandler.Handle("add task", err)
	}
	fmt.Fprintf(c.app.out, "Added task %s: %s\n", shortID(added.ID), added.Title)
	return nil
}

// TaskListCommand prints pending tasks in display order, then completed ones
type TaskListCommand struct {
	app          *App
	errorHandler *ErrorHandler
}

// NewTaskListCommand creates a new task list command handler
func NewTaskListCommand(app *App) *TaskListCommand {
	return &TaskListCommand{app: app, errorHandler: NewErrorHandler()}
}

// Execute runs the task list command
func (c *TaskListCommand) Execute(ctx context.Context, args []string) error {
	tasks, err := c.app.api.ListTasks(ctx)
	if err != nil {
		return c.errorHandler.Handle("list tasks", err)
	}
	if len(tasks) == 0 {
		fmt.Fprintln(c.app.out, "No tasks found")
		return nil
	}

	view := ordering.View(tasks, domain.DateOf(timeNow()))
	printTaskView(c.app.out, c.app.renderer, view)
	fmt.Fprintf(c.app.out, "%d of %d completed (%d%%)\n",
		metrics.CountCompleted(tasks), len(tasks), metrics.CompletionRate(tasks))
	return nil
}

func printTaskView(out io.Writer, r *Renderer, view ordering.TaskView) {
	fmt.Fprintln(out, r.Heading(fmt.Sprintf("Pending (%d)", len(view.Pending))))
	for _, task := range view.Pending {
		fmt.Fprintln(out, "  "+formatTask(r, task))
	}
	if len(view.Completed) > 0 {
		fmt.Fprintln(out, r.Heading(fmt.Sprintf("Completed (%d)", len(view.Completed))))
		for _, task := range view.Completed {
			fmt.Fprintln(out, "  "+formatTask(r, task))
		}
	}
}

// formatTask renders one line: id, priority, title, due date, label, category
func formatTask(r *Renderer, task ordering.ClassifiedTask) string {
	parts := []string{r.Muted(shortID(task.ID))}
	if task.Completed {
		parts = append(parts, r.Success("[x]"))
	} else {
		parts = append(parts, r.Priority(task.Priority))
	}
	parts = append(parts, task.Title)
	if task.DueDate != nil {
		parts = append(parts, "due "+domain.FormatDate(task.DueDate))
	}
	if label := r.Class(task.Class); label != "" {
		parts = append(parts, label)
	}
	if task.Category != "" {
		parts = append(parts, r.Muted("#"+task.Category))
	}
	return strings.Join(parts, " ")
}

// TaskDoneCommand toggles completion of a task
type TaskDoneCommand struct {
	app          *App
	errorHandler *ErrorHandler
}

// NewTaskDoneCommand creates a new task done command handler
func NewTaskDoneCommand(app *App) *TaskDoneCommand {
	return &TaskDoneCommand{app: app, errorHandler: NewErrorHandler()}
}

// Execute runs the task done command
func (c *TaskDoneCommand) Execute(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return errors.NewInvalidInputError("command", "task done", "usage: portal task done <id>")
	}
	id, err := resolveTaskID(ctx, c.app, args[0])
	if err != nil {
		return c.errorHandler.Handle("toggle task", err)
	}

	task, err := c.app.api.ToggleTask(ctx, id)
	if err != nil {
		return c.errorHandler.Handle("toggle task", err)
	}
	state := "pending"
	if task.Completed {
		state = "completed"
	}
	fmt.Fprintf(c.app.out, "Marked %s as %s: %s\n", shortID(task.ID), state, task.Title)
	return nil
}

// TaskRemoveCommand deletes a task
type TaskRemoveCommand struct {
	app          *App
	errorHandler *ErrorHandler
}

// NewTaskRemoveCommand creates a new task rm command handler
func NewTaskRemoveCommand(app *App) *TaskRemoveCommand {
	return &TaskRemoveCommand{app: app, errorHandler: NewErrorHandler()}
}

// Execute runs the task rm command
func (c *TaskRemoveCommand) Execute(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return errors.NewInvalidInputError("command", "task rm", "usage: portal task rm <id>")
	}
	id, err := resolveTaskID(ctx, c.app, args[0])
	if err != nil {
		return c.errorHandler.Handle("delete task", err)
	}

	if err := c.app.api.DeleteTask(ctx, id); err != nil {
		return c.errorHandler.Handle("delete task", err)
	}
	fmt.Fprintf(c.app.out, "Deleted task %s\n", shortID(id))
	return nil
}

// TaskEditCommand changes fields of a task
type TaskEditCommand struct {
	app          *App
	errorHandler *ErrorHandler
}

// NewTaskEditCommand creates a new task edit command handler
func NewTaskEditCommand(app *App) *TaskEditCommand {
	return &TaskEditCommand{app: app, errorHandler: NewErrorHandler()}
}

// Execute runs the task edit command. "due=" clears the due date.
func (c *TaskEditCommand) Execute(ctx context.Context, args []string) error {
	if len(args) < 2 {
		return errors.NewInvalidInputError("command", "task edit",
			"usage: portal task edit <id> [title=..] [priority=..] [due=YYYY-MM-DD] [category=..] [description=..]")
	}
	fields, err := parseFields(args[1:], append([]string{"title"}, taskKeys...)...)
	if err != nil {
		return err
	}

	update := domain.TaskUpdate{
		Title:       stringPtr(fields, "title"),
		Description: stringPtr(fields, "description"),
		Category:    stringPtr(fields, "category"),
	}
	if update.Priority, err = parsePriorityField(fields); err != nil {
		return err
	}
	if due, ok := fields["due"]; ok && due == "" {
		update.ClearDueDate = true
	} else if update.DueDate, err = parseDateField(fields, "due"); err != nil {
		return err
	}

	id, err := resolveTaskID(ctx, c.app, args[0])
	if err != nil {
		return c.errorHandler.Handle("edit task", err)
	}
	task, err := c.app.api.UpdateTask(ctx, id, update)
	if err != nil {
		return c.errorHandler.Handle("edit task", err)
	}
	fmt.Fprintf(c.app.out, "Updated task %s: %s\n", shortID(task.ID), task.Title)
	return nil
}
