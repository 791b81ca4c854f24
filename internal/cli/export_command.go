package cli

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"company-portal/internal/domain"
	"company-portal/internal/errors"
	"company-portal/internal/ordering"
)

// ExportCommand handles the task export command
type ExportCommand struct {
	app          *App
	errorHandler *ErrorHandler
}

// NewExportCommand creates a new export command handler
func NewExportCommand(app *App) *ExportCommand {
	return &ExportCommand{app: app, errorHandler: NewErrorHandler()}
}

// Execute runs the export command
func (c *ExportCommand) Execute(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return errors.NewInvalidInputError("command", "task export", "usage: portal task export format=csv|json")
	}

	// Parse format option
	format := args[0]
	if !strings.HasPrefix(format, "format=") {
		return errors.NewInvalidInputError("format", format, "invalid format option")
	}
	format = strings.TrimPrefix(format, "format=")
	if format != "csv" && format != "json" {
		return errors.NewInvalidInputError("format", format, "unsupported format")
	}

	tasks, err := c.app.api.ListTasks(ctx)
	if err != nil {
		return c.errorHandler.Handle("export tasks", err)
	}

	today := domain.DateOf(timeNow())
	if format == "json" {
		return c.outputJSON(tasks)
	}
	return c.outputCSV(tasks, today)
}

func (c *ExportCommand) outputJSON(tasks []domain.Task) error {
	encoder := json.NewEncoder(c.app.out)
	encoder.SetIndent("", "  ")
	return encoder.Encode(tasks)
}

// outputCSV writes tasks in storage order with their computed label
func (c *ExportCommand) outputCSV(tasks []domain.Task, today time.Time) error {
	writer := csv.NewWriter(c.app.out)

	header := []string{"ID", "Title", "Priority", "Due Date", "Completed", "Category", "Status", "Description"}
	if err := writer.Write(header); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}

	for _, task := range tasks {
		row := []string{
			task.ID,
			task.Title,
			string(task.Priority),
			domain.FormatDate(task.DueDate),
			strconv.FormatBool(task.Completed),
			task.Category,
			string(ordering.Classify(task, today)),
			task.Description,
		}
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("failed to write CSV row: %w", err)
		}
	}

	writer.Flush()
	return writer.Error()
}
