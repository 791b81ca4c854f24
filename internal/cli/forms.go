package cli

import (
	"context"
	"strings"
	"time"

	"company-portal/internal/domain"
	"company-portal/internal/errors"
)

// shortIDLength is how much of a task id is printed
const shortIDLength = 8

// splitFields separates key=value arguments whose key is in allowed from
// the remaining positional words.
func splitFields(args []string, allowed ...string) (map[string]string, []string) {
	known := make(map[string]bool, len(allowed))
	for _, key := range allowed {
		known[key] = true
	}

	fields := make(map[string]string)
	var rest []string
	for _, arg := range args {
		key, value, ok := strings.Cut(arg, "=")
		key = strings.ToLower(strings.TrimSpace(key))
		if ok && known[key] {
			fields[key] = strings.TrimSpace(value)
			continue
		}
		rest = append(rest, arg)
	}
	return fields, rest
}

// parseFields requires every argument to be a known key=value pair
func parseFields(args []string, allowed ...string) (map[string]string, error) {
	fields, rest := splitFields(args, allowed...)
	if len(rest) > 0 {
		return nil, errors.NewInvalidInputError("field", rest[0],
			"expected key=value with key one of "+strings.Join(allowed, ", "))
	}
	return fields, nil
}

// stringPtr returns a pointer to fields[key] when the key was given
func stringPtr(fields map[string]string, key string) *string {
	value, ok := fields[key]
	if !ok {
		return nil
	}
	return &value
}

// parseDateField parses an optional YYYY-MM-DD value
func parseDateField(fields map[string]string, key string) (*time.Time, error) {
	value, ok := fields[key]
	if !ok || value == "" {
		return nil, nil
	}
	date, err := domain.ParseDate(value)
	if err != nil {
		return nil, errors.NewInvalidInputError(key, value, "expected a date such as 2006-01-02")
	}
	return &date, nil
}

// parsePriorityField parses an optional priority
func parsePriorityField(fields map[string]string) (*domain.Priority, error) {
	value, ok := fields["priority"]
	if !ok {
		return nil, nil
	}
	priority, valid := domain.ParsePriority(value)
	if !valid {
		return nil, errors.NewInvalidInputError("priority", value, "must be low, medium or high")
	}
	return &priority, nil
}

func shortID(id string) string {
	if len(id) <= shortIDLength {
		return id
	}
	return id[:shortIDLength]
}

// resolveTaskID accepts a full id or a unique prefix of one
func resolveTaskID(ctx context.Context, app *App, ref string) (string, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return "", errors.NewInvalidInputError("id", ref, "task id is required")
	}

	tasks, err := app.api.ListTasks(ctx)
	if err != nil {
		return "", err
	}

	var matches []string
	for _, task := range tasks {
		if task.ID == ref {
			return ref, nil
		}
		if strings.HasPrefix(task.ID, ref) {
			matches = append(matches, task.ID)
		}
	}

	switch len(matches) {
	case 0:
		return "", errors.NewNotFoundError("task", ref)
	case 1:
		return matches[0], nil
	default:
		return "", errors.NewInvalidInputError("id", ref, "matches more than one task")
	}
}
