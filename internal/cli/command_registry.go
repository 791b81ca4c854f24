package cli

import (
	"context"
	"sort"
	"strings"

	"company-portal/internal/errors"
)

// Command represents a CLI command
type Command interface {
	Execute(ctx context.Context, args []string) error
}

// CommandRegistry manages all available commands
type CommandRegistry struct {
	commands map[string]Command
}

// NewCommandRegistry creates a new command registry
func NewCommandRegistry(app *App) *CommandRegistry {
	registry := &CommandRegistry{
		commands: make(map[string]Command),
	}

	// Session and account
	registry.Register("login", NewLoginCommand(app))
	registry.Register("register", NewRegisterCommand(app))
	registry.Register("logout", NewLogoutCommand(app))
	registry.Register("whoami", NewWhoAmICommand(app))
	registry.Register("settings", NewSettingsCommand(app))
	registry.Register("password", NewPasswordCommand(app))

	// Company profile
	registry.Register("profile show", NewProfileShowCommand(app))
	registry.Register("profile fetch", NewProfileFetchCommand(app))
	registry.Register("profile save", NewProfileSaveCommand(app))
	registry.Register("profile set", NewProfileSetCommand(app))
	registry.Register("profile link add", NewLinkAddCommand(app))
	registry.Register("profile link rm", NewLinkRemoveCommand(app))
	registry.Register("profile upload", NewUploadCommand(app))

	// Tasks
	registry.Register("task add", NewTaskAddCommand(app))
	registry.Register("task list", NewTaskListCommand(app))
	registry.Register("task done", NewTaskDoneCommand(app))
	registry.Register("task rm", NewTaskRemoveCommand(app))
	registry.Register("task edit", NewTaskEditCommand(app))
	registry.Register("task export", NewExportCommand(app))

	registry.Register("dashboard", NewDashboardCommand(app))

	return registry
}

// Register adds a command to the registry
func (r *CommandRegistry) Register(name string, command Command) {
	r.commands[name] = command
}

// Has reports whether name is registered
func (r *CommandRegistry) Has(name string) bool {
	_, ok := r.commands[name]
	return ok
}

// Execute runs the specified command with the given arguments
func (r *CommandRegistry) Execute(ctx context.Context, commandName string, args []string) error {
	command, exists := r.commands[commandName]
	if !exists {
		return errors.NewInvalidInputError("command", commandName, "unknown command")
	}
	return command.Execute(ctx, args)
}

// GetUsage returns the usage string for the CLI
func (r *CommandRegistry) GetUsage() string {
	names := make([]string, 0, len(r.commands))
	for name := range r.commands {
		names = append(names, "portal "+name)
	}
	sort.Strings(names)
	return "usage: " + strings.Join(names, " | ")
}
