package cli

import (
	"context"
	"io"
	"strings"
	"time"

	"company-portal/internal/api"
	"company-portal/internal/config"
	"company-portal/internal/errors"
)

// timeNow is a variable that can be replaced in tests
var timeNow = time.Now

// App represents the main CLI application
type App struct {
	api      api.PortalAPI
	config   *config.Config
	out      io.Writer
	renderer *Renderer
	registry *CommandRegistry
}

// NewAppWithWriter creates a new CLI application writing to w
func NewAppWithWriter(portal api.PortalAPI, cfg *config.Config, w io.Writer) *App {
	if cfg == nil {
		cfg = config.NewConfig()
	}
	app := &App{
		api:      portal,
		config:   cfg,
		out:      w,
		renderer: NewRenderer(w, cfg.Display.NoColor),
	}
	app.registry = NewCommandRegistry(app)
	return app
}

// Run executes the command named by the leading words of args, e.g.
// "profile link add GitHub https://github.com/acme".
func (a *App) Run(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return errors.NewInvalidInputError("command", "", a.registry.GetUsage())
	}

	for words := min(3, len(args)); words > 0; words-- {
		name := strings.Join(args[:words], " ")
		if a.registry.Has(name) {
			return a.registry.Execute(ctx, name, args[words:])
		}
	}
	return errors.NewInvalidInputError("command", args[0], "unknown command")
}
