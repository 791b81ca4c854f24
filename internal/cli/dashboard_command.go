package cli

import (
	"context"
	"fmt"
	"strings"
)

// DashboardCommand prints the overview page
type DashboardCommand struct {
	app          *App
	errorHandler *ErrorHandler
}

// NewDashboardCommand creates a new dashboard command handler
func NewDashboardCommand(app *App) *DashboardCommand {
	return &DashboardCommand{app: app, errorHandler: NewErrorHandler()}
}

// Execute runs the dashboard command
func (c *DashboardCommand) Execute(ctx context.Context, args []string) error {
	dashboard, err := c.app.api.GetDashboard(ctx)
	if err != nil {
		return c.errorHandler.Handle("load dashboard", err)
	}

	out := c.app.out
	r := c.app.renderer
	stats := dashboard.Stats

	if dashboard.User != nil {
		fmt.Fprintln(out, r.Heading("Welcome, "+dashboard.User.DisplayName()))
	}
	if dashboard.Profile != nil && dashboard.Profile.CompanyName != "" {
		fmt.Fprintf(out, "Company: %s\n", dashboard.Profile.CompanyName)
	}

	fmt.Fprintf(out, "Profile completion: %d%%\n", stats.ProfileCompletionPercent)
	if len(dashboard.Missing) > 0 {
		fmt.Fprintf(out, "  %s\n", r.Muted("missing: "+strings.Join(dashboard.Missing, ", ")))
	}
	fmt.Fprintf(out, "Tasks: %d total, %d pending, %d completed (%d%% complete)\n",
		stats.TasksTotal, stats.TasksPending, stats.TasksCompleted, stats.CompletionRate)
	fmt.Fprintf(out, "Upcoming deadlines: %d\n", stats.UpcomingDeadlines)

	if stats.TasksTotal > 0 {
		fmt.Fprintln(out)
		printTaskView(out, r, dashboard.Tasks)
	}
	return nil
}
