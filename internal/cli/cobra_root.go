package cli

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"company-portal/internal/api"
	"company-portal/internal/config"
)

// Factory builds the portal API once the configuration is final. The
// returned function releases whatever the API holds open.
type Factory func(cfg *config.Config) (api.PortalAPI, func() error, error)

// RootCommand represents the base command when called without any subcommands
type RootCommand struct {
	cmd     *cobra.Command
	loader  *config.Loader
	factory Factory
	out     io.Writer

	config *config.Config
	app    *App
	closer func() error
}

// NewRootCommand creates the root cobra command with global flags
func NewRootCommand(loader *config.Loader, factory Factory, out io.Writer) *RootCommand {
	root := &RootCommand{
		loader:  loader,
		factory: factory,
		out:     out,
	}

	root.cmd = &cobra.Command{
		Use:   "portal",
		Short: "Company portal: account, company profile and tasks",
		Long: `portal manages a company account from the terminal.

FEATURES:
  • Register, log in and keep the session between runs
  • Edit the company profile, social links, logo and banner
  • Track tasks with priorities, categories and due dates
  • See profile completion, task progress and upcoming deadlines

EXAMPLES:
  portal register name="Ada Lovelace" email=ada@example.com mobile="+44 20 7946 0000" gender=f password=secret1
  portal login ada@example.com secret1
  portal profile save company_name="Acme" address="1 Main St" city=Springfield state=Illinois \
      country="United States" postal_code=62701 industry=Technology
  portal profile link add GitHub https://github.com/acme
  portal profile upload logo ./logo.png
  portal task add "Quarterly filing" priority=high due=2026-06-30
  portal task list
  portal task done 1f3a9c2e
  portal dashboard

CONFIGURATION:
  Configuration follows this priority order:
  command-line flags > environment variables (.env included) > ~/.portal/config.toml > defaults

    PORTAL_DB_DIR                 Database directory (default: ~/.portal)
    PORTAL_DB_FILENAME            Database filename (default: portal.db)
    PORTAL_DB_QUERY_TIMEOUT       Query timeout (default: 10s)
    PORTAL_BOUNDARY_TIMEOUT       Backend call timeout (default: 10s)
    PORTAL_UPLOAD_DIR             Where uploaded images are stored
    PORTAL_UPLOAD_MAX_BYTES       Largest accepted image (default: 5 MiB)
    PORTAL_DEADLINE_WINDOW_DAYS   Upcoming deadline window (default: 7)
    PORTAL_NO_COLOR               Disable colour output
    PORTAL_LOG_LEVEL              debug, info, warn or error (default: warn)
    PORTAL_LOG_ENCODING           console or json (default: console)
    PORTAL_APP_TIMEOUT            Per-command timeout (default: 60s)
    PORTAL_DEBUG                  Force debug logging`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return root.setup()
		},
	}
	root.cmd.SetOut(out)

	root.addGlobalFlags()
	root.addSubcommands()

	return root
}

// Execute runs the root command with os.Args
func (r *RootCommand) Execute() error {
	return r.cmd.Execute()
}

// ExecuteArgs runs the root command with args
func (r *RootCommand) ExecuteArgs(args []string) error {
	r.cmd.SetArgs(args)
	return r.cmd.Execute()
}

// Close releases the API built during setup
func (r *RootCommand) Close() error {
	if r.closer == nil {
		return nil
	}
	closer := r.closer
	r.closer = nil
	return closer()
}

// addGlobalFlags adds global configuration flags
func (r *RootCommand) addGlobalFlags() {
	flags := r.cmd.PersistentFlags()

	// Database configuration
	flags.String("db-dir", "", "Database directory (overrides PORTAL_DB_DIR)")
	flags.String("db-filename", "", "Database filename (overrides PORTAL_DB_FILENAME)")
	flags.Duration("db-query-timeout", 0, "Database query timeout (overrides PORTAL_DB_QUERY_TIMEOUT)")

	// Boundary configuration
	flags.Duration("boundary-timeout", 0, "Backend call timeout (overrides PORTAL_BOUNDARY_TIMEOUT)")
	flags.String("upload-dir", "", "Upload directory (overrides PORTAL_UPLOAD_DIR)")

	// Metrics configuration
	flags.Int("deadline-window", 0, "Upcoming deadline window in days (overrides PORTAL_DEADLINE_WINDOW_DAYS)")

	// Display and logging
	flags.Bool("no-color", false, "Disable colour output (overrides PORTAL_NO_COLOR)")
	flags.String("log-level", "", "Log level (overrides PORTAL_LOG_LEVEL)")

	// Application configuration
	flags.Duration("app-timeout", 0, "Per-command timeout (overrides PORTAL_APP_TIMEOUT)")
	flags.Bool("verbose", false, "Enable verbose output (overrides PORTAL_APP_VERBOSE)")
}

// getOverridesFromFlags collects the flags that were set on the command line
func (r *RootCommand) getOverridesFromFlags() *config.ConfigOverrides {
	flags := r.cmd.PersistentFlags()
	overrides := &config.ConfigOverrides{}

	if flags.Changed("db-dir") {
		v, _ := flags.GetString("db-dir")
		overrides.DBDir = &v
	}
	if flags.Changed("db-filename") {
		v, _ := flags.GetString("db-filename")
		overrides.DBFilename = &v
	}
	if flags.Changed("db-query-timeout") {
		v, _ := flags.GetDuration("db-query-timeout")
		overrides.DBQueryTimeout = &v
	}
	if flags.Changed("boundary-timeout") {
		v, _ := flags.GetDuration("boundary-timeout")
		overrides.BoundaryTimeout = &v
	}
	if flags.Changed("upload-dir") {
		v, _ := flags.GetString("upload-dir")
		overrides.UploadDir = &v
	}
	if flags.Changed("deadline-window") {
		v, _ := flags.GetInt("deadline-window")
		overrides.DeadlineWindowDays = &v
	}
	if flags.Changed("no-color") {
		v, _ := flags.GetBool("no-color")
		overrides.NoColor = &v
	}
	if flags.Changed("log-level") {
		v, _ := flags.GetString("log-level")
		overrides.LogLevel = &v
	}
	if flags.Changed("app-timeout") {
		v, _ := flags.GetDuration("app-timeout")
		overrides.Timeout = &v
	}
	if flags.Changed("verbose") {
		v, _ := flags.GetBool("verbose")
		overrides.Verbose = &v
	}

	return overrides
}

// setup loads the final configuration and builds the application
func (r *RootCommand) setup() error {
	if r.loader == nil || r.factory == nil {
		return fmt.Errorf("root command not initialized")
	}

	cfg, err := r.loader.LoadWithOverrides(r.getOverridesFromFlags())
	if err != nil {
		return err
	}

	portal, closer, err := r.factory(cfg)
	if err != nil {
		return err
	}

	r.config = cfg
	r.closer = closer
	r.app = NewAppWithWriter(portal, cfg, r.out)
	return nil
}

// getAppTimeout returns the configured application timeout
func (r *RootCommand) getAppTimeout() time.Duration {
	if r.config != nil && r.config.Application.Timeout > 0 {
		return r.config.Application.Timeout
	}
	return 60 * time.Second
}

// leaf builds a subcommand dispatching to the registered handler name
func (r *RootCommand) leaf(use, name, short, long string, args cobra.PositionalArgs) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		Long:  long,
		Args:  args,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithTimeout(cmd.Context(), r.getAppTimeout())
			defer cancel()

			return r.app.registry.Execute(ctx, name, args)
		},
	}
}

// group builds a parent command that only holds subcommands
func group(use, short string, children ...*cobra.Command) *cobra.Command {
	cmd := &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}
	cmd.AddCommand(children...)
	return cmd
}

// addSubcommands adds all CLI subcommands to the root command
func (r *RootCommand) addSubcommands() {
	r.cmd.AddCommand(
		r.leaf("login <email> <password>", "login", "Log in and remember the session", "", cobra.ExactArgs(2)),
		r.leaf("register name=.. email=.. mobile=.. gender=m|f|o password=..", "register", "Create an account",
			"Create an account. The password needs at least 6 characters.", cobra.ArbitraryArgs),
		r.leaf("logout", "logout", "Forget the session and company profile", "", cobra.NoArgs),
		r.leaf("whoami", "whoami", "Show the logged in user", "", cobra.NoArgs),
		r.leaf("settings [name=..] [email=..] [mobile=..]", "settings", "Update account settings", "", cobra.MinimumNArgs(1)),
		r.leaf("password <current> <new> <confirm>", "password", "Change the password", "", cobra.ExactArgs(3)),

		group("profile", "Company profile",
			r.leaf("show", "profile show", "Show the profile and its completion", "", cobra.NoArgs),
			r.leaf("fetch", "profile fetch", "Print the stored profile as JSON", "", cobra.NoArgs),
			r.leaf("save key=value ...", "profile save", "Submit the whole profile form",
				`Submit the profile form. Fields that are not given are cleared.

Required: company_name, address, city, state, country, postal_code, industry
Optional: website, founded (YYYY-MM-DD), description`, cobra.ArbitraryArgs),
			r.leaf("set key=value ...", "profile set", "Change individual profile fields", "", cobra.MinimumNArgs(1)),
			group("link", "Social links",
				r.leaf("add <platform> <url>", "profile link add", "Add a social link", "", cobra.ExactArgs(2)),
				r.leaf("rm <number>", "profile link rm", "Remove a social link", "", cobra.ExactArgs(1)),
			),
			r.leaf("upload <logo|banner> <file>", "profile upload", "Upload a logo or banner image",
				"Upload an image file of at most 5 MiB.", cobra.ExactArgs(2)),
		),

		group("task", "Tasks",
			r.leaf("add <title> [priority=..] [due=YYYY-MM-DD] [category=..] [description=..]", "task add",
				"Add a task", "", cobra.MinimumNArgs(1)),
			r.leaf("list", "task list", "List pending tasks by priority and due date, then completed ones",
				"", cobra.NoArgs),
			r.leaf("done <id>", "task done", "Toggle completion of a task", "", cobra.ExactArgs(1)),
			r.leaf("rm <id>", "task rm", "Delete a task", "", cobra.ExactArgs(1)),
			r.leaf("edit <id> key=value ...", "task edit", "Change fields of a task",
				`Change fields of a task: title, priority, due, category, description.
Use due= to clear the due date.`, cobra.MinimumNArgs(2)),
			r.leaf("export format=csv|json", "task export", "Export tasks", "", cobra.ExactArgs(1)),
		),

		r.leaf("dashboard", "dashboard", "Show profile completion, task progress and deadlines", "", cobra.NoArgs),
	)
}
