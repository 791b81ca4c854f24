package cli

import (
	"context"
	"fmt"

	"company-portal/internal/boundary"
	"company-portal/internal/domain"
	"company-portal/internal/errors"
)

// LoginCommand handles the login command
type LoginCommand struct {
	app          *App
	errorHandler *ErrorHandler
}

// NewLoginCommand creates a new login command handler
func NewLoginCommand(app *App) *LoginCommand {
	return &LoginCommand{app: app, errorHandler: NewErrorHandler()}
}

// Execute runs the login command
func (c *LoginCommand) Execute(ctx context.Context, args []string) error {
	if len(args) != 2 {
		return errors.NewInvalidInputError("command", "login", "usage: portal login <email> <password>")
	}

	session, err := c.app.api.Login(ctx, args[0], args[1])
	if err != nil {
		return c.errorHandler.Handle("log in", err)
	}
	fmt.Fprintf(c.app.out, "Logged in as %s\n", session.User.DisplayName())
	return nil
}

// RegisterCommand handles the register command
type RegisterCommand struct {
	app          *App
	errorHandler *ErrorHandler
}

// NewRegisterCommand creates a new register command handler
func NewRegisterCommand(app *App) *RegisterCommand {
	return &RegisterCommand{app: app, errorHandler: NewErrorHandler()}
}

// Execute runs the register command
func (c *RegisterCommand) Execute(ctx context.Context, args []string) error {
	fields, err := parseFields(args, "name", "email", "mobile", "gender", "password")
	if err != nil {
		return err
	}

	session, err := c.app.api.Register(ctx, boundary.RegisterRequest{
		FullName: fields["name"],
		Email:    fields["email"],
		MobileNo: fields["mobile"],
		Gender:   fields["gender"],
		Password: fields["password"],
	})
	if err != nil {
		return c.errorHandler.Handle("register", err)
	}
	fmt.Fprintf(c.app.out, "Registered and logged in as %s\n", session.User.DisplayName())
	return nil
}

// LogoutCommand handles the logout command
type LogoutCommand struct {
	app          *App
	errorHandler *ErrorHandler
}

// NewLogoutCommand creates a new logout command handler
func NewLogoutCommand(app *App) *LogoutCommand {
	return &LogoutCommand{app: app, errorHandler: NewErrorHandler()}
}

// Execute runs the logout command
func (c *LogoutCommand) Execute(ctx context.Context, args []string) error {
	if err := c.app.api.Logout(ctx); err != nil {
		return c.errorHandler.Handle("log out", err)
	}
	fmt.Fprintln(c.app.out, "Logged out")
	return nil
}

// WhoAmICommand prints the current user
type WhoAmICommand struct {
	app          *App
	errorHandler *ErrorHandler
}

// NewWhoAmICommand creates a new whoami command handler
func NewWhoAmICommand(app *App) *WhoAmICommand {
	return &WhoAmICommand{app: app, errorHandler: NewErrorHandler()}
}

// Execute runs the whoami command
func (c *WhoAmICommand) Execute(ctx context.Context, args []string) error {
	session, err := c.app.api.CurrentSession(ctx)
	if err != nil {
		return c.errorHandler.Handle("load session", err)
	}
	if !session.IsAuthenticated() {
		fmt.Fprintln(c.app.out, "Not logged in")
		return nil
	}

	user := session.User
	fmt.Fprintf(c.app.out, "%s <%s>\n", user.DisplayName(), user.Email)
	if user.MobileNo != "" {
		fmt.Fprintf(c.app.out, "Mobile: %s\n", user.MobileNo)
	}
	return nil
}

// SettingsCommand edits the account fields
type SettingsCommand struct {
	app          *App
	errorHandler *ErrorHandler
}

// NewSettingsCommand creates a new settings command handler
func NewSettingsCommand(app *App) *SettingsCommand {
	return &SettingsCommand{app: app, errorHandler: NewErrorHandler()}
}

// Execute runs the settings command
func (c *SettingsCommand) Execute(ctx context.Context, args []string) error {
	fields, err := parseFields(args, "name", "email", "mobile")
	if err != nil {
		return err
	}
	if len(fields) == 0 {
		return errors.NewInvalidInputError("command", "settings", "usage: portal settings [name=..] [email=..] [mobile=..]")
	}

	user, err := c.app.api.UpdateSettings(ctx, domain.UserUpdate{
		FullName: stringPtr(fields, "name"),
		Email:    stringPtr(fields, "email"),
		MobileNo: stringPtr(fields, "mobile"),
	})
	if err != nil {
		return c.errorHandler.Handle("update settings", err)
	}
	fmt.Fprintf(c.app.out, "Settings saved for %s <%s>\n", user.DisplayName(), user.Email)
	return nil
}

// PasswordCommand changes the account password
type PasswordCommand struct {
	app          *App
	errorHandler *ErrorHandler
}

// NewPasswordCommand creates a new password command handler
func NewPasswordCommand(app *App) *PasswordCommand {
	return &PasswordCommand{app: app, errorHandler: NewErrorHandler()}
}

// Execute runs the password command
func (c *PasswordCommand) Execute(ctx context.Context, args []string) error {
	if len(args) != 3 {
		return errors.NewInvalidInputError("command", "password", "usage: portal password <current> <new> <confirm>")
	}

	if err := c.app.api.ChangePassword(ctx, args[0], args[1], args[2]); err != nil {
		return c.errorHandler.Handle("change password", err)
	}
	fmt.Fprintln(c.app.out, "Password changed")
	return nil
}
