package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"mime"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"company-portal/internal/boundary"
	"company-portal/internal/domain"
	"company-portal/internal/errors"
	"company-portal/internal/metrics"
)

// profileKeys are the form fields accepted by profile save and profile set
var profileKeys = []string{
	"company_name", "address", "city", "state", "country", "postal_code",
	"website", "industry", "founded", "description",
}

// profileUpdate converts form fields into a partial profile
func profileUpdate(fields map[string]string) (domain.CompanyProfileUpdate, error) {
	founded, err := parseDateField(fields, "founded")
	if err != nil {
		return domain.CompanyProfileUpdate{}, err
	}
	return domain.CompanyProfileUpdate{
		CompanyName: stringPtr(fields, "company_name"),
		Address:     stringPtr(fields, "address"),
		City:        stringPtr(fields, "city"),
		State:       stringPtr(fields, "state"),
		Country:     stringPtr(fields, "country"),
		PostalCode:  stringPtr(fields, "postal_code"),
		Website:     stringPtr(fields, "website"),
		Industry:    stringPtr(fields, "industry"),
		FoundedDate: founded,
		Description: stringPtr(fields, "description"),
	}, nil
}

// ProfileShowCommand prints the company profile and its completion
type ProfileShowCommand struct {
	app          *App
	errorHandler *ErrorHandler
}

// NewProfileShowCommand creates a new profile show command handler
func NewProfileShowCommand(app *App) *ProfileShowCommand {
	return &ProfileShowCommand{app: app, errorHandler: NewErrorHandler()}
}

// Execute runs the profile show command
func (c *ProfileShowCommand) Execute(ctx context.Context, args []string) error {
	profile, err := c.app.api.GetCompanyProfile(ctx)
	if err != nil {
		return c.errorHandler.Handle("load company profile", err)
	}
	if profile == nil {
		fmt.Fprintln(c.app.out, "No company profile yet. Create one with: portal profile save company_name=...")
		return nil
	}
	printProfile(c.app, profile)
	return nil
}

func printProfile(app *App, p *domain.CompanyProfile) {
	r := app.renderer
	out := app.out

	fmt.Fprintln(out, r.Heading(orPlaceholder(p.CompanyName)))
	rows := []struct{ label, value string }{
		{"Industry", p.Industry},
		{"Address", p.Address},
		{"City", p.City},
		{"State", p.State},
		{"Country", p.Country},
		{"Postal code", p.PostalCode},
		{"Website", p.Website},
		{"Founded", domain.FormatDate(p.FoundedDate)},
		{"Description", p.Description},
		{"Logo", p.LogoURL},
		{"Banner", p.BannerURL},
	}
	for _, row := range rows {
		fmt.Fprintf(out, "  %-12s %s\n", row.label+":", orPlaceholder(row.value))
	}

	if len(p.SocialLinks) > 0 {
		fmt.Fprintln(out, "  Social links:")
		for i, link := range p.SocialLinks {
			fmt.Fprintf(out, "    %d. %s %s\n", i+1, link.Platform, r.Muted(link.URL))
		}
	}

	fmt.Fprintf(out, "Profile completion: %d%%\n", metrics.ProfileCompletion(p))
	if missing := metrics.MissingRequiredFields(p); len(missing) > 0 {
		fmt.Fprintf(out, "Missing required fields: %s\n", strings.Join(missing, ", "))
	}
}

func orPlaceholder(s string) string {
	if strings.TrimSpace(s) == "" {
		return "-"
	}
	return s
}

// ProfileFetchCommand prints the stored profile as JSON
type ProfileFetchCommand struct {
	app          *App
	errorHandler *ErrorHandler
}

// NewProfileFetchCommand creates a new profile fetch command handler
func NewProfileFetchCommand(app *App) *ProfileFetchCommand {
	return &ProfileFetchCommand{app: app, errorHandler: NewErrorHandler()}
}

// Execute runs the profile fetch command
func (c *ProfileFetchCommand) Execute(ctx context.Context, args []string) error {
	profile, err := c.app.api.GetCompanyProfile(ctx)
	if err != nil {
		return c.errorHandler.Handle("fetch company profile", err)
	}

	encoder := json.NewEncoder(c.app.out)
	encoder.SetIndent("", "  ")
	return encoder.Encode(profile)
}

// ProfileSaveCommand submits the whole profile form. Fields that are not
// given are cleared; images and social links are kept.
type ProfileSaveCommand struct {
	app          *App
	errorHandler *ErrorHandler
}

// NewProfileSaveCommand creates a new profile save command handler
func NewProfileSaveCommand(app *App) *ProfileSaveCommand {
	return &ProfileSaveCommand{app: app, errorHandler: NewErrorHandler()}
}

// Execute runs the profile save command
func (c *ProfileSaveCommand) Execute(ctx context.Context, args []string) error {
	fields, err := parseFields(args, profileKeys...)
	if err != nil {
		return err
	}
	update, err := profileUpdate(fields)
	if err != nil {
		return err
	}

	current, err := c.app.api.GetCompanyProfile(ctx)
	if err != nil {
		return c.errorHandler.Handle("save company profile", err)
	}
	form := domain.CompanyProfile{}
	if current != nil {
		form.LogoURL = current.LogoURL
		form.BannerURL = current.BannerURL
		form.SocialLinks = current.SocialLinks
	}

	saved, err := c.app.api.SaveCompanyProfile(ctx, update.Apply(form))
	if err != nil {
		return c.errorHandler.Handle("save company profile", err)
	}
	fmt.Fprintln(c.app.out, c.app.renderer.Success("Company profile saved"))
	printProfile(c.app, saved)
	return nil
}

// ProfileSetCommand changes individual profile fields
type ProfileSetCommand struct {
	app          *App
	errorHandler *ErrorHandler
}

// NewProfileSetCommand creates a new profile set command handler
func NewProfileSetCommand(app *App) *ProfileSetCommand {
	return &ProfileSetCommand{app: app, errorHandler: NewErrorHandler()}
}

// Execute runs the profile set command
func (c *ProfileSetCommand) Execute(ctx context.Context, args []string) error {
	fields, err := parseFields(args, profileKeys...)
	if err != nil {
		return err
	}
	if len(fields) == 0 {
		return errors.NewInvalidInputError("command", "profile set", "usage: portal profile set key=value ...")
	}
	update, err := profileUpdate(fields)
	if err != nil {
		return err
	}

	saved, err := c.app.api.UpdateCompanyProfile(ctx, update)
	if err != nil {
		return c.errorHandler.Handle("update company profile", err)
	}
	fmt.Fprintf(c.app.out, "Company profile updated (%d%% complete)\n", metrics.ProfileCompletion(saved))
	return nil
}

// LinkAddCommand appends a social link
type LinkAddCommand struct {
	app          *App
	errorHandler *ErrorHandler
}

// NewLinkAddCommand creates a new link add command handler
func NewLinkAddCommand(app *App) *LinkAddCommand {
	return &LinkAddCommand{app: app, errorHandler: NewErrorHandler()}
}

// Execute runs the link add command
func (c *LinkAddCommand) Execute(ctx context.Context, args []string) error {
	if len(args) != 2 {
		return errors.NewInvalidInputError("command", "profile link add", "usage: portal profile link add <platform> <url>")
	}

	profile, err := c.app.api.AddSocialLink(ctx, domain.SocialLink{Platform: args[0], URL: args[1]})
	if err != nil {
		return c.errorHandler.Handle("add social link", err)
	}
	fmt.Fprintf(c.app.out, "Added %s link (%d total)\n", args[0], len(profile.SocialLinks))
	return nil
}

// LinkRemoveCommand removes a social link by its 1-based number
type LinkRemoveCommand struct {
	app          *App
	errorHandler *ErrorHandler
}

// NewLinkRemoveCommand creates a new link rm command handler
func NewLinkRemoveCommand(app *App) *LinkRemoveCommand {
	return &LinkRemoveCommand{app: app, errorHandler: NewErrorHandler()}
}

// Execute runs the link rm command
func (c *LinkRemoveCommand) Execute(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return errors.NewInvalidInputError("command", "profile link rm", "usage: portal profile link rm <number>")
	}
	number, err := strconv.Atoi(args[0])
	if err != nil {
		return errors.NewInvalidInputError("number", args[0], "expected the link number shown by profile show")
	}

	profile, err := c.app.api.RemoveSocialLink(ctx, number-1)
	if err != nil {
		return c.errorHandler.Handle("remove social link", err)
	}
	fmt.Fprintf(c.app.out, "Removed link %d (%d left)\n", number, len(profile.SocialLinks))
	return nil
}

// UploadCommand uploads a logo or banner image
type UploadCommand struct {
	app          *App
	errorHandler *ErrorHandler
}

// NewUploadCommand creates a new upload command handler
func NewUploadCommand(app *App) *UploadCommand {
	return &UploadCommand{app: app, errorHandler: NewErrorHandler()}
}

// Execute runs the upload command
func (c *UploadCommand) Execute(ctx context.Context, args []string) error {
	if len(args) != 2 {
		return errors.NewInvalidInputError("command", "profile upload", "usage: portal profile upload <logo|banner> <file>")
	}
	kind, ok := domain.ParseImageKind(args[0])
	if !ok {
		return errors.NewInvalidInputError("kind", args[0], "must be logo or banner")
	}

	img, err := readImage(args[1])
	if err != nil {
		return err
	}

	location, err := c.app.api.UploadImage(ctx, kind, img)
	if err != nil {
		return c.errorHandler.Handle("upload "+string(kind), err)
	}
	fmt.Fprintf(c.app.out, "Uploaded %s: %s\n", kind, location)
	return nil
}

// readImage loads a file and sniffs its content type
func readImage(path string) (boundary.Image, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return boundary.Image{}, errors.NewInvalidInputError("file", path, err.Error())
	}

	contentType := http.DetectContentType(data)
	if contentType == "application/octet-stream" || strings.HasPrefix(contentType, "text/") {
		if byExt := mime.TypeByExtension(filepath.Ext(path)); byExt != "" {
			contentType = byExt
		}
	}
	if mediaType, _, err := mime.ParseMediaType(contentType); err == nil {
		contentType = mediaType
	}

	return boundary.Image{
		Filename:    filepath.Base(path),
		ContentType: contentType,
		Data:        data,
	}, nil
}
