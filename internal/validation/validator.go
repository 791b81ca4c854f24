package validation

import (
	"net/url"
	"regexp"
	"strings"

	"company-portal/internal/config"
)

var (
	emailPattern   = regexp.MustCompile(`^\S+@\S+$`)
	mobilePattern  = regexp.MustCompile(`^\+?[\d\s\-()]+$`)
	lettersPattern = regexp.MustCompile(`^[A-Za-z\s]+$`)
	postalPattern  = regexp.MustCompile(`^[A-Za-z0-9\s\-]+$`)
	websitePattern = regexp.MustCompile(`^https?://.+\..+`)
)

// Validator provides common validation utilities
type Validator struct {
	config *config.Config
}

// NewValidator creates a validator that uses the default limits.
func NewValidator() *Validator {
	return &Validator{}
}

// NewValidatorWithConfig creates a new validator instance with configuration
func NewValidatorWithConfig(cfg *config.Config) *Validator {
	return &Validator{
		config: cfg,
	}
}

// IsNonEmptyString checks if a string is not empty after trimming whitespace
func (v *Validator) IsNonEmptyString(s string) bool {
	return strings.TrimSpace(s) != ""
}

// IsValidStringLength checks if a trimmed string length is within [min, max].
// A max of 0 means unbounded.
func (v *Validator) IsValidStringLength(s string, min, max int) bool {
	length := len([]rune(strings.TrimSpace(s)))
	return length >= min && (max == 0 || length <= max)
}

// IsParsableURL accepts absolute URLs: a scheme plus a host or opaque part.
func (v *Validator) IsParsableURL(s string) bool {
	u, err := url.Parse(strings.TrimSpace(s))
	if err != nil {
		return false
	}
	return u.Scheme != "" && (u.Host != "" || u.Opaque != "")
}

// IsValidWebsite requires an http(s) URL with a dotted host.
func (v *Validator) IsValidWebsite(s string) bool {
	return websitePattern.MatchString(strings.TrimSpace(s))
}

// IsValidEmail checks for something@something without whitespace
func (v *Validator) IsValidEmail(s string) bool {
	return emailPattern.MatchString(strings.TrimSpace(s))
}

// IsValidMobile allows digits, spaces, dashes, parentheses and a leading plus
func (v *Validator) IsValidMobile(s string) bool {
	return mobilePattern.MatchString(strings.TrimSpace(s))
}

// IsLettersOnly allows ASCII letters and whitespace
func (v *Validator) IsLettersOnly(s string) bool {
	return lettersPattern.MatchString(strings.TrimSpace(s))
}

// IsValidPostalCode allows letters, digits, spaces and dashes
func (v *Validator) IsValidPostalCode(s string) bool {
	return postalPattern.MatchString(strings.TrimSpace(s))
}

// IsImageContentType checks for an image/* MIME type
func (v *Validator) IsImageContentType(contentType string) bool {
	return strings.HasPrefix(strings.ToLower(strings.TrimSpace(contentType)), "image/")
}

// TrimAndValidateString trims whitespace and returns the cleaned string
func (v *Validator) TrimAndValidateString(s string) string {
	return strings.TrimSpace(s)
}

// getTitleMaxLength returns configured maximum task title length or default
func (v *Validator) getTitleMaxLength() int {
	if v.config != nil {
		return v.config.Validation.TitleMaxLength
	}
	return 255
}

// getPasswordMinLength returns configured minimum password length or default
func (v *Validator) getPasswordMinLength() int {
	if v.config != nil {
		return v.config.Validation.PasswordMinLength
	}
	return 6
}

// getMaxUploadBytes returns configured maximum upload size or default
func (v *Validator) getMaxUploadBytes() int64 {
	if v.config != nil {
		return v.config.Boundary.MaxUploadBytes
	}
	return 5 * 1024 * 1024
}
