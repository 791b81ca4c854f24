package validation

import (
	"company-portal/internal/config"
	"company-portal/internal/domain"
)

// ProfileValidator validates company profile edits, social links and image uploads
type ProfileValidator struct {
	validator *Validator
}

// NewProfileValidator creates a new profile validator
func NewProfileValidator() *ProfileValidator {
	return &ProfileValidator{validator: NewValidator()}
}

// NewProfileValidatorWithConfig creates a profile validator honouring configured limits
func NewProfileValidatorWithConfig(cfg *config.Config) *ProfileValidator {
	return &ProfileValidator{validator: NewValidatorWithConfig(cfg)}
}

// ValidateSocialLink requires a platform and a parsable absolute URL
func (pv *ProfileValidator) ValidateSocialLink(link domain.SocialLink) error {
	validationError := NewValidationError()

	if !pv.validator.IsNonEmptyString(link.Platform) {
		validationError.AddRequiredError("platform")
	}

	switch {
	case !pv.validator.IsNonEmptyString(link.URL):
		validationError.AddRequiredError("url")
	case !pv.validator.IsParsableURL(link.URL):
		validationError.AddInvalidFormatError("url", link.URL, "absolute URL such as https://example.com/company")
	}

	return validationError.OrNil()
}

// ValidateForSave checks the fields the profile form requires before saving
func (pv *ProfileValidator) ValidateForSave(profile domain.CompanyProfile) error {
	validationError := NewValidationError()
	v := pv.validator

	required := []struct {
		field string
		value string
	}{
		{"company_name", profile.CompanyName},
		{"address", profile.Address},
		{"city", profile.City},
		{"state", profile.State},
		{"country", profile.Country},
		{"postal_code", profile.PostalCode},
		{"industry", profile.Industry},
	}
	missing := make(map[string]bool)
	for _, r := range required {
		if !v.IsNonEmptyString(r.value) {
			validationError.AddRequiredError(r.field)
			missing[r.field] = true
		}
	}

	if !missing["company_name"] && !v.IsValidStringLength(profile.CompanyName, 2, 0) {
		validationError.AddInvalidLengthError("company_name", profile.CompanyName, 2, 0)
	}
	if !missing["address"] && !v.IsValidStringLength(profile.Address, 5, 0) {
		validationError.AddInvalidLengthError("address", profile.Address, 5, 0)
	}
	for _, field := range []struct {
		name  string
		value string
	}{
		{"city", profile.City},
		{"state", profile.State},
		{"country", profile.Country},
	} {
		if !missing[field.name] && !v.IsLettersOnly(field.value) {
			validationError.AddInvalidFormatError(field.name, field.value, "letters and spaces only")
		}
	}
	if !missing["postal_code"] && !v.IsValidPostalCode(profile.PostalCode) {
		validationError.AddInvalidFormatError("postal_code", profile.PostalCode, "letters, digits, spaces and dashes")
	}
	if v.IsNonEmptyString(profile.Website) && !v.IsValidWebsite(profile.Website) {
		validationError.AddInvalidFormatError("website", profile.Website, "http(s) URL such as https://example.com")
	}
	for _, link := range profile.SocialLinks {
		validationError.Merge(pv.ValidateSocialLink(link))
	}

	return validationError.OrNil()
}

// ValidateImage checks an upload is an image no larger than the configured limit
func (pv *ProfileValidator) ValidateImage(contentType string, size int64) error {
	validationError := NewValidationError()

	if !pv.validator.IsImageContentType(contentType) {
		validationError.AddInvalidValueError("file", contentType, "please select an image file")
	}
	if limit := pv.validator.getMaxUploadBytes(); size > limit {
		validationError.AddTooLargeError("file", size, limit)
	}

	return validationError.OrNil()
}
