package validation

import (
	"company-portal/internal/config"
	"company-portal/internal/domain"
)

var genders = map[string]bool{"m": true, "f": true, "o": true}

// AccountValidator validates login, registration and settings input
type AccountValidator struct {
	validator *Validator
}

// NewAccountValidator creates a new account validator
func NewAccountValidator() *AccountValidator {
	return &AccountValidator{validator: NewValidator()}
}

// NewAccountValidatorWithConfig creates an account validator honouring configured limits
func NewAccountValidatorWithConfig(cfg *config.Config) *AccountValidator {
	return &AccountValidator{validator: NewValidatorWithConfig(cfg)}
}

func (av *AccountValidator) checkEmail(ve *ValidationError, email string) {
	switch {
	case !av.validator.IsNonEmptyString(email):
		ve.AddRequiredError("email")
	case !av.validator.IsValidEmail(email):
		ve.AddInvalidFormatError("email", email, "name@example.com")
	}
}

func (av *AccountValidator) checkPassword(ve *ValidationError, field, password string) {
	minLen := av.validator.getPasswordMinLength()
	switch {
	case password == "":
		ve.AddRequiredError(field)
	case len([]rune(password)) < minLen:
		ve.AddInvalidLengthError(field, nil, minLen, 0)
	}
}

func (av *AccountValidator) checkMobile(ve *ValidationError, mobile string) {
	switch {
	case !av.validator.IsNonEmptyString(mobile):
		ve.AddRequiredError("mobile_no")
	case !av.validator.IsValidMobile(mobile):
		ve.AddInvalidFormatError("mobile_no", mobile, "digits, spaces, dashes, parentheses and an optional leading +")
	}
}

// ValidateCredentials validates login input
func (av *AccountValidator) ValidateCredentials(email, password string) error {
	validationError := NewValidationError()
	av.checkEmail(validationError, email)
	av.checkPassword(validationError, "password", password)
	return validationError.OrNil()
}

// ValidateRegistration validates the sign-up form
func (av *AccountValidator) ValidateRegistration(user domain.User, password string) error {
	validationError := NewValidationError()

	if !av.validator.IsNonEmptyString(user.FullName) {
		validationError.AddRequiredError("full_name")
	}
	av.checkEmail(validationError, user.Email)
	av.checkMobile(validationError, user.MobileNo)
	if !genders[user.Gender] {
		validationError.AddInvalidValueError("gender", user.Gender, "must be m, f or o")
	}
	av.checkPassword(validationError, "password", password)

	return validationError.OrNil()
}

// ValidateUserUpdate validates the settings form; unset fields are skipped
func (av *AccountValidator) ValidateUserUpdate(update domain.UserUpdate) error {
	validationError := NewValidationError()

	if update.FullName != nil && !av.validator.IsNonEmptyString(*update.FullName) {
		validationError.AddRequiredError("full_name")
	}
	if update.Email != nil {
		av.checkEmail(validationError, *update.Email)
	}
	if update.MobileNo != nil {
		av.checkMobile(validationError, *update.MobileNo)
	}

	return validationError.OrNil()
}

// ValidatePasswordChange requires the current password and a confirmed new one
func (av *AccountValidator) ValidatePasswordChange(current, next, confirm string) error {
	validationError := NewValidationError()

	if current == "" {
		validationError.AddRequiredError("current_password")
	}
	av.checkPassword(validationError, "new_password", next)
	if next != confirm {
		validationError.AddMismatchError("confirm_password", "new_password")
	}

	return validationError.OrNil()
}
