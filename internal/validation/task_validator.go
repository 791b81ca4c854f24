package validation

import (
	"company-portal/internal/config"
	"company-portal/internal/domain"
)

// TaskValidator provides validation for Task-related operations
type TaskValidator struct {
	validator *Validator
}

// NewTaskValidator creates a new task validator
func NewTaskValidator() *TaskValidator {
	return &TaskValidator{
		validator: NewValidator(),
	}
}

// NewTaskValidatorWithConfig creates a task validator honouring configured limits
func NewTaskValidatorWithConfig(cfg *config.Config) *TaskValidator {
	return &TaskValidator{
		validator: NewValidatorWithConfig(cfg),
	}
}

// ValidateTitle validates a task title for creation or update
func (tv *TaskValidator) ValidateTitle(title string) error {
	validationError := NewValidationError()

	trimmed := tv.validator.TrimAndValidateString(title)
	if !tv.validator.IsNonEmptyString(trimmed) {
		validationError.AddRequiredError("title")
		return validationError
	}

	maxLen := tv.validator.getTitleMaxLength()
	if !tv.validator.IsValidStringLength(trimmed, 1, maxLen) {
		validationError.AddInvalidLengthError("title", trimmed, 1, maxLen)
	}

	return validationError.OrNil()
}

// ValidateTaskID validates a caller-assigned task identifier
func (tv *TaskValidator) ValidateTaskID(id string) error {
	if !tv.validator.IsNonEmptyString(id) {
		validationError := NewValidationError()
		validationError.AddRequiredError("id")
		return validationError
	}
	return nil
}

// ValidateTask validates a domain.Task before it enters the store
func (tv *TaskValidator) ValidateTask(task domain.Task) error {
	validationError := NewValidationError()

	validationError.Merge(tv.ValidateTaskID(task.ID))
	validationError.Merge(tv.ValidateTitle(task.Title))

	if !task.Priority.IsValid() {
		validationError.AddInvalidValueError("priority", task.Priority, "must be low, medium or high")
	}
	if !tv.validator.IsNonEmptyString(task.Category) {
		validationError.AddRequiredError("category")
	}

	return validationError.OrNil()
}

// ValidateTaskUpdate validates the fields set on a partial task edit
func (tv *TaskValidator) ValidateTaskUpdate(update domain.TaskUpdate) error {
	validationError := NewValidationError()

	if update.Title != nil {
		validationError.Merge(tv.ValidateTitle(*update.Title))
	}
	if update.Priority != nil && !update.Priority.IsValid() {
		validationError.AddInvalidValueError("priority", *update.Priority, "must be low, medium or high")
	}
	if update.Category != nil && !tv.validator.IsNonEmptyString(*update.Category) {
		validationError.AddRequiredError("category")
	}

	return validationError.OrNil()
}
