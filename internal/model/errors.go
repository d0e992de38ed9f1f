package model

import "errors"

// DomainError is returned when an infraction operation would break one of
// the entity's rules. Errors match each other by Code.
type DomainError struct {
	Code    string
	Message string
}

func (e *DomainError) Error() string {
	return e.Message
}

func (e *DomainError) Is(target error) bool {
	var t *DomainError
	if !errors.As(target, &t) {
		return false
	}
	return t.Code == e.Code
}

var (
	ErrInvalidDuration = &DomainError{
		Code:    "invalid_duration",
		Message: "Duration must be greater than zero.",
	}
	ErrAlreadyPardoned = &DomainError{
		Code:    "already_pardoned",
		Message: "This infraction has already been pardoned.",
	}
	ErrTypeNotPardonable = &DomainError{
		Code:    "type_not_pardonable",
		Message: "This infraction type cannot be pardoned.",
	}
	ErrTypeHasNoExpiration = &DomainError{
		Code:    "type_has_no_expiration",
		Message: "This infraction type does not support expirations.",
	}
	ErrExpirationMustAdvance = &DomainError{
		Code:    "expiration_must_advance",
		Message: "New expiration must be later than the current one. Clear it to remove the expiration.",
	}
)

func domainErrorf(base *DomainError, message string) *DomainError {
	return &DomainError{Code: base.Code, Message: message}
}
