package service

import (
	"errors"
	"strings"

	"beryllium.app/bot/internal/validation"
)

// ErrorKind classifies why a moderation command failed.
type ErrorKind string

const (
	KindValidationFailed     ErrorKind = "validation_failed"
	KindDomainRuleViolation  ErrorKind = "domain_rule_violation"
	KindPersistenceFailed    ErrorKind = "persistence_failed"
	KindPlatformActionFailed ErrorKind = "platform_action_failed"
	KindDependencyNotFound   ErrorKind = "dependency_not_found"
)

// ModerationError is the single error type returned by the moderation service.
// Message is one line suitable for showing to the moderator; Err keeps the cause.
type ModerationError struct {
	Kind     ErrorKind
	Message  string
	Failures []validation.Failure
	Err      error
}

func (e *ModerationError) Error() string {
	return e.Message
}

func (e *ModerationError) Unwrap() error {
	return e.Err
}

// Is matches another ModerationError of the same kind.
func (e *ModerationError) Is(target error) bool {
	var t *ModerationError
	if !errors.As(target, &t) {
		return false
	}
	return t.Kind == e.Kind
}

var (
	ErrValidationFailed     = &ModerationError{Kind: KindValidationFailed, Message: "validation failed"}
	ErrDomainRuleViolation  = &ModerationError{Kind: KindDomainRuleViolation, Message: "domain rule violated"}
	ErrPersistenceFailed    = &ModerationError{Kind: KindPersistenceFailed, Message: "persistence failed"}
	ErrPlatformActionFailed = &ModerationError{Kind: KindPlatformActionFailed, Message: "platform action failed"}
	ErrDependencyNotFound   = &ModerationError{Kind: KindDependencyNotFound, Message: "dependency not found"}
)

func validationFailed(err error) *ModerationError {
	var verr *validation.Error
	if !errors.As(err, &verr) {
		return &ModerationError{Kind: KindValidationFailed, Message: err.Error(), Err: err}
	}
	return &ModerationError{
		Kind:     KindValidationFailed,
		Message:  strings.Join(verr.Messages(), " "),
		Failures: verr.Failures,
		Err:      err,
	}
}

func domainRuleViolation(err error) *ModerationError {
	return &ModerationError{Kind: KindDomainRuleViolation, Message: err.Error(), Err: err}
}

func persistenceFailed(err error) *ModerationError {
	return &ModerationError{
		Kind:    KindPersistenceFailed,
		Message: "The infraction could not be saved. Nothing was changed; please try again.",
		Err:     err,
	}
}

func dependencyNotFound(message string, err error) *ModerationError {
	return &ModerationError{Kind: KindDependencyNotFound, Message: message, Err: err}
}
