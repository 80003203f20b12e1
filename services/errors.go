package services

import "errors"

// ErrAuthRejected covers every authentication failure: unknown user,
// inactive user, or bad password. Callers get no finer detail.
var ErrAuthRejected = errors.New("invalid credentials or inactive user")

// ConfigurationError means configuration or credentials are missing or
// unreadable. Fatal at startup; nothing runs partially configured.
type ConfigurationError struct {
	Msg string
}

func (e *ConfigurationError) Error() string { return e.Msg }

// ValidationError rejects user-correctable input (missing photo, blank
// signature, bad username). Raised before any write.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string { return e.Msg }

// StateError rejects an operation on a submission already in a terminal
// state. The record is untouched; the caller should refresh its view.
type StateError struct {
	Msg string
}

func (e *StateError) Error() string { return e.Msg }

// NotFoundError reports an operation against a nonexistent record.
type NotFoundError struct {
	Entity string
	Key    string
}

func (e *NotFoundError) Error() string { return e.Entity + " " + e.Key + " not found" }

// IntegrityError means a row expected to exist vanished between read and
// write. Unrecoverable for the current operation; it propagates uncaught.
type IntegrityError struct {
	Msg string
}

func (e *IntegrityError) Error() string { return e.Msg }
