/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package errors

import (
	"errors"
	"fmt"
	"strings"
)

// Error classes
var (
	// ErrNotFound is matched by errors about entities that are not in the registry
	ErrNotFound = errors.New("entity not found")

	// ErrAlreadyExists is matched by errors about values or entities that are already indexed
	ErrAlreadyExists = errors.New("entity already exists")

	// ErrInvalidInput is returned when input validation fails
	ErrInvalidInput = errors.New("invalid input")

	// ErrDefinition is matched by every error describing a malformed entity type
	ErrDefinition = errors.New("invalid key definition")

	// ErrInvalidValue is matched by every error describing a bad key value on one instance
	ErrInvalidValue = errors.New("invalid key value")

	// ErrGeneration is matched by every auto key generation failure
	ErrGeneration = errors.New("key generation failed")
)

// classified is a sentinel that also matches one or more error classes.
type classified struct {
	msg     string
	classes []error
}

func newClassified(msg string, classes ...error) error {
	return &classified{msg: msg, classes: classes}
}

func (e *classified) Error() string {
	return e.msg
}

func (e *classified) Is(target error) bool {
	for _, c := range e.classes {
		if target == c {
			return true
		}
	}
	return false
}

// Definition errors
var (
	ErrMissingPrimaryKey        = newClassified("no primary key declared", ErrDefinition)
	ErrMultiplePrimaryKeys      = newClassified("more than one primary key declared", ErrDefinition)
	ErrDuplicateKeyName         = newClassified("duplicate key name", ErrDefinition)
	ErrPrimaryAlternateConflict = newClassified("key declared both primary and alternate", ErrDefinition)
	ErrInvalidKeyType           = newClassified("invalid key type", ErrDefinition)
	ErrStringAutoNotSupported   = newClassified("auto generation is not supported for string keys", ErrDefinition)
)

// Value errors
var (
	ErrMissingMandatoryValue = newClassified("mandatory key has no value", ErrInvalidValue)
	ErrAutoValueConflict     = newClassified("auto key already has a value", ErrInvalidValue)
	ErrDuplicateKeyValue     = newClassified("duplicate key value", ErrInvalidValue, ErrAlreadyExists)
)

// Generation errors
var (
	ErrUnsupportedAutoKeyType = newClassified("auto generation is not supported for key type", ErrGeneration)
	ErrKeyGenerationExhausted = newClassified("auto key values exhausted", ErrGeneration)
)

var (
	// ErrUnknownKeyName is returned when a name is not a declared key of the entity type
	ErrUnknownKeyName = errors.New("unknown key name")

	// ErrUnresolvableKeyField is returned when a key field can no longer be read from an entity.
	// It signals a broken Keyable implementation rather than a recoverable condition.
	ErrUnresolvableKeyField = errors.New("key field cannot be resolved")

	// ErrKeyFieldNotResolvable is the name the index layer uses for ErrUnresolvableKeyField
	ErrKeyFieldNotResolvable = ErrUnresolvableKeyField
)

// Registry state errors
var (
	ErrNotRegistered     = newClassified("entity is not registered", ErrNotFound)
	ErrAlreadyRegistered = newClassified("entity is already registered", ErrAlreadyExists)
	ErrInvalidEntity     = newClassified("entity must be a non-nil pointer", ErrInvalidInput)
	ErrTableConflict     = newClassified("entity type already declared with a different key table", ErrDefinition)
	ErrShutdown          = errors.New("registry is shut down")
)

// KeyError attaches index coordinates to a registry error
type KeyError struct {
	EntityType string
	Key        string
	Value      any
	HasValue   bool
	Err        error
}

// NewKeyError creates a KeyError without a value
func NewKeyError(entityType, key string, err error) error {
	return &KeyError{EntityType: entityType, Key: key, Err: err}
}

// NewKeyValueError creates a KeyError that reports the offending value
func NewKeyValueError(entityType, key string, value any, err error) error {
	return &KeyError{EntityType: entityType, Key: key, Value: value, HasValue: true, Err: err}
}

func (e *KeyError) Error() string {
	var buf strings.Builder
	buf.WriteString(e.EntityType)
	if e.Key != "" {
		buf.WriteByte('.')
		buf.WriteString(e.Key)
	}
	if e.HasValue {
		fmt.Fprintf(&buf, "=%v", e.Value)
	}
	if e.Err != nil {
		buf.WriteString(": ")
		buf.WriteString(e.Err.Error())
	}
	return buf.String()
}

func (e *KeyError) Unwrap() error {
	return e.Err
}

// RegistrationError reports the stage at which a registration was rejected
type RegistrationError struct {
	EntityType string
	Stage      string
	Err        error
}

// NewRegistrationError creates a RegistrationError
func NewRegistrationError(entityType, stage string, err error) error {
	return &RegistrationError{EntityType: entityType, Stage: stage, Err: err}
}

func (e *RegistrationError) Error() string {
	return fmt.Sprintf("register %s (%s): %v", e.EntityType, e.Stage, e.Err)
}

func (e *RegistrationError) Unwrap() error {
	return e.Err
}

// ValidationError represents an input validation error
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("validation failed for field %q: %s", e.Field, e.Message)
	}
	return fmt.Sprintf("validation failed: %s", e.Message)
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidInput
}

// NewValidationError creates a new ValidationError
func NewValidationError(field, message string) error {
	return &ValidationError{Field: field, Message: message}
}

// IsNotFound checks if an error is a not found error
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsAlreadyExists checks if an error is an already exists error
func IsAlreadyExists(err error) bool {
	return errors.Is(err, ErrAlreadyExists)
}

// IsValidationError checks if an error is a validation error
func IsValidationError(err error) bool {
	return errors.Is(err, ErrInvalidInput)
}

// IsDefinitionError checks if an error describes a malformed entity type
func IsDefinitionError(err error) bool {
	return errors.Is(err, ErrDefinition)
}

// IsValueError checks if an error describes a bad key value
func IsValueError(err error) bool {
	return errors.Is(err, ErrInvalidValue)
}

// IsGenerationError checks if an error is an auto key generation failure
func IsGenerationError(err error) bool {
	return errors.Is(err, ErrGeneration)
}

// IsUnknownKeyName checks if an error reports an undeclared key name
func IsUnknownKeyName(err error) bool {
	return errors.Is(err, ErrUnknownKeyName)
}
