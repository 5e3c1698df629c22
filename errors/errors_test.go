/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package errors

import (
	"errors"
	"fmt"
	"testing"
)

func TestKeyError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected string
	}{
		{
			name:     "with value",
			err:      NewKeyValueError("Country", "name", "France", ErrDuplicateKeyValue),
			expected: "Country.name=France: duplicate key value",
		},
		{
			name:     "without value",
			err:      NewKeyError("Country", "code", ErrMissingMandatoryValue),
			expected: "Country.code: mandatory key has no value",
		},
		{
			name:     "without key",
			err:      NewKeyError("Country", "", ErrMissingPrimaryKey),
			expected: "Country: no primary key declared",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.err.Error() != tt.expected {
				t.Errorf("Expected error message %q, got %q", tt.expected, tt.err.Error())
			}
		})
	}
}

func TestErrorClasses(t *testing.T) {
	tests := []struct {
		err   error
		class error
		check func(error) bool
	}{
		{ErrMissingPrimaryKey, ErrDefinition, IsDefinitionError},
		{ErrMultiplePrimaryKeys, ErrDefinition, IsDefinitionError},
		{ErrDuplicateKeyName, ErrDefinition, IsDefinitionError},
		{ErrPrimaryAlternateConflict, ErrDefinition, IsDefinitionError},
		{ErrInvalidKeyType, ErrDefinition, IsDefinitionError},
		{ErrStringAutoNotSupported, ErrDefinition, IsDefinitionError},
		{ErrMissingMandatoryValue, ErrInvalidValue, IsValueError},
		{ErrAutoValueConflict, ErrInvalidValue, IsValueError},
		{ErrDuplicateKeyValue, ErrInvalidValue, IsValueError},
		{ErrDuplicateKeyValue, ErrAlreadyExists, IsAlreadyExists},
		{ErrUnsupportedAutoKeyType, ErrGeneration, IsGenerationError},
		{ErrKeyGenerationExhausted, ErrGeneration, IsGenerationError},
		{ErrNotRegistered, ErrNotFound, IsNotFound},
		{ErrAlreadyRegistered, ErrAlreadyExists, IsAlreadyExists},
	}

	for _, tt := range tests {
		t.Run(tt.err.Error(), func(t *testing.T) {
			wrapped := fmt.Errorf("outer: %w", NewKeyError("T", "k", tt.err))
			if !errors.Is(wrapped, tt.err) {
				t.Errorf("wrapped error should match %v", tt.err)
			}
			if !errors.Is(wrapped, tt.class) {
				t.Errorf("%v should match class %v", tt.err, tt.class)
			}
			if !tt.check(wrapped) {
				t.Errorf("helper should return true for %v", tt.err)
			}
		})
	}
}

func TestErrorClassesAreDisjoint(t *testing.T) {
	if IsValueError(ErrMissingPrimaryKey) {
		t.Error("definition error should not be a value error")
	}
	if IsDefinitionError(ErrDuplicateKeyValue) {
		t.Error("value error should not be a definition error")
	}
	if IsUnknownKeyName(ErrNotRegistered) {
		t.Error("not registered should not match unknown key name")
	}
	if !errors.Is(ErrKeyFieldNotResolvable, ErrUnresolvableKeyField) {
		t.Error("index and registrar names should refer to the same error")
	}
}

func TestRegistrationError(t *testing.T) {
	err := NewRegistrationError("Device", "committing",
		NewKeyValueError("Device", "serial", "A1", ErrDuplicateKeyValue))

	expected := "register Device (committing): Device.serial=A1: duplicate key value"
	if err.Error() != expected {
		t.Errorf("Expected error message %q, got %q", expected, err.Error())
	}

	var regErr *RegistrationError
	if !errors.As(err, &regErr) || regErr.Stage != "committing" {
		t.Fatalf("expected RegistrationError with stage, got %#v", err)
	}
	var keyErr *KeyError
	if !errors.As(err, &keyErr) || keyErr.Key != "serial" {
		t.Fatalf("expected nested KeyError, got %#v", err)
	}
	if !IsAlreadyExists(err) {
		t.Error("duplicate value should surface as already exists")
	}
}

func TestValidationError(t *testing.T) {
	tests := []struct {
		name     string
		field    string
		message  string
		expected string
	}{
		{
			name:     "with field",
			field:    "types[0].keys[1].type",
			message:  "unknown value type",
			expected: `validation failed for field "types[0].keys[1].type": unknown value type`,
		},
		{
			name:     "without field",
			field:    "",
			message:  "missing required fields",
			expected: "validation failed: missing required fields",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := NewValidationError(tt.field, tt.message)

			if err.Error() != tt.expected {
				t.Errorf("Expected error message %q, got %q", tt.expected, err.Error())
			}
			if !IsValidationError(err) {
				t.Error("IsValidationError should return true for ValidationError")
			}
		})
	}
}
