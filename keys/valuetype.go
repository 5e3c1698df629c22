/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package keys

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/go-openapi/strfmt"
	"github.com/google/uuid"

	kerrors "github.com/suparena/keyregistry/errors"
)

// ValueType is the declared type of a key value.
type ValueType uint8

const (
	Invalid ValueType = iota
	Int32
	Int64
	Int16
	Int8
	Bool
	Float32
	Float64
	Char
	String
	UUID
)

var valueTypeNames = [...]string{
	Invalid: "Invalid",
	Int32:   "Int32",
	Int64:   "Int64",
	Int16:   "Int16",
	Int8:    "Int8",
	Bool:    "Bool",
	Float32: "Float32",
	Float64: "Float64",
	Char:    "Char",
	String:  "String",
	UUID:    "UUID",
}

// ValueTypes lists every authorized value type.
func ValueTypes() []ValueType {
	return []ValueType{Int32, Int64, Int16, Int8, Bool, Float32, Float64, Char, String, UUID}
}

func (vt ValueType) String() string {
	if int(vt) < len(valueTypeNames) {
		return valueTypeNames[vt]
	}
	return fmt.Sprintf("ValueType(%d)", uint8(vt))
}

// ParseValueType parses a value type name, ignoring case.
func ParseValueType(s string) (ValueType, error) {
	for _, vt := range ValueTypes() {
		if strings.EqualFold(s, vt.String()) {
			return vt, nil
		}
	}
	return Invalid, fmt.Errorf("%w: %q", kerrors.ErrInvalidKeyType, s)
}

// Valid reports whether vt is in the authorized set.
func (vt ValueType) Valid() bool {
	return vt > Invalid && vt <= UUID
}

// IsInteger reports whether vt belongs to the integer family.
func (vt ValueType) IsInteger() bool {
	switch vt {
	case Int8, Int16, Int32, Int64:
		return true
	}
	return false
}

// MinInt and MaxInt return the representable range of an integer type.
func (vt ValueType) MinInt() int64 {
	switch vt {
	case Int8:
		return math.MinInt8
	case Int16:
		return math.MinInt16
	case Int32:
		return math.MinInt32
	case Int64:
		return math.MinInt64
	}
	return 0
}

func (vt ValueType) MaxInt() int64 {
	switch vt {
	case Int8:
		return math.MaxInt8
	case Int16:
		return math.MaxInt16
	case Int32:
		return math.MaxInt32
	case Int64:
		return math.MaxInt64
	}
	return 0
}

// Zero returns the canonical default value of vt.
func (vt ValueType) Zero() any {
	switch vt {
	case Int32:
		return int32(0)
	case Int64:
		return int64(0)
	case Int16:
		return int16(0)
	case Int8:
		return int8(0)
	case Bool:
		return false
	case Float32:
		return float32(0)
	case Float64:
		return float64(0)
	case Char:
		return rune(0)
	case String:
		return ""
	case UUID:
		return uuid.Nil
	}
	return nil
}

// IsZero reports whether a canonical value equals the default of vt.
func (vt ValueType) IsZero(v any) bool {
	return v == nil || v == vt.Zero()
}

// FromInt64 converts n to the canonical representation of an integer type.
func (vt ValueType) FromInt64(n int64) (any, error) {
	if !vt.IsInteger() {
		return nil, fmt.Errorf("%w: %s is not an integer type", kerrors.ErrInvalidKeyType, vt)
	}
	if n < vt.MinInt() || n > vt.MaxInt() {
		return nil, fmt.Errorf("%w: %d out of range for %s", kerrors.ErrInvalidKeyType, n, vt)
	}
	switch vt {
	case Int8:
		return int8(n), nil
	case Int16:
		return int16(n), nil
	case Int32:
		return int32(n), nil
	}
	return n, nil
}

// Coerce converts v to the canonical Go representation of vt.
// A nil value coerces to the zero value.
func (vt ValueType) Coerce(v any) (any, error) {
	if !vt.Valid() {
		return nil, fmt.Errorf("%w: %s", kerrors.ErrInvalidKeyType, vt)
	}
	if v == nil {
		return vt.Zero(), nil
	}
	switch vt {
	case Int8, Int16, Int32, Int64:
		if n, ok := toInt64(v); ok {
			return vt.FromInt64(n)
		}
	case Bool:
		if b, ok := v.(bool); ok {
			return b, nil
		}
	case Float32:
		switch x := v.(type) {
		case float32:
			return checkNaN(vt, x, math.IsNaN(float64(x)))
		case float64:
			if math.IsInf(x, 0) || math.Abs(x) <= math.MaxFloat32 {
				return checkNaN(vt, float32(x), math.IsNaN(x))
			}
			return nil, fmt.Errorf("%w: %g out of range for %s", kerrors.ErrInvalidKeyType, x, vt)
		}
	case Float64:
		switch x := v.(type) {
		case float64:
			return checkNaN(vt, x, math.IsNaN(x))
		case float32:
			return checkNaN(vt, float64(x), math.IsNaN(float64(x)))
		}
	case Char:
		switch x := v.(type) {
		case rune:
			return x, nil
		case byte:
			return rune(x), nil
		case string:
			if utf8.RuneCountInString(x) == 1 {
				r, _ := utf8.DecodeRuneInString(x)
				return r, nil
			}
			return nil, fmt.Errorf("%w: %q is not a single character", kerrors.ErrInvalidKeyType, x)
		}
	case String:
		if s, ok := v.(string); ok {
			return s, nil
		}
	case UUID:
		return coerceUUID(v)
	}
	return nil, fmt.Errorf("%w: %T is not a %s value", kerrors.ErrInvalidKeyType, v, vt)
}

// NaN never compares equal to itself, so it cannot address an index entry.
func checkNaN(vt ValueType, v any, isNaN bool) (any, error) {
	if isNaN {
		return nil, fmt.Errorf("%w: NaN is not a valid %s key value", kerrors.ErrInvalidKeyType, vt)
	}
	return v, nil
}

func coerceUUID(v any) (any, error) {
	switch x := v.(type) {
	case uuid.UUID:
		return x, nil
	case [16]byte:
		return uuid.UUID(x), nil
	case strfmt.UUID:
		if x == "" {
			return uuid.Nil, nil
		}
		if !strfmt.IsUUID(string(x)) {
			return nil, fmt.Errorf("%w: %q is not a UUID", kerrors.ErrInvalidKeyType, string(x))
		}
		return uuid.Parse(string(x))
	case string:
		if x == "" {
			return uuid.Nil, nil
		}
		u, err := uuid.Parse(x)
		if err != nil {
			return nil, fmt.Errorf("%w: %q is not a UUID: %v", kerrors.ErrInvalidKeyType, x, err)
		}
		return u, nil
	}
	return nil, fmt.Errorf("%w: %T is not a UUID value", kerrors.ErrInvalidKeyType, v)
}

// Parse converts the text form of a value, as typed on a command line, to
// the canonical representation of vt.
func (vt ValueType) Parse(s string) (any, error) {
	switch vt {
	case Int8, Int16, Int32, Int64:
		n, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: %q is not an integer", kerrors.ErrInvalidKeyType, s)
		}
		return vt.FromInt64(n)
	case Bool:
		b, err := strconv.ParseBool(s)
		if err != nil {
			return nil, fmt.Errorf("%w: %q is not a boolean", kerrors.ErrInvalidKeyType, s)
		}
		return b, nil
	case Float32, Float64:
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: %q is not a number", kerrors.ErrInvalidKeyType, s)
		}
		return vt.Coerce(f)
	}
	return vt.Coerce(s)
}

func toInt64(v any) (int64, bool) {
	switch x := v.(type) {
	case int:
		return int64(x), true
	case int8:
		return int64(x), true
	case int16:
		return int64(x), true
	case int32:
		return int64(x), true
	case int64:
		return x, true
	case uint:
		if uint64(x) > math.MaxInt64 {
			return 0, false
		}
		return int64(x), true
	case uint8:
		return int64(x), true
	case uint16:
		return int64(x), true
	case uint32:
		return int64(x), true
	case uint64:
		if x > math.MaxInt64 {
			return 0, false
		}
		return int64(x), true
	}
	return 0, false
}
