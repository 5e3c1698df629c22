/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package keys

import (
	"math"
	"testing"

	"github.com/go-openapi/strfmt"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	kerrors "github.com/suparena/keyregistry/errors"
)

func TestParseValueType(t *testing.T) {
	for _, vt := range ValueTypes() {
		parsed, err := ParseValueType(vt.String())
		require.NoError(t, err)
		assert.Equal(t, vt, parsed)
	}

	parsed, err := ParseValueType("uuid")
	require.NoError(t, err)
	assert.Equal(t, UUID, parsed)

	_, err = ParseValueType("Decimal")
	assert.ErrorIs(t, err, kerrors.ErrInvalidKeyType)
}

func TestValueTypeValid(t *testing.T) {
	assert.False(t, Invalid.Valid())
	assert.False(t, ValueType(42).Valid())
	assert.Equal(t, "ValueType(42)", ValueType(42).String())
	for _, vt := range ValueTypes() {
		assert.True(t, vt.Valid(), vt.String())
	}
}

func TestCoerce(t *testing.T) {
	id := uuid.New()

	tests := []struct {
		name string
		vt   ValueType
		in   any
		want any
	}{
		{"int literal to Int32", Int32, 7, int32(7)},
		{"int64 to Int8", Int8, int64(-5), int8(-5)},
		{"uint16 to Int64", Int64, uint16(9), int64(9)},
		{"nil to zero", Int16, nil, int16(0)},
		{"bool", Bool, true, true},
		{"float64 to Float32", Float32, 1.5, float32(1.5)},
		{"float32 to Float64", Float64, float32(2.5), float64(2.5)},
		{"rune", Char, 'x', 'x'},
		{"single character string", Char, "é", 'é'},
		{"string", String, "France", "France"},
		{"uuid", UUID, id, id},
		{"uuid string", UUID, id.String(), id},
		{"strfmt uuid", UUID, strfmt.UUID(id.String()), id},
		{"byte array", UUID, [16]byte(id), id},
		{"empty string to nil uuid", UUID, "", uuid.Nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.vt.Coerce(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCoerceRejects(t *testing.T) {
	tests := []struct {
		name string
		vt   ValueType
		in   any
	}{
		{"out of range Int8", Int8, 128},
		{"uint64 overflow", Int64, uint64(math.MaxUint64)},
		{"string to Int32", Int32, "12"},
		{"int to Bool", Bool, 1},
		{"huge float to Float32", Float32, math.MaxFloat64},
		{"long string to Char", Char, "ab"},
		{"NaN Float64", Float64, math.NaN()},
		{"NaN Float32", Float32, float32(math.NaN())},
		{"int to String", String, 3},
		{"bad uuid string", UUID, "not-a-uuid"},
		{"bad strfmt uuid", UUID, strfmt.UUID("nope")},
		{"invalid type", Invalid, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.vt.Coerce(tt.in)
			assert.ErrorIs(t, err, kerrors.ErrInvalidKeyType)
		})
	}
}

func TestZeroValues(t *testing.T) {
	for _, vt := range ValueTypes() {
		assert.True(t, vt.IsZero(vt.Zero()), vt.String())
		assert.True(t, vt.IsZero(nil), vt.String())
	}
	assert.False(t, Int32.IsZero(int32(1)))
	assert.False(t, String.IsZero("a"))
	assert.False(t, UUID.IsZero(uuid.New()))
	assert.False(t, Bool.IsZero(true))
}

func TestIntegerRange(t *testing.T) {
	assert.Equal(t, int64(127), Int8.MaxInt())
	assert.Equal(t, int64(math.MaxInt32), Int32.MaxInt())
	assert.Equal(t, int64(math.MinInt16), Int16.MinInt())
	assert.False(t, Float64.IsInteger())

	v, err := Int16.FromInt64(300)
	require.NoError(t, err)
	assert.Equal(t, int16(300), v)

	_, err = Int8.FromInt64(300)
	assert.ErrorIs(t, err, kerrors.ErrInvalidKeyType)

	_, err = String.FromInt64(1)
	assert.ErrorIs(t, err, kerrors.ErrInvalidKeyType)
}

func TestParse(t *testing.T) {
	id := uuid.New()
	tests := []struct {
		vt   ValueType
		in   string
		want any
	}{
		{Int8, "-5", int8(-5)},
		{Int32, "44", int32(44)},
		{Int64, "9000000000", int64(9000000000)},
		{Bool, "true", true},
		{Float32, "1.5", float32(1.5)},
		{Float64, "2.25", 2.25},
		{Char, "é", 'é'},
		{String, "France", "France"},
		{UUID, id.String(), id},
	}
	for _, tt := range tests {
		t.Run(tt.vt.String(), func(t *testing.T) {
			got, err := tt.vt.Parse(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	for _, bad := range []struct {
		vt ValueType
		in string
	}{
		{Int8, "300"},
		{Int32, "x"},
		{Bool, "maybe"},
		{Float64, "NaN"},
		{Char, "ab"},
		{UUID, "not-a-uuid"},
	} {
		_, err := bad.vt.Parse(bad.in)
		assert.ErrorIs(t, err, kerrors.ErrInvalidKeyType, "%s %q", bad.vt, bad.in)
	}
}
