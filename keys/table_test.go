/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package keys

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	kerrors "github.com/suparena/keyregistry/errors"
)

func TestNewTable(t *testing.T) {
	tbl, err := NewTable("Country",
		Alternate("iso", String, FlagUnique),
		Primary("name", String),
		Alternate("code", Int32, FlagAuto),
	)
	require.NoError(t, err)

	assert.Equal(t, "Country", tbl.EntityType())
	assert.Equal(t, 3, tbl.Len())

	primary, ok := tbl.Primary()
	require.True(t, ok)
	assert.Equal(t, "name", primary.Name)
	assert.True(t, primary.IsMandatory())
	assert.True(t, primary.IsUnique())

	order := tbl.CommitOrder()
	require.Len(t, order, 3)
	assert.Equal(t, []string{"name", "iso", "code"}, []string{order[0].Name, order[1].Name, order[2].Name})

	d, ok := tbl.Descriptor("code")
	require.True(t, ok)
	assert.True(t, d.IsAuto())
	assert.False(t, d.IsMandatory())
	assert.False(t, d.IsUnique())

	_, ok = tbl.Descriptor("missing")
	assert.False(t, ok)
}

func TestTableValidation(t *testing.T) {
	tests := []struct {
		name  string
		descs []KeyDescriptor
		want  error
	}{
		{
			name:  "no primary",
			descs: []KeyDescriptor{Alternate("a", Int32)},
			want:  kerrors.ErrMissingPrimaryKey,
		},
		{
			name:  "two primaries",
			descs: []KeyDescriptor{Primary("a", Int32), Primary("b", Int64)},
			want:  kerrors.ErrMultiplePrimaryKeys,
		},
		{
			name:  "duplicate name",
			descs: []KeyDescriptor{Primary("a", Int32), Alternate("a", String)},
			want:  kerrors.ErrDuplicateKeyName,
		},
		{
			name:  "primary and alternate",
			descs: []KeyDescriptor{{Name: "a", Type: Int32, Flags: FlagPrimary | FlagAlternate}},
			want:  kerrors.ErrPrimaryAlternateConflict,
		},
		{
			name:  "invalid type",
			descs: []KeyDescriptor{Primary("a", Invalid)},
			want:  kerrors.ErrInvalidKeyType,
		},
		{
			name:  "auto string",
			descs: []KeyDescriptor{Primary("a", String, FlagAuto)},
			want:  kerrors.ErrStringAutoNotSupported,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewTable("Broken", tt.descs...)
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.want)
			assert.True(t, kerrors.IsDefinitionError(err))

			assert.Panics(t, func() { MustTable("Broken", tt.descs...) })
		})
	}
}

func TestDefineTableDefersValidation(t *testing.T) {
	tbl := DefineTable("Lazy", Alternate("a", Int32))
	require.NotNil(t, tbl)
	assert.ErrorIs(t, tbl.Validate(), kerrors.ErrMissingPrimaryKey)
	// memoized
	assert.ErrorIs(t, tbl.Validate(), kerrors.ErrMissingPrimaryKey)

	var nilTable *Table
	assert.True(t, kerrors.IsValidationError(nilTable.Validate()))

	_, err := NewTable("", Primary("a", Int32))
	assert.True(t, kerrors.IsValidationError(err))
}

func TestTableEqual(t *testing.T) {
	a := MustTable("T", Primary("id", Int64, FlagAuto))
	b := MustTable("T", Primary("id", Int64, FlagAuto))
	c := MustTable("T", Primary("id", Int32, FlagAuto))

	assert.True(t, a.Equal(b))
	assert.False(t, a.Equal(c))
	assert.False(t, a.Equal(nil))
}

func TestNewIndexKey(t *testing.T) {
	k, err := NewIndexKey("Country", Primary("code", Int16), 44)
	require.NoError(t, err)
	assert.Equal(t, int16(44), k.Value)
	assert.Equal(t, "Country/Int16/code=44", k.String())

	_, err = NewIndexKey("Country", Primary("code", Int16), "44")
	assert.ErrorIs(t, err, kerrors.ErrInvalidKeyType)
}

func TestFlagsString(t *testing.T) {
	assert.Equal(t, "none", FlagNone.String())
	assert.Equal(t, "primary|mandatory|unique", Primary("id", Int32).Flags.String())
	assert.Equal(t, "id:Int32[primary|mandatory|unique|auto]", Primary("id", Int32, FlagAuto).String())
}
