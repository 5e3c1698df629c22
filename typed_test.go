/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package keyregistry

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	kerrors "github.com/suparena/keyregistry/errors"
	"github.com/suparena/keyregistry/internal/testmodels"
	"github.com/suparena/keyregistry/keys"
)

func TestTypedView(t *testing.T) {
	t.Run("BasicOperations", func(t *testing.T) {
		r := New()
		countries, err := View[*testmodels.Country](r)
		require.NoError(t, err)
		assert.Equal(t, "Country", countries.EntityType())
		assert.Same(t, testmodels.CountryKeys, countries.Table())

		france := &testmodels.Country{Name: "France"}
		require.NoError(t, countries.Register(france))
		require.NoError(t, countries.Register(&testmodels.Country{Name: "Germany"}))

		got, ok, err := countries.First("name", "France")
		require.NoError(t, err)
		require.True(t, ok)
		assert.Same(t, france, got)
		assert.Equal(t, int32(1), got.Code)

		_, ok, err = countries.First("name", "Spain")
		require.NoError(t, err)
		assert.False(t, ok)

		list, err := countries.List("code", 2)
		require.NoError(t, err)
		require.Len(t, list, 1)
		assert.Equal(t, "Germany", list[0].Name)

		assert.Equal(t, 2, countries.Count())
		require.NoError(t, countries.Unregister(france))
		assert.Equal(t, 1, countries.Count())
	})

	t.Run("Cached", func(t *testing.T) {
		r := New()
		first, err := View[*testmodels.Ticket](r)
		require.NoError(t, err)
		second, err := View[*testmodels.Ticket](r)
		require.NoError(t, err)
		assert.Same(t, first, second)

		other, err := View[*testmodels.Ticket](New())
		require.NoError(t, err)
		assert.NotSame(t, first, other)
	})

	t.Run("UnknownKeyName", func(t *testing.T) {
		r := New()
		tickets, err := NewTypedView[*testmodels.Ticket](r)
		require.NoError(t, err)
		_, _, err = tickets.First("number", 1)
		assert.True(t, kerrors.IsUnknownKeyName(err))
	})

	t.Run("InterfaceType", func(t *testing.T) {
		_, err := View[keys.Keyable](New())
		assert.ErrorIs(t, err, kerrors.ErrInvalidEntity)
	})

	t.Run("SkipsOtherGoTypes", func(t *testing.T) {
		r := New()
		loose := testmodels.NewLoose("Country",
			keys.Primary("name", keys.String),
			keys.Alternate("code", keys.Int32, keys.FlagAuto, keys.FlagUnique),
			keys.Alternate("population", keys.Int64),
		).With("name", "Spain").With("population", int64(48_000_000))
		require.NoError(t, r.Register(loose))
		require.NoError(t, r.Register(&testmodels.Country{Name: "Portugal", Population: 48_000_000}))

		countries, err := View[*testmodels.Country](r)
		require.NoError(t, err)
		list, err := countries.List("population", 48_000_000)
		require.NoError(t, err)
		require.Len(t, list, 1)
		assert.Equal(t, "Portugal", list[0].Name)
		assert.Equal(t, 2, countries.Count())
	})
}
