/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package keys

import (
	"slices"
	"sync"

	kerrors "github.com/suparena/keyregistry/errors"
)

// Table is the immutable key declaration of one entity type.
type Table struct {
	entityType string
	descs      []KeyDescriptor
	byName     map[string]int

	once sync.Once
	err  error
}

// DefineTable builds a table without validating it. Invalid tables are
// rejected when they are first used for registration.
func DefineTable(entityType string, descs ...KeyDescriptor) *Table {
	t := &Table{
		entityType: entityType,
		descs:      slices.Clone(descs),
		byName:     make(map[string]int, len(descs)),
	}
	for i, d := range t.descs {
		if _, exists := t.byName[d.Name]; !exists {
			t.byName[d.Name] = i
		}
	}
	return t
}

// NewTable builds and validates a table.
func NewTable(entityType string, descs ...KeyDescriptor) (*Table, error) {
	t := DefineTable(entityType, descs...)
	if err := t.Validate(); err != nil {
		return nil, err
	}
	return t, nil
}

// MustTable is like NewTable but panics on an invalid declaration.
func MustTable(entityType string, descs ...KeyDescriptor) *Table {
	t, err := NewTable(entityType, descs...)
	if err != nil {
		panic(err)
	}
	return t
}

// EntityType returns the type identifier used as the top level index key.
func (t *Table) EntityType() string {
	return t.entityType
}

// Descriptors returns the descriptors in declaration order.
func (t *Table) Descriptors() []KeyDescriptor {
	return slices.Clone(t.descs)
}

func (t *Table) Len() int {
	return len(t.descs)
}

// Descriptor returns the descriptor declared under name.
func (t *Table) Descriptor(name string) (KeyDescriptor, bool) {
	i, ok := t.byName[name]
	if !ok {
		return KeyDescriptor{}, false
	}
	return t.descs[i], true
}

// Primary returns the primary key descriptor of a valid table.
func (t *Table) Primary() (KeyDescriptor, bool) {
	for _, d := range t.descs {
		if d.IsPrimary() {
			return d, true
		}
	}
	return KeyDescriptor{}, false
}

// CommitOrder returns the descriptors with the primary key first and the
// remaining keys in declaration order.
func (t *Table) CommitOrder() []KeyDescriptor {
	out := make([]KeyDescriptor, 0, len(t.descs))
	for _, d := range t.descs {
		if d.IsPrimary() {
			out = append(out, d)
		}
	}
	for _, d := range t.descs {
		if !d.IsPrimary() {
			out = append(out, d)
		}
	}
	return out
}

// Validate checks the declaration invariants. The result is computed once.
func (t *Table) Validate() error {
	if t == nil {
		return kerrors.NewValidationError("table", "entity has no key table")
	}
	t.once.Do(func() {
		t.err = t.validate()
	})
	return t.err
}

func (t *Table) validate() error {
	if t.entityType == "" {
		return kerrors.NewValidationError("entityType", "must not be empty")
	}
	seen := make(map[string]struct{}, len(t.descs))
	primaries := 0
	for _, d := range t.descs {
		if d.Name == "" {
			return kerrors.NewKeyError(t.entityType, "", kerrors.NewValidationError("name", "key name must not be empty"))
		}
		if !d.Type.Valid() {
			return kerrors.NewKeyError(t.entityType, d.Name, kerrors.ErrInvalidKeyType)
		}
		if d.IsAuto() && d.Type == String {
			return kerrors.NewKeyError(t.entityType, d.Name, kerrors.ErrStringAutoNotSupported)
		}
		if _, dup := seen[d.Name]; dup {
			return kerrors.NewKeyError(t.entityType, d.Name, kerrors.ErrDuplicateKeyName)
		}
		seen[d.Name] = struct{}{}
		if d.IsPrimary() && d.IsAlternate() {
			return kerrors.NewKeyError(t.entityType, d.Name, kerrors.ErrPrimaryAlternateConflict)
		}
		if d.IsPrimary() {
			primaries++
		}
	}
	switch {
	case primaries == 0:
		return kerrors.NewKeyError(t.entityType, "", kerrors.ErrMissingPrimaryKey)
	case primaries > 1:
		return kerrors.NewKeyError(t.entityType, "", kerrors.ErrMultiplePrimaryKeys)
	}
	return nil
}

// Equal reports whether two tables declare the same entity type and keys.
func (t *Table) Equal(o *Table) bool {
	if t == o {
		return true
	}
	if t == nil || o == nil {
		return false
	}
	return t.entityType == o.entityType && slices.Equal(t.descs, o.descs)
}
