/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package fixture

import (
	"fmt"
	"maps"

	kerrors "github.com/suparena/keyregistry/errors"
	"github.com/suparena/keyregistry/keys"
)

// Record is an entity whose key values live in a map.
type Record struct {
	table  *keys.Table
	values map[string]any
}

// NewRecord creates an empty Record of the given table
func NewRecord(t *keys.Table) *Record {
	return &Record{table: t, values: make(map[string]any)}
}

func (r *Record) KeyTable() *keys.Table { return r.table }

// KeyValue returns the value of a declared key, nil when unset.
func (r *Record) KeyValue(name string) (any, bool) {
	if _, ok := r.table.Descriptor(name); !ok {
		return nil, false
	}
	return r.values[name], true
}

// SetKeyValue stores v in the canonical representation of the key's type.
func (r *Record) SetKeyValue(name string, v any) error {
	d, ok := r.table.Descriptor(name)
	if !ok {
		return kerrors.NewKeyError(r.table.EntityType(), name, kerrors.ErrUnknownKeyName)
	}
	cv, err := d.Type.Coerce(v)
	if err != nil {
		return kerrors.NewKeyValueError(r.table.EntityType(), name, v, err)
	}
	r.values[name] = cv
	return nil
}

// Values returns a copy of the stored values
func (r *Record) Values() map[string]any {
	return maps.Clone(r.values)
}

func (r *Record) String() string {
	return fmt.Sprintf("%s%v", r.table.EntityType(), r.values)
}
