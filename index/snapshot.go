/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package index

import (
	"cmp"
	"fmt"
	"slices"

	"github.com/suparena/keyregistry/keys"
)

// Entry is one populated coordinate of the index.
type Entry struct {
	EntityType string
	Type       keys.ValueType
	Name       string
	Value      any
	Count      int
}

// Key returns the coordinate of the entry
func (e Entry) Key() keys.IndexKey {
	return keys.IndexKey{EntityType: e.EntityType, Type: e.Type, Name: e.Name, Value: e.Value}
}

// Snapshot lists every populated coordinate, ordered by entity type, value
// type, key name and the formatted value.
func (ix *Index) Snapshot() []Entry {
	var out []Entry
	for entityType, types := range ix.data {
		for vt, names := range types {
			for name, values := range names {
				for v, s := range values {
					out = append(out, Entry{
						EntityType: entityType,
						Type:       vt,
						Name:       name,
						Value:      v,
						Count:      s.len(),
					})
				}
			}
		}
	}
	slices.SortFunc(out, func(a, b Entry) int {
		if c := cmp.Or(
			cmp.Compare(a.EntityType, b.EntityType),
			cmp.Compare(a.Type, b.Type),
			cmp.Compare(a.Name, b.Name),
		); c != 0 {
			return c
		}
		return compareValues(a.Value, b.Value)
	})
	return out
}

// compareValues orders two canonical values of the same key.
func compareValues(a, b any) int {
	switch x := a.(type) {
	case int8:
		return cmp.Compare(x, b.(int8))
	case int16:
		return cmp.Compare(x, b.(int16))
	case int32:
		return cmp.Compare(x, b.(int32))
	case int64:
		return cmp.Compare(x, b.(int64))
	case float32:
		return cmp.Compare(x, b.(float32))
	case float64:
		return cmp.Compare(x, b.(float64))
	case string:
		return cmp.Compare(x, b.(string))
	}
	return cmp.Compare(fmt.Sprint(a), fmt.Sprint(b))
}
