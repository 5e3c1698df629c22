/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package keyregistry

import (
	"fmt"
	"reflect"

	kerrors "github.com/suparena/keyregistry/errors"
	"github.com/suparena/keyregistry/keys"
)

// TypedView provides type-safe registry operations for one entity type T
type TypedView[T keys.Keyable] struct {
	reg   *Registry
	table *keys.Table
}

// NewTypedView creates a TypedView for T. T is usually a pointer to a struct
// whose KeyTable method works on a zero value.
func NewTypedView[T keys.Keyable](reg *Registry) (*TypedView[T], error) {
	table, err := tableFor[T]()
	if err != nil {
		return nil, err
	}
	return &TypedView[T]{reg: reg, table: table}, nil
}

func tableFor[T keys.Keyable]() (*keys.Table, error) {
	rt := reflect.TypeFor[T]()
	var proto T
	switch rt.Kind() {
	case reflect.Interface:
		return nil, fmt.Errorf("%w: %s is an interface type", kerrors.ErrInvalidEntity, rt)
	case reflect.Pointer:
		proto = reflect.New(rt.Elem()).Interface().(T)
	}
	t := proto.KeyTable()
	if t == nil {
		return nil, fmt.Errorf("%w: %s has no key table", kerrors.ErrInvalidEntity, rt)
	}
	return t, nil
}

// View returns the TypedView of T, creating it on first use
func View[T keys.Keyable](reg *Registry) (*TypedView[T], error) {
	reg.viewsMu.Lock()
	defer reg.viewsMu.Unlock()

	typ := reflect.TypeFor[T]()
	if v, exists := reg.views[typ]; exists {
		return v.(*TypedView[T]), nil
	}
	v, err := NewTypedView[T](reg)
	if err != nil {
		return nil, err
	}
	reg.views[typ] = v
	return v, nil
}

// EntityType returns the entity type name of T
func (v *TypedView[T]) EntityType() string {
	return v.table.EntityType()
}

// Table returns the key table of T
func (v *TypedView[T]) Table() *keys.Table {
	return v.table
}

// Register registers e
func (v *TypedView[T]) Register(e T) error {
	return v.reg.Register(e)
}

// Unregister unregisters e
func (v *TypedView[T]) Unregister(e T) error {
	return v.reg.Unregister(e)
}

// First returns the first T registered under the key name with the given value
func (v *TypedView[T]) First(name string, value any) (T, bool, error) {
	var zero T
	list, err := v.List(name, value)
	if err != nil || len(list) == 0 {
		return zero, false, err
	}
	return list[0], true, nil
}

// List returns every T registered under the key name with the given value.
// Entities of another Go type sharing the entity type name are skipped.
func (v *TypedView[T]) List(name string, value any) ([]T, error) {
	list, err := v.reg.RetrieveList(v.EntityType(), name, value)
	if err != nil {
		return nil, err
	}
	out := make([]T, 0, len(list))
	for _, e := range list {
		if typed, ok := e.(T); ok {
			out = append(out, typed)
		}
	}
	return out, nil
}

// Count returns the number of registered entities of T's entity type
func (v *TypedView[T]) Count() int {
	return v.reg.Count(v.EntityType())
}
