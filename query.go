/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package keyregistry

import (
	"github.com/suparena/keyregistry/keys"
)

// RetrieveFirst returns the first entity registered under the key name with
// the given value, or nil when there is none. The only error is
// ErrUnknownKeyName.
func (r *Registry) RetrieveFirst(entityType, name string, value any) (keys.Keyable, error) {
	list, err := r.RetrieveList(entityType, name, value)
	if err != nil || len(list) == 0 {
		return nil, err
	}
	return list[0], nil
}

// RetrieveFirstKey is RetrieveFirst addressed by a full coordinate
func (r *Registry) RetrieveFirstKey(k keys.IndexKey) (keys.Keyable, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	list, err := r.index.Lookup(k.EntityType, k.Type, k.Name, k.Value)
	if err != nil || len(list) == 0 {
		return nil, err
	}
	return list[0], nil
}

// RetrieveList returns every entity registered under the key name with the
// given value, in registration order. The slice is empty, never nil, when
// nothing matches.
func (r *Registry) RetrieveList(entityType, name string, value any) ([]keys.Keyable, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.index.LookupName(entityType, name, value)
}

// Exists reports whether any entity is indexed under the key name
func (r *Registry) Exists(entityType, name string) (bool, error) {
	n, err := r.CountKey(entityType, name)
	return n > 0, err
}

// ExistsValue reports whether an entity is indexed under the key name with the given value
func (r *Registry) ExistsValue(entityType, name string, value any) (bool, error) {
	list, err := r.RetrieveList(entityType, name, value)
	return len(list) > 0, err
}

// Count returns the number of registered entities of a type
func (r *Registry) Count(entityType string) int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.index.Count(entityType)
}

// CountKey returns the number of index entries under a key name, across all values
func (r *Registry) CountKey(entityType, name string) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	d, err := r.index.Resolve(entityType, name)
	if err != nil {
		return 0, err
	}
	return r.index.CountKey(entityType, d.Type, name), nil
}

// CountIndexKey returns the number of entities under one coordinate
func (r *Registry) CountIndexKey(k keys.IndexKey) int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.index.CountIndexKey(k)
}
