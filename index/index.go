/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package index

import (
	"fmt"

	kerrors "github.com/suparena/keyregistry/errors"
	"github.com/suparena/keyregistry/keys"
)

type (
	valueMap     map[any]*entitySet
	nameMap      map[string]valueMap
	valueTypeMap map[keys.ValueType]nameMap
)

// Index is the nested entity index.
type Index struct {
	schemas map[string]*keys.Table
	data    map[string]valueTypeMap
	// refs counts the coordinates each entity occupies, per entity type
	refs map[string]map[keys.Keyable]int
}

// New creates an empty Index
func New() *Index {
	ix := &Index{}
	ix.Reset()
	return ix
}

// Reset drops all entries and declarations
func (ix *Index) Reset() {
	ix.schemas = make(map[string]*keys.Table)
	ix.data = make(map[string]valueTypeMap)
	ix.refs = make(map[string]map[keys.Keyable]int)
}

// Declare records the key table of an entity type. Declaring the same table
// again is a no-op; declaring a different table under a known name fails.
func (ix *Index) Declare(t *keys.Table) error {
	if err := t.Validate(); err != nil {
		return err
	}
	if known, ok := ix.schemas[t.EntityType()]; ok {
		if known == t || known.Equal(t) {
			return nil
		}
		return kerrors.NewKeyError(t.EntityType(), "", kerrors.ErrTableConflict)
	}
	ix.schemas[t.EntityType()] = t
	return nil
}

// Table returns the declared table of an entity type
func (ix *Index) Table(entityType string) (*keys.Table, bool) {
	t, ok := ix.schemas[entityType]
	return t, ok
}

// EntityTypes returns the declared entity types
func (ix *Index) EntityTypes() []string {
	out := make([]string, 0, len(ix.schemas))
	for name := range ix.schemas {
		out = append(out, name)
	}
	return out
}

// Resolve maps a key name to its descriptor.
func (ix *Index) Resolve(entityType, name string) (keys.KeyDescriptor, error) {
	t, ok := ix.schemas[entityType]
	if !ok {
		return keys.KeyDescriptor{}, kerrors.NewKeyError(entityType, name,
			fmt.Errorf("%w: entity type is not declared", kerrors.ErrUnknownKeyName))
	}
	d, ok := t.Descriptor(name)
	if !ok {
		return keys.KeyDescriptor{}, kerrors.NewKeyError(entityType, name, kerrors.ErrUnknownKeyName)
	}
	return d, nil
}

func (ix *Index) resolveTyped(entityType string, vt keys.ValueType, name string) (keys.KeyDescriptor, error) {
	d, err := ix.Resolve(entityType, name)
	if err != nil {
		return d, err
	}
	if d.Type != vt {
		return d, kerrors.NewKeyError(entityType, name,
			fmt.Errorf("%w: key is %s, not %s", kerrors.ErrUnknownKeyName, d.Type, vt))
	}
	return d, nil
}

func (ix *Index) set(k keys.IndexKey) *entitySet {
	return ix.data[k.EntityType][k.Type][k.Name][k.Value]
}

// CanInsert reports the error Insert would return for a unique key, without writing.
func (ix *Index) CanInsert(k keys.IndexKey, e keys.Keyable, unique bool) error {
	if _, err := ix.resolveTyped(k.EntityType, k.Type, k.Name); err != nil {
		return err
	}
	v, err := k.Type.Coerce(k.Value)
	if err != nil {
		return kerrors.NewKeyError(k.EntityType, k.Name, err)
	}
	k.Value = v
	if !unique {
		return nil
	}
	if s := ix.set(k); s != nil && s.len() > 0 && !s.contains(e) {
		return kerrors.NewKeyValueError(k.EntityType, k.Name, v, kerrors.ErrDuplicateKeyValue)
	}
	return nil
}

// Insert indexes e under k. It returns false without error when the key is
// optional and k carries the zero value.
func (ix *Index) Insert(k keys.IndexKey, e keys.Keyable, unique, mandatory bool) (bool, error) {
	if _, err := ix.resolveTyped(k.EntityType, k.Type, k.Name); err != nil {
		return false, err
	}
	v, err := k.Type.Coerce(k.Value)
	if err != nil {
		return false, kerrors.NewKeyError(k.EntityType, k.Name, err)
	}
	k.Value = v
	if !mandatory && k.Type.IsZero(v) {
		return false, nil
	}

	types, ok := ix.data[k.EntityType]
	if !ok {
		types = make(valueTypeMap)
		ix.data[k.EntityType] = types
	}
	names, ok := types[k.Type]
	if !ok {
		names = make(nameMap)
		types[k.Type] = names
	}
	values, ok := names[k.Name]
	if !ok {
		values = make(valueMap)
		names[k.Name] = values
	}
	s, ok := values[v]
	if !ok {
		s = newEntitySet()
		values[v] = s
	}

	if unique && s.len() > 0 && !s.contains(e) {
		return false, kerrors.NewKeyValueError(k.EntityType, k.Name, v, kerrors.ErrDuplicateKeyValue)
	}
	if s.add(e) {
		ix.ref(k.EntityType, e, 1)
	}
	return true, nil
}

func (ix *Index) ref(entityType string, e keys.Keyable, delta int) {
	refs, ok := ix.refs[entityType]
	if !ok {
		refs = make(map[keys.Keyable]int)
		ix.refs[entityType] = refs
	}
	n := refs[e] + delta
	if n <= 0 {
		delete(refs, e)
		if len(refs) == 0 {
			delete(ix.refs, entityType)
		}
		return
	}
	refs[e] = n
}

// Remove deletes e from the coordinate k and prunes empty levels.
// It reports whether e was present.
func (ix *Index) Remove(k keys.IndexKey, e keys.Keyable) bool {
	v, err := k.Type.Coerce(k.Value)
	if err != nil {
		return false
	}
	types := ix.data[k.EntityType]
	names := types[k.Type]
	values := names[k.Name]
	s := values[v]
	if s == nil || !s.remove(e) {
		return false
	}
	ix.ref(k.EntityType, e, -1)

	if s.len() == 0 {
		delete(values, v)
	}
	if len(values) == 0 {
		delete(names, k.Name)
	}
	if len(names) == 0 {
		delete(types, k.Type)
	}
	if len(types) == 0 {
		delete(ix.data, k.EntityType)
	}
	return true
}

// RemoveAllForEntity removes e from every coordinate in ks. Every key must
// carry the value e was indexed under.
func (ix *Index) RemoveAllForEntity(entityType string, ks []keys.IndexKey, e keys.Keyable) error {
	for _, k := range ks {
		if k.Value == nil {
			return kerrors.NewKeyError(entityType, k.Name, kerrors.ErrKeyFieldNotResolvable)
		}
	}
	for _, k := range ks {
		ix.Remove(k, e)
	}
	return nil
}

// RemoveByEntityType drops every entry of an entity type and returns the
// entities that were indexed. The declaration is kept.
func (ix *Index) RemoveByEntityType(entityType string) []keys.Keyable {
	var touched []keys.Keyable
	for vt := range ix.data[entityType] {
		touched = appendUnique(touched, ix.RemoveByKeyType(entityType, vt))
	}
	return touched
}

// RemoveByKeyType drops every entry of one value type of an entity type.
func (ix *Index) RemoveByKeyType(entityType string, vt keys.ValueType) []keys.Keyable {
	var touched []keys.Keyable
	for name := range ix.data[entityType][vt] {
		touched = appendUnique(touched, ix.removeName(entityType, vt, name))
	}
	return touched
}

// RemoveByKeyName drops every entry of one key of an entity type.
func (ix *Index) RemoveByKeyName(entityType, name string) []keys.Keyable {
	t, ok := ix.schemas[entityType]
	if !ok {
		return nil
	}
	d, ok := t.Descriptor(name)
	if !ok {
		return nil
	}
	return ix.removeName(entityType, d.Type, name)
}

func (ix *Index) removeName(entityType string, vt keys.ValueType, name string) []keys.Keyable {
	values := ix.data[entityType][vt][name]
	var touched []keys.Keyable
	for v, s := range values {
		for _, e := range s.list() {
			ix.Remove(keys.IndexKey{EntityType: entityType, Type: vt, Name: name, Value: v}, e)
			touched = appendUnique(touched, []keys.Keyable{e})
		}
	}
	return touched
}

func appendUnique(dst, src []keys.Keyable) []keys.Keyable {
	for _, e := range src {
		found := false
		for _, d := range dst {
			if d == e {
				found = true
				break
			}
		}
		if !found {
			dst = append(dst, e)
		}
	}
	return dst
}

// Lookup returns the entities indexed under a coordinate. The result is empty,
// never an error, when nothing matches or value cannot be a value of the key.
func (ix *Index) Lookup(entityType string, vt keys.ValueType, name string, value any) ([]keys.Keyable, error) {
	if _, err := ix.resolveTyped(entityType, vt, name); err != nil {
		return nil, err
	}
	v, err := vt.Coerce(value)
	if err != nil {
		return []keys.Keyable{}, nil
	}
	s := ix.set(keys.IndexKey{EntityType: entityType, Type: vt, Name: name, Value: v})
	if s == nil {
		return []keys.Keyable{}, nil
	}
	return s.list(), nil
}

// LookupName is Lookup with the value type resolved from the declaration.
func (ix *Index) LookupName(entityType, name string, value any) ([]keys.Keyable, error) {
	d, err := ix.Resolve(entityType, name)
	if err != nil {
		return nil, err
	}
	return ix.Lookup(entityType, d.Type, name, value)
}

// Count returns the number of distinct entities indexed for an entity type.
func (ix *Index) Count(entityType string) int {
	return len(ix.refs[entityType])
}

// CountKey returns the number of entities indexed under a key, across all values.
func (ix *Index) CountKey(entityType string, vt keys.ValueType, name string) int {
	n := 0
	for _, s := range ix.data[entityType][vt][name] {
		n += s.len()
	}
	return n
}

// CountIndexKey returns the number of entities indexed under one coordinate.
func (ix *Index) CountIndexKey(k keys.IndexKey) int {
	v, err := k.Type.Coerce(k.Value)
	if err != nil {
		return 0
	}
	k.Value = v
	if s := ix.set(k); s != nil {
		return s.len()
	}
	return 0
}
