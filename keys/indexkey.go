/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package keys

import "fmt"

// IndexKey is one resolved coordinate of the entity index.
type IndexKey struct {
	EntityType string
	Type       ValueType
	Name       string
	Value      any
}

// NewIndexKey builds a coordinate from a descriptor and a live value.
func NewIndexKey(entityType string, d KeyDescriptor, value any) (IndexKey, error) {
	v, err := d.Type.Coerce(value)
	if err != nil {
		return IndexKey{}, err
	}
	return IndexKey{EntityType: entityType, Type: d.Type, Name: d.Name, Value: v}, nil
}

func (k IndexKey) String() string {
	return fmt.Sprintf("%s/%s/%s=%v", k.EntityType, k.Type, k.Name, k.Value)
}

// Keyable is implemented by every entity type that participates in the registry.
// Implementations must be pointer types: the registry tracks entities by identity.
type Keyable interface {
	// KeyTable returns the table shared by all instances of the type.
	KeyTable() *Table
	// KeyValue reads the value of a declared key. ok is false when the
	// field cannot be resolved.
	KeyValue(name string) (value any, ok bool)
	// SetKeyValue stores a generated value into an auto key.
	SetKeyValue(name string, value any) error
}
