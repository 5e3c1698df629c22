/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package keys

import (
	"fmt"
	"strings"
)

// Flags is a bitmask of key properties.
type Flags uint8

const FlagNone Flags = 0

const (
	FlagPrimary Flags = 1 << iota
	FlagAlternate
	FlagMandatory
	FlagUnique
	FlagAuto
)

var flagNames = []struct {
	flag Flags
	name string
}{
	{FlagPrimary, "primary"},
	{FlagAlternate, "alternate"},
	{FlagMandatory, "mandatory"},
	{FlagUnique, "unique"},
	{FlagAuto, "auto"},
}

func (f Flags) String() string {
	if f == FlagNone {
		return "none"
	}
	var parts []string
	for _, fn := range flagNames {
		if f&fn.flag != 0 {
			parts = append(parts, fn.name)
		}
	}
	return strings.Join(parts, "|")
}

// KeyDescriptor describes one declared key of an entity type.
type KeyDescriptor struct {
	Name  string
	Type  ValueType
	Flags Flags
}

// Primary declares the primary key. It is always mandatory and unique.
func Primary(name string, vt ValueType, opts ...Flags) KeyDescriptor {
	return KeyDescriptor{Name: name, Type: vt, Flags: FlagPrimary | FlagMandatory | FlagUnique | join(opts)}
}

// Alternate declares an additional key. Without options it is optional and non-unique.
func Alternate(name string, vt ValueType, opts ...Flags) KeyDescriptor {
	return KeyDescriptor{Name: name, Type: vt, Flags: FlagAlternate | join(opts)}
}

func join(opts []Flags) Flags {
	var f Flags
	for _, o := range opts {
		f |= o
	}
	return f
}

func (d KeyDescriptor) IsPrimary() bool   { return d.Flags&FlagPrimary != 0 }
func (d KeyDescriptor) IsAlternate() bool { return d.Flags&FlagAlternate != 0 }
func (d KeyDescriptor) IsAuto() bool      { return d.Flags&FlagAuto != 0 }

// IsMandatory reports whether the key must carry a value. Primary keys always do.
func (d KeyDescriptor) IsMandatory() bool {
	return d.Flags&(FlagMandatory|FlagPrimary) != 0
}

// IsUnique reports whether a value may index at most one entity. Primary keys always are.
func (d KeyDescriptor) IsUnique() bool {
	return d.Flags&(FlagUnique|FlagPrimary) != 0
}

func (d KeyDescriptor) String() string {
	return fmt.Sprintf("%s:%s[%s]", d.Name, d.Type, d.Flags)
}
