// Package testmodels holds entity types shared by the registry tests.
package testmodels

import (
	"fmt"

	"github.com/go-openapi/strfmt"
	"github.com/google/uuid"

	"github.com/suparena/keyregistry/keys"
)

// Country is keyed by its name and gets an auto generated numeric code.
type Country struct {
	Name       string
	Code       int32
	Population int64
}

var CountryKeys = keys.MustTable("Country",
	keys.Primary("name", keys.String),
	keys.Alternate("code", keys.Int32, keys.FlagAuto, keys.FlagUnique),
	keys.Alternate("population", keys.Int64),
)

func (c *Country) KeyTable() *keys.Table { return CountryKeys }

func (c *Country) KeyValue(name string) (any, bool) {
	switch name {
	case "name":
		return c.Name, true
	case "code":
		return c.Code, true
	case "population":
		return c.Population, true
	}
	return nil, false
}

func (c *Country) SetKeyValue(name string, v any) error {
	switch name {
	case "code":
		c.Code = v.(int32)
		return nil
	}
	return fmt.Errorf("country: key %q is not writable", name)
}

// Device has two auto generated UUID keys.
type Device struct {
	ID           uuid.UUID
	Serial       uuid.UUID
	Label        string
	RegisteredAt *strfmt.DateTime
}

var DeviceKeys = keys.MustTable("Device",
	keys.Primary("id", keys.UUID, keys.FlagAuto),
	keys.Alternate("serial", keys.UUID, keys.FlagAuto, keys.FlagUnique),
	keys.Alternate("label", keys.String),
)

func (d *Device) KeyTable() *keys.Table { return DeviceKeys }

func (d *Device) KeyValue(name string) (any, bool) {
	switch name {
	case "id":
		return d.ID, true
	case "serial":
		return d.Serial, true
	case "label":
		return d.Label, true
	}
	return nil, false
}

func (d *Device) SetKeyValue(name string, v any) error {
	switch name {
	case "id":
		d.ID = v.(uuid.UUID)
	case "serial":
		d.Serial = v.(uuid.UUID)
	default:
		return fmt.Errorf("device: key %q is not writable", name)
	}
	return nil
}

// Ticket has an auto generated Int32 primary key.
type Ticket struct {
	ID      int32
	Subject string
}

var TicketKeys = keys.MustTable("Ticket",
	keys.Primary("id", keys.Int32, keys.FlagAuto),
	keys.Alternate("subject", keys.String),
)

func (t *Ticket) KeyTable() *keys.Table { return TicketKeys }

func (t *Ticket) KeyValue(name string) (any, bool) {
	switch name {
	case "id":
		return t.ID, true
	case "subject":
		return t.Subject, true
	}
	return nil, false
}

func (t *Ticket) SetKeyValue(name string, v any) error {
	if name != "id" {
		return fmt.Errorf("ticket: key %q is not writable", name)
	}
	t.ID = v.(int32)
	return nil
}

// Tiny has an auto generated Int8 primary key and runs out after 127 values.
type Tiny struct {
	ID int8
}

var TinyKeys = keys.MustTable("Tiny",
	keys.Primary("id", keys.Int8, keys.FlagAuto),
)

func (t *Tiny) KeyTable() *keys.Table { return TinyKeys }

func (t *Tiny) KeyValue(name string) (any, bool) {
	if name != "id" {
		return nil, false
	}
	return t.ID, true
}

func (t *Tiny) SetKeyValue(name string, v any) error {
	if name != "id" {
		return fmt.Errorf("tiny: key %q is not writable", name)
	}
	t.ID = v.(int8)
	return nil
}

// Person exercises most value types and a mandatory, non-unique alternate key.
type Person struct {
	Email    string
	Nickname string
	Badge    int16
	Active   bool
	Initial  rune
	Score    float64

	// Hidden makes every key unreadable, simulating a broken accessor.
	Hidden bool
}

var PersonKeys = keys.MustTable("Person",
	keys.Primary("email", keys.String),
	keys.Alternate("nickname", keys.String, keys.FlagMandatory),
	keys.Alternate("badge", keys.Int16, keys.FlagUnique),
	keys.Alternate("active", keys.Bool),
	keys.Alternate("initial", keys.Char),
	keys.Alternate("score", keys.Float64),
)

func (p *Person) KeyTable() *keys.Table { return PersonKeys }

func (p *Person) KeyValue(name string) (any, bool) {
	if p.Hidden {
		return nil, false
	}
	switch name {
	case "email":
		return p.Email, true
	case "nickname":
		return p.Nickname, true
	case "badge":
		return p.Badge, true
	case "active":
		return p.Active, true
	case "initial":
		return p.Initial, true
	case "score":
		return p.Score, true
	}
	return nil, false
}

func (p *Person) SetKeyValue(name string, v any) error {
	return fmt.Errorf("person: key %q is not writable", name)
}

// Loose is backed by a map and a caller supplied table, for malformed declarations.
type Loose struct {
	Table  *keys.Table
	Values map[string]any
}

// NewLoose creates a Loose entity with an unvalidated table
func NewLoose(entityType string, descs ...keys.KeyDescriptor) *Loose {
	return &Loose{Table: keys.DefineTable(entityType, descs...), Values: make(map[string]any)}
}

func (l *Loose) KeyTable() *keys.Table { return l.Table }

func (l *Loose) KeyValue(name string) (any, bool) {
	if _, ok := l.Table.Descriptor(name); !ok {
		return nil, false
	}
	return l.Values[name], true
}

func (l *Loose) SetKeyValue(name string, v any) error {
	l.Values[name] = v
	return nil
}

// With sets a key value and returns l
func (l *Loose) With(name string, v any) *Loose {
	l.Values[name] = v
	return l
}
