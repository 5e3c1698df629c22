/*
Package keys defines the static key metadata of the registry.

An entity type participates in the registry by implementing Keyable and
returning a Table: the ordered list of its declared keys. A Table is built once
per type, usually as a package-level variable, and shared by every instance:

	var countryKeys = keys.MustTable("Country",
	    keys.Primary("name", keys.String),
	    keys.Alternate("code", keys.Int32, keys.FlagAuto, keys.FlagUnique),
	)

	func (c *Country) KeyTable() *keys.Table { return countryKeys }

	func (c *Country) KeyValue(name string) (any, bool) {
	    switch name {
	    case "name":
	        return c.Name, true
	    case "code":
	        return c.Code, true
	    }
	    return nil, false
	}

	func (c *Country) SetKeyValue(name string, v any) error {
	    if name != "code" {
	        return fmt.Errorf("key %q is not writable", name)
	    }
	    c.Code = v.(int32)
	    return nil
	}

Value types:
Keys hold one of ten value types. Each has a canonical Go representation that
the index stores and compares:

	Int32, Int64, Int16, Int8   int32, int64, int16, int8
	Bool                        bool
	Float32, Float64            float32, float64
	Char                        rune
	String                      string
	UUID                        uuid.UUID

ValueType.Coerce converts caller supplied values (untyped integer constants,
UUID strings, strfmt.UUID) to the canonical form. The zero value of each type
doubles as "no value" for optional keys.
*/
package keys
