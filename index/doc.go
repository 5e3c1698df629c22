/*
Package index implements the nested entity index of the key registry.

Entities are stored under four levels of coordinates:

	entity type → value type → key name → key value → ordered set of entities

Each entity type is declared once with its keys.Table. The declaration lets the
index resolve a bare key name to its value type, and tells "no entity has this
value" (an empty result) apart from "this is not a key of the type"
(ErrUnknownKeyName).

Unique keys hold at most one entity per value. Optional keys left at their
type's zero value are not indexed at all, so looking up the zero value of an
optional key never finds anything.

An Index is not safe for concurrent use. The registry guards it with a lock.
*/
package index
