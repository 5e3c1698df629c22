/*
Package keyregistry provides an in-memory registry that indexes entities by
their declared keys.

Every entity type declares one primary key and any number of alternate keys in
a keys.Table. The registry enforces the declaration when an entity is
registered:
  - Mandatory keys must carry a value; optional keys left at their zero value
    are simply not indexed
  - Unique keys admit one entity per value
  - Auto keys are filled by the registry (integer counters starting at 1, or
    random UUIDs) and must not be set by the caller

A registration is all or nothing. If any key is rejected the entity is not
indexed under any key, and generated values are cleared from it again.

Basic Usage:

	reg := keyregistry.New(
	    keyregistry.WithLogger(slog.Default()),
	)

	france := &Country{Name: "France"}
	if err := reg.Register(france); err != nil {
	    return err
	}

	e, err := reg.RetrieveFirst("Country", "name", "France")
	// e == france

	countries, _ := keyregistry.View[*Country](reg)
	n := countries.Count()

	_ = reg.Unregister(france)

Lookups never fail because nothing matches. They fail with
errors.ErrUnknownKeyName only when the name is not a declared key of the entity
type.

Concurrency:
A Registry is safe for concurrent use. One lock guards the index and the auto
key counters; registration, unregistration and bulk removal hold it
exclusively, queries share it.

Lifecycle:
Clear resets all state, including auto key counters and declared types.
Shutdown clears the registry and rejects further registrations.
*/
package keyregistry
