/*
Package catalog maps entity type names to their key tables and factories.

A Catalog lets data-driven callers, such as the fixture loader and the CLI,
create entities by name without knowing their Go types:

	cat := catalog.New()
	cat.Register(CountryKeys, func() keys.Keyable { return &Country{} })

	e, err := cat.New("Country")

Generic registration derives the table from a zero value of the type:

	catalog.RegisterType[*Country](cat)

A Catalog is instance scoped; there is no package level state. Register panics
when a name is registered twice, so catalogs are best populated during
initialization. All methods are safe for concurrent use.
*/
package catalog
