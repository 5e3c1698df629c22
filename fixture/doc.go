/*
Package fixture loads entity types and entities from YAML documents.

A document declares key tables and the records to register:

	types:
	  - name: Country
	    keys:
	      - {name: name, type: String, primary: true}
	      - {name: code, type: Int32, alternate: true, unique: true, auto: true}
	records:
	  - type: Country
	    values: {name: France}

Types declared in the document are backed by Record, a map based entity.
Records of other types are created through a catalog.Catalog passed with
WithCatalog, so Go entity types can be loaded as long as their SetKeyValue
accepts every key.

Apply declares every document type, then registers the records in order and
stops at the first failure, reporting the index of the failing record.
*/
package fixture
