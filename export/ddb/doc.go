/*
Package ddb renders registry snapshots as DynamoDB items.

Every snapshot entry, one populated index coordinate, becomes one item. Key
attributes are produced from an index map whose templates reference item
attributes with {Attribute} macros:

	exp := ddb.NewExporter(
	    ddb.WithIndexMap("Country", map[string]string{
	        "PK":     "COUNTRY#{KeyName}",
	        "SK":     "{Value}",
	        "GSI1PK": "{ValueType}",
	    }),
	)
	items, err := exp.Items(reg.Snapshot())

The available attributes are EntityType, ValueType, KeyName, Value and Count.
Entity types without their own index map use DefaultIndexMap. Every expanded
map must yield a non-empty PK and SK.

The package performs no I/O. Batches groups items into BatchWriteItem inputs
for callers that own a DynamoDB client.
*/
package ddb
