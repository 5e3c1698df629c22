/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package ddb

import (
	"encoding/json"
	"testing"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/suparena/keyregistry"
	"github.com/suparena/keyregistry/index"
	"github.com/suparena/keyregistry/internal/testmodels"
	"github.com/suparena/keyregistry/keys"
)

func attrS(t *testing.T, item map[string]types.AttributeValue, name string) string {
	t.Helper()
	v, ok := item[name].(*types.AttributeValueMemberS)
	require.True(t, ok, "attribute %s is %T", name, item[name])
	return v.Value
}

func attrN(t *testing.T, item map[string]types.AttributeValue, name string) string {
	t.Helper()
	v, ok := item[name].(*types.AttributeValueMemberN)
	require.True(t, ok, "attribute %s is %T", name, item[name])
	return v.Value
}

func countrySnapshot(t *testing.T) []index.Entry {
	t.Helper()
	reg := keyregistry.New()
	require.NoError(t, reg.Register(&testmodels.Country{Name: "France"}))
	require.NoError(t, reg.Register(&testmodels.Country{Name: "Germany"}))
	return reg.Snapshot()
}

func TestItemsDefaultIndexMap(t *testing.T) {
	items, err := NewExporter().Items(countrySnapshot(t))
	require.NoError(t, err)
	require.Len(t, items, 4)

	assert.Equal(t, "Country#code", attrS(t, items[0], "PK"))
	assert.Equal(t, "Int32#1", attrS(t, items[0], "SK"))
	assert.Equal(t, "1", attrN(t, items[0], "Value"))
	assert.Equal(t, "1", attrN(t, items[0], "Count"))
	assert.Equal(t, "Int32", attrS(t, items[0], "ValueType"))

	assert.Equal(t, "Country#name", attrS(t, items[3], "PK"))
	assert.Equal(t, "String#Germany", attrS(t, items[3], "SK"))
	assert.Equal(t, "Germany", attrS(t, items[3], "Value"))
	assert.Equal(t, "Country", attrS(t, items[3], "EntityType"))
	assert.Equal(t, "name", attrS(t, items[3], "KeyName"))
}

func TestItemsPerTypeIndexMap(t *testing.T) {
	id := uuid.MustParse("6ba7b810-9dad-11d1-80b4-00c04fd430c8")
	exp := NewExporter(WithIndexMap("Device", map[string]string{
		"PK":     "DEVICE#{KeyName}",
		"SK":     "{Value}",
		"GSI1PK": "{ValueType}",
	}))

	items, err := exp.Items([]index.Entry{
		{EntityType: "Device", Type: keys.UUID, Name: "id", Value: id, Count: 1},
		{EntityType: "Person", Type: keys.Char, Name: "initial", Value: 'A', Count: 2},
		{EntityType: "Person", Type: keys.Bool, Name: "active", Value: true, Count: 2},
	})
	require.NoError(t, err)
	require.Len(t, items, 3)

	assert.Equal(t, "DEVICE#id", attrS(t, items[0], "PK"))
	assert.Equal(t, id.String(), attrS(t, items[0], "SK"))
	assert.Equal(t, "UUID", attrS(t, items[0], "GSI1PK"))

	assert.Equal(t, "Person#initial", attrS(t, items[1], "PK"))
	assert.Equal(t, "Char#A", attrS(t, items[1], "SK"))
	assert.Equal(t, "Bool#true", attrS(t, items[2], "SK"))

	assert.Equal(t, DefaultIndexMap, exp.IndexMap("Person"))
	assert.Equal(t, "DEVICE#{KeyName}", exp.IndexMap("Device")["PK"])
}

func TestItemsMissingKey(t *testing.T) {
	exp := NewExporter(WithDefaultIndexMap(map[string]string{
		"PK": "{Missing}",
		"SK": "{Value}",
	}))
	_, err := exp.Items(countrySnapshot(t))
	assert.Error(t, err)
}

func TestIndexMapIsCopied(t *testing.T) {
	m := map[string]string{"PK": "{EntityType}", "SK": "{Value}"}
	exp := NewExporter(WithIndexMap("Country", m))
	m["PK"] = ""

	items, err := exp.Items(countrySnapshot(t))
	require.NoError(t, err)
	assert.Equal(t, "Country", attrS(t, items[0], "PK"))
}

func TestJSON(t *testing.T) {
	items, err := NewExporter().Items(countrySnapshot(t))
	require.NoError(t, err)

	out, err := JSON(items)
	require.NoError(t, err)

	var decoded []map[string]any
	require.NoError(t, json.Unmarshal(out, &decoded))
	require.Len(t, decoded, 4)
	assert.Equal(t, "Country#name", decoded[2]["PK"])
	assert.Equal(t, "France", decoded[2]["Value"])
	assert.Equal(t, float64(1), decoded[0]["Value"])
}

func TestBatches(t *testing.T) {
	items := make([]map[string]types.AttributeValue, 60)
	for i := range items {
		items[i] = map[string]types.AttributeValue{
			"PK": &types.AttributeValueMemberS{Value: "p"},
			"SK": &types.AttributeValueMemberN{Value: "1"},
		}
	}

	batches := Batches("registry", items)
	require.Len(t, batches, 3)
	assert.Len(t, batches[0].RequestItems["registry"], MaxBatchSize)
	assert.Len(t, batches[1].RequestItems["registry"], MaxBatchSize)
	assert.Len(t, batches[2].RequestItems["registry"], 10)
	assert.NotNil(t, batches[0].RequestItems["registry"][0].PutRequest)

	assert.Empty(t, Batches("registry", nil))
}
