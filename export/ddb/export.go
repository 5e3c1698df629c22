/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package ddb

import (
	"encoding/json"
	"fmt"
	"maps"
	"regexp"
	"strings"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	sdk "github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/google/uuid"

	"github.com/suparena/keyregistry/index"
	"github.com/suparena/keyregistry/keys"
)

// MaxBatchSize is the largest number of put requests one BatchWriteItem accepts.
const MaxBatchSize = 25

// DefaultIndexMap is used for entity types without their own index map.
var DefaultIndexMap = map[string]string{
	"PK": "{EntityType}#{KeyName}",
	"SK": "{ValueType}#{Value}",
}

var macroPattern = regexp.MustCompile(`{([^}]+)}`)

// entryItem is the attribute layout of one exported coordinate.
type entryItem struct {
	EntityType string `dynamodbav:"EntityType"`
	ValueType  string `dynamodbav:"ValueType"`
	KeyName    string `dynamodbav:"KeyName"`
	Value      any    `dynamodbav:"Value"`
	Count      int    `dynamodbav:"Count"`
}

func newEntryItem(e index.Entry) entryItem {
	return entryItem{
		EntityType: e.EntityType,
		ValueType:  e.Type.String(),
		KeyName:    e.Name,
		Value:      itemValue(e.Type, e.Value),
		Count:      e.Count,
	}
}

// itemValue maps values without a natural DynamoDB form to strings.
func itemValue(vt keys.ValueType, v any) any {
	switch vt {
	case keys.UUID:
		if id, ok := v.(uuid.UUID); ok {
			return id.String()
		}
	case keys.Char:
		if r, ok := v.(rune); ok {
			return string(r)
		}
	}
	return v
}

// Option configures an Exporter
type Option func(*Exporter)

// WithIndexMap sets the index map of one entity type
func WithIndexMap(entityType string, indexMap map[string]string) Option {
	return func(e *Exporter) {
		e.indexMaps[entityType] = maps.Clone(indexMap)
	}
}

// WithDefaultIndexMap replaces DefaultIndexMap for this exporter
func WithDefaultIndexMap(indexMap map[string]string) Option {
	return func(e *Exporter) {
		e.defaultMap = maps.Clone(indexMap)
	}
}

// Exporter converts snapshot entries to DynamoDB items.
type Exporter struct {
	defaultMap map[string]string
	indexMaps  map[string]map[string]string
}

// NewExporter creates an Exporter
func NewExporter(opts ...Option) *Exporter {
	e := &Exporter{
		defaultMap: maps.Clone(DefaultIndexMap),
		indexMaps:  make(map[string]map[string]string),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// IndexMap returns the index map applied to an entity type
func (e *Exporter) IndexMap(entityType string) map[string]string {
	if m, ok := e.indexMaps[entityType]; ok {
		return m
	}
	return e.defaultMap
}

// Items renders every entry as an item, in entry order.
func (e *Exporter) Items(entries []index.Entry) ([]map[string]types.AttributeValue, error) {
	items := make([]map[string]types.AttributeValue, 0, len(entries))
	for _, entry := range entries {
		item, err := e.Item(entry)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, nil
}

// Item renders one entry
func (e *Exporter) Item(entry index.Entry) (map[string]types.AttributeValue, error) {
	av, err := attributevalue.MarshalMap(newEntryItem(entry))
	if err != nil {
		return nil, fmt.Errorf("failed to marshal entry %s: %w", entry.Key(), err)
	}

	expanded := expandMacros(e.IndexMap(entry.EntityType), av)
	if err := checkKey(expanded); err != nil {
		return nil, fmt.Errorf("entry %s: %w", entry.Key(), err)
	}
	for k, v := range expanded {
		av[k] = &types.AttributeValueMemberS{Value: v}
	}
	return av, nil
}

// expandMacros fills the {Attribute} macros of every template from av.
// Unknown attributes expand to the empty string.
func expandMacros(indexMap map[string]string, av map[string]types.AttributeValue) map[string]string {
	res := make(map[string]string, len(indexMap))
	for fieldName, template := range indexMap {
		res[fieldName] = macroPattern.ReplaceAllStringFunc(template, func(macro string) string {
			val, ok := av[strings.Trim(macro, "{}")]
			if !ok {
				return ""
			}
			switch tv := val.(type) {
			case *types.AttributeValueMemberS:
				return tv.Value
			case *types.AttributeValueMemberN:
				return tv.Value
			case *types.AttributeValueMemberBOOL:
				return fmt.Sprintf("%v", tv.Value)
			default:
				return ""
			}
		})
	}
	return res
}

// checkKey requires non-empty PK and SK attributes.
func checkKey(expanded map[string]string) error {
	if expanded["PK"] == "" || expanded["SK"] == "" {
		return fmt.Errorf("expanded index map missing valid PK or SK")
	}
	return nil
}

// JSON renders items as indented JSON with plain attribute values.
func JSON(items []map[string]types.AttributeValue) ([]byte, error) {
	plain := make([]map[string]any, 0, len(items))
	for _, item := range items {
		var m map[string]any
		if err := attributevalue.UnmarshalMap(item, &m); err != nil {
			return nil, fmt.Errorf("failed to unmarshal item: %w", err)
		}
		plain = append(plain, m)
	}
	return json.MarshalIndent(plain, "", "  ")
}

// Batches groups items into BatchWriteItem inputs of at most MaxBatchSize puts.
func Batches(tableName string, items []map[string]types.AttributeValue) []*sdk.BatchWriteItemInput {
	var out []*sdk.BatchWriteItemInput
	for start := 0; start < len(items); start += MaxBatchSize {
		end := min(start+MaxBatchSize, len(items))
		requests := make([]types.WriteRequest, 0, end-start)
		for _, item := range items[start:end] {
			requests = append(requests, types.WriteRequest{
				PutRequest: &types.PutRequest{Item: item},
			})
		}
		out = append(out, &sdk.BatchWriteItemInput{
			RequestItems: map[string][]types.WriteRequest{tableName: requests},
		})
	}
	return out
}
