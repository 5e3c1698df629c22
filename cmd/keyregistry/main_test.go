/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testFixture = `
types:
  - name: Country
    keys:
      - {name: name, type: String, primary: true}
      - {name: code, type: Int32, alternate: true, unique: true, auto: true}
      - {name: region, type: String}
records:
  - type: Country
    values: {name: France, region: Europe}
  - type: Country
    values: {name: Germany, region: Europe}
  - type: Country
    values: {name: Japan, region: Asia}
`

func writeFixture(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Chdir(dir)
	path := filepath.Join(dir, "countries.yaml")
	require.NoError(t, os.WriteFile(path, []byte(testFixture), 0o600))
	return path
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := rootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(append(args, "--log-level", "error"))
	err := cmd.Execute()
	return out.String(), err
}

func TestLoad(t *testing.T) {
	path := writeFixture(t)

	out, err := run(t, "load", path)
	require.NoError(t, err)
	assert.Contains(t, out, "Country")
	assert.Contains(t, out, "3")

	out, err = run(t, "load", path, "--metrics")
	require.NoError(t, err)
	assert.Contains(t, out, `keyregistry_registrations_total{entity_type="Country",result="registered"} 3`)
	assert.Contains(t, out, `keyregistry_entities{entity_type="Country"} 3`)
}

func TestGet(t *testing.T) {
	path := writeFixture(t)

	out, err := run(t, "get", path, "Country", "code", "2")
	require.NoError(t, err)
	assert.Contains(t, out, "Germany")

	out, err = run(t, "get", path, "Country", "region", "Europe", "--all", "--json")
	require.NoError(t, err)
	var rows []map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &rows))
	require.Len(t, rows, 2)
	assert.Equal(t, "France", rows[0]["name"])

	_, err = run(t, "get", path, "Country", "name", "Spain")
	assert.ErrorContains(t, err, "no Country with name=Spain")

	_, err = run(t, "get", path, "Country", "capital", "Paris")
	assert.ErrorContains(t, err, "unknown key name")

	_, err = run(t, "get", path, "Country", "code", "two")
	assert.ErrorContains(t, err, "invalid key type")
}

func TestDump(t *testing.T) {
	path := writeFixture(t)

	out, err := run(t, "dump", path)
	require.NoError(t, err)
	var items []map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &items))
	// three codes, three names, two regions
	require.Len(t, items, 8)
	assert.Equal(t, "Country#code", items[0]["PK"])
	assert.Equal(t, "Int32#1", items[0]["SK"])

	out, err = run(t, "dump", path, "--batches")
	require.NoError(t, err)
	assert.Contains(t, out, "batch 1: 8 put requests for keyregistry")
}

func TestVersion(t *testing.T) {
	t.Chdir(t.TempDir())

	out, err := run(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "keyregistry version")

	out, err = run(t, "version", "--format", "json")
	require.NoError(t, err)
	var info map[string]string
	require.NoError(t, json.Unmarshal([]byte(out), &info))
	assert.NotEmpty(t, info["version"])

	out, err = run(t, "version", "--format", "yaml")
	require.NoError(t, err)
	assert.Contains(t, out, "goVersion:")
}

func TestInvalidLogFormat(t *testing.T) {
	path := writeFixture(t)
	_, err := run(t, "load", path, "--log-format", "xml")
	assert.ErrorContains(t, err, "logging.format")
}
