package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeCSV(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "entities.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	return path
}

func TestLoadEntitiesFromCSV(t *testing.T) {
	path := writeCSV(t, "address,name,discovered_by\n0xABC,Alice,scanner\n0xDEF,Bob,manual\n")

	ents, err := loadEntitiesFromCSV(path, "ethereum", []map[string]interface{}{{"role": "deployer"}}, nil)
	require.NoError(t, err)
	require.Len(t, ents, 2)

	assert.Equal(t, "0xABC", ents[0].Address)
	assert.Equal(t, "Alice", ents[0].Name)
	assert.Equal(t, "ethereum", ents[0].Blockchain)
	assert.Equal(t, []map[string]interface{}{{"role": "deployer"}}, ents[0].RequiredFields)
	assert.Equal(t, map[string]interface{}{"discovered_by": "scanner"}, ents[0].Extra)

	assert.Equal(t, "0xDEF", ents[1].Address)
	assert.Equal(t, "Bob", ents[1].Name)
}

func TestLoadEntitiesFromCSVBlockchainFlagWins(t *testing.T) {
	path := writeCSV(t, "address,name,blockchain\n0xABC,Alice,polygon\n")

	ents, err := loadEntitiesFromCSV(path, "ethereum", nil, nil)
	require.NoError(t, err)
	require.Len(t, ents, 1)

	assert.Equal(t, "ethereum", ents[0].Blockchain)
	assert.NotContains(t, ents[0].Extra, "blockchain")
}

func TestLoadEntitiesFromCSVSecondaryFields(t *testing.T) {
	path := writeCSV(t, "address,name\n0xABC,Alice\n")

	ents, err := loadEntitiesFromCSV(path, "ethereum", nil, map[string]interface{}{"source": "airdrop"})
	require.NoError(t, err)
	require.Len(t, ents, 1)

	assert.Equal(t, "airdrop", ents[0].Extra["source"])
}

func TestLoadEntitiesFromCSVEmptyFile(t *testing.T) {
	path := writeCSV(t, "")

	_, err := loadEntitiesFromCSV(path, "ethereum", nil, nil)
	assert.Error(t, err)
}

func TestLoadEntitiesFromCSVMissingFile(t *testing.T) {
	_, err := loadEntitiesFromCSV(filepath.Join(t.TempDir(), "nope.csv"), "ethereum", nil, nil)
	assert.Error(t, err)
}

func TestParseJSONFields(t *testing.T) {
	fields, err := parseJSONFields([]string{`{"role": "deployer"}`, `{"network": "mainnet"}`})
	require.NoError(t, err)
	assert.Equal(t, []map[string]interface{}{
		{"role": "deployer"},
		{"network": "mainnet"},
	}, fields)

	_, err = parseJSONFields([]string{"not json"})
	assert.Error(t, err)
}

func TestFlattenFields(t *testing.T) {
	flat := flattenFields([]map[string]interface{}{
		{"a": 1.0},
		{"b": "two", "c": true},
	})

	assert.Equal(t, map[string]interface{}{"a": 1.0, "b": "two", "c": true}, flat)
}
