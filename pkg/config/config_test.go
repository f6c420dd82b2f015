package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMapConfig(t *testing.T) {
	c := NewMapConfig(map[string]string{
		"JOURNAL_API_URL": "https://spire.example.com",
		"ENTITY_PORT":     "9000",
	})

	assert.Equal(t, "https://spire.example.com", c.GetKey("JOURNAL_API_URL"))
	assert.Equal(t, "https://spire.example.com", c.MustGetKey("JOURNAL_API_URL"))
	assert.Equal(t, "", c.GetKey("NO_SUCH_KEY"))
	assert.Equal(t, "fallback", c.GetKeyWithDefault("NO_SUCH_KEY", "fallback"))

	assert.Equal(t, 9000, c.GetIntKey("ENTITY_PORT"))
	assert.Equal(t, 9000, c.MustGetIntKey("ENTITY_PORT"))
	assert.Equal(t, 10, c.GetIntKeyWithDefault("NO_SUCH_KEY", 10))
	assert.Equal(t, 0, c.GetIntKey("JOURNAL_API_URL"))

	assert.Error(t, c.LoadFromPath("somewhere"))
	assert.NoError(t, c.Load())
}

func TestDotenvConfigLoadWithoutPath(t *testing.T) {
	c := NewDotenvConfig("")
	assert.NoError(t, c.Load())
}

func TestDotenvConfigLoadsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.env")
	require.NoError(t, os.WriteFile(path, []byte("ENTITY_TEST_DOTENV_KEY=loaded\n"), 0o644))
	t.Cleanup(func() { os.Unsetenv("ENTITY_TEST_DOTENV_KEY") })

	c := NewDotenvConfig(path)
	require.NoError(t, c.Load())

	assert.Equal(t, "loaded", c.GetKey("ENTITY_TEST_DOTENV_KEY"))
	assert.Equal(t, "fallback", c.GetKeyWithDefault("ENTITY_TEST_DOTENV_MISSING", "fallback"))
}

func TestPackageLevelConfiger(t *testing.T) {
	original := GetConfig()
	t.Cleanup(func() { SetConfig(original) })

	SetConfig(NewMapConfig(map[string]string{"ENTITY_REQUEST_TIMEOUT": "30"}))

	assert.Equal(t, "30", GetKey("ENTITY_REQUEST_TIMEOUT"))
	assert.Equal(t, 30, GetIntKey("ENTITY_REQUEST_TIMEOUT"))
	assert.Equal(t, 10, GetIntKeyWithDefault("ENTITY_MISSING", 10))
}
