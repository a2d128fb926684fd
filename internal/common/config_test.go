package common

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDefaultConfig(t *testing.T) {
	cfg := NewDefaultConfig()

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "localhost", cfg.Server.Host)
	assert.Equal(t, "postgres", cfg.Database.Driver)
	assert.Equal(t, 1536, cfg.OpenAI.Dimension)
	assert.Equal(t, LLMProviderOpenAI, cfg.LLM.DefaultProvider)
	assert.True(t, cfg.News.UseSampleData)
	assert.False(t, cfg.Importer.Enabled)
	assert.Equal(t, 5, cfg.RAG.MaxDocuments)
}

func TestLoadFromFiles_Override(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "cognita.toml")
	content := `
[server]
port = 9090

[database]
dbname = "vectors"

[openai]
embedding_model = "text-embedding-3-large"
dimension = 3072

[news]
use_sample_data = false
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	cfg, err := LoadFromFiles(path)
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "vectors", cfg.Database.DBName)
	assert.Equal(t, "text-embedding-3-large", cfg.OpenAI.EmbeddingModel)
	assert.Equal(t, 3072, cfg.OpenAI.Dimension)
	assert.False(t, cfg.News.UseSampleData)

	// Untouched sections keep defaults
	assert.Equal(t, "localhost", cfg.Server.Host)
	assert.Equal(t, "postgres", cfg.Database.User)
}

func TestLoadFromFiles_DurationStrings(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "cognita.toml")
	content := `
[openai]
timeout = "90s"

[news]
timeout = "2m"
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	cfg, err := LoadFromFiles(path)
	require.NoError(t, err)

	assert.Equal(t, 90*time.Second, DurationOrDefault(cfg.OpenAI.Timeout, time.Second))
	assert.Equal(t, 2*time.Minute, DurationOrDefault(cfg.News.Timeout, time.Second))
}

func TestDurationOrDefault(t *testing.T) {
	assert.Equal(t, 30*time.Second, DurationOrDefault("", 30*time.Second))
	assert.Equal(t, 30*time.Second, DurationOrDefault("not-a-duration", 30*time.Second))
	assert.Equal(t, 5*time.Minute, DurationOrDefault("5m", 30*time.Second))
}

func TestLoadFromFiles_MissingFile(t *testing.T) {
	_, err := LoadFromFiles("/nonexistent/cognita.toml")
	assert.Error(t, err)
}

func TestApplyEnvOverrides(t *testing.T) {
	t.Setenv("COGNITA_SERVER_PORT", "7070")
	t.Setenv("COGNITA_DB_HOST", "db.internal")
	t.Setenv("OPENAI_API_KEY", "sk-test")
	t.Setenv("COGNITA_USE_SAMPLE_DATA", "false")

	cfg, err := LoadFromFiles()
	require.NoError(t, err)

	assert.Equal(t, 7070, cfg.Server.Port)
	assert.Equal(t, "db.internal", cfg.Database.Host)
	assert.Equal(t, "sk-test", cfg.OpenAI.APIKey)
	assert.False(t, cfg.News.UseSampleData)
}

func TestApplyFlagOverrides(t *testing.T) {
	cfg := NewDefaultConfig()

	ApplyFlagOverrides(cfg, 6060, "0.0.0.0")
	assert.Equal(t, 6060, cfg.Server.Port)
	assert.Equal(t, "0.0.0.0", cfg.Server.Host)

	// Zero values leave config untouched
	ApplyFlagOverrides(cfg, 0, "")
	assert.Equal(t, 6060, cfg.Server.Port)
	assert.Equal(t, "0.0.0.0", cfg.Server.Host)
}

func TestConnString(t *testing.T) {
	cfg := NewDefaultConfig()
	got := cfg.Database.ConnString()
	assert.Equal(t, "host=localhost port=5432 user=postgres password=postgres dbname=cognita sslmode=disable", got)
}
