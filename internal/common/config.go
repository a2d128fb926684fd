package common

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/pelletier/go-toml/v2"
)

// Config represents the application configuration
type Config struct {
	Environment string         `toml:"environment"` // "development" or "production"
	Server      ServerConfig   `toml:"server"`
	Logging     LoggingConfig  `toml:"logging"`
	Database    DatabaseConfig `toml:"database"`
	OpenAI      OpenAIConfig   `toml:"openai"`
	Claude      ClaudeConfig   `toml:"claude"`
	LLM         LLMConfig      `toml:"llm"`
	News        NewsConfig     `toml:"news"`
	RAG         RAGConfig      `toml:"rag"`
	Importer    ImporterConfig `toml:"importer"`
}

type ServerConfig struct {
	Port int    `toml:"port"`
	Host string `toml:"host"`
}

type LoggingConfig struct {
	Level  string   `toml:"level"`  // "debug", "info", "warn", "error"
	Output []string `toml:"output"` // "stdout", "file"
}

// DatabaseConfig holds the document store connection settings.
// Driver "postgres" uses a pgx connection pool; "memory" selects the
// in-process store (no persistence, useful for development and tests).
type DatabaseConfig struct {
	Driver   string `toml:"driver"`
	Host     string `toml:"host"`
	Port     int    `toml:"port"`
	User     string `toml:"user"`
	Password string `toml:"password"`
	DBName   string `toml:"dbname"`
	SSLMode  string `toml:"sslmode"`
	MaxConns int    `toml:"max_conns"` // Connection pool size
}

// ConnString builds a pgx-compatible connection string
func (d DatabaseConfig) ConnString() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode)
}

// OpenAIConfig contains OpenAI API configuration for embeddings and completions
type OpenAIConfig struct {
	APIKey          string `toml:"api_key"`
	BaseURL         string `toml:"base_url"`
	EmbeddingModel  string `toml:"embedding_model"`
	CompletionModel string `toml:"completion_model"`
	Dimension       int    `toml:"dimension"` // Must match the vector column dimension exactly
	Timeout         string `toml:"timeout"`   // Duration string, e.g. "60s"
}

// ClaudeConfig contains Anthropic Claude API configuration
type ClaudeConfig struct {
	APIKey    string `toml:"api_key"`
	BaseURL   string `toml:"base_url"` // Empty uses the SDK default endpoint
	Model     string `toml:"model"`
	MaxTokens int    `toml:"max_tokens"`
}

// LLMProvider represents the completion provider type
type LLMProvider string

const (
	// LLMProviderOpenAI uses the OpenAI chat completions API
	LLMProviderOpenAI LLMProvider = "openai"
	// LLMProviderClaude uses the Anthropic Claude API
	LLMProviderClaude LLMProvider = "claude"
)

// LLMConfig selects the completion provider for RAG answers
type LLMConfig struct {
	DefaultProvider LLMProvider `toml:"default_provider"` // "openai" or "claude"
}

// NewsConfig contains the news source configuration. With UseSampleData set,
// or with no API key configured, the deterministic sample source is used.
type NewsConfig struct {
	APIKey        string `toml:"api_key"`
	BaseURL       string `toml:"base_url"`
	UseSampleData bool   `toml:"use_sample_data"`
	Timeout       string `toml:"timeout"`    // Duration string, e.g. "30s"
	RateLimit     int    `toml:"rate_limit"` // Requests per second to the live API
}

// RAGConfig contains retrieval defaults for the RAG composer
type RAGConfig struct {
	MaxDocuments  int     `toml:"max_documents"`
	MinSimilarity float64 `toml:"min_similarity"`
}

// ImporterConfig configures the optional scheduled news import
type ImporterConfig struct {
	Enabled  bool   `toml:"enabled"`
	Schedule string `toml:"schedule"` // Cron format
	Query    string `toml:"query"`
	Category string `toml:"category"`
	Limit    int    `toml:"limit"`
}

// NewDefaultConfig creates a configuration with default values.
// Only user-facing settings should be exposed in cognita.toml.
func NewDefaultConfig() *Config {
	return &Config{
		Environment: "development",
		Server: ServerConfig{
			Port: 8080,
			Host: "localhost",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Output: []string{"stdout", "file"},
		},
		Database: DatabaseConfig{
			Driver:   "postgres",
			Host:     "localhost",
			Port:     5432,
			User:     "postgres",
			Password: "postgres",
			DBName:   "cognita",
			SSLMode:  "disable",
			MaxConns: 10,
		},
		OpenAI: OpenAIConfig{
			APIKey:          "", // User must provide API key (OPENAI_API_KEY or config)
			BaseURL:         "https://api.openai.com/v1",
			EmbeddingModel:  "text-embedding-3-small",
			CompletionModel: "gpt-4o-mini",
			Dimension:       1536,
			Timeout:         "60s",
		},
		Claude: ClaudeConfig{
			APIKey:    "",
			Model:     "claude-haiku-3-5-20241022",
			MaxTokens: 2048,
		},
		LLM: LLMConfig{
			DefaultProvider: LLMProviderOpenAI,
		},
		News: NewsConfig{
			APIKey:        "",
			BaseURL:       "https://api.newsprovider.example/v1",
			UseSampleData: true, // Sample data until a live credential is configured
			Timeout:       "30s",
			RateLimit:     5,
		},
		RAG: RAGConfig{
			MaxDocuments:  5,
			MinSimilarity: 0,
		},
		Importer: ImporterConfig{
			Enabled:  false, // Disabled by default - user must explicitly opt-in
			Schedule: "0 0 */6 * * *",
			Limit:    10,
		},
	}
}

// LoadFromFiles loads configuration from files with priority:
// defaults -> file1 -> file2 -> ... -> env. Later files override earlier ones.
func LoadFromFiles(paths ...string) (*Config, error) {
	config := NewDefaultConfig()

	for i, path := range paths {
		if path == "" {
			continue
		}

		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}

		if err := toml.Unmarshal(data, config); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s (file %d of %d): %w", path, i+1, len(paths), err)
		}
	}

	applyEnvOverrides(config)

	return config, nil
}

// applyEnvOverrides applies environment variable overrides to config
func applyEnvOverrides(config *Config) {
	if env := os.Getenv("COGNITA_ENV"); env != "" {
		config.Environment = env
	} else if env := os.Getenv("GO_ENV"); env != "" {
		config.Environment = env
	}

	// Server configuration
	if port := os.Getenv("COGNITA_SERVER_PORT"); port != "" {
		if p, err := strconv.Atoi(port); err == nil {
			config.Server.Port = p
		}
	}
	if host := os.Getenv("COGNITA_SERVER_HOST"); host != "" {
		config.Server.Host = host
	}

	// Database configuration
	if host := os.Getenv("COGNITA_DB_HOST"); host != "" {
		config.Database.Host = host
	}
	if port := os.Getenv("COGNITA_DB_PORT"); port != "" {
		if p, err := strconv.Atoi(port); err == nil {
			config.Database.Port = p
		}
	}
	if user := os.Getenv("COGNITA_DB_USER"); user != "" {
		config.Database.User = user
	}
	if password := os.Getenv("COGNITA_DB_PASSWORD"); password != "" {
		config.Database.Password = password
	}
	if name := os.Getenv("COGNITA_DB_NAME"); name != "" {
		config.Database.DBName = name
	}

	// Credentials use the provider's conventional variable names
	if key := os.Getenv("OPENAI_API_KEY"); key != "" {
		config.OpenAI.APIKey = key
	}
	if key := os.Getenv("ANTHROPIC_API_KEY"); key != "" {
		config.Claude.APIKey = key
	}
	if key := os.Getenv("NEWS_API_KEY"); key != "" {
		config.News.APIKey = key
	}
	if use := os.Getenv("COGNITA_USE_SAMPLE_DATA"); use != "" {
		if b, err := strconv.ParseBool(use); err == nil {
			config.News.UseSampleData = b
		}
	}

	if level := os.Getenv("COGNITA_LOG_LEVEL"); level != "" {
		config.Logging.Level = level
	}
}

// DurationOrDefault parses a duration string from configuration, falling
// back to def when the value is empty or malformed.
func DurationOrDefault(value string, def time.Duration) time.Duration {
	if value == "" {
		return def
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return def
	}
	return d
}

// ApplyFlagOverrides applies command-line flag overrides (highest priority)
func ApplyFlagOverrides(config *Config, port int, host string) {
	if port != 0 {
		config.Server.Port = port
	}
	if host != "" {
		config.Server.Host = host
	}
}
