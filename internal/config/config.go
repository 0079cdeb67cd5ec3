package config

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"runtime"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config holds the lawdex API configuration.
type Config struct {
	HTTP      HTTPConfig      `yaml:"http"`
	Artifacts ArtifactsConfig `yaml:"artifacts"`
	Retrieval RetrievalConfig `yaml:"retrieval"`
	Embedding EmbeddingConfig `yaml:"embedding"`
	Cache     CacheConfig     `yaml:"cache"`
	Auth      AuthConfig      `yaml:"auth"`
	Logging   LoggingConfig   `yaml:"logging"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error (default: determined by env)
}

// AuthConfig holds API authentication settings.
type AuthConfig struct {
	APIKeys []string `yaml:"api_keys"`
}

// HTTPConfig holds HTTP server settings.
type HTTPConfig struct {
	Port            int `yaml:"port"`
	ReadTimeoutSec  int `yaml:"read_timeout_sec"`
	WriteTimeoutSec int `yaml:"write_timeout_sec"`
	ShutdownSec     int `yaml:"shutdown_timeout_sec"`
}

// ArtifactsConfig names the immutable snapshot files the retrieval
// subsystems load at startup.
type ArtifactsConfig struct {
	// BaseDir resolves relative artifact paths; defaults to the working directory.
	BaseDir string `yaml:"base_dir"`
	// StatuteCorpus is the preprocessed statute corpus (JSON array or JSONL).
	StatuteCorpus string `yaml:"statute_corpus"`
	// StatuteMeta optionally names a legacy metadata file merged row-wise.
	StatuteMeta string `yaml:"statute_meta"`
	// CaseIndexDir holds vectors.bin, ids.json, meta.jsonl and model.json.
	CaseIndexDir string `yaml:"case_index_dir"`
	// CaseDetails is the parquet detail table keyed by case serial number.
	CaseDetails string `yaml:"case_details"`
}

// RetrievalConfig holds scoring pipeline tunables.
type RetrievalConfig struct {
	// MaxFeatures caps the TF-IDF vocabulary.
	MaxFeatures int `yaml:"max_features"`
	// Overfetch is the case search candidate multiplier.
	Overfetch int `yaml:"overfetch"`
	// SummaryChars is the smart summary character budget.
	SummaryChars int `yaml:"summary_chars"`
}

// EmbeddingConfig holds embedding provider settings.
type EmbeddingConfig struct {
	APIKey  string `yaml:"api_key"`
	BaseURL string `yaml:"base_url"`
	// FallbackModel is used when the index directory carries no model.json.
	FallbackModel string `yaml:"fallback_model"`
	Dimensions    int    `yaml:"dimensions"`
	Provider      string `yaml:"provider"`
}

// CacheConfig holds the optional Redis embedding cache settings.
// Empty addrs disable the cache entirely.
type CacheConfig struct {
	Addrs            []string `yaml:"addrs"`
	Password         string   `yaml:"password"`
	ReadinessTimeout int      `yaml:"readiness_timeout_sec"`
}

// Load reads configuration from a YAML file by environment name (local, dev, prod).
func Load(env string) (Config, error) {
	configPath := findConfigPath(env)

	data, err := os.ReadFile(filepath.Clean(configPath))
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config %s: %w", configPath, err)
	}

	// Substitute env variables of the form ${VAR}
	data = expandEnvVars(data)

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse config: %w", err)
	}

	cfg.ApplyDefaults()

	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// GetEnv returns the current environment from the ENV variable, defaulting to "local".
func GetEnv() string {
	if env := os.Getenv("ENV"); env != "" {
		return env
	}
	return "local"
}

// ApplyDefaults fills empty fields with default values.
func (c *Config) ApplyDefaults() {
	if c.HTTP.ReadTimeoutSec <= 0 {
		c.HTTP.ReadTimeoutSec = 10
	}
	if c.HTTP.WriteTimeoutSec <= 0 {
		c.HTTP.WriteTimeoutSec = 10
	}
	if c.HTTP.ShutdownSec <= 0 {
		c.HTTP.ShutdownSec = 10
	}
	if c.Artifacts.BaseDir == "" {
		c.Artifacts.BaseDir = "."
	}
	if c.Retrieval.MaxFeatures <= 0 {
		c.Retrieval.MaxFeatures = 140_000
	}
	if c.Retrieval.Overfetch <= 0 {
		c.Retrieval.Overfetch = 10
	}
	if c.Retrieval.SummaryChars <= 0 {
		c.Retrieval.SummaryChars = 700
	}
	if c.Embedding.FallbackModel == "" {
		c.Embedding.FallbackModel = "jhgan/ko-sroberta-multitask"
	}
	if c.Embedding.Provider == "" {
		c.Embedding.Provider = "openai"
	}
	if c.Cache.ReadinessTimeout <= 0 {
		c.Cache.ReadinessTimeout = 10
	}
}

// Validate checks the configuration for correctness.
func (c *Config) Validate() error {
	if c.HTTP.Port <= 0 || c.HTTP.Port > 65535 {
		return fmt.Errorf("http.port must be between 1 and 65535, got %d", c.HTTP.Port)
	}
	if c.Artifacts.StatuteCorpus == "" {
		return fmt.Errorf("artifacts.statute_corpus is required")
	}
	if c.Artifacts.CaseIndexDir == "" {
		return fmt.Errorf("artifacts.case_index_dir is required")
	}
	return nil
}

// findConfigPath locates the config file.
func findConfigPath(env string) string {
	filename := fmt.Sprintf("%s.yaml", env)

	// 1. Check ./config/
	if path := filepath.Join("config", filename); fileExists(path) {
		return path
	}

	// 2. Check relative to the source file
	_, b, _, _ := runtime.Caller(0)
	projectRoot := filepath.Dir(filepath.Dir(filepath.Dir(b))) // internal/config -> project root
	if path := filepath.Join(projectRoot, "config", filename); fileExists(path) {
		return path
	}

	// 3. Fallback to ./config/
	return filepath.Join("config", filename)
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// expandEnvVars replaces ${VAR} and ${VAR:-default} with environment variable values.
var envVarRegex = regexp.MustCompile(`\$\{([^}]+)\}`)

func expandEnvVars(data []byte) []byte {
	return envVarRegex.ReplaceAllFunc(data, func(match []byte) []byte {
		expr := string(match[2 : len(match)-1]) // strip ${ and }
		varName, defaultVal, hasDefault := strings.Cut(expr, ":-")
		val := os.Getenv(varName)
		if val == "" && hasDefault {
			val = defaultVal
		}
		return []byte(val)
	})
}
