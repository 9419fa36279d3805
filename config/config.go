package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/goccy/go-yaml"
	"github.com/joho/godotenv"
)

const DefaultPath = "abcdex.yaml"

var ErrInvalid = errors.New("invalid config")

type Dynamo struct {
	Endpoint string `yaml:"endpoint"`
	Region   string `yaml:"region"`
	Table    string `yaml:"table"`
}

// Config holds the settings shared by the CLI commands and the server
type Config struct {
	// IndexPath is where the catalog is written and read.
	IndexPath string `yaml:"index_path"`
	// LibraryPath is the directory of .abc files to index.
	LibraryPath string `yaml:"library_path"`
	Addr        string `yaml:"addr"`
	OctaveBase  int    `yaml:"octave_base"`
	LogLevel    string `yaml:"log_level"`
	Dynamo      Dynamo `yaml:"dynamo"`
}

func Default() *Config {
	return &Config{
		IndexPath:  "./out",
		Addr:       ":8080",
		OctaveBase: 4,
		LogLevel:   "info",
		Dynamo: Dynamo{
			Endpoint: "http://localhost:8000",
			Region:   "localhost",
			Table:    "abcdex-tunes",
		},
	}
}

// Load layers the defaults, the YAML file at path, a .env file and then
// ABCDEX_* environment variables. A missing file at DefaultPath is fine;
// any other missing path is an error.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		path = DefaultPath
	}

	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, fs.ErrNotExist) && path == DefaultPath:
	case err != nil:
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	default:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("%w: %s: %w", ErrInvalid, path, err)
		}
	}

	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("loading .env: %w", err)
	}
	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	return cfg, cfg.Validate()
}

func (c *Config) applyEnv() error {
	c.IndexPath = getEnv("ABCDEX_INDEX_PATH", c.IndexPath)
	c.LibraryPath = getEnv("ABCDEX_LIBRARY_PATH", c.LibraryPath)
	c.Addr = getEnv("ABCDEX_ADDR", c.Addr)
	c.LogLevel = getEnv("ABCDEX_LOG_LEVEL", c.LogLevel)
	c.Dynamo.Endpoint = getEnv("ABCDEX_DYNAMO_ENDPOINT", c.Dynamo.Endpoint)
	c.Dynamo.Region = getEnv("ABCDEX_DYNAMO_REGION", c.Dynamo.Region)
	c.Dynamo.Table = getEnv("ABCDEX_DYNAMO_TABLE", c.Dynamo.Table)
	if v := os.Getenv("ABCDEX_OCTAVE_BASE"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%w: ABCDEX_OCTAVE_BASE %q", ErrInvalid, v)
		}
		c.OctaveBase = n
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value != "" {
		return value
	}
	return defaultValue
}

var logLevels = []string{"debug", "info", "warn", "error"}

func (c *Config) Validate() error {
	level := strings.ToLower(c.LogLevel)
	valid := false
	for _, l := range logLevels {
		valid = valid || l == level
	}
	if !valid {
		return fmt.Errorf("%w: log level %q, want one of %s", ErrInvalid, c.LogLevel, strings.Join(logLevels, ", "))
	}
	if strings.TrimSpace(c.Addr) == "" {
		return fmt.Errorf("%w: empty addr", ErrInvalid)
	}
	if c.IndexPath == "" {
		return fmt.Errorf("%w: empty index_path", ErrInvalid)
	}
	return nil
}

// YAML renders the config as it would be written to a file.
func (c *Config) YAML() ([]byte, error) {
	return yaml.Marshal(c)
}
