package config

import (
	"encoding/json"
	stderrors "errors"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/vango-dev/hyper/internal/errors"
)

const (
	// ConfigFileName is the name of the configuration file.
	ConfigFileName = "hyper.json"

	// DefaultPort is the default live server port.
	DefaultPort = 3000

	// DefaultHost is the default live server host.
	DefaultHost = "localhost"

	// DefaultIndent is the indent used by pretty rendering.
	DefaultIndent = "  "

	// DefaultPublishDir is the default output directory for rendered pages.
	DefaultPublishDir = "public"

	// DefaultMetricsPath is where the live server exposes Prometheus metrics.
	DefaultMetricsPath = "/metrics"
)

// Config represents the complete hyper.json configuration.
type Config struct {
	// Render controls the string driver.
	Render RenderConfig `json:"render,omitempty"`

	// Serve contains live server configuration.
	Serve ServeConfig `json:"serve,omitempty"`

	// Publish selects where rendered documents are written.
	Publish PublishConfig `json:"publish,omitempty"`

	// Log configures the process logger.
	Log LogConfig `json:"log,omitempty"`

	configPath string
}

// RenderConfig mirrors render.Config.
type RenderConfig struct {
	Pretty bool   `json:"pretty,omitempty"`
	Indent string `json:"indent,omitempty"`
}

// ServeConfig contains live server configuration.
type ServeConfig struct {
	Host string `json:"host,omitempty"`
	Port int    `json:"port,omitempty"`

	// Metrics is the Prometheus endpoint path. "-" disables it.
	Metrics string `json:"metrics,omitempty"`

	// Tracing enables an OpenTelemetry span per frame.
	Tracing bool `json:"tracing,omitempty"`
}

// PublishConfig selects the publish target. A non-empty Bucket wins over Dir.
type PublishConfig struct {
	Dir string `json:"dir,omitempty"`

	Bucket    string `json:"bucket,omitempty"`
	Prefix    string `json:"prefix,omitempty"`
	Region    string `json:"region,omitempty"`
	Endpoint  string `json:"endpoint,omitempty"`
	PathStyle bool   `json:"pathStyle,omitempty"`
}

// LogConfig configures the slog handler.
type LogConfig struct {
	// Level is one of debug, info, warn, error.
	Level string `json:"level,omitempty"`

	// Format is text or json.
	Format string `json:"format,omitempty"`
}

// New creates a new Config with default values.
func New() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

// Load loads hyper.json from dir.
func Load(dir string) (*Config, error) {
	return LoadFile(filepath.Join(dir, ConfigFileName))
}

// LoadFile loads configuration from a specific file path.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.New("H101").
				WithDetail("No " + ConfigFileName + " found in " + filepath.Dir(path)).
				WithSuggestion("Create " + ConfigFileName + " or pass settings as flags")
		}
		return nil, errors.New("H100").Wrap(err)
	}

	cfg := &Config{}
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, errors.New("H100").
			WithDetail("Failed to parse " + path + ": " + err.Error()).
			WithSuggestion("Check that " + ConfigFileName + " is valid JSON")
	}

	cfg.configPath = path
	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Save writes the configuration to the file it was loaded from.
func (c *Config) Save() error {
	if c.configPath == "" {
		return errors.Newf(errors.CategoryConfig, "no config path set")
	}
	return c.SaveTo(c.configPath)
}

// SaveTo writes the configuration to the specified path.
func (c *Config) SaveTo(path string) error {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return errors.New("H100").Wrap(err)
	}
	data = append(data, '\n')

	if err := os.WriteFile(path, data, 0644); err != nil {
		return errors.New("H100").Wrap(err)
	}

	c.configPath = path
	return nil
}

// Path returns the path where the config was loaded from.
func (c *Config) Path() string {
	return c.configPath
}

// Dir returns the directory containing the config file.
func (c *Config) Dir() string {
	if c.configPath == "" {
		return ""
	}
	return filepath.Dir(c.configPath)
}

func (c *Config) applyDefaults() {
	if c.Render.Indent == "" {
		c.Render.Indent = DefaultIndent
	}

	if c.Serve.Host == "" {
		c.Serve.Host = DefaultHost
	}
	if c.Serve.Port == 0 {
		c.Serve.Port = DefaultPort
	}
	if c.Serve.Metrics == "" {
		c.Serve.Metrics = DefaultMetricsPath
	}

	if c.Publish.Dir == "" {
		c.Publish.Dir = DefaultPublishDir
	}

	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Log.Format == "" {
		c.Log.Format = "text"
	}
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.Serve.Port < 0 || c.Serve.Port > 65535 {
		return errors.New("H102").
			WithToken("serve.port").
			WithDetail("Port must be between 0 and 65535")
	}
	if c.Serve.Metrics != "-" && !strings.HasPrefix(c.Serve.Metrics, "/") {
		return errors.New("H102").
			WithToken("serve.metrics").
			WithDetail("Metrics path must start with /").
			WithSuggestion(`Use "-" to disable the metrics endpoint`)
	}
	if _, ok := parseLevel(c.Log.Level); !ok {
		return errors.New("H102").
			WithToken("log.level").
			WithDetail("Level must be one of debug, info, warn, error")
	}
	if c.Log.Format != "text" && c.Log.Format != "json" {
		return errors.New("H102").
			WithToken("log.format").
			WithDetail("Format must be text or json")
	}
	return nil
}

// Address returns the host:port the live server listens on.
func (c *Config) Address() string {
	return c.Serve.Host + ":" + strconv.Itoa(c.Serve.Port)
}

// MetricsEnabled reports whether the metrics endpoint is mounted.
func (c *Config) MetricsEnabled() bool {
	return c.Serve.Metrics != "-"
}

// PublishPath returns the absolute path to the publish directory.
func (c *Config) PublishPath() string {
	if filepath.IsAbs(c.Publish.Dir) {
		return c.Publish.Dir
	}
	return filepath.Join(c.Dir(), c.Publish.Dir)
}

// Logger builds a slog.Logger writing to stderr per the Log section.
func (c *Config) Logger() *slog.Logger {
	level, _ := parseLevel(c.Log.Level)
	opts := &slog.HandlerOptions{Level: level}
	if c.Log.Format == "json" {
		return slog.New(slog.NewJSONHandler(os.Stderr, opts))
	}
	return slog.New(slog.NewTextHandler(os.Stderr, opts))
}

func parseLevel(s string) (slog.Level, bool) {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug, true
	case "info", "":
		return slog.LevelInfo, true
	case "warn", "warning":
		return slog.LevelWarn, true
	case "error":
		return slog.LevelError, true
	}
	return slog.LevelInfo, false
}

// Exists checks if a config file exists in the given directory.
func Exists(dir string) bool {
	_, err := os.Stat(filepath.Join(dir, ConfigFileName))
	return err == nil
}

// FindProjectRoot walks up directories to find the project root.
// Returns the directory containing hyper.json, or an error if not found.
func FindProjectRoot(startDir string) (string, error) {
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", err
	}

	for {
		if Exists(dir) {
			return dir, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", errors.New("H101").
				WithDetail("No " + ConfigFileName + " found in " + startDir + " or any parent directory")
		}
		dir = parent
	}
}

// LoadFromWorkingDir loads hyper.json from the working directory or one of
// its parents. When none exists the defaults are returned.
func LoadFromWorkingDir() (*Config, error) {
	wd, err := os.Getwd()
	if err != nil {
		return nil, err
	}

	root, err := FindProjectRoot(wd)
	if err != nil {
		var he *errors.Error
		if stderrors.As(err, &he) && he.Code == "H101" {
			return New(), nil
		}
		return nil, err
	}

	return Load(root)
}
