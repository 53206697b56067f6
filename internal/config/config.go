// Package config loads CLI defaults from YAML files.
//
// Priority: defaults < user config < project config < environment < flags.
// Flags are applied by the commands themselves.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/evtclog/evtc-go/internal/logfinder"
	"github.com/evtclog/evtc-go/pkg/evtc/kind"
)

// ProjectFile is the per-directory config file name.
const ProjectFile = ".evtc.yaml"

// Output formats.
const (
	FormatJSONL  = "jsonl"
	FormatPretty = "pretty"
)

// Config holds CLI defaults.
type Config struct {
	// LogDir is the ArcDPS log directory. Empty means auto-detect.
	LogDir string `yaml:"log_dir,omitempty"`

	// Format is the output format, jsonl or pretty.
	Format string `yaml:"format"`

	// Workers bounds concurrent file processing in dump.
	Workers int `yaml:"workers"`

	// Debounce is how long watch waits for a log file to settle.
	Debounce time.Duration `yaml:"debounce"`

	IncludeTypes []string `yaml:"include_types,omitempty"`
	ExcludeTypes []string `yaml:"exclude_types,omitempty"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Format:   FormatJSONL,
		Workers:  runtime.NumCPU(),
		Debounce: 2 * time.Second,
	}
}

// UserFile returns the per-user config path,
// $XDG_CONFIG_HOME/evtc/config.yaml or the OS equivalent.
func UserFile() string {
	dir := os.Getenv("XDG_CONFIG_HOME")
	if dir == "" {
		var err error
		if dir, err = os.UserConfigDir(); err != nil {
			return ""
		}
	}
	return filepath.Join(dir, "evtc", "config.yaml")
}

// Load reads the config file at path on top of the defaults.
// Unlike LoadDefault, a missing file is an error.
func Load(path string) (*Config, error) {
	cfg := Default()
	if err := cfg.mergeFile(path); err != nil {
		return nil, err
	}
	cfg.applyEnv()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// LoadDefault reads the user config, then ./.evtc.yaml. Later files
// override earlier ones field by field; missing files are skipped.
func LoadDefault() (*Config, error) {
	cfg := Default()
	for _, path := range []string{UserFile(), ProjectFile} {
		if path == "" {
			continue
		}
		if err := cfg.mergeFile(path); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return nil, err
		}
	}
	cfg.applyEnv()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// mergeFile decodes path into c. Keys absent from the file keep their
// current values.
func (c *Config) mergeFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(c); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("parsing %s: %w", path, err)
	}
	return nil
}

func (c *Config) applyEnv() {
	if dir := os.Getenv(logfinder.EnvLogDir); dir != "" {
		c.LogDir = dir
	}
}

// Validate checks field values.
func (c *Config) Validate() error {
	switch c.Format {
	case FormatJSONL, FormatPretty:
	default:
		return fmt.Errorf("invalid format %q (must be %s or %s)", c.Format, FormatJSONL, FormatPretty)
	}
	if c.Workers < 1 {
		return fmt.Errorf("workers must be at least 1, got %d", c.Workers)
	}
	if c.Debounce < 0 {
		return fmt.Errorf("debounce must be non-negative, got %v", c.Debounce)
	}
	for _, name := range append(append([]string(nil), c.IncludeTypes...), c.ExcludeTypes...) {
		if _, ok := kind.ParseType(name); !ok {
			return fmt.Errorf("unknown event type %q", name)
		}
	}
	return nil
}

// Save writes c to path as YAML, creating parent directories.
func (c *Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}
