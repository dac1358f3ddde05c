package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Defaults applied by Load when neither the file nor the environment sets a
// value.
const (
	DefaultPattern = "**/*.asp"
	DefaultOutput  = "out.txt"
	DefaultFormat  = "dot"
	DefaultWorkers = 1
)

// ProjectConfig holds settings loaded from asptree.yml in the scan root.
type ProjectConfig struct {
	Pattern string   `yaml:"pattern,omitempty"`
	Exclude []string `yaml:"exclude,omitempty"`
	Output  string   `yaml:"output,omitempty"`
	Format  string   `yaml:"format,omitempty"`
	Workers int      `yaml:"workers,omitempty"`
	Verbose bool     `yaml:"verbose,omitempty"`
	DBPath  string   `yaml:"dbPath,omitempty"`
}

// Load reads asptree.yml or asptree.yaml from dir, applies environment
// overrides, then fills defaults. A missing config file is not an error.
//
// A .env file in the working directory is loaded first if present; variables
// already set in the environment take precedence over it.
func Load(dir string) (*ProjectConfig, error) {
	_ = godotenv.Load()

	cfg, err := loadFile(dir)
	if err != nil {
		return nil, err
	}
	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	cfg.applyDefaults()
	return cfg, nil
}

func loadFile(dir string) (*ProjectConfig, error) {
	for _, name := range []string{"asptree.yml", "asptree.yaml"} {
		path := filepath.Join(dir, name)
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		var cfg ProjectConfig
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("parse %s: %w", name, err)
		}
		return &cfg, nil
	}
	return &ProjectConfig{}, nil
}

func (c *ProjectConfig) applyEnv() error {
	if v := strings.TrimSpace(os.Getenv("ASPTREE_OUTPUT")); v != "" {
		c.Output = v
	}
	if v := strings.TrimSpace(os.Getenv("ASPTREE_FORMAT")); v != "" {
		c.Format = v
	}
	if v := strings.TrimSpace(os.Getenv("ASPTREE_DB")); v != "" {
		c.DBPath = v
	}
	if v := strings.TrimSpace(os.Getenv("ASPTREE_WORKERS")); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("ASPTREE_WORKERS: %w", err)
		}
		c.Workers = n
	}
	return nil
}

func (c *ProjectConfig) applyDefaults() {
	if c.Pattern == "" {
		c.Pattern = DefaultPattern
	}
	if c.Output == "" {
		c.Output = DefaultOutput
	}
	if c.Format == "" {
		c.Format = DefaultFormat
	}
	if c.Workers <= 0 {
		c.Workers = DefaultWorkers
	}
}
