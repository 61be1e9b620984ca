// Package config loads the optional report configuration file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/UnitVectorY-Labs/releasereadiness/internal/report"
	"github.com/UnitVectorY-Labs/releasereadiness/internal/shield"
)

const DefaultConfigFile = ".readiness.yml"

// Config is the top-level report configuration.
type Config struct {
	Owner        string       `yaml:"owner" toml:"owner"`
	Title        string       `yaml:"title" toml:"title"`
	Repositories []string     `yaml:"repositories" toml:"repositories"`
	Hosts        HostsConfig  `yaml:"hosts" toml:"hosts"`
	Colors       ColorsConfig `yaml:"colors" toml:"colors"`
}

// HostsConfig holds the base URLs of the services badges point at.
type HostsConfig struct {
	Shields string `yaml:"shields" toml:"shields"`
	GitHub  string `yaml:"github" toml:"github"`
	Codecov string `yaml:"codecov" toml:"codecov"`
}

// ColorsConfig holds badge label colors. An empty color leaves the badge
// unstyled.
type ColorsConfig struct {
	Untriaged string `yaml:"untriaged" toml:"untriaged"`
	Security  string `yaml:"security" toml:"security"`
}

// Load reads configuration from a YAML or TOML file.
// If path is empty, it tries the default file and returns defaults when it
// doesn't exist. An explicit path must exist.
func Load(path string) (*Config, error) {
	explicit := path != ""
	if !explicit {
		path = DefaultConfigFile
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if !explicit && errors.Is(err, fs.ErrNotExist) {
			return Defaults(), nil
		}
		return nil, fmt.Errorf("failed to read config %s: %w", path, err)
	}

	cfg := Defaults()
	if err := decode(path, data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

func decode(path string, data []byte, cfg *Config) error {
	if strings.EqualFold(filepath.Ext(path), ".toml") {
		return toml.Unmarshal(data, cfg)
	}
	return yaml.Unmarshal(data, cfg)
}

// Defaults returns the configuration used when no file is present.
func Defaults() *Config {
	repos := make([]string, len(report.DefaultRepositories))
	copy(repos, report.DefaultRepositories)
	return &Config{
		Owner:        shield.DefaultOwner,
		Title:        report.DefaultTitle,
		Repositories: repos,
		Hosts: HostsConfig{
			Shields: shield.DefaultShieldsURL,
			GitHub:  shield.DefaultGitHubURL,
			Codecov: shield.DefaultCodecovURL,
		},
		Colors: ColorsConfig{
			Untriaged: "red",
			Security:  "red",
		},
	}
}

// Validate checks the fields badges cannot be built without.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Owner) == "" {
		return errors.New("owner must not be empty")
	}
	if len(c.Repositories) == 0 {
		return errors.New("repositories must not be empty")
	}
	for i, r := range c.Repositories {
		if strings.TrimSpace(r) == "" {
			return fmt.Errorf("repositories[%d] is empty", i)
		}
	}
	for name, host := range map[string]string{
		"hosts.shields": c.Hosts.Shields,
		"hosts.github":  c.Hosts.GitHub,
		"hosts.codecov": c.Hosts.Codecov,
	} {
		if host == "" {
			return fmt.Errorf("%s must not be empty", name)
		}
	}
	return nil
}

// Composer returns the badge composer described by c.
func (c *Config) Composer() *shield.Composer {
	return &shield.Composer{
		Owner:          c.Owner,
		ShieldsURL:     c.Hosts.Shields,
		GitHubURL:      c.Hosts.GitHub,
		CodecovURL:     c.Hosts.Codecov,
		UntriagedColor: c.Colors.Untriaged,
		SecurityColor:  c.Colors.Security,
	}
}

// Builder returns the report builder described by c.
func (c *Config) Builder() *report.Builder {
	b := report.New(c.Composer())
	b.Repositories = append([]string(nil), c.Repositories...)
	b.Title = c.Title
	return b
}
