// Package config holds the startup configuration of the development server.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// DefaultPort is the port the server listens on unless a config file says
// otherwise.
const DefaultPort = 8000

// DefaultHost binds every interface.
const DefaultHost = "0.0.0.0"

// Config file names looked up in the serving root, in order.
const (
	TOMLFile = "devserve.toml"
	YAMLFile = "devserve.yaml"
)

// Entry is a page or module location listed in the startup banner.
type Entry struct {
	// Path is the URL path relative to the serving root (e.g., "/index.html").
	Path string `toml:"path" yaml:"path"`
	// Label describes the entry. Empty labels on HTML pages fall back to the
	// page's <title>.
	Label string `toml:"label" yaml:"label"`
}

// Config is the fixed configuration of one server process.
// It is built once at startup and passed to the server constructor.
type Config struct {
	// Host is the listen address without the port.
	Host string `toml:"host" yaml:"host"`
	// Port is the TCP port to bind. 0 picks a free port.
	Port int `toml:"port" yaml:"port"`
	// Root is the absolute directory files are served from.
	Root string `toml:"-" yaml:"-"`
	// Title is the banner headline.
	Title string `toml:"title" yaml:"title"`
	// Entries are the front-end pages shown in the banner.
	Entries []Entry `toml:"entries" yaml:"entries"`
	// Modules are the source locations shown in the banner.
	Modules []Entry `toml:"modules" yaml:"modules"`
	// Tips are free-form lines shown at the end of the banner.
	Tips []string `toml:"tips" yaml:"tips"`
}

// Default returns the configuration used when root has no config file.
func Default(root string) Config {
	return Config{
		Host:  DefaultHost,
		Port:  DefaultPort,
		Root:  root,
		Title: "🔬 Forensic Legal Analyzer v2.0 - Development Server",
		Entries: []Entry{
			{Path: "/index-modular.html", Label: "Modular Version"},
			{Path: "/index.html", Label: "Original Version"},
		},
		Modules: []Entry{
			{Path: "/src/main.jsx", Label: "Main Application"},
			{Path: "/src/analyzers/", Label: "Analysis Engines"},
			{Path: "/src/storage/", Label: "Data Storage"},
			{Path: "/src/utils/", Label: "Utilities"},
			{Path: "/src/data/", Label: "Statute Database"},
		},
		Tips: []string{
			"Open browser DevTools to see module loading",
			"Check Network tab for ES6 module imports",
			"Console shows initialization progress",
			"Modules are cached by browser",
		},
	}
}

// Load returns the configuration for root. Values from devserve.toml, or
// devserve.yaml when no TOML file exists, are decoded over Default(root).
func Load(root string) (Config, error) {
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return Config{}, fmt.Errorf("failed to resolve directory: %w", err)
	}

	cfg := Default(absRoot)

	tomlPath := filepath.Join(absRoot, TOMLFile)
	if _, err := toml.DecodeFile(tomlPath, &cfg); err == nil {
		return cfg, cfg.Validate()
	} else if !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("failed to read %s: %w", tomlPath, err)
	}

	yamlPath := filepath.Join(absRoot, YAMLFile)
	b, err := os.ReadFile(yamlPath)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return cfg, cfg.Validate()
	case err != nil:
		return Config{}, fmt.Errorf("failed to read %s: %w", yamlPath, err)
	}
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse %s: %w", yamlPath, err)
	}

	return cfg, cfg.Validate()
}

// Validate reports whether c can be served.
func (c Config) Validate() error {
	if c.Port < 0 || c.Port > 65535 {
		return fmt.Errorf("invalid port %d", c.Port)
	}

	info, err := os.Stat(c.Root)
	if err != nil {
		return fmt.Errorf("directory does not exist: %s: %w", c.Root, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("not a directory: %s", c.Root)
	}

	return nil
}

// Addr is the host:port listen address.
func (c Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}
