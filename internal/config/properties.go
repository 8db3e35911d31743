package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// DefaultPropertiesFile is where gen-config writes and the server looks by default.
const DefaultPropertiesFile = "properties.yaml"

// ErrAlreadyExists is returned by WriteDefault when the target file is present.
var ErrAlreadyExists = errors.New("properties file already exists")

// Properties is the operator-edited file overlaid onto the environment config.
type Properties struct {
	// RPCPort is the port the server binds to.
	RPCPort uint32 `yaml:"rpc_port"`
	// TickSpeed is the number of chunk manager ticks per second.
	TickSpeed uint8 `yaml:"tick_speed"`
}

func DefaultProperties() Properties {
	return Properties{RPCPort: 1337, TickSpeed: 1}
}

// LoadProperties parses the properties file at path.
func LoadProperties(path string) (Properties, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return Properties{}, err
	}
	p := DefaultProperties()
	if err := yaml.Unmarshal(b, &p); err != nil {
		return Properties{}, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	if p.TickSpeed == 0 {
		return Properties{}, fmt.Errorf("failed to parse %s: tick_speed must be positive", path)
	}
	return p, nil
}

// WriteDefault writes DefaultProperties to path unless a file is already there.
func WriteDefault(path string) (Properties, error) {
	if _, err := os.Stat(path); err == nil {
		return Properties{}, fmt.Errorf("%s: %w", path, ErrAlreadyExists)
	} else if !errors.Is(err, fs.ErrNotExist) {
		return Properties{}, fmt.Errorf("failed to stat %s: %w", path, err)
	}

	p := DefaultProperties()
	b, err := yaml.Marshal(p)
	if err != nil {
		return Properties{}, fmt.Errorf("failed to encode properties: %w", err)
	}
	if err := os.WriteFile(path, b, 0o644); err != nil {
		return Properties{}, fmt.Errorf("failed to write %s: %w", path, err)
	}
	return p, nil
}

// Apply overlays p onto the config. A zero TickSpeed leaves the tick interval alone.
func (c *Config) Apply(p Properties) {
	c.Server.Port = strconv.FormatUint(uint64(p.RPCPort), 10)
	if p.TickSpeed > 0 {
		c.World.TickInterval = time.Second / time.Duration(p.TickSpeed)
	}
}

// LoadWithProperties reads the environment, overlays the properties file when one
// exists and validates the result. A missing file is not an error.
func LoadWithProperties() (*Config, bool, error) {
	cfg := Load()
	found := true
	p, err := LoadProperties(cfg.World.PropertiesFile)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		found = false
	case err != nil:
		return nil, false, err
	default:
		cfg.Apply(p)
	}

	if err := cfg.Validate(); err != nil {
		return nil, false, err
	}
	return cfg, found, nil
}
