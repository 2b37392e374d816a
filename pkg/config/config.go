package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// DefaultConfigFile is the configuration file looked up when none is given
// explicitly. It's fine for it to be missing.
const DefaultConfigFile = "./jsarray.yml"

// Version is the version of the application, set at build time.
var Version string

// Config is the top level struct representing the configuration.
type Config struct {
	ApplicationConfiguration ApplicationConfiguration `yaml:"ApplicationConfiguration"`
	Runner                   Runner                   `yaml:"Runner"`
}

// Default returns the configuration used when no file is given.
func Default() Config {
	return Config{
		ApplicationConfiguration: ApplicationConfiguration{
			LogLevel: "info",
		},
		Runner: Runner{
			Format: FormatText,
		},
	}
}

// Load attempts to load the config from the given path. An empty path or a
// missing DefaultConfigFile yield the default configuration.
func Load(path string) (Config, error) {
	if len(path) == 0 {
		path = DefaultConfigFile
		if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
			return Default(), nil
		}
	}
	return LoadFile(path)
}

// LoadFile loads the config from the provided path.
func LoadFile(configPath string) (Config, error) {
	configData, err := os.ReadFile(configPath)
	if err != nil {
		return Config{}, fmt.Errorf("unable to read config: %w", err)
	}
	return Decode(configData)
}

// Decode parses YAML configuration data on top of the default one, unknown
// fields are not allowed.
func Decode(configData []byte) (Config, error) {
	config := Default()
	decoder := yaml.NewDecoder(bytes.NewReader(configData))
	decoder.KnownFields(true)
	err := decoder.Decode(&config)
	if err != nil && !errors.Is(err, io.EOF) {
		return Config{}, fmt.Errorf("failed to unmarshal config YAML: %w", err)
	}

	err = config.Runner.Validate()
	if err != nil {
		return Config{}, err
	}
	return config, nil
}
