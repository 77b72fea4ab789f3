package config

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// EmbeddedSource names the built-in configuration in errors and logs.
const EmbeddedSource = "embedded default"

// LoadRace loads and validates the race configuration.
// Search order: customPath -> ~/.arcade/configs/carrace.yaml -> ./configs/carrace.yaml
// -> ./config.json -> embedded default.
// A file that is found but malformed is an error; the search does not continue past it.
func LoadRace(customPath string) (RaceConfig, error) {
	source, data, err := Locate(customPath)
	if err != nil {
		return RaceConfig{}, err
	}
	return Parse(data, source)
}

// Locate returns the first configuration file in the search order and its contents.
func Locate(customPath string) (string, []byte, error) {
	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return customPath, nil, &ConfigurationError{Source: customPath, Reason: "cannot read file", Err: err}
		}
		return customPath, data, nil
	}

	candidates := []string{
		userConfigPath("carrace.yaml"),
		filepath.Join("configs", "carrace.yaml"),
		"config.json",
	}
	for _, path := range candidates {
		if path == "" {
			continue
		}
		if data, err := os.ReadFile(path); err == nil {
			return path, data, nil
		}
	}

	return EmbeddedSource, defaultRaceYAML, nil
}

// Parse decodes a YAML or JSON document, checks that every required key is
// present, fills optional fields and validates the result.
func Parse(data []byte, source string) (RaceConfig, error) {
	var raw map[string]any
	if err := unmarshal(data, &raw, false); err != nil {
		return RaceConfig{}, &ConfigurationError{Source: source, Reason: "cannot parse", Err: err}
	}
	for _, key := range requiredKeys {
		if v, ok := raw[key]; !ok || v == nil {
			return RaceConfig{}, &ConfigurationError{Source: source, Field: key, Reason: "missing required key"}
		}
	}

	var cfg RaceConfig
	if err := unmarshal(data, &cfg, true); err != nil {
		return RaceConfig{}, &ConfigurationError{Source: source, Reason: "cannot decode", Err: err}
	}

	if v, ok := raw["max_obstacles"]; !ok || v == nil {
		cfg.MaxObstacles = NoLimit
	}
	cfg = cfg.WithDefaults()

	if err := cfg.Validate(); err != nil {
		var ce *ConfigurationError
		if errors.As(err, &ce) {
			ce.Source = source
		}
		return RaceConfig{}, err
	}
	return cfg, nil
}

// unmarshal decodes JSON documents with encoding/json (tab-indented JSON is
// not valid YAML) and everything else with yaml.v3.
func unmarshal(data []byte, v any, strict bool) error {
	if trimmed := bytes.TrimSpace(data); len(trimmed) > 0 && trimmed[0] == '{' {
		dec := json.NewDecoder(bytes.NewReader(trimmed))
		if strict {
			dec.DisallowUnknownFields()
		}
		return dec.Decode(v)
	}
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(strict)
	if err := dec.Decode(v); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

// Marshal renders a configuration as YAML.
func Marshal(cfg RaceConfig) ([]byte, error) {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return nil, fmt.Errorf("config: cannot marshal: %w", err)
	}
	return data, nil
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".arcade", "configs", filename)
}
