package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"gopkg.in/yaml.v3"

	ferrors "git.home.luguber.info/inful/docmerge/internal/foundation/errors"
	"git.home.luguber.info/inful/docmerge/internal/logfields"
)

// Load reads the settings document at path. An empty path selects DefaultPath
// when it exists and built-in defaults otherwise; an explicit path must exist.
func Load(path string) (*Settings, error) {
	loadEnvFiles()

	if path == "" {
		if _, err := os.Stat(DefaultPath); err != nil {
			slog.Debug("No settings file, using defaults", logfields.Path(DefaultPath))
			return Parse(nil)
		}
		path = DefaultPath
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, ferrors.ConfigError(fmt.Sprintf("cannot read settings file %s", path)).
			WithCause(err).
			WithContext("path", path).
			Build()
	}

	s, err := Parse(data)
	if err != nil {
		return nil, err
	}
	s.path = path
	slog.Debug("Loaded settings", logfields.Path(path))
	return s, nil
}

// Parse decodes a settings document after expanding ${VAR} references,
// then applies defaults and validates. Unknown keys are rejected.
func Parse(data []byte) (*Settings, error) {
	var s Settings
	dec := yaml.NewDecoder(bytes.NewReader([]byte(os.ExpandEnv(string(data)))))
	dec.KnownFields(true)
	if err := dec.Decode(&s); err != nil && !errors.Is(err, io.EOF) {
		return nil, ferrors.ConfigError("invalid settings document").
			WithCause(err).
			Build()
	}

	if err := applyDefaults(&s); err != nil {
		return nil, err
	}
	if err := Validate(&s); err != nil {
		return nil, err
	}
	return &s, nil
}
