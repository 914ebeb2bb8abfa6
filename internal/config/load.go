package config

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/aleister1102/respdiff/internal/common"
	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"
)

const maxConfigFileSize = 1 << 20

// defaultFileNames are probed, in order, when no path is given.
var defaultFileNames = []string{"respdiff.yaml", "respdiff.yml", "respdiff.json"}

// Load reads the config file at path, or the one FindConfigFile discovers
// when path is empty, on top of the defaults. Unknown keys are rejected so
// typos do not silently fall back to defaults. With no file anywhere the
// defaults are returned.
func Load(path string, logger zerolog.Logger) (*Config, error) {
	cfg := NewDefaultConfig()

	file, err := FindConfigFile(path)
	if err != nil {
		return nil, err
	}
	if file == "" {
		return cfg, nil
	}

	data, err := common.ReadFile(context.Background(), file, maxConfigFileSize)
	if err != nil {
		return nil, common.WrapError(err, "failed to read config file")
	}
	if err := decode(data, file, cfg); err != nil {
		return nil, err
	}
	cfg.Diff.ExclusionPaths = NormalizeExclusionPaths(cfg.Diff.ExclusionPaths)

	logger.Debug().Str("path", file).Msg("Loaded configuration file")
	return cfg, nil
}

// FindConfigFile resolves the config file to use:
//  1. explicit, which must exist
//  2. the file named by $RESPDIFF_CONFIG_PATH, when it exists
//  3. respdiff.yaml, respdiff.yml or respdiff.json in the working directory
//  4. the same names next to the executable
//
// It returns "" when nothing is found.
func FindConfigFile(explicit string) (string, error) {
	if explicit != "" {
		if !isFile(explicit) {
			return "", common.NewValidationError("config_file", explicit, "config file does not exist")
		}
		return explicit, nil
	}

	if env := os.Getenv(ConfigPathEnv); env != "" && isFile(env) {
		return env, nil
	}

	var dirs []string
	if cwd, err := os.Getwd(); err == nil {
		dirs = append(dirs, cwd)
	}
	if exe, err := os.Executable(); err == nil {
		if dir := filepath.Dir(exe); len(dirs) == 0 || dirs[0] != dir {
			dirs = append(dirs, dir)
		}
	}
	for _, dir := range dirs {
		for _, name := range defaultFileNames {
			if p := filepath.Join(dir, name); isFile(p) {
				return p, nil
			}
		}
	}
	return "", nil
}

func decode(data []byte, file string, cfg *Config) error {
	if isYAML(file) {
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
			return fmt.Errorf("%w: invalid YAML in %s: %v", common.ErrInvalidConfiguration, file, err)
		}
		return nil
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(cfg); err != nil {
		return fmt.Errorf("%w: invalid JSON in %s: %v", common.ErrInvalidConfiguration, file, err)
	}
	return nil
}

func isYAML(file string) bool {
	switch strings.ToLower(filepath.Ext(file)) {
	case ".yaml", ".yml":
		return true
	default:
		return false
	}
}

func isFile(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
