package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log"
	"path/filepath"

	"github.com/spf13/afero"
	"sigs.k8s.io/yaml"
)

// Load loads the configuration from the directory on fsys.
func Load(fsys afero.Fs, path string) (*Configuration, error) {
	// If given the path to a config.yaml file, move back up a level.
	if filepath.Base(path) == ConfigurationName {
		path = filepath.Dir(path)
	}

	configContents, err := afero.ReadFile(fsys, filepath.Join(path, ConfigurationName))
	if err != nil {
		return nil, err
	}
	var out Configuration
	if err := yaml.UnmarshalStrict(configContents, &out); err != nil {
		return nil, fmt.Errorf("parse %s: %w", ConfigurationName, err)
	}
	if err := out.Validate(); err != nil {
		return nil, fmt.Errorf("invalid %s: %w", ConfigurationName, err)
	}
	out.dir = path
	out.configFs = scopedFs(fsys, path)
	return &out, nil
}

// scopedFs roots fsys at dir.
func scopedFs(fsys afero.Fs, dir string) afero.Fs {
	// BasePathFs can't be rooted at "." because it compares cleaned prefixes.
	if filepath.Clean(dir) == "." {
		return fsys
	}
	return afero.NewBasePathFs(fsys, dir)
}

// LoadOrDefault loads the configuration from the directory, falling back to
// the defaults if there is no configuration file.
func LoadOrDefault(fsys afero.Fs, path string, logger *log.Logger) (*Configuration, error) {
	cfg, err := Load(fsys, path)
	if errors.Is(err, fs.ErrNotExist) {
		logger.Printf("No %s in %q, using defaults. Run init to create one.", ConfigurationName, path)
		cfg = DefaultConfig()
		cfg.dir = path
		cfg.configFs = scopedFs(fsys, path)
		return cfg, nil
	}
	return cfg, err
}

// Initialize writes the default configuration to the directory if one
// doesn't exist yet and loads it.
func Initialize(fsys afero.Fs, path string, logger *log.Logger) (*Configuration, error) {
	if err := fsys.MkdirAll(path, 0700); err != nil {
		return nil, err
	}

	configPath := filepath.Join(path, ConfigurationName)
	switch exists, err := afero.Exists(fsys, configPath); {
	case err != nil:
		return nil, err
	case exists:
		logger.Printf("Configuration already exists: %s", configPath)
	default:
		if err := afero.WriteFile(fsys, configPath, defaultConfigData, 0600); err != nil {
			return nil, err
		}
		logger.Printf("Wrote default configuration: %s", configPath)
	}

	return Load(fsys, path)
}
