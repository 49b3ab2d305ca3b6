package config

import (
	_ "embed"
	"os"
	"path/filepath"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/afero"
	"sigs.k8s.io/yaml"
)

var (
	//go:embed default/config.yaml
	defaultConfigData []byte
)

const (
	ConfigurationName = "config.yaml"

	ColorAlways = "always"
	ColorAuto   = "auto"
	ColorNever  = "never"
)

type Configuration struct {
	configFs afero.Fs
	dir      string

	PromptSuffix   string `json:"prompt_suffix" validate:"required"`
	Color          string `json:"color" validate:"oneof=always auto never"`
	HistoryFile    string `json:"history_file"`
	HistoryLimit   int    `json:"history_limit" validate:"gte=0"`
	SessionLog     string `json:"session_log"`
	AbbreviateHome bool   `json:"abbreviate_home"`
	Debug          bool   `json:"debug"`
}

// Validate the configuration for basic semantic errors.
func (c *Configuration) Validate() error {
	validate := validator.New()
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		return name
	})

	return validate.Struct(c)
}

func (c *Configuration) fs() afero.Fs {
	if c.configFs == nil {
		c.configFs = afero.NewMemMapFs()
	}
	return c.configFs
}

// Dir returns the directory the configuration was loaded from.
func (c *Configuration) Dir() string {
	return c.dir
}

// HistoryPath returns the path of the readline history file, or the empty
// string if history is disabled.
func (c *Configuration) HistoryPath() string {
	switch {
	case c.HistoryFile == "":
		return ""
	case filepath.IsAbs(c.HistoryFile):
		return c.HistoryFile
	default:
		return filepath.Join(c.dir, c.HistoryFile)
	}
}

// OpenSessionLog opens the session log in an append only state. It returns a
// nil file if the log is disabled.
func (c *Configuration) OpenSessionLog() (afero.File, error) {
	if c.SessionLog == "" {
		return nil, nil
	}
	if dir := filepath.Dir(c.SessionLog); dir != "." {
		if err := c.fs().MkdirAll(dir, 0700); err != nil {
			return nil, err
		}
	}
	return c.fs().OpenFile(c.SessionLog, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0600)
}

// ReadSessionLog opens the session log for reading.
func (c *Configuration) ReadSessionLog() (afero.File, error) {
	return c.fs().OpenFile(c.SessionLog, os.O_RDONLY, 0600)
}

// DefaultConfig returns the built-in configuration, backed by an in-memory
// filesystem.
func DefaultConfig() *Configuration {
	var out Configuration
	if err := yaml.UnmarshalStrict(defaultConfigData, &out); err != nil {
		panic(err)
	}
	out.configFs = afero.NewMemMapFs()
	return &out
}
