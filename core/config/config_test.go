package config

import (
	"io/ioutil"
	"log"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v2"
)

func discardLogger() *log.Logger {
	return log.New(ioutil.Discard, "", 0)
}

func TestBuiltinConfig(t *testing.T) {
	rawConfig := make(map[string]interface{})
	assert.Nil(t, yaml.Unmarshal(defaultConfigData, &rawConfig))

	knownFields := make(map[string]bool)
	rt := reflect.TypeOf(Configuration{})
	for i := 0; i < rt.NumField(); i++ {
		field := rt.Field(i)
		if !field.IsExported() {
			continue
		}

		jsonTag := field.Tag.Get("json")
		assert.NotEmpty(t, jsonTag)
		jsonField := strings.Split(jsonTag, ",")[0]
		knownFields[jsonField] = true

		if _, ok := rawConfig[jsonField]; !ok {
			assert.False(t, true, "default config missing field: %q", jsonField)
		}
	}

	for k := range rawConfig {
		_, ok := knownFields[k]
		assert.True(t, ok, "default config contains invalid field: %q", k)
	}
}

func TestDefaultConfig(t *testing.T) {
	// Will panic() on load failure because it should never happen at runtime.
	cfg := DefaultConfig()
	assert.NotNil(t, cfg)
	assert.NoError(t, cfg.Validate())
	assert.Equal(t, " $ ", cfg.PromptSuffix)
	assert.Equal(t, ColorAuto, cfg.Color)
}

func TestValidate(t *testing.T) {
	cases := map[string]struct {
		mutate  func(*Configuration)
		wantErr string
	}{
		"default": {
			mutate: func(*Configuration) {},
		},
		"bad color": {
			mutate:  func(c *Configuration) { c.Color = "sometimes" },
			wantErr: "color",
		},
		"missing suffix": {
			mutate:  func(c *Configuration) { c.PromptSuffix = "" },
			wantErr: "prompt_suffix",
		},
		"negative history": {
			mutate:  func(c *Configuration) { c.HistoryLimit = -1 },
			wantErr: "history_limit",
		},
	}

	for tn, tc := range cases {
		t.Run(tn, func(t *testing.T) {
			cfg := DefaultConfig()
			tc.mutate(cfg)
			err := cfg.Validate()
			if tc.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.wantErr)
		})
	}
}

func TestInitialize(t *testing.T) {
	fs := afero.NewMemMapFs()
	dir := filepath.Join("home", "user", ".microsh")

	cfg, err := Initialize(fs, dir, discardLogger())
	require.NoError(t, err)
	assert.Equal(t, dir, cfg.Dir())
	assert.Equal(t, filepath.Join(dir, "history"), cfg.HistoryPath())

	written, err := afero.ReadFile(fs, filepath.Join(dir, ConfigurationName))
	require.NoError(t, err)
	assert.Equal(t, defaultConfigData, written)

	t.Run("idempotent", func(t *testing.T) {
		require.NoError(t, afero.WriteFile(fs, filepath.Join(dir, ConfigurationName), []byte("prompt_suffix: \"> \"\ncolor: never\n"), 0600))
		cfg, err := Initialize(fs, dir, discardLogger())
		require.NoError(t, err)
		assert.Equal(t, "> ", cfg.PromptSuffix)
	})

	t.Run("config file path", func(t *testing.T) {
		cfg, err := Load(fs, filepath.Join(dir, ConfigurationName))
		require.NoError(t, err)
		assert.Equal(t, dir, cfg.Dir())
	})
}

func TestLoadStrict(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, ConfigurationName, []byte("prompt_suffix: x\ncolor: auto\nunknown_field: 1\n"), 0600))

	_, err := Load(fs, ".")
	assert.Error(t, err)
}

func TestLoadInvalid(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, ConfigurationName, []byte("prompt_suffix: x\ncolor: rainbow\n"), 0600))

	_, err := Load(fs, ".")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid config.yaml")
}

func TestLoadOrDefault(t *testing.T) {
	fs := afero.NewMemMapFs()
	cfg, err := LoadOrDefault(fs, "missing", discardLogger())
	require.NoError(t, err)
	assert.Equal(t, "missing", cfg.Dir())
	assert.Equal(t, DefaultConfig().PromptSuffix, cfg.PromptSuffix)
}

func TestSessionLog(t *testing.T) {
	fs := afero.NewMemMapFs()
	cfg, err := Initialize(fs, "cfg", discardLogger())
	require.NoError(t, err)

	t.Run("disabled", func(t *testing.T) {
		fd, err := cfg.OpenSessionLog()
		assert.NoError(t, err)
		assert.Nil(t, fd)
	})

	t.Run("enabled", func(t *testing.T) {
		cfg.SessionLog = filepath.Join("logs", "session.jsonl")
		fd, err := cfg.OpenSessionLog()
		require.NoError(t, err)
		_, err = fd.WriteString("{}\n")
		assert.NoError(t, err)
		assert.NoError(t, fd.Close())

		contents, err := afero.ReadFile(fs, filepath.Join("cfg", "logs", "session.jsonl"))
		require.NoError(t, err)
		assert.Equal(t, "{}\n", string(contents))

		rd, err := cfg.ReadSessionLog()
		require.NoError(t, err)
		assert.NoError(t, rd.Close())
	})
}
