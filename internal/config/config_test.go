package config

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func etcPath(t *testing.T) string {
	t.Helper()

	projectRoot, err := filepath.Abs("../../")
	require.NoError(t, err)

	return filepath.Join(projectRoot, "etc") + string(filepath.Separator)
}

func TestReadConfig(t *testing.T) {
	cfg, err := ReadConfig(etcPath(t))
	require.NoError(t, err)

	assert.NotEmpty(t, cfg.Title)
	assert.NotZero(t, cfg.Webserver.Port)
	assert.NotEmpty(t, cfg.Webserver.URL)
	assert.NotEmpty(t, cfg.DB.GormEngine)
	assert.NotEmpty(t, cfg.Log.AppName)
	assert.NotEmpty(t, cfg.Log.ServiceName)
}

func TestReadConfigFilePath(t *testing.T) {
	// The path may name the TOML file directly instead of its directory.
	cfg, err := ReadConfig(filepath.Join(etcPath(t), "main.toml"))
	require.NoError(t, err)

	assert.NotEmpty(t, cfg.Title)
}

func TestReadConfigDirWithoutSeparator(t *testing.T) {
	cfg, err := ReadConfig(strings.TrimSuffix(etcPath(t), string(filepath.Separator)))
	require.NoError(t, err)

	assert.NotEmpty(t, cfg.Title)
}

func TestReadConfigFlagDefault(t *testing.T) {
	// "etc/main.toml" is the start command's --config default; it must
	// resolve relative to the working directory.
	projectRoot, err := filepath.Abs("../../")
	require.NoError(t, err)

	t.Chdir(projectRoot)

	cfg, err := ReadConfig("etc/main.toml")
	require.NoError(t, err)

	assert.NotEmpty(t, cfg.Title)
}

func TestReadConfigEnvOverride(t *testing.T) {
	t.Setenv(EnvConfigJSON, `{"Title":"Overridden","Webserver":{"Port":9999}}`)

	cfg, err := ReadConfig(etcPath(t))
	require.NoError(t, err)

	assert.Equal(t, "Overridden", cfg.Title)
	assert.Equal(t, 9999, cfg.Webserver.Port)
	// Untouched values survive the merge.
	assert.NotEmpty(t, cfg.DB.GormEngine)
}

func TestReadConfigBadEnvJSON(t *testing.T) {
	t.Setenv(EnvConfigJSON, `{not json`)

	_, err := ReadConfig(etcPath(t))
	require.Error(t, err)
	assert.True(t, strings.Contains(err.Error(), "json"))
}

func TestValidate(t *testing.T) {
	base := func() Config {
		return Config{
			Webserver: Webserver{Port: 8080, URL: "http://localhost:8080"},
			DB:        DB{GormEngine: "sqlite"},
		}
	}

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr error
	}{
		{"valid", func(*Config) {}, nil},
		{"zero port", func(c *Config) { c.Webserver.Port = 0 }, ErrWebServerPortCanNotBeZero},
		{"empty url", func(c *Config) { c.Webserver.URL = "" }, ErrEmptyURL},
		{"empty engine", func(c *Config) { c.DB.GormEngine = "" }, ErrEmptyGormEngine},
		{"oidc enabled without provider", func(c *Config) { c.OIDC.Enabled = true }, ErrIncompleteOIDC},
		{"smtp enabled without host", func(c *Config) { c.SMTP.Enabled = true }, ErrIncompleteSMTP},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := base()
			tt.mutate(&cfg)

			err := validate(&cfg)
			if tt.wantErr == nil {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, tt.wantErr)
			}
		})
	}
}

func TestValidateShutDownTimeDefault(t *testing.T) {
	cfg := Config{
		Webserver: Webserver{Port: 8080, URL: "http://localhost:8080"},
		DB:        DB{GormEngine: "sqlite"},
	}

	require.NoError(t, validate(&cfg))
	assert.Equal(t, 5, cfg.Webserver.ShutDownTime)
}

func TestDumpConfig(t *testing.T) {
	cfg := Config{Title: "VolunteerHub"}

	tomlOut, err := DumpConfig(cfg)
	require.NoError(t, err)
	assert.Contains(t, tomlOut, `Title = "VolunteerHub"`)

	jsonOut, err := DumpConfigJSON(cfg)
	require.NoError(t, err)
	assert.Contains(t, jsonOut, `"Title": "VolunteerHub"`)
}
