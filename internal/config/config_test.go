package config

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDefaults(t *testing.T) {
	cfg := Defaults()

	require.Equal(t, "my-app", cfg.ProjectName)
	require.Equal(t, "my-app", cfg.ProjectDir)
	require.Equal(t, "http://localhost:3000/api", cfg.APIURL)
	require.Equal(t, "mit", cfg.License)
	require.Equal(t, "localhost", cfg.DBHost)
	require.Equal(t, 5432, cfg.DBPort)
	require.Equal(t, "my_app_dev", cfg.DBName)
	require.NotEmpty(t, cfg.DBUser)
	require.Empty(t, cfg.DBPassword)
}

func TestDefaultsPassValidation(t *testing.T) {
	cfg := Defaults()
	require.NoError(t, Validate(&cfg))
}

func TestDeriveDBName(t *testing.T) {
	tests := []struct {
		name     string
		project  string
		expected string
	}{
		{"simple", "myapp", "myapp_dev"},
		{"dashes become underscores", "my-cool-app", "my_cool_app_dev"},
		{"uppercase folded", "MyApp", "myapp_dev"},
		{"empty falls back", "", "app_dev"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.expected, DeriveDBName(tt.project))
		})
	}
}

func TestValidateRejectsBadValues(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"project name with uppercase", func(c *Config) { c.ProjectName = "MyApp" }},
		{"project name starting with digit", func(c *Config) { c.ProjectName = "1app" }},
		{"empty project name", func(c *Config) { c.ProjectName = "" }},
		{"bad api url", func(c *Config) { c.APIURL = "not a url" }},
		{"unknown license", func(c *Config) { c.License = "gpl" }},
		{"port zero", func(c *Config) { c.DBPort = 0 }},
		{"port too high", func(c *Config) { c.DBPort = 70000 }},
		{"db name with dash", func(c *Config) { c.DBName = "my-db" }},
		{"db name starting with digit", func(c *Config) { c.DBName = "1db" }},
		{"empty db user", func(c *Config) { c.DBUser = "" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Defaults()
			tt.mutate(&cfg)
			require.Error(t, Validate(&cfg))
		})
	}
}

func TestValidateVar(t *testing.T) {
	require.NoError(t, ValidateVar("good-slug", "required,project_slug"))
	require.Error(t, ValidateVar("Bad Slug", "required,project_slug"))
	require.NoError(t, ValidateVar("db_name", "required,pg_identifier"))
	require.NoError(t, ValidateVar("_private", "required,pg_identifier"))
	require.Error(t, ValidateVar("db-name", "required,pg_identifier"))
}

func TestValidateNilConfig(t *testing.T) {
	require.Error(t, Validate(nil))
}
