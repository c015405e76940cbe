package config

import (
	"os"
	"os/user"
	"strings"
)

// Group names a set of related configuration fields that are prompted
// together the first time a step needing them runs.
type Group string

const (
	// GroupNone marks steps that read no operator-supplied values.
	GroupNone Group = ""
	// GroupProject covers project name, directory, API URL and license.
	GroupProject Group = "project"
	// GroupDatabase covers database host, port, name, user and password.
	GroupDatabase Group = "database"
)

// Config holds every operator-supplied value for one devkit run. It is
// constructed once, passed by pointer into each step, and never persisted:
// after the envfile step writes `.env.local`, that file is authoritative.
type Config struct {
	ProjectName string `yaml:"project_name" validate:"required,project_slug"`
	ProjectDir  string `yaml:"project_dir,omitempty" validate:"required"`
	APIURL      string `yaml:"api_url" validate:"required,url"`
	License     string `yaml:"license" validate:"required,oneof=mit apache-2.0 none"`

	DBHost     string `yaml:"db_host" validate:"required"`
	DBPort     int    `yaml:"db_port" validate:"required,min=1,max=65535"`
	DBName     string `yaml:"db_name" validate:"required,pg_identifier"`
	DBUser     string `yaml:"db_user" validate:"required"`
	DBPassword string `yaml:"db_password"`
}

// Defaults returns the documented default for every field. The database
// name and project directory are derived from the project name when that
// is known at prompt time; the derivations here use the default name.
func Defaults() Config {
	name := "my-app"
	return Config{
		ProjectName: name,
		ProjectDir:  name,
		APIURL:      "http://localhost:3000/api",
		License:     "mit",
		DBHost:      "localhost",
		DBPort:      5432,
		DBName:      DeriveDBName(name),
		DBUser:      defaultDBUser(),
		DBPassword:  "",
	}
}

// DeriveDBName converts a project slug into a Postgres-friendly database
// name: dashes become underscores and a `_dev` suffix is appended.
func DeriveDBName(projectName string) string {
	base := strings.ReplaceAll(strings.ToLower(projectName), "-", "_")
	if base == "" {
		base = "app"
	}
	return base + "_dev"
}

func defaultDBUser() string {
	if u, err := user.Current(); err == nil && u.Username != "" {
		return u.Username
	}
	if name := os.Getenv("USER"); name != "" {
		return name
	}
	return "postgres"
}
