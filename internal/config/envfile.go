package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/joho/godotenv"
)

// EnvFileName is the environment file the envfile step generates inside
// the project directory.
const EnvFileName = ".env.local"

// PrefillFromEnvFile reads an existing `.env.local` under projectDir and
// copies its database values onto cfg, returning the yaml keys that were
// found. Once the file exists it is authoritative, so a re-run must not
// prompt for values the operator already settled.
func PrefillFromEnvFile(projectDir string, cfg *Config) ([]string, error) {
	path := filepath.Join(projectDir, EnvFileName)
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	values, err := godotenv.Read(path)
	if err != nil {
		return nil, err
	}

	var keys []string
	if v, ok := values["DB_HOST"]; ok && v != "" {
		cfg.DBHost = v
		keys = append(keys, "db_host")
	}
	if v, ok := values["DB_PORT"]; ok && v != "" {
		if port, convErr := strconv.Atoi(v); convErr == nil {
			cfg.DBPort = port
			keys = append(keys, "db_port")
		}
	}
	if v, ok := values["DB_NAME"]; ok && v != "" {
		cfg.DBName = v
		keys = append(keys, "db_name")
	}
	if v, ok := values["DB_USER"]; ok && v != "" {
		cfg.DBUser = v
		keys = append(keys, "db_user")
	}
	if v, ok := values["DB_PASSWORD"]; ok {
		cfg.DBPassword = v
		keys = append(keys, "db_password")
	}
	if v, ok := values["VITE_API_URL"]; ok && v != "" {
		cfg.APIURL = v
		keys = append(keys, "api_url")
	}

	// Prefilled values are marked preset and never re-prompted, so a
	// hand-edited file with a bad value must be rejected here rather than
	// surface later as a step failure.
	if len(keys) > 0 {
		if err := Validate(cfg); err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
	}

	return keys, nil
}
