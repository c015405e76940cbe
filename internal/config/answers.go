package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	devkiterrors "github.com/alexisbeaulieu97/devkit/pkg/errors"
)

// LoadAnswers reads an optional YAML answers file and applies the values
// it carries onto cfg. It returns the yaml keys that were present so the
// collector can mark them preset. Unknown keys are rejected: a typoed key
// silently falling through to a prompt defeats the point of the file.
func LoadAnswers(path string, cfg *Config) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, devkiterrors.NewParseError(path, 0, err)
	}

	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, parseError(path, err)
	}

	if doc.Kind == 0 || len(doc.Content) == 0 {
		return nil, nil
	}

	root := doc.Content[0]
	if root.Kind != yaml.MappingNode {
		return nil, devkiterrors.NewParseError(path, root.Line, errors.New("answers file must be a mapping"))
	}

	known := knownAnswerKeys()
	keys := make([]string, 0, len(root.Content)/2)
	for i := 0; i+1 < len(root.Content); i += 2 {
		key := root.Content[i].Value
		if !known[key] {
			return nil, devkiterrors.NewParseError(path, root.Content[i].Line, fmt.Errorf("unknown key %q", key))
		}
		keys = append(keys, key)
	}

	if err := root.Decode(cfg); err != nil {
		return nil, parseError(path, err)
	}

	// Preset values skip the prompt loop's per-field checks, so the merged
	// config is validated here before anything trusts it.
	if err := Validate(cfg); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return keys, nil
}

func knownAnswerKeys() map[string]bool {
	return map[string]bool{
		"project_name": true,
		"project_dir":  true,
		"api_url":      true,
		"license":      true,
		"db_host":      true,
		"db_port":      true,
		"db_name":      true,
		"db_user":      true,
		"db_password":  true,
	}
}

func parseError(path string, err error) error {
	var typeErr *yaml.TypeError
	if errors.As(err, &typeErr) && len(typeErr.Errors) > 0 {
		return devkiterrors.NewParseError(path, 0, errors.New(typeErr.Errors[0]))
	}
	return devkiterrors.NewParseError(path, 0, err)
}
