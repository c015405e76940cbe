// Package scaffold renders the generated project files from an embedded
// template tree.
package scaffold

import (
	"bytes"
	"embed"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"text/template"

	"github.com/Masterminds/sprig/v3"
	"github.com/bmatcuk/doublestar/v4"

	"github.com/alexisbeaulieu97/devkit/internal/config"
)

//go:embed all:templates
var templatesFS embed.FS

const templateRoot = "templates"

// Data is the value every template is executed against.
type Data struct {
	ProjectName string
	APIURL      string
	License     string
	DBHost      string
	DBPort      int
	DBName      string
	DBUser      string
}

// NewData derives template data from the run configuration.
func NewData(cfg *config.Config) Data {
	return Data{
		ProjectName: cfg.ProjectName,
		APIURL:      cfg.APIURL,
		License:     cfg.License,
		DBHost:      cfg.DBHost,
		DBPort:      cfg.DBPort,
		DBName:      cfg.DBName,
		DBUser:      cfg.DBUser,
	}
}

// Render executes a single template (path relative to the template root,
// without the .tmpl suffix) against data.
func Render(name string, data Data) ([]byte, error) {
	full := templateRoot + "/" + name + ".tmpl"
	content, err := templatesFS.ReadFile(full)
	if err != nil {
		return nil, fmt.Errorf("reading template %s: %w", name, err)
	}

	tmpl, err := template.New(filepath.Base(full)).Funcs(sprig.FuncMap()).Parse(string(content))
	if err != nil {
		return nil, fmt.Errorf("parsing template %s: %w", name, err)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("executing template %s: %w", name, err)
	}
	return buf.Bytes(), nil
}

// RenderToFile renders a single template to dest, creating parents.
func RenderToFile(name string, data Data, dest string) error {
	out, err := Render(name, data)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
		return fmt.Errorf("creating parent directories: %w", err)
	}
	if err := os.WriteFile(dest, out, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", dest, err)
	}
	return nil
}

// RenderTree renders every template matching a doublestar pattern (relative
// to the template root) into destDir, mirroring the tree and stripping the
// .tmpl suffix. It returns the written paths.
func RenderTree(pattern, destDir string, data Data) ([]string, error) {
	sub, err := fs.Sub(templatesFS, templateRoot)
	if err != nil {
		return nil, err
	}

	matches, err := doublestar.Glob(sub, pattern)
	if err != nil {
		return nil, fmt.Errorf("globbing templates %s: %w", pattern, err)
	}

	var written []string
	for _, match := range matches {
		if !strings.HasSuffix(match, ".tmpl") {
			continue
		}
		name := strings.TrimSuffix(match, ".tmpl")
		dest := filepath.Join(destDir, filepath.FromSlash(name))
		if err := RenderToFile(name, data, dest); err != nil {
			return written, err
		}
		written = append(written, dest)
	}

	return written, nil
}
