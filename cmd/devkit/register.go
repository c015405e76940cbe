package main

import (
	"github.com/alexisbeaulieu97/devkit/internal/execx"
	"github.com/alexisbeaulieu97/devkit/internal/plugin"
	"github.com/alexisbeaulieu97/devkit/internal/steps/database"
	"github.com/alexisbeaulieu97/devkit/internal/steps/dbservice"
	"github.com/alexisbeaulieu97/devkit/internal/steps/generate"
	"github.com/alexisbeaulieu97/devkit/internal/steps/pkgmanager"
	"github.com/alexisbeaulieu97/devkit/internal/steps/project"
	"github.com/alexisbeaulieu97/devkit/internal/steps/tool"
)

// registerSteps builds the canonical step list. Registration order is the
// execution order for "run all" and the numbering the menu shows, so new
// steps must be inserted where their prerequisites are already met.
func registerSteps(registry *plugin.Registry, runner execx.Runner, confirmer pkgmanager.Confirmer) error {
	steps := []plugin.Plugin{
		pkgmanager.New(runner, confirmer),
		tool.New(tool.Spec{
			ID:      "node",
			Title:   "Node.js runtime",
			Binary:  "node",
			Formula: "node",
		}, runner),
		tool.New(tool.Spec{
			ID:       "bun",
			Title:    "Bun runtime",
			Binary:   "bun",
			Formula:  "oven-sh/bun/bun",
			Optional: true,
		}, runner),
		tool.New(tool.Spec{
			ID:      "dbengine",
			Title:   "PostgreSQL engine",
			Binary:  "psql",
			Formula: dbservice.Formula,
		}, runner),
		dbservice.New(runner),
		database.New(runner),
		project.New(),
		generate.NewEnvFile(),
		generate.NewMigration(),
		generate.NewManifest(),
		generate.NewClientLib(),
		generate.NewEditor(),
		generate.NewDocs(),
	}

	for _, p := range steps {
		if err := registry.Register(p); err != nil {
			return err
		}
	}
	return nil
}
