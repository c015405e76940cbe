package plugin

import "github.com/alexisbeaulieu97/devkit/internal/config"

// Metadata describes a step plugin's identity and controller-relevant
// behavior.
type Metadata struct {
	// ID is the stable step identifier, e.g. "envfile".
	ID string

	// Title is the human-readable step name shown in the menu and summary.
	Title string

	// Description explains what the step provisions.
	Description string

	// Optional marks steps whose failure degrades to a warning instead of
	// the retry/skip/exit prompt.
	Optional bool

	// Needs names the configuration group the step reads, so the
	// orchestrator can resolve missing values before the step runs.
	Needs config.Group
}
