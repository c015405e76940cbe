// Package generate holds the file-generation steps: every plugin here
// probes for a file under the project directory and renders it from the
// embedded template tree when absent.
package generate

import (
	"fmt"
	"os"

	"github.com/alexisbeaulieu97/devkit/internal/model"
	"github.com/alexisbeaulieu97/devkit/internal/plugin"
)

func fileExists(path string) (bool, error) {
	_, err := os.Stat(path)
	if err == nil {
		return true, nil
	}
	if os.IsNotExist(err) {
		return false, nil
	}
	return false, err
}

func satisfied(stepID, msg string) *model.EvaluationResult {
	return &model.EvaluationResult{
		StepID:         stepID,
		CurrentState:   model.StatusSatisfied,
		RequiresAction: false,
		Message:        msg,
	}
}

func missing(stepID, msg string) *model.EvaluationResult {
	return &model.EvaluationResult{
		StepID:         stepID,
		CurrentState:   model.StatusMissing,
		RequiresAction: true,
		Message:        msg,
	}
}

func alreadyDone(stepID string) *model.StepResult {
	return &model.StepResult{
		StepID:  stepID,
		Status:  model.StatusSkipped,
		Message: "no changes needed",
	}
}

func probeErr(stepID, path string, err error) error {
	return plugin.NewStateError(stepID, fmt.Errorf("checking %s: %w", path, err))
}
