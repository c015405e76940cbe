// Package engine runs steps through the retry/skip/exit controller and
// sequences the full ordered list.
package engine

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/alexisbeaulieu97/devkit/internal/config"
	"github.com/alexisbeaulieu97/devkit/internal/logger"
	"github.com/alexisbeaulieu97/devkit/internal/model"
	"github.com/alexisbeaulieu97/devkit/internal/plugin"
)

// maxAttempts bounds the retry loop for one step.
const maxAttempts = 3

// Prompter is the slice of the prompt layer the controller needs.
type Prompter interface {
	Success(msg string)
	Warn(msg string)
	Fail(msg string)
	Info(msg string)
	Choose(label string, options []string) (string, error)
}

// Controller executes one step at a time with bounded retry. After a
// failed attempt with attempts remaining the operator chooses retry, skip
// or exit; after the final failed attempt the choice narrows to skip or
// exit. Success at any attempt returns immediately.
type Controller struct {
	prompter Prompter
	log      *logger.Logger
}

// NewController creates a step controller.
func NewController(prompter Prompter, log *logger.Logger) *Controller {
	return &Controller{prompter: prompter, log: log}
}

// RunStep drives one plugin through the attempt loop and returns its
// operator-level outcome. The outcome never gates later steps; an aborted
// outcome means the operator ended the whole run.
func (c *Controller) RunStep(ctx context.Context, p plugin.Plugin, cfg *config.Config) model.OutcomeRecord {
	meta := p.Metadata()
	start := time.Now()

	rec := model.OutcomeRecord{
		StepID: meta.ID,
		Title:  meta.Title,
	}

	for rec.Attempts < maxAttempts {
		rec.Attempts++

		res, err := c.attempt(ctx, p, cfg)
		if err == nil {
			rec.Outcome = model.OutcomeSucceeded
			rec.Message = res.Message
			rec.Duration = time.Since(start)
			c.prompter.Success(fmt.Sprintf("%s: %s", meta.Title, res.Message))
			return rec
		}

		// A declined confirmation cannot be retried into success; the
		// operator said no and the run ends here.
		var declined *plugin.DeclinedError
		if errors.As(err, &declined) {
			rec.Outcome = model.OutcomeAborted
			rec.Message = declined.Error()
			rec.Duration = time.Since(start)
			c.prompter.Fail(fmt.Sprintf("%s: %s", meta.Title, declined.Error()))
			return rec
		}

		c.log.Error(err, "step attempt failed")
		c.prompter.Fail(fmt.Sprintf("%s failed (attempt %d/%d): %v", meta.Title, rec.Attempts, maxAttempts, err))

		if meta.Optional {
			rec.Outcome = model.OutcomeSkipped
			rec.Message = fmt.Sprintf("optional step failed: %v", err)
			rec.Duration = time.Since(start)
			c.prompter.Warn(fmt.Sprintf("%s is optional; continuing", meta.Title))
			return rec
		}

		if rec.Attempts < maxAttempts {
			choice, promptErr := c.prompter.Choose("How do you want to proceed?", []string{"retry", "skip", "exit"})
			if promptErr != nil {
				rec.Outcome = model.OutcomeAborted
				rec.Message = "input closed during failure prompt"
				rec.Duration = time.Since(start)
				return rec
			}

			switch choice {
			case "skip":
				rec.Outcome = model.OutcomeSkipped
				rec.Message = "skipped by operator"
				rec.Duration = time.Since(start)
				return rec
			case "exit":
				rec.Outcome = model.OutcomeAborted
				rec.Message = "exit chosen at failure prompt"
				rec.Duration = time.Since(start)
				return rec
			case "retry":
				// next iteration
			default:
				// Unrecognized input retries, and the attempt counter has
				// already advanced, so garbage input cannot loop forever.
				c.prompter.Warn(fmt.Sprintf("unrecognized answer %q, retrying", choice))
			}
		}
	}

	// All attempts consumed; only skip or exit remain.
	rec.Duration = time.Since(start)
	for {
		choice, promptErr := c.prompter.Choose("No attempts remain.", []string{"skip", "exit"})
		if promptErr != nil {
			rec.Outcome = model.OutcomeAborted
			rec.Message = "input closed during failure prompt"
			return rec
		}

		switch choice {
		case "skip":
			rec.Outcome = model.OutcomeSkipped
			rec.Message = "skipped by operator after final attempt"
			return rec
		case "exit":
			rec.Outcome = model.OutcomeAborted
			rec.Message = "exit chosen after final attempt"
			return rec
		default:
			c.prompter.Warn(fmt.Sprintf("unrecognized answer %q", choice))
		}
	}
}

// attempt runs one evaluate-then-apply cycle. The probe runs every
// attempt: a retry after a partial failure must see the current state, not
// the state from before the first try.
func (c *Controller) attempt(ctx context.Context, p plugin.Plugin, cfg *config.Config) (*model.StepResult, error) {
	meta := p.Metadata()

	eval, err := p.Evaluate(ctx, cfg)
	if err != nil {
		return nil, err
	}

	if !eval.RequiresAction {
		return &model.StepResult{
			StepID:  meta.ID,
			Status:  model.StatusSkipped,
			Message: eval.Message,
		}, nil
	}

	res, err := p.Apply(ctx, eval, cfg)
	if err != nil {
		return res, err
	}
	if res == nil {
		res = &model.StepResult{StepID: meta.ID, Status: model.StatusSuccess, Message: "completed"}
	}
	return res, nil
}
