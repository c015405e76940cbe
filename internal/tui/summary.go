package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/alexisbeaulieu97/devkit/internal/model"
)

// RenderSummary renders the post-run outcome table.
func RenderSummary(records []model.OutcomeRecord) string {
	if len(records) == 0 {
		return ""
	}

	var lines []string
	var succeeded, skipped int
	for _, rec := range records {
		line := fmt.Sprintf(" %s %s", OutcomeIcon(rec.Outcome), rec.Title)
		if strings.TrimSpace(rec.Message) != "" {
			line = fmt.Sprintf("%s: %s", line, rec.Message)
		}
		if rec.Duration > 0 {
			line = fmt.Sprintf("%s (%s)", line, rec.Duration.Truncate(10*time.Millisecond))
		}
		lines = append(lines, line)

		switch rec.Outcome {
		case model.OutcomeSucceeded:
			succeeded++
		case model.OutcomeSkipped:
			skipped++
		}
	}

	total := fmt.Sprintf("Steps: %d succeeded, %d skipped, %d total", succeeded, skipped, len(records))
	if last := records[len(records)-1]; last.Outcome == model.OutcomeAborted {
		total += " (run aborted)"
	}

	sections := []string{
		sectionStyle.Render("Summary"),
		strings.Join(lines, "\n"),
		summaryStyle.Render(total),
	}
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// OutcomeIcon returns the glyph representing a step outcome.
func OutcomeIcon(outcome model.StepOutcome) string {
	switch outcome {
	case model.OutcomeSucceeded:
		return successStyle.Render("✓")
	case model.OutcomeSkipped:
		return skippedStyle.Render("⊘")
	case model.OutcomeAborted:
		return failureStyle.Render("✗")
	default:
		return skippedStyle.Render("…")
	}
}
