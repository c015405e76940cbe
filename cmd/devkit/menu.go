package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/alexisbeaulieu97/devkit/internal/tui"
)

const (
	menuRunAll = "__all"
	menuServe  = "__serve"
	menuExit   = "__exit"
)

// runMenu drives the interactive session: render the numbered menu, run the
// selected entry, and return to the menu until the operator exits. Aborting
// a run ends the session with ErrAborted.
func runMenu(a *app) error {
	ctx := context.Background()
	a.prompter.Banner("devkit · local project setup")

	items := menuItems(a)

	for {
		choice, err := selectItem(a, items)
		if err != nil {
			return err
		}

		switch choice {
		case menuExit, "":
			return nil
		case menuRunAll:
			records, err := a.orchestrator.RunAll(ctx)
			if summary := tui.RenderSummary(records); summary != "" {
				fmt.Fprintln(a.prompter.Out(), summary)
			}
			if err != nil {
				return err
			}
		case menuServe:
			if err := runServe(ctx, a); err != nil {
				return err
			}
		default:
			if _, err := a.orchestrator.RunByID(ctx, choice); err != nil {
				return err
			}
		}
	}
}

func menuItems(a *app) []tui.Item {
	var items []tui.Item
	for _, p := range a.registry.Steps() {
		meta := p.Metadata()
		items = append(items, tui.Item{ID: meta.ID, Title: meta.Title})
	}
	items = append(items,
		tui.Item{ID: menuRunAll, Title: "Run all steps"},
		tui.Item{ID: menuServe, Title: "Start the dev server"},
		tui.Item{ID: menuExit, Title: "Exit"},
	)
	return items
}

// selectItem shows the menu and returns the chosen item ID. Interactive
// terminals get the Bubbletea menu; piped sessions fall back to a plain
// numbered prompt so scripted runs still work.
func selectItem(a *app, items []tui.Item) (string, error) {
	if a.prompter.IsTerminal() {
		model, err := tea.NewProgram(tui.NewMenu("What would you like to do?", items)).Run()
		if err != nil {
			return "", err
		}
		menu, ok := model.(tui.MenuModel)
		if !ok {
			return "", fmt.Errorf("unexpected menu model %T", model)
		}
		return menu.Choice(), nil
	}

	return selectItemPlain(a, items)
}

func selectItemPlain(a *app, items []tui.Item) (string, error) {
	for i, item := range items {
		a.prompter.Info(fmt.Sprintf("%2d) %s", i+1, item.Title))
	}

	for {
		raw, err := a.prompter.Ask("Select an option", "")
		if err != nil {
			if errors.Is(err, io.EOF) {
				return menuExit, nil
			}
			return "", err
		}

		index, convErr := strconv.Atoi(strings.TrimSpace(raw))
		if convErr != nil || index < 1 || index > len(items) {
			a.prompter.Warn(fmt.Sprintf("invalid selection %q: enter a number between 1 and %d", raw, len(items)))
			continue
		}
		return items[index-1].ID, nil
	}
}
