package ui

import (
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

// Confirm asks a yes/no question on the terminal.
func Confirm(title, description string) (bool, error) {
	var ok bool
	err := huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(title).
				Description(description).
				Affirmative("Post").
				Negative("Cancel").
				WithButtonAlignment(lipgloss.Left).
				Value(&ok),
		),
	).WithShowHelp(false).Run()
	if err != nil {
		return false, err
	}
	return ok, nil
}
