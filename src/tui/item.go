package tui

import (
	"fmt"

	"pipeguard/src/contracts"
)

// Item wraps a recorded run and implements bubbles/list.Item.
type Item struct {
	Run contracts.Run
}

// FilterValue is the value used for fuzzy filtering.
func (i Item) FilterValue() string { return i.Run.ID + " " + i.Run.Branch }

// Title returns the primary text for the item (required by list.Item).
func (i Item) Title() string { return i.Run.ID }

// Description returns the secondary text for the item (required by list.Item).
func (i Item) Description() string {
	return fmt.Sprintf("%s %ds %s", i.Run.Status, i.Run.Duration, i.Run.Branch)
}
