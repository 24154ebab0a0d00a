package ui

import (
	"strings"
)

// ListItem is one line of a target or host list
type ListItem struct {
	Label  string
	Note   string // muted suffix, e.g. the target key
	Active bool
}

// RenderList renders items one per line with an active marker. An empty
// list renders the notice instead.
func RenderList(items []ListItem, notice string) string {
	if len(items) == 0 {
		return ListNoteStyle.Render("  " + notice)
	}

	lines := make([]string, 0, len(items))
	for _, it := range items {
		var line string
		if it.Active {
			line = ListActiveStyle.Render("  " + ActiveMarker + " " + it.Label)
		} else {
			line = ListItemStyle.Render("  " + IdleMarker + " " + it.Label)
		}
		if it.Note != "" {
			line += " " + ListNoteStyle.Render("("+it.Note+")")
		}
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n")
}
