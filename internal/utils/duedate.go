package utils

import (
	"fmt"
	"strings"
	"time"
)

// dueDateLayouts are tried in order. Drag-and-drop clients send RFC3339 with
// a trailing Z; date pickers send local timestamps without an offset.
var dueDateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02",
}

// ParseDueDate parses a due date from client input. An empty value clears
// the due date and returns (nil, nil).
func ParseDueDate(value string) (*time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil, nil
	}

	for _, layout := range dueDateLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			t = t.UTC()
			return &t, nil
		}
	}

	return nil, fmt.Errorf("unparseable due date %q", value)
}
