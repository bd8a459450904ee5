package config

import (
	"fmt"
	"strconv"
	"strings"
)

// Choice is the decoded outcome of one line of picker input.
type Choice struct {
	Keep  bool // empty input, keep the active configuration
	Quit  bool // q, leave the picker
	Index int  // zero-based catalog index when neither flag is set
}

// ParseChoice decodes interactive picker input against a catalog of max
// entries. Empty input keeps the current configuration, q quits, and a
// number between 1 and max selects that entry.
func ParseChoice(input string, max int) (Choice, error) {
	input = strings.TrimSpace(input)
	switch input {
	case "":
		return Choice{Keep: true}, nil
	case "q", "Q":
		return Choice{Quit: true}, nil
	}
	n, err := strconv.Atoi(input)
	if err != nil {
		return Choice{}, fmt.Errorf("invalid selection %q: enter a number, Enter, or q", input)
	}
	if n < 1 || n > max {
		return Choice{}, fmt.Errorf("selection %d out of range 1-%d", n, max)
	}
	return Choice{Index: n - 1}, nil
}
