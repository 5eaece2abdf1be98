// Package command interprets completed command-line input such as ":s/a/b/".
package command

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrInvalidSubstitute is returned for a substitute without both pattern and replacement.
	ErrInvalidSubstitute = errors.New("invalid substitute command")
	// ErrEmptyPattern is returned for a substitute whose pattern is empty.
	ErrEmptyPattern = errors.New("empty search pattern")
	// ErrUnknownCommand is returned for anything that is not a substitute.
	ErrUnknownCommand = errors.New("unknown command")
)

// Substitution replaces every literal occurrence of From with To.
//
// Both ":s" and ":%s" apply to every line. The pattern is split on "/", so
// neither From nor To can contain a slash.
type Substitution struct {
	From string
	To   string
}

// Result is the outcome of parsing a command line. Message is always set and
// is meant for the status line.
type Result struct {
	Substitution *Substitution
	Message      string
	Err          error
}

// Parse interprets input, which normally starts with ":". A missing colon is
// added before matching. Parse never panics; failures are reported in Result.
func Parse(input string) Result {
	full := input
	if !strings.HasPrefix(full, ":") {
		full = ":" + full
	}
	if !strings.HasPrefix(full, ":s/") && !strings.HasPrefix(full, ":%s/") {
		return Result{
			Message: "Unknown command: " + input,
			Err:     fmt.Errorf("%w: %q", ErrUnknownCommand, input),
		}
	}

	parts := strings.Split(full, "/")
	if len(parts) < 3 {
		return Result{
			Message: "Invalid substitute command format",
			Err:     ErrInvalidSubstitute,
		}
	}
	from, to := parts[1], parts[2]
	if from == "" {
		return Result{
			Message: "Empty search pattern",
			Err:     ErrEmptyPattern,
		}
	}
	return Result{
		Substitution: &Substitution{From: from, To: to},
		Message:      fmt.Sprintf(`Replaced all occurrences of "%s" with "%s"`, from, to),
	}
}
