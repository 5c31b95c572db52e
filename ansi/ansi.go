// Package ansi implements minimal colourised formatting of output text using ANSI escape sequences.
//
// Strings passed to [Sprint] may contain placeholders of the form ${NAME}, where NAME is one of the
// ANSI codes declared below. Placeholders are stripped unless both stdout and stderr are terminals,
// so piped output (and test harnesses) see plain text.
package ansi

import (
	"fmt"
	"os"
	"strings"

	"golang.org/x/term"
)

// Enabled reports whether ANSI escape sequences will be emitted by [Sprint].
// It is true only when both stdout and stderr are connected to a terminal.
var Enabled = term.IsTerminal(int(os.Stdout.Fd())) && term.IsTerminal(int(os.Stderr.Fd()))

var codes = map[string]string{
	"RESET": "\x1b[0m",
	"BOLD":  "\x1b[1m",
	"RED":   "\x1b[31m",
	"CYAN":  "\x1b[36m",
}

var (
	withColour = newReplacer(false)
	noColour   = newReplacer(true)
)

func newReplacer(strip bool) *strings.Replacer {
	oldnew := make([]string, 0, 2*len(codes))
	for name, code := range codes {
		oldnew = append(oldnew, "${"+name+"}")
		if strip {
			oldnew = append(oldnew, "")
		} else {
			oldnew = append(oldnew, code)
		}
	}
	return strings.NewReplacer(oldnew...)
}

// Sprint formats its operands with [fmt.Sprint] and expands any ${NAME} placeholders found in string
// operands into ANSI escape sequences, or removes them entirely if [Enabled] is false.
func Sprint(a ...any) string {
	replacer := noColour
	if Enabled {
		replacer = withColour
	}
	for i, v := range a {
		if s, ok := v.(string); ok {
			a[i] = replacer.Replace(s)
		} else {
			a[i] = fmt.Sprint(v)
		}
	}
	return fmt.Sprint(a...)
}
