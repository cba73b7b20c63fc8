package merge

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// Prompt asks on out, field by field, whether to adopt the other value and
// reads y/n answers from in. Anything other than y/yes keeps the existing
// value, and so does end of input.
func Prompt(in io.Reader, out io.Writer) Policy {
	scanner := bufio.NewScanner(in)
	return func(c Conflict) map[string]bool {
		fmt.Fprintf(out, "\n%s %q is defined more than once\n  first: %s\n  other: %s\n",
			c.Kind, c.ID, c.SelfFile, c.OtherFile)

		decisions := make(map[string]bool, len(c.Diff))
		for _, d := range c.Diff {
			fmt.Fprintf(out, "  %s:\n    first: %s\n    other: %s\n  use other? [y/N] ",
				d.Field, orNone(d.Self), orNone(d.Other))
			answer := ""
			if scanner.Scan() {
				answer = strings.ToLower(strings.TrimSpace(scanner.Text()))
			}
			decisions[d.Field] = answer == "y" || answer == "yes"
		}
		return decisions
	}
}

func orNone(s string) string {
	if s == "" {
		return "(none)"
	}
	return s
}
