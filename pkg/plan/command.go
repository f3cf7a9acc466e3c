package plan

import "strings"

// Command is one program invocation in a generated script.
type Command struct {
	Runner string
	Args   []string
}

// String renders the command on one line, double-quoting arguments that
// contain spaces.
func (c Command) String() string {
	parts := make([]string, 0, len(c.Args)+1)
	parts = append(parts, c.Runner)
	for _, arg := range c.Args {
		parts = append(parts, Quote(arg))
	}
	return strings.Join(parts, " ")
}

// Quote wraps arg in double quotes when it contains a space.
func Quote(arg string) string {
	if strings.Contains(arg, " ") {
		return `"` + arg + `"`
	}
	return arg
}
