package emit

import (
	"bytes"
	"embed"
	"fmt"
	"strings"
	"text/template"
	"unicode"

	"github.com/arc-language/appanvil/pkg/plan"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

var templates = template.Must(
	template.New("emit").Funcs(template.FuncMap{
		"psq":     psQuote,
		"psbool":  psBool,
		"psarray": psArray,
		"bq":      batchText,
		"becho":   batchEcho,
		"join":    strings.Join,
		"oneline": oneLine,
	}).ParseFS(templateFS, "templates/*.tmpl"),
)

func render(name string, data any) string {
	var buf bytes.Buffer
	if err := templates.ExecuteTemplate(&buf, name, data); err != nil {
		// Templates are embedded and their data is built here, so a failure
		// is a programming error.
		panic(fmt.Sprintf("emit: rendering %s: %v", name, err))
	}
	return buf.String()
}

// psQuoteReplacer doubles every character PowerShell accepts as a single
// quote, typographic ones included.
var psQuoteReplacer = strings.NewReplacer(
	"'", "''",
	"\u2018", "\u2018\u2018",
	"\u2019", "\u2019\u2019",
	"\u201a", "\u201a\u201a",
	"\u201b", "\u201b\u201b",
)

// psQuote renders s as a single-quoted PowerShell string on one line.
func psQuote(s string) string {
	return "'" + psQuoteReplacer.Replace(oneLine(s)) + "'"
}

func psBool(v bool) string {
	if v {
		return "$true"
	}
	return "$false"
}

// psArray renders values as a PowerShell array literal.
func psArray(values []string) string {
	quoted := make([]string, len(values))
	for i, v := range values {
		quoted[i] = psQuote(v)
	}
	return "@(" + strings.Join(quoted, ", ") + ")"
}

// oneLine replaces control characters, including line breaks, with spaces
// so catalog text cannot start a new statement in a generated script.
func oneLine(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsControl(r) {
			return ' '
		}
		return r
	}, s)
}

var batchTextReplacer = strings.NewReplacer(
	`"`, `'`,
	`%`, ``,
	`!`, ``,
	`^`, ``,
	`&`, `and`,
	`|`, `-`,
	`<`, `(`,
	`>`, `)`,
)

// batchText makes s safe inside a double-quoted call argument. Characters
// cmd.exe would expand or treat as syntax are replaced or dropped.
func batchText(s string) string {
	return batchTextReplacer.Replace(oneLine(s))
}

// batchUnsafe are the characters dropped from unquoted batch arguments.
const batchUnsafe = "&|<>^%!\"()"

// batchArg drops control characters and cmd.exe syntax from one command
// argument.
func batchArg(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsControl(r) || strings.ContainsRune(batchUnsafe, r) {
			return -1
		}
		return r
	}, s)
}

// batchCommand renders cmd for a batch script. Safe arguments render exactly
// as Command.String does.
func batchCommand(cmd plan.Command) string {
	parts := make([]string, 0, len(cmd.Args)+1)
	parts = append(parts, batchArg(cmd.Runner))
	for _, arg := range cmd.Args {
		parts = append(parts, plan.Quote(batchArg(arg)))
	}
	return strings.Join(parts, " ")
}

// batchEcho escapes s for an echo inside a parenthesised block.
var batchEcho = strings.NewReplacer(
	`^`, `^^`,
	`&`, `^&`,
	`|`, `^|`,
	`<`, `^<`,
	`>`, `^>`,
	`(`, `^(`,
	`)`, `^)`,
).Replace
