// Package escape provides the escaping policies the CLI hands to the
// projector. The projector itself never decides how values are escaped.
package escape

import (
	"strings"

	"github.com/conneroisu/planwriter/internal/errors"
	"github.com/conneroisu/planwriter/internal/projector"
)

// shellSpecial lists the characters that force a value to be quoted for a
// POSIX shell.
const shellSpecial = " \t\n\"'\\$`!#&()*;<>?[]{}|~"

// None returns s unchanged.
func None(s string) string { return s }

// Ninja escapes the characters that are significant on a ninja build line:
// '$', ' ' and ':' are prefixed with '$', and newlines become "$\n".
func Ninja(s string) string {
	if !strings.ContainsAny(s, "$ :\n") {
		return s
	}
	var b strings.Builder
	b.Grow(len(s) + 4)
	for i := 0; i < len(s); i++ {
		switch c := s[i]; c {
		case '$', ' ', ':', '\n':
			b.WriteByte('$')
			b.WriteByte(c)
		default:
			b.WriteByte(c)
		}
	}
	return b.String()
}

// Shell quotes s for a POSIX shell when it contains anything the shell
// would interpret. Plain values are returned as is.
func Shell(s string) string {
	if s == "" {
		return "''"
	}
	if !strings.ContainsAny(s, shellSpecial) {
		return s
	}
	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}

// NinjaCommand prepares s for a ninja variable that ends up in a shell
// command: the value is shell-quoted, then '$' is doubled for ninja.
func NinjaCommand(s string) string {
	return strings.ReplaceAll(Shell(s), "$", "$$")
}

var policies = map[string]projector.Escaper{
	"none":          None,
	"ninja":         Ninja,
	"ninja_command": NinjaCommand,
	"shell":         Shell,
}

// ByName resolves an escaping mode from configuration.
func ByName(name string) (projector.Escaper, error) {
	esc, ok := policies[name]
	if !ok {
		return nil, errors.ErrUnknownEscape(name)
	}
	return esc, nil
}

// Names lists the accepted escaping modes.
func Names() []string {
	return []string{"none", "ninja", "ninja_command", "shell"}
}
