package projector

import (
	"github.com/conneroisu/planwriter/internal/stream"
)

// Origin says how a configuration reached a target.
type Origin int

const (
	// OriginTarget marks configuration set directly on the target.
	OriginTarget Origin = iota
	// OriginInherited marks configuration pulled in through a dependency.
	OriginInherited
)

// String returns the string representation of the origin
func (o Origin) String() string {
	switch o {
	case OriginTarget:
		return "target"
	case OriginInherited:
		return "inherited"
	default:
		return "unknown"
	}
}

// Entry is one element of a configuration chain.
type Entry struct {
	Values *ConfigValues
	Origin Origin
}

// Chain is a target's configurations in precedence order.
type Chain []Entry

// Mode selects which part of the chain a walk visits.
type Mode int

const (
	// All visits the target's own configuration and everything inherited.
	All Mode = iota
	// InheritedOnly skips configuration set directly on the target.
	InheritedOnly
)

// Escaper serializes a raw value. A nil Escaper writes values unchanged.
type Escaper func(string) string

// Walk visits every entry of chain selected by mode, in chain order, and
// for each calls write on the values returned by get, in their order.
func Walk[T any](out stream.Sink, chain Chain, mode Mode, get func(*ConfigValues) []T, write func(stream.Sink, T)) {
	for _, entry := range chain {
		if entry.Values == nil {
			continue
		}
		if mode == InheritedOnly && entry.Origin == OriginTarget {
			continue
		}
		for _, v := range get(entry.Values) {
			write(out, v)
		}
	}
}

// WriteStrings writes each selected value as a space followed by the
// escaped value. Nothing else is emitted, so an empty selection writes
// nothing.
func WriteStrings(out stream.Sink, chain Chain, mode Mode, get Accessor, esc Escaper) {
	Walk[string](out, chain, mode, get, escapedWriter(esc))
}

func escapedWriter(esc Escaper) func(stream.Sink, string) {
	return func(out stream.Sink, s string) {
		_ = out.WriteByte(' ')
		if esc != nil {
			s = esc(s)
		}
		stream.WriteString(out, s)
	}
}
