// Package stream defines the output sink that every text producer in
// planwriter writes through, together with the convenience helpers layered
// on top of it.
//
// A Sink only has to accept raw bytes and single bytes. Strings and integers
// are written with the package-level helpers, so new sinks (network
// connections, test spies, counting sinks) plug in by implementing two
// methods:
//
//	var buf pagebuf.Buffer
//	stream.WriteString(&buf, "build ")
//	stream.WriteInt(&buf, 42)
//	buf.WriteByte('\n')
package stream

// Sink is the write side of a text producer. Implementations are not
// expected to be safe for concurrent use; a sink is borrowed by a single
// producer for the duration of a call.
type Sink interface {
	// Write appends p. Sinks that can fail record the failure themselves
	// (see FileSink.Err); the return values follow io.Writer.
	Write(p []byte) (int, error)

	// WriteByte appends a single byte.
	WriteByte(c byte) error
}

// WriteString appends s to the sink.
func WriteString(s Sink, str string) {
	if len(str) == 0 {
		return
	}
	if sw, ok := s.(interface{ WriteString(string) (int, error) }); ok {
		_, _ = sw.WriteString(str)
		return
	}
	_, _ = s.Write([]byte(str))
}

// WriteStrings appends each string in order with no separator.
func WriteStrings(s Sink, strs ...string) {
	for _, str := range strs {
		WriteString(s, str)
	}
}

// WriteLine appends str followed by a newline.
func WriteLine(s Sink, str string) {
	WriteString(s, str)
	_ = s.WriteByte('\n')
}
