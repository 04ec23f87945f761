package stream

import "strings"

// StringSink collects everything written to it in memory. It is meant for
// small outputs and tests; large generated files go through pagebuf.Buffer.
type StringSink struct {
	b strings.Builder
}

// Write implements Sink.
func (s *StringSink) Write(p []byte) (int, error) {
	return s.b.Write(p)
}

// WriteByte implements Sink.
func (s *StringSink) WriteByte(c byte) error {
	return s.b.WriteByte(c)
}

// WriteString lets WriteString skip the []byte conversion.
func (s *StringSink) WriteString(str string) (int, error) {
	return s.b.WriteString(str)
}

// String returns the collected text.
func (s *StringSink) String() string {
	return s.b.String()
}

// Len returns the number of bytes collected.
func (s *StringSink) Len() int {
	return s.b.Len()
}

// Release returns the collected text and empties the sink.
func (s *StringSink) Release() string {
	out := s.b.String()
	s.b.Reset()
	return out
}
