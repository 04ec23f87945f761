// Package internal contains the core implementation packages for planwriter.
//
// # Package Organization
//
//   - stream: the two-method output sink, decimal integer encoding, and
//     string and file sinks
//   - pagebuf: paged append-only buffer and the write-if-changed protocol
//   - projector: walks a configuration chain and streams one flag kind
//   - escape: escaping policies handed to the projector (ninja, shell, ...)
//   - plan: YAML build descriptions and configuration chain construction
//   - generate: renders and persists per-target flag files concurrently
//   - config: Viper-backed CLI configuration with validation
//   - errors: structured OutputError and per-target failure collection
//   - logging: slog-based structured logger
//   - metrics: persistence counters, optionally exported to prometheus
//   - watcher: debounced fsnotify watching of the build description
//   - fsutil: path existence queries
//
// # Data Flow
//
// A description is loaded by plan, each requested target's chain is
// rendered by generate into a pagebuf.Buffer through the stream helpers and
// the projector, and the buffer is persisted only when the file on disk
// differs. Unchanged outputs keep their modification time.
//
// # Testing Strategy
//
//   - Unit tests for every package use testify
//   - Property tests use gopter behind the "property" build tag
//   - Filesystem behavior is tested against afero.MemMapFs and, where
//     modification times matter, the real filesystem
package internal
