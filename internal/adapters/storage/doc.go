// Package storage provides the durable and session stores behind the
// persistence ports.
//
// Three KeyValueStore backends are available and selected by configuration:
//
//   - diskv: one file per key under a base directory, with an in-memory
//     read cache (the default)
//   - sqlite: a single kv table in an embedded SQLite database
//   - memory: a process-local map for tests and ephemeral runs
//
// QuoteStore layers the quote list and category preference on top of any
// backend. MemorySessionStore keeps per-session values that expire when idle.
package storage
