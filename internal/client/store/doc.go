// Package store persists the client's credentials between runs.
//
// # Overview
//
// A Store holds a handful of named string values (KeyToken, KeyEmail) with
// get/set/delete semantics:
//
//   - Get never fails: an unset key, or a value that cannot be read back,
//     is reported as absent.
//   - Set overwrites; it fails only when the storage medium does.
//   - Delete is idempotent.
//
// SQLiteStore is the durable implementation. Values are sealed with
// AES-256-GCM under a key derived (argon2id) from a caller-provided secret and
// a random per-database salt, so the database file alone does not reveal the
// bearer token. The schema is managed by embedded goose migrations.
//
// MemoryStore is a process-local implementation for tests and ephemeral runs.
//
// # Concurrency
//
// Each operation is an atomic single-key read or write. SetMany writes several
// keys in one transaction. No other coordination is provided.
package store
