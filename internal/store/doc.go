// Package store provides SQLite-backed durable storage for comparison
// runs and their revision records.
//
// Each comparison run gets a token (UUIDv7, so tokens sort by creation
// time) and its flat revision list is written under that token. Writes
// are idempotent: re-recording a run or a revision under the same key is
// silently ignored, so a retried CLI invocation never duplicates rows.
//
// # Database Configuration
//
//   - WAL mode: Concurrent reads during writes
//   - synchronous=NORMAL: Balance durability/performance
//   - busy_timeout=5000: Wait for locks up to 5 seconds
//   - foreign_keys=ON: Enforce referential integrity
//
// Revision dates are stored as RFC 3339 text; the kind column holds the
// record's string kind ("inserted", "deleted", "format-changed") and the
// properties column a JSON array of changed property names, empty for
// non-format revisions.
package store
