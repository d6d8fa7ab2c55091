// Package library implements the catalog workflows behind the crate CLI.
//
// Service composes the SQLite store with the fuzzy-matching core: it rejects
// likely duplicates on insert, scans a collection for duplicate groups, and
// checks wantlist and discography entries against owned items. Thresholds come
// from the [matching] config section so each call site can be tuned.
package library
