// Package catalog defines the record shape crate stores for owned and wanted
// releases, and the pure helpers that operate on it: boundary validation,
// sorting, enrichment merges, and picking the entry worth keeping from a set
// of duplicates.
//
// Item satisfies dedupe.Record (artist as primary text, title as secondary)
// so catalog slices can be handed straight to the matcher.
package catalog
