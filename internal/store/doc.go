// Package store persists the catalog in SQLite and exposes the preferences
// port used for view settings.
//
// The Store manages the database connection, schema initialization, and CRUD
// operations for collection and wantlist items. Items keep their insertion
// order (rowid), which is the order the duplicate scanner walks, so listing
// is deterministic across runs.
//
// Schema changes bump schemaVersion in schema.go; opening a database written
// with another version fails with ErrSchemaMismatch rather than migrating.
package store
