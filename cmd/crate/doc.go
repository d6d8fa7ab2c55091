// Command crate is the command-line interface for a personal CD and vinyl
// catalog. It records owned items and a wantlist in a local SQLite database,
// flags likely duplicates on entry, reviews duplicate groups, and compares the
// wantlist or an artist's discography against what is already owned.
package main
