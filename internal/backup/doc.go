// Package backup exports the catalog to a JSON document and restores it.
//
// The document holds both lists plus a lastUpdated timestamp. Exports are
// written atomically and serialized through a lock file next to the target so
// two exports never interleave. Imports either replace the whole catalog in
// one transaction or merge incoming items into the existing ones, folding
// likely duplicates together instead of storing them twice.
package backup
