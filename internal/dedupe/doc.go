// Package dedupe decides which catalog records are probably the same release.
//
// All functions are generic over Record, take their thresholds per call, and
// keep no state between calls, so they are safe to use from any goroutine.
//
// Three call sites share the same pairwise test (primary text similar AND
// secondary text similar):
//
//   - FindPotentialDuplicate returns the first existing record that matches a
//     new candidate, in collection order. It does not look for the best match.
//   - FindDuplicateGroups partitions a whole collection into groups built
//     around a seed. Members are compared with the seed only, never with each
//     other, so a record that resembles a member but not the seed stays out of
//     the group. Grouping is O(n²) comparisons and intended for collections of
//     a few thousand records.
//   - Contains answers cross-list membership questions such as "is this
//     wantlist entry already owned?".
package dedupe
