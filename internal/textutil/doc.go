// Package textutil provides the string similarity primitives behind crate's
// duplicate detection, plus small text presentation helpers.
//
// Similarity is based on Levenshtein edit distance computed over runes after
// lowercasing both inputs. The normalized score is
//
//	1 - distance / max(len(a), len(b))
//
// which lies in [0, 1] and is symmetric under swapping the arguments.
//
// AreSimilar fails closed: an empty string is never similar to anything,
// including another empty string, even though Similarity("", "") reports 1.0.
// Callers rely on that asymmetry so records with missing text never match.
package textutil
