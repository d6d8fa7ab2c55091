package dedupe

import "crate/internal/textutil"

// Contains reports whether any record in target matches candidate under th.
func Contains[T Record](target []T, candidate Record, th Thresholds) bool {
	_, found := FindPotentialDuplicate(candidate, target, th)
	return found
}

// AllSimilar reports whether every value resembles reference at threshold.
// An empty slice is vacuously similar.
func AllSimilar(values []string, reference string, threshold float64) bool {
	for _, value := range values {
		if !textutil.AreSimilar(value, reference, threshold) {
			return false
		}
	}
	return true
}
