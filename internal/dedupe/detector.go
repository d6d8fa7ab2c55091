package dedupe

// FindPotentialDuplicate returns the first record in existing that matches
// candidate under th. It stops at the first hit rather than ranking matches.
func FindPotentialDuplicate[T Record](candidate Record, existing []T, th Thresholds) (T, bool) {
	for _, record := range existing {
		if th.Matches(record, candidate) {
			return record, true
		}
	}
	var zero T
	return zero, false
}
