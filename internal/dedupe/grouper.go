package dedupe

// FindDuplicateGroups partitions records into groups of probable duplicates.
//
// Records are visited in order. Each unclaimed record seeds a group and every
// later unclaimed record that matches the seed joins it. Groups with at least
// two members are returned and all of their members become claimed; a seed
// that attracted nothing stays unclaimed and is not returned.
//
// Membership is tested against the seed only. Given seed A, with B close to A
// and C close to B but not to A, the result is [A B] and C is left out.
func FindDuplicateGroups[T Record](records []T, th Thresholds) [][]T {
	groups := make([][]T, 0)
	claimed := make(map[string]struct{})

	for i, seed := range records {
		if _, ok := claimed[seed.Key()]; ok {
			continue
		}
		group := []T{seed}
		for _, candidate := range records[i+1:] {
			if _, ok := claimed[candidate.Key()]; ok {
				continue
			}
			if th.Matches(seed, candidate) {
				group = append(group, candidate)
			}
		}
		if len(group) < 2 {
			continue
		}
		groups = append(groups, group)
		for _, member := range group {
			claimed[member.Key()] = struct{}{}
		}
	}
	return groups
}
