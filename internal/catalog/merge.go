package catalog

// MergeDetails fills gaps in item from details. Fields item already has are
// kept; tags are unioned with item's tags first.
func MergeDetails(item, details Item) Item {
	merged := item
	if merged.Genre == "" {
		merged.Genre = details.Genre
	}
	if merged.Year == 0 {
		merged.Year = details.Year
	}
	if merged.RecordLabel == "" {
		merged.RecordLabel = details.RecordLabel
	}
	if merged.CoverArtURL == "" {
		merged.CoverArtURL = details.CoverArtURL
	}
	if len(merged.Tracklist) == 0 && len(details.Tracklist) > 0 {
		merged.Tracklist = append([]Track(nil), details.Tracklist...)
	}
	tags := make([]string, 0, len(item.Tags)+len(details.Tags))
	tags = append(tags, item.Tags...)
	tags = append(tags, details.Tags...)
	merged.Tags = normalizeTags(tags)
	return merged
}
