package dedupe

import "crate/internal/textutil"

// Record is the read-only view of a catalog entry the matcher compares.
// Key is used only to track claimed records and is never compared for similarity.
type Record interface {
	Key() string
	Primary() string
	Secondary() string
}

// Thresholds holds the minimum similarity each field must reach. A Primary
// value of zero or less skips the primary comparison entirely.
type Thresholds struct {
	Primary   float64
	Secondary float64
}

// DefaultThresholds matches artist and title at textutil.DefaultThreshold.
func DefaultThresholds() Thresholds {
	return Thresholds{Primary: textutil.DefaultThreshold, Secondary: textutil.DefaultThreshold}
}

// Uniform applies the same threshold to both fields.
func Uniform(threshold float64) Thresholds {
	return Thresholds{Primary: threshold, Secondary: threshold}
}

// Matches reports whether a and b pass both field thresholds.
func (t Thresholds) Matches(a, b Record) bool {
	if t.Primary > 0 && !textutil.AreSimilar(a.Primary(), b.Primary(), t.Primary) {
		return false
	}
	return textutil.AreSimilar(a.Secondary(), b.Secondary(), t.Secondary)
}

// Text is a minimal Record for call sites that only have strings, such as a
// discography entry or a search query.
type Text struct {
	ID     string
	Artist string
	Title  string
}

func (t Text) Key() string       { return t.ID }
func (t Text) Primary() string   { return t.Artist }
func (t Text) Secondary() string { return t.Title }
