package library

import (
	"errors"
	"fmt"

	"crate/internal/catalog"
)

// ErrWrongList is returned when an operation targets an item on the other list.
var ErrWrongList = errors.New("item is on the wrong list")

// DuplicateError reports that an item resembles one already stored. Callers
// can retry with AddOptions.Force to keep both.
type DuplicateError struct {
	Candidate catalog.Item
	Existing  catalog.Item
}

func (e *DuplicateError) Error() string {
	return fmt.Sprintf("%q by %s looks like existing item %s (%q by %s)",
		e.Candidate.Title, e.Candidate.Artist, e.Existing.ID, e.Existing.Title, e.Existing.Artist)
}
