package content

import (
	"slices"
	"strings"
)

// Sort orders entries in place. Titles compare byte-wise, so uppercase sorts
// before lowercase. Both orders are stable.
func Sort(entries []Entry, byTimestamp bool) {
	if byTimestamp {
		slices.SortStableFunc(entries, CompareTimestamp)
		return
	}
	slices.SortStableFunc(entries, CompareTitle)
}

func CompareTitle(a, b Entry) int {
	return strings.Compare(a.Title, b.Title)
}

// CompareTimestamp puts entries with a valid timestamp first, in ascending
// time order. Ties and entries without one fall back to CompareTitle.
func CompareTimestamp(a, b Entry) int {
	av, bv := a.HasTimestamp(), b.HasTimestamp()
	switch {
	case av && bv:
		if c := a.Timestamp.Compare(b.Timestamp); c != 0 {
			return c
		}
	case av:
		return -1
	case bv:
		return 1
	}
	return CompareTitle(a, b)
}
