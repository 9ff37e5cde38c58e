package quantify

import (
	"github.com/fpda/backend/internal/types"
)

// Dated pairs an entry with the day it was expanded to.
type Dated[E any] struct {
	Day   types.Day
	Entry E
}

// Expansion is the result of expanding entries over a date range.
type Expansion[E any] struct {
	Rows              []Dated[E]
	SkippedDuplicates int
}

// Expand builds the cross product of every day in [from, to] with
// every entry. The range is inclusive on both ends, a reversed range
// yields no rows. Pairs for which exists reports true are skipped and
// counted instead of being returned, keyOf identifies an entry within
// a day for that check.
func Expand[E any](from, to types.Day, entries []E, keyOf func(E) string, exists func(day types.Day, key string) bool) Expansion[E] {
	var result Expansion[E]

	for day := from; !day.After(to); day = day.AddDays(1) {
		for _, entry := range entries {
			if exists != nil && exists(day, keyOf(entry)) {
				result.SkippedDuplicates++
				continue
			}

			result.Rows = append(result.Rows, Dated[E]{Day: day, Entry: entry})
		}
	}

	return result
}
