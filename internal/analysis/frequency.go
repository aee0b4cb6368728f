package analysis

import (
	"sort"

	"dataprof/domain/dataset"
	"dataprof/domain/profile"
)

// MissingLabel is the frequency-table bucket for missing values. Missing is
// its own category, not an omission: a column that is half gaps should say
// so in its table.
const MissingLabel = "<NA>"

// Tabulate builds the frequency table of a categorical column: distinct
// display labels with counts and percentages of all rows, ordered by count
// descending and label ascending on ties.
func Tabulate(col *dataset.Column, totalRows int) profile.FrequencyTable {
	counts := make(map[string]int)
	for _, v := range col.Values {
		label := MissingLabel
		if !v.IsMissing {
			label = v.Display()
		}
		counts[label]++
	}

	entries := make([]profile.FrequencyEntry, 0, len(counts))
	for label, count := range counts {
		pct := 0.0
		if totalRows > 0 {
			pct = round2(float64(count) / float64(totalRows) * 100)
		}
		entries = append(entries, profile.FrequencyEntry{Label: label, Count: count, Pct: pct})
	}

	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Count != entries[j].Count {
			return entries[i].Count > entries[j].Count
		}
		return entries[i].Label < entries[j].Label
	})

	return profile.FrequencyTable{Column: col.Name, Entries: entries}
}
