// Package filter implements the in-memory search/filter/sort pipeline over
// a fetched equipment set.
package filter

import (
	"sort"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"equipment-tracker-backend/internal/model"
)

// SortKey selects the ordering applied after filtering.
type SortKey string

const (
	SortNameAsc  SortKey = "nameAsc"
	SortNameDesc SortKey = "nameDesc"
	SortDateAsc  SortKey = "dateAsc"
	SortDateDesc SortKey = "dateDesc"
)

// StatusAll is the status filter value that matches every record.
const StatusAll = "All"

// Query holds the three pipeline inputs.
type Query struct {
	// Search is matched case-insensitively as a substring of the name.
	Search string
	// Status is "All" (or empty) to match everything, otherwise an exact value.
	Status string
	// Sort is one of the SortKey values; anything else keeps id order.
	Sort SortKey
}

// Name comparison is locale-aware and case-insensitive.
var nameCollator = collate.New(language.English, collate.IgnoreCase)

// Apply runs the pipeline over records and returns a new slice.
// The input slice is never mutated.
func Apply(records []model.Equipment, q Query) []model.Equipment {
	out := make([]model.Equipment, 0, len(records))
	needle := strings.ToLower(strings.TrimSpace(q.Search))

	for _, r := range records {
		if needle != "" && !strings.Contains(strings.ToLower(r.Name), needle) {
			continue
		}
		if q.Status != "" && q.Status != StatusAll && string(r.Status) != q.Status {
			continue
		}
		out = append(out, r)
	}

	switch q.Sort {
	case SortNameAsc:
		sort.SliceStable(out, func(i, j int) bool {
			return nameCollator.CompareString(out[i].Name, out[j].Name) < 0
		})
	case SortNameDesc:
		sort.SliceStable(out, func(i, j int) bool {
			return nameCollator.CompareString(out[i].Name, out[j].Name) > 0
		})
	case SortDateAsc:
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].LastCleanedDate < out[j].LastCleanedDate
		})
	case SortDateDesc:
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].LastCleanedDate > out[j].LastCleanedDate
		})
	}

	return out
}
