// Package catalog derives the displayed subset of a collection: filter by
// category, then a stable sort. Every function here is pure and leaves its
// input untouched.
package catalog

import (
	"cmp"
	"slices"
	"strings"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// AllCategories disables category filtering.
const AllCategories = "all"

// SortKey selects the ordering applied by Derive.
type SortKey string

const (
	SortNewest   SortKey = "newest"
	SortTitle    SortKey = "title"
	SortCategory SortKey = "category"
)

var sortCycle = []SortKey{SortNewest, SortTitle, SortCategory}

// ParseSortKey maps a persisted or user-supplied value to a SortKey,
// defaulting to SortNewest.
func ParseSortKey(s string) SortKey {
	switch SortKey(strings.ToLower(strings.TrimSpace(s))) {
	case SortTitle:
		return SortTitle
	case SortCategory:
		return SortCategory
	default:
		return SortNewest
	}
}

// Next returns the following key in the UI cycle.
func (k SortKey) Next() SortKey {
	i := slices.Index(sortCycle, k)
	return sortCycle[(i+1)%len(sortCycle)]
}

// Label returns the human-readable name of the key.
func (k SortKey) Label() string {
	switch k {
	case SortTitle:
		return "Title"
	case SortCategory:
		return "Category"
	default:
		return "Newest"
	}
}

// Item is anything Derive can filter and sort.
type Item interface {
	CategoryName() string
	TitleText() string
	Timestamp() time.Time
}

// Derive returns the items whose category equals category (all of them for
// AllCategories), stably sorted by key. The match is exact and
// case-sensitive. Items without a timestamp sort last under SortNewest.
func Derive[T Item](items []T, category string, key SortKey) []T {
	out := make([]T, 0, len(items))
	for _, item := range items {
		if category == AllCategories || item.CategoryName() == category {
			out = append(out, item)
		}
	}

	switch key {
	case SortNewest:
		slices.SortStableFunc(out, func(a, b T) int {
			return b.Timestamp().Compare(a.Timestamp())
		})
	case SortTitle:
		c := newCollator()
		slices.SortStableFunc(out, func(a, b T) int {
			return c.CompareString(a.TitleText(), b.TitleText())
		})
	case SortCategory:
		c := newCollator()
		slices.SortStableFunc(out, func(a, b T) int {
			return c.CompareString(a.CategoryName(), b.CategoryName())
		})
	}
	return out
}

// Categories returns the distinct non-empty categories of items in
// first-seen order.
func Categories[T Item](items []T) []string {
	seen := make(map[string]struct{}, len(items))
	var out []string
	for _, item := range items {
		name := item.CategoryName()
		if name == "" {
			continue
		}
		if _, ok := seen[name]; ok {
			continue
		}
		seen[name] = struct{}{}
		out = append(out, name)
	}
	return out
}

// NextCategory cycles through AllCategories followed by categories.
// An unknown current value restarts the cycle at the first category.
func NextCategory(categories []string, current string) string {
	if len(categories) == 0 {
		return AllCategories
	}
	if current == AllCategories {
		return categories[0]
	}
	i := slices.Index(categories, current)
	if i < 0 {
		return categories[0]
	}
	if i == len(categories)-1 {
		return AllCategories
	}
	return categories[i+1]
}

// Ranked is a collection item carrying an active flag and a display order.
type Ranked interface {
	Enabled() bool
	Rank() int
}

// Active keeps the enabled items, stably ordered by rank.
func Active[T Ranked](items []T) []T {
	out := make([]T, 0, len(items))
	for _, item := range items {
		if item.Enabled() {
			out = append(out, item)
		}
	}
	slices.SortStableFunc(out, func(a, b T) int {
		return cmp.Compare(a.Rank(), b.Rank())
	})
	return out
}

// CategoryLabel formats a category slug for display ("new-born" -> "New Born").
func CategoryLabel(category string) string {
	if category == AllCategories || category == "" {
		return "All"
	}
	words := strings.FieldsFunc(category, func(r rune) bool {
		return r == '-' || r == '_' || r == ' '
	})
	return cases.Title(language.English).String(strings.Join(words, " "))
}

func newCollator() *collate.Collator {
	return collate.New(language.English)
}
