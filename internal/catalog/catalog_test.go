package catalog

import (
	"slices"
	"testing"

	"github.com/five82/aperture/internal/studio"
)

func images() []studio.GalleryImage {
	return []studio.GalleryImage{
		{ID: "1", Title: "Sunrise bump", Category: "maternity", Date: "2024-03-01"},
		{ID: "2", Title: "First smile", Category: "baby", Date: "2024-05-10"},
		{ID: "3", Title: "Awaiting", Category: "maternity", CreatedAt: "2024-06-01T08:00:00Z"},
		{ID: "4", Title: "Picnic", Category: "family", Date: "2023-12-24"},
		{ID: "5", Title: "moonlight", Category: "maternity", Date: "2024-01-15"},
	}
}

func ids(items []studio.GalleryImage) []string {
	out := make([]string, len(items))
	for i, item := range items {
		out[i] = string(item.ID)
	}
	return out
}

func TestDeriveFiltersAndSortsByTitle(t *testing.T) {
	got := Derive(images(), "maternity", SortTitle)
	want := []string{"3", "5", "1"}
	if !slices.Equal(ids(got), want) {
		t.Fatalf("Derive ids = %v, want %v", ids(got), want)
	}
	for _, img := range got {
		if img.Category != "maternity" {
			t.Fatalf("Derive returned %q item", img.Category)
		}
	}
}

func TestDeriveAllKeepsEverything(t *testing.T) {
	all := images()
	got := Derive(all, AllCategories, SortNewest)
	if len(got) != len(all) {
		t.Fatalf("len = %d, want %d", len(got), len(all))
	}
	want := []string{"3", "2", "1", "5", "4"}
	if !slices.Equal(ids(got), want) {
		t.Fatalf("newest order = %v, want %v", ids(got), want)
	}
}

func TestDeriveCategoryMatchIsExact(t *testing.T) {
	if got := Derive(images(), "Maternity", SortTitle); len(got) != 0 {
		t.Fatalf("case-insensitive match returned %v", ids(got))
	}
	if got := Derive(images(), "wedding", SortTitle); len(got) != 0 {
		t.Fatalf("unknown category returned %v", ids(got))
	}
}

func TestDeriveIsStableAndIdempotent(t *testing.T) {
	items := []studio.GalleryImage{
		{ID: "a", Title: "Same", Category: "baby"},
		{ID: "b", Title: "Same", Category: "baby"},
		{ID: "c", Title: "Other", Category: "baby"},
		{ID: "d", Title: "Same", Category: "baby"},
	}
	for _, key := range []SortKey{SortNewest, SortTitle, SortCategory} {
		once := Derive(items, AllCategories, key)
		twice := Derive(once, AllCategories, key)
		if !slices.Equal(ids(once), ids(twice)) {
			t.Fatalf("%s: Derive not idempotent: %v then %v", key, ids(once), ids(twice))
		}
	}
	if got := ids(Derive(items, AllCategories, SortTitle)); !slices.Equal(got, []string{"c", "a", "b", "d"}) {
		t.Fatalf("title ties reordered: %v", got)
	}
	if got := ids(Derive(items, AllCategories, SortNewest)); !slices.Equal(got, []string{"a", "b", "c", "d"}) {
		t.Fatalf("undated items reordered: %v", got)
	}
}

func TestDeriveDoesNotMutateInput(t *testing.T) {
	in := images()
	before := ids(in)
	_ = Derive(in, AllCategories, SortTitle)
	if !slices.Equal(ids(in), before) {
		t.Fatalf("input mutated: %v, want %v", ids(in), before)
	}
}

func TestSortKeyParseAndCycle(t *testing.T) {
	if ParseSortKey(" Title ") != SortTitle || ParseSortKey("category") != SortCategory {
		t.Fatalf("ParseSortKey did not recognise known keys")
	}
	if ParseSortKey("random") != SortNewest {
		t.Fatalf("ParseSortKey default = %q, want newest", ParseSortKey("random"))
	}
	k := SortNewest
	for _, want := range []SortKey{SortTitle, SortCategory, SortNewest} {
		k = k.Next()
		if k != want {
			t.Fatalf("Next = %q, want %q", k, want)
		}
	}
}

func TestCategoriesAndNextCategory(t *testing.T) {
	cats := Categories(images())
	want := []string{"maternity", "baby", "family"}
	if !slices.Equal(cats, want) {
		t.Fatalf("Categories = %v, want %v", cats, want)
	}

	seq := []string{AllCategories}
	cur := AllCategories
	for range 4 {
		cur = NextCategory(cats, cur)
		seq = append(seq, cur)
	}
	if !slices.Equal(seq, []string{"all", "maternity", "baby", "family", "all"}) {
		t.Fatalf("cycle = %v", seq)
	}
	if NextCategory(cats, "gone") != "maternity" {
		t.Fatalf("unknown category should restart the cycle")
	}
	if NextCategory(nil, "baby") != AllCategories {
		t.Fatalf("empty category list should stay on all")
	}
}

func TestActiveOrdersByRank(t *testing.T) {
	services := []studio.Service{
		{ID: "x", SortOrder: 3, IsActive: true},
		{ID: "y", SortOrder: 1, IsActive: false},
		{ID: "z", SortOrder: 1, IsActive: true},
		{ID: "w", SortOrder: 3, IsActive: true},
	}
	got := Active(services)
	var gotIDs []string
	for _, s := range got {
		gotIDs = append(gotIDs, string(s.ID))
	}
	if !slices.Equal(gotIDs, []string{"z", "x", "w"}) {
		t.Fatalf("Active = %v, want [z x w]", gotIDs)
	}
}

func TestCategoryLabel(t *testing.T) {
	cases := map[string]string{
		"all":          "All",
		"":             "All",
		"maternity":    "Maternity",
		"new-born":     "New Born",
		"theme_shoots": "Theme Shoots",
	}
	for in, want := range cases {
		if got := CategoryLabel(in); got != want {
			t.Fatalf("CategoryLabel(%q) = %q, want %q", in, got, want)
		}
	}
}
