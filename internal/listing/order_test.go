package listing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func names(entries []Entry) []string {
	out := make([]string, len(entries))
	for i, e := range entries {
		out[i] = e.Name
	}
	return out
}

func sized(name string, size int64) Entry {
	return Entry{Type: TypeFile, Name: name, Size: ptr(size)}
}

func dated(name, date string) Entry {
	return Entry{Type: TypeFile, Name: name, Date: ptr(date)}
}

func TestSortParentAlwaysFirst(t *testing.T) {
	configs := []SortConfig{
		{Criteria: CriteriaName, Order: Ascending},
		{Criteria: CriteriaName, Order: Descending},
		{Criteria: CriteriaSize, Order: Descending, DirectoriesFirst: true},
		{Criteria: CriteriaDate, Order: Descending},
	}

	for _, cfg := range configs {
		entries := []Entry{
			sized("a.mp3", 1),
			{Type: TypeDir, Name: "Zeta", Size: ptr(int64(0)), Date: ptr("2")},
			{Type: TypeDir, Name: "..", Size: ptr(int64(0)), Date: ptr("1")},
			sized("b.mp3", 9),
		}
		Sort(entries, cfg)
		assert.Equal(t, "..", entries[0].Name, "config %+v", cfg)
	}
}

func TestSortParentMustBeDirectory(t *testing.T) {
	entries := []Entry{
		{Type: TypeFile, Name: "a"},
		{Type: TypeFile, Name: ".."},
	}
	Sort(entries, SortConfig{Criteria: CriteriaName, Order: Descending})
	assert.Equal(t, []string{"a", ".."}, names(entries))
}

func TestSortDirectoriesFirst(t *testing.T) {
	entries := []Entry{
		sized("a.mp3", 10),
		{Type: TypeDirectory, Name: "zz"},
		sized("B.mp3", 5),
		{Type: TypeDir, Name: "aa"},
		{Type: TypeDir, Name: ".."},
	}

	Sort(entries, SortConfig{Criteria: CriteriaName, Order: Ascending, DirectoriesFirst: true})
	assert.Equal(t, []string{"..", "aa", "zz", "a.mp3", "B.mp3"}, names(entries))

	Sort(entries, SortConfig{Criteria: CriteriaName, Order: Descending, DirectoriesFirst: true})
	assert.Equal(t, []string{"..", "zz", "aa", "B.mp3", "a.mp3"}, names(entries))
}

func TestSortWithoutDirectoriesFirstMixes(t *testing.T) {
	entries := []Entry{
		{Type: TypeDir, Name: "m"},
		sized("b", 1),
		sized("z", 1),
	}
	Sort(entries, SortConfig{Criteria: CriteriaName, Order: Ascending})
	assert.Equal(t, []string{"b", "m", "z"}, names(entries))
}

func TestSortBySize(t *testing.T) {
	entries := []Entry{
		sized("big", 300),
		sized("small", 10),
		sized("mid", 20),
	}

	Sort(entries, SortConfig{Criteria: CriteriaSize, Order: Ascending})
	assert.Equal(t, []string{"small", "mid", "big"}, names(entries))

	Sort(entries, SortConfig{Criteria: CriteriaSize, Order: Descending})
	assert.Equal(t, []string{"big", "mid", "small"}, names(entries))
}

func TestSortBySizeMissing(t *testing.T) {
	entries := []Entry{
		sized("b", 5),
		{Type: TypeFile, Name: "nosize1"},
		sized("a", 1),
		{Type: TypeFile, Name: "nosize2"},
	}

	Sort(entries, SortConfig{Criteria: CriteriaSize, Order: Ascending})
	assert.Equal(t, []string{"nosize1", "nosize2", "a", "b"}, names(entries))

	Sort(entries, SortConfig{Criteria: CriteriaSize, Order: Descending})
	assert.Equal(t, []string{"b", "a", "nosize1", "nosize2"}, names(entries))
}

func TestSortByDate(t *testing.T) {
	entries := []Entry{
		dated("c", "2024-03-01"),
		dated("a", "2023-01-01"),
		dated("b", "2023-06-15"),
	}

	Sort(entries, SortConfig{Criteria: CriteriaDate, Order: Ascending})
	assert.Equal(t, []string{"a", "b", "c"}, names(entries))

	Sort(entries, SortConfig{Criteria: CriteriaDate, Order: Descending})
	assert.Equal(t, []string{"c", "b", "a"}, names(entries))
}

func TestCompareMissingDateTies(t *testing.T) {
	cfg := SortConfig{Criteria: CriteriaDate, Order: Ascending}
	assert.Equal(t, 0, Compare(dated("a", "2020"), Entry{Name: "b"}, cfg))
	assert.Equal(t, 0, Compare(Entry{Name: "z"}, dated("a", "2020"), cfg))
	assert.Equal(t, 0, Compare(Entry{Name: "z"}, Entry{Name: "a"}, cfg))
}

func TestSortIsStable(t *testing.T) {
	entries := []Entry{
		dated("first", "2020"),
		{Type: TypeFile, Name: "undated"},
		dated("second", "2020"),
		sized("Apple", 1),
		sized("apple", 1),
	}

	Sort(entries, SortConfig{Criteria: CriteriaDate, Order: Descending})
	assert.Equal(t, []string{"first", "undated", "second", "Apple", "apple"}, names(entries))

	byName := []Entry{sized("apple", 2), sized("Banana", 1), sized("Apple", 3)}
	Sort(byName, SortConfig{Criteria: CriteriaName, Order: Ascending})
	assert.Equal(t, []string{"apple", "Apple", "Banana"}, names(byName))
}

func TestCompareNamesCaseInsensitive(t *testing.T) {
	assert.Equal(t, 0, CompareNames(Entry{Name: "Apple"}, Entry{Name: "apple"}))
	assert.Negative(t, CompareNames(Entry{Name: "apple"}, Entry{Name: "Banana"}))
	assert.Positive(t, CompareNames(Entry{Name: "ZEBRA"}, Entry{Name: "ant"}))

	// The pure name comparator ignores parent and directory ranking.
	assert.Positive(t, CompareNames(Entry{Type: TypeDir, Name: "x"}, Entry{Type: TypeFile, Name: ".."}))

	cfg := SortConfig{Criteria: CriteriaName, Order: Ascending}
	assert.Equal(t, 0, Compare(Entry{Name: "Apple"}, Entry{Name: "apple"}, cfg))
}

func TestCompareZeroConfig(t *testing.T) {
	var cfg SortConfig
	assert.Negative(t, Compare(Entry{Name: "a"}, Entry{Name: "B"}, cfg))
}

func TestNeedsSort(t *testing.T) {
	assert.False(t, SortConfig{Criteria: CriteriaName}.NeedsSort())
	assert.False(t, SortConfig{}.NeedsSort())
	assert.True(t, SortConfig{Criteria: CriteriaName, DirectoriesFirst: true}.NeedsSort())
	assert.True(t, SortConfig{Criteria: CriteriaSize}.NeedsSort())
	assert.True(t, SortConfig{Criteria: CriteriaDate}.NeedsSort())
}

func TestParseCriteriaAndOrder(t *testing.T) {
	c, err := ParseCriteria("Size")
	require.NoError(t, err)
	assert.Equal(t, CriteriaSize, c)

	c, err = ParseCriteria("none")
	require.NoError(t, err)
	assert.Equal(t, CriteriaNone, c)

	_, err = ParseCriteria("color")
	assert.Error(t, err)

	o, err := ParseOrder("desc")
	require.NoError(t, err)
	assert.Equal(t, Descending, o)

	o, err = ParseOrder("-1")
	require.NoError(t, err)
	assert.Equal(t, Descending, o)

	o, err = ParseOrder("")
	require.NoError(t, err)
	assert.Equal(t, Ascending, o)

	_, err = ParseOrder("sideways")
	assert.Error(t, err)
}

func TestListingOrderUsesOwnConfig(t *testing.T) {
	l := New([]Entry{sized("b", 1), {Type: TypeDir, Name: "z"}, sized("a", 2)}, DefaultSortConfig())
	l.Order()
	assert.Equal(t, []string{"z", "a", "b"}, names(l.Entries))

	l.Sort = SortConfig{Criteria: CriteriaSize, Order: Descending}
	l.Order()
	assert.Equal(t, []string{"a", "b", "z"}, names(l.Entries))
}
