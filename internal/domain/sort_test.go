package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dated(url, day string) Article {
	a := Article{URL: url}
	if day != "" {
		ts, err := time.Parse("2006-01-02", day)
		if err != nil {
			panic(err)
		}
		a.PublishedAt = &ts
	}
	return a
}

func urls(articles []Article) []string {
	out := make([]string, len(articles))
	for i, a := range articles {
		out[i] = a.URL
	}
	return out
}

func TestSortArticles(t *testing.T) {
	input := []Article{
		dated("c", "2024-01-03"),
		dated("a", "2024-01-01"),
		dated("b", "2024-01-02"),
	}

	assert.Equal(t, []string{"c", "b", "a"}, urls(SortArticles(input, SortLatest)))
	assert.Equal(t, []string{"a", "b", "c"}, urls(SortArticles(input, SortOldest)))
	assert.Equal(t, []string{"c", "a", "b"}, urls(SortArticles(input, SortRelevance)))

	// input untouched
	assert.Equal(t, []string{"c", "a", "b"}, urls(input))
}

func TestSortArticles_StableAndUndatedLast(t *testing.T) {
	input := []Article{
		dated("undated-1", ""),
		dated("x", "2024-01-02"),
		dated("y", "2024-01-02"),
		dated("undated-2", ""),
		dated("z", "2024-01-01"),
	}

	assert.Equal(t, []string{"x", "y", "z", "undated-1", "undated-2"}, urls(SortArticles(input, SortLatest)))
	assert.Equal(t, []string{"z", "x", "y", "undated-1", "undated-2"}, urls(SortArticles(input, SortOldest)))
}

func TestSortArticles_Empty(t *testing.T) {
	assert.Equal(t, []Article{}, SortArticles(nil, SortLatest))
}

func TestParseSortOption(t *testing.T) {
	opt, err := ParseSortOption(" Latest ")
	require.NoError(t, err)
	assert.Equal(t, SortLatest, opt)

	_, err = ParseSortOption("popularity")
	assert.Error(t, err)
}

func TestNormalizeCategory(t *testing.T) {
	assert.Equal(t, DefaultCategory, NormalizeCategory(""))
	assert.Equal(t, DefaultCategory, NormalizeCategory("   "))
	assert.Equal(t, "technology", NormalizeCategory(" Technology "))
	assert.Equal(t, "weather", NormalizeCategory("weather"))
	assert.Contains(t, Categories, DefaultCategory)
}
