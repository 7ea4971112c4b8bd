package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func article(url, image, title string) Article {
	return Article{URL: url, URLToImage: image, Title: title}
}

func TestFilterHeadlines(t *testing.T) {
	tests := []struct {
		name  string
		input []Article
		want  []Article
	}{
		{
			name:  "nil input yields empty slice",
			input: nil,
			want:  []Article{},
		},
		{
			name: "drops records missing url or image",
			input: []Article{
				article("https://a.example/1", "https://img.example/1.jpg", "one"),
				article("", "https://img.example/2.jpg", "two"),
				article("https://a.example/3", "", "three"),
				article("   ", "https://img.example/4.jpg", "four"),
				article("https://a.example/5", "\t", "five"),
			},
			want: []Article{
				article("https://a.example/1", "https://img.example/1.jpg", "one"),
			},
		},
		{
			name: "headlines do not require a title",
			input: []Article{
				article("https://a.example/1", "https://img.example/1.jpg", ""),
				article("https://a.example/2", "https://img.example/2.jpg", RemovedSentinel),
			},
			want: []Article{
				article("https://a.example/1", "https://img.example/1.jpg", ""),
				article("https://a.example/2", "https://img.example/2.jpg", RemovedSentinel),
			},
		},
		{
			name: "keeps order and duplicates",
			input: []Article{
				article("https://a.example/2", "i", "b"),
				article("https://a.example/1", "i", "a"),
				article("https://a.example/2", "i", "b"),
			},
			want: []Article{
				article("https://a.example/2", "i", "b"),
				article("https://a.example/1", "i", "a"),
				article("https://a.example/2", "i", "b"),
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FilterHeadlines(tt.input))
		})
	}
}

func TestFilterSearch(t *testing.T) {
	input := []Article{
		article("https://a.example/1", "https://img.example/1.jpg", "Election results"),
		article("https://a.example/2", "", "No image"),
		article("https://a.example/3", "https://img.example/3.jpg", "  "),
		article("https://a.example/4", "https://img.example/4.jpg", RemovedSentinel),
		article("https://a.example/5", "https://img.example/5.jpg", "Story [Removed]"),
		article("https://a.example/6", "https://img.example/6.jpg", "Recount begins"),
	}

	got := FilterSearch(input)

	assert.Equal(t, []Article{input[0], input[5]}, got)
}

func TestFilter_RetainsIffPredicate(t *testing.T) {
	values := []string{"", " ", "x"}
	titles := []string{"", " ", "t", RemovedSentinel}

	for _, u := range values {
		for _, img := range values {
			for _, title := range titles {
				a := article(u, img, title)
				urlOK := u == "x"
				imgOK := img == "x"
				titleOK := title == "t"

				assert.Equal(t, urlOK && imgOK, len(FilterHeadlines([]Article{a})) == 1, "headline %+v", a)
				assert.Equal(t, urlOK && imgOK && titleOK, len(FilterSearch([]Article{a})) == 1, "search %+v", a)
			}
		}
	}
}
