package match

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLevenshtein(t *testing.T) {
	tests := []struct {
		a, b string
		want int
	}{
		{"", "", 0},
		{"a", "a", 0},
		{"", "abc", 3},
		{"abc", "", 3},
		{"a", "b", 1},
		{"ab", "abc", 1},
		{"kitten", "sitting", 3},
		{"saturday", "sunday", 3},
		{"Date", "date", 1},
		{"Bufer", "Buffer", 1},
		{"héllo", "hello", 1},
	}

	for _, tt := range tests {
		t.Run(tt.a+"_"+tt.b, func(t *testing.T) {
			assert.Equal(t, tt.want, Levenshtein(tt.a, tt.b))
			assert.Equal(t, tt.want, Levenshtein(tt.b, tt.a))
		})
	}
}

func TestSimilarity(t *testing.T) {
	assert.InDelta(t, 1.0, Similarity("", ""), 1e-9)
	assert.InDelta(t, 1.0, Similarity("Map", "Map"), 1e-9)
	assert.InDelta(t, 0.0, Similarity("abc", "xyz"), 1e-9)
	assert.InDelta(t, 0.75, Similarity("Date", "Data"), 1e-9)
}

func TestFold(t *testing.T) {
	assert.Equal(t, "arraybuffer", Fold("ArrayBuffer"))
	assert.Equal(t, "arraybuffer", Fold("array_buffer"))
	assert.Equal(t, "arraybuffer", Fold("Array-Buffer"))
	assert.Equal(t, "", Fold(""))
}

func TestSuggest(t *testing.T) {
	candidates := []string{"Date", "Data", "Error", "RegExp", "Buffer", "ArrayBuffer"}

	assert.Equal(t, []string{"Date", "Data"}, Suggest("Dat", candidates, 3))
	assert.Equal(t, []string{"Buffer"}, Suggest("bufer", candidates, 1))
	assert.Equal(t, []string{"RegExp"}, Suggest("regexp", candidates, 3))
	assert.Empty(t, Suggest("Zzzzzz", candidates, 3))
	assert.Empty(t, Suggest("Date", []string{"Date"}, 3))
	assert.Nil(t, Suggest("Date", candidates, 0))
}
