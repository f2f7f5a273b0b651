package scrape

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

const profileHTML = `
<div id="content-header">
  <ul><li><a><span>Ladder Rank <span class="text-gray-500">1,234</span></a></li></ul>
  <div class="rank-info">
    <strong class="first-letter:uppercase text-xl">grandmaster</strong><span class="text-gray-300">1,024<!-- --> LP</span>
  </div>
</div>`

func TestExtractFullProfile(t *testing.T) {
	got := NewRegexExtractor().Extract(profileHTML)

	assert.Equal(t, "1,234", got.RegionRank)
	assert.Equal(t, "Grandmaster", got.Rank)
	assert.Equal(t, 1024, got.LP)
}

func TestExtractMissingRankMarkup(t *testing.T) {
	inputs := []string{
		"",
		"<html><body>nothing here</body></html>",
		"<div>Ladder Rank but no span</div>",
		strings.Repeat("<p>filler</p>", 100),
	}

	for _, input := range inputs {
		got := NewRegexExtractor().Extract(input)

		assert.Equal(t, "", got.Rank)
		assert.Equal(t, 0, got.LP)
		assert.Equal(t, "", got.RegionRank)
	}
}

func TestExtractLadderRankOnly(t *testing.T) {
	html := `<span>Ladder Rank <span class="x">987</span></span>`

	got := NewRegexExtractor().Extract(html)

	assert.Equal(t, "987", got.RegionRank)
	assert.Equal(t, "", got.Rank)
	assert.Equal(t, 0, got.LP)
}

func TestExtractStripsThousandsSeparatorsFromLP(t *testing.T) {
	html := `<strong class="first-letter:uppercase">challenger</strong><span>1,512<!--x--> LP</span>`

	got := NewRegexExtractor().Extract(html)

	assert.Equal(t, "Challenger", got.Rank)
	assert.Equal(t, 1512, got.LP)
}

func TestExtractMalformedHTMLDoesNotPanic(t *testing.T) {
	assert.NotPanics(t, func() {
		NewRegexExtractor().Extract("<div><strong class='first-letter:uppercase'>gold")
	})
}

func TestFormatRankTitleCasesEachWord(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"gold IV", "Gold IV"},
		{"GRANDMASTER", "GRANDMASTER"},
		{"  emerald   II ", "Emerald II"},
		{"", ""},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, formatRank(tt.in))
	}
}

func TestParseLadderPosition(t *testing.T) {
	tests := []struct {
		in     string
		want   int
		wantOK bool
	}{
		{"1,234", 1234, true},
		{"500", 500, true},
		{"", 0, false},
		{"   ", 0, false},
		{"abc", 0, false},
	}

	for _, tt := range tests {
		got, ok := ParseLadderPosition(tt.in)
		assert.Equal(t, tt.wantOK, ok, "input %q", tt.in)
		assert.Equal(t, tt.want, got, "input %q", tt.in)
	}
}
