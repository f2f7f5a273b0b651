package scrape

import (
	"regexp"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Extraction is what one profile page yields. Zero value means the markup
// was absent; extraction never fails outright.
type Extraction struct {
	RegionRank string
	Rank       string
	LP         int
}

// Extractor pulls rank data out of raw profile-page HTML. The markup is
// third-party and shifts without notice, so the strategy is swappable and
// implementations must return partial results instead of erroring on
// malformed or schema-shifted input.
type Extractor interface {
	Extract(html string) Extraction
}

var (
	ladderRankRe = regexp.MustCompile(`Ladder Rank\s*<span[^>]*>([\d,]+)</span>`)
	rankInfoRe   = regexp.MustCompile(`<strong[^>]*first-letter:uppercase[^>]*>([^<]+)</strong><span[^>]*>([\d,]+)<!--[^>]*-->\s*LP</span>`)
)

// RegexExtractor matches the profile site's current markup with two
// patterns: the ladder-rank span and the styled tier label followed by an
// LP span.
type RegexExtractor struct{}

func NewRegexExtractor() RegexExtractor {
	return RegexExtractor{}
}

func (RegexExtractor) Extract(html string) Extraction {
	out := Extraction{}

	if m := ladderRankRe.FindStringSubmatch(html); m != nil {
		out.RegionRank = m[1]
	}

	if m := rankInfoRe.FindStringSubmatch(html); m != nil {
		out.Rank = formatRank(m[1])
		if lp, err := strconv.Atoi(strings.ReplaceAll(m[2], ",", "")); err == nil {
			out.LP = lp
		}
	}

	return out
}

// formatRank title-cases each word so inconsistent upstream capitalization
// ("GOLD IV", "gold IV") normalizes to one form. Only the first letter of a
// word changes; the rest is kept as-is.
func formatRank(tier string) string {
	words := strings.Fields(strings.TrimSpace(tier))
	for i, w := range words {
		r, size := utf8.DecodeRuneInString(w)
		words[i] = string(unicode.ToUpper(r)) + w[size:]
	}
	return strings.Join(words, " ")
}

// ParseLadderPosition converts a scraped ladder-position string ("1,234")
// to its numeric value. Blank or unparsable input returns ok=false, which
// callers must treat as worst-possible when comparing accounts.
func ParseLadderPosition(s string) (int, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}

	n, err := strconv.Atoi(strings.ReplaceAll(s, ",", ""))
	if err != nil {
		return 0, false
	}
	return n, true
}
