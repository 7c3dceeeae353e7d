package slugify

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// separatorRun matches the runs of whitespace and punctuation that delimit
// words in display text. The hyphen is part of the set so that re-slugging an
// existing slug splits on the same boundaries it was joined with.
var separatorRun = regexp.MustCompile("[\t !\"#$%&'()*\\-/<=>?@\\[\\\\\\]^_`{|},.]+")

// asciiFold decomposes accented characters and strips the combining marks,
// turning e.g. "é" into "e". Characters with no ASCII decomposition are left
// untouched and filtered out later.
var asciiFold = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// Slugify converts display text into a lowercase ASCII identifier consisting
// of [a-z0-9] words joined by single hyphens. The result may be empty;
// callers must treat an empty slug as invalid for uniqueness-constrained
// fields. Slugify is idempotent: applying it to its own output returns the
// output unchanged.
func Slugify(text string) string {
	var words []string
	for _, segment := range separatorRun.Split(strings.ToLower(text), -1) {
		for _, word := range strings.Fields(fold(segment)) {
			if cleaned := keepAlphanumeric(word); cleaned != "" {
				words = append(words, cleaned)
			}
		}
	}
	return strings.Join(words, "-")
}

func fold(segment string) string {
	folded, _, err := transform.String(asciiFold, segment)
	if err != nil {
		return segment
	}
	return folded
}

func keepAlphanumeric(word string) string {
	var b strings.Builder
	b.Grow(len(word))
	for _, r := range word {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteByte(byte(r))
		}
	}
	return b.String()
}
