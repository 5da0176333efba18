// Package boilerplate screens out passages that are site furniture rather
// than prose worth classifying: navigation bars, footers, legal notices,
// subscription prompts.
//
// The filter stems each word token with the Snowball English stemmer and
// measures the ratio of tokens found in a lexicon of boilerplate vocabulary.
// Passages past the ratio threshold are skipped during document scans, which
// keeps rationale output focused on things people actually wrote.
package boilerplate

import (
	"regexp"
	"strings"

	"github.com/kljensen/snowball"
)

// lexicon contains stemmed words characteristic of boilerplate passages.
var lexicon = map[string]struct{}{
	// navigation and interaction
	"about": {}, "account": {}, "browse": {}, "click": {}, "contact": {},
	"cooki": {}, "follow": {}, "home": {}, "login": {}, "menu": {},
	"navig": {}, "newslett": {}, "profil": {}, "search": {}, "share": {},
	"sign": {}, "subscrib": {}, "updat": {},

	// legal and footer text
	"copyright": {}, "disclaim": {}, "licens": {}, "permiss": {},
	"polici": {}, "privaci": {}, "reserv": {}, "right": {}, "term": {},
	"trademark": {},

	// publishing chrome
	"advertis": {}, "archiv": {}, "author": {}, "categori": {},
	"comment": {}, "edit": {}, "footer": {}, "post": {}, "publish": {},
	"relat": {}, "tag": {},
}

// skipThreshold is the boilerplate-token ratio above which a passage is
// skipped. Prose rarely exceeds it; link farms and footers usually do.
const skipThreshold = 0.4

// Filter decides whether a passage is boilerplate.
type Filter struct {
	tokenRegex *regexp.Regexp
}

// NewFilter creates a Filter ready for use.
func NewFilter() *Filter {
	return &Filter{
		tokenRegex: regexp.MustCompile(`\b[a-zA-Z]+\b`),
	}
}

// Skip reports whether a passage should be excluded from classification.
// Empty passages are always skipped.
func (f *Filter) Skip(passage string) bool {
	tokens := f.tokenRegex.FindAllString(strings.ToLower(passage), -1)
	if len(tokens) == 0 {
		return true
	}

	hits := 0
	for _, token := range tokens {
		stemmed, err := snowball.Stem(token, "english", true)
		if err != nil {
			stemmed = token
		}
		if _, found := lexicon[stemmed]; found {
			hits++
		}
	}

	return float64(hits)/float64(len(tokens)) > skipThreshold
}
