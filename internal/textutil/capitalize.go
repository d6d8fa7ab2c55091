package textutil

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// CapitalizeWords upper-cases the first letter of every space-separated word
// and lower-cases the rest. Runs of spaces are preserved.
func CapitalizeWords(value string) string {
	if value == "" {
		return ""
	}
	caser := cases.Title(language.Und)
	words := strings.Split(value, " ")
	for i, word := range words {
		if word == "" {
			continue
		}
		words[i] = caser.String(word)
	}
	return strings.Join(words, " ")
}
