package singular

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// Singularize returns the singular form of word. Words it does not
// recognize as plural are returned unchanged, so Singularize is total and
// idempotent on singular input.
func Singularize(word string) string {
	if utf8.RuneCountInString(word) < 2 {
		return word
	}
	head, tail := splitLast(word)
	if utf8.RuneCountInString(tail) < 3 {
		return word
	}
	return head + segment(tail)
}

// splitLast splits a compound identifier before its last word. Words
// are delimited by '_', '-' and lower-to-upper case transitions.
func splitLast(word string) (string, string) {
	cut := 0
	var prev rune
	for i, r := range word {
		switch {
		case r == '_' || r == '-':
			cut = i + 1
		case i > 0 && unicode.IsUpper(r) && unicode.IsLower(prev):
			cut = i
		}
		prev = r
	}
	return word[:cut], word[cut:]
}

func segment(w string) string {
	lower := strings.ToLower(w)
	if uncountable[lower] || singulars[lower] {
		return w
	}
	if s, ok := irregular[lower]; ok {
		return matchWord(s, w)
	}
	if s, ok := applyRules(w, latin); ok {
		return s
	}
	if ieExceptions[lower] {
		return w[:len(w)-1]
	}
	for _, end := range singularEndings {
		if hasSuffixFold(w, end) {
			return w
		}
	}
	if s, ok := consonantUses(w); ok {
		return s
	}
	if s, ok := applyRules(w, regular); ok {
		return s
	}
	return w
}

// singulars holds the targets of the irregular table.
var singulars = func() map[string]bool {
	m := make(map[string]bool, len(irregular))
	for _, s := range irregular {
		m[s] = true
	}
	return m
}()

func applyRules(w string, rules []suffixRule) (string, bool) {
	for _, rule := range rules {
		if !hasSuffixFold(w, rule.suffix) || len(w) == len(rule.suffix) {
			continue
		}
		stem := w[:len(w)-len(rule.suffix)]
		return stem + matchSuffix(rule.repl, w), true
	}
	return "", false
}

// consonantUses maps bonuses to bonus and statuses to status while
// leaving causes and houses to the generic rule.
func consonantUses(w string) (string, bool) {
	const suf = "uses"
	if !hasSuffixFold(w, suf) || len(w) <= len(suf) {
		return "", false
	}
	before, _ := utf8.DecodeLastRuneInString(w[:len(w)-len(suf)])
	if strings.ContainsRune("aeiouAEIOU", before) || !unicode.IsLetter(before) {
		return "", false
	}
	return w[:len(w)-2], true
}

func hasSuffixFold(w, suf string) bool {
	return len(w) >= len(suf) && strings.EqualFold(w[len(w)-len(suf):], suf)
}

// matchSuffix cases repl like the last letter of w.
func matchSuffix(repl, w string) string {
	last, _ := utf8.DecodeLastRuneInString(w)
	if unicode.IsUpper(last) {
		return strings.ToUpper(repl)
	}
	return repl
}

// matchWord cases the replacement word s like w.
func matchWord(s, w string) string {
	switch {
	case strings.ToUpper(w) == w:
		return strings.ToUpper(s)
	case startsUpper(w):
		r, n := utf8.DecodeRuneInString(s)
		return string(unicode.ToUpper(r)) + s[n:]
	}
	return s
}

func startsUpper(w string) bool {
	r, _ := utf8.DecodeRuneInString(w)
	return unicode.IsUpper(r)
}
