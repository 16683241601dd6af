package sanitizer

import (
	"html"
	"regexp"
	"strings"
	"unicode"
)

var (
	whitespaceRegex = regexp.MustCompile(`\s+`)
	tagRegex        = regexp.MustCompile(`<[^>]*>`)
	dotsRegex       = regexp.MustCompile(`\.{2,}`)
)

// CollapseWhitespace replaces runs of whitespace with a single space and
// trims the result.
func CollapseWhitespace(s string) string {
	return strings.TrimSpace(whitespaceRegex.ReplaceAllString(s, " "))
}

// JoinLines converts a multi-line string to a single line.
func JoinLines(s string) string {
	s = strings.NewReplacer("\r\n", " ", "\n", " ", "\r", " ").Replace(s)
	return CollapseWhitespace(s)
}

// StripHTML removes HTML tags and unescapes HTML entities.
func StripHTML(s string) string {
	return html.UnescapeString(tagRegex.ReplaceAllString(s, ""))
}

// KeepDigits keeps only numeric digits.
func KeepDigits(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsDigit(r) {
			return r
		}
		return -1
	}, s)
}

// NormalizeEmail trims and lowercases an address and collapses repeated dots
// in the local part. Input without exactly one "@" is only trimmed and
// lowercased.
func NormalizeEmail(email string) string {
	email = strings.ToLower(strings.TrimSpace(email))

	local, domain, ok := strings.Cut(email, "@")
	if !ok || strings.Contains(domain, "@") {
		return email
	}

	local = strings.Trim(dotsRegex.ReplaceAllString(local, "."), ".")
	return local + "@" + domain
}
