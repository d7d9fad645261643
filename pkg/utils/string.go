// Package utils provides common utility functions.
package utils

import (
	"strings"
	"unicode/utf8"
)

// entityReplacements are applied in order, so "&amp;lt;" decodes all the way to "<".
var entityReplacements = [][2]string{
	{"&amp;", "&"},
	{"&lt;", "<"},
	{"&gt;", ">"},
	{"&quot;", `"`},
	{"&#39;", "'"},
}

// forbiddenFilenameChars cannot appear in file names on common platforms.
const forbiddenFilenameChars = `<>:"/\|?*`

// maxFilenameRunes bounds CleanFilename output before the ellipsis.
const maxFilenameRunes = 200

// StringHelper provides string utility functions.
type StringHelper struct{}

// NewStringHelper creates a new string helper.
func NewStringHelper() *StringHelper {
	return &StringHelper{}
}

// TrimWhitespace removes leading and trailing whitespace.
func (s *StringHelper) TrimWhitespace(str string) string {
	return strings.TrimSpace(str)
}

// NormalizeWhitespace replaces multiple whitespace with single space.
func (s *StringHelper) NormalizeWhitespace(str string) string {
	return strings.Join(strings.Fields(str), " ")
}

// DecodeEntities decodes the HTML entities the video API leaves in titles.
func (s *StringHelper) DecodeEntities(str string) string {
	for _, r := range entityReplacements {
		str = strings.ReplaceAll(str, r[0], r[1])
	}

	return str
}

// TruncateString truncates string to max runes.
func (s *StringHelper) TruncateString(str string, maxLength int) string {
	if utf8.RuneCountInString(str) <= maxLength {
		return str
	}

	return string([]rune(str)[:maxLength]) + "..."
}

// CleanFilename replaces characters that are illegal in file names, collapses
// whitespace and bounds the length.
func (s *StringHelper) CleanFilename(name string) string {
	cleaned := strings.Map(func(r rune) rune {
		if strings.ContainsRune(forbiddenFilenameChars, r) {
			return '_'
		}

		return r
	}, name)

	cleaned = s.NormalizeWhitespace(cleaned)

	return strings.TrimSpace(s.TruncateString(cleaned, maxFilenameRunes))
}
