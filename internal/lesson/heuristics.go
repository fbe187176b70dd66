package lesson

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

const (
	maxTitleLineLen     = 100
	maxTitleWords       = 10
	titleScanLines      = 5
	maxDescriptionRunes = 200
)

// DeriveTitle picks a lesson title from the file name and the leading content
// lines. The file name minus its extension is the default; a heading-like
// line near the top of the content replaces it. This is a best-effort
// heuristic: file names are often generic ("Lesson1.docx") while the first
// short, capitalized line tends to be the real title. Case classification is
// Unicode-aware, not locale-specific.
func DeriveTitle(fileName, text string) string {
	title := stripExtension(fileName)

	scanned := 0
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		scanned++
		if scanned > titleScanLines {
			break
		}
		if utf8.RuneCountInString(line) < maxTitleLineLen && looksLikeTitle(line) {
			title = line
			break
		}
	}

	return strings.TrimSpace(title)
}

func stripExtension(name string) string {
	if i := strings.LastIndexByte(name, '.'); i > 0 {
		return name[:i]
	}
	return name
}

// looksLikeTitle accepts a line that is entirely upper-case, or short (at
// most ten words) with an upper-case first rune.
func looksLikeTitle(line string) bool {
	if isAllUpper(line) {
		return true
	}
	if len(strings.Fields(line)) > maxTitleWords {
		return false
	}
	r := []rune(line)[0]
	return unicode.IsUpper(r)
}

// isAllUpper reports whether the string contains at least one cased rune and
// no lower-case runes.
func isAllUpper(s string) bool {
	cased := false
	for _, r := range s {
		if unicode.IsLower(r) {
			return false
		}
		if unicode.IsUpper(r) {
			cased = true
		}
	}
	return cased
}

// DeriveDescription builds a short lesson description. An explicit metadata
// description wins; otherwise the first paragraph of the content is used,
// truncated to 200 runes with an ellipsis marker. With no content at all, a
// "Lesson from <name>" string is synthesized.
func DeriveDescription(text, metaDescription, nameFallback string) string {
	desc := strings.TrimSpace(metaDescription)

	if desc == "" && strings.TrimSpace(text) != "" {
		first := text
		if i := strings.Index(text, "\n\n"); i >= 0 {
			first = text[:i]
		}
		first = strings.TrimSpace(first)
		if r := []rune(first); len(r) > maxDescriptionRunes {
			first = string(r[:maxDescriptionRunes]) + "..."
		}
		desc = first
	}

	if desc == "" {
		name := nameFallback
		if name == "" {
			name = "Google Drive"
		}
		desc = "Lesson from " + name
	}

	return strings.TrimSpace(desc)
}
