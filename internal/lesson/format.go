package lesson

import "strings"

// EmptyContentHTML is what Format returns for blank input.
const EmptyContentHTML = "<p>No content available.</p>"

// contentStyle is appended once per formatted lesson. Each lesson's HTML is
// self-contained, so the block is not deduplicated across lessons.
const contentStyle = `<style>
.lesson-content {
    font-family: Arial, sans-serif;
    line-height: 1.6;
    color: #333;
    padding: 20px;
}
.lesson-content p {
    margin-bottom: 15px;
}
</style>`

// Format converts plain text into an HTML fragment suitable for the
// GetCourse rich-text field.
//
// Input that already looks like an HTML document (contains <html or <body in
// any case) passes through unchanged, so Format(Format(x)) == Format(x) for
// such input. Otherwise blank-line-delimited paragraphs become <p> blocks,
// single newlines become <br>, and the whole fragment is wrapped in a styled
// container.
func Format(text string) string {
	if strings.TrimSpace(text) == "" {
		return EmptyContentHTML
	}

	lower := strings.ToLower(text)
	if strings.Contains(lower, "<html") || strings.Contains(lower, "<body") {
		return text
	}

	var b strings.Builder
	b.WriteString(`<div class="lesson-content">`)
	for _, para := range strings.Split(text, "\n\n") {
		para = strings.TrimSpace(para)
		if para == "" {
			continue
		}
		b.WriteString("<p>")
		b.WriteString(strings.ReplaceAll(para, "\n", "<br>\n"))
		b.WriteString("</p>")
	}
	b.WriteString("</div>\n")
	b.WriteString(contentStyle)
	return b.String()
}
