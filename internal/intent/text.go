package intent

import (
	"regexp"
	"strings"
)

var (
	whitespaceRE = regexp.MustCompile(`\s+`)
	quotedRE     = regexp.MustCompile(`'([^']+)'|"([^"]+)"`)
	slugBadRE    = regexp.MustCompile(`[^a-z0-9-]`)
	slugDashRE   = regexp.MustCompile(`-+`)
	htmlTagRE    = regexp.MustCompile(`<[^>]+>`)
	listSepRE    = regexp.MustCompile(`[,;|]`)
)

// CleanText collapses whitespace and strips one pair of wrapping quotes.
func CleanText(text string) string {
	text = strings.TrimSpace(whitespaceRE.ReplaceAllString(text, " "))
	if len(text) >= 2 {
		first, last := text[0], text[len(text)-1]
		if (first == '\'' && last == '\'') || (first == '"' && last == '"') {
			text = text[1 : len(text)-1]
		}
	}
	return strings.TrimSpace(text)
}

// FirstQuoted returns the first single- or double-quoted substring of span,
// or ("", false) when none is present.
func FirstQuoted(span string) (string, bool) {
	m := quotedRE.FindStringSubmatch(span)
	if m == nil {
		return "", false
	}
	if m[1] != "" {
		return m[1], true
	}
	return m[2], true
}

// Slug normalizes a project name to lowercase letters, digits, and hyphens.
func Slug(name string) string {
	name = strings.ToLower(CleanText(name))
	name = slugBadRE.ReplaceAllString(name, "-")
	name = slugDashRE.ReplaceAllString(name, "-")
	return strings.Trim(name, "-")
}

// TitleFromTopic converts a free-text topic into a presentable title.
func TitleFromTopic(topic string) string {
	words := strings.Fields(CleanText(topic))
	for i, word := range words {
		if len(word) > 0 {
			words[i] = strings.ToUpper(word[:1]) + word[1:]
		}
	}
	return strings.Join(words, " ")
}

// HTMLBody ensures body text carries basic markup: plain text is wrapped
// into paragraph tags, existing markup passes through untouched.
func HTMLBody(body string) string {
	body = strings.TrimSpace(body)
	if body == "" || htmlTagRE.MatchString(body) {
		return body
	}
	paragraphs := strings.Split(body, "\n\n")
	var builder strings.Builder
	for _, p := range paragraphs {
		p = CleanText(p)
		if p == "" {
			continue
		}
		builder.WriteString("<p>")
		builder.WriteString(p)
		builder.WriteString("</p>")
	}
	return builder.String()
}

// SplitList splits a comma/semicolon/pipe separated list into clean items.
func SplitList(raw string) []string {
	parts := listSepRE.Split(raw, -1)
	items := make([]string, 0, len(parts))
	for _, part := range parts {
		if p := CleanText(part); p != "" {
			items = append(items, p)
		}
	}
	return items
}
