package feed

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// extractSummary strips markup from an entry's summary field and truncates the
// plain text to summaryMaxChars characters.
func extractSummary(markup string) string {
	markup = strings.TrimSpace(markup)
	if markup == "" {
		return ""
	}

	text := markup

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(markup))
	if err == nil {
		text = doc.Text()
	}

	return truncate(strings.TrimSpace(text), summaryMaxChars)
}

func truncate(text string, maxChars int) string {
	runes := []rune(text)
	if len(runes) <= maxChars {
		return text
	}

	return strings.TrimSpace(string(runes[:maxChars]))
}
