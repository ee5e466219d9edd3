package bridge

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Detector decides whether an observed DOM mutation fragment announces an
// accepted submission. Pluggable so the text heuristic can be unit-tested
// against canned fixtures or replaced outright.
type Detector interface {
	Accepted(html string) bool
}

// TokenDetector mirrors the page heuristic: the fragment text must contain
// the acceptance token together with at least one contextual token
// (runtime, memory or testcase count), which filters out unrelated page
// text that merely mentions "Accepted". The heuristic depends on
// undocumented page markup and is knowingly fragile; false negatives fall
// back to the slow poll path.
type TokenDetector struct{}

const acceptedToken = "accepted"

var contextTokens = []string{"runtime", "memory", "testcases passed"}

func NewTokenDetector() Detector {
	return &TokenDetector{}
}

func (d *TokenDetector) Accepted(html string) bool {
	text := strings.ToLower(extractText(html))
	if !strings.Contains(text, acceptedToken) {
		return false
	}
	for _, token := range contextTokens {
		if strings.Contains(text, token) {
			return true
		}
	}
	return false
}

// extractText flattens an HTML fragment to its visible text. Raw input that
// fails to parse is matched as-is, so plain-text reports still work.
func extractText(html string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return html
	}
	return doc.Text()
}
