package utils

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/pkg/errors"
)

// HtmlToText converts rich html into plain text.
func HtmlToText(html string) (string, error) {
	reader := strings.NewReader(html)
	doc, err := goquery.NewDocumentFromReader(reader)
	if err != nil {
		return "", errors.Wrap(err, "fail to convert rich-html text to node")
	}
	// goquery Text() will not replace br with newline
	doc.Find("br").AfterHtml("\n")
	doc.Find("p, h1, h2, h3, li").AfterHtml("\n")
	return strings.TrimSpace(doc.Text()), nil
}

// TextSnippet returns the first maxRunes runes of the html's text, cut on a
// word boundary and suffixed with "..." when truncated.
func TextSnippet(html string, maxRunes int) string {
	text, err := HtmlToText(html)
	if err != nil {
		return ""
	}
	text = strings.Join(strings.Fields(text), " ")
	runes := []rune(text)
	if len(runes) <= maxRunes {
		return text
	}
	cut := string(runes[:maxRunes])
	if idx := strings.LastIndex(cut, " "); idx > 0 {
		cut = cut[:idx]
	}
	return cut + "..."
}
