package mailer

import (
	"fmt"
	"strings"

	md "github.com/JohannesKaufmann/html-to-markdown"
	"github.com/PuerkitoBio/goquery"
)

// SanitizeHTML strips active content (scripts, styles, frames, event
// handlers) from an HTML fragment before it is mailed.
func SanitizeHTML(html string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return "", fmt.Errorf("failed to parse html body: %w", err)
	}

	doc.Find("script, style, iframe, object, embed").Remove()

	doc.Find("*").Each(func(_ int, sel *goquery.Selection) {
		for _, node := range sel.Nodes {
			attrs := node.Attr[:0]
			for _, attr := range node.Attr {
				if strings.HasPrefix(strings.ToLower(attr.Key), "on") {
					continue
				}
				attrs = append(attrs, attr)
			}
			node.Attr = attrs
		}
	})

	body := doc.Find("body")
	if body.Length() > 0 {
		return body.Html()
	}
	return doc.Html()
}

// PlainText derives the text/plain alternative from an HTML body.
func PlainText(html string) (string, error) {
	converter := md.NewConverter("", true, nil)
	text, err := converter.ConvertString(html)
	if err != nil {
		return "", fmt.Errorf("failed to convert html to text: %w", err)
	}
	return text, nil
}
