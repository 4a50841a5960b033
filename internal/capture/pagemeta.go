package capture

import (
	"io"
	"strings"

	"golang.org/x/net/html"
)

// extractMetaDescription performs a single-pass traversal of the serialized
// DOM and returns the content of the meta-description tag, or "" when the
// page has none. Absence is normal, not an error; the parse only fails on
// truncated input from the browser.
func extractMetaDescription(body io.Reader) string {
	z := html.NewTokenizer(body)

	for {
		tt := z.Next()
		switch tt {
		case html.ErrorToken:
			// EOF or malformed markup past the head; either way there is
			// nothing more to find.
			return ""

		case html.StartTagToken, html.SelfClosingTagToken:
			tn, hasAttr := z.TagName()
			tag := string(tn)

			// Meta tags live in the head; once the body starts there is no
			// point walking the rest of the document.
			if tag == "body" {
				return ""
			}

			if tag == "meta" && hasAttr {
				if desc, ok := metaDescription(z); ok {
					return desc
				}
			}
		}
	}
}

// metaDescription reads the current meta tag's attributes and returns its
// content when the tag is a description meta.
func metaDescription(z *html.Tokenizer) (string, bool) {
	var name, content string
	for {
		key, val, more := z.TagAttr()
		switch strings.ToLower(string(key)) {
		case "name", "property":
			name = strings.ToLower(string(val))
		case "content":
			content = string(val)
		}
		if !more {
			break
		}
	}

	if name == "description" || name == "og:description" {
		return strings.TrimSpace(content), true
	}
	return "", false
}
