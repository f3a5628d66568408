// Package format sanitizes and normalizes generated HTML before it is
// inserted into the rich-text editor or document storage.
package format

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// dangerousTags are removed outright, content included.
var dangerousTags = []string{"script", "style", "iframe", "object", "embed", "noscript", "form", "input", "button", "link", "meta"}

// keepAttrs lists the attributes allowed to survive normalization, per tag.
var keepAttrs = map[string][]string{
	"a":   {"href"},
	"img": {"src", "alt"},
}

// Normalize sanitizes raw generated HTML for editor insertion. Script-bearing
// elements, event-handler attributes, and javascript: URLs are stripped;
// everything else keeps its structure. With emailMode set, layout divs are
// flattened into paragraphs and images without alt text are dropped, which
// keeps the output usable in plain email clients.
func Normalize(rawHTML string, emailMode bool) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(rawHTML))
	if err != nil {
		return "", &Error{Message: "failed to parse HTML", Cause: err}
	}

	doc.Find(strings.Join(dangerousTags, ", ")).Remove()

	doc.Find("*").Each(func(_ int, sel *goquery.Selection) {
		stripAttributes(sel)
	})

	// Drop anchors pointing at javascript: URLs but keep their text.
	doc.Find("a").Each(func(_ int, sel *goquery.Selection) {
		href, _ := sel.Attr("href")
		if strings.HasPrefix(strings.ToLower(strings.TrimSpace(href)), "javascript:") {
			sel.ReplaceWithHtml(sel.Text())
		}
	})

	if emailMode {
		flattenForEmail(doc)
	}

	body := doc.Find("body")
	html, err := body.Html()
	if err != nil {
		return "", &Error{Message: "failed to serialize HTML", Cause: err}
	}

	return strings.TrimSpace(html), nil
}

// stripAttributes removes every attribute not allowlisted for the tag.
func stripAttributes(sel *goquery.Selection) {
	if len(sel.Nodes) == 0 {
		return
	}
	node := sel.Nodes[0]
	allowed := keepAttrs[node.Data]

	kept := node.Attr[:0]
	for _, attr := range node.Attr {
		name := strings.ToLower(attr.Key)
		if strings.HasPrefix(name, "on") {
			continue
		}
		for _, ok := range allowed {
			if name == ok {
				kept = append(kept, attr)
				break
			}
		}
	}
	node.Attr = kept
}

// flattenForEmail rewrites layout markup into the flat structure email
// clients render reliably.
func flattenForEmail(doc *goquery.Document) {
	// Innermost divs first so nested layouts collapse cleanly.
	divs := doc.Find("div")
	for i := divs.Length() - 1; i >= 0; i-- {
		sel := divs.Eq(i)
		if sel.ChildrenFiltered("div, p, h1, h2, h3, h4, ul, ol, table").Length() > 0 {
			// Structural wrapper: unwrap, keep children.
			inner, err := sel.Html()
			if err == nil {
				sel.ReplaceWithHtml(inner)
			}
			continue
		}
		inner, err := sel.Html()
		if err == nil {
			sel.ReplaceWithHtml("<p>" + inner + "</p>")
		}
	}

	doc.Find("img").Each(func(_ int, sel *goquery.Selection) {
		if alt, _ := sel.Attr("alt"); strings.TrimSpace(alt) == "" {
			sel.Remove()
		}
	})

	// Remove paragraphs that ended up empty after flattening.
	doc.Find("p").Each(func(_ int, sel *goquery.Selection) {
		if strings.TrimSpace(sel.Text()) == "" && sel.Children().Length() == 0 {
			sel.Remove()
		}
	})
}

// Error represents a formatting failure.
type Error struct {
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("format error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("format error: %s", e.Message)
}

func (e *Error) Unwrap() error {
	return e.Cause
}
