package extract

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// TagIndex is a read-only view over parsed markup, built once per extraction
// and discarded with it. It exposes only the narrow lookups the fallback
// chains need; the underlying goquery document never leaves this package.
type TagIndex struct {
	doc *goquery.Document
}

// NewTagIndex parses html into an index. Unparseable input degrades to an
// empty index rather than an error; net/html repairs almost anything, so the
// nil-doc path exists mostly for reader failures.
func NewTagIndex(html string) *TagIndex {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return &TagIndex{}
	}
	return &TagIndex{doc: doc}
}

// Meta returns the trimmed content of the first meta element whose property
// attribute equals key, falling back to the name attribute. The dual probe is
// needed because Open Graph uses property while Twitter Cards and legacy HTML
// use name for logically identical fields. An empty content attribute counts
// as absent and falls through to the next probe.
func (t *TagIndex) Meta(key string) (string, bool) {
	if t.doc == nil {
		return "", false
	}
	for _, attr := range []string{"property", "name"} {
		sel := t.doc.Find(fmt.Sprintf("meta[%s=%q]", attr, key)).First()
		if content := strings.TrimSpace(sel.AttrOr("content", "")); content != "" {
			return content, true
		}
	}
	return "", false
}

// Link returns the trimmed href of the first link element whose rel attribute
// equals rel exactly.
func (t *TagIndex) Link(rel string) (string, bool) {
	if t.doc == nil {
		return "", false
	}
	sel := t.doc.Find(fmt.Sprintf("link[rel=%q]", rel)).First()
	if href := strings.TrimSpace(sel.AttrOr("href", "")); href != "" {
		return href, true
	}
	return "", false
}

// IconLink scans every link element for a multi-token rel attribute that
// includes "icon" as one of its tokens (e.g. rel="shortcut icon alternate")
// and returns its href. Catch-all for markup the exact-rel probes miss.
func (t *TagIndex) IconLink() (string, bool) {
	if t.doc == nil {
		return "", false
	}
	var href string
	t.doc.Find("link[rel]").EachWithBreak(func(_ int, sel *goquery.Selection) bool {
		for _, token := range strings.Fields(sel.AttrOr("rel", "")) {
			if strings.EqualFold(token, "icon") {
				href = strings.TrimSpace(sel.AttrOr("href", ""))
				return href == ""
			}
		}
		return true
	})
	if href == "" {
		return "", false
	}
	return href, true
}

// Title returns the trimmed text of the first title element.
func (t *TagIndex) Title() (string, bool) {
	if t.doc == nil {
		return "", false
	}
	title := strings.TrimSpace(t.doc.Find("title").First().Text())
	if title == "" {
		return "", false
	}
	return title, true
}
