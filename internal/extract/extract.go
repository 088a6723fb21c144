// Package extract turns raw HTML into a preview metadata record by applying
// per-field fallback chains over Open Graph, Twitter Card, and plain HTML
// markup. Extraction never fails: a page with no recognized metadata yields a
// record with only the URL set.
package extract

import (
	"net/url"
	"strings"

	"unfurl/internal/model"
)

// Extract builds a TagIndex over html and resolves every preview field
// through its fallback chain. pageURL is echoed verbatim into the record and
// used as the base for resolving relative references.
func Extract(html, pageURL string) *model.Preview {
	idx := NewTagIndex(html)
	base, err := url.Parse(pageURL)
	if err != nil {
		base = nil
	}

	pv := &model.Preview{URL: pageURL}

	pv.Title = firstOf(
		metaProbe(idx, "og:title"),
		metaProbe(idx, "twitter:title"),
		idx.Title,
	)
	pv.Description = chain(idx, "og:description", "twitter:description", "description")
	pv.Image = resolve(base, chain(idx, "og:image", "twitter:image"))
	pv.SiteName = chain(idx, "og:site_name")
	pv.Type = chain(idx, "og:type")
	pv.Locale = chain(idx, "og:locale")
	pv.Author = chain(idx, "article:author", "author")
	pv.Publisher = chain(idx, "article:publisher", "publisher")
	pv.PublishedTime = chain(idx, "article:published_time", "og:published_time", "date")
	pv.ModifiedTime = chain(idx, "article:modified_time", "og:updated_time")
	pv.VideoURL = resolve(base, chain(idx, "og:video:url", "og:video", "og:video:secure_url"))
	pv.AudioURL = resolve(base, chain(idx, "og:audio:url", "og:audio"))
	pv.Duration = chain(idx, "og:video:duration", "video:duration")
	pv.TwitterHandle = chain(idx, "twitter:creator", "twitter:site")
	pv.TwitterCard = chain(idx, "twitter:card")
	pv.CanonicalURL = resolve(base, firstOf(
		linkProbe(idx, "canonical"),
		metaProbe(idx, "og:url"),
	))
	pv.Favicon = resolve(base, firstOf(
		linkProbe(idx, "icon"),
		linkProbe(idx, "shortcut icon"),
		linkProbe(idx, "apple-touch-icon"),
		idx.IconLink,
	))
	pv.ThemeColor = chain(idx, "theme-color")
	pv.Keywords = splitKeywords(chain(idx, "keywords"))

	return pv
}

type probe func() (string, bool)

func metaProbe(idx *TagIndex, key string) probe {
	return func() (string, bool) { return idx.Meta(key) }
}

func linkProbe(idx *TagIndex, rel string) probe {
	return func() (string, bool) { return idx.Link(rel) }
}

// firstOf runs probes in order and returns the first present, non-empty hit.
func firstOf(probes ...probe) string {
	for _, p := range probes {
		if v, ok := p(); ok {
			return v
		}
	}
	return ""
}

// chain resolves a field from an ordered list of meta keys.
func chain(idx *TagIndex, keys ...string) string {
	for _, key := range keys {
		if v, ok := idx.Meta(key); ok {
			return v
		}
	}
	return ""
}

// resolve combines ref with the page URL per RFC 3986. Absolute refs pass
// through untouched. A ref that cannot be parsed, or one with no usable base,
// is dropped so URL-valued fields stay absent-or-absolute.
func resolve(base *url.URL, ref string) string {
	if ref == "" {
		return ""
	}
	refURL, err := url.Parse(ref)
	if err != nil {
		return ""
	}
	if refURL.IsAbs() {
		return refURL.String()
	}
	if base == nil {
		return ""
	}
	return base.ResolveReference(refURL).String()
}

// splitKeywords splits a comma-separated keywords value, trimming each piece
// and dropping empties. Returns nil when nothing survives.
func splitKeywords(raw string) []string {
	if raw == "" {
		return nil
	}
	var keywords []string
	for _, piece := range strings.Split(raw, ",") {
		if piece = strings.TrimSpace(piece); piece != "" {
			keywords = append(keywords, piece)
		}
	}
	return keywords
}
