package extract

import (
	"reflect"
	"testing"
)

const pageURL = "https://site.test/articles/42"

func TestExtractTitlePriority(t *testing.T) {
	html := `<html><head>
		<meta property="og:title" content=" OG Title ">
		<meta name="twitter:title" content="Twitter Title">
		<title>Element Title</title>
	</head></html>`

	pv := Extract(html, pageURL)
	if pv.Title != "OG Title" {
		t.Fatalf("expected og:title to win, got %q", pv.Title)
	}
}

func TestExtractTitleFallbackToTwitter(t *testing.T) {
	html := `<html><head>
		<meta name="twitter:title" content="Twitter Title">
		<title>Element Title</title>
	</head></html>`

	pv := Extract(html, pageURL)
	if pv.Title != "Twitter Title" {
		t.Fatalf("expected twitter:title over <title>, got %q", pv.Title)
	}
}

func TestExtractTitleFallbackToElement(t *testing.T) {
	html := `<html><head><title>  Plain  </title></head></html>`

	pv := Extract(html, pageURL)
	if pv.Title != "Plain" {
		t.Fatalf("expected <title> text, got %q", pv.Title)
	}
	if pv.Description != "" || pv.Image != "" || pv.Favicon != "" || pv.Keywords != nil {
		t.Fatalf("expected every other field absent, got %+v", pv)
	}
}

func TestExtractDescriptionChain(t *testing.T) {
	html := `<html><head>
		<meta name="description" content="plain desc">
		<meta name="twitter:description" content="twitter desc">
	</head></html>`

	pv := Extract(html, pageURL)
	if pv.Description != "twitter desc" {
		t.Fatalf("expected twitter:description over description, got %q", pv.Description)
	}
}

func TestExtractImageRelativeResolved(t *testing.T) {
	html := `<html><head><meta property="og:image" content="/img/cover.png"></head></html>`

	pv := Extract(html, pageURL)
	if pv.Image != "https://site.test/img/cover.png" {
		t.Fatalf("expected resolved absolute image URL, got %q", pv.Image)
	}
}

func TestExtractImageAbsolutePassthrough(t *testing.T) {
	html := `<html><head><meta name="twitter:image" content="https://cdn.other.test/x.png"></head></html>`

	pv := Extract(html, pageURL)
	if pv.Image != "https://cdn.other.test/x.png" {
		t.Fatalf("expected absolute image URL unchanged, got %q", pv.Image)
	}
}

func TestExtractImageSchemeRelative(t *testing.T) {
	html := `<html><head><meta property="og:image" content="//cdn.site.test/y.png"></head></html>`

	pv := Extract(html, pageURL)
	if pv.Image != "https://cdn.site.test/y.png" {
		t.Fatalf("expected scheme-relative resolution, got %q", pv.Image)
	}
}

func TestExtractAuthorAndTimes(t *testing.T) {
	html := `<html><head>
		<meta property="article:author" content="Ada">
		<meta name="author" content="Other">
		<meta property="article:published_time" content="2024-01-02T03:04:05Z">
		<meta property="og:updated_time" content="2024-02-03">
	</head></html>`

	pv := Extract(html, pageURL)
	if pv.Author != "Ada" {
		t.Fatalf("expected article:author to win, got %q", pv.Author)
	}
	if pv.PublishedTime != "2024-01-02T03:04:05Z" {
		t.Fatalf("expected published_time passthrough, got %q", pv.PublishedTime)
	}
	if pv.ModifiedTime != "2024-02-03" {
		t.Fatalf("expected og:updated_time fallback, got %q", pv.ModifiedTime)
	}
}

func TestExtractMediaChains(t *testing.T) {
	html := `<html><head>
		<meta property="og:video" content="/v/clip.mp4">
		<meta property="og:audio:url" content="https://site.test/a.mp3">
		<meta property="og:video:duration" content="95">
	</head></html>`

	pv := Extract(html, pageURL)
	if pv.VideoURL != "https://site.test/v/clip.mp4" {
		t.Fatalf("expected resolved og:video, got %q", pv.VideoURL)
	}
	if pv.AudioURL != "https://site.test/a.mp3" {
		t.Fatalf("expected og:audio:url, got %q", pv.AudioURL)
	}
	if pv.Duration != "95" {
		t.Fatalf("expected duration, got %q", pv.Duration)
	}
}

func TestExtractTwitterFields(t *testing.T) {
	html := `<html><head>
		<meta name="twitter:site" content="@site">
		<meta name="twitter:card" content="summary_large_image">
	</head></html>`

	pv := Extract(html, pageURL)
	if pv.TwitterHandle != "@site" {
		t.Fatalf("expected twitter:site fallback, got %q", pv.TwitterHandle)
	}
	if pv.TwitterCard != "summary_large_image" {
		t.Fatalf("expected twitter:card, got %q", pv.TwitterCard)
	}
}

func TestExtractCanonicalPrefersLink(t *testing.T) {
	html := `<html><head>
		<link rel="canonical" href="/articles/42-canonical">
		<meta property="og:url" content="https://site.test/og-url">
	</head></html>`

	pv := Extract(html, pageURL)
	if pv.CanonicalURL != "https://site.test/articles/42-canonical" {
		t.Fatalf("expected resolved canonical link, got %q", pv.CanonicalURL)
	}
	if pv.URL != pageURL {
		t.Fatalf("url must echo the input verbatim, got %q", pv.URL)
	}
}

func TestExtractCanonicalFallsBackToOgURL(t *testing.T) {
	html := `<html><head><meta property="og:url" content="https://site.test/og-url"></head></html>`

	pv := Extract(html, pageURL)
	if pv.CanonicalURL != "https://site.test/og-url" {
		t.Fatalf("expected og:url fallback, got %q", pv.CanonicalURL)
	}
}

func TestExtractFaviconOrder(t *testing.T) {
	html := `<html><head>
		<link rel="apple-touch-icon" href="/apple.png">
		<link rel="icon" href="/fav.ico">
	</head></html>`

	pv := Extract(html, pageURL)
	if pv.Favicon != "https://site.test/fav.ico" {
		t.Fatalf("expected rel=icon to win, got %q", pv.Favicon)
	}
}

func TestExtractFaviconMultiTokenRel(t *testing.T) {
	html := `<html><head><link rel="shortcut icon alternate" href="/multi.ico"></head></html>`

	pv := Extract(html, pageURL)
	if pv.Favicon != "https://site.test/multi.ico" {
		t.Fatalf("expected multi-token rel catch-all, got %q", pv.Favicon)
	}
}

func TestExtractThemeColorAndLocale(t *testing.T) {
	html := `<html><head>
		<meta name="theme-color" content="#112233">
		<meta property="og:locale" content="en_US">
		<meta property="og:type" content="article">
		<meta property="og:site_name" content="Site">
	</head></html>`

	pv := Extract(html, pageURL)
	if pv.ThemeColor != "#112233" || pv.Locale != "en_US" || pv.Type != "article" || pv.SiteName != "Site" {
		t.Fatalf("unexpected fields: %+v", pv)
	}
}

func TestExtractKeywords(t *testing.T) {
	html := `<html><head><meta name="keywords" content="a, b ,, c"></head></html>`

	pv := Extract(html, pageURL)
	if !reflect.DeepEqual(pv.Keywords, []string{"a", "b", "c"}) {
		t.Fatalf("expected trimmed keywords, got %v", pv.Keywords)
	}
}

func TestExtractKeywordsAllEmptyAbsent(t *testing.T) {
	html := `<html><head><meta name="keywords" content=" , "></head></html>`

	pv := Extract(html, pageURL)
	if pv.Keywords != nil {
		t.Fatalf("expected absent keywords, got %v", pv.Keywords)
	}
}

func TestExtractMalformedHTMLSparseRecord(t *testing.T) {
	pv := Extract("<<<not even close<<meta", pageURL)
	if pv.URL != pageURL {
		t.Fatalf("expected url echoed, got %q", pv.URL)
	}
	if pv.Title != "" || pv.Description != "" || pv.Image != "" {
		t.Fatalf("expected sparse record, got %+v", pv)
	}
}

func TestExtractInvalidRefDropped(t *testing.T) {
	html := `<html><head><meta property="og:image" content="http://bad url with spaces"></head></html>`

	pv := Extract(html, pageURL)
	if pv.Image != "" {
		t.Fatalf("expected unparseable ref dropped, got %q", pv.Image)
	}
}

func TestExtractEndToEndScenario(t *testing.T) {
	html := `<html><head>
		<meta property="og:title" content="Example">
		<meta name="twitter:image" content="/img.png">
	</head></html>`

	pv := Extract(html, "https://site.test/page")
	if pv.Title != "Example" {
		t.Fatalf("expected title Example, got %q", pv.Title)
	}
	if pv.Image != "https://site.test/img.png" {
		t.Fatalf("expected resolved twitter image, got %q", pv.Image)
	}
}
