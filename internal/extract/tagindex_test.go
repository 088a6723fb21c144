package extract

import "testing"

func TestMetaPropertyBeforeName(t *testing.T) {
	idx := NewTagIndex(`<html><head>
		<meta name="og:title" content="name value">
		<meta property="og:title" content="property value">
	</head></html>`)

	v, ok := idx.Meta("og:title")
	if !ok || v != "property value" {
		t.Fatalf("expected property probe to win, got %q (ok=%v)", v, ok)
	}
}

func TestMetaNameFallback(t *testing.T) {
	idx := NewTagIndex(`<html><head><meta name="twitter:card" content="summary"></head></html>`)

	v, ok := idx.Meta("twitter:card")
	if !ok || v != "summary" {
		t.Fatalf("expected name probe hit, got %q (ok=%v)", v, ok)
	}
}

func TestMetaEmptyContentFallsThrough(t *testing.T) {
	idx := NewTagIndex(`<html><head>
		<meta property="og:title" content="   ">
		<meta name="og:title" content="from name">
	</head></html>`)

	v, ok := idx.Meta("og:title")
	if !ok || v != "from name" {
		t.Fatalf("expected empty property content to fall through to name, got %q (ok=%v)", v, ok)
	}
}

func TestMetaAbsent(t *testing.T) {
	idx := NewTagIndex(`<html><head></head></html>`)

	if _, ok := idx.Meta("og:title"); ok {
		t.Fatal("expected absent meta")
	}
}

func TestMetaContentTrimmed(t *testing.T) {
	idx := NewTagIndex(`<html><head><meta property="og:title" content="  spaced  "></head></html>`)

	v, _ := idx.Meta("og:title")
	if v != "spaced" {
		t.Fatalf("expected trimmed content, got %q", v)
	}
}

func TestLinkExactRel(t *testing.T) {
	idx := NewTagIndex(`<html><head><link rel="canonical" href="https://site.test/c"></head></html>`)

	v, ok := idx.Link("canonical")
	if !ok || v != "https://site.test/c" {
		t.Fatalf("expected canonical href, got %q (ok=%v)", v, ok)
	}
	if _, ok := idx.Link("icon"); ok {
		t.Fatal("expected no icon link")
	}
}

func TestIconLinkTokenScan(t *testing.T) {
	idx := NewTagIndex(`<html><head>
		<link rel="stylesheet" href="/style.css">
		<link rel="alternate icon mask" href="/masked.svg">
	</head></html>`)

	v, ok := idx.IconLink()
	if !ok || v != "/masked.svg" {
		t.Fatalf("expected token-scan icon hit, got %q (ok=%v)", v, ok)
	}
}

func TestTitleText(t *testing.T) {
	idx := NewTagIndex(`<html><head><title> Hello World </title></head></html>`)

	v, ok := idx.Title()
	if !ok || v != "Hello World" {
		t.Fatalf("expected trimmed title, got %q (ok=%v)", v, ok)
	}
}

func TestEmptyIndexLookups(t *testing.T) {
	idx := &TagIndex{}

	if _, ok := idx.Meta("og:title"); ok {
		t.Fatal("nil-doc Meta should miss")
	}
	if _, ok := idx.Link("canonical"); ok {
		t.Fatal("nil-doc Link should miss")
	}
	if _, ok := idx.IconLink(); ok {
		t.Fatal("nil-doc IconLink should miss")
	}
	if _, ok := idx.Title(); ok {
		t.Fatal("nil-doc Title should miss")
	}
}
