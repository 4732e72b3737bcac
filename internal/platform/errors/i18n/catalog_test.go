package i18n

import "testing"

func TestGetCatalogFallback(t *testing.T) {
	base := GetCatalog("en-US")
	if base == nil {
		t.Fatal("expected base catalog")
	}
	fallback := GetCatalog("missing-locale")
	if fallback != base {
		t.Fatal("expected fallback to en-US catalog")
	}
}

func TestEmbeddedCatalogRendersMetadata(t *testing.T) {
	cat := GetCatalog("en-US")
	got := cat.Format("NOTHING_TO_UNDO", map[string]string{"Action": "reveal"})
	if got != "No reveal to undo" {
		t.Fatalf("Format = %q", got)
	}
	got = cat.Format("INVALID_BOARD_LINK", map[string]string{"Link": "https://example.com"})
	if got != "Invalid link: https://example.com" {
		t.Fatalf("Format = %q", got)
	}
}

func TestFormatFallbacks(t *testing.T) {
	cat := NewCatalog("test", map[Code]string{
		"code": "hello {{.Name}}",
	})

	if cat.Format("unknown", nil) != "unknown" {
		t.Fatal("expected code fallback when template missing")
	}
	if got := cat.Format("code", nil); got != "hello " {
		t.Fatalf("Format = %q, want missing metadata rendered empty", got)
	}
}

func TestFormatTemplateErrorFallback(t *testing.T) {
	cat := NewCatalog("test", map[Code]string{
		"code": "{{ if .Name }}",
	})
	if cat.Format("code", map[string]string{"Name": "X"}) != "{{ if .Name }}" {
		t.Fatal("expected template fallback on parse error")
	}
}

func TestFormatTemplateExecutionErrorFallback(t *testing.T) {
	cat := NewCatalog("test", map[Code]string{
		"code": "{{ call .Name }}",
	})
	if cat.Format("code", map[string]string{"Name": "X"}) != "{{ call .Name }}" {
		t.Fatal("expected template fallback on execute error")
	}
}

func TestGetCatalogCachesResolvedLocale(t *testing.T) {
	first := GetCatalog("en-GB")
	if first != GetCatalog("en-GB") {
		t.Fatal("expected the resolved catalog to be reused")
	}
	if first.locale != "en-US" {
		t.Fatalf("locale = %q, want en-US", first.locale)
	}
}
