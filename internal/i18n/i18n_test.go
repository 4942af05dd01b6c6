package i18n

import (
	"testing"
	"testing/fstest"
)

func TestNewEmbeddedManagerDefaults(t *testing.T) {
	manager, err := NewEmbeddedManager("de")
	if err != nil {
		t.Fatalf("NewEmbeddedManager() unexpected error: %v", err)
	}
	if manager.DefaultLanguage() != LangEN {
		t.Fatalf("expected unsupported default to fall back to en, got %q", manager.DefaultLanguage())
	}

	manager, err = NewEmbeddedManager("ru-RU")
	if err != nil {
		t.Fatalf("NewEmbeddedManager() unexpected error: %v", err)
	}
	if manager.DefaultLanguage() != LangRU {
		t.Fatalf("expected ru default language, got %q", manager.DefaultLanguage())
	}
	if got := manager.SupportedLanguages(); len(got) != 2 || got[0] != LangEN || got[1] != LangRU {
		t.Fatalf("unexpected supported languages %v", got)
	}
}

func TestDetectFromAcceptLanguage(t *testing.T) {
	manager, err := NewEmbeddedManager(LangEN)
	if err != nil {
		t.Fatalf("NewEmbeddedManager() unexpected error: %v", err)
	}

	tests := []struct {
		header string
		want   string
	}{
		{header: "", want: LangEN},
		{header: "ru-RU,ru;q=0.9,en;q=0.8", want: LangRU},
		{header: "de-DE, ru;q=0.5", want: LangRU},
		{header: "fr, de", want: LangEN},
		{header: "EN_us", want: LangEN},
	}
	for _, tc := range tests {
		if got := manager.DetectFromAcceptLanguage(tc.header); got != tc.want {
			t.Fatalf("DetectFromAcceptLanguage(%q) = %q, want %q", tc.header, got, tc.want)
		}
	}
}

func TestTranslateFallsBack(t *testing.T) {
	locales := fstest.MapFS{
		"en.json": {Data: []byte(`{"greeting":"Hello","only_en":"English only"}`)},
		"ru.json": {Data: []byte(`{"greeting":"Привет","only_en":" "}`)},
	}
	manager, err := NewManager(LangEN, locales)
	if err != nil {
		t.Fatalf("NewManager() unexpected error: %v", err)
	}

	if got := manager.Translate(LangRU, "greeting"); got != "Привет" {
		t.Fatalf("expected ru translation, got %q", got)
	}
	if got := manager.Translate(LangRU, "only_en"); got != "English only" {
		t.Fatalf("expected fallback to default language, got %q", got)
	}
	if got := manager.Translate(LangRU, "missing.key"); got != "missing.key" {
		t.Fatalf("expected key fallback, got %q", got)
	}
}

func TestNewManagerRequiresEnglish(t *testing.T) {
	locales := fstest.MapFS{
		"ru.json": {Data: []byte(`{"greeting":"Привет"}`)},
	}
	if _, err := NewManager(LangRU, locales); err == nil {
		t.Fatal("expected error when en locale is missing")
	}
}
