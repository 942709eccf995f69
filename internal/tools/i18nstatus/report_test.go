package main

import (
	"strings"
	"testing"
	"testing/fstest"

	"github.com/google/go-cmp/cmp"
	"github.com/louisbranch/abacus/internal/platform/i18n/catalog"
)

func catalogFile(locale, namespace string, messages ...string) *fstest.MapFile {
	var b strings.Builder
	b.WriteString("locale: \"" + locale + "\"\n")
	b.WriteString("namespace: \"" + namespace + "\"\n")
	b.WriteString("messages:\n")
	for i := 0; i+1 < len(messages); i += 2 {
		b.WriteString("  \"" + messages[i] + "\": \"" + messages[i+1] + "\"\n")
	}
	return &fstest.MapFile{Data: []byte(b.String())}
}

func loadBundle(t *testing.T, files fstest.MapFS) *catalog.Bundle {
	t.Helper()
	bundle, err := catalog.LoadFromFS(files)
	if err != nil {
		t.Fatalf("load catalogs: %v", err)
	}
	return bundle
}

func TestEmbeddedCatalogsHaveNoProblems(t *testing.T) {
	bundle, err := catalog.LoadEmbedded()
	if err != nil {
		t.Fatalf("load embedded: %v", err)
	}
	rep, err := buildReport(bundle, catalog.BaseLocale)
	if err != nil {
		t.Fatalf("build report: %v", err)
	}
	if len(rep.Locales) == 0 {
		t.Fatal("expected at least one translated locale")
	}
	if problems := rep.problems(); len(problems) != 0 {
		t.Fatalf("problems = %v", problems)
	}
	for _, locale := range rep.Locales {
		if locale.Completion != 100 {
			t.Fatalf("%s completion = %.1f, want 100", locale.Locale, locale.Completion)
		}
	}
}

func TestBuildReportFindsGaps(t *testing.T) {
	bundle := loadBundle(t, fstest.MapFS{
		"locales/en-US/abacus.yaml": catalogFile("en-US", "abacus",
			"a.one", "One",
			"a.two", "Two %s",
			"a.three", "Three",
			"a.four", "Four"),
		"locales/en-US/errors.yaml": catalogFile("en-US", "errors", "e.one", "Oops"),
		"locales/bn-BD/abacus.yaml": catalogFile("bn-BD", "abacus",
			"a.one", "এক",
			"a.two", "দুই",
			"a.five", "পাঁচ"),
	})

	rep, err := buildReport(bundle, "en-US")
	if err != nil {
		t.Fatalf("build report: %v", err)
	}
	if len(rep.Locales) != 1 {
		t.Fatalf("locales = %d, want 1", len(rep.Locales))
	}
	got := rep.Locales[0]
	want := localeStatus{
		Locale:     "bn-BD",
		BaseKeys:   5,
		Translated: 2,
		Completion: 40,
		Namespaces: []namespaceStatus{
			{Namespace: "abacus", BaseKeys: 4, Translated: 2, Missing: 2, Completion: 50},
			{Namespace: "errors", BaseKeys: 1, Translated: 0, Missing: 1, Completion: 0},
		},
		Missing: []string{"a.four", "a.three", "e.one"},
		Extra:   []string{"a.five"},
		Verbs:   []string{"a.two"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("status mismatch (-want +got):\n%s", diff)
	}
	if n := len(rep.problems()); n != 5 {
		t.Fatalf("problems = %d, want 5", n)
	}
}

func TestBuildReportFlagsBrokenErrorTemplates(t *testing.T) {
	bundle := loadBundle(t, fstest.MapFS{
		"locales/en-US/errors.yaml": catalogFile("en-US", "errors", "ROD", "got {{.Got}}"),
		"locales/bn-BD/errors.yaml": catalogFile("bn-BD", "errors", "ROD", "{{ if .Got }}"),
	})
	rep, err := buildReport(bundle, "en-US")
	if err != nil {
		t.Fatalf("build report: %v", err)
	}
	if diff := cmp.Diff([]string{"bn-BD/ROD"}, rep.BrokenTemplates); diff != "" {
		t.Fatalf("broken templates mismatch (-want +got):\n%s", diff)
	}
	want := []string{"bn-BD/ROD: error template does not parse"}
	if diff := cmp.Diff(want, rep.problems()); diff != "" {
		t.Fatalf("problems mismatch (-want +got):\n%s", diff)
	}
}

func TestBuildReportRejectsUnknownBase(t *testing.T) {
	bundle, err := catalog.LoadEmbedded()
	if err != nil {
		t.Fatalf("load embedded: %v", err)
	}
	if _, err := buildReport(bundle, "fr-FR"); err == nil {
		t.Fatal("expected error for unknown base locale")
	}
	if _, err := buildReport(nil, "en-US"); err == nil {
		t.Fatal("expected error for nil bundle")
	}
}

func TestSameVerbs(t *testing.T) {
	tests := []struct {
		a, b string
		want bool
	}{
		{"answer: %s", "উত্তর: %s", true},
		{"no verbs", "none", true},
		{"100%% done %d", "%d done", true},
		{"%s and %d", "%d and %s", false},
		{"%s", "", false},
		{"%.2f", "%f", false},
	}
	for _, tc := range tests {
		if got := sameVerbs(tc.a, tc.b); got != tc.want {
			t.Fatalf("sameVerbs(%q, %q) = %v, want %v", tc.a, tc.b, got, tc.want)
		}
	}
}

func TestWriteMarkdown(t *testing.T) {
	rep := report{
		BaseLocale: "en-US",
		Locales: []localeStatus{{
			Locale:     "bn-BD",
			BaseKeys:   2,
			Translated: 1,
			Completion: 50,
			Namespaces: []namespaceStatus{{Namespace: "abacus", BaseKeys: 2, Translated: 1, Missing: 1, Completion: 50}},
			Missing:    []string{"a.two"},
		}},
	}
	var b strings.Builder
	if err := writeMarkdown(&b, rep); err != nil {
		t.Fatalf("write markdown: %v", err)
	}
	out := b.String()
	for _, want := range []string{
		"Base locale: `en-US`.",
		"| `bn-BD` | 2 | 1 | 50.0% |",
		"| `abacus` | 2 | 1 | 50.0% |",
		"### Missing keys",
		"- `a.two`",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("markdown missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "Extra keys") {
		t.Fatalf("unexpected empty section:\n%s", out)
	}
}
