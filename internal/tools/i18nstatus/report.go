package main

import (
	"fmt"
	"io"
	"math"
	"regexp"
	"sort"
	"strings"

	errori18n "github.com/louisbranch/abacus/internal/platform/errors/i18n"
	"github.com/louisbranch/abacus/internal/platform/i18n/catalog"
)

// report summarizes how far every catalog locale trails the base locale.
type report struct {
	BaseLocale string         `json:"base_locale"`
	Locales    []localeStatus `json:"locales"`
	// BrokenTemplates lists "locale/code" error messages that do not parse.
	BrokenTemplates []string `json:"broken_templates"`
}

type localeStatus struct {
	Locale     string            `json:"locale"`
	BaseKeys   int               `json:"base_keys"`
	Translated int               `json:"translated"`
	Completion float64           `json:"completion"`
	Namespaces []namespaceStatus `json:"namespaces"`
	Missing    []string          `json:"missing_keys"`
	Extra      []string          `json:"extra_keys"`
	// Verbs lists keys whose format verbs differ from the base message.
	Verbs []string `json:"verb_mismatches"`
}

type namespaceStatus struct {
	Namespace  string  `json:"namespace"`
	BaseKeys   int     `json:"base_keys"`
	Translated int     `json:"translated"`
	Missing    int     `json:"missing"`
	Completion float64 `json:"completion"`
}

// verbPattern matches printf verbs, skipping the literal "%%".
var verbPattern = regexp.MustCompile(`%[-+# 0]*[0-9]*(?:\.[0-9]+)?[a-zA-Z]`)

func buildReport(bundle *catalog.Bundle, baseLocale string) (report, error) {
	if bundle == nil {
		return report{}, fmt.Errorf("catalog bundle is required")
	}
	if !bundle.HasLocale(baseLocale) {
		return report{}, fmt.Errorf("base locale %q is missing from catalogs", baseLocale)
	}
	base := bundle.LocaleMessages(baseLocale)

	rep := report{
		BaseLocale:      baseLocale,
		BrokenTemplates: errori18n.NewRenderer(bundle).Broken(),
	}
	for _, locale := range bundle.Locales() {
		if locale == baseLocale {
			continue
		}
		messages := bundle.LocaleMessages(locale)
		missing := keyDiff(base, messages)
		status := localeStatus{
			Locale:     locale,
			BaseKeys:   len(base),
			Translated: len(base) - len(missing),
			Missing:    missing,
			Extra:      keyDiff(messages, base),
			Verbs:      verbMismatches(base, messages),
		}
		status.Completion = percent(status.Translated, status.BaseKeys)
		for _, namespace := range namespaceUnion(bundle, baseLocale, locale) {
			baseNS := bundle.NamespaceMessages(baseLocale, namespace)
			nsMissing := len(keyDiff(baseNS, bundle.NamespaceMessages(locale, namespace)))
			status.Namespaces = append(status.Namespaces, namespaceStatus{
				Namespace:  namespace,
				BaseKeys:   len(baseNS),
				Translated: len(baseNS) - nsMissing,
				Missing:    nsMissing,
				Completion: percent(len(baseNS)-nsMissing, len(baseNS)),
			})
		}
		rep.Locales = append(rep.Locales, status)
	}
	return rep, nil
}

// problems lists one line per gap that should fail a -check run.
func (r report) problems() []string {
	var out []string
	for _, entry := range r.BrokenTemplates {
		out = append(out, fmt.Sprintf("%s: error template does not parse", entry))
	}
	for _, locale := range r.Locales {
		for _, key := range locale.Missing {
			out = append(out, fmt.Sprintf("%s: missing %s", locale.Locale, key))
		}
		for _, key := range locale.Extra {
			out = append(out, fmt.Sprintf("%s: extra %s", locale.Locale, key))
		}
		for _, key := range locale.Verbs {
			out = append(out, fmt.Sprintf("%s: format verbs differ in %s", locale.Locale, key))
		}
	}
	return out
}

func writeMarkdown(w io.Writer, rep report) error {
	var b strings.Builder
	b.WriteString("# Translation status\n\n")
	fmt.Fprintf(&b, "Base locale: `%s`.\n\n", rep.BaseLocale)
	b.WriteString("| Locale | Base keys | Translated | Completion |\n")
	b.WriteString("| --- | ---: | ---: | ---: |\n")
	for _, locale := range rep.Locales {
		fmt.Fprintf(&b, "| `%s` | %d | %d | %.1f%% |\n", locale.Locale, locale.BaseKeys, locale.Translated, locale.Completion)
	}
	for _, locale := range rep.Locales {
		fmt.Fprintf(&b, "\n## `%s`\n\n", locale.Locale)
		b.WriteString("| Namespace | Base keys | Missing | Completion |\n")
		b.WriteString("| --- | ---: | ---: | ---: |\n")
		for _, ns := range locale.Namespaces {
			fmt.Fprintf(&b, "| `%s` | %d | %d | %.1f%% |\n", ns.Namespace, ns.BaseKeys, ns.Missing, ns.Completion)
		}
		writeKeyList(&b, "Missing keys", locale.Missing)
		writeKeyList(&b, "Extra keys", locale.Extra)
		writeKeyList(&b, "Format verb mismatches", locale.Verbs)
	}
	if len(rep.BrokenTemplates) > 0 {
		b.WriteString("\n## Broken error templates\n\n")
		for _, entry := range rep.BrokenTemplates {
			fmt.Fprintf(&b, "- `%s`\n", entry)
		}
	}
	_, err := io.WriteString(w, b.String())
	return err
}

func writeKeyList(b *strings.Builder, title string, keys []string) {
	if len(keys) == 0 {
		return
	}
	fmt.Fprintf(b, "\n### %s\n\n", title)
	for _, key := range keys {
		fmt.Fprintf(b, "- `%s`\n", key)
	}
}

func namespaceUnion(bundle *catalog.Bundle, locales ...string) []string {
	seen := map[string]struct{}{}
	for _, locale := range locales {
		for _, namespace := range bundle.Namespaces(locale) {
			seen[namespace] = struct{}{}
		}
	}
	out := make([]string, 0, len(seen))
	for namespace := range seen {
		out = append(out, namespace)
	}
	sort.Strings(out)
	return out
}

// keyDiff returns the sorted keys of a that b lacks.
func keyDiff(a, b map[string]string) []string {
	var out []string
	for key := range a {
		if _, ok := b[key]; !ok {
			out = append(out, key)
		}
	}
	sort.Strings(out)
	return out
}

func verbMismatches(base, target map[string]string) []string {
	var out []string
	for key, message := range target {
		baseMessage, ok := base[key]
		if !ok {
			continue
		}
		if !sameVerbs(baseMessage, message) {
			out = append(out, key)
		}
	}
	sort.Strings(out)
	return out
}

func sameVerbs(a, b string) bool {
	strip := func(s string) []string {
		return verbPattern.FindAllString(strings.ReplaceAll(s, "%%", ""), -1)
	}
	av, bv := strip(a), strip(b)
	if len(av) != len(bv) {
		return false
	}
	for i := range av {
		if av[i] != bv[i] {
			return false
		}
	}
	return true
}

func percent(numerator, denominator int) float64 {
	if denominator <= 0 {
		return 100
	}
	value := float64(numerator) * 100 / float64(denominator)
	return math.Round(value*10) / 10
}
