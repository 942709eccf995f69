// Package i18nhttp resolves the response locale of HTTP requests.
package i18nhttp

import (
	"net/http"
	"strings"

	platformi18n "github.com/louisbranch/abacus/internal/platform/i18n"
	"golang.org/x/text/language"
)

// LangParam is the query parameter used to select a language.
const LangParam = "lang"

// ResolveTag determines the best language tag for the request: the lang
// query parameter wins, then Accept-Language, then the default locale.
func ResolveTag(r *http.Request) language.Tag {
	if r == nil {
		return platformi18n.DefaultTag()
	}

	if langValue := strings.TrimSpace(r.URL.Query().Get(LangParam)); langValue != "" {
		if tag, ok := platformi18n.ParseTag(langValue); ok {
			return tag
		}
	}

	if accept := strings.TrimSpace(r.Header.Get("Accept-Language")); accept != "" {
		if tags, _, err := language.ParseAcceptLanguage(accept); err == nil {
			return platformi18n.MatchTags(tags)
		}
	}

	return platformi18n.DefaultTag()
}

// NormalizeTag coerces unknown tags to the default supported language.
func NormalizeTag(value string) language.Tag {
	if tag, ok := platformi18n.ParseTag(value); ok {
		return tag
	}
	return platformi18n.DefaultTag()
}
