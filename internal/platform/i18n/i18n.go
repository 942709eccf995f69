// Package i18n defines the supported locales and localized engine text.
package i18n

import (
	"strings"

	"github.com/louisbranch/abacus/internal/abacus/placevalue"
	"github.com/louisbranch/abacus/internal/abacus/task"
	"github.com/louisbranch/abacus/internal/platform/i18n/catalog"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var (
	supported = []language.Tag{
		language.MustParse(catalog.BaseLocale),
		language.MustParse("bn-BD"),
	}
	matcher = language.NewMatcher(supported)
)

// SupportedTags returns the supported locales, default first.
func SupportedTags() []language.Tag {
	return append([]language.Tag(nil), supported...)
}

// DefaultTag returns the default locale.
func DefaultTag() language.Tag {
	return supported[0]
}

// ParseTag parses value and reports whether it maps to a supported locale.
// A bare language ("bn") resolves to its supported region.
func ParseTag(value string) (language.Tag, bool) {
	tag, err := language.Parse(strings.TrimSpace(value))
	if err != nil {
		return DefaultTag(), false
	}
	_, index, confidence := matcher.Match(tag)
	if confidence < language.High {
		return DefaultTag(), false
	}
	return supported[index], true
}

// MatchTags picks the best supported locale for an ordered preference list.
func MatchTags(tags []language.Tag) language.Tag {
	if len(tags) == 0 {
		return DefaultTag()
	}
	_, index, confidence := matcher.Match(tags...)
	if confidence == language.No {
		return DefaultTag()
	}
	return supported[index]
}

// Printer returns a message printer for tag. Importing catalog registers the
// embedded messages with x/text.
func Printer(tag language.Tag) *message.Printer {
	return message.NewPrinter(tag)
}

var placeKeys = [placevalue.Rods]string{
	"abacus.place.hundreds",
	"abacus.place.tens",
	"abacus.place.ones",
	"abacus.place.tenths",
	"abacus.place.hundredths",
}

// PlaceValue is a place-value table row with its localized name.
type PlaceValue struct {
	placevalue.PlaceValue
	LocalName string
}

// PlaceValues returns the place-value table with names localized for tag.
// A name missing from the catalogs keeps the table's English name.
func PlaceValues(tag language.Tag) []PlaceValue {
	places := placevalue.PlaceValues()
	out := make([]PlaceValue, len(places))
	for i, place := range places {
		out[i] = PlaceValue{PlaceValue: place, LocalName: localize(tag, placeKeys[i], place.Name)}
	}
	return out
}

// Instruction returns the localized heading and hint for a task mode,
// falling back to the engine's English text per missing key.
func Instruction(tag language.Tag, mode task.Mode) task.Guide {
	guide := task.Instruction(mode)
	switch mode {
	case task.ModeAddition:
		guide.Heading = localize(tag, "abacus.instruction.addition", guide.Heading)
	case task.ModeSubtraction:
		guide.Heading = localize(tag, "abacus.instruction.subtraction", guide.Heading)
	default:
		guide.Heading = localize(tag, "abacus.instruction.identity", guide.Heading)
	}
	if guide.Hint != "" {
		guide.Hint = localize(tag, "abacus.instruction.hint", guide.Hint)
	}
	return guide
}

// FeedbackMessage returns the localized verdict message, or the engine's
// own message when the catalogs lack it.
func FeedbackMessage(tag language.Tag, fb task.Feedback) string {
	if fb.Correct {
		return localize(tag, "abacus.feedback.correct", fb.Message)
	}
	return localize(tag, "abacus.feedback.incorrect", fb.Message, placevalue.Format(fb.Expected))
}

// localize formats the catalog message for key, with base-locale fallback,
// or returns fallback when no locale defines key.
func localize(tag language.Tag, key, fallback string, args ...any) string {
	format, ok := catalog.Default().Message(tag.String(), key)
	if !ok {
		return fallback
	}
	return Printer(tag).Sprintf(format, args...)
}
