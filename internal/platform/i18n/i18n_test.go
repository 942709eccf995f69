package i18n

import (
	"testing"

	"github.com/louisbranch/abacus/internal/abacus/task"
	"golang.org/x/text/language"
)

func TestParseTag(t *testing.T) {
	tcs := []struct {
		in     string
		want   string
		wantOK bool
	}{
		{in: "en-US", want: "en-US", wantOK: true},
		{in: "bn-BD", want: "bn-BD", wantOK: true},
		{in: "bn", want: "bn-BD", wantOK: true},
		{in: "ja-JP", want: "en-US", wantOK: false},
		{in: "not a tag!", want: "en-US", wantOK: false},
	}
	for _, tc := range tcs {
		got, ok := ParseTag(tc.in)
		if ok != tc.wantOK || got.String() != tc.want {
			t.Fatalf("ParseTag(%q) = %s, %v; want %s, %v", tc.in, got, ok, tc.want, tc.wantOK)
		}
	}
}

func TestMatchTags(t *testing.T) {
	got := MatchTags([]language.Tag{language.MustParse("fr-FR"), language.MustParse("bn")})
	if got.String() != "bn-BD" {
		t.Fatalf("MatchTags = %s, want bn-BD", got)
	}
	if got := MatchTags(nil); got != DefaultTag() {
		t.Fatalf("MatchTags(nil) = %s", got)
	}
}

func TestPlaceValuesLocalized(t *testing.T) {
	bn := PlaceValues(language.MustParse("bn-BD"))
	want := []string{"শতক", "দশক", "একক", "দশমাংশ", "শতাংশ"}
	for i, place := range bn {
		if place.LocalName != want[i] {
			t.Fatalf("place %d = %q, want %q", i, place.LocalName, want[i])
		}
	}
	en := PlaceValues(DefaultTag())
	if en[0].LocalName != "Hundreds" || en[0].Name != "Hundreds" {
		t.Fatalf("en place = %+v", en[0])
	}
}

func TestInstructionAndFeedback(t *testing.T) {
	guide := Instruction(DefaultTag(), task.ModeAddition)
	if guide != task.Instruction(task.ModeAddition) {
		t.Fatalf("en-US guide = %+v, want %+v", guide, task.Instruction(task.ModeAddition))
	}

	fb := task.CheckExpected(7, 7.35)
	if got := FeedbackMessage(DefaultTag(), fb); got != fb.Message {
		t.Fatalf("en-US feedback = %q, want %q", got, fb.Message)
	}
	if got := FeedbackMessage(language.MustParse("bn-BD"), fb); got != "আবার চেষ্টা করো! সঠিক উত্তর: 7.35" {
		t.Fatalf("bn-BD feedback = %q", got)
	}
}

func TestEnglishCatalogMatchesEngineText(t *testing.T) {
	for _, mode := range task.Modes() {
		if got, want := Instruction(DefaultTag(), mode), task.Instruction(mode); got != want {
			t.Fatalf("%v: catalog guide = %+v, engine guide = %+v", mode, got, want)
		}
	}
	correct := task.CheckExpected(7.35, 7.35)
	if got := FeedbackMessage(DefaultTag(), correct); got != task.MessageCorrect {
		t.Fatalf("correct feedback = %q", got)
	}
}

func TestLocalizeFallsBack(t *testing.T) {
	if got := localize(DefaultTag(), "abacus.not_defined", "engine text"); got != "engine text" {
		t.Fatalf("missing key = %q, want engine fallback", got)
	}
	if got := localize(language.MustParse("bn-BD"), "abacus.place.ones", "Ones"); got != "একক" {
		t.Fatalf("bn-BD key = %q", got)
	}
	if got := localize(language.MustParse("ja-JP"), "abacus.place.ones", "x"); got != "Ones" {
		t.Fatalf("unsupported tag = %q, want base locale text", got)
	}
}
