package domain

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/louisbranch/abacus/internal/abacus/task"
	apperrors "github.com/louisbranch/abacus/internal/platform/errors"
	"github.com/louisbranch/abacus/internal/platform/telemetry/metrics"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func fixedDeps() Deps {
	return Deps{
		Seeds: func() (int64, error) { return 42, nil },
		IDs:   func() (string, error) { return "task-1", nil },
	}
}

func intPtr(v int) *int { return &v }

func uint64Ptr(v uint64) *uint64 { return &v }

func floatPtr(v float64) *float64 { return &v }

func TestEncodeHandler(t *testing.T) {
	t.Run("fits", func(t *testing.T) {
		_, result, err := EncodeHandler(Deps{})(context.Background(), nil, EncodeInput{Value: 123.45})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if diff := cmp.Diff([]int{1, 2, 3, 4, 5}, result.Counts); diff != "" {
			t.Fatalf("counts mismatch (-want +got):\n%s", diff)
		}
		if result.Overflow || result.Cap != 9 || result.Capacity != 999.99 {
			t.Fatalf("result = %+v", result)
		}
		wantBeads := []RodBeads{{Lower: 1}, {Lower: 2}, {Lower: 3}, {Lower: 4}, {Upper: true}}
		if diff := cmp.Diff(wantBeads, result.Beads); diff != "" {
			t.Fatalf("beads mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("overflow under cap", func(t *testing.T) {
		collectors := metrics.New()
		deps := Deps{Metrics: collectors}
		_, result, err := EncodeHandler(deps)(context.Background(), nil, EncodeInput{Value: 7.5, Cap: intPtr(4)})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if diff := cmp.Diff([]int{0, 0, 4, 4, 4}, result.Counts); diff != "" {
			t.Fatalf("counts mismatch (-want +got):\n%s", diff)
		}
		if !result.Overflow {
			t.Fatal("expected overflow")
		}
		expected := `
# HELP abacus_encode_overflow_total Encodes whose value exceeded the rod capacity and was truncated.
# TYPE abacus_encode_overflow_total counter
abacus_encode_overflow_total 1
`
		if err := testutil.GatherAndCompare(collectors.Registry(), strings.NewReader(expected), "abacus_encode_overflow_total"); err != nil {
			t.Fatalf("overflow metric: %v", err)
		}
	})
}

func TestDecodeHandler(t *testing.T) {
	_, result, err := DecodeHandler()(context.Background(), nil, DecodeInput{Counts: []int{0, 1, 2, 3, 4}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Value != 12.34 || result.Formatted != "12.34" {
		t.Fatalf("result = %+v", result)
	}

	_, _, err = DecodeHandler()(context.Background(), nil, DecodeInput{Counts: []int{1, 2}})
	if !errors.Is(err, apperrors.New(apperrors.CodeRodCountInvalidLength, "")) {
		t.Fatalf("expected rod count error, got %v", err)
	}
	if !strings.Contains(err.Error(), "got 2") {
		t.Fatalf("expected localized message, got %q", err.Error())
	}
}

func TestBeadEditHandler(t *testing.T) {
	handler := BeadEditHandler(Deps{})
	tests := []struct {
		name  string
		input BeadEditInput
		want  []int
	}{
		{name: "set", input: BeadEditInput{Counts: []int{0, 0, 0, 0, 0}, Operation: "set", Rod: 2, Count: 7}, want: []int{0, 0, 7, 0, 0}},
		{name: "increment at cap", input: BeadEditInput{Counts: []int{0, 0, 4, 0, 0}, Operation: "increment", Rod: 2, Cap: intPtr(4)}, want: []int{0, 0, 4, 0, 0}},
		{name: "decrement at zero", input: BeadEditInput{Counts: []int{0, 0, 0, 0, 0}, Operation: "decrement", Rod: 4}, want: []int{0, 0, 0, 0, 0}},
		{name: "invalid rod", input: BeadEditInput{Counts: []int{1, 1, 1, 1, 1}, Operation: "increment", Rod: 9}, want: []int{1, 1, 1, 1, 1}},
		{name: "toggle upper", input: BeadEditInput{Counts: []int{0, 0, 3, 0, 0}, Operation: "toggle_upper", Rod: 2}, want: []int{0, 0, 8, 0, 0}},
		{name: "increment lower", input: BeadEditInput{Counts: []int{0, 6, 0, 0, 0}, Operation: "increment_lower", Rod: 1}, want: []int{0, 7, 0, 0, 0}},
		{name: "decrement lower keeps upper", input: BeadEditInput{Counts: []int{0, 0, 0, 0, 5}, Operation: "Decrement_Lower", Rod: 4}, want: []int{0, 0, 0, 0, 5}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, result, err := handler(context.Background(), nil, tt.input)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if diff := cmp.Diff(tt.want, result.Counts); diff != "" {
				t.Fatalf("counts mismatch (-want +got):\n%s", diff)
			}
		})
	}

	t.Run("reports split beads and capacity", func(t *testing.T) {
		_, result, err := handler(context.Background(), nil, BeadEditInput{Counts: []int{0, 0, 3, 0, 0}, Operation: "toggle_upper", Rod: 2, Cap: intPtr(9)})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		want := BeadEditResult{
			Counts:   []int{0, 0, 8, 0, 0},
			Value:    8,
			Cap:      9,
			Capacity: 999.99,
			Beads:    []RodBeads{{}, {}, {Upper: true, Lower: 3}, {}, {}},
		}
		if diff := cmp.Diff(want, result); diff != "" {
			t.Fatalf("result mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("unsupported operation", func(t *testing.T) {
		_, _, err := handler(context.Background(), nil, BeadEditInput{Counts: []int{0, 0, 0, 0, 0}, Operation: "spin"})
		if apperrors.CodeOf(err) != apperrors.CodeBeadOperationUnsupported {
			t.Fatalf("expected unsupported operation, got %v", err)
		}
		if !strings.Contains(err.Error(), "toggle_upper, increment_lower, decrement_lower") {
			t.Fatalf("expected operation list, got %q", err.Error())
		}
	})

	t.Run("localized error", func(t *testing.T) {
		_, _, err := handler(context.Background(), nil, BeadEditInput{Counts: []int{0, 0}, Operation: "set", Locale: "bn-BD"})
		if err == nil || !strings.Contains(err.Error(), "পাওয়া গেছে 2টি") {
			t.Fatalf("expected bn-BD message, got %v", err)
		}
	})
}

func TestDecodeHandlerLocalizesErrors(t *testing.T) {
	_, _, err := DecodeHandler()(context.Background(), nil, DecodeInput{Counts: []int{1}, Locale: "bn-BD"})
	if apperrors.CodeOf(err) != apperrors.CodeRodCountInvalidLength {
		t.Fatalf("expected rod count error, got %v", err)
	}
	if !strings.Contains(err.Error(), "পাওয়া গেছে 1টি") {
		t.Fatalf("expected bn-BD message, got %q", err.Error())
	}
}

func TestTaskHandler(t *testing.T) {
	t.Run("server seed", func(t *testing.T) {
		_, result, err := TaskHandler(fixedDeps())(context.Background(), nil, TaskInput{Mode: "addition"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		want := task.GenerateWithSeed(task.ModeAddition, 42)
		if result.ID != "task-1" || result.SeedUsed != 42 || result.SeedSource != "SERVER" {
			t.Fatalf("result = %+v", result)
		}
		if result.ExpectedAnswer != want.ExpectedAnswer || result.Prompt != want.Prompt {
			t.Fatalf("expected %+v, got %+v", want, result)
		}
		if result.Instruction != "Solve this addition:" || result.Hint == "" {
			t.Fatalf("instruction = %q hint = %q", result.Instruction, result.Hint)
		}
	})

	t.Run("client seed identity", func(t *testing.T) {
		_, result, err := TaskHandler(fixedDeps())(context.Background(), nil, TaskInput{Mode: "normal", Seed: uint64Ptr(7)})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if result.SeedSource != "CLIENT" || result.Mode != "identity" || result.Operand2 != 0 {
			t.Fatalf("result = %+v", result)
		}
		if len(result.Inputs) != 0 || result.Inputs == nil {
			t.Fatalf("expected empty inputs, got %#v", result.Inputs)
		}
	})

	t.Run("localized", func(t *testing.T) {
		_, result, err := TaskHandler(fixedDeps())(context.Background(), nil, TaskInput{Mode: "sub", Locale: "bn-BD"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if result.Instruction == "Solve this subtraction:" {
			t.Fatal("expected localized instruction")
		}
	})

	t.Run("invalid mode", func(t *testing.T) {
		_, _, err := TaskHandler(fixedDeps())(context.Background(), nil, TaskInput{Mode: "multiply"})
		if apperrors.CodeOf(err) != apperrors.CodeTaskInvalidMode {
			t.Fatalf("expected invalid mode, got %v", err)
		}
		if !strings.Contains(err.Error(), "Use one of: identity, addition, subtraction.") {
			t.Fatalf("expected mode list, got %q", err.Error())
		}
	})

	t.Run("seed out of range", func(t *testing.T) {
		_, _, err := TaskHandler(fixedDeps())(context.Background(), nil, TaskInput{Mode: "addition", Seed: uint64Ptr(1 << 63)})
		if apperrors.CodeOf(err) != apperrors.CodeSeedOutOfRange {
			t.Fatalf("expected seed out of range, got %v", err)
		}
	})

	t.Run("id failure", func(t *testing.T) {
		deps := fixedDeps()
		deps.IDs = func() (string, error) { return "", errors.New("boom") }
		if _, _, err := TaskHandler(deps)(context.Background(), nil, TaskInput{Mode: "addition"}); err == nil {
			t.Fatal("expected error")
		}
	})
}

func TestVerifyHandler(t *testing.T) {
	handler := VerifyHandler(fixedDeps())

	t.Run("expected correct", func(t *testing.T) {
		_, result, err := handler(context.Background(), nil, VerifyInput{Answer: 7.341, Expected: floatPtr(7.35)})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !result.Correct || result.Message != task.MessageCorrect {
			t.Fatalf("result = %+v", result)
		}
	})

	t.Run("expected one cent off", func(t *testing.T) {
		_, result, err := handler(context.Background(), nil, VerifyInput{Answer: 7.34, Expected: floatPtr(7.35)})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if result.Correct {
			t.Fatal("expected incorrect")
		}
		if result.Message != task.MessageIncorrectPrefix+"7.35" {
			t.Fatalf("message = %q", result.Message)
		}
	})

	t.Run("seeded task", func(t *testing.T) {
		generated := task.GenerateWithSeed(task.ModeSubtraction, 99)
		_, result, err := handler(context.Background(), nil, VerifyInput{
			Answer: generated.ExpectedAnswer,
			Mode:   "subtraction",
			Seed:   uint64Ptr(99),
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !result.Correct || result.Expected != generated.ExpectedAnswer {
			t.Fatalf("result = %+v", result)
		}
	})

	t.Run("task wins over expected", func(t *testing.T) {
		generated := task.GenerateWithSeed(task.ModeAddition, 5)
		_, result, err := handler(context.Background(), nil, VerifyInput{
			Answer:   generated.ExpectedAnswer,
			Expected: floatPtr(generated.ExpectedAnswer + 1),
			Mode:     "addition",
			Seed:     uint64Ptr(5),
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !result.Correct || result.Expected != generated.ExpectedAnswer {
			t.Fatalf("result = %+v", result)
		}
	})

	t.Run("missing target", func(t *testing.T) {
		_, _, err := handler(context.Background(), nil, VerifyInput{Answer: 1})
		if apperrors.CodeOf(err) != apperrors.CodeInvalidArgument {
			t.Fatalf("expected invalid argument, got %v", err)
		}
	})
}

func TestPlaceValuesResourceHandler(t *testing.T) {
	handler := PlaceValuesResourceHandler()

	read := func(t *testing.T, uri string) PlaceValuesPayload {
		t.Helper()
		result, err := handler(context.Background(), &mcp.ReadResourceRequest{Params: &mcp.ReadResourceParams{URI: uri}})
		if err != nil {
			t.Fatalf("read %s: %v", uri, err)
		}
		if len(result.Contents) != 1 {
			t.Fatalf("expected one content entry, got %d", len(result.Contents))
		}
		var payload PlaceValuesPayload
		if err := json.Unmarshal([]byte(result.Contents[0].Text), &payload); err != nil {
			t.Fatalf("decode payload: %v", err)
		}
		return payload
	}

	payload := read(t, "abacus://place-values")
	if payload.Locale != "en-US" || len(payload.PlaceValues) != 5 {
		t.Fatalf("payload = %+v", payload)
	}
	if payload.PlaceValues[0].Name != "Hundreds" || payload.PlaceValues[4].Magnitude != 0.01 {
		t.Fatalf("unexpected rods: %+v", payload.PlaceValues)
	}

	localized := read(t, "abacus://place-values/bn-BD")
	if localized.Locale != "bn-BD" || localized.PlaceValues[0].LocalName != "শতক" {
		t.Fatalf("localized payload = %+v", localized)
	}

	if _, err := handler(context.Background(), &mcp.ReadResourceRequest{Params: &mcp.ReadResourceParams{URI: "abacus://other"}}); err == nil {
		t.Fatal("expected error for unknown uri")
	}
	if _, err := handler(context.Background(), nil); err == nil {
		t.Fatal("expected error for nil request")
	}
}

func TestPlaceValuesHandler(t *testing.T) {
	_, payload, err := PlaceValuesHandler()(context.Background(), nil, PlaceValuesInput{Locale: "bn"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if payload.Locale != "bn-BD" {
		t.Fatalf("expected bn-BD, got %q", payload.Locale)
	}

	_, payload, err = PlaceValuesHandler()(context.Background(), nil, PlaceValuesInput{Locale: "zz-ZZ"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if payload.Locale != "en-US" || payload.PlaceValues[2].LocalName != "Ones" {
		t.Fatalf("payload = %+v", payload)
	}
}
