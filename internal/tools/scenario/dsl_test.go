package scenario

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func writeScenarioFixture(t *testing.T, source string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "fixture.lua")
	if err := os.WriteFile(path, []byte(source), 0o600); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	return path
}

func TestLoadScenarioRecordsSteps(t *testing.T) {
	path := writeScenarioFixture(t, `-- Setup
local scene = Scenario.new("steps")
scene:cap(5)
scene:task({mode = "addition", seed = 3})
scene:beads({0, 1, 2, 3, 4})
scene:answer(12.5)
scene:expect_counts({0, 1, 2, 3, 4})
return scene
`)

	scenario, err := LoadScenarioFromFile(path)
	if err != nil {
		t.Fatalf("load scenario: %v", err)
	}
	if scenario.Name != "steps" {
		t.Fatalf("name = %q, want steps", scenario.Name)
	}

	var kinds []string
	for _, step := range scenario.Steps {
		kinds = append(kinds, step.Kind)
	}
	if diff := cmp.Diff([]string{"cap", "task", "beads", "answer", "expect_counts"}, kinds); diff != "" {
		t.Fatalf("step kinds mismatch (-want +got):\n%s", diff)
	}

	if scenario.Steps[0].Args["value"] != 5 {
		t.Fatalf("cap value = %v, want 5", scenario.Steps[0].Args["value"])
	}
	taskArgs := scenario.Steps[1].Args
	if taskArgs["mode"] != "addition" || taskArgs["seed"] != 3 {
		t.Fatalf("task args = %v", taskArgs)
	}
	if diff := cmp.Diff([]any{0, 1, 2, 3, 4}, scenario.Steps[2].Args["counts"]); diff != "" {
		t.Fatalf("bead counts mismatch (-want +got):\n%s", diff)
	}
	if scenario.Steps[3].Args["value"] != 12.5 {
		t.Fatalf("answer value = %v, want 12.5", scenario.Steps[3].Args["value"])
	}
}

func TestLoadScenarioRecordsEditAndInputs(t *testing.T) {
	scenario, err := LoadScenarioFromString("edit", `
return Scenario.new():edit({op = "toggle_upper", rod = 2}):expect_inputs({1.5, 2}):expect_inputs({})
`)
	if err != nil {
		t.Fatalf("load scenario: %v", err)
	}
	if len(scenario.Steps) != 3 {
		t.Fatalf("steps = %+v", scenario.Steps)
	}
	if diff := cmp.Diff(map[string]any{"op": "toggle_upper", "rod": 2}, scenario.Steps[0].Args); diff != "" {
		t.Fatalf("edit args mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]any{1.5, 2}, scenario.Steps[1].Args["values"]); diff != "" {
		t.Fatalf("input values mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]any{}, scenario.Steps[2].Args["values"]); diff != "" {
		t.Fatalf("empty inputs mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadScenarioChainsCalls(t *testing.T) {
	scenario, err := LoadScenarioFromString("chain", `
return Scenario.new():task({mode = "sub"}):solve():expect_correct():reset()
`)
	if err != nil {
		t.Fatalf("load scenario: %v", err)
	}
	if scenario.Name != "chain" {
		t.Fatalf("name = %q, want fallback chain", scenario.Name)
	}
	if len(scenario.Steps) != 4 {
		t.Fatalf("steps = %d, want 4", len(scenario.Steps))
	}
}

func TestLoadScenarioNameFallsBackToFile(t *testing.T) {
	path := writeScenarioFixture(t, `return Scenario.new()`)
	scenario, err := LoadScenarioFromFile(path)
	if err != nil {
		t.Fatalf("load scenario: %v", err)
	}
	if scenario.Name != "fixture" {
		t.Fatalf("name = %q, want fixture", scenario.Name)
	}
}

func TestExpectOverflowDefaultsToTrue(t *testing.T) {
	scenario, err := LoadScenarioFromString("overflow", `
local scene = Scenario.new()
scene:expect_overflow()
scene:expect_overflow(false)
return scene
`)
	if err != nil {
		t.Fatalf("load scenario: %v", err)
	}
	if scenario.Steps[0].Args["value"] != true || scenario.Steps[1].Args["value"] != false {
		t.Fatalf("overflow args = %v, %v", scenario.Steps[0].Args, scenario.Steps[1].Args)
	}
}

func TestLoadScenarioErrors(t *testing.T) {
	tests := []struct {
		name   string
		source string
		want   string
	}{
		{name: "no return", source: `local scene = Scenario.new()`, want: "must return Scenario"},
		{name: "wrong return", source: `return 42`, want: "must return Scenario"},
		{name: "syntax error", source: `return Scenario.new(`, want: "load lua"},
		{name: "bad argument", source: `return Scenario.new():answer("lots")`, want: "run lua"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadScenarioFromString(tt.name, tt.source)
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Fatalf("error = %v, want substring %q", err, tt.want)
			}
		})
	}
}

func TestLoadScenarioMissingFile(t *testing.T) {
	if _, err := LoadScenarioFromFile(filepath.Join(t.TempDir(), "missing.lua")); err == nil {
		t.Fatal("expected error for missing file")
	}
}
