package scenario

import (
	"context"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/louisbranch/abacus/internal/abacus/placevalue"
	"github.com/louisbranch/abacus/internal/abacus/task"
)

func (r *Runner) runStep(ctx context.Context, state *scenarioState, step Step) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	_, span := r.tracer.Start(ctx, "scenario.step."+step.Kind)
	defer span.End()

	switch step.Kind {
	case "cap":
		return r.runCap(state, step.Args)
	case "task":
		return r.runTask(state, step.Args)
	case "beads":
		return r.runBeads(state, step.Args)
	case "encode":
		return r.runEncode(state, step.Args)
	case "edit":
		return r.runEdit(state, step.Args)
	case "answer":
		return r.runAnswer(state, step.Args)
	case "solve":
		return r.runSolve(state)
	case "reset":
		r.runReset(state)
		return nil
	case "expect_correct":
		return r.runExpectVerdict(state, true)
	case "expect_incorrect":
		return r.runExpectVerdict(state, false)
	case "expect_value":
		return r.runExpectValue(state, step.Args)
	case "expect_counts":
		return r.runExpectCounts(state, step.Args)
	case "expect_overflow":
		return r.runExpectOverflow(state, step.Args)
	case "expect_inputs":
		return r.runExpectInputs(state, step.Args)
	default:
		return r.failf("unknown step kind %q", step.Kind)
	}
}

func (r *Runner) runCap(state *scenarioState, args map[string]any) error {
	value, ok := intArg(args, "value")
	if !ok {
		return r.failf("cap requires a number")
	}
	state.maxPerRod = placevalue.ClampCap(value)
	state.board = state.board.Clamp(state.maxPerRod)
	state.answer = placevalue.Decode(state.board)
	return nil
}

func (r *Runner) runTask(state *scenarioState, args map[string]any) error {
	modeName, _ := args["mode"].(string)
	mode, err := task.ParseMode(modeName)
	if err != nil {
		return r.failf("task: %v", err)
	}

	var generated task.Task
	if seed, ok := intArg(args, "seed"); ok {
		if seed < 0 {
			return r.failf("task seed must be non-negative, got %d", seed)
		}
		generated = task.GenerateWithSeed(mode, int64(seed))
	} else {
		generated = state.generator.Generate(mode)
	}
	state.current = &generated
	r.clearBoard(state)
	state.inputs = task.NewBoard(generated).Inputs
	r.logf("task %s seed=%d: %s", generated.Mode, generated.Seed, generated.Prompt)
	return nil
}

func (r *Runner) runBeads(state *scenarioState, args map[string]any) error {
	counts, err := countsArg(args)
	if err != nil {
		return r.failf("beads: %v", err)
	}
	state.board = counts.Clamp(state.maxPerRod)
	state.answer = placevalue.Decode(state.board)
	return nil
}

func (r *Runner) runEncode(state *scenarioState, args map[string]any) error {
	value, ok := floatArg(args, "value")
	if !ok {
		return r.failf("encode requires a value")
	}
	maxPerRod := state.maxPerRod
	if capValue, ok := intArg(args, "cap"); ok {
		maxPerRod = placevalue.ClampCap(capValue)
	}
	result := placevalue.EncodeDetailed(value, maxPerRod)
	state.lastEncode = &result
	state.board = result.Counts
	state.answer = placevalue.Decode(result.Counts)
	if result.Overflow() {
		r.logf("encode %s at cap %d dropped %s", placevalue.Format(value), maxPerRod, placevalue.Format(result.Dropped))
	}
	return nil
}

// runEdit applies one bead gesture to the board.
func (r *Runner) runEdit(state *scenarioState, args map[string]any) error {
	name, _ := args["op"].(string)
	op, ok := placevalue.ParseOperation(name)
	if !ok {
		return r.failf("edit: unsupported operation %q, use one of %s", name, strings.Join(placevalue.OperationNames(), ", "))
	}
	rod, ok := intArg(args, "rod")
	if !ok {
		return r.failf("edit requires a rod")
	}
	count, _ := intArg(args, "count")
	state.board = placevalue.Edit(state.board, op, rod, count, state.maxPerRod)
	state.answer = placevalue.Decode(state.board)
	return nil
}

// runAnswer sets the board to the given value, the way a learner would by
// moving beads.
func (r *Runner) runAnswer(state *scenarioState, args map[string]any) error {
	value, ok := floatArg(args, "value")
	if !ok {
		return r.failf("answer requires a number")
	}
	state.board = placevalue.Encode(value, state.maxPerRod)
	state.answer = placevalue.Decode(state.board)
	return nil
}

// runSolve places the current task's expected answer on the board.
func (r *Runner) runSolve(state *scenarioState) error {
	if state.current == nil {
		return r.failf("no task to solve; add a task step first")
	}
	state.board = placevalue.Encode(state.current.ExpectedAnswer, state.maxPerRod)
	state.answer = placevalue.Decode(state.board)
	return nil
}

func (r *Runner) runReset(state *scenarioState) {
	r.clearBoard(state)
}

func (r *Runner) clearBoard(state *scenarioState) {
	board := task.Board{}
	if state.current != nil {
		board = task.Reset(*state.current)
	}
	state.board = placevalue.Encode(board.Answer, state.maxPerRod)
	state.answer = board.Answer
	state.inputs = board.Inputs
	state.lastEncode = nil
}

func (r *Runner) runExpectVerdict(state *scenarioState, want bool) error {
	if state.current == nil {
		return r.failf("no task to check; add a task step first")
	}
	if !task.CanCheck(state.current.Mode, state.answer) {
		if want {
			return r.assertf("answer for %q cannot be checked yet; place at least one bead", state.current.Prompt)
		}
		return nil
	}
	feedback := task.Check(*state.current, state.answer)
	if feedback.Correct != want {
		return r.assertf("expected correct=%t for %q with answer %s, got %q",
			want, state.current.Prompt, placevalue.Format(state.answer), feedback.Message)
	}
	return nil
}

func (r *Runner) runExpectValue(state *scenarioState, args map[string]any) error {
	want, ok := floatArg(args, "value")
	if !ok {
		return r.failf("expect_value requires a number")
	}
	got := placevalue.Decode(state.board)
	if placevalue.ToCents(got) != placevalue.ToCents(want) {
		return r.assertf("expected board value %s, got %s", placevalue.Format(want), placevalue.Format(got))
	}
	return nil
}

func (r *Runner) runExpectCounts(state *scenarioState, args map[string]any) error {
	want, err := countsArg(args)
	if err != nil {
		return r.failf("expect_counts: %v", err)
	}
	if state.board != want {
		return r.assertf("expected counts %s, got %s", want.Digits(), state.board.Digits())
	}
	return nil
}

func (r *Runner) runExpectOverflow(state *scenarioState, args map[string]any) error {
	if state.lastEncode == nil {
		return r.failf("no encode to check; add an encode step first")
	}
	want, _ := args["value"].(bool)
	if got := state.lastEncode.Overflow(); got != want {
		return r.assertf("expected overflow=%t, got %t (dropped %s)", want, got, placevalue.Format(state.lastEncode.Dropped))
	}
	return nil
}

func (r *Runner) runExpectInputs(state *scenarioState, args map[string]any) error {
	raw, ok := args["values"].([]any)
	if !ok {
		raw = []any{}
	}
	want := make([]float64, 0, len(raw))
	for i, item := range raw {
		value, ok := floatArg(map[string]any{"v": item}, "v")
		if !ok {
			return r.failf("expect_inputs: input %d is not a number", i+1)
		}
		want = append(want, value)
	}
	if len(want) != len(state.inputs) {
		return r.assertf("expected %d operand inputs, got %d", len(want), len(state.inputs))
	}
	for i := range want {
		if placevalue.ToCents(want[i]) != placevalue.ToCents(state.inputs[i]) {
			return r.assertf("expected input %d to be %s, got %s", i+1, placevalue.Format(want[i]), placevalue.Format(state.inputs[i]))
		}
	}
	return nil
}

func countsArg(args map[string]any) (placevalue.RodCount, error) {
	raw, ok := args["counts"].([]any)
	if !ok {
		return placevalue.RodCount{}, fmt.Errorf("counts must be a list of %d numbers", placevalue.Rods)
	}
	values := make([]int, 0, len(raw))
	for i, item := range raw {
		n, ok := toInt(item)
		if !ok {
			return placevalue.RodCount{}, fmt.Errorf("count %d is not a whole number", i+1)
		}
		values = append(values, n)
	}
	counts, ok := placevalue.FromSlice(values)
	if !ok {
		return placevalue.RodCount{}, fmt.Errorf("exactly %d rod counts are required, got %d", placevalue.Rods, len(values))
	}
	return counts, nil
}

func intArg(args map[string]any, key string) (int, bool) {
	value, ok := args[key]
	if !ok {
		return 0, false
	}
	return toInt(value)
}

func toInt(value any) (int, bool) {
	switch v := value.(type) {
	case int:
		return v, true
	case float64:
		if math.Mod(v, 1) != 0 {
			return 0, false
		}
		return int(v), true
	default:
		return 0, false
	}
}

func floatArg(args map[string]any, key string) (float64, bool) {
	switch v := args[key].(type) {
	case int:
		return float64(v), true
	case float64:
		return v, true
	case string:
		if f, err := strconv.ParseFloat(strings.TrimSpace(v), 64); err == nil {
			return f, true
		}
	}
	return 0, false
}
