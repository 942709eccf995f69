// Package task generates abacus practice tasks and verifies answers.
//
// # Operands
//
// Each operand is drawn as round2(u*9 + 1) for a uniform u in [0, 1), so it
// lies in [1.00, 10.00] with two-decimal granularity. The end points carry
// half the weight of the interior values; keep this shape so recorded seeds
// keep replaying to the same tasks.
//
// # Determinism
//
// GenerateWithSeed is a pure function of its mode and seed. A Generator
// draws a fresh per-task seed from its own source, so every task it returns
// can be replayed from Task.Seed alone.
//
// # Verification
//
// An answer is correct when it differs from the expected answer by strictly
// less than Tolerance. The difference is snapped to 1e-9 before comparing, so
// answers exactly one cent away are rejected even when binary representation
// makes the raw difference land just under 0.01.
package task

import (
	"math"
	"math/rand"

	"github.com/louisbranch/abacus/internal/abacus/placevalue"
)

// Tolerance is the exclusive bound on |answer - expected| for a correct answer.
const Tolerance = 0.01

const (
	operandMin  = 1.0
	operandSpan = 9.0
	snap        = 1e9
)

// Task is one generated practice problem.
type Task struct {
	ID   string
	Mode Mode
	// Operand1 is the target value in identity mode and the larger operand
	// in subtraction mode.
	Operand1 float64
	// Operand2 is zero in identity mode.
	Operand2       float64
	ExpectedAnswer float64
	Prompt         string
	Seed           int64
	// Inputs holds the values pre-filled on the operand abacuses. It is
	// empty for identity tasks.
	Inputs []float64
}

// Generator produces tasks from a seeded source.
type Generator struct {
	rng *rand.Rand
}

// NewGenerator returns a generator whose task sequence is fixed by seed.
func NewGenerator(seed int64) *Generator {
	return &Generator{rng: rand.New(rand.NewSource(seed))}
}

// Generate returns the next task for mode. The task's Seed replays it
// through GenerateWithSeed.
func (g *Generator) Generate(mode Mode) Task {
	return GenerateWithSeed(mode, g.rng.Int63())
}

// GenerateWithSeed draws two operands from a source seeded with seed and
// builds a task for mode. An unspecified mode yields an identity task.
func GenerateWithSeed(mode Mode, seed int64) Task {
	rng := rand.New(rand.NewSource(seed))
	first := Draw(rng)
	second := Draw(rng)

	t := Build(mode, first, second)
	t.Seed = seed
	return t
}

// Draw samples one operand in [1.00, 10.00].
func Draw(rng *rand.Rand) float64 {
	return placevalue.Round2(rng.Float64()*operandSpan + operandMin)
}

// Build assembles a task from two drawn operands.
//
//   - Identity: the first draw is the target; the second is discarded.
//   - Addition: the answer is the rounded sum of both draws.
//   - Subtraction: the larger draw becomes Operand1 so the answer is never
//     negative.
func Build(mode Mode, first, second float64) Task {
	first = placevalue.Round2(first)
	second = placevalue.Round2(second)

	switch mode {
	case ModeAddition:
		return Task{
			Mode:           ModeAddition,
			Operand1:       first,
			Operand2:       second,
			ExpectedAnswer: placevalue.Round2(first + second),
			Prompt:         placevalue.Format(first) + " + " + placevalue.Format(second) + " = ?",
			Inputs:         []float64{first, second},
		}
	case ModeSubtraction:
		larger := math.Max(first, second)
		smaller := math.Min(first, second)
		return Task{
			Mode:           ModeSubtraction,
			Operand1:       larger,
			Operand2:       smaller,
			ExpectedAnswer: placevalue.Round2(larger - smaller),
			Prompt:         placevalue.Format(larger) + " - " + placevalue.Format(smaller) + " = ?",
			Inputs:         []float64{larger, smaller},
		}
	default:
		return Task{
			Mode:           ModeIdentity,
			Operand1:       first,
			ExpectedAnswer: first,
			Prompt:         placevalue.Format(first),
		}
	}
}

// Verify reports whether answer is within Tolerance of expected.
func Verify(answer, expected float64) bool {
	diff := math.Round(math.Abs(answer-expected)*snap) / snap
	return diff < Tolerance
}
