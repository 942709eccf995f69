package task

import "github.com/louisbranch/abacus/internal/abacus/placevalue"

const (
	MessageCorrect = "Correct! Well done!"
	// MessageIncorrectPrefix is followed by the expected answer.
	MessageIncorrectPrefix = "Try again! The correct answer is: "
	AnswerHint             = "Set the answer on the bottom abacus"
)

// Guide is the text shown above a task.
type Guide struct {
	Heading string
	Hint    string
}

// Instruction returns the heading and answer hint shown for a mode.
func Instruction(mode Mode) Guide {
	switch mode {
	case ModeAddition:
		return Guide{Heading: "Solve this addition:", Hint: AnswerHint}
	case ModeSubtraction:
		return Guide{Heading: "Solve this subtraction:", Hint: AnswerHint}
	default:
		return Guide{Heading: "Show this number on the abacus:"}
	}
}

// Feedback reports the verdict for a submitted answer.
type Feedback struct {
	Correct   bool
	Expected  float64
	Submitted float64
	Message   string
}

// Check verifies answer against the task and builds the learner feedback.
func Check(t Task, answer float64) Feedback {
	return CheckExpected(answer, t.ExpectedAnswer)
}

// CheckExpected is Check for callers that only hold the expected value.
func CheckExpected(answer, expected float64) Feedback {
	fb := Feedback{
		Correct:   Verify(answer, expected),
		Expected:  expected,
		Submitted: answer,
		Message:   MessageCorrect,
	}
	if !fb.Correct {
		fb.Message = MessageIncorrectPrefix + placevalue.Format(expected)
	}
	return fb
}

// Board is the caller-owned widget state while a task is open.
type Board struct {
	Answer float64
	Inputs []float64
}

// NewBoard returns the initial board for a task, with operand inputs
// pre-filled for arithmetic tasks.
func NewBoard(t Task) Board {
	return Board{Inputs: append([]float64(nil), t.Inputs...)}
}

// Reset returns a cleared board: zero answer and, for arithmetic tasks, one
// zeroed input per operand.
func Reset(t Task) Board {
	if !t.Mode.Arithmetic() {
		return Board{}
	}
	return Board{Inputs: make([]float64, len(t.Inputs))}
}

// CanCheck reports whether an answer can be submitted. Identity tasks need at
// least one bead placed first.
func CanCheck(mode Mode, answer float64) bool {
	return mode != ModeIdentity || answer > 0
}
