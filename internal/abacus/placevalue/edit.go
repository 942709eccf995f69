package placevalue

import "strings"

// Operation names a single bead gesture.
type Operation string

// Flat-count gestures act on the per-rod count; split-rod gestures act on the
// upper/lower view of the legacy widget.
const (
	OpSet            Operation = "set"
	OpIncrement      Operation = "increment"
	OpDecrement      Operation = "decrement"
	OpToggleUpper    Operation = "toggle_upper"
	OpIncrementLower Operation = "increment_lower"
	OpDecrementLower Operation = "decrement_lower"
)

var operations = []Operation{
	OpSet, OpIncrement, OpDecrement,
	OpToggleUpper, OpIncrementLower, OpDecrementLower,
}

// Operations lists every supported gesture.
func Operations() []Operation {
	return append([]Operation(nil), operations...)
}

// OperationNames returns the names of Operations, in order.
func OperationNames() []string {
	names := make([]string, len(operations))
	for i, op := range operations {
		names[i] = string(op)
	}
	return names
}

// ParseOperation matches a gesture name case-insensitively.
func ParseOperation(value string) (Operation, bool) {
	op := Operation(strings.ToLower(strings.TrimSpace(value)))
	for _, known := range operations {
		if op == known {
			return op, true
		}
	}
	return "", false
}

// Edit applies op to rod and returns the new counts. The input is clamped to
// the cap first and so is the result, so a split-rod toggle on a low cap
// cannot exceed it. count is only read by OpSet.
func Edit(state RodCount, op Operation, rod, count, maxPerRod int) RodCount {
	maxPerRod = ClampCap(maxPerRod)
	state = state.Clamp(maxPerRod)
	switch op {
	case OpSet:
		return SetCount(state, rod, count, maxPerRod)
	case OpIncrement:
		return Increment(state, rod, maxPerRod)
	case OpDecrement:
		return Decrement(state, rod)
	case OpToggleUpper:
		return Join(ToggleUpper(Split(state), rod)).Clamp(maxPerRod)
	case OpIncrementLower:
		return Join(IncrementLower(Split(state), rod)).Clamp(maxPerRod)
	case OpDecrementLower:
		return Join(DecrementLower(Split(state), rod)).Clamp(maxPerRod)
	default:
		return state
	}
}
