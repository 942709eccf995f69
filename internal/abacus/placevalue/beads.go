package placevalue

// Split-rod widget geometry: one upper bead worth five units above the bar,
// four lower beads worth one unit each below it.
const (
	UpperWorth = 5
	LowerBeads = 4
)

// Bead is the two-part state of one rod on the split widget.
type Bead struct {
	Upper bool
	Lower int
}

// Count returns the flat activated count for the rod.
func (b Bead) Count() int {
	count := clampInt(b.Lower, 0, LowerBeads)
	if b.Upper {
		count += UpperWorth
	}
	return count
}

// Split converts flat counts into the split-rod representation. Counts are
// clamped to [0, MaxCap] first.
func Split(state RodCount) [Rods]Bead {
	var out [Rods]Bead
	for i, count := range state.Clamp(MaxCap) {
		if count >= UpperWorth {
			out[i] = Bead{Upper: true, Lower: count - UpperWorth}
			continue
		}
		out[i] = Bead{Lower: count}
	}
	return out
}

// Join converts split-rod beads back into flat counts.
func Join(beads [Rods]Bead) RodCount {
	var out RodCount
	for i, bead := range beads {
		out[i] = bead.Count()
	}
	return out
}

// SetCount returns a copy of state with rod set to count, clamped to
// [0, maxPerRod]. An out-of-range rod returns state unchanged.
func SetCount(state RodCount, rod, count, maxPerRod int) RodCount {
	if !validRod(rod) {
		return state
	}
	state[rod] = clampInt(count, 0, ClampCap(maxPerRod))
	return state
}

// Increment activates one more bead on rod, stopping at maxPerRod.
func Increment(state RodCount, rod, maxPerRod int) RodCount {
	if !validRod(rod) {
		return state
	}
	return SetCount(state, rod, state[rod]+1, maxPerRod)
}

// Decrement deactivates one bead on rod, stopping at zero.
func Decrement(state RodCount, rod int) RodCount {
	if !validRod(rod) {
		return state
	}
	state[rod] = clampInt(state[rod]-1, 0, MaxCap)
	return state
}

// ToggleUpper flips the upper bead on rod.
func ToggleUpper(beads [Rods]Bead, rod int) [Rods]Bead {
	if !validRod(rod) {
		return beads
	}
	beads[rod].Upper = !beads[rod].Upper
	return beads
}

// IncrementLower pushes one more lower bead to the bar, stopping at four.
func IncrementLower(beads [Rods]Bead, rod int) [Rods]Bead {
	if !validRod(rod) {
		return beads
	}
	beads[rod].Lower = clampInt(beads[rod].Lower+1, 0, LowerBeads)
	return beads
}

// DecrementLower releases one lower bead, stopping at zero.
func DecrementLower(beads [Rods]Bead, rod int) [Rods]Bead {
	if !validRod(rod) {
		return beads
	}
	beads[rod].Lower = clampInt(beads[rod].Lower-1, 0, LowerBeads)
	return beads
}

func validRod(rod int) bool {
	return rod >= 0 && rod < Rods
}
