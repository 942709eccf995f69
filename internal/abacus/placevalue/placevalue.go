// Package placevalue converts decimal values to abacus bead counts and back.
//
// # Rods
//
// The abacus has exactly five rods, most significant first: hundreds, tens,
// ones, tenths and hundredths. The order is fixed and drives encoding,
// decoding and decimal-point placement.
//
// # Rounding
//
// Every value is normalized to two decimal places with round-half-up on the
// scaled integer (floor(v*100 + 0.5)). Encoding then works on whole cents so
// binary floating-point noise never reaches the per-rod division: 0.1+0.2
// encodes to three tenths, not two tenths and nine hundredths.
//
// # Overflow
//
// Values larger than five rods can hold at a given cap are truncated without
// an error: each rod takes at most cap beads and whatever is left over is
// dropped. EncodeDetailed reports the dropped amount so callers can flag it.
package placevalue

import (
	"math"
	"strconv"
)

// Rods is the number of rods on the abacus.
const Rods = 5

// Per-rod caps. The flat-count widget allows up to nine active beads per rod;
// the drag-and-drop widget stops at five; the split widget allows four lower
// beads under one upper bead.
const (
	MinCap      = 1
	MaxCap      = 9
	DefaultCap  = CapFull
	CapLegacy   = 4
	CapDragDrop = 5
	CapFull     = 9
)

// Ceiling is the largest input value accepted before encoding. Larger values
// (including +Inf) are clamped to it; they overflow every cap anyway.
const Ceiling = 1e12

// PlaceValue describes one rod.
type PlaceValue struct {
	Name      string
	Magnitude float64
	// Cents is the magnitude expressed in hundredths.
	Cents int64
	Label string
}

var table = [Rods]PlaceValue{
	{Name: "Hundreds", Magnitude: 100, Cents: 10000, Label: "(100)"},
	{Name: "Tens", Magnitude: 10, Cents: 1000, Label: "(10)"},
	{Name: "Ones", Magnitude: 1, Cents: 100, Label: "(1)"},
	{Name: "Tenths", Magnitude: 0.1, Cents: 10, Label: "(0.1)"},
	{Name: "Hundredths", Magnitude: 0.01, Cents: 1, Label: "(0.01)"},
}

// PlaceValues returns a copy of the rod table, most significant first.
func PlaceValues() []PlaceValue {
	out := make([]PlaceValue, Rods)
	copy(out, table[:])
	return out
}

// RodCount holds the number of active beads on each rod.
type RodCount [Rods]int

// Valid reports whether every rod is within [0, cap].
func (s RodCount) Valid(maxPerRod int) bool {
	for _, count := range s {
		if count < 0 || count > maxPerRod {
			return false
		}
	}
	return true
}

// Clamp returns a copy with each rod limited to [0, cap].
func (s RodCount) Clamp(maxPerRod int) RodCount {
	var out RodCount
	for i, count := range s {
		out[i] = clampInt(count, 0, maxPerRod)
	}
	return out
}

// Digits renders the counts as one digit per rod, e.g. "12345".
func (s RodCount) Digits() string {
	buf := make([]byte, 0, Rods)
	for _, count := range s.Clamp(MaxCap) {
		buf = append(buf, byte('0'+count))
	}
	return string(buf)
}

// Slice returns the counts as a slice for wire encodings.
func (s RodCount) Slice() []int {
	out := make([]int, Rods)
	copy(out, s[:])
	return out
}

// FromSlice builds a RodCount from a slice. It reports false when the slice
// does not have exactly Rods entries.
func FromSlice(counts []int) (RodCount, bool) {
	var out RodCount
	if len(counts) != Rods {
		return out, false
	}
	copy(out[:], counts)
	return out, true
}

// EncodeResult is the outcome of encoding a value.
type EncodeResult struct {
	Counts RodCount
	// Dropped is the part of the normalized value that did not fit on the
	// rods at the requested cap. Zero when the value is fully represented.
	Dropped float64
}

// Overflow reports whether any part of the value was dropped.
func (r EncodeResult) Overflow() bool {
	return r.Dropped > 0
}

// ClampCap limits a per-rod cap to [MinCap, MaxCap].
func ClampCap(maxPerRod int) int {
	return clampInt(maxPerRod, MinCap, MaxCap)
}

// Round2 rounds to two decimal places, half up.
func Round2(v float64) float64 {
	r := math.Floor(v*100+0.5) / 100
	if r == 0 {
		// Drop the sign of negative zero.
		return 0
	}
	return r
}

// Normalize prepares an arbitrary input for encoding. Negative values and NaN
// become zero, values above Ceiling become Ceiling, and the result is rounded
// to two decimal places.
func Normalize(v float64) float64 {
	switch {
	case math.IsNaN(v), v <= 0:
		return 0
	case v > Ceiling:
		v = Ceiling
	}
	return Round2(v)
}

// ToCents converts a value to whole hundredths after normalization.
func ToCents(v float64) int64 {
	return int64(math.Floor(Normalize(v)*100 + 0.5))
}

// Encode converts a value into per-rod bead counts with at most cap beads on
// each rod. Excess that does not fit is silently dropped.
func Encode(value float64, maxPerRod int) RodCount {
	return EncodeDetailed(value, maxPerRod).Counts
}

// EncodeDetailed converts a value into bead counts and reports the amount
// that did not fit.
//
// Rods are filled greedily from hundreds to hundredths: each rod takes
// floor(remaining / magnitude) beads limited to cap, and the remainder moves
// on to the next rod. The cap is clamped to [MinCap, MaxCap].
func EncodeDetailed(value float64, maxPerRod int) EncodeResult {
	maxPerRod = ClampCap(maxPerRod)
	remaining := ToCents(value)

	var counts RodCount
	for i, place := range table {
		count := remaining / place.Cents
		if count > int64(maxPerRod) {
			count = int64(maxPerRod)
		}
		counts[i] = int(count)
		remaining -= count * place.Cents
	}

	return EncodeResult{
		Counts:  counts,
		Dropped: float64(remaining) / 100,
	}
}

// Decode converts bead counts into a value rounded to two decimal places.
// Counts outside [0, MaxCap] are clamped first.
func Decode(state RodCount) float64 {
	var cents int64
	for i, count := range state.Clamp(MaxCap) {
		cents += int64(count) * table[i].Cents
	}
	return float64(cents) / 100
}

// Capacity returns the largest value five rods can hold at the given cap.
func Capacity(maxPerRod int) float64 {
	maxPerRod = ClampCap(maxPerRod)
	var cents int64
	for _, place := range table {
		cents += int64(maxPerRod) * place.Cents
	}
	return float64(cents) / 100
}

// Format renders a value with exactly two decimal places.
func Format(v float64) string {
	return strconv.FormatFloat(Round2(v), 'f', 2, 64)
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
