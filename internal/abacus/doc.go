// Package abacus serves as an umbrella for the abacus practice engine core,
// the part of the game that carries actual arithmetic semantics.
//
// The package is organized into two subpackages:
//   - placevalue: converts a decimal value into per-rod bead counts for a
//     five-rod abacus (hundreds through hundredths) and back again.
//   - task: generates identity, addition and subtraction practice tasks and
//     verifies submitted answers with a one-hundredth tolerance.
//
// Both subpackages are pure. Callers own all bead state and pass immutable
// snapshots in and out; nothing in the core keeps mutable fields between
// calls, so every operation is safe to call concurrently.
package abacus
