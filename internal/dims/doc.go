// Package dims provides named, lettered dimensions and ordered dimension
// sets, the axis metadata attached to every labeled array.
//
//   - [Dimension]: an immutable named axis with ordered, unique index items
//   - [Set]: an ordered, letter-unique collection of dimensions
//
// A Set defines the canonical axis ordering for arrays built from it.
// Subset, union, intersection and difference all yield valid Sets, so any
// dimension bookkeeping derived from a valid Set stays valid.
//
// Two dimensions sharing a letter but disagreeing on items can never end up
// in one Set; Union reports [ErrConflict] instead. This is the invariant
// that protects the array engine from silent axis misalignment.
package dims
