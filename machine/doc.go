// Package machine models the architectural state of one simulated run
// and the diff records that are the only legal way to mutate it.
//
// A ProgramState owns exactly one privileged state and one user state for
// the lifetime of a run. Instruction evaluation computes either a
// UserDiff or a trap; a trap is resolved by the privileged layer into a
// privileged effect that is applied before its derived user-visible
// effect. Every applied diff can be reverted bit-for-bit, which is what
// makes stepping and undo possible.
//
// The model is single threaded: apply, dispatch and revert are plain
// synchronous calls and the caller serializes them.
package machine
