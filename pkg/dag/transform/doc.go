// Package transform turns an arbitrary directed graph into a proper layered
// one, where every edge points exactly one row down.
//
// [Rank] runs the three steps in order: [BreakCycles] flips back edges of a
// depth-first walk, [AssignRows] does longest-path layering and [Split]
// threads virtual nodes through the rows a long edge skips.
package transform
