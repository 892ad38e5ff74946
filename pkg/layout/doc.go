// Package layout implements the deterministic block layout engine.
//
// A report page is a stack of blocks. Each block is a horizontal strip of
// heterogeneous cells (charts, KPIs, images, text, tables) that must share a
// single height. Given a block's width and its cell configuration, this
// package solves for that shared height and each cell's resulting pixel
// width, such that image cells keep their declared aspect ratio exactly,
// non-image cells occupy width proportional to their grid-unit span, and the
// widths sum to the block width.
//
// # Two height conventions
//
// There are two independent height-producing entry points:
//
//   - SolveBlockHeight: the aspect-ratio-anchored solve. Image cells provide
//     a geometric constraint that the height is solved against. Blocks
//     without image cells fall back to a fixed height.
//   - MultiplierHeight: a heuristic lookup for image-free blocks, keyed by
//     the block's total grid units.
//
// A caller picks the entry point based on whether the block contains image
// cells; the two conventions are never blended within a single block.
//
// # Conflict resolution
//
// When more than one sizing pressure applies (intrinsic image dimensions, a
// declared block-level aspect ratio, a text readability floor), a
// ConflictResolver arbitrates per a fixed priority ordering and reports the
// winning priority, a human-readable reason, and whether the block must be
// split because no single height satisfies all constraints.
//
// Every function in this package is a pure function of its inputs: no shared
// state, no I/O. Blocks may be solved concurrently without coordination.
package layout
