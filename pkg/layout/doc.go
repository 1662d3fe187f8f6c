// Package layout implements the parking-lot layout designer: placement
// validation, the authoritative spot collection and next-spot suggestions.
//
// # Overview
//
// A layout is a bounded [Canvas] holding fixed-size rectangular [Spot]s.
// Every spot has the same dimensions (a layout-wide constant) and a pose made
// of its un-rotated top-left corner and a rotation in degrees about its own
// center.
//
// The package is organised in three layers:
//
//  1. Validation ([Check], [IsValid]): a pure function deciding whether a
//     candidate [Pose] lies inside the canvas and overlaps no committed spot.
//  2. State ([State]): owns the ordered spot collection and the next-id
//     counter. Every mutation either fully commits or is a no-op.
//  3. Suggestion ([State.Suggest], [GridScan]): proposes the next pose by
//     continuing the pattern of the last two spots, and finds a free cell by
//     raster scan for the explicit add action.
//
// # Invariants
//
// After every committed mutation:
//   - every spot lies within [0, width] × [0, height] after rotation
//   - no two spots share positive area (touching edges are fine)
//   - spot ids are pairwise distinct and never reused
//
// Resizing the canvas is the one exception to the first rule. By default a
// shrink is accepted without re-validating existing spots, which can leave
// spots hanging over the new edge; [State.Violations] lists them. Use
// [WithStrictResize] to reject such shrinks instead.
//
// # Errors
//
// Rejections are reported with codes from [github.com/matzehuels/lotplan/pkg/errors]:
// OUT_OF_BOUNDS and OVERLAP for an illegal pose, CAPACITY_EXCEEDED when the
// grid scan finds no room, NO_SUGGESTION when no ghost can be offered and
// SPOT_NOT_FOUND for unknown ids. A returned error always means the state is
// unchanged.
//
// # Concurrency
//
// A [State] is a single-user editing surface and is not safe for concurrent
// use. Callers that share one across goroutines (such as the HTTP server)
// must serialize access themselves.
package layout
