// Package io provides JSON import and export for layout drafts.
//
// # Overview
//
// A draft is a saved, unpublished layout: the canvas, the spot dimensions and
// every committed spot with its id, label, position and rotation. Drafts let
// the CLI apply one operation per invocation (load, mutate, save) and let the
// server persist its layout between restarts.
//
// # JSON Format
//
//	{
//	  "version": 1,
//	  "canvas": {"width": 800, "height": 600},
//	  "spot_size": {"width": 50, "height": 100},
//	  "gap": 10,
//	  "grid_size": 20,
//	  "next_id": 3,
//	  "spots": [
//	    {"id": 1, "label": "P1", "x": 20, "y": 20, "rotation": 0},
//	    {"id": 2, "label": "P2", "x": 80, "y": 20, "rotation": 0}
//	  ]
//	}
//
// The next_id field is stored explicitly so that ids of removed spots are
// never handed out again after a reload.
//
// # Import
//
// Use [ImportJSON] to read a draft from a file path, or [ReadJSON] to read from
// any io.Reader. Both validate the draft through [layout.Restore]: duplicate
// ids and overlapping spots are refused. Spots left outside the canvas by a
// permissive shrink are kept and reported by [layout.State.Violations].
//
// # Export
//
// Use [ExportJSON] to write a draft to a file, or [WriteJSON] to write to any
// io.Writer. [ExportJSON] writes to a temporary file first and renames it into
// place, so a crash never leaves a truncated draft behind.
//
// [layout.Restore]: github.com/matzehuels/lotplan/pkg/layout.Restore
// [layout.State.Violations]: github.com/matzehuels/lotplan/pkg/layout.State.Violations
package io
