// Package pkg provides the core libraries for the Quantpane layout engine.
//
// # Overview
//
// Quantpane computes deterministic block layouts for report pages: every
// cell in a block shares a single resolved height, images keep their exact
// aspect ratio, and the same input always produces the same pixels. The pkg
// directory is organized into these areas:
//
//  1. [layout] - Domain logic (height solving, conflict resolution, fit validation)
//  2. [pipeline] - Orchestration (solve → validate → render) with caching
//  3. [render] - Output artifacts (SVG, JSON)
//  4. [store] - Entity persistence (pages, charts, partners) over MongoDB or memory
//  5. [cache] - Layout and artifact caching (file, Redis)
//
// # Architecture
//
// The typical data flow through Quantpane:
//
//	Block configuration (width + cells)
//	         ↓
//	    [layout] package (resolve shared height, per-cell geometry)
//	         ↓
//	    [pipeline] package (validate fit, cache, orchestrate)
//	         ↓
//	    [render] package (SVG/JSON artifacts)
//
// Supporting packages: [config] for TOML configuration, [errors] for coded
// errors, [observability] for hooks, [buildinfo] for version stamping.
//
// # Quick Start
//
//	runner := pipeline.NewRunner(nil, nil, nil)
//	result, err := runner.Execute(ctx, pipeline.Options{
//	    Block:   block,
//	    Formats: []string{"svg"},
//	})
package pkg
