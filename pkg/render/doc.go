// Package render turns resolved block geometry into shareable artifacts.
//
// Two sinks are provided: an SVG preview that draws each cell as a labeled
// rectangle at its computed pixel geometry, and a JSON document that is the
// primary data interchange format for downstream dashboard clients.
package render
