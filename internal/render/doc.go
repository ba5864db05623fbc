// Package render turns a Buffer, its Cursors, and its per-line token and
// diagnostic stripes into styled terminal cells. It owns the render-cache
// fast/full decision (spec.md §4.5) and the three file-family renderers
// (spec.md §4.6): code, text, and markdown. Package render never talks to a
// terminal directly — it emits cells through the Sink interface, which
// internal/term implements.
package render
