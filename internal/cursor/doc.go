// Package cursor implements single and multi-cursor state: position plus
// an optional selection, vertical motion with phantom-column memory,
// word/line motion, and the multi-cursor fan-out and consolidation rules
// described in spec.md §4.4.
package cursor
