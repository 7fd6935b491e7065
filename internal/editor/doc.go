// Package editor coordinates a document, its cursors and its viewport.
//
// An Editor turns one semantic Command into cursor movements and buffer
// edits. Movement applies to every cursor independently; afterwards the
// cursor set is deduplicated and, for selection-producing commands,
// overlapping selections are merged.
//
// Edits run in reverse document order. Each cursor's anchor and head are
// tracked as byte offsets for the whole command, and every applied edit
// shifts the tracked offsets of the other cursors, so no cursor is ever
// addressed through a stale position. The per-cursor operations are
// recorded as one history.Batch, which undoes and redoes as a unit.
//
// The Editor is single-threaded: one command is fully processed before the
// next one arrives and before a frame is rendered.
package editor
