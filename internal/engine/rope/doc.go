// Package rope provides an immutable rope for editor text storage.
//
// The rope is a B+ tree whose leaves hold bounded UTF-8 chunks and whose
// internal nodes cache a TextSummary (bytes, code points, newlines) for
// each child. The cached summaries make byte, character and line lookups
// O(log n) without scanning the document.
//
// Every edit returns a new Rope and leaves the receiver untouched, so a
// Rope value doubles as a cheap snapshot:
//
//	r := rope.FromString("hello world")
//	r = r.Insert(5, ",")   // "hello, world"
//	r = r.Delete(0, 7)     // "world"
//
// Offsets are byte offsets. The rope does not validate that an offset
// falls on a code point boundary; that is the caller's job.
package rope
