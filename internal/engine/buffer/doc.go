// Package buffer provides the editor's text buffer on top of the rope.
//
// Offsets are byte offsets into UTF-8 text and must fall on code point
// boundaries. Positions address text by line and by column, where a column
// counts code points. The buffer never clamps: any offset, range or line
// outside its extent is reported as ErrOutOfBounds, so callers decide how
// to clamp before calling.
//
// Text entering the buffer is normalized to "\n" line endings and to valid
// UTF-8. The line ending detected at construction is kept so the original
// style can be restored with TextWithLineEndings.
//
// Buffer is not safe for concurrent use; the editor core runs on a single
// goroutine.
package buffer
