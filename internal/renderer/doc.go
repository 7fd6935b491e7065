// Package renderer composites an editor view into a CPU framebuffer.
//
// A frame is produced by a fixed sequence of stages, each a method on
// Compositor that reads a RenderState and writes only into the frame:
//
//	┌──────────────────────────────────────────────┐
//	│ 1 resize       │ 2 clear       │ 3 line hl   │
//	├──────────────────────────────────────────────┤
//	│ 4 selections   │ 5 rect preview│ 6 text      │
//	├──────────────────────────────────────────────┤
//	│ 7 cursors      │ 8 gutter      │ 9 status    │
//	├──────────────────────────────────────────────┤
//	│ 10 present → backend.Presenter               │
//	└──────────────────────────────────────────────┘
//
// Every pixel write is clipped to the frame's real size. A stage that has
// nothing to draw, such as the text stage when no whole line fits, leaves
// the frame untouched and the pass continues.
//
// Usage:
//
//	cache := glyph.NewCache(glyph.BasicRasterizer())
//	c := renderer.New(backend.NewNull(800, 600), cache, renderer.DefaultOptions())
//	err := c.Render(&renderer.RenderState{Lines: doc, Cursors: cursors})
package renderer
