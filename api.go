package mandel

// Navigator moves the computed region. Front ends translate their input
// events into Ops and hand them to a Navigator.
type Navigator interface {
	Apply(op Op) error
	Viewport() Viewport
}

// Drawer renders the current state of the computation into a pixel buffer.
type Drawer interface {
	Draw(dst []Color) error
}

// Explorer is what the viewers need from an engine.
type Explorer interface {
	Navigator
	Drawer
	Stats() Stats
}

var _ Explorer = (*Engine)(nil)
