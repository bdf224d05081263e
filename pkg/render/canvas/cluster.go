package canvas

// Multi-symbol cluster geometry, as fractions of the box it fills.
const (
	clusterDotX    = 0.22
	clusterRingX   = 0.5
	clusterTriX    = 0.78
	clusterMarkY   = 0.5
	clusterDotR    = 0.06
	clusterRingR   = 0.1
	clusterTriSide = 0.2
)

// DrawCluster draws the multi-symbol glyph from primitive marks: a dot, a
// ring and a triangle side by side across the w × h box at (x, y). Sinks
// use it to implement [Surface.MultiSymbol].
func DrawCluster(s Surface, x, y, w, h float64) {
	cy := y + h*clusterMarkY
	s.Circle(x+w*clusterDotX, cy, h*clusterDotR)
	s.Ring(x+w*clusterRingX, cy, h*clusterRingR)
	side := h * clusterTriSide
	s.Triangle(x+w*clusterTriX-side/2, cy-side/2, side)
}
