// Package interact implements pan and zoom over a rendered grid.
//
// A [Controller] is a two-state machine (Idle, Dragging) fed with pointer
// events. While dragging, each move adds the delta since the previous
// event to a persistent offset, so the offset is the sum of incremental
// steps rather than a start-to-end difference. The scale is a separate
// value that a host overwrites with [Controller.SetScale].
//
// Controllers are not safe for concurrent use. Hosts that receive events on
// several goroutines must serialise calls themselves.
package interact

// State is the drag state of a [Controller].
type State int

const (
	Idle State = iota
	Dragging
)

func (s State) String() string {
	if s == Dragging {
		return "dragging"
	}
	return "idle"
}

// Cursor is the pointer affordance shown over the surface.
type Cursor string

const (
	CursorGrab     Cursor = "grab"
	CursorGrabbing Cursor = "grabbing"
)

// Pointer is the payload of a pointer event in surface coordinates.
type Pointer struct {
	ID int     `json:"pointer_id"`
	X  float64 `json:"x"`
	Y  float64 `json:"y"`
}

// ViewTransform is the pan offset and scale applied to the rendered surface.
// It never affects logical grid coordinates.
type ViewTransform struct {
	Scale   float64 `json:"scale"`
	OffsetX float64 `json:"offset_x"`
	OffsetY float64 `json:"offset_y"`
}

// Identity is the transform of a fresh controller.
var Identity = ViewTransform{Scale: 1}

// DragGesture is the transient state between pointer-down and pointer-up.
type DragGesture struct {
	OriginX   float64 `json:"origin_x"`
	OriginY   float64 `json:"origin_y"`
	PointerID int     `json:"pointer_id"`
	Active    bool    `json:"active"`
}

// Target is the host surface a controller drives.
// All methods are optional side effects; a nil Target is allowed.
type Target interface {
	CapturePointer(id int)
	ReleasePointer(id int)
	SetCursor(c Cursor)
	Translate(x, y float64)
}

// Controller tracks one drag gesture and the view transform.
type Controller struct {
	target    Target
	gesture   DragGesture
	transform ViewTransform
	cursor    Cursor
}

// NewController returns an idle controller at [Identity] driving t.
func NewController(t Target) *Controller {
	return &Controller{target: t, transform: Identity, cursor: CursorGrab}
}

// State reports whether a drag is in progress.
func (c *Controller) State() State {
	if c.gesture.Active {
		return Dragging
	}
	return Idle
}

// Gesture returns the current drag gesture.
func (c *Controller) Gesture() DragGesture { return c.gesture }

// Transform returns the current view transform.
func (c *Controller) Transform() ViewTransform { return c.transform }

// Cursor returns the current cursor affordance.
func (c *Controller) Cursor() Cursor { return c.cursor }

// PointerDown starts a drag at p, capturing p.ID. A down during a drag
// restarts the gesture from the new pointer.
func (c *Controller) PointerDown(p Pointer) {
	if c.gesture.Active && c.gesture.PointerID != p.ID && c.target != nil {
		c.target.ReleasePointer(c.gesture.PointerID)
	}
	c.gesture = DragGesture{OriginX: p.X, OriginY: p.Y, PointerID: p.ID, Active: true}
	if c.target != nil {
		c.target.CapturePointer(p.ID)
	}
	c.setCursor(CursorGrabbing)
}

// PointerMove pans by the distance from the previous event.
// It is ignored while idle and for pointers other than the captured one.
func (c *Controller) PointerMove(p Pointer) {
	if !c.gesture.Active || p.ID != c.gesture.PointerID {
		return
	}
	dx := p.X - c.gesture.OriginX
	dy := p.Y - c.gesture.OriginY
	c.gesture.OriginX, c.gesture.OriginY = p.X, p.Y

	c.transform.OffsetX += dx
	c.transform.OffsetY += dy
	if c.target != nil {
		c.target.Translate(c.transform.OffsetX, c.transform.OffsetY)
	}
}

// PointerUp ends the drag. An up from a pointer other than the captured
// one is ignored, since only the captured pointer can end its own gesture.
func (c *Controller) PointerUp(p Pointer) { c.end(p) }

// PointerCancel ends the drag exactly like PointerUp.
func (c *Controller) PointerCancel(p Pointer) { c.end(p) }

func (c *Controller) end(p Pointer) {
	if !c.gesture.Active || p.ID != c.gesture.PointerID {
		return
	}
	c.gesture.Active = false
	if c.target != nil {
		c.target.ReleasePointer(p.ID)
	}
	c.setCursor(CursorGrab)
}

// SetScale overwrites the scale. The offset and drag state are untouched,
// and no range is enforced.
func (c *Controller) SetScale(s float64) {
	c.transform.Scale = s
}

// Reset returns to [Identity], ending any drag.
func (c *Controller) Reset() {
	if c.gesture.Active && c.target != nil {
		c.target.ReleasePointer(c.gesture.PointerID)
	}
	c.gesture = DragGesture{}
	c.transform = Identity
	c.setCursor(CursorGrab)
	if c.target != nil {
		c.target.Translate(0, 0)
	}
}

func (c *Controller) setCursor(cur Cursor) {
	c.cursor = cur
	if c.target != nil {
		c.target.SetCursor(cur)
	}
}
