package interact

import "github.com/matzehuels/glyphgrid/pkg/errors"

// EventType names a pointer event.
type EventType string

const (
	EventDown   EventType = "down"
	EventMove   EventType = "move"
	EventUp     EventType = "up"
	EventCancel EventType = "cancel"
)

// Event is a pointer event as delivered by a host (HTTP body, websocket
// frame, terminal mouse message).
type Event struct {
	Type EventType `json:"type"`
	Pointer
}

// Handle dispatches e to the matching Pointer* method.
func (c *Controller) Handle(e Event) error {
	switch e.Type {
	case EventDown:
		c.PointerDown(e.Pointer)
	case EventMove:
		c.PointerMove(e.Pointer)
	case EventUp:
		c.PointerUp(e.Pointer)
	case EventCancel:
		c.PointerCancel(e.Pointer)
	default:
		return errors.New(errors.ErrCodeInvalidEvent, "unknown pointer event %q", e.Type)
	}
	return nil
}
