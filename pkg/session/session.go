// Package session manages server-side viewer sessions.
//
// A viewer session pairs a grid file with an [interact.Controller], so a
// remote client can pan and zoom a grid by sending pointer events and scale
// changes and then fetch renders at the current view. Sessions live in
// memory only and expire after a period of inactivity; nothing about a
// gesture or a transform outlives the process.
//
// # Concurrency
//
// The controller is single-threaded. A [Session] serialises every call to
// it behind its own mutex, so concurrent HTTP requests and websocket
// messages for one session apply in some order, each seeing the effects of
// the previous one. Different sessions never contend.
//
// # Usage
//
//	store := session.NewMemoryStore()
//	sess := session.New(spec, session.DefaultTTL)
//	store.Set(ctx, sess)
//
//	view, err := sess.Apply(interact.Event{Type: interact.EventDown, Pointer: p})
//	l := sess.Layout() // laid out at the session's current scale
package session

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/matzehuels/glyphgrid/pkg/grid"
	"github.com/matzehuels/glyphgrid/pkg/interact"
	gridio "github.com/matzehuels/glyphgrid/pkg/io"
)

// ErrExpired is returned when a session has exceeded its TTL.
var ErrExpired = errors.New("expired")

// DefaultTTL is the default idle time before a session expires.
const DefaultTTL = 30 * time.Minute

// Session is one remote viewer.
type Session struct {
	ID        string
	Spec      gridio.Spec
	CreatedAt time.Time

	mu        sync.Mutex
	ctrl      *interact.Controller
	surface   *surface
	ttl       time.Duration
	expiresAt time.Time
}

// View is a snapshot of a session's interaction state.
type View struct {
	ID        string                 `json:"id"`
	State     string                 `json:"state"`
	Cursor    interact.Cursor        `json:"cursor"`
	Captured  *int                   `json:"captured_pointer,omitempty"`
	Transform interact.ViewTransform `json:"transform"`
	ExpiresAt time.Time              `json:"expires_at"`
}

// New creates a session for spec at its scale and identity offset.
func New(spec gridio.Spec, ttl time.Duration) *Session {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	now := time.Now()
	s := &Session{
		ID:        uuid.NewString(),
		Spec:      spec,
		CreatedAt: now,
		surface:   &surface{},
		ttl:       ttl,
		expiresAt: now.Add(ttl),
	}
	s.ctrl = interact.NewController(s.surface)
	s.ctrl.SetScale(spec.EffectiveScale())
	return s
}

// IsExpired returns true if the session has expired.
func (s *Session) IsExpired() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return time.Now().After(s.expiresAt)
}

// Touch pushes the expiry one TTL into the future.
func (s *Session) Touch() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.expiresAt = time.Now().Add(s.ttl)
}

// Apply feeds one pointer event to the controller.
func (s *Session) Apply(ev interact.Event) (View, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.ctrl.Handle(ev); err != nil {
		return View{}, err
	}
	return s.view(), nil
}

// SetScale overwrites the view scale. Callers validate the value.
func (s *Session) SetScale(scale float64) View {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ctrl.SetScale(scale)
	return s.view()
}

// Reset returns the view to the spec's scale with no offset.
func (s *Session) Reset() View {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ctrl.Reset()
	s.ctrl.SetScale(s.Spec.EffectiveScale())
	return s.view()
}

// View returns the current interaction state.
func (s *Session) View() View {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.view()
}

// Layout lays the grid out at the current view scale.
func (s *Session) Layout() (grid.Layout, interact.ViewTransform) {
	s.mu.Lock()
	t := s.ctrl.Transform()
	s.mu.Unlock()
	return grid.Compute(s.Spec.Config, s.Spec.Empty, s.Spec.Highlight, t.Scale), t
}

func (s *Session) view() View {
	v := View{
		ID:        s.ID,
		State:     s.ctrl.State().String(),
		Cursor:    s.ctrl.Cursor(),
		Transform: s.ctrl.Transform(),
		ExpiresAt: s.expiresAt,
	}
	if s.surface.captured {
		id := s.surface.pointer
		v.Captured = &id
	}
	return v
}

// surface is the controller target of a remote session. It has nothing to
// draw on; it only remembers what the controller asked of it so the state
// can be reported back to the client.
type surface struct {
	captured bool
	pointer  int
	cursor   interact.Cursor
	x, y     float64
}

func (t *surface) CapturePointer(id int)       { t.captured, t.pointer = true, id }
func (t *surface) SetCursor(c interact.Cursor) { t.cursor = c }
func (t *surface) Translate(x, y float64)      { t.x, t.y = x, y }

func (t *surface) ReleasePointer(id int) {
	if t.captured && t.pointer == id {
		t.captured = false
	}
}

// Store is the interface for session storage backends.
type Store interface {
	// Get retrieves a session by ID.
	// Returns nil, nil if the session doesn't exist.
	// Returns nil, ErrExpired if the session exists but has expired.
	Get(ctx context.Context, sessionID string) (*Session, error)

	// Set stores a session.
	Set(ctx context.Context, session *Session) error

	// Delete removes a session.
	Delete(ctx context.Context, sessionID string) error

	// Cleanup removes expired sessions.
	Cleanup(ctx context.Context) error
}
