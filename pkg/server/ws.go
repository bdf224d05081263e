package server

import (
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"github.com/matzehuels/glyphgrid/pkg/errors"
	"github.com/matzehuels/glyphgrid/pkg/httputil"
	"github.com/matzehuels/glyphgrid/pkg/interact"
	"github.com/matzehuels/glyphgrid/pkg/session"
)

const (
	// writeWait is the time allowed to write a message to the peer.
	writeWait = 10 * time.Second

	// maxMessageSize bounds a single client message.
	maxMessageSize = 4096
)

// Message types understood on the websocket besides the pointer events.
const (
	msgScale = "scale"
	msgReset = "reset"
)

// wsMessage is one client frame: a pointer event, a scale change or a reset.
type wsMessage struct {
	Type      string  `json:"type"`
	PointerID int     `json:"pointer_id"`
	X         float64 `json:"x"`
	Y         float64 `json:"y"`
	Scale     float64 `json:"scale,omitempty"`
}

// handleWebSocket streams pointer events into a session. Every client frame
// is answered with the resulting view, or with an error body if the frame
// was rejected; a rejected frame does not close the connection.
func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	sess, err := s.session(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	ws, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade has already replied to the client.
		s.logger.Debug("websocket upgrade failed", "err", err)
		return
	}
	defer s.closeWebsocket(ws)
	ws.SetReadLimit(maxMessageSize)

	for {
		var msg wsMessage
		if err := ws.ReadJSON(&msg); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				s.logger.Debug("websocket read failed", "session", sess.ID, "err", err)
			}
			return
		}
		sess.Touch()

		var reply any
		if view, err := applyMessage(sess, msg); err != nil {
			reply = httputil.ErrorBody{Code: errors.GetCode(err), Error: errors.UserMessage(err)}
		} else {
			reply = view
		}
		_ = ws.SetWriteDeadline(time.Now().Add(writeWait))
		if err := ws.WriteJSON(reply); err != nil {
			s.logger.Debug("websocket write failed", "session", sess.ID, "err", err)
			return
		}
	}
}

func applyMessage(sess *session.Session, msg wsMessage) (session.View, error) {
	switch msg.Type {
	case msgScale:
		if err := checkScale(sess, msg.Scale); err != nil {
			return session.View{}, err
		}
		return sess.SetScale(msg.Scale), nil
	case msgReset:
		return sess.Reset(), nil
	}
	return sess.Apply(interact.Event{
		Type:    interact.EventType(msg.Type),
		Pointer: interact.Pointer{ID: msg.PointerID, X: msg.X, Y: msg.Y},
	})
}

func (s *Server) closeWebsocket(ws *websocket.Conn) {
	_ = ws.SetWriteDeadline(time.Now().Add(writeWait))
	_ = ws.WriteMessage(
		websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
	_ = ws.Close()
}
