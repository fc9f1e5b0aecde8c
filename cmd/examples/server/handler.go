package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/flosch/pongo2/v6"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/thesyncim/uicontracts/pkg/contract"
)

func (s *Server) handleIndex(c *gin.Context) {
	type link struct {
		Href  string
		Title string
	}
	links := make([]link, 0, len(contract.Apps()))
	for _, app := range contract.Apps() {
		links = append(links, link{Href: string(app) + "/Example.html", Title: app.Title()})
	}

	c.Header("Content-Type", "text/html; charset=utf-8")
	if err := s.renderer.render(c.Writer, "index.html", pongo2.Context{"links": links}); err != nil {
		s.logger.Error("failed to render index", "error", err)
		c.Status(http.StatusInternalServerError)
	}
}

// handlePage renders the initial state of an example. The view-model built
// here only feeds the first paint; the live one belongs to the websocket
// session the page opens next.
func (s *Server) handlePage(app contract.App) gin.HandlerFunc {
	return func(c *gin.Context) {
		w, err := newWidget(app, s.clock, s.renderer)
		if err != nil {
			c.String(http.StatusNotFound, err.Error())
			return
		}

		ctx := w.context()
		ctx["app"] = string(app)
		ctx["title"] = app.Title()

		c.Header("Content-Type", "text/html; charset=utf-8")
		if err := s.renderer.render(c.Writer, w.template(), ctx); err != nil {
			s.logger.Error("failed to render page", "app", app, "error", err)
			c.Status(http.StatusInternalServerError)
		}
	}
}

// handleSocket runs one page session. The session owns a fresh view-model,
// applies events strictly in arrival order and answers each with one frame.
// Closing the socket discards the view-model.
func (s *Server) handleSocket(c *gin.Context) {
	app, err := contract.ParseApp(c.Param("app"))
	if err != nil {
		c.String(http.StatusNotFound, err.Error())
		return
	}

	w, err := newWidget(app, s.clock, s.renderer)
	if err != nil {
		c.String(http.StatusNotFound, err.Error())
		return
	}

	conn, err := s.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		// Upgrade has already replied to the client.
		s.logger.Warn("websocket upgrade failed", "app", app, "error", err)
		return
	}
	defer conn.Close()

	s.trackConn(conn)
	defer s.untrackConn(conn)

	id := uuid.NewString()
	logger := s.logger.With("app", app, "session", id)
	logger.Debug("session opened")
	s.metrics.sessionOpened(app)
	defer func() {
		s.metrics.sessionClosed(app)
		logger.Debug("session closed")
	}()

	if err := conn.WriteJSON(Frame{Type: FrameReady, Session: id}); err != nil {
		logger.Warn("failed to send ready frame", "error", err)
		return
	}

	seq := 0
	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				logger.Warn("session read failed", "error", err)
			}
			return
		}
		seq++

		var ev Event
		if err := json.Unmarshal(data, &ev); err != nil {
			logger.Warn("malformed event", "error", err)
			if err := conn.WriteJSON(Frame{Type: FrameError, Seq: seq, Error: "malformed event"}); err != nil {
				return
			}
			continue
		}

		patches, err := w.handle(ev)
		s.metrics.event(app, ev, err)

		frame := Frame{Type: FrameUpdate, Seq: seq, Patches: patches}
		if err != nil {
			// Rejected events leave the view-model as it was; the page stays usable.
			if errors.Is(err, contract.ErrBookingDisabled) {
				logger.Debug("event rejected", "type", ev.Type, "error", err)
			} else {
				logger.Warn("event rejected", "type", ev.Type, "error", err)
			}
			frame = Frame{Type: FrameError, Seq: seq, Error: err.Error()}
		}

		if err := conn.WriteJSON(frame); err != nil {
			logger.Warn("session write failed", "error", err)
			return
		}
	}
}
