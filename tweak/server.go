// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package tweak

import (
	"context"
	_ "embed"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"cogentcore.org/core/base/errors"
	"cogentcore.org/undersea/frame"
	"cogentcore.org/undersea/orbit"
	"cogentcore.org/undersea/render"
	"github.com/gorilla/websocket"
)

//go:embed index.html
var indexHTML []byte

// Message is a request from the viewer page, sent over the WebSocket.
type Message struct {

	// Type is one of "set", "get", "orbit", "zoom" or "pan".
	Type string `json:"type"`

	// Name is the control label, for "set".
	Name string `json:"name,omitempty"`

	// Value is the new control value, for "set".
	Value any `json:"value,omitempty"`

	// DX and DY are the pointer movement in pixels, for "orbit" and "pan".
	DX float32 `json:"dx,omitempty"`
	DY float32 `json:"dy,omitempty"`

	// Delta is the number of wheel steps, for "zoom".
	Delta float32 `json:"delta,omitempty"`
}

// Reply is sent back for each [Message].
type Reply struct {
	Type     string  `json:"type"`
	Error    string  `json:"error,omitempty"`
	Title    string  `json:"title"`
	Controls []State `json:"controls"`
}

// Server serves the rendered frames and the tweak panel to a browser.
// All panel and camera changes run on the frame loop.
type Server struct {

	// Panel is the tweak panel.
	Panel *Panel

	// Canvas provides the frames.
	Canvas *render.Canvas

	// Controls receives pointer input; it may be nil.
	Controls *orbit.Controls

	// Loop owns the panel and controls.
	Loop *frame.Loop

	// Log receives request errors.
	Log *slog.Logger

	// Quality is the JPEG quality of frames.
	Quality int

	upgrader websocket.Upgrader
}

// NewServer returns a new server for the given panel and canvas.
func NewServer(pn *Panel, cv *render.Canvas, oc *orbit.Controls, lp *frame.Loop, log *slog.Logger) *Server {
	if log == nil {
		log = slog.Default()
	}
	return &Server{Panel: pn, Canvas: cv, Controls: oc, Loop: lp, Log: log, Quality: 85}
}

// Handler returns the HTTP handler for all routes.
func (sv *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", sv.serveIndex)
	mux.HandleFunc("GET /frame.jpg", sv.serveFrame)
	mux.HandleFunc("GET /controls", sv.serveControls)
	mux.HandleFunc("GET /ws", sv.serveWS)
	return mux
}

// ListenAndServe serves on addr until ctx is done.
func (sv *Server) ListenAndServe(ctx context.Context, addr string) error {
	hs := &http.Server{Addr: addr, Handler: sv.Handler(), ReadHeaderTimeout: 10 * time.Second}
	go func() {
		<-ctx.Done()
		sctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		errors.Log(hs.Shutdown(sctx))
	}()
	sv.Log.Info("serving viewer", "addr", addr)
	err := hs.ListenAndServe()
	if err == http.ErrServerClosed {
		return nil
	}
	return err
}

func (sv *Server) serveIndex(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(indexHTML)
}

func (sv *Server) serveFrame(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "image/jpeg")
	w.Header().Set("Cache-Control", "no-store")
	w.Header().Set("X-Frame", fmt.Sprint(sv.Canvas.Frame()))
	if err := sv.Canvas.EncodeJPEG(w, sv.Quality); err != nil {
		sv.Log.Debug("frame encode failed", "err", err)
	}
}

func (sv *Server) serveControls(w http.ResponseWriter, r *http.Request) {
	var b []byte
	var merr error
	err := frame.Do(r.Context(), sv.Loop, func() {
		b, merr = json.Marshal(sv.Panel)
	})
	if err == nil {
		err = merr
	}
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Write(b)
}

func (sv *Server) serveWS(w http.ResponseWriter, r *http.Request) {
	conn, err := sv.upgrader.Upgrade(w, r, nil)
	if err != nil {
		sv.Log.Debug("websocket upgrade failed", "err", err)
		return
	}
	defer conn.Close()
	for {
		var msg Message
		if err := conn.ReadJSON(&msg); err != nil {
			if !websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				sv.Log.Debug("websocket read failed", "err", err)
			}
			return
		}
		rep := sv.Handle(r.Context(), msg)
		if err := conn.WriteJSON(rep); err != nil {
			sv.Log.Debug("websocket write failed", "err", err)
			return
		}
	}
}

// Handle applies the message on the loop and returns the reply with the
// resulting panel state. Errors are reported in the reply and logged at
// debug level; they never change the state.
func (sv *Server) Handle(ctx context.Context, msg Message) Reply {
	var herr error
	var title string
	var sts []State
	err := frame.Do(ctx, sv.Loop, func() {
		herr = sv.apply(msg)
		title = sv.Panel.Title
		sts = sv.Panel.Snapshot()
	})
	rep := Reply{Type: "state"}
	if err == nil {
		err = herr
		rep.Title, rep.Controls = title, sts
	}
	if err != nil {
		sv.Log.Debug("tweak message failed", "type", msg.Type, "name", msg.Name, "err", err)
		rep.Type = "error"
		rep.Error = err.Error()
	}
	return rep
}

func (sv *Server) apply(msg Message) error {
	switch msg.Type {
	case "get":
		return nil
	case "set":
		return sv.Panel.Set(msg.Name, msg.Value)
	case "orbit", "zoom", "pan":
	default:
		return fmt.Errorf("unknown message type %q", msg.Type)
	}
	if sv.Controls == nil {
		return fmt.Errorf("no camera controls for %q", msg.Type)
	}
	_, height := sv.Canvas.Size()
	switch msg.Type {
	case "orbit":
		sv.Controls.Drag(msg.DX, msg.DY, height)
	case "zoom":
		sv.Controls.Zoom(msg.Delta)
	case "pan":
		sv.Controls.Pan(msg.DX, msg.DY, height)
	}
	return nil
}
