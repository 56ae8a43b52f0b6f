package httpapi

import (
	"net/http"

	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// eventBacklog is how many past events a new connection gets replayed
// before live delivery starts.
const eventBacklog = 32

// handleEventsWS streams session events (generation lifecycle, saves,
// clears) to the comparison page over a websocket.
func (r *Router) handleEventsWS(w http.ResponseWriter, req *http.Request) {
	conn, err := upgrader.Upgrade(w, req, nil)
	if err != nil {
		r.logger.Printf("events: websocket upgrade failed: %v", err)
		return
	}
	defer conn.Close()

	ch, cancel := r.events.Subscribe()
	defer cancel()

	// Replay the recent backlog so a fresh page isn't blank.
	for _, e := range r.events.Recent(eventBacklog) {
		if err := conn.WriteJSON(e); err != nil {
			return
		}
	}

	// Drain client frames so closes are noticed; the page never sends data.
	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	for {
		select {
		case <-done:
			return
		case e, ok := <-ch:
			if !ok {
				return
			}
			if err := conn.WriteJSON(e); err != nil {
				return
			}
		}
	}
}
