package http

import (
	"log"
	"net/http"

	"github.com/gorilla/websocket"

	"classquiz-service/internal/app"
	"classquiz-service/internal/domain"
)

// WSHandler streams live leaderboard updates for one quiz over a
// websocket. Submissions themselves go through the JSON API; the socket
// is read only to detect the client going away.
type WSHandler struct {
	service  *app.QuizService
	identity IdentityResolver
	upgrader websocket.Upgrader
}

func NewWSHandler(service *app.QuizService, identity IdentityResolver) *WSHandler {
	return &WSHandler{
		service:  service,
		identity: identity,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
	}
}

type outboundMessage struct {
	Type    string           `json:"type"`
	Payload domain.Standings `json:"payload"`
}

// ServeWS upgrades the request and forwards standings updates until the
// client disconnects.
func (h *WSHandler) ServeWS(w http.ResponseWriter, r *http.Request) {
	quizID := r.URL.Query().Get("quizId")
	if quizID == "" {
		http.Error(w, "missing quizId", http.StatusBadRequest)
		return
	}
	requester := h.identity.Resolve(r)

	// Send the current standings immediately so the client does not wait
	// for the next submission.
	initial, err := h.service.GetStandings(r.Context(), quizID, requester, 0)
	if err != nil {
		writeError(w, err)
		return
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("ws upgrade failed: %v", err)
		return
	}
	defer conn.Close()

	updates, cancel := h.service.SubscribeLeaderboard(quizID)
	defer cancel()

	readerGone := make(chan struct{})
	go func() {
		defer close(readerGone)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	if err := conn.WriteJSON(outboundMessage{Type: "leaderboard", Payload: initial}); err != nil {
		return
	}

	for {
		select {
		case update, ok := <-updates:
			if !ok {
				return
			}
			if err := conn.WriteJSON(outboundMessage{Type: "leaderboard", Payload: update}); err != nil {
				log.Printf("ws write error: %v", err)
				return
			}
		case <-readerGone:
			return
		}
	}
}
