package handlers

import (
	"encoding/json"
	"log"
	"net/http"
	"strconv"

	"github.com/gorilla/websocket"

	"github.com/Dosada05/championship-tracker/brackets"
	"github.com/Dosada05/championship-tracker/services"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// Origin уже проверяется CORS-слоем
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

type WebSocketHandler struct {
	hub            *brackets.Hub
	bracketService services.BracketService
}

func NewWebSocketHandler(hub *brackets.Hub, bs services.BracketService) *WebSocketHandler {
	return &WebSocketHandler{
		hub:            hub,
		bracketService: bs,
	}
}

// ServeWs обрабатывает WebSocket запросы для конкретного турнира.
// Клиент должен подключаться к /ws/tournaments/{tournamentID} и сразу
// получает текущее состояние сетки.
func (h *WebSocketHandler) ServeWs(w http.ResponseWriter, r *http.Request) {
	tournamentID, err := getIDFromURL(r, "tournamentID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	current, err := h.bracketService.GetBracket(r.Context(), tournamentID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		// upgrader.Upgrade сам отправляет HTTP ошибку клиенту
		log.Printf("Failed to upgrade connection for tournament %d: %v", tournamentID, err)
		return
	}

	// ID комнаты совпадает с ID турнира
	roomID := strconv.Itoa(tournamentID)
	client := &brackets.Client{
		Hub:  h.hub,
		Conn: conn,
		Send: make(chan []byte, 256),
		Room: roomID,
	}

	if snapshot, err := json.Marshal(brackets.WebSocketMessage{Type: brackets.MessageBracketUpdated, Payload: current, RoomID: roomID}); err == nil {
		client.Send <- snapshot
	} else {
		log.Printf("Failed to marshal initial bracket for room %s: %v", roomID, err)
	}

	select {
	case h.hub.Register <- client:
	case <-h.hub.Done():
		conn.Close()
		return
	}

	go client.WritePump()
	go client.ReadPump()

	log.Printf("Client registered and pumps started for room %s", roomID)
}
