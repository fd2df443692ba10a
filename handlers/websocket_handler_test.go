package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Dosada05/championship-tracker/brackets"
	"github.com/Dosada05/championship-tracker/services"
)

func TestServeWs(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	hub := brackets.NewHub()
	go hub.Run(ctx)

	svc := &fakeBracketService{}
	r := chi.NewRouter()
	r.Get("/ws/tournaments/{tournamentID}", NewWebSocketHandler(hub, svc).ServeWs)
	srv := httptest.NewServer(r)
	defer srv.Close()

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws/tournaments/5"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	defer conn.Close()

	read := func() brackets.WebSocketMessage {
		t.Helper()
		require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
		_, raw, err := conn.ReadMessage()
		require.NoError(t, err)
		var msg brackets.WebSocketMessage
		require.NoError(t, json.Unmarshal(raw, &msg))
		return msg
	}

	first := read()
	assert.Equal(t, brackets.MessageBracketUpdated, first.Type)
	assert.Equal(t, "5", first.RoomID)

	require.Eventually(t, func() bool { return hub.RoomSize("5") == 1 }, 2*time.Second, 10*time.Millisecond)
	hub.BroadcastToRoom("5", brackets.WebSocketMessage{Type: brackets.MessageSeedingCleared, RoomID: "5"})
	assert.Equal(t, brackets.MessageSeedingCleared, read().Type)
}

func TestServeWs_UnknownTournament(t *testing.T) {
	hub := brackets.NewHub()
	r := chi.NewRouter()
	r.Get("/ws/tournaments/{tournamentID}", NewWebSocketHandler(hub, &fakeBracketService{err: services.ErrTournamentNotFound}).ServeWs)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/ws/tournaments/9", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
