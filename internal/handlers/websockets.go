package handlers

import (
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"zoneguard/internal/logger"
	"zoneguard/internal/services"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

const pongWait = 60 * time.Second

// pingInterval must stay below pongWait so an idle viewer's deadline is
// refreshed before it expires.
var pingInterval = 30 * time.Second

// ViewWebsocketHandler registers a viewer for the live detection/violation
// stream. The connection is held open until the viewer disconnects; the
// server pings periodically so idle viewers are kept alive.
func ViewWebsocketHandler(manager *services.Manager, log *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		connection, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			log.Error("WebSocket upgrade error: %v", err)
			return
		}
		connection.SetReadLimit(512)
		connection.SetReadDeadline(time.Now().Add(pongWait))
		connection.SetPongHandler(func(appData string) error {
			connection.SetReadDeadline(time.Now().Add(pongWait))
			return nil
		})
		defer connection.Close()

		manager.Hub().Register(connection)
		defer manager.Hub().Unregister(connection)

		stop := make(chan struct{})
		defer close(stop)
		go pingLoop(connection, stop)

		for {
			if _, _, err := connection.ReadMessage(); err != nil {
				log.Info("Viewer disconnected: %v", err)
				break
			}
		}
	}
}

// pingLoop keeps the viewer's read deadline refreshed. WriteControl is safe
// to call concurrently with the hub's broadcast writes.
func pingLoop(connection *websocket.Conn, stop <-chan struct{}) {
	ticker := time.NewTicker(pingInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			deadline := time.Now().Add(10 * time.Second)
			if err := connection.WriteControl(websocket.PingMessage, nil, deadline); err != nil {
				return
			}
		case <-stop:
			return
		}
	}
}
