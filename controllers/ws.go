package controllers

import (
	"encoding/json"
	"log"
	"net/http"
	"time"

	"Lexipic/pkg/realtime"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		// CORS handled at HTTP level; allow WS here
		return true
	},
}

const (
	wsReadLimit    = 1 << 20 // 1MB
	wsReadTimeout  = 60 * time.Second
	wsPingInterval = 45 * time.Second
)

type wsInbound struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data"`
}

// RoomWS handles GET /ws. No handshake payload is required: the connection
// joins the broadcast room on upgrade. A client "send_message" event is
// rebroadcast verbatim to every connected client as "new_message".
func RoomWS(hub *realtime.Hub) gin.HandlerFunc {
	return func(c *gin.Context) {
		conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
		if err != nil {
			log.Printf("[ws] upgrade error: %v", err)
			return
		}

		client := hub.Register(conn)
		defer hub.Unregister(client)

		conn.SetReadLimit(wsReadLimit)
		_ = conn.SetReadDeadline(time.Now().Add(wsReadTimeout))
		conn.SetPongHandler(func(string) error {
			return conn.SetReadDeadline(time.Now().Add(wsReadTimeout))
		})

		// keepalive pings; WriteControl is safe alongside the hub's writer
		stopPing := make(chan struct{})
		defer close(stopPing)
		go func() {
			t := time.NewTicker(wsPingInterval)
			defer t.Stop()
			for {
				select {
				case <-t.C:
					deadline := time.Now().Add(10 * time.Second)
					if err := conn.WriteControl(websocket.PingMessage, nil, deadline); err != nil {
						return
					}
				case <-stopPing:
					return
				}
			}
		}()

		for {
			_, raw, err := conn.ReadMessage()
			if err != nil {
				return
			}
			_ = conn.SetReadDeadline(time.Now().Add(wsReadTimeout))

			var in wsInbound
			if err := json.Unmarshal(raw, &in); err != nil || in.Event != "send_message" {
				continue
			}
			hub.Broadcast("new_message", in.Data)
		}
	}
}
