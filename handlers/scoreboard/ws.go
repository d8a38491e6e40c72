package scoreboard

import (
	"log"
	"net/http"

	"ctfrange/realtime"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// SolveFeedWS upgrades the connection and streams accepted solves until the
// client disconnects
// @Summary Live solve feed
// @Tags Scoreboard
// @Router /scoreboard/feed [get]
func SolveFeedWS(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("WebSocket upgrade failed: %v", err)
		return
	}

	realtime.RegisterClient(conn)
	defer func() {
		realtime.UnregisterClient(conn)
		conn.Close()
	}()

	// Drain control frames until the peer goes away
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			break
		}
	}
}
