package realtime

import (
	"log"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

var (
	feedClients = make(map[*websocket.Conn]bool) // Clients watching the live solve feed
	broadcast   = make(chan SolveEvent)          // Broadcast channel for accepted solves
	mutex       sync.Mutex                       // Mutex to protect feedClients map
)

// SolveEvent is pushed to every feed watcher when a flag is accepted.
// Delivery is best effort, slow or broken clients are dropped.
type SolveEvent struct {
	Username       string    `json:"username"`
	ChallengeID    uint      `json:"challenge_id"`
	ChallengeTitle string    `json:"challenge_title"`
	Points         int       `json:"points"`
	Date           time.Time `json:"date"`
}

// RegisterClient adds a WebSocket client to the solve feed
func RegisterClient(conn *websocket.Conn) {
	mutex.Lock()
	feedClients[conn] = true
	mutex.Unlock()
}

// UnregisterClient removes a WebSocket client from the solve feed
func UnregisterClient(conn *websocket.Conn) {
	mutex.Lock()
	delete(feedClients, conn)
	mutex.Unlock()
}

// BroadcastSolve sends a solve event to all connected feed watchers
func BroadcastSolve(event SolveEvent) {
	broadcast <- event
}

func handleBroadcast() {
	for {
		event := <-broadcast
		mutex.Lock()
		for client := range feedClients {
			if err := client.WriteJSON(event); err != nil {
				log.Printf("WebSocket write error: %v", err)
				client.Close()
				delete(feedClients, client)
			}
		}
		mutex.Unlock()
	}
}

func init() {
	go handleBroadcast()
}
