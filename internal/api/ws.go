package api

import (
	"log"
	"net/http"
	"sync"
	"time"

	"content-tracker-report/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// Allow all origins for development - customize for production
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// snapshotEvent is pushed to every connected client after a snapshot
// replacement. Clients re-fetch the views they care about.
type snapshotEvent struct {
	Type        string `json:"type"`
	Version     uint64 `json:"version"`
	TaskCount   int    `json:"taskCount"`
	RefreshedAt string `json:"refreshedAt"`
}

// Hub tracks websocket subscribers and broadcasts snapshot-change events
type Hub struct {
	mutex sync.Mutex
	conns map[*websocket.Conn]struct{}
}

// NewHub creates an empty hub
func NewHub() *Hub {
	return &Hub{
		conns: make(map[*websocket.Conn]struct{}),
	}
}

// Attach subscribes the hub to snapshot replacements
func (h *Hub) Attach(snapshots *services.SnapshotService) {
	snapshots.Subscribe(func(snapshot services.Snapshot) {
		h.broadcast(snapshotEvent{
			Type:        "snapshot",
			Version:     snapshot.Version,
			TaskCount:   len(snapshot.Tasks),
			RefreshedAt: snapshot.RefreshedAt.Format(time.RFC3339),
		})
	})
}

// HandleConnection upgrades the request and keeps the connection registered
// until the client disconnects
func (h *Hub) HandleConnection(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("WARNING: Failed to upgrade websocket connection from %s: %v", c.ClientIP(), err)
		return
	}

	h.mutex.Lock()
	h.conns[conn] = struct{}{}
	count := len(h.conns)
	h.mutex.Unlock()
	log.Printf("Websocket client connected from %s (%d active)", c.ClientIP(), count)

	// Reads are discarded; the read loop only detects disconnects.
	go func() {
		defer h.drop(conn)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()
}

func (h *Hub) drop(conn *websocket.Conn) {
	h.mutex.Lock()
	delete(h.conns, conn)
	h.mutex.Unlock()
	conn.Close()
}

func (h *Hub) broadcast(event snapshotEvent) {
	h.mutex.Lock()
	conns := make([]*websocket.Conn, 0, len(h.conns))
	for conn := range h.conns {
		conns = append(conns, conn)
	}
	h.mutex.Unlock()

	for _, conn := range conns {
		if err := conn.WriteJSON(event); err != nil {
			log.Printf("WARNING: Dropping websocket client after write failure: %v", err)
			h.drop(conn)
		}
	}
}
