package httpserver

import (
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"

	domain "github.com/cropguard/cropguard/internal/domain/scans"
	"github.com/cropguard/cropguard/pkg/models"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// Dashboards connect from farm kiosks on arbitrary origins.
	CheckOrigin: func(r *http.Request) bool { return true },
}

// wsClient serializes writes to one connection.
type wsClient struct {
	mu   sync.Mutex
	conn *websocket.Conn
}

func (c *wsClient) send(payload any) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
	return c.conn.WriteJSON(payload)
}

// Hub pushes scan-completed events to every connected dashboard so history
// and stats panels refresh without polling.
type Hub struct {
	clients sync.Map // *wsClient -> struct{}
	log     *logrus.Logger
}

func NewHub(log *logrus.Logger) *Hub {
	return &Hub{log: log}
}

// ServeHTTP upgrades the connection and keeps it registered until the peer
// goes away. Inbound frames are drained and discarded.
func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.log.WithError(err).Warn("websocket upgrade failed")
		return
	}
	client := &wsClient{conn: conn}
	h.clients.Store(client, struct{}{})
	h.log.WithField("remote", conn.RemoteAddr().String()).Info("dashboard connected")

	defer func() {
		h.clients.Delete(client)
		conn.Close()
	}()
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}

type scanEvent struct {
	Type            string    `json:"type"`
	ScanID          string    `json:"scan_id"`
	CropType        string    `json:"crop_type"`
	DiseaseDetected string    `json:"disease_detected"`
	SeverityLevel   string    `json:"severity_level"`
	ScanTimestamp   time.Time `json:"scan_timestamp"`
}

// ScanCompleted implements the scan service's Notifier port.
func (h *Hub) ScanCompleted(scan *domain.Scan, result *models.ScanResult) {
	event := scanEvent{
		Type:            "scan_completed",
		ScanID:          string(scan.ID),
		CropType:        string(scan.CropType),
		DiseaseDetected: scan.DiseaseDetected,
		SeverityLevel:   string(scan.SeverityLevel),
		ScanTimestamp:   scan.ScanTimestamp,
	}
	h.clients.Range(func(key, _ any) bool {
		client := key.(*wsClient)
		if err := client.send(event); err != nil {
			h.clients.Delete(client)
			client.conn.Close()
		}
		return true
	})
}
