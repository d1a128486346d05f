package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"bus-track/internal/mylogger"
	"bus-track/internal/tracking-service/core/domain/dto"
	"bus-track/internal/tracking-service/core/ports/driver"

	"github.com/gorilla/websocket"
)

const (
	authTimeout  = 5 * time.Second
	writeTimeout = 10 * time.Second
	pongTimeout  = 60 * time.Second
	pingInterval = 30 * time.Second
	deviceWsRole = "DEVICE"
)

// TokenValidator checks a bearer token against a role and returns its subject.
type TokenValidator interface {
	ValidateRole(tokenString, role string) (string, error)
}

// WebSocketHandler ingests location fixes over a persistent connection.
// The first frame must carry the device's token; every frame after that is
// a fix payload.
type WebSocketHandler struct {
	trackingService driver.ITrackingService
	auth            TokenValidator
	upgrader        websocket.Upgrader
	log             mylogger.Logger
}

func NewWebSocketHandler(ts driver.ITrackingService, auth TokenValidator, log mylogger.Logger) *WebSocketHandler {
	return &WebSocketHandler{
		trackingService: ts,
		auth:            auth,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool { return true },
		},
		log: log,
	}
}

// wsSession serializes writes; acks and pings come from different
// goroutines and the connection forbids concurrent writers.
type wsSession struct {
	conn *websocket.Conn
	mu   sync.Mutex
}

func (s *wsSession) writeFrame(payload any) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.conn.SetWriteDeadline(time.Now().Add(writeTimeout))
	return s.conn.WriteMessage(websocket.TextMessage, data)
}

func (s *wsSession) writePing() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.conn.SetWriteDeadline(time.Now().Add(writeTimeout))
	return s.conn.WriteMessage(websocket.PingMessage, nil)
}

func (h *WebSocketHandler) HandleBusWebsocket(w http.ResponseWriter, r *http.Request) {
	deviceID := r.PathValue("device_id")

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}
	defer conn.Close()
	session := &wsSession{conn: conn}

	if !h.authenticate(conn, deviceID) {
		session.writeFrame(map[string]any{"success": false, "message": "authentication failed"})
		return
	}
	if err := session.writeFrame(map[string]any{"success": true, "message": "authentication successful"}); err != nil {
		return
	}

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()

	go h.handlePingPong(ctx, session)

	h.readFixes(ctx, session, deviceID)
}

func (h *WebSocketHandler) authenticate(conn *websocket.Conn, deviceID string) bool {
	conn.SetReadDeadline(time.Now().Add(authTimeout))

	messageType, message, err := conn.ReadMessage()
	if err != nil || messageType != websocket.TextMessage {
		return false
	}

	var authMsg struct {
		Token string `json:"token"`
	}
	if err := json.Unmarshal(message, &authMsg); err != nil {
		return false
	}

	subject, err := h.auth.ValidateRole(authMsg.Token, deviceWsRole)
	if err != nil || subject != deviceID {
		return false
	}

	conn.SetReadDeadline(time.Now().Add(pongTimeout))
	return true
}

func (h *WebSocketHandler) readFixes(ctx context.Context, session *wsSession, deviceID string) {
	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		messageType, message, err := session.conn.ReadMessage()
		if err != nil {
			return
		}
		if messageType != websocket.TextMessage {
			continue
		}

		var req dto.FixRequestDto
		if err := json.Unmarshal(message, &req); err != nil {
			session.writeFrame(map[string]any{"success": false, "message": "malformed fix"})
			continue
		}

		res, err := h.trackingService.RecordFix(ctx, deviceID, req, "ws")
		if err != nil {
			session.writeFrame(map[string]any{"success": false, "message": err.Error()})
			continue
		}
		if err := session.writeFrame(res); err != nil {
			return
		}
	}
}

func (h *WebSocketHandler) handlePingPong(ctx context.Context, session *wsSession) {
	ticker := time.NewTicker(pingInterval)
	defer ticker.Stop()

	session.conn.SetPongHandler(func(appData string) error {
		session.conn.SetReadDeadline(time.Now().Add(pongTimeout))
		return nil
	})

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := session.writePing(); err != nil {
				return
			}
		}
	}
}
