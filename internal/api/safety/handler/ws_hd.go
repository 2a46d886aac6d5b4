package safetyHandler

import (
	"time"

	"github.com/gofiber/websocket/v2"
	"golang.org/x/net/context"

	"station-guard/internal/api/safety"
	"station-guard/pkg/log"
)

var (
	wsWriteWait  = 10 * time.Second
	wsPongWait   = 60 * time.Second
	wsPingPeriod = (wsPongWait * 9) / 10
)

// handleWebSocket streams assessments back for every detector payload pushed
// over the connection. Each message is one frame in the HTTP request shape.
func (h *SafetyHandler) handleWebSocket(conn *websocket.Conn) {
	defer conn.Close()

	conn.SetReadDeadline(time.Now().Add(wsPongWait))
	conn.SetPongHandler(func(string) error {
		conn.SetReadDeadline(time.Now().Add(wsPongWait))
		return nil
	})

	done := make(chan struct{})
	defer close(done)

	go func() {
		ticker := time.NewTicker(wsPingPeriod)
		defer ticker.Stop()
		for {
			select {
			case <-done:
				return
			case <-ticker.C:
				// Control frames may interleave with the data writer in the
				// read loop, so pings never race an assessment write.
				if err := conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(wsWriteWait)); err != nil {
					return
				}
			}
		}
	}()

	for {
		var req safety.AssessRequest
		if err := conn.ReadJSON(&req); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				h.log.WithFields(log.Fields{
					"error": err.Error(),
				}).Warn("WebSocket closed unexpectedly")
			}
			return
		}

		if err := h.validator.Struct(req); err != nil {
			h.writeWebSocketError(conn, "VALIDATION_ERROR", err.Error())
			continue
		}

		c, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		assessment, err := h.safetyService.AssessFrame(c, req.ToFrame())
		cancel()

		if err != nil {
			h.log.WithFields(log.Fields{
				"image_id": req.ImageID,
				"error":    err.Error(),
			}).Error("WebSocket frame assessment failed")
			h.writeWebSocketError(conn, "ASSESSMENT_FAILED", "Failed to assess frame")
			continue
		}

		conn.SetWriteDeadline(time.Now().Add(wsWriteWait))
		if err := conn.WriteJSON(assessment); err != nil {
			h.log.WithFields(log.Fields{
				"image_id": req.ImageID,
				"error":    err.Error(),
			}).Warn("Failed to write assessment to WebSocket")
			return
		}
	}
}

func (h *SafetyHandler) writeWebSocketError(conn *websocket.Conn, code string, message string) {
	conn.SetWriteDeadline(time.Now().Add(wsWriteWait))
	_ = conn.WriteJSON(map[string]string{
		"code":  code,
		"error": message,
	})
}
