package handler

import (
	"net/http"
	"strings"
	"time"

	"zapshift/internal/model"
	"zapshift/internal/service"
	"zapshift/pkg/util"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

const streamPollInterval = 2 * time.Second

var wsUpgrader = websocket.Upgrader{CheckOrigin: func(r *http.Request) bool { return true }}

// TrackingHandler handles tracking-log append, query and live streaming
type TrackingHandler struct {
	tracking *service.TrackingService
}

func NewTrackingHandler(tracking *service.TrackingService) *TrackingHandler {
	return &TrackingHandler{tracking: tracking}
}

// Append handles POST /trackings
func (h *TrackingHandler) Append(c *gin.Context) {
	var req model.AppendTrackingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, model.NewErrorResponse(err.Error(), ""))
		return
	}

	parcelID, err := util.ParseObjectID(req.ParcelID)
	if err != nil {
		c.JSON(http.StatusBadRequest, model.NewErrorResponse("Invalid parcel ID format", ""))
		return
	}

	if err := h.tracking.Record(c.Request.Context(), strings.TrimSpace(req.TrackingID), parcelID, req.Status, req.Message); err != nil {
		respondError(c, err, "Failed to append tracking log")
		return
	}
	c.JSON(http.StatusCreated, model.NewSuccessResponse("Tracking log added", nil))
}

// Logs handles GET /trackings/:trackingId. An unknown tracking ID returns an
// empty list.
func (h *TrackingHandler) Logs(c *gin.Context) {
	logs, err := h.tracking.Logs(c.Request.Context(), c.Param("trackingId"))
	if err != nil {
		respondError(c, err, "Failed to get tracking logs")
		return
	}
	c.JSON(http.StatusOK, logs)
}

// Stream handles GET /trackings/:trackingId/stream. Upgrades to WebSocket and
// pushes the existing ledger followed by new events as they are appended,
// until the client disconnects.
func (h *TrackingHandler) Stream(c *gin.Context) {
	trackingID := c.Param("trackingId")

	conn, err := wsUpgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		return
	}
	defer conn.Close()

	// Reader goroutine only watches for the client going away.
	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure, websocket.CloseAbnormalClosure) {
					return
				}
				return
			}
		}
	}()

	ctx := c.Request.Context()
	var lastSeen time.Time

	logs, err := h.tracking.Logs(ctx, trackingID)
	if err != nil {
		return
	}
	for _, entry := range logs {
		if err := conn.WriteJSON(entry); err != nil {
			return
		}
		lastSeen = entry.Timestamp
	}

	ticker := time.NewTicker(streamPollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-done:
			return
		case <-ctx.Done():
			return
		case <-ticker.C:
			fresh, err := h.tracking.LogsAfter(ctx, trackingID, lastSeen)
			if err != nil {
				return
			}
			for _, entry := range fresh {
				if err := conn.WriteJSON(entry); err != nil {
					return
				}
				lastSeen = entry.Timestamp
			}
		}
	}
}
