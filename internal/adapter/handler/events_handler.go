package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"

	"github.com/corvidlabs/reviewdesk/internal/infrastructure/events"
	"github.com/corvidlabs/reviewdesk/internal/usecase/member"
	"github.com/corvidlabs/reviewdesk/pkg/jwt"
)

// EventsHandler exposes the project event stream over a WebSocket. Subscribers
// receive versions.updated signals and re-fetch the list themselves.
type EventsHandler struct {
	memberUseCase member.UseCase
	hub           *events.Hub
	jwtManager    *jwt.JWTManager
	upgrader      websocket.Upgrader
}

// NewEventsHandler creates a new events handler
func NewEventsHandler(memberUseCase member.UseCase, hub *events.Hub, jwtManager *jwt.JWTManager) *EventsHandler {
	return &EventsHandler{
		memberUseCase: memberUseCase,
		hub:           hub,
		jwtManager:    jwtManager,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				return true // Allow all origins in development
			},
		},
	}
}

// Subscribe upgrades the request and streams project events until the client
// disconnects.
func (h *EventsHandler) Subscribe(c *gin.Context) {
	projectID, err := uuid.Parse(c.Param("project_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid project ID"})
		return
	}

	userID, ok := wsAuthenticate(c, h.jwtManager)
	if !ok {
		return
	}

	if _, err := h.memberUseCase.RoleOf(c.Request.Context(), projectID, userID); err != nil {
		c.JSON(http.StatusForbidden, gin.H{"error": "not a member of this project"})
		return
	}

	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Error().Err(err).Msg("Failed to upgrade to WebSocket")
		return
	}

	// Blocks for the connection lifetime; the hub owns cleanup.
	h.hub.Subscribe(projectID, conn)
}
