package handler

import (
	"context"
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"

	"github.com/corvidlabs/reviewdesk/internal/domain/entity"
	"github.com/corvidlabs/reviewdesk/internal/infrastructure/events"
	"github.com/corvidlabs/reviewdesk/internal/usecase/member"
	"github.com/corvidlabs/reviewdesk/internal/usecase/panel"
	"github.com/corvidlabs/reviewdesk/internal/usecase/version"
	"github.com/corvidlabs/reviewdesk/pkg/jwt"
)

// PanelHandler drives the version management panel over a WebSocket. Each
// connection holds one panel.Session; the client sends actions, the server
// pushes state snapshots and toast notifications.
type PanelHandler struct {
	versionUseCase version.UseCase
	memberUseCase  member.UseCase
	hub            *events.Hub
	jwtManager     *jwt.JWTManager
	upgrader       websocket.Upgrader
}

// NewPanelHandler creates a new panel handler
func NewPanelHandler(
	versionUseCase version.UseCase,
	memberUseCase member.UseCase,
	hub *events.Hub,
	jwtManager *jwt.JWTManager,
) *PanelHandler {
	return &PanelHandler{
		versionUseCase: versionUseCase,
		memberUseCase:  memberUseCase,
		hub:            hub,
		jwtManager:     jwtManager,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				return true // Allow all origins in development
			},
		},
	}
}

// panelAction is an inbound client message
type panelAction struct {
	Action     string     `json:"action"`
	VersionID  *uuid.UUID `json:"version_id,omitempty"`
	PreviewURL string     `json:"preview_url"`
	FinalURL   string     `json:"final_url"`
}

// versionRow pairs a version with the row actions the session's role allows
type versionRow struct {
	entity.VideoVersionResponse
	Actions panel.Actions `json:"actions"`
}

// panelState is the full snapshot pushed after every action
type panelState struct {
	Versions      []versionRow      `json:"versions"`
	Dialog        panel.DialogState `json:"dialog"`
	Draft         panel.Draft       `json:"draft"`
	EditingID     *uuid.UUID        `json:"editing_id,omitempty"`
	PendingDelete *uuid.UUID        `json:"pending_delete,omitempty"`
}

type panelMessage struct {
	Type  string      `json:"type"`
	State *panelState `json:"state,omitempty"`
	Level string      `json:"level,omitempty"`
	Text  string      `json:"text,omitempty"`
}

// wsNotifier forwards panel toasts to the WebSocket client. A mutex guards the
// connection because notifications and state pushes share the writer.
type wsNotifier struct {
	mu   sync.Mutex
	conn *websocket.Conn
}

func (n *wsNotifier) write(msg panelMessage) {
	n.mu.Lock()
	defer n.mu.Unlock()
	if err := n.conn.WriteJSON(msg); err != nil {
		log.Debug().Err(err).Msg("Failed to write panel message")
	}
}

func (n *wsNotifier) Success(message string) {
	n.write(panelMessage{Type: "notice", Level: "success", Text: message})
}

func (n *wsNotifier) Error(message string) {
	n.write(panelMessage{Type: "notice", Level: "error", Text: message})
}

// wsAuthenticate validates the access token passed as a query parameter.
// Browsers cannot set headers on WebSocket requests, so the bearer header is
// not available here.
func wsAuthenticate(c *gin.Context, jwtManager *jwt.JWTManager) (uuid.UUID, bool) {
	token := c.Query("token")
	if token == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing token"})
		return uuid.Nil, false
	}

	claims, err := jwtManager.ValidateAccessToken(token)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
		return uuid.Nil, false
	}

	userID, err := uuid.Parse(claims.UserID)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
		return uuid.Nil, false
	}

	return userID, true
}

// Connect upgrades the request and runs the panel session until the client
// disconnects.
func (h *PanelHandler) Connect(c *gin.Context) {
	projectID, err := uuid.Parse(c.Param("project_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid project ID"})
		return
	}

	userID, ok := wsAuthenticate(c, h.jwtManager)
	if !ok {
		return
	}

	// Membership is checked before the upgrade so non-members get a proper
	// HTTP status instead of a dropped socket.
	role, err := h.memberUseCase.RoleOf(c.Request.Context(), projectID, userID)
	if err != nil {
		c.JSON(http.StatusForbidden, gin.H{"error": "not a member of this project"})
		return
	}

	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Error().Err(err).Msg("Failed to upgrade to WebSocket")
		return
	}
	defer conn.Close()

	// The session outlives the HTTP request, so it gets its own context.
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	notifier := &wsNotifier{conn: conn}
	session := panel.NewSession(projectID, userID, role, h.versionUseCase, notifier, func() {
		h.hub.NotifyVersionsUpdated(projectID)
	})

	if err := session.Refresh(ctx); err != nil {
		log.Error().Err(err).Msg("Initial version list fetch failed")
	}
	h.pushState(notifier, session)

	for {
		var action panelAction
		if err := conn.ReadJSON(&action); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Debug().Err(err).Msg("Panel WebSocket closed")
			}
			return
		}

		h.dispatch(ctx, session, &action)
		h.pushState(notifier, session)
	}
}

func (h *PanelHandler) dispatch(ctx context.Context, session *panel.Session, action *panelAction) {
	switch action.Action {
	case "refresh":
		_ = session.Refresh(ctx)
	case "open_create":
		session.OpenCreate()
	case "open_edit":
		if action.VersionID != nil {
			session.OpenEdit(*action.VersionID)
		}
	case "set_draft":
		session.SetDraft(panel.Draft{
			PreviewURL: action.PreviewURL,
			FinalURL:   action.FinalURL,
		})
	case "submit":
		session.Submit(ctx)
	case "close":
		session.Close()
	case "request_delete":
		if action.VersionID != nil {
			session.RequestDelete(*action.VersionID)
		}
	case "confirm_delete":
		session.ConfirmDelete(ctx)
	case "dismiss_delete":
		session.DismissDelete()
	case "approve":
		if action.VersionID != nil {
			session.Approve(ctx, *action.VersionID)
		}
	default:
		log.Debug().Str("action", action.Action).Msg("Unknown panel action")
	}
}

func (h *PanelHandler) pushState(notifier *wsNotifier, session *panel.Session) {
	versions := session.Versions()
	rows := make([]versionRow, len(versions))
	for i := range versions {
		rows[i] = versionRow{
			VideoVersionResponse: versions[i],
			Actions:              session.ActionsFor(&versions[i]),
		}
	}

	notifier.write(panelMessage{
		Type: "state",
		State: &panelState{
			Versions:      rows,
			Dialog:        session.State(),
			Draft:         session.Draft(),
			EditingID:     session.EditingID(),
			PendingDelete: session.PendingDeleteID(),
		},
	})
}
