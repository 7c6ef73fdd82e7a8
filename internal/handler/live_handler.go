package handler

import (
	"survey-dashboard-be/internal/pkg/logger"
	"survey-dashboard-be/internal/pkg/serverutils"
	internalWS "survey-dashboard-be/internal/websocket"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
)

// LiveHandler streams dataset_changed messages to every open view of a session.
type LiveHandler struct {
	hub    *internalWS.Hub
	logger logger.ILogger
}

func NewLiveHandler(hub *internalWS.Hub, log logger.ILogger) *LiveHandler {
	return &LiveHandler{
		hub:    hub,
		logger: log,
	}
}

// RegisterRoutes mounts the websocket under a router that already runs the
// session middleware.
func (h *LiveHandler) RegisterRoutes(r fiber.Router) {
	r.Get("/ws", h.ServeWs)
}

func (h *LiveHandler) ServeWs(c *fiber.Ctx) error {
	sessionID := serverutils.SessionID(c)
	if sessionID == "" {
		return fiber.NewError(fiber.StatusBadRequest, "Missing session")
	}

	if websocket.IsWebSocketUpgrade(c) {
		return websocket.New(func(conn *websocket.Conn) {
			h.logger.Info("LiveHandler", "Starting WebSocket session", map[string]interface{}{"session_id": sessionID})
			internalWS.ServeWs(h.hub, conn, sessionID)
			h.logger.Info("LiveHandler", "WebSocket session ended", map[string]interface{}{"session_id": sessionID})
		})(c)
	}
	return fiber.ErrUpgradeRequired
}
