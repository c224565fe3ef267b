package orders_live

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/coder/websocket"
	"tracker/pkg/logger"
)

type Handler struct {
	log            handlerLogger
	hub            Hub
	originPatterns []string
}

func New(log handlerLogger, hub Hub, originPatterns []string) *Handler {
	handlerLog := log.With(
		logger.NewField("handler", "orders_live"),
	)

	return &Handler{
		log:            handlerLog,
		hub:            hub,
		originPatterns: originPatterns,
	}
}

// ServeHTTP держит соединение наблюдателя, пока его не закроет клиент,
// хаб или остановка сервиса. Входящие сообщения только поддерживают соединение.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	// таймауты http.Server рассчитаны на короткие запросы и оборвали бы соединение
	rc := http.NewResponseController(w)
	_ = rc.SetReadDeadline(time.Time{})
	_ = rc.SetWriteDeadline(time.Time{})

	c, err := websocket.Accept(w, r, &websocket.AcceptOptions{
		OriginPatterns: h.originPatterns,
	})
	if err != nil {
		h.log.With(
			logger.NewField("remote", r.RemoteAddr),
			logger.NewField("error", err),
		).Warn("websocket accept")
		return
	}

	conn := &connection{conn: c}
	h.hub.Register(conn)
	defer func() {
		h.hub.Unregister(conn)
		_ = c.CloseNow()
	}()

	connLog := h.log.With(
		logger.NewField("remote", r.RemoteAddr),
	)
	connLog.Info("observer connected")

	for {
		_, _, err := c.Read(r.Context())
		if err != nil {
			logDisconnect(connLog, err)
			return
		}
	}
}

func logDisconnect(log logger.Logger, err error) {
	switch websocket.CloseStatus(err) {
	case websocket.StatusNormalClosure, websocket.StatusGoingAway:
		log.Info("observer disconnected")
		return
	}

	if errors.Is(err, context.Canceled) {
		log.Info("observer disconnected")
		return
	}

	log.With(
		logger.NewField("error", err),
	).Warn("observer connection lost")
}
