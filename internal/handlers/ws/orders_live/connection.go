package orders_live

import (
	"context"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"
	"tracker/internal/entities"
	"tracker/internal/handlers/rest/dto"
)

// connection отдаёт websocket хабу. Запись в websocket.Conn безопасна
// из нескольких горутин, чтение ведёт только ServeHTTP.
type connection struct {
	conn *websocket.Conn
}

func (c *connection) Send(ctx context.Context, change entities.StatusChange) error {
	return wsjson.Write(ctx, c.conn, dto.FromStatusChange(change))
}

// Ping получает pong только пока ServeHTTP читает соединение.
func (c *connection) Ping(ctx context.Context) error {
	return c.conn.Ping(ctx)
}

func (c *connection) Close() error {
	return c.conn.CloseNow()
}
