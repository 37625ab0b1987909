// websocket/read_pump.go
package websocket

import (
	"time"

	"github.com/gorilla/websocket"
)

// readPump читает сообщения клиента и обрабатывает их по одному
func (c *Client) readPump(manager *Manager) {
	defer func() {
		if r := recover(); r != nil {
			manager.logger.Error("❌ Паника при чтении сообщений сессии %s: %v", c.ID, r)
		}

		manager.unregister(c)
		c.Socket.Close()
		manager.logger.Debug("Завершение readPump для сессии %s", c.ID)
	}()

	c.Socket.SetReadLimit(maxMessageSize)
	c.Socket.SetReadDeadline(time.Now().Add(pongWait))
	c.Socket.SetPongHandler(func(string) error {
		c.Socket.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, message, err := c.Socket.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				manager.logger.Warn("⚠️ Ошибка чтения сессии %s: %v", c.ID, err)
			}
			break
		}

		// Любое сообщение продлевает срок жизни соединения
		c.Socket.SetReadDeadline(time.Now().Add(pongWait))
		manager.HandleMessage(c, message)
	}
}
