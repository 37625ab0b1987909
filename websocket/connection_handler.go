// websocket/connection_handler.go
package websocket

import (
	"net/http"

	"github.com/google/uuid"
)

// HandleConnections устанавливает WebSocket-соединение и открывает новую сессию.
// Сразу после подключения клиент получает полную первичную отрисовку.
func (manager *Manager) HandleConnections(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		manager.logger.Error("❌ Ошибка при установке WebSocket-соединения: %v", err)
		return
	}

	client := &Client{
		ID:     uuid.NewString(),
		Socket: conn,
		Send:   make(chan []byte, sendBufferSize),
		state:  manager.App.InitialState(),
	}

	if !manager.register(client) {
		manager.logger.Warn("⚠️ Менеджер остановлен, соединение с %s отклонено", r.RemoteAddr)
		conn.Close()
		return
	}
	manager.logger.Info("✅ Сессия %s открыта с адреса %s", client.ID, r.RemoteAddr)

	manager.sendUpdates(client, manager.App.DispatchAll(client.state))

	go client.writePump(manager)
	go client.readPump(manager)
}
