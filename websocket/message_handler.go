// websocket/message_handler.go
package websocket

import (
	"encoding/json"
	"fmt"

	"github.com/LilVoxy/capstone_dashboards/dashboard"
)

// HandleMessage обрабатывает входящее сообщение клиента
func (manager *Manager) HandleMessage(client *Client, data []byte) {
	var msg Message
	if err := json.Unmarshal(data, &msg); err != nil {
		manager.logger.Warn("⚠️ Ошибка разбора JSON от сессии %s: %v", client.ID, err)
		manager.send(client, Message{Type: TypeError, Error: fmt.Sprintf("некорректное сообщение: %v", err)})
		return
	}

	switch msg.Type {
	case TypePing:
		manager.send(client, Message{Type: TypePong})

	case TypeInput:
		state, err := manager.App.Apply(client.state, msg.ID, msg.Value)
		if err != nil {
			manager.send(client, Message{Type: TypeError, ID: msg.ID, Error: err.Error()})
			return
		}
		client.state = state
		manager.logger.Debug("Сессия %s: %s = %v", client.ID, msg.ID, msg.Value)

		updates := manager.App.Dispatch(state, msg.ID)
		manager.sendUpdates(client, updates)

	default:
		manager.send(client, Message{Type: TypeError, Error: fmt.Sprintf("неизвестный тип сообщения '%s'", msg.Type)})
	}
}

// sendUpdates отрисовывает и отправляет результат одного изменения одним сообщением
func (manager *Manager) sendUpdates(client *Client, updates []dashboard.Update) {
	manager.stats.Dispatches.Inc()

	rendered := RenderUpdates(manager.Renderer, updates)
	for _, u := range rendered {
		if u.Error != "" {
			manager.stats.FailedUpdates.Inc()
		}
	}

	manager.send(client, Message{Type: TypeUpdate, Session: client.ID, Updates: rendered})
}

// send ставит сообщение в очередь клиента. Если очередь заполнена, соединение
// закрывается: клиент переподключится и получит полную отрисовку.
func (manager *Manager) send(client *Client, msg Message) {
	data, err := json.Marshal(msg)
	if err != nil {
		manager.logger.Error("❌ Ошибка кодирования сообщения для сессии %s: %v", client.ID, err)
		return
	}

	select {
	case client.Send <- data:
	default:
		manager.stats.Dropped.Inc()
		manager.logger.Warn("⚠️ Очередь сессии %s заполнена, соединение закрывается", client.ID)
		client.Socket.Close()
	}
}
