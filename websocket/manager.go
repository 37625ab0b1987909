// websocket/manager.go
package websocket

import (
	"context"

	"github.com/LilVoxy/capstone_dashboards/chart"
	"github.com/LilVoxy/capstone_dashboards/dashboard"
	"github.com/LilVoxy/capstone_dashboards/utils"
)

// NewManager создает менеджер соединений для дашборда app
func NewManager(app *dashboard.App, renderer *chart.Renderer, logger *utils.Logger) *Manager {
	if renderer == nil {
		renderer = chart.NewRenderer(0, 0)
	}
	if logger == nil {
		logger = utils.NewNopLogger()
	}
	return &Manager{
		App:        app,
		Renderer:   renderer,
		Clients:    make(map[string]*Client),
		Register:   make(chan *Client),
		Unregister: make(chan *Client),
		logger:     logger.With("component", "websocket"),
		done:       make(chan struct{}),
	}
}

// Run обслуживает регистрацию клиентов до отмены контекста
func (manager *Manager) Run(ctx context.Context) {
	defer close(manager.done)

	for {
		select {
		case client := <-manager.Register:
			manager.Clients[client.ID] = client
			manager.stats.Sessions.Inc()
			manager.stats.Connections.Inc()
			manager.logger.Info("👤 Сессия %s подключилась", client.ID)

		case client := <-manager.Unregister:
			if _, ok := manager.Clients[client.ID]; ok {
				delete(manager.Clients, client.ID)
				close(client.Send)
				manager.stats.Sessions.Dec()
				manager.logger.Info("👤 Сессия %s отключилась", client.ID)
			}

		case <-ctx.Done():
			// Закрываем сокеты; горутины клиентов завершатся сами
			for id, client := range manager.Clients {
				delete(manager.Clients, id)
				client.Socket.Close()
			}
			manager.stats.Sessions.Store(0)
			manager.logger.Info("🛑 Менеджер соединений остановлен")
			return
		}
	}
}

// register передает клиента циклу Run; false, если менеджер уже остановлен
func (manager *Manager) register(client *Client) bool {
	select {
	case manager.Register <- client:
		return true
	case <-manager.done:
		return false
	}
}

// unregister передает клиента на отключение, если менеджер еще работает
func (manager *Manager) unregister(client *Client) {
	select {
	case manager.Unregister <- client:
	case <-manager.done:
	}
}

// RenderUpdates заменяет диаграммы в обновлениях на готовые для клиента данные.
// Ошибка отрисовки затрагивает только свою цель.
func RenderUpdates(renderer *chart.Renderer, updates []dashboard.Update) []dashboard.Update {
	out := make([]dashboard.Update, 0, len(updates))
	for _, u := range updates {
		if u.Error == "" {
			payload, err := renderer.Payload(u.Value)
			if err != nil {
				u.Value = nil
				u.Error = err.Error()
			} else {
				u.Value = payload
			}
		}
		out = append(out, u)
	}
	return out
}
