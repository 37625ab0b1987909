// websocket/types.go
package websocket

import (
	"net/http"

	"github.com/gorilla/websocket"
	"go.uber.org/atomic"

	"github.com/LilVoxy/capstone_dashboards/chart"
	"github.com/LilVoxy/capstone_dashboards/dashboard"
	"github.com/LilVoxy/capstone_dashboards/utils"
)

// Message - сообщение для обмена через WebSocket.
// Входящие: input (ID, Value) и ping. Исходящие: update, pong, error.
type Message struct {
	Type    string             `json:"type"`
	Session string             `json:"session,omitempty"`
	ID      string             `json:"id,omitempty"`
	Value   interface{}        `json:"value,omitempty"`
	Updates []dashboard.Update `json:"updates,omitempty"`
	Error   string             `json:"error,omitempty"`
}

// Client - одна вкладка браузера со своим состоянием элементов управления
type Client struct {
	ID     string
	Socket *websocket.Conn
	Send   chan []byte

	// state читается и изменяется только горутиной readPump
	state dashboard.State
}

// Stats - счетчики работы менеджера
type Stats struct {
	Sessions      atomic.Int64
	Connections   atomic.Int64
	Dispatches    atomic.Int64
	FailedUpdates atomic.Int64
	Dropped       atomic.Int64
}

// StatsSnapshot - значения счетчиков в момент запроса
type StatsSnapshot struct {
	Dashboard     string `json:"dashboard"`
	Sessions      int64  `json:"sessions"`
	Connections   int64  `json:"connections"`
	Dispatches    int64  `json:"dispatches"`
	FailedUpdates int64  `json:"failedUpdates"`
	Dropped       int64  `json:"dropped"`
}

// Manager - менеджер WebSocket-соединений одного дашборда
type Manager struct {
	App        *dashboard.App
	Renderer   *chart.Renderer
	Clients    map[string]*Client
	Register   chan *Client
	Unregister chan *Client

	stats  Stats
	logger *utils.Logger
	done   chan struct{}
}

// Конфигурация WebSocket-соединения
var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true // Разрешаем подключения с любого источника
	},
}
