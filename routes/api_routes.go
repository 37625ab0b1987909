// routes/api_routes.go
package routes

import (
	"github.com/gorilla/mux"

	"github.com/LilVoxy/capstone_dashboards/dashboard"
	"github.com/LilVoxy/capstone_dashboards/middleware"
	"github.com/LilVoxy/capstone_dashboards/utils"
	"github.com/LilVoxy/capstone_dashboards/websocket"
)

// SetupRoutes настраивает страницу, API и WebSocket одного дашборда
func SetupRoutes(router *mux.Router, app *dashboard.App, wsManager *websocket.Manager, logger *utils.Logger) {
	router.Use(middleware.CORSMiddleware)
	router.Use(middleware.RequestLogger(logger))

	// WebSocket соединения
	router.HandleFunc("/ws", wsManager.HandleConnections)

	// Страница дашборда
	router.HandleFunc("/", PageHandler(app, logger)).Methods("GET")

	// API дашборда
	router.HandleFunc("/api/layout", LayoutHandler(app, logger)).Methods("GET", "OPTIONS")
	router.HandleFunc("/api/update", UpdateHandler(app, wsManager.Renderer, logger)).Methods("POST", "OPTIONS")
	router.HandleFunc("/api/export", ExportHandler(app, logger)).Methods("POST", "OPTIONS")
	router.HandleFunc("/api/stats", wsManager.HandleStats).Methods("GET", "OPTIONS")
}
