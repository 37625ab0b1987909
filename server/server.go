package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gorilla/mux"

	"github.com/LilVoxy/capstone_dashboards/chart"
	"github.com/LilVoxy/capstone_dashboards/config"
	"github.com/LilVoxy/capstone_dashboards/dashboard"
	"github.com/LilVoxy/capstone_dashboards/dataset"
	"github.com/LilVoxy/capstone_dashboards/routes"
	"github.com/LilVoxy/capstone_dashboards/utils"
	"github.com/LilVoxy/capstone_dashboards/websocket"
)

// Builder создает дашборд над загруженным набором данных
type Builder func(data *dataset.Frame, logger *utils.Logger) (*dashboard.App, error)

// Server - HTTP сервер одного дашборда
type Server struct {
	cfg       config.AppConfig
	app       *dashboard.App
	wsManager *websocket.Manager
	router    *mux.Router
	logger    *utils.Logger
}

// New собирает маршруты и менеджер соединений дашборда
func New(cfg config.AppConfig, app *dashboard.App, logger *utils.Logger) *Server {
	renderer := chart.NewRenderer(cfg.Chart.Width, cfg.Chart.Height)
	wsManager := websocket.NewManager(app, renderer, logger)

	router := mux.NewRouter()
	routes.SetupRoutes(router, app, wsManager, logger)

	return &Server{
		cfg:       cfg,
		app:       app,
		wsManager: wsManager,
		router:    router,
		logger:    logger,
	}
}

// Handler возвращает корневой обработчик HTTP
func (s *Server) Handler() http.Handler {
	return s.router
}

// Start обслуживает запросы до отмены контекста, затем плавно останавливает сервер
func (s *Server) Start(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	go s.wsManager.Run(ctx)

	scheduler, err := s.wsManager.StartStatsReporter(s.cfg.StatsInterval)
	if err != nil {
		return err
	}
	defer scheduler.Stop()

	server := &http.Server{
		Addr:         s.cfg.Addr,
		Handler:      s.router,
		ReadTimeout:  s.cfg.Server.ReadTimeout,
		WriteTimeout: s.cfg.Server.WriteTimeout,
		IdleTimeout:  s.cfg.Server.IdleTimeout,
	}

	serveErr := make(chan error, 1)
	go func() {
		s.logger.Info("✅ Дашборд %s запущен на http://localhost%s", s.app.Name, server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case err, ok := <-serveErr:
		if ok {
			return fmt.Errorf("ошибка запуска сервера: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	s.logger.Info("⚠️ Получен сигнал завершения, закрываем соединения...")
	timeout := s.cfg.Server.ShutdownTimeout
	if timeout <= 0 {
		timeout = config.DefaultServerConfig.ShutdownTimeout
	}
	shutdownCtx, stop := context.WithTimeout(context.Background(), timeout)
	defer stop()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("ошибка остановки сервера: %w", err)
	}

	s.logger.Info("👋 Сервер остановлен")
	return nil
}

// Run загружает набор данных, создает дашборд и обслуживает его до SIGINT/SIGTERM.
// Ошибка загрузки набора данных завершает запуск.
func Run(cfg config.AppConfig, build Builder) error {
	logger, err := utils.NewLogger(cfg.Debug)
	if err != nil {
		return err
	}
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	data, err := LoadDataset(ctx, cfg, logger)
	if err != nil {
		return err
	}

	app, err := build(data, logger)
	if err != nil {
		return fmt.Errorf("ошибка создания дашборда: %w", err)
	}

	return New(cfg, app, logger).Start(ctx)
}
