// websocket/status.go
package websocket

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/go-co-op/gocron"
)

// Snapshot возвращает текущие значения счетчиков
func (manager *Manager) Snapshot() StatsSnapshot {
	return StatsSnapshot{
		Dashboard:     manager.App.Name,
		Sessions:      manager.stats.Sessions.Load(),
		Connections:   manager.stats.Connections.Load(),
		Dispatches:    manager.stats.Dispatches.Load(),
		FailedUpdates: manager.stats.FailedUpdates.Load(),
		Dropped:       manager.stats.Dropped.Load(),
	}
}

// logStats пишет статистику сессий в лог
func (manager *Manager) logStats() {
	s := manager.Snapshot()
	manager.logger.Info("📊 Сессий: %d, подключений всего: %d, пересчетов: %d, ошибок обновления: %d, отброшено: %d",
		s.Sessions, s.Connections, s.Dispatches, s.FailedUpdates, s.Dropped)
}

// StartStatsReporter запускает периодическую запись статистики в лог
func (manager *Manager) StartStatsReporter(interval time.Duration) (*gocron.Scheduler, error) {
	if interval <= 0 {
		interval = DefaultStatsInterval
	}

	scheduler := gocron.NewScheduler(time.UTC)
	if _, err := scheduler.Every(interval).Do(manager.logStats); err != nil {
		return nil, fmt.Errorf("ошибка при настройке задачи статистики: %w", err)
	}
	scheduler.StartAsync()

	manager.logger.Info("⏱️ Статистика сессий пишется каждые %v", interval)
	return scheduler, nil
}

// HandleStats отдает статистику сессий в JSON
func (manager *Manager) HandleStats(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(manager.Snapshot()); err != nil {
		manager.logger.Error("❌ Ошибка отправки статистики: %v", err)
	}
}
