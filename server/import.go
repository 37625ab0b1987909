package server

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/go-co-op/gocron"

	"github.com/LilVoxy/capstone_dashboards/config"
	"github.com/LilVoxy/capstone_dashboards/dataset"
	"github.com/LilVoxy/capstone_dashboards/utils"
)

// DefaultBatchSize - размер пакета вставки строк в MySQL
const DefaultBatchSize = 1000

// readSource читает CSV файл из конфигурации, игнорируя таблицу
func readSource(ctx context.Context, cfg config.AppConfig, logger *utils.Logger) (*dataset.Frame, error) {
	source := cfg
	source.Dataset.Table = ""
	return LoadDataset(ctx, source, logger)
}

// ImportTable загружает CSV файл из конфигурации в таблицу cfg.Dataset.Table
func ImportTable(ctx context.Context, cfg config.AppConfig, batchSize int, logger *utils.Logger) (int, error) {
	if err := dataset.ValidateTableName(cfg.Dataset.Table); err != nil {
		return 0, err
	}

	frame, err := readSource(ctx, cfg, logger)
	if err != nil {
		return 0, err
	}

	db, err := config.ConnectDatabase(ctx, cfg.Database)
	if err != nil {
		return 0, err
	}
	defer db.Close()

	startTime := time.Now()
	n, err := dataset.ImportFrame(ctx, db, cfg.Dataset.Table, frame, batchSize)
	if err != nil {
		return n, err
	}
	logger.Info("✅ В таблицу %s загружено %d строк за %v", cfg.Dataset.Table, n, time.Since(startTime))
	return n, nil
}

// CompressDataset сохраняет CSV файл из конфигурации в формате snappy по пути out
func CompressDataset(ctx context.Context, cfg config.AppConfig, out string, logger *utils.Logger) error {
	frame, err := readSource(ctx, cfg, logger)
	if err != nil {
		return err
	}

	file, err := os.Create(out)
	if err != nil {
		return fmt.Errorf("не удалось создать файл %s: %w", out, err)
	}
	if err := dataset.WriteSnappyCSV(file, frame); err != nil {
		file.Close()
		return fmt.Errorf("ошибка записи %s: %w", out, err)
	}
	if err := file.Close(); err != nil {
		return err
	}

	logger.Info("✅ Набор данных сохранен в %s", out)
	return nil
}

// ScheduleImport повторяет загрузку в таблицу с интервалом every до отмены контекста
func ScheduleImport(ctx context.Context, cfg config.AppConfig, batchSize int, every time.Duration, logger *utils.Logger) error {
	scheduler := gocron.NewScheduler(time.UTC)

	_, err := scheduler.Every(every).Do(func() {
		logger.Info("Запланированная загрузка набора данных в %s", cfg.Dataset.Table)
		if _, err := ImportTable(ctx, cfg, batchSize, logger); err != nil {
			logger.Error("❌ Ошибка при выполнении запланированной загрузки: %v", err)
		}
	})
	if err != nil {
		return fmt.Errorf("ошибка при настройке планировщика: %w", err)
	}

	logger.Info("Запуск планировщика загрузки с интервалом %v", every)
	scheduler.StartAsync()

	<-ctx.Done()

	scheduler.Stop()
	logger.Info("Планировщик загрузки остановлен")
	return nil
}
