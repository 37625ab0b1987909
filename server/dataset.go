package server

import (
	"context"
	"fmt"
	"time"

	"github.com/LilVoxy/capstone_dashboards/config"
	"github.com/LilVoxy/capstone_dashboards/dataset"
	"github.com/LilVoxy/capstone_dashboards/utils"
)

// LoadDataset загружает набор данных из таблицы MySQL или из CSV файла.
// Набор загружается один раз при старте и дальше только читается.
func LoadDataset(ctx context.Context, cfg config.AppConfig, logger *utils.Logger) (*dataset.Frame, error) {
	startTime := time.Now()

	if cfg.Dataset.Table != "" {
		if err := dataset.ValidateTableName(cfg.Dataset.Table); err != nil {
			return nil, err
		}
		db, err := config.ConnectDatabase(ctx, cfg.Database)
		if err != nil {
			return nil, err
		}
		defer db.Close()

		frame, err := dataset.LoadTable(ctx, db, cfg.Dataset.Table)
		if err != nil {
			return nil, fmt.Errorf("ошибка загрузки таблицы %s: %w", cfg.Dataset.Table, err)
		}
		rows, cols := frame.Shape()
		logger.LogLoadComplete("mysql:"+cfg.Dataset.Table, rows, cols, startTime)
		return frame, nil
	}

	enc, err := cfg.Dataset.TextEncoding()
	if err != nil {
		return nil, err
	}
	sep, err := cfg.Dataset.Separator()
	if err != nil {
		return nil, err
	}

	options := []dataset.CSVOption{dataset.WithDelimiter(sep)}
	if enc != nil {
		options = append(options, dataset.WithEncoding(enc))
	}

	frame, err := dataset.ReadCSV(cfg.Dataset.Path, options...)
	if err != nil {
		return nil, fmt.Errorf("ошибка загрузки набора данных %s: %w", cfg.Dataset.Path, err)
	}
	rows, cols := frame.Shape()
	logger.LogLoadComplete(cfg.Dataset.Path, rows, cols, startTime)
	logger.Debug("Первые строки набора данных:\n%s", frame.Head(5))
	return frame, nil
}
