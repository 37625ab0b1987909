package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/LilVoxy/capstone_dashboards/config"
	"github.com/LilVoxy/capstone_dashboards/server"
	"github.com/LilVoxy/capstone_dashboards/utils"
)

func main() {
	var (
		configPath = flag.String("config", "", "путь к YAML файлу конфигурации")
		data       = flag.String("data", "", "CSV файл для загрузки")
		table      = flag.String("table", "", "таблица MySQL назначения")
		encoding   = flag.String("encoding", "", "кодировка CSV файла (например, ISO-8859-1)")
		batchSize  = flag.Int("batch", server.DefaultBatchSize, "размер пакета вставки")
		compress   = flag.String("snappy", "", "сохранить набор данных в сжатый файл вместо загрузки в MySQL")
		every      = flag.Duration("every", 0, "повторять загрузку с заданным интервалом")
		debug      = flag.Bool("debug", false, "отладочный режим")
	)
	flag.Parse()

	cfg := config.GetConfig("import", *data, *encoding)
	if *configPath != "" {
		if err := config.LoadFile(*configPath, &cfg); err != nil {
			fmt.Fprintf(os.Stderr, "❌ %v\n", err)
			os.Exit(2)
		}
	}
	if *data != "" {
		cfg.Dataset.Path = *data
	}
	if *encoding != "" {
		cfg.Dataset.Encoding = *encoding
	}
	if *table != "" {
		cfg.Dataset.Table = *table
	}
	cfg.Debug = cfg.Debug || *debug

	logger, err := utils.NewLogger(cfg.Debug)
	if err != nil {
		fmt.Fprintf(os.Stderr, "❌ %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, *batchSize, *compress, *every, logger); err != nil {
		logger.Error("❌ %v", err)
		logger.Sync()
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg config.AppConfig, batchSize int, compress string, every time.Duration, logger *utils.Logger) error {
	if cfg.Dataset.Path == "" {
		return fmt.Errorf("не задан CSV файл (-data)")
	}

	if compress != "" {
		return server.CompressDataset(ctx, cfg, compress, logger)
	}

	if every > 0 {
		return server.ScheduleImport(ctx, cfg, batchSize, every, logger)
	}

	_, err := server.ImportTable(ctx, cfg, batchSize, logger)
	return err
}
