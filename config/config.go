package config

import (
	"flag"
	"fmt"
	"os"
	"time"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/ianaindex"
	"gopkg.in/yaml.v3"
)

// AppConfig содержит конфигурацию одного дашборда
type AppConfig struct {
	// Имя дашборда (используется в логах и имени выгрузки)
	Name string `yaml:"name"`

	// Адрес HTTP сервера
	Addr string `yaml:"addr"`

	// Отладочный режим: подробные логи и вывод агрегатов
	Debug bool `yaml:"debug"`

	Dataset  DatasetConfig  `yaml:"dataset"`
	Database DatabaseConfig `yaml:"database"`
	Server   ServerConfig   `yaml:"server"`
	Chart    ChartConfig    `yaml:"chart"`

	// Период записи статистики сессий в лог
	StatsInterval time.Duration `yaml:"stats_interval"`
}

// DatasetConfig описывает источник набора данных
type DatasetConfig struct {
	// Путь к CSV файлу (.sz - CSV, сжатый snappy)
	Path string `yaml:"path"`

	// Кодировка файла по имени IANA (пусто - UTF-8)
	Encoding string `yaml:"encoding"`

	// Разделитель полей (пусто - запятая)
	Delimiter string `yaml:"delimiter"`

	// Таблица MySQL; если задана, набор загружается из базы, а не из файла
	Table string `yaml:"table"`
}

// ServerConfig содержит таймауты HTTP сервера
type ServerConfig struct {
	ReadTimeout     time.Duration `yaml:"read_timeout"`
	WriteTimeout    time.Duration `yaml:"write_timeout"`
	IdleTimeout     time.Duration `yaml:"idle_timeout"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
}

// ChartConfig содержит размеры изображений диаграмм
type ChartConfig struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

// Значения конфигурации по умолчанию
var (
	DefaultAddr = ":8050"

	DefaultServerConfig = ServerConfig{
		ReadTimeout:     15 * time.Second,
		WriteTimeout:    15 * time.Second,
		IdleTimeout:     60 * time.Second,
		ShutdownTimeout: 10 * time.Second,
	}

	DefaultChartConfig = ChartConfig{
		Width:  640,
		Height: 400,
	}
)

// GetConfig возвращает конфигурацию дашборда по умолчанию
func GetConfig(name, dataPath, dataEncoding string) AppConfig {
	return AppConfig{
		Name: name,
		Addr: DefaultAddr,
		Dataset: DatasetConfig{
			Path:     dataPath,
			Encoding: dataEncoding,
		},
		Database:      DefaultDatabaseConfig,
		Server:        DefaultServerConfig,
		Chart:         DefaultChartConfig,
		StatsInterval: time.Minute,
	}
}

// LoadFile накладывает значения из YAML файла на конфигурацию
func LoadFile(path string, cfg *AppConfig) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("ошибка чтения файла конфигурации: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("ошибка разбора файла конфигурации %s: %w", path, err)
	}
	return nil
}

// ParseFlags разбирает аргументы командной строки.
// Порядок применения: значения по умолчанию, файл -config, явно заданные флаги.
func ParseFlags(args []string, cfg AppConfig) (AppConfig, error) {
	fs := flag.NewFlagSet(cfg.Name, flag.ContinueOnError)
	configPath := fs.String("config", "", "путь к YAML файлу конфигурации")
	addr := fs.String("addr", cfg.Addr, "адрес HTTP сервера")
	data := fs.String("data", cfg.Dataset.Path, "путь к CSV файлу набора данных")
	table := fs.String("table", cfg.Dataset.Table, "таблица MySQL с набором данных")
	debug := fs.Bool("debug", cfg.Debug, "отладочный режим")

	if err := fs.Parse(args); err != nil {
		return cfg, err
	}

	if *configPath != "" {
		if err := LoadFile(*configPath, &cfg); err != nil {
			return cfg, err
		}
	}

	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "addr":
			cfg.Addr = *addr
		case "data":
			cfg.Dataset.Path = *data
		case "table":
			cfg.Dataset.Table = *table
		case "debug":
			cfg.Debug = *debug
		}
	})

	return cfg, cfg.Validate()
}

// Validate проверяет согласованность конфигурации
func (c AppConfig) Validate() error {
	if c.Addr == "" {
		return fmt.Errorf("не задан адрес сервера")
	}
	if c.Dataset.Path == "" && c.Dataset.Table == "" {
		return fmt.Errorf("не задан источник набора данных (файл или таблица)")
	}
	if _, err := c.Dataset.TextEncoding(); err != nil {
		return err
	}
	if _, err := c.Dataset.Separator(); err != nil {
		return err
	}
	return nil
}

// TextEncoding возвращает кодировку файла; nil означает UTF-8
func (d DatasetConfig) TextEncoding() (encoding.Encoding, error) {
	switch d.Encoding {
	case "", "utf-8", "UTF-8", "utf8":
		return nil, nil
	}

	enc, err := ianaindex.IANA.Encoding(d.Encoding)
	if err != nil {
		return nil, fmt.Errorf("неизвестная кодировка '%s': %w", d.Encoding, err)
	}
	if enc == nil {
		return nil, fmt.Errorf("кодировка '%s' не поддерживается", d.Encoding)
	}
	return enc, nil
}

// Separator возвращает разделитель полей CSV
func (d DatasetConfig) Separator() (rune, error) {
	if d.Delimiter == "" {
		return ',', nil
	}
	runes := []rune(d.Delimiter)
	if len(runes) != 1 {
		return 0, fmt.Errorf("разделитель должен быть одним символом, получено %q", d.Delimiter)
	}
	return runes[0], nil
}
