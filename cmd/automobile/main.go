package main

import (
	"fmt"
	"os"

	"github.com/LilVoxy/capstone_dashboards/config"
	"github.com/LilVoxy/capstone_dashboards/dashboard"
	"github.com/LilVoxy/capstone_dashboards/dataset"
	"github.com/LilVoxy/capstone_dashboards/server"
	"github.com/LilVoxy/capstone_dashboards/utils"
	"github.com/LilVoxy/capstone_dashboards/views/automobile"
)

func main() {
	cfg, err := config.ParseFlags(os.Args[1:], config.GetConfig("automobile", automobile.DefaultDataPath, ""))
	if err != nil {
		fmt.Fprintf(os.Stderr, "❌ Ошибка конфигурации: %v\n", err)
		os.Exit(2)
	}

	err = server.Run(cfg, func(data *dataset.Frame, logger *utils.Logger) (*dashboard.App, error) {
		return automobile.New(data, logger), nil
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "❌ %v\n", err)
		os.Exit(1)
	}
}
