package main

import (
	"fmt"
	"os"

	"github.com/LilVoxy/capstone_dashboards/config"
	"github.com/LilVoxy/capstone_dashboards/server"
	"github.com/LilVoxy/capstone_dashboards/views/launches"
)

func main() {
	cfg, err := config.ParseFlags(os.Args[1:], config.GetConfig("launches", launches.DefaultDataPath, ""))
	if err != nil {
		fmt.Fprintf(os.Stderr, "❌ Ошибка конфигурации: %v\n", err)
		os.Exit(2)
	}

	if err := server.Run(cfg, launches.New); err != nil {
		fmt.Fprintf(os.Stderr, "❌ %v\n", err)
		os.Exit(1)
	}
}
