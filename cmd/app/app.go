package main

import (
	"os"

	"github.com/DRSN-tech/storefront-gateway/internal/app"
	config "github.com/DRSN-tech/storefront-gateway/internal/cfg"
	"github.com/DRSN-tech/storefront-gateway/pkg/logger"
)

//	@title			Storefront Gateway API
//	@version		1.0
//	@description	Витрина каталога: поиск, фильтры, кэш запросов и история клиента
//	@host			localhost:8080
//	@BasePath		/api/v1

func main() {
	log := logger.NewSlogLogger()

	cfg, err := config.Load(log)
	if err != nil {
		log.Errorf(err, "failed to load config")
		os.Exit(1)
	}

	application, err := app.NewApp(cfg, log)
	if err != nil {
		log.Errorf(err, "failed to initialize app")
		os.Exit(1)
	}

	if err := application.Run(); err != nil {
		os.Exit(1)
	}
}
