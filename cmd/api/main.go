package main

import (
	"log"
	"net/http"

	"github.com/esiebomaj/Warmer-Pro/api/router"
	"github.com/esiebomaj/Warmer-Pro/config"
	"github.com/esiebomaj/Warmer-Pro/logger"
)

func main() {
	config.InitApp()
	logger.InitFromConfig(config.GetConfig().Logging.Level)

	r := router.New()

	addr := ":" + config.GetConfig().Server.Port
	logger.Log.Infof("listening on %s", addr)
	if err := r.Run(addr); err != nil && err != http.ErrServerClosed {
		log.Fatal(err)
	}
}
