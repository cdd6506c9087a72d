package main

import (
	"roomify/config"
	"roomify/di"
	"roomify/shared/logger"
	"roomify/shared/timezone"

	"github.com/rs/zerolog/log"
)

// @title Roomify API
// @version 1.0
// @description Room booking state and availability engine.
// @description Every /v1 route identifies the caller through the X-User-ID header.
// @BasePath /
func main() {
	cfg := config.Get()

	logger.InitLogger(cfg)
	logger.SetLogLevel(cfg)

	timezone.Init(cfg)

	log.Info().
		Str("env", cfg.Server.Env).
		Str("timezone", timezone.GetLocation().String()).
		Str("seed", cfg.App.SeedFile).
		Msg("Starting roomify")

	di.InitializeService().Serve()
}
