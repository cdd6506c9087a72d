package handler

import (
	"net/http"
	"roomify/config"
	"roomify/di"
	"roomify/shared/logger"
	"roomify/shared/timezone"
	"sync"
)

var (
	app  http.Handler
	once sync.Once
)

// Handler serves the API from a serverless function. The store lives as long
// as the function instance does.
func Handler(w http.ResponseWriter, r *http.Request) {
	once.Do(func() {
		cfg := config.Get()

		logger.InitLogger(cfg)

		logger.SetLogLevel(cfg)

		timezone.Init(cfg)

		app = di.InitializeService().Handler()
	})

	r.RequestURI = r.URL.String()

	app.ServeHTTP(w, r)
}
