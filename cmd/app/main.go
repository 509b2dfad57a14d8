package main

import (
	"shuttle/config"
	"shuttle/di"
	"shuttle/shared/logger"
)

// @title Shuttle Court Booking API
// @version 1.0
// @description Badminton court reservation service.
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	cfg := config.Get()

	logger.InitLogger()

	logger.SetLogLevel(cfg)

	http := di.InitializeService()
	http.Serve()
}
