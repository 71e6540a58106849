package main

import (
	"os"

	"github.com/yigit/campusclubs/internal/cli"
	"github.com/yigit/campusclubs/internal/pkg/logger"
)

// @title Campus Clubs API
// @version 1.0
// @description API for browsing, following and running university clubs and their events
// @termsOfService http://swagger.io/terms/

// @contact.name API Support
// @contact.email support@campus.edu.tr

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8000
// @BasePath /
// @schemes http https

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description JWT token for authorization, sent as "Bearer <token>"

func main() {
	if err := cli.Execute(); err != nil {
		logger.Error().Err(err).Msg("Command failed")
		os.Exit(1)
	}
}
