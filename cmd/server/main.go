package main

import (
	"os"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"rostering/internal/api"
	"rostering/internal/cp"
	"rostering/internal/model"
)

func main() {
	// Missing .env is fine, environment variables still apply.
	_ = godotenv.Load()

	log := logrus.New()
	log.SetFormatter(&logrus.JSONFormatter{})
	if level, err := logrus.ParseLevel(os.Getenv("LOG_LEVEL")); err == nil {
		log.SetLevel(level)
	}

	if mode := os.Getenv("GIN_MODE"); mode != "" {
		gin.SetMode(mode)
	}

	router := gin.New()
	router.Use(gin.Recovery())

	handler := api.NewHandler(model.NewRosterer(cp.NewSolver()), log)
	handler.Register(router)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	log.WithField("port", port).Info("rostering server listening")
	if err := router.Run(":" + port); err != nil {
		log.WithError(err).Fatal("server stopped")
	}
}
