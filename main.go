package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"

	"github.com/theleywin/Backend-Pulse-Feed/src/app"
	"github.com/theleywin/Backend-Pulse-Feed/src/config"
)

func main() {
	cfg := config.Load()

	application, err := app.New(cfg)
	if err != nil {
		logrus.WithError(err).Fatal("Failed to initialize application")
	}

	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
		<-quit

		logrus.Info("Shutting down")
		if err := application.Shutdown(); err != nil {
			logrus.WithError(err).Error("Shutdown failed")
		}
	}()

	if err := application.Listen(); err != nil {
		logrus.WithError(err).Fatal("Server stopped")
	}
}
