package main

import (
	"log/slog"
	"os"

	"github.com/joho/godotenv"
)

func init() {
	if err := godotenv.Load(); err != nil {
		slog.Info("no .env file found, relying on environment variables")
	}
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		slog.Error("bandchart failed", "error", err.Error())
		os.Exit(1)
	}
}
