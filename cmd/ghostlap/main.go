package main

import (
	"os"

	"github.com/joho/godotenv"

	"github.com/mfriis/ghostlap/internal/cli"
)

func main() {
	// Optional .env for redis credentials and the like.
	_ = godotenv.Load()

	if err := cli.NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
