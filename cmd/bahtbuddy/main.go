package main

import (
	"os"

	"github.com/joho/godotenv"

	"github.com/WinterJet2021/BahtBuddy/internal/commands"
)

func main() {
	// A .env file is optional; it can carry BAHTBUDDY_DB.
	_ = godotenv.Load()

	if err := commands.NewRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}
