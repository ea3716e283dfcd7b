package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"github.com/estantedigital/plataforma/internal/config"
	"github.com/estantedigital/plataforma/internal/entrypoint"
)

// Version information - set at build time via ldflags
var (
	Version = "dev"
	Commit  = "unknown"
)

func main() {
	// Load .env if present; real environment wins either way.
	_ = godotenv.Load()

	cfg := config.NewConfig()

	// If no arguments or "serve" command, run the HTTP server
	if len(os.Args) < 2 || os.Args[1] == "serve" {
		entrypoint.Run(cfg, Version)
		return
	}

	switch os.Args[1] {
	case "sync-all":
		if err := entrypoint.RunSyncAll(cfg); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}

	case "version":
		fmt.Printf("plataforma %s (%s)\n", Version, Commit)

	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", os.Args[1])
		fmt.Fprintln(os.Stderr, "Available commands: serve, sync-all, version")
		os.Exit(1)
	}
}
