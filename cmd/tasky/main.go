package main

import (
	"context"
	"flag"
	"log"
	"os"

	"github.com/taskyhq/tasky-be/internal/client/cli"
	"github.com/taskyhq/tasky-be/internal/client/session"
)

func main() {
	serverURL := flag.String("server", envOr("TASKY_SERVER", "http://localhost:8080"), "TaskY server base URL")
	flag.Parse()

	sessionPath, err := session.DefaultPath()
	if err != nil {
		log.Fatalf("cannot resolve session path: %v", err)
	}

	app, err := cli.NewApp(*serverURL, sessionPath)
	if err != nil {
		log.Fatalf("cannot start client: %v", err)
	}

	app.Run(context.Background())
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
