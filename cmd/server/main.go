package main

import (
	"context"
	"log"

	"github.com/joho/godotenv"

	"github.com/Shubham-musmade/interview-tracker/internal/server"
	"github.com/Shubham-musmade/interview-tracker/internal/server/config"
)

func main() {
	_ = godotenv.Load()

	ctx := context.Background()
	cfg := config.LoadConfig()
	app, err := server.NewApp(ctx, cfg)

	if err != nil {
		log.Fatalf("%v", err)
	}
	defer app.Close()

	app.Run(ctx)
}
