// Command reminders sends deadline and interview reminder emails once and
// exits. Schedule it with cron.
package main

import (
	"context"
	"log"
	"os"

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

	err = app.SendReminders(ctx)
	_ = app.Close()
	if err != nil {
		os.Exit(1)
	}
}
