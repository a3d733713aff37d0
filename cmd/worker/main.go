package main

import (
	"context"
	"log"
	"time"

	"greenmcp/internal/activities"
	"greenmcp/internal/app"
	"greenmcp/internal/config"
	"greenmcp/internal/workflows"

	"github.com/joho/godotenv"
	"go.temporal.io/sdk/client"
	"go.temporal.io/sdk/worker"
)

func main() {
	_ = godotenv.Load(".env")
	if err := run(config.Load()); err != nil {
		log.Fatal(err)
	}
}

func run(cfg config.Config) error {
	c, err := client.Dial(client.Options{HostPort: cfg.TemporalAddress})
	if err != nil {
		return err
	}
	defer c.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	a, err := app.New(ctx, cfg)
	cancel()
	if err != nil {
		return err
	}
	defer a.Close()

	w := worker.New(c, cfg.TemporalTaskQueue, worker.Options{})
	workflows.Register(w)
	activities.Register(w, activities.New(cfg, a.Loader))

	log.Printf("greenmcp worker listening on %s queue=%s embed_provider=%q", cfg.TemporalAddress, cfg.TemporalTaskQueue, a.Providers.Ref().Raw)
	return w.Run(worker.InterruptCh())
}
