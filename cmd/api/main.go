package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"greenmcp/internal/api"
	"greenmcp/internal/app"
	"greenmcp/internal/config"
	"greenmcp/internal/mcp"

	"github.com/joho/godotenv"
)

func main() {
	_ = godotenv.Load(".env")
	if err := run(config.Load()); err != nil {
		log.Fatal(err)
	}
}

func run(cfg config.Config) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	bootCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	a, err := app.New(bootCtx, cfg)
	cancel()
	if err != nil {
		return err
	}
	defer a.Close()

	a.ImportOnBoot(ctx)

	mcpServer, err := mcp.NewServer(a.Tools)
	if err != nil {
		return err
	}
	h := api.NewServer(cfg, a.Tools, mcpServer.Handler(), a.DB)
	srv := &http.Server{
		Addr:              cfg.APIAddr,
		Handler:           h.Routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	log.Printf("greenmcp api listening on %s mcp_path=%s embed_provider=%q dim=%d", cfg.APIAddr, cfg.MCPPath, a.Providers.Ref().Raw, cfg.EmbedDim)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
