package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"greenmcp/internal/app"
	"greenmcp/internal/config"
)

var rootCmd = &cobra.Command{
	Use:           "greenmcp",
	Short:         "Semantic search over resolution chunks",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(*cobra.Command, []string) {
		_ = godotenv.Load(".env")
	},
}

// openApp connects to the store with a bounded boot timeout.
func openApp(ctx context.Context) (*app.App, error) {
	bootCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	return app.New(bootCtx, config.Load())
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
