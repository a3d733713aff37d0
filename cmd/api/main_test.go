package main

import (
	"testing"

	"greenmcp/internal/config"

	"github.com/stretchr/testify/require"
)

func TestRunReturnsBootError(t *testing.T) {
	cfg := config.Load()
	cfg.PostgresURL = "postgres://%zz"
	err := run(cfg)
	require.ErrorContains(t, err, "parse postgres config")
}
