package main

import (
	"context"
	"os"
	"testing"
)

func TestRunNoDatabaseExitsCleanly(t *testing.T) {
	ctx := context.Background()
	os.Setenv("DATABASE_URL", "none")
	defer os.Unsetenv("DATABASE_URL")

	if err := run(ctx); err != nil {
		t.Errorf("expected nil for DATABASE_URL=none, got %v", err)
	}
}

func TestRunTestExitSkipsServerStart(t *testing.T) {
	ctx := context.Background()
	os.Setenv("DATABASE_URL", "postgres://localhost:5432/test")
	os.Setenv("API_ADDR", "test-exit")
	defer os.Unsetenv("DATABASE_URL")
	defer os.Unsetenv("API_ADDR")

	if err := run(ctx); err != nil {
		t.Errorf("expected nil for API_ADDR=test-exit, got %v", err)
	}
}

func TestRunNoDatabaseWithListenAddrSkipsServerStart(t *testing.T) {
	os.Setenv("DATABASE_URL", "none")
	os.Setenv("API_ADDR", ":0")
	defer os.Unsetenv("DATABASE_URL")
	defer os.Unsetenv("API_ADDR")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	done := make(chan error, 1)
	go func() {
		done <- run(ctx)
	}()
	cancel()

	if err := <-done; err != nil {
		t.Errorf("expected nil for DATABASE_URL=none with API_ADDR=:0, got %v", err)
	}
}
