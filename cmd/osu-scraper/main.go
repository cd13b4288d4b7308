package main

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/kapu/osu-scraper-go/internal/command"
)

func main() {
	// Cancel in-flight fetches on Ctrl+C
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	command.Execute(ctx)
}
