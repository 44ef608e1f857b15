package main

import (
	"context"
	"errors"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/NivBraz/spellcheck-service/pkg/wordbank"
)

func main() {
	// Create context that listens for the interrupt signal from the OS
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	err := newRootCommand().ExecuteContext(ctx)
	stop()
	if err == nil {
		return
	}

	var loadErr *wordbank.LoadError
	switch {
	case errors.Is(err, errUnknownWords):
	case errors.As(err, &loadErr):
		log.Printf("Error loading dictionary: %v", loadErr.Err)
	default:
		log.Printf("Error: %v", err)
	}
	os.Exit(1)
}
