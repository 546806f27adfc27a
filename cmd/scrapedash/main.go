package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"scrapedash/cmd/scrapedash/commands"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := commands.NewApp().Run(ctx, os.Args); err != nil {
		log.Fatal(err)
	}
}
