// Package main starts the dipbot process lifecycle.
package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	dipbotcmd "github.com/louisbranch/dipbot/internal/cmd/dipbot"
	"github.com/louisbranch/dipbot/internal/platform/config"
)

func main() {
	log.SetPrefix("[DIPBOT] ")
	cfg, err := dipbotcmd.ParseConfig(flag.CommandLine, os.Args[1:])
	if err != nil {
		config.Exitf("dipbot: %v", err)
	}
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if cfg.Probe {
		if err := dipbotcmd.Probe(ctx, cfg); err != nil {
			log.Fatalf("probe: %v", err)
		}
		return
	}
	if err := dipbotcmd.Run(ctx, cfg); err != nil {
		log.Fatalf("failed to run: %v", err)
	}
}
