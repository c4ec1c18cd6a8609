package main

import (
	"context"
	"os"
	"os/signal"

	"github.com/jasona7/typosquat/internal/runner"
	"github.com/projectdiscovery/gologger"
)

func main() {
	cliOpts := runner.ParseFlags()

	r, err := runner.New(cliOpts)
	if err != nil {
		gologger.Fatal().Msgf("failed to create runner got %v", err)
	}

	if cliOpts.GenerateOnly {
		if err := r.Generate(os.Stdout); err != nil {
			gologger.Fatal().Msgf("failed to generate candidates got %v", err)
		}
		return
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	if _, err := r.Run(ctx); err != nil {
		gologger.Fatal().Msgf("scan failed: %v", err)
	}
}
