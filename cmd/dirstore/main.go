package main

import (
	"context"
	"fmt"
	"os"

	"github.com/dmitrijs2005/dirstore/internal/cli"
	"github.com/dmitrijs2005/dirstore/internal/config"
	"github.com/dmitrijs2005/dirstore/internal/logging"
)

func main() {
	cfg := config.LoadConfig()
	log := logging.NewDefault(cfg.LogLevel)

	app, err := cli.NewApp(cfg, log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "dirstore: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("Directory store CLI (type 'help' for commands)")

	if err := app.Run(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "dirstore: %v\n", err)
		os.Exit(1)
	}
}
