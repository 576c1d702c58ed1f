package config

import (
	"flag"
	"os"

	"github.com/dmitrijs2005/dirstore/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
// Supported flags:
//
//	-f string   snapshot file path (e.g., "directory.json")
//	-m string   password hash mode ("argon2id" or "sha256")
//	-l string   log level ("debug", "info", "warn", "error")
//
// os.Args is first filtered to only the flags handled here, so the
// config-file flags (-c/-config) parsed elsewhere do not collide.
func parseFlags(config *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-f", "-m", "-l"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&config.StorePath, "f", config.StorePath, "snapshot file path")
	fs.StringVar(&config.HashMode, "m", config.HashMode, "password hash mode")
	fs.StringVar(&config.LogLevel, "l", config.LogLevel, "log level")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}
}
