package config

import (
	"flag"
	"os"

	"github.com/hitenchhabria09/film-folio-pro/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
// Supported flags:
//
//	-a string     gRPC bind address (e.g., ":50061")
//	-m string     catalog source: mock or tmdb
//	-w duration   artificial latency per mock lookup (e.g., "200ms")
//	-l string     log level
func parseFlags(config *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-m", "-w", "-l"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&config.ListenAddr, "a", config.ListenAddr, "address and port to run server")
	fs.StringVar(&config.Source, "m", config.Source, "catalog source: mock or tmdb")
	fs.DurationVar(&config.Latency, "w", config.Latency, "artificial latency of the mock catalog")
	fs.StringVar(&config.LogLevel, "l", config.LogLevel, "log level")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}
}
