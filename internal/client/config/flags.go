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
//	-s string   storage driver (sqlite, postgres, redis)
//	-d string   storage DSN
//	-m string   catalog source (mock, tmdb, grpc)
//	-g string   catalogd address
//	-t string   session lifetime, e.g. 7d
//	-l string   log level
//
// os.Args is filtered with flagx.FilterArgs so that -c/-config and other
// foreign flags do not break parsing.
func parseFlags(cfg *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-s", "-d", "-m", "-g", "-t", "-l"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.StorageDriver, "s", cfg.StorageDriver, "storage driver: sqlite, postgres or redis")
	fs.StringVar(&cfg.StorageDSN, "d", cfg.StorageDSN, "storage DSN (file path, postgres DSN or redis:// URL)")
	fs.StringVar(&cfg.CatalogSource, "m", cfg.CatalogSource, "movie catalog: mock, tmdb or grpc")
	fs.StringVar(&cfg.CatalogAddr, "g", cfg.CatalogAddr, "address of the catalogd gRPC server")
	fs.StringVar(&cfg.SessionTTL, "t", cfg.SessionTTL, "session token lifetime (e.g. 12h, 7d, 2w)")
	fs.StringVar(&cfg.LogLevel, "l", cfg.LogLevel, "log level: debug, info, warn, error")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}
}
