package main

import (
	"context"
	"log"
	"os"

	"github.com/hitenchhabria09/film-folio-pro/internal/buildinfo"
	"github.com/hitenchhabria09/film-folio-pro/internal/client/cli"
	"github.com/hitenchhabria09/film-folio-pro/internal/client/config"
	"github.com/hitenchhabria09/film-folio-pro/internal/logging"
)

func main() {

	buildinfo.PrintBuildData(os.Stdout)

	ctx := context.Background()
	cfg := config.LoadConfig()
	logger := logging.NewSlog(logging.ParseLevel(cfg.LogLevel), cfg.LogFormat, os.Stderr)

	app, err := cli.NewApp(ctx, cfg, logger)
	if err != nil {
		log.Fatalf("%v", err)
	}

	app.Run(ctx)
}
