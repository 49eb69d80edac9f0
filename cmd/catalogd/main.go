package main

import (
	"context"
	"log"
	"os"

	"github.com/hitenchhabria09/film-folio-pro/internal/buildinfo"
	"github.com/hitenchhabria09/film-folio-pro/internal/server"
	"github.com/hitenchhabria09/film-folio-pro/internal/server/config"
)

func main() {

	buildinfo.PrintBuildData(os.Stdout)

	ctx := context.Background()
	cfg := config.LoadConfig()
	app, err := server.NewApp(cfg)

	if err != nil {
		log.Printf("%v", err)
		return
	}

	app.Run(ctx)
}
