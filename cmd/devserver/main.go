package main

import (
	"context"
	"log"
	"os"

	"github.com/dmitrijs2005/tapcard/internal/devserver"
	"github.com/dmitrijs2005/tapcard/internal/logging"
)

func main() {

	ctx := context.Background()
	cfg := devserver.LoadConfig(os.Args[1:])
	logger := logging.New(os.Stdout, "debug", "json")

	if err := devserver.NewApp(cfg, logger).Run(ctx); err != nil {
		log.Fatalf("%v", err)
	}

}
