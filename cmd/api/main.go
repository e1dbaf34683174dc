package main

import (
	"context"
	"log"
	"os"

	gfshutdown "github.com/gelmium/graceful-shutdown"

	"github.com/pelyams/product_store/cmd/api/app"
	"github.com/pelyams/product_store/internal/config"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	a, err := app.New(cfg)
	if err != nil {
		log.Fatal(err)
	}

	go func() {
		if err := a.Run(); err != nil {
			a.Log().WithError(err).Fatal("http server stopped")
		}
	}()

	wait := gfshutdown.GracefulShutdown(
		context.Background(),
		cfg.ShutdownTimeout,
		map[string]gfshutdown.Operation{
			"product-store": func(ctx context.Context) error {
				a.Log().Info("graceful shutdown initiated")
				return a.Shutdown(ctx)
			},
		},
	)

	os.Exit(<-wait)
}
