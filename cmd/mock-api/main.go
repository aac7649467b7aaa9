// Command mock-api serves the /products backend the vitrine client talks to.
package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/billie-coop/vitrine/internal/catalog"
	"github.com/billie-coop/vitrine/internal/logging"
	"github.com/billie-coop/vitrine/internal/mockapi"
	"github.com/billie-coop/vitrine/internal/watcher"
	"github.com/urfave/cli/v3"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	defaults := mockapi.DefaultConfig()

	app := &cli.Command{
		Name:  "mock-api",
		Usage: "in-memory /products backend for vitrine",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "addr",
				Usage:   "listen address",
				Value:   defaults.Addr,
				Sources: cli.EnvVars("MOCK_API_ADDR"),
			},
			&cli.StringFlag{
				Name:  "seed",
				Usage: "db.json style file with the initial products",
			},
			&cli.BoolFlag{
				Name:  "watch",
				Usage: "reload the products when the seed file changes",
			},
			&cli.FloatFlag{
				Name:  "rps",
				Usage: "requests per second per client, 0 disables limiting",
				Value: defaults.RPS,
			},
			&cli.IntFlag{
				Name:  "burst",
				Usage: "rate limiter burst",
				Value: defaults.Burst,
			},
			&cli.BoolFlag{
				Name:  "debug",
				Usage: "log at debug level",
			},
		},
		Action: serve,
	}

	if err := app.Run(ctx, os.Args); err != nil {
		log.Fatal(err)
	}
}

func serve(ctx context.Context, cmd *cli.Command) error {
	cfg := logging.DefaultConfig()
	cfg.Level = logging.Level(cmd.Bool("debug"))
	logger := logging.New(cfg)

	var seed []catalog.Product
	if path := cmd.String("seed"); path != "" {
		products, err := mockapi.LoadSeed(path)
		if err != nil {
			return err
		}
		seed = products
		logger.Info("seed loaded", slog.String("file", path), slog.Int("products", len(seed)))
	}

	store := mockapi.NewStore(seed)
	server := mockapi.NewServer(mockapi.Config{
		Addr:  cmd.String("addr"),
		RPS:   cmd.Float("rps"),
		Burst: cmd.Int("burst"),
	}, store, logger)

	if path := cmd.String("seed"); path != "" && cmd.Bool("watch") {
		w := watcher.NewWatcher(300*time.Millisecond, func([]string) {
			products, err := mockapi.LoadSeed(path)
			if err != nil {
				logger.Warn("seed reload failed", slog.String("file", path), slog.Any("error", err))
				return
			}
			store.Reset(products)
			logger.Info("seed reloaded", slog.String("file", path), slog.Int("products", len(products)))
		})
		defer w.Stop()

		go func() {
			if err := watcher.Watch(ctx, w, path); err != nil {
				logger.Error("seed watcher stopped", slog.Any("error", err))
			}
		}()
	}

	return server.Run(ctx)
}
