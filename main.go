// Package main is the entry point for the vitrine application.
package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/urfave/cli/v3"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app := &cli.Command{
		Name:  "vitrine",
		Usage: "Portal de Produtos no terminal",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "config",
				Usage: "project directory holding .vitrine/ and .env",
				Value: ".",
			},
			&cli.StringFlag{
				Name:  "api",
				Usage: "backend base URL (overrides api_url and VITRINE_API_URL)",
			},
			&cli.StringFlag{
				Name:  "route",
				Usage: "path to open first, e.g. /novo-produto or /editar-produto/3",
				Value: "/",
			},
			&cli.DurationFlag{
				Name:  "delay",
				Usage: "filter settle delay (overrides filter_delay_ms)",
			},
			&cli.StringFlag{
				Name:  "theme",
				Usage: "color theme (vitrine, dark)",
			},
			&cli.BoolFlag{
				Name:  "debug",
				Usage: "log at debug level",
			},
		},
		Action: runAction,
		Commands: []*cli.Command{
			{
				Name:  "list",
				Usage: "print the product list and exit",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "code",
						Usage: "show only the product with this code",
					},
				},
				Action: listAction,
			},
			{
				Name:  "add",
				Usage: "create a product",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "name", Usage: "product name", Required: true},
					&cli.StringFlag{Name: "description", Usage: "product description", Required: true},
					&cli.StringFlag{Name: "price", Usage: "price, \".\" or \",\" as decimal separator", Required: true},
					&cli.StringFlag{Name: "category", Usage: "product category", Required: true},
					&cli.StringFlag{Name: "picture-url", Usage: "picture URL", Required: true},
				},
				Action: addAction,
			},
			{
				Name:  "config",
				Usage: "show or change .vitrine/config.json",
				Commands: []*cli.Command{
					{
						Name:   "show",
						Usage:  "print the effective configuration",
						Action: configShowAction,
					},
					{
						Name:      "set",
						Usage:     "set one key",
						ArgsUsage: "KEY VALUE",
						Action:    configSetAction,
					},
				},
			},
		},
	}

	if err := app.Run(ctx, os.Args); err != nil {
		log.Fatal(err)
	}
}
