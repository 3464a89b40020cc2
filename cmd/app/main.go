package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/urfave/cli/v2"

	"github.com/podium-club/gridpicks/app"
	"github.com/podium-club/gridpicks/config"
)

func main() {
	cliApp := &cli.App{
		Name:  "gridpicks",
		Usage: "F1 prediction scoring service",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "config",
				Value: "config.yaml",
				Usage: "path to the configuration file",
			},
		},
		Action: func(c *cli.Context) error {
			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			cfg, err := config.LoadConfig(c.String("config"))
			if err != nil {
				return err
			}

			application := &app.App{}
			if err := application.Initialize(ctx, cfg); err != nil {
				return err
			}

			return application.Run(ctx)
		},
	}

	if err := cliApp.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}
