package main

import (
	"context"
	"os"

	"github.com/flowvault/flowvault/pkg/log"
	storefile "github.com/flowvault/flowvault/pkg/versionstore/file"
	cli "github.com/urfave/cli/v3"
)

const defaultPort = 9094

func main() {
	logger := log.WithModule("api")

	cmd := &cli.Command{
		Name:                  "flowvault-api",
		Usage:                 "Compare workflow versions and assess change risk",
		EnableShellCompletion: true,
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:    "port",
				Aliases: []string{"p"},
				Usage:   "Port to run the API server on",
				Value:   defaultPort,
				Sources: cli.EnvVars("PORT"),
			},
			&cli.StringFlag{
				Name:    "store-path",
				Usage:   "Root directory of the version store",
				Value:   "./data",
				Sources: cli.EnvVars("STORE_PATH"),
			},
			&cli.StringFlag{
				Name:    "log-level",
				Usage:   "Log level (debug, info, warn, error)",
				Value:   "info",
				Sources: cli.EnvVars("LOG_LEVEL"),
			},
		},
		Action: func(ctx context.Context, command *cli.Command) error {
			log.Setup(command.String("log-level"))

			logger.InfoContext(ctx, "Initializing Flowvault API",
				"store_path", command.String("store-path"))

			store := storefile.NewStore(command.String("store-path"))

			api := NewAPI(logger, store, nil)

			return api.Start(command.Int("port"))
		},
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		logger.Error("Failed to run API server", "error", err)
		os.Exit(1)
	}
}
