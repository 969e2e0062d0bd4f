// Package main provides the flowvault CLI for comparing workflow snapshots
// and assessing change risk from the command line.
package main

import (
	"context"
	"os"

	"github.com/flowvault/flowvault/pkg/log"
	cli "github.com/urfave/cli/v3"
)

func main() {
	logger := log.WithModule("cli")

	cmd := &cli.Command{
		Name:                  "flowvault",
		Usage:                 "Compare workflow snapshots and assess change risk",
		EnableShellCompletion: true,
		Commands: []*cli.Command{
			{
				Name:      "compare",
				Aliases:   []string{"c"},
				Usage:     "Compare two workflow snapshot files",
				ArgsUsage: "<versionA.json> <versionB.json>",
				Action: func(ctx context.Context, cmd *cli.Command) error {
					return runCompare(cmd)
				},
			},
			{
				Name:      "assess",
				Aliases:   []string{"a"},
				Usage:     "Assess the risk of one workflow snapshot file",
				ArgsUsage: "<workflow.json>",
				Action: func(ctx context.Context, cmd *cli.Command) error {
					return runAssess(cmd)
				},
			},
			{
				Name:      "project",
				Aliases:   []string{"p"},
				Usage:     "Render a workflow snapshot as human-readable steps",
				ArgsUsage: "<workflow.json>",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "version-tag",
						Usage: "Version tag attached to the rendered steps",
						Value: "current",
					},
				},
				Action: func(ctx context.Context, cmd *cli.Command) error {
					return runProject(cmd)
				},
			},
			{
				Name:      "normalize",
				Aliases:   []string{"n"},
				Usage:     "Print the normalized, canonical form of a snapshot",
				ArgsUsage: "<workflow.json>",
				Action: func(ctx context.Context, cmd *cli.Command) error {
					return runNormalize(cmd)
				},
			},
		},
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		logger.Error("Command failed", "error", err)
		os.Exit(1)
	}
}
