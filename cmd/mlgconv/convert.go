package main

import (
	"context"
	"fmt"
	"time"

	"github.com/urfave/cli/v3"

	"github.com/samcharles93/mlgconv/internal/mlg"
)

func convertCmd() *cli.Command {
	var (
		format string
		outDir string
	)

	return &cli.Command{
		Name:      "convert",
		Usage:     "Convert MLG files to another format",
		ArgsUsage: "<path>...",
		Flags: append(commonLogFlags(),
			&cli.StringFlag{
				Name:        "format",
				Aliases:     []string{"f"},
				Usage:       "target format, one of: csv, json",
				Value:       "csv",
				Destination: &format,
			},
			&cli.StringFlag{
				Name:        "output-dir",
				Aliases:     []string{"o"},
				Usage:       "write outputs into this directory instead of next to each input",
				Destination: &outDir,
			},
		),
		Action: func(ctx context.Context, c *cli.Command) error {
			paths := c.Args().Slice()
			if len(paths) == 0 {
				return cli.Exit("error: no input files given", 1)
			}
			applyConvertConfig(c, loadConfig(), &format, &outDir)
			log := newLogger()

			target, err := mlg.ParseFormat(format)
			if err != nil {
				return cli.Exit(fmt.Sprintf("error: %v", err), 1)
			}

			start := time.Now()
			results := mlg.ConvertAll(paths, target, outDir)

			// One bad file does not stop the batch; every failure is
			// reported against its own input.
			failed := 0
			for _, r := range results {
				if r.Err != nil {
					failed++
					log.Error("conversion failed", "path", r.Path, "error", r.Err)
					continue
				}
				log.Info("generated", "path", r.Output)
			}
			log.Info("finished",
				"files", len(results),
				"failed", failed,
				"elapsed", time.Since(start).Round(time.Millisecond).String(),
			)

			if failed > 0 {
				return cli.Exit(fmt.Sprintf("%d of %d files failed", failed, len(results)), 1)
			}
			return nil
		},
	}
}
