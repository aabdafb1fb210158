package main

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/urfave/cli/v3"

	"github.com/samcharles93/mlgconv/internal/mlg"
)

func inspectCmd() *cli.Command {
	var (
		showBlocks bool
		blockLimit int
	)

	return &cli.Command{
		Name:      "inspect",
		Usage:     "Inspect the contents of an MLG file",
		ArgsUsage: "<path>",
		Flags: []cli.Flag{
			&cli.BoolFlag{Name: "blocks", Usage: "list individual data blocks", Destination: &showBlocks},
			&cli.IntFlag{Name: "blocks-limit", Usage: "limit block listing (0 = no limit)", Value: 20, Destination: &blockLimit},
		},
		Action: func(ctx context.Context, c *cli.Command) error {
			if c.Args().Len() != 1 {
				return cli.Exit("error: expected exactly one MLG file", 1)
			}
			path := c.Args().First()

			doc, err := mlg.DecodeFile(path)
			if err != nil {
				return cli.Exit(fmt.Sprintf("error: %v", err), 1)
			}

			fmt.Printf("MLG Inspect: %s\n", path)
			printHeader(&doc.Header)
			printFields(doc.Fields)
			printInfo(doc)
			printBlockSummary(doc)
			if showBlocks {
				printBlocks(doc, blockLimit)
			}
			return nil
		},
	}
}

func printHeader(h *mlg.Header) {
	section("Header")
	row("format", h.FileFormat)
	row("version", fmt.Sprintf("%d", h.FormatVersion))
	row("captured", time.Unix(int64(h.Timestamp), 0).UTC().Format(time.RFC3339))
	row("info_data_start", fmt.Sprintf("%d", h.InfoDataStart))
	row("data_begin", fmt.Sprintf("%d", h.DataBeginIndex))
	row("record_length", fmt.Sprintf("%d", h.RecordLength))
	row("logger_fields", fmt.Sprintf("%d", h.NumLoggerFields))
}

func printFields(fields []mlg.LoggerField) {
	section("Logger Fields")
	if len(fields) == 0 {
		fmt.Println("(none)")
		return
	}
	for _, f := range fields {
		fmt.Printf("%-34s %-10s type=%-7s style=%-15s scale=%g transform=%g digits=%d\n",
			f.Name, f.Units, f.Type, f.Style, f.Scale, f.Transform, f.Digits)
	}
}

func printInfo(doc *mlg.Document) {
	if doc.BitFieldNames == "" && doc.InfoData == "" {
		return
	}
	section("Info")
	row("bit_field_names", doc.BitFieldNames)
	row("info_data", doc.InfoData)
}

func printBlockSummary(doc *mlg.Document) {
	section("Data Blocks")
	measurements := doc.Measurements()
	row("total", fmt.Sprintf("%d", len(doc.Blocks)))
	row("measurements", fmt.Sprintf("%d", measurements))
	row("markers", fmt.Sprintf("%d", len(doc.Blocks)-measurements))
}

func printBlocks(doc *mlg.Document, limit int) {
	section("Block Listing")
	shown := 0
	for i := range doc.Blocks {
		blk := &doc.Blocks[i]
		switch blk.Type {
		case mlg.BlockMarker:
			fmt.Printf("%6d  marker  ts=%-5d %q\n", i, blk.Timestamp, blk.Message)
		default:
			fmt.Printf("%6d  field   ts=%-5d counter=%d values=%d\n", i, blk.Timestamp, blk.Counter, len(blk.Records))
		}
		shown++
		if limit > 0 && shown >= limit {
			break
		}
	}
	if limit > 0 && shown < len(doc.Blocks) {
		fmt.Printf("... (%d shown of %d)\n", shown, len(doc.Blocks))
	}
}

func section(title string) {
	line := strings.Repeat("-", len(title)+8)
	fmt.Printf("\n%s\n--- %s ---\n%s\n", line, title, line)
}

func row(label, value string) {
	if value == "" {
		return
	}
	fmt.Printf("%-18s %s\n", label+":", value)
}
