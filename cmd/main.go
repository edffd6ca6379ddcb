package main

import (
	"bytes"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"

	"github.com/cmptools/cmpress"
	"github.com/cmptools/cmpress/utilities/compression"
	"github.com/cmptools/cmpress/utilities/report"
	"github.com/urfave/cli/v2"
)

var sourceFlags = []cli.Flag{
	&cli.IntFlag{
		Name:     "type",
		Aliases:  []string{"t"},
		Usage:    "Compression unit width in bits: 8, 16, or 32",
		Required: true,
	},
	&cli.Int64Flag{
		Name:    "offset",
		Aliases: []string{"f"},
		Usage:   "Byte offset in the input file to begin compression",
	},
	&cli.Int64Flag{
		Name:    "size",
		Aliases: []string{"s"},
		Usage:   "Maximum number of bytes to compress (0 means to the end of the file)",
	},
}

// newApp builds the command line application.
func newApp() *cli.App {
	var logCloser io.Closer

	return &cli.App{
		Name:  "cmpress",
		Usage: "Compress data for the Sega Saturn CMP library",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Usage:   "Log level (DEBUG, INFO, WARN, ERROR)",
				Value:   "INFO",
				EnvVars: []string{"CMPRESS_LOG_LEVEL"},
			},
			&cli.StringFlag{
				Name:    "log-file",
				Usage:   "Write logs to this file instead of stderr",
				EnvVars: []string{"CMPRESS_LOG_FILE"},
			},
		},
		Before: func(context *cli.Context) error {
			logger, closer, err := newLogger(context.String("log-level"), context.String("log-file"))
			if err != nil {
				return fmt.Errorf("invalid log level %q: %w", context.String("log-level"), err)
			}
			slog.SetDefault(logger)
			logCloser = closer
			return nil
		},
		After: func(context *cli.Context) error {
			if logCloser != nil {
				return logCloser.Close()
			}
			return nil
		},
		Commands: []*cli.Command{
			{
				Name:      "compress",
				Usage:     "Compress part or all of a file",
				Action:    compressFile,
				ArgsUsage: "INPUT_FILE  OUTPUT_FILE",
				Flags: append(
					[]cli.Flag{
						&cli.BoolFlag{
							Name:    "wide",
							Aliases: []string{"w"},
							Usage:   "Force a 32-bit size in the header",
						},
						&cli.StringFlag{
							Name:  "report",
							Usage: "Also write a CSV segment map to this file",
						},
					},
					sourceFlags...,
				),
			},
			{
				Name:      "report",
				Usage:     "Print how a file would be split into segments, as CSV",
				Action:    reportFile,
				ArgsUsage: "INPUT_FILE",
				Flags:     sourceFlags,
			},
		},
	}
}

func main() {
	err := newApp().Run(os.Args)
	if err != nil {
		log.Fatalf("fatal error: %s", err.Error())
	}
}

// loadSource reads the part of the input file selected by the command's flags.
func loadSource(context *cli.Context, path string) (cmpress.UnitWidth, []byte, error) {
	width, err := cmpress.ParseUnitWidth(context.Int("type"))
	if err != nil {
		return 0, nil, err
	}

	sourceFile, err := os.Open(path)
	if err != nil {
		return 0, nil, cmpress.ErrSourceRead.Wrap(err)
	}
	defer sourceFile.Close()

	data, err := compression.ReadSource(sourceFile, context.Int64("offset"), context.Int64("size"))
	if err != nil {
		return 0, nil, err
	}

	slog.Debug(
		"read input",
		"path", path,
		"offset", context.Int64("offset"),
		"bytes", len(data),
		"width", width.String(),
	)
	return width, data, nil
}

func compressFile(context *cli.Context) error {
	if context.NArg() != 2 {
		return cli.Exit("expected an input file and an output file", 1)
	}
	inputPath := context.Args().Get(0)
	outputPath := context.Args().Get(1)

	width, data, err := loadSource(context, inputPath)
	if err != nil {
		return err
	}

	// The report is written first so it's available when compression fails.
	if reportPath := context.String("report"); reportPath != "" {
		if err := writeReport(data, width, reportPath); err != nil {
			return err
		}
	}

	image := bytes.Buffer{}
	options := compression.Options{Width: width, ForceWideSize: context.Bool("wide")}
	nWritten, err := compression.WriteImage(data, &image, options)
	if err != nil {
		return fmt.Errorf("failed to compress %q: %w", inputPath, err)
	}

	if err := os.WriteFile(outputPath, image.Bytes(), 0o644); err != nil {
		return fmt.Errorf("failed to write %q: %w", outputPath, err)
	}

	slog.Info(
		"compressed file",
		"input", inputPath,
		"output", outputPath,
		"width", width.String(),
		"original_bytes", len(data),
		"compressed_bytes", nWritten,
	)
	return nil
}

func writeReport(data []byte, width cmpress.UnitWidth, path string) error {
	r, err := report.Build(data, width)
	if err != nil {
		return err
	}

	reportFile, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create report %q: %w", path, err)
	}
	defer reportFile.Close()

	if err := r.WriteCSV(reportFile); err != nil {
		return fmt.Errorf("failed to write report %q: %w", path, err)
	}
	logReportSummary(r)
	return nil
}

func reportFile(context *cli.Context) error {
	if context.NArg() != 1 {
		return cli.Exit("expected an input file", 1)
	}

	width, data, err := loadSource(context, context.Args().Get(0))
	if err != nil {
		return err
	}

	r, err := report.Build(data, width)
	if err != nil {
		return err
	}
	if err := r.WriteCSV(os.Stdout); err != nil {
		return err
	}
	logReportSummary(r)
	return nil
}

func logReportSummary(r *report.Report) {
	attrs := []any{
		"segments", len(r.Records),
		"encoded_bytes", r.EncodedSize(),
		"capacity", r.Capacity(),
		"run_coverage", fmt.Sprintf("%.1f%%", r.RunCoverage()*100),
	}
	if r.WouldExpand() {
		slog.Warn(
			"data doesn't compress",
			append(attrs, "first_overflowing_segment", r.FirstOverflow())...,
		)
		return
	}
	slog.Info("segment report", attrs...)
}
