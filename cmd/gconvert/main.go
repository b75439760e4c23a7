package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"github.com/rs/zerolog"
	"github.com/stemsi/gconvert/internal/cache"
	"github.com/stemsi/gconvert/internal/config"
	"github.com/stemsi/gconvert/internal/logger"
	"github.com/stemsi/gconvert/internal/model"
	"github.com/stemsi/gconvert/internal/service"
)

func main() {
	cfg := config.Load()
	log := logger.Setup(cfg.LogLevel, cfg.LogFormat)

	os.Exit(run(context.Background(), os.Args[1:], cfg, os.Stdout, os.Stderr, log))
}

// options holds the parsed command line.
type options struct {
	display    bool
	spi        bool
	semester   int
	hasID      bool
	cpi        bool
	convert    bool
	report     bool
	exportPath string
}

func parseFlags(args []string, stderr io.Writer) (*options, *flag.FlagSet, error) {
	fs := flag.NewFlagSet("gconvert", flag.ContinueOnError)
	fs.SetOutput(stderr)

	var o options
	fs.BoolVar(&o.display, "d", false, "Display the transcript")
	fs.BoolVar(&o.spi, "spi", false, "Print the S.P.I of the semester given by --id")
	fs.IntVar(&o.semester, "id", 0, "Semester number for --spi")
	fs.BoolVar(&o.cpi, "cpi", false, "Print the C.P.I")
	fs.BoolVar(&o.convert, "c", false, "Convert the C.P.I to the GPA scale")
	fs.BoolVar(&o.report, "report", false, "Print every metric as JSON")
	fs.StringVar(&o.exportPath, "export", "", "Write the transcript to an .xlsx workbook")

	fs.Usage = func() {
		fmt.Fprintf(stderr, `gconvert - semester and cumulative grade indexes

Usage:
  gconvert -d
  gconvert --spi --id 3
  gconvert --cpi -c
  gconvert --report
  gconvert --export transcript.xlsx

Flags:
`)
		fs.PrintDefaults()
		fmt.Fprintf(stderr, `
Environment:
  TRANSCRIPT_SOURCE   json (default), xlsx or postgres
  GRADES_FILE         Transcript JSON (assets/grades.json)
  METADATA_FILE       Course names JSON (assets/metadata.json)
  SCALE_FILE          Optional grading scale override
`)
	}

	if err := fs.Parse(args); err != nil {
		return nil, fs, err
	}
	fs.Visit(func(f *flag.Flag) {
		if f.Name == "id" {
			o.hasID = true
		}
	})
	return &o, fs, nil
}

func (o *options) any() bool {
	return o.display || o.spi || o.cpi || o.convert || o.report || o.exportPath != ""
}

// run executes the requested operations in a fixed order and returns the
// process exit status.
func run(ctx context.Context, args []string, cfg *config.Config, stdout, stderr io.Writer, log zerolog.Logger) int {
	opts, fs, err := parseFlags(args, stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 2
	}
	if !opts.any() {
		fs.Usage()
		return 0
	}
	if opts.spi && !opts.hasID {
		fmt.Fprintln(stdout, "--id argument is required.")
		return 1
	}

	scale, err := service.LoadScale(cfg)
	if err != nil {
		log.Error().Err(err).Msg("Failed to load grading scale")
		return 1
	}

	src, closeSource, err := service.OpenSource(ctx, cfg.TranscriptSource, cfg, log)
	if err != nil {
		log.Error().Err(err).Msg("Failed to open transcript source")
		return 1
	}
	defer closeSource()

	// One-shot process: an in-process cache is all the report path needs.
	store := cache.NewMemoryStore(cfg.CacheTTL, time.Minute)
	svc := service.NewTranscriptService(cfg, src, scale, store, log)

	if err := execute(ctx, svc, opts, stdout); err != nil {
		log.Error().Err(err).Msg("gconvert failed")
		return 1
	}
	return 0
}

func execute(ctx context.Context, svc *service.TranscriptService, o *options, stdout io.Writer) error {
	if o.display {
		fmt.Fprintln(stdout, "Displaying transcript:")
		fmt.Fprintln(stdout)
		if err := svc.RenderTranscript(ctx, stdout); err != nil {
			return err
		}
	}

	if o.spi {
		id := model.SemesterID(o.semester)
		spi, err := svc.SemesterIndex(ctx, id)
		if err != nil {
			return err
		}
		fmt.Fprintf(stdout, "S.P.I for Semester %s is: %s\n", id, formatIndex(spi))
	}

	if o.cpi {
		cpi, err := svc.CumulativeIndex(ctx)
		if err != nil {
			return err
		}
		fmt.Fprintf(stdout, "C.P.I is: %s\n", formatIndex(cpi))
	}

	if o.convert {
		gpa, err := svc.ConvertedIndex(ctx)
		if err != nil {
			return err
		}
		fmt.Fprintf(stdout, "Corresponding GPA is: %s\n", formatIndex(gpa))
	}

	if o.report {
		report, err := svc.Report(ctx)
		if err != nil {
			return err
		}
		enc := json.NewEncoder(stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(report); err != nil {
			return fmt.Errorf("encode report: %w", err)
		}
	}

	if o.exportPath != "" {
		if err := export(ctx, svc, o.exportPath); err != nil {
			return err
		}
		fmt.Fprintf(stdout, "Transcript written to %s\n", o.exportPath)
	}
	return nil
}

func export(ctx context.Context, svc *service.TranscriptService, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := svc.ExportWorkbook(ctx, f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func formatIndex(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
