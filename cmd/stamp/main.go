// Command stamp runs a batch stamping job: a YAML recipe, a CSV of records,
// one stamped copy of the template per record.
//
//	stamp -recipe badge.yaml -records people.csv
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"

	"github.com/jamespreed/pdf-quick-text/observability"
	"github.com/jamespreed/pdf-quick-text/stamp"
)

type options struct {
	recipePath  string
	recordsPath string
	outDir      string
	verbose     bool
}

func main() {
	opts, err := parseFlags()
	if err != nil {
		fmt.Fprintf(os.Stderr, "stamp: %v\n", err)
		os.Exit(2)
	}
	if err := run(opts); err != nil {
		fmt.Fprintf(os.Stderr, "stamp: %v\n", err)
		os.Exit(1)
	}
}

func parseFlags() (options, error) {
	var opts options
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "Usage: stamp -recipe <yaml> -records <csv> [flags]\n")
		flag.PrintDefaults()
	}
	recipePath := flag.String("recipe", "", "YAML recipe describing the template and stamped fields")
	recordsPath := flag.String("records", "", "CSV of records, one output PDF per row")
	outDir := flag.String("out", "", "Override the recipe's output directory")
	verbose := flag.Bool("v", false, "Log per-record progress to stderr")
	flag.Parse()

	if *recipePath == "" || *recordsPath == "" {
		flag.Usage()
		return options{}, fmt.Errorf("-recipe and -records are required")
	}
	opts.recipePath = *recipePath
	opts.recordsPath = *recordsPath
	opts.outDir = *outDir
	opts.verbose = *verbose
	return opts, nil
}

func run(opts options) error {
	data, err := os.ReadFile(opts.recipePath)
	if err != nil {
		return fmt.Errorf("read recipe: %w", err)
	}
	recipe, err := stamp.ParseRecipe(data)
	if err != nil {
		return err
	}
	if opts.outDir != "" {
		recipe.OutDir = opts.outDir
	}

	records, err := stamp.ReadRecordsFile(opts.recordsPath)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	runner := &stamp.Runner{}
	if opts.verbose {
		runner.Log = stderrLogger{}
	}
	res, err := runner.Run(ctx, recipe, records)
	if res != nil && len(res.Outputs) > 0 {
		fmt.Printf("wrote %d of %d files to %s\n", len(res.Outputs), len(records), recipe.OutDir)
	}
	return err
}

// stderrLogger adapts the standard library logger to observability.Logger.
type stderrLogger struct {
	fields []observability.Field
}

func (l stderrLogger) log(level, msg string, fields []observability.Field) {
	line := level + " " + msg
	for _, f := range append(l.fields, fields...) {
		line += fmt.Sprintf(" %s=%v", f.Key(), f.Value())
	}
	log.Println(line)
}

func (l stderrLogger) Debug(msg string, fields ...observability.Field) { l.log("DEBUG", msg, fields) }
func (l stderrLogger) Info(msg string, fields ...observability.Field)  { l.log("INFO", msg, fields) }
func (l stderrLogger) Warn(msg string, fields ...observability.Field)  { l.log("WARN", msg, fields) }
func (l stderrLogger) Error(msg string, fields ...observability.Field) { l.log("ERROR", msg, fields) }

func (l stderrLogger) With(fields ...observability.Field) observability.Logger {
	return stderrLogger{fields: append(append([]observability.Field{}, l.fields...), fields...)}
}
