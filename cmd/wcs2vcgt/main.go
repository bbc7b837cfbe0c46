// Command wcs2vcgt converts the Windows Color System calibration of a monitor
// ICC profile into a standard vcgt tag.
//
// Usage:
//
//	wcs2vcgt [-v] input.icm output.icm
//
// Exits 0 on success and 1 with a diagnostic when the input is not a
// WCS-authored monitor profile, already has a vcgt tag, carries no WCS tag,
// or carries WCS data that cannot be interpreted. No output file is written
// on failure.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/itmo153277/icc-wcs-vcgt/convert"
	"github.com/itmo153277/icc-wcs-vcgt/observability"
)

func main() {
	os.Exit(run())
}

func run() int {
	verbose := flag.Bool("v", false, "log conversion details to stderr")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "usage: %s [-v] input_file output_file\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()
	if flag.NArg() != 2 {
		flag.Usage()
		return 2
	}
	inputFile, outputFile := flag.Arg(0), flag.Arg(1)

	data, err := os.ReadFile(inputFile)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	var opts []convert.Option
	if *verbose {
		opts = append(opts, convert.WithLogger(stderrLogger{}))
	}
	out, err := convert.New(opts...).Convert(context.Background(), data)
	if err != nil {
		switch {
		case errors.Is(err, convert.ErrInvalidProfile):
			fmt.Println("Invalid ICC profile")
		case errors.Is(err, convert.ErrVCGTPresent):
			fmt.Println("Profile already has VCGT")
		case errors.Is(err, convert.ErrNoWCSTag):
			fmt.Println("WCS tag is not present")
		default:
			fmt.Fprintln(os.Stderr, "conversion failed:", err)
		}
		if *verbose {
			fmt.Fprintln(os.Stderr, err)
		}
		return 1
	}

	if err := os.WriteFile(outputFile, out, 0644); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	return 0
}

// stderrLogger prints converter log lines to stderr.
type stderrLogger struct {
	fields []observability.Field
}

func (l stderrLogger) Debug(msg string, fields ...observability.Field) { l.print("DEBUG", msg, fields) }
func (l stderrLogger) Info(msg string, fields ...observability.Field)  { l.print("INFO", msg, fields) }
func (l stderrLogger) Warn(msg string, fields ...observability.Field)  { l.print("WARN", msg, fields) }
func (l stderrLogger) Error(msg string, fields ...observability.Field) { l.print("ERROR", msg, fields) }

func (l stderrLogger) With(fields ...observability.Field) observability.Logger {
	return stderrLogger{fields: append(l.fields[:len(l.fields):len(l.fields)], fields...)}
}

func (l stderrLogger) print(level, msg string, fields []observability.Field) {
	fmt.Fprintf(os.Stderr, "%s %s", level, msg)
	for _, f := range l.fields {
		fmt.Fprintf(os.Stderr, " %s=%v", f.Key(), f.Value())
	}
	for _, f := range fields {
		fmt.Fprintf(os.Stderr, " %s=%v", f.Key(), f.Value())
	}
	fmt.Fprintln(os.Stderr)
}
